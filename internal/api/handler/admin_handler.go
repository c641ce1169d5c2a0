package handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/config"
	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/constants"
	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/logger"
	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/storage"
	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/storage/models"
)

// AdminHandler 管理端处理器：文件浏览与评估历史查询
type AdminHandler struct {
	cfg     *config.Config
	storage *storage.Storage
}

// NewAdminHandler 创建管理端处理器
func NewAdminHandler(cfg *config.Config, store *storage.Storage) *AdminHandler {
	return &AdminHandler{cfg: cfg, storage: store}
}

// FileListResponse 文件列表响应
type FileListResponse struct {
	Resumes []storage.ObjectInfo `json:"resumes"`
	Reports []storage.ObjectInfo `json:"reports"`
}

// ListFiles 列举对象存储中的简历与报告
func (h *AdminHandler) ListFiles(ctx context.Context) (*FileListResponse, error) {
	if h.storage == nil || h.storage.MinIO == nil {
		return nil, fmt.Errorf("对象存储未配置")
	}

	resumes, err := h.storage.MinIO.ListFiles(ctx, constants.ResumeObjectPrefix)
	if err != nil {
		return nil, fmt.Errorf("列举简历文件失败: %w", err)
	}
	reports, err := h.storage.MinIO.ListFiles(ctx, constants.ReportObjectPrefix)
	if err != nil {
		return nil, fmt.Errorf("列举报告文件失败: %w", err)
	}

	return &FileListResponse{Resumes: resumes, Reports: reports}, nil
}

// DownloadURL 为指定对象生成预签名下载链接
func (h *AdminHandler) DownloadURL(ctx context.Context, objectKey string) (string, error) {
	if h.storage == nil || h.storage.MinIO == nil {
		return "", fmt.Errorf("对象存储未配置")
	}
	if err := validateObjectKey(objectKey); err != nil {
		return "", err
	}

	expiry := time.Duration(h.cfg.MinIO.PresignExpiryHours) * time.Hour
	url, err := h.storage.MinIO.GetPresignedURL(ctx, objectKey, expiry)
	if err != nil {
		return "", fmt.Errorf("生成预签名URL失败: %w", err)
	}
	return url, nil
}

// DownloadFile 下载指定对象的内容
func (h *AdminHandler) DownloadFile(ctx context.Context, objectKey string) ([]byte, error) {
	if h.storage == nil || h.storage.MinIO == nil {
		return nil, fmt.Errorf("对象存储未配置")
	}
	if err := validateObjectKey(objectKey); err != nil {
		return nil, err
	}
	return h.storage.MinIO.DownloadFile(ctx, objectKey)
}

// DeleteFile 删除指定对象
func (h *AdminHandler) DeleteFile(ctx context.Context, objectKey string) error {
	if h.storage == nil || h.storage.MinIO == nil {
		return fmt.Errorf("对象存储未配置")
	}
	if err := validateObjectKey(objectKey); err != nil {
		return err
	}

	if err := h.storage.MinIO.DeleteFile(ctx, objectKey); err != nil {
		return err
	}
	logger.Info().Str("object_key", objectKey).Msg("管理端删除对象")
	return nil
}

// validateObjectKey 限制管理端只能操作简历与报告前缀下的对象
func validateObjectKey(objectKey string) error {
	if objectKey == "" {
		return fmt.Errorf("对象键不能为空")
	}
	if strings.Contains(objectKey, "..") {
		return fmt.Errorf("非法的对象键: %s", objectKey)
	}
	if !strings.HasPrefix(objectKey, constants.ResumeObjectPrefix) &&
		!strings.HasPrefix(objectKey, constants.ReportObjectPrefix) {
		return fmt.Errorf("对象键必须以 %s 或 %s 开头", constants.ResumeObjectPrefix, constants.ReportObjectPrefix)
	}
	return nil
}

// HistoryResponse 评估历史响应
type HistoryResponse struct {
	Total   int64                     `json:"total"`
	Records []models.EvaluationRecord `json:"records"`
}

// ListEvaluations 分页查询评估历史，jobRole为空时返回全部岗位
func (h *AdminHandler) ListEvaluations(ctx context.Context, jobRole string, limit, offset int) (*HistoryResponse, error) {
	if h.storage == nil || h.storage.MySQL == nil {
		return nil, fmt.Errorf("数据库未配置")
	}

	records, total, err := h.storage.MySQL.ListEvaluations(ctx, jobRole, limit, offset)
	if err != nil {
		return nil, err
	}
	return &HistoryResponse{Total: total, Records: records}, nil
}

// GetEvaluation 按ResumeID查询单条评估记录
func (h *AdminHandler) GetEvaluation(ctx context.Context, resumeID string) (*models.EvaluationRecord, error) {
	if h.storage == nil || h.storage.MySQL == nil {
		return nil, fmt.Errorf("数据库未配置")
	}
	return h.storage.MySQL.GetEvaluationByID(ctx, resumeID)
}
