package handler

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gofrs/uuid/v5"
	"gorm.io/datatypes"

	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/config"
	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/constants"
	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/logger"
	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/notify"
	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/processor"
	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/storage"
	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/storage/models"
	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/types"
)

// EvaluateHandler 简历评估处理器，负责协调完整的评估流程
type EvaluateHandler struct {
	cfg      *config.Config
	storage  *storage.Storage
	pipeline *processor.EvaluationPipeline
	notifier *notify.Notifier
	dedup    storage.Deduper
}

// NewEvaluateHandler 创建评估处理器
func NewEvaluateHandler(
	cfg *config.Config,
	store *storage.Storage,
	pipeline *processor.EvaluationPipeline,
	notifier *notify.Notifier,
) *EvaluateHandler {
	h := &EvaluateHandler{
		cfg:      cfg,
		storage:  store,
		pipeline: pipeline,
		notifier: notifier,
	}
	// 显式判空再装入接口，避免接口持有typed nil
	if store != nil && store.Redis != nil {
		h.dedup = store.Redis
	}
	return h
}

// EvaluateRequest 一次评估请求的输入
// JDText与JDData二选一，JDText优先
type EvaluateRequest struct {
	FileData   []byte // 简历文件原始字节
	Filename   string // 原始文件名
	JobRole    string // 目标岗位
	JDText     string // 职位描述文本，可为空
	JDData     []byte // 职位描述文件原始字节，可为空
	JDFilename string // 职位描述文件名
}

// EvaluateResponse 评估响应
type EvaluateResponse struct {
	ResumeID            string                         `json:"resume_id"`
	Status              string                         `json:"status"`
	Report              *types.EvaluationReport        `json:"report,omitempty"`
	ReportText          string                         `json:"report_text,omitempty"`
	LearningSuggestions []processor.LearningSuggestion `json:"learning_suggestions,omitempty"`
	ResumeURL           string                         `json:"resume_url,omitempty"`
	ReportURL           string                         `json:"report_url,omitempty"`
	Warnings            []string                       `json:"warnings,omitempty"`
}

const (
	statusEvaluated     = "EVALUATED"
	statusDuplicateFile = "DUPLICATE_FILE_SKIPPED"
)

// HandleEvaluate 处理一次完整的简历评估
// 评估本身（提取→匹配→打分→报告）失败即整体失败；
// 对象存储、数据库、通知属于旁路操作，单独失败只产生警告，不丢弃已算出的报告
func (h *EvaluateHandler) HandleEvaluate(ctx context.Context, req *EvaluateRequest) (*EvaluateResponse, error) {
	if len(req.FileData) == 0 {
		return nil, fmt.Errorf("简历文件内容为空")
	}
	if req.JobRole == "" {
		return nil, fmt.Errorf("缺少目标岗位 job_role")
	}

	// 1. 生成评估UUID
	uuidV7, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("生成UUIDv7失败: %w", err)
	}
	resumeID := uuidV7.String()

	// 2. 文件MD5去重：同一文件重复提交直接短路
	// 此处只查不写，MD5在评估成功后才登记，失败的文件可以原样重试
	md5Sum := md5.Sum(req.FileData)
	fileMD5Hex := hex.EncodeToString(md5Sum[:])

	if h.dedup != nil {
		exists, err := h.dedup.CheckRawFileMD5Exists(ctx, fileMD5Hex)
		if err != nil {
			// 去重查询失败时继续评估，重复文件的代价只是多算一次
			logger.Warn().Err(err).Str("md5", fileMD5Hex).Msg("查询Redis文件MD5失败，跳过去重")
		} else if exists {
			logger.Info().Str("md5", fileMD5Hex).Str("filename", req.Filename).Msg("检测到重复的文件MD5")
			return &EvaluateResponse{
				ResumeID: resumeID,
				Status:   statusDuplicateFile,
			}, nil
		}
	}

	var warnings []string

	// 3. 提取简历文本（失败则整体失败）
	resumeText, err := h.pipeline.ExtractResumeText(ctx, resumeID, req.FileData, req.Filename)
	if err != nil {
		return nil, err
	}

	// 3b. 职位描述：文本优先，其次从JD文件提取
	// JD提取失败不阻断评估，只是得分退化为不可用
	jdText := req.JDText
	if jdText == "" && len(req.JDData) > 0 {
		extracted, jdErr := h.pipeline.ExtractResumeText(ctx, resumeID, req.JDData, req.JDFilename)
		if jdErr != nil {
			warnings = h.warn(warnings, jdErr, "提取职位描述文本失败")
		} else {
			jdText = extracted
		}
	}

	// 4. 执行核心评估
	report, err := h.pipeline.Evaluate(ctx, resumeText, req.JobRole, jdText)
	if err != nil {
		return nil, err
	}

	// 4b. 评估成功后登记文件MD5，登记失败不影响主流程
	if h.dedup != nil {
		if err := h.dedup.AddRawFileMD5(ctx, fileMD5Hex); err != nil {
			logger.Warn().Err(err).Str("md5", fileMD5Hex).Msg("登记文件MD5失败")
		}
	}

	// 5. 上传原始简历（旁路）
	var resumeObjectKey string
	if h.storage != nil && h.storage.MinIO != nil {
		resumeObjectKey, err = h.storage.MinIO.UploadResumeFile(ctx, req.Filename, bytes.NewReader(req.FileData), int64(len(req.FileData)))
		if err != nil {
			warnings = h.warn(warnings, processor.NewStorageError(resumeID, err.Error()), "上传简历到对象存储失败")
		}
	}

	// 6. 渲染并上传评估报告（旁路）
	reportText := processor.RenderReportText(report)
	var reportObjectKey string
	if h.storage != nil && h.storage.MinIO != nil {
		reportName := processor.ReportObjectName(report.Identity.Name, report.GeneratedAt)
		reportObjectKey, err = h.storage.MinIO.UploadReport(ctx, reportName, reportText)
		if err != nil {
			warnings = h.warn(warnings, processor.NewStorageError(resumeID, err.Error()), "上传评估报告失败")
		}
	}

	// 7. 生成预签名URL（旁路）
	resumeURL, reportURL := h.presignURLs(ctx, resumeObjectKey, reportObjectKey)

	// 8. 持久化评估记录（旁路）
	if h.storage != nil && h.storage.MySQL != nil {
		record := buildEvaluationRecord(resumeID, fileMD5Hex, resumeObjectKey, reportObjectKey, reportURL, report)
		if err := h.storage.MySQL.SaveEvaluation(ctx, record); err != nil {
			warnings = h.warn(warnings, processor.NewPersistenceError(resumeID, err.Error()), "保存评估记录失败")
		}
	}

	// 9. 发布管理员通知（旁路）
	if h.notifier != nil && h.storage != nil && h.storage.RabbitMQ != nil {
		if err := h.notifier.NotifyEvaluated(ctx, resumeID, report, resumeURL, reportURL); err != nil {
			warnings = h.warn(warnings, processor.NewNotificationError(resumeID, err.Error()), "发布评估通知失败")
		}
	}

	return &EvaluateResponse{
		ResumeID:            resumeID,
		Status:              statusEvaluated,
		Report:              report,
		ReportText:          reportText,
		LearningSuggestions: processor.BuildLearningSuggestions(report.Skills.Missing),
		ResumeURL:           resumeURL,
		ReportURL:           reportURL,
		Warnings:            warnings,
	}, nil
}

// warn 记录旁路操作失败并把人类可读的警告加入响应
func (h *EvaluateHandler) warn(warnings []string, err error, message string) []string {
	logger.Error().Err(err).Msg(message)
	return append(warnings, fmt.Sprintf("%s: %v", message, err))
}

// presignURLs 为简历与报告对象生成预签名下载链接
func (h *EvaluateHandler) presignURLs(ctx context.Context, resumeObjectKey, reportObjectKey string) (string, string) {
	if h.storage == nil || h.storage.MinIO == nil {
		return "", ""
	}
	expiry := time.Duration(h.cfg.MinIO.PresignExpiryHours) * time.Hour

	var resumeURL, reportURL string
	if resumeObjectKey != "" {
		url, err := h.storage.MinIO.GetPresignedURL(ctx, resumeObjectKey, expiry)
		if err != nil {
			logger.Warn().Err(err).Str("object_key", resumeObjectKey).Msg("生成简历预签名URL失败")
		} else {
			resumeURL = url
		}
	}
	if reportObjectKey != "" {
		url, err := h.storage.MinIO.GetPresignedURL(ctx, reportObjectKey, expiry)
		if err != nil {
			logger.Warn().Err(err).Str("object_key", reportObjectKey).Msg("生成报告预签名URL失败")
		} else {
			reportURL = url
		}
	}
	return resumeURL, reportURL
}

// buildEvaluationRecord 把评估报告映射为数据库记录
// 得分不可用时ATSScore落为-1
func buildEvaluationRecord(resumeID, fileMD5, resumeObjectKey, reportObjectKey, reportURL string, report *types.EvaluationReport) *models.EvaluationRecord {
	score := -1.0
	if report.Similarity.Available {
		score = report.Similarity.Score
	}

	presentJSON, _ := json.Marshal(report.Skills.Present)
	missingJSON, _ := json.Marshal(report.Skills.Missing)

	return &models.EvaluationRecord{
		ResumeID:          resumeID,
		Name:              report.Identity.Name,
		Email:             report.Identity.Email.OrElse(constants.EmailNotFoundText),
		JobRole:           report.JobRole,
		ATSScore:          score,
		Recommendation:    string(report.Recommendation),
		PresentSkillsJSON: datatypes.JSON(presentJSON),
		MissingSkillsJSON: datatypes.JSON(missingJSON),
		ResumeObjectKey:   resumeObjectKey,
		ReportObjectKey:   reportObjectKey,
		ReportURL:         reportURL,
		RawFileMD5:        fileMD5,
		UploadedAt:        report.GeneratedAt,
	}
}

// ReadLimited 读取上传文件内容，防御超大文件
func ReadLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("读取上传文件内容失败: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("文件超过大小限制 %d 字节", maxBytes)
	}
	return data, nil
}
