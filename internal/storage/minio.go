package storage

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/lifecycle"

	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/config"
	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/constants"
)

// ObjectInfo 对象列表条目，供管理端文件浏览使用
type ObjectInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
	ContentType  string    `json:"content_type,omitempty"`
}

// ObjectStorage 对象存储接口
type ObjectStorage interface {
	// UploadFile 上传文件到指定对象键
	UploadFile(ctx context.Context, objectName string, reader io.Reader, fileSize int64, contentType string) (string, error)

	// DownloadFile 下载文件
	DownloadFile(ctx context.Context, objectName string) ([]byte, error)

	// GetPresignedURL 获取预签名URL
	GetPresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)

	// DeleteFile 删除文件
	DeleteFile(ctx context.Context, objectName string) error

	// ListFiles 列举指定前缀下的对象
	ListFiles(ctx context.Context, prefix string) ([]ObjectInfo, error)

	// 简历评估特定操作
	UploadResumeFile(ctx context.Context, filename string, reader io.Reader, fileSize int64) (string, error)
	UploadReport(ctx context.Context, reportName string, content string) (string, error)

	// 流式上传并计算MD5
	UploadResumeFileStreaming(ctx context.Context, filename string, reader io.Reader, fileSize int64) (string, string, error)
}

// 确保MinIO实现了ObjectStorage接口
var _ ObjectStorage = (*MinIO)(nil)

// MinIO 提供对象存储功能
// 所有对象放在单一桶内，简历与报告用对象键前缀区分
type MinIO struct {
	client *minio.Client
	cfg    *config.MinIOConfig
	bucket string
	logger *log.Logger
}

// NewMinIO 创建MinIO客户端
func NewMinIO(cfg *config.MinIOConfig, logger *log.Logger) (*MinIO, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MinIO配置不能为空")
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	logger.Printf("[MinIO] Initializing client with endpoint: %s, bucket: %s", cfg.Endpoint, cfg.BucketName)

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		logger.Printf("[MinIO] Initialization failed: %v", err)
		return nil, fmt.Errorf("创建MinIO客户端失败: %w", err)
	}

	m := &MinIO{
		client: client,
		cfg:    cfg,
		bucket: cfg.BucketName,
		logger: logger,
	}

	// 确保存储桶存在
	if err := m.ensureBucketExists(cfg.BucketName, cfg.Location); err != nil {
		logger.Printf("[MinIO] Failed to ensure bucket %s exists: %v", cfg.BucketName, err)
		return nil, fmt.Errorf("确保存储桶 %s 存在失败: %w", cfg.BucketName, err)
	}

	// 设置生命周期规则
	if cfg.ResumeExpireDays > 0 || cfg.ReportExpireDays > 0 {
		if err := m.setupLifecycleRules(context.Background()); err != nil {
			logger.Printf("[MinIO] Warning: Failed to set up lifecycle rules: %v", err)
		}
	}

	logger.Printf("[MinIO] Client initialized successfully for endpoint: %s", cfg.Endpoint)
	return m, nil
}

// ensureBucketExists 确保存储桶存在
func (m *MinIO) ensureBucketExists(bucketName, location string) error {
	exists, err := m.client.BucketExists(context.Background(), bucketName)
	if err != nil {
		return fmt.Errorf("检查存储桶 %s 是否存在时出错: %w", bucketName, err)
	}
	if !exists {
		m.logger.Printf("[MinIO] Bucket %s does not exist, attempting to create...", bucketName)
		err = m.client.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{Region: location})
		if err != nil {
			return fmt.Errorf("创建存储桶 %s 失败: %w", bucketName, err)
		}
		m.logger.Printf("[MinIO] Bucket %s created successfully.", bucketName)
	}
	return nil
}

// setupLifecycleRules 为简历与报告前缀分别设置过期规则
func (m *MinIO) setupLifecycleRules(ctx context.Context) error {
	lifecycleCfg := lifecycle.NewConfiguration()

	if m.cfg.ResumeExpireDays > 0 {
		lifecycleCfg.Rules = append(lifecycleCfg.Rules, lifecycle.Rule{
			ID:     "expire-resumes",
			Status: "Enabled",
			RuleFilter: lifecycle.Filter{
				Prefix: constants.ResumeObjectPrefix,
			},
			Expiration: lifecycle.Expiration{
				Days: lifecycle.ExpirationDays(m.cfg.ResumeExpireDays),
			},
		})
	}
	if m.cfg.ReportExpireDays > 0 {
		lifecycleCfg.Rules = append(lifecycleCfg.Rules, lifecycle.Rule{
			ID:     "expire-reports",
			Status: "Enabled",
			RuleFilter: lifecycle.Filter{
				Prefix: constants.ReportObjectPrefix,
			},
			Expiration: lifecycle.Expiration{
				Days: lifecycle.ExpirationDays(m.cfg.ReportExpireDays),
			},
		})
	}

	if len(lifecycleCfg.Rules) == 0 {
		return nil
	}

	if err := m.client.SetBucketLifecycle(ctx, m.bucket, lifecycleCfg); err != nil {
		return fmt.Errorf("设置存储桶 %s 生命周期失败: %w", m.bucket, err)
	}
	m.logger.Printf("[MinIO] Lifecycle rules setup completed for bucket %s.", m.bucket)
	return nil
}

// UploadFile 上传文件到指定对象键
func (m *MinIO) UploadFile(ctx context.Context, objectName string, reader io.Reader, fileSize int64, contentType string) (string, error) {
	if m.cfg.EnableTestLogging && m.logger.Writer() != io.Discard {
		m.logger.Printf("[MinIO-UploadFile] Uploading: ObjectName='%s', Size=%d, ContentType='%s'", objectName, fileSize, contentType)
	}

	info, err := m.client.PutObject(ctx, m.bucket, objectName, reader, fileSize, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("上传对象 %s/%s 失败: %w", m.bucket, objectName, err)
	}

	if m.cfg.EnableTestLogging && m.logger.Writer() != io.Discard {
		m.logger.Printf("[MinIO-UploadFile] Successfully uploaded %s, ETag: %s, Size: %d", objectName, info.ETag, info.Size)
	}
	return objectName, nil
}

// UploadResumeFile 上传原始简历文件，对象键形如 resumes/<filename>
func (m *MinIO) UploadResumeFile(ctx context.Context, filename string, reader io.Reader, fileSize int64) (string, error) {
	objectName := constants.ResumeObjectPrefix + filepath.Base(filename)
	contentType := getContentType(filepath.Ext(filename))
	return m.UploadFile(ctx, objectName, reader, fileSize, contentType)
}

// UploadReport 上传评估报告文本，对象键形如 reports/<reportName>
func (m *MinIO) UploadReport(ctx context.Context, reportName string, content string) (string, error) {
	objectName := constants.ReportObjectPrefix + filepath.Base(reportName)
	return m.UploadFile(ctx, objectName, strings.NewReader(content), int64(len(content)), "text/plain")
}

// UploadResumeFileStreaming 流式上传简历文件并同时计算MD5
// 返回: objectKey, md5Hex, error
func (m *MinIO) UploadResumeFileStreaming(ctx context.Context, filename string, reader io.Reader, fileSize int64) (string, string, error) {
	objectName := constants.ResumeObjectPrefix + filepath.Base(filename)
	contentType := getContentType(filepath.Ext(filename))

	// 使用TeeReader在上传的同时计算MD5
	md5Hash := md5.New()
	teeReader := io.TeeReader(reader, md5Hash)

	info, err := m.client.PutObject(ctx, m.bucket, objectName, teeReader, fileSize, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", "", fmt.Errorf("流式上传文件到MinIO失败: %w", err)
	}

	md5Hex := hex.EncodeToString(md5Hash.Sum(nil))

	if m.cfg.EnableTestLogging && m.logger.Writer() != io.Discard {
		m.logger.Printf("[MinIO-UploadResumeFileStreaming] Successfully uploaded %s, ETag: %s, Size: %d, MD5: %s",
			objectName, info.ETag, info.Size, md5Hex)
	}
	return objectName, md5Hex, nil
}

// DownloadFile 下载文件
func (m *MinIO) DownloadFile(ctx context.Context, objectName string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("获取对象 %s/%s 失败: %w", m.bucket, objectName, err)
	}
	defer obj.Close()

	// Stat能区分对象不存在与读取失败
	stat, err := obj.Stat()
	if err != nil {
		return nil, fmt.Errorf("获取对象 %s/%s 状态失败: %w", m.bucket, objectName, err)
	}

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("读取对象 %s/%s 数据失败: %w", m.bucket, objectName, err)
	}

	if m.cfg.EnableTestLogging && m.logger.Writer() != io.Discard {
		m.logger.Printf("[MinIO-DownloadFile] Downloaded %d bytes from %s (ContentType=%s)", len(data), objectName, stat.ContentType)
	}
	return data, nil
}

// ListFiles 列举指定前缀下的对象
func (m *MinIO) ListFiles(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	objects := make([]ObjectInfo, 0)

	for object := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if object.Err != nil {
			return nil, fmt.Errorf("列举对象失败 (前缀 %s): %w", prefix, object.Err)
		}
		objects = append(objects, ObjectInfo{
			Key:          object.Key,
			Size:         object.Size,
			LastModified: object.LastModified,
			ContentType:  object.ContentType,
		})
	}
	return objects, nil
}

// GetPresignedURL 获取预签名URL
func (m *MinIO) GetPresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	presignedURL, err := m.client.PresignedGetObject(ctx, m.bucket, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("生成MinIO预签名URL失败: %w", err)
	}
	return presignedURL.String(), nil
}

// DeleteFile 删除文件
func (m *MinIO) DeleteFile(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("删除对象 %s 失败: %w", objectName, err)
	}
	if m.cfg.EnableTestLogging && m.logger.Writer() != io.Discard {
		m.logger.Printf("[MinIO-DeleteFile] Successfully deleted %s", objectName)
	}
	return nil
}

// 获取内容类型
func getContentType(ext string) string {
	ext = strings.ToLower(ext)
	switch ext {
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".txt":
		return "text/plain"
	case ".html", ".htm":
		return "text/html"
	default:
		return "application/octet-stream"
	}
}
