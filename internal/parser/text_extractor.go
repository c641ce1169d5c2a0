package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// TextExtractor 简历文本提取器接口
type TextExtractor interface {
	// ExtractFromFile 从本地文件提取纯文本
	ExtractFromFile(ctx context.Context, filePath string) (string, error)

	// ExtractTextFromReader 从io.Reader提取纯文本
	ExtractTextFromReader(ctx context.Context, reader io.Reader, uri string) (string, error)

	// ExtractTextFromBytes 从字节数组提取纯文本
	ExtractTextFromBytes(ctx context.Context, data []byte, uri string) (string, error)
}

// RemoteTextExtractor 是基于Apache Tika的文档解析器，通过HTTP调用外部服务
type RemoteTextExtractor struct {
	// Tika服务器地址，例如 http://localhost:9998
	ServerURL string
	// HTTP客户端，可配置超时等参数
	Client *http.Client
	// 日志记录
	logger *log.Logger
}

// RemoteOption 定义配置选项函数
type RemoteOption func(*RemoteTextExtractor)

// WithRemoteTimeout 配置HTTP客户端超时时间
func WithRemoteTimeout(timeout time.Duration) RemoteOption {
	return func(e *RemoteTextExtractor) {
		e.Client.Timeout = timeout
	}
}

// WithRemoteLogger 配置自定义日志记录器
func WithRemoteLogger(logger *log.Logger) RemoteOption {
	return func(e *RemoteTextExtractor) {
		e.logger = logger
	}
}

// 确保RemoteTextExtractor实现了TextExtractor接口
var _ TextExtractor = (*RemoteTextExtractor)(nil)

// NewRemoteTextExtractor 创建一个新的远程文档解析器
func NewRemoteTextExtractor(serverURL string, options ...RemoteOption) TextExtractor {
	// 设置默认的HTTP客户端，包含合理的超时设置
	client := &http.Client{
		Timeout: 60 * time.Second,
	}

	extractor := &RemoteTextExtractor{
		ServerURL: serverURL,
		Client:    client,
		logger:    log.New(os.Stderr, "[TextExtract] ", log.LstdFlags),
	}

	// 应用选项
	for _, option := range options {
		option(extractor)
	}

	return extractor
}

// ExtractTextFromReader 从io.Reader提取文本内容
func (e *RemoteTextExtractor) ExtractTextFromReader(ctx context.Context, reader io.Reader, uri string) (string, error) {
	startTime := time.Now()
	e.logger.Printf("开始从Reader提取文档文本 (URI: %s)", uri)

	// 读取所有内容到内存
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("读取文档内容失败: %w", err)
	}

	text, err := e.ExtractTextFromBytes(ctx, data, uri)

	duration := time.Since(startTime)
	if err != nil {
		e.logger.Printf("从Reader提取文档失败: %s (用时 %.2f秒)", err, duration.Seconds())
		return "", err
	}

	e.logger.Printf("文档文本提取完成: 提取了 %d 个字符 (用时 %.2f秒)", len(text), duration.Seconds())
	return text, nil
}

// ExtractTextFromBytes 从字节数组提取文本内容
func (e *RemoteTextExtractor) ExtractTextFromBytes(ctx context.Context, data []byte, uri string) (string, error) {
	// 构建请求URL - 纯文本模式
	url := fmt.Sprintf("%s/tika", e.ServerURL)

	// 创建请求
	req, err := http.NewRequestWithContext(ctx, "PUT", url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("创建HTTP请求失败: %w", err)
	}

	// 设置头信息
	req.Header.Set("Content-Type", contentTypeForURI(uri))
	req.Header.Set("Accept", "text/plain")

	// 如果有URI，添加到请求头
	if uri != "" {
		req.Header.Set("X-Tika-Resource-Name", uri)
	}

	// 发送请求
	resp, err := e.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("发送请求到Tika服务器失败: %w", err)
	}
	defer resp.Body.Close()

	// 检查响应状态
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tika服务器返回错误状态码: %d", resp.StatusCode)
	}

	// 读取响应内容
	textBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("读取Tika响应失败: %w", err)
	}

	return string(textBytes), nil
}

// ExtractFromFile 从本地文件提取文本内容
func (e *RemoteTextExtractor) ExtractFromFile(ctx context.Context, filePath string) (string, error) {
	startTime := time.Now()
	e.logger.Printf("开始处理文档: %s", filePath)

	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("打开文档 %s 失败: %w", filePath, err)
	}
	defer file.Close()

	// 获取文件大小，用于日志记录
	fileInfo, err := file.Stat()
	if err == nil {
		e.logger.Printf("文档大小: %.2f MB", float64(fileInfo.Size())/1024/1024)
	}

	text, err := e.ExtractTextFromReader(ctx, file, filePath)

	duration := time.Since(startTime)
	if err != nil {
		e.logger.Printf("文档处理失败: %s (用时 %.2f秒)", err, duration.Seconds())
		return "", err
	}

	e.logger.Printf("文档处理完成: 提取了 %d 个字符 (用时 %.2f秒)", len(text), duration.Seconds())
	return text, nil
}

// contentTypeForURI 根据文件扩展名推断Content-Type
func contentTypeForURI(uri string) string {
	switch strings.ToLower(filepath.Ext(uri)) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
