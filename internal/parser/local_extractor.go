package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// LocalTextExtractor 本地文档解析器，不依赖外部服务
// 支持 .pdf / .docx / .txt 三种格式
type LocalTextExtractor struct{}

// 确保LocalTextExtractor实现了TextExtractor接口
var _ TextExtractor = (*LocalTextExtractor)(nil)

// NewLocalTextExtractor 创建一个新的本地文档解析器
func NewLocalTextExtractor() TextExtractor {
	return &LocalTextExtractor{}
}

// ExtractFromFile 从本地文件提取文本内容
func (e *LocalTextExtractor) ExtractFromFile(ctx context.Context, filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("读取文档 %s 失败: %w", filePath, err)
	}
	return e.ExtractTextFromBytes(ctx, data, filePath)
}

// ExtractTextFromReader 从io.Reader提取文本内容
func (e *LocalTextExtractor) ExtractTextFromReader(ctx context.Context, reader io.Reader, uri string) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("读取文档内容失败: %w", err)
	}
	return e.ExtractTextFromBytes(ctx, data, uri)
}

// ExtractTextFromBytes 根据文件扩展名分发到对应的解析实现
func (e *LocalTextExtractor) ExtractTextFromBytes(ctx context.Context, data []byte, uri string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch strings.ToLower(filepath.Ext(uri)) {
	case ".pdf":
		return extractPDFText(data)
	case ".docx":
		return extractDocxText(data)
	case ".txt", "":
		return string(data), nil
	default:
		return "", fmt.Errorf("不支持的文件类型: %s", filepath.Ext(uri))
	}
}

// extractPDFText 逐页提取PDF纯文本
func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("解析PDF失败: %w", err)
	}

	var builder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, _ := page.GetPlainText(nil)
		builder.WriteString(text)
	}
	return builder.String(), nil
}

// extractDocxText 提取docx文档正文
func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("解析docx失败: %w", err)
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}
