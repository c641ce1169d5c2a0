package handler

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/catalog"
	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/config"
	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/parser"
	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/processor"
	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/storage"
)

// fakeDeduper 记录去重调用的测试替身
type fakeDeduper struct {
	exists   bool
	checkErr error
	addErr   error
	checks   int
	added    []string
}

var _ storage.Deduper = (*fakeDeduper)(nil)

func (f *fakeDeduper) CheckRawFileMD5Exists(ctx context.Context, md5Hex string) (bool, error) {
	f.checks++
	return f.exists, f.checkErr
}

func (f *fakeDeduper) AddRawFileMD5(ctx context.Context, md5Hex string) error {
	f.added = append(f.added, md5Hex)
	return f.addErr
}

// countingExtractor 统计提取次数的文本提取器替身
type countingExtractor struct {
	text  string
	err   error
	calls int
}

func (c *countingExtractor) ExtractFromFile(ctx context.Context, filePath string) (string, error) {
	c.calls++
	return c.text, c.err
}

func (c *countingExtractor) ExtractTextFromReader(ctx context.Context, reader io.Reader, uri string) (string, error) {
	c.calls++
	return c.text, c.err
}

func (c *countingExtractor) ExtractTextFromBytes(ctx context.Context, data []byte, uri string) (string, error) {
	c.calls++
	return c.text, c.err
}

func newTestHandler(ext parser.TextExtractor, dedup storage.Deduper) *EvaluateHandler {
	pipeline := processor.NewEvaluationPipeline(
		[]processor.ComponentOpt{
			processor.WithcompTextextractor(ext),
			processor.WithcompCatalog(catalog.NewFromMap(map[string][]string{
				"Data Scientist": {"python", "sql"},
			})),
		},
		[]processor.SettingOpt{
			processor.WithsetLogger(log.New(io.Discard, "", 0)),
		},
	)

	h := NewEvaluateHandler(&config.Config{}, nil, pipeline, nil)
	h.dedup = dedup
	return h
}

func newTestRequest() *EvaluateRequest {
	return &EvaluateRequest{
		FileData: []byte("%PDF-1.4 fake resume bytes"),
		Filename: "resume.pdf",
		JobRole:  "Data Scientist",
	}
}

// TestHandleEvaluateDuplicateShortCircuit 已登记过的文件不进入评估流程
func TestHandleEvaluateDuplicateShortCircuit(t *testing.T) {
	ext := &countingExtractor{text: "Jane Doe\npython developer"}
	dedup := &fakeDeduper{exists: true}
	h := newTestHandler(ext, dedup)

	resp, err := h.HandleEvaluate(context.Background(), newTestRequest())
	require.NoError(t, err)

	assert.Equal(t, statusDuplicateFile, resp.Status)
	assert.Nil(t, resp.Report)
	assert.Equal(t, 0, ext.calls)
	assert.Empty(t, dedup.added)
}

// TestHandleEvaluateRegistersMD5AfterSuccess 文件MD5在评估成功后才登记
func TestHandleEvaluateRegistersMD5AfterSuccess(t *testing.T) {
	ext := &countingExtractor{text: "Jane Doe\njane@example.com\nskilled in python"}
	dedup := &fakeDeduper{}
	h := newTestHandler(ext, dedup)

	req := newTestRequest()
	resp, err := h.HandleEvaluate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, statusEvaluated, resp.Status)
	assert.Equal(t, 1, dedup.checks)

	md5Sum := md5.Sum(req.FileData)
	require.Len(t, dedup.added, 1)
	assert.Equal(t, hex.EncodeToString(md5Sum[:]), dedup.added[0])
}

// TestHandleEvaluateFailureLeavesMD5Unregistered 提取失败的文件可以原样重试
func TestHandleEvaluateFailureLeavesMD5Unregistered(t *testing.T) {
	ext := &countingExtractor{err: errors.New("corrupt pdf")}
	dedup := &fakeDeduper{}
	h := newTestHandler(ext, dedup)

	_, err := h.HandleEvaluate(context.Background(), newTestRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, processor.ErrExtractionFailed)

	assert.Equal(t, 1, dedup.checks)
	assert.Empty(t, dedup.added)
}

// TestHandleEvaluateDedupCheckErrorProceeds 去重查询失败时照常评估
func TestHandleEvaluateDedupCheckErrorProceeds(t *testing.T) {
	ext := &countingExtractor{text: "Jane Doe\nskilled in python"}
	dedup := &fakeDeduper{checkErr: errors.New("redis down")}
	h := newTestHandler(ext, dedup)

	resp, err := h.HandleEvaluate(context.Background(), newTestRequest())
	require.NoError(t, err)

	assert.Equal(t, statusEvaluated, resp.Status)
	require.Len(t, dedup.added, 1)
}

// TestHandleEvaluateWithoutDeduper 未配置Redis时去重整体跳过
func TestHandleEvaluateWithoutDeduper(t *testing.T) {
	ext := &countingExtractor{text: "Jane Doe\nskilled in python"}
	h := newTestHandler(ext, nil)

	resp, err := h.HandleEvaluate(context.Background(), newTestRequest())
	require.NoError(t, err)
	assert.Equal(t, statusEvaluated, resp.Status)
}

// TestHandleEvaluateInputValidation 缺少文件或岗位直接拒绝
func TestHandleEvaluateInputValidation(t *testing.T) {
	h := newTestHandler(&countingExtractor{text: "x"}, nil)

	_, err := h.HandleEvaluate(context.Background(), &EvaluateRequest{JobRole: "Data Scientist"})
	assert.Error(t, err)

	_, err = h.HandleEvaluate(context.Background(), &EvaluateRequest{FileData: []byte("data")})
	assert.Error(t, err)
}
