package processor

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/catalog"
	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTextExtractor 返回固定文本的测试替身
type stubTextExtractor struct {
	text string
	err  error
}

func (s *stubTextExtractor) ExtractFromFile(ctx context.Context, filePath string) (string, error) {
	return s.text, s.err
}

func (s *stubTextExtractor) ExtractTextFromReader(ctx context.Context, reader io.Reader, uri string) (string, error) {
	return s.text, s.err
}

func (s *stubTextExtractor) ExtractTextFromBytes(ctx context.Context, data []byte, uri string) (string, error) {
	return s.text, s.err
}

func newTestPipeline(cat *catalog.SkillCatalog) *EvaluationPipeline {
	return NewEvaluationPipeline(
		[]ComponentOpt{WithcompCatalog(cat)},
		[]SettingOpt{
			WithsetThreshold(80),
			WithsetLogger(log.New(io.Discard, "", 0)),
			WithsetTimelocation(time.UTC),
		},
	)
}

const testResume = `Jane Doe
jane.doe@example.com

Projects: Churn prediction model
Skilled in python and machine learning.
`

// TestEvaluateFullReport 完整评估：身份、技能、相似度、推荐路径齐全
func TestEvaluateFullReport(t *testing.T) {
	cat := catalog.NewFromMap(map[string][]string{
		"Data Scientist": {"python", "machine learning", "sql"},
	})
	pipeline := newTestPipeline(cat)

	jd := "Looking for a data scientist skilled in python, machine learning and sql."
	report, err := pipeline.Evaluate(context.Background(), testResume, "Data Scientist", jd)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", report.Identity.Name)
	assert.Equal(t, "jane.doe@example.com", report.Identity.Email.Value)
	assert.Equal(t, "Data Scientist", report.JobRole)
	assert.Equal(t, []string{"python", "machine learning"}, report.Skills.Present)
	assert.Equal(t, []string{"sql"}, report.Skills.Missing)
	assert.True(t, report.Similarity.Available)
	assert.GreaterOrEqual(t, report.Similarity.Score, 0.0)
	assert.LessOrEqual(t, report.Similarity.Score, 100.0)
	assert.False(t, report.GeneratedAt.IsZero())
	assert.Equal(t, time.UTC, report.GeneratedAt.Location())
}

// TestEvaluateWithoutJD 未提供JD时相似度不可用且不给推荐
func TestEvaluateWithoutJD(t *testing.T) {
	pipeline := newTestPipeline(catalog.NewFromMap(nil))

	report, err := pipeline.Evaluate(context.Background(), testResume, "Data Scientist", "")
	require.NoError(t, err)

	assert.False(t, report.Similarity.Available)
	assert.Equal(t, types.RecommendationNone, report.Recommendation)
}

// TestEvaluateDegenerateJD JD归一化后为空时得分退化为不可用，而不是失败
func TestEvaluateDegenerateJD(t *testing.T) {
	pipeline := newTestPipeline(catalog.NewFromMap(nil))

	report, err := pipeline.Evaluate(context.Background(), testResume, "Data Scientist", "the a of !!!")
	require.NoError(t, err)
	assert.False(t, report.Similarity.Available)
}

// TestEvaluateUnknownRole 未知岗位两组技能均为空
func TestEvaluateUnknownRole(t *testing.T) {
	cat := catalog.NewFromMap(map[string][]string{"Data Scientist": {"python"}})
	pipeline := newTestPipeline(cat)

	report, err := pipeline.Evaluate(context.Background(), testResume, "Astronaut", "")
	require.NoError(t, err)
	assert.Empty(t, report.Skills.Present)
	assert.Empty(t, report.Skills.Missing)
}

// TestRecommendThreshold 推荐路径以阈值为界: 低于走改进，达到走匹配
func TestRecommendThreshold(t *testing.T) {
	pipeline := newTestPipeline(nil)

	assert.Equal(t, types.RecommendationImprove, pipeline.recommend(types.AvailableScore(79.99)))
	assert.Equal(t, types.RecommendationAligned, pipeline.recommend(types.AvailableScore(80)))
	assert.Equal(t, types.RecommendationAligned, pipeline.recommend(types.AvailableScore(100)))
	assert.Equal(t, types.RecommendationNone, pipeline.recommend(types.NotAvailable()))
}

// TestExtractResumeText 文本提取成功与各类失败路径
func TestExtractResumeText(t *testing.T) {
	pipeline := NewEvaluationPipeline(
		[]ComponentOpt{WithcompTextextractor(&stubTextExtractor{text: "resume body"})},
		[]SettingOpt{WithsetLogger(log.New(io.Discard, "", 0))},
	)

	text, err := pipeline.ExtractResumeText(context.Background(), "uuid-1", []byte("raw"), "resume.pdf")
	require.NoError(t, err)
	assert.Equal(t, "resume body", text)

	// 提取结果为空白视为提取失败
	pipeline.TextExtractor = &stubTextExtractor{text: "   \n "}
	_, err = pipeline.ExtractResumeText(context.Background(), "uuid-2", []byte("raw"), "resume.pdf")
	assert.ErrorIs(t, err, ErrExtractionFailed)

	// 未配置提取器
	pipeline.TextExtractor = nil
	_, err = pipeline.ExtractResumeText(context.Background(), "uuid-3", []byte("raw"), "resume.pdf")
	assert.ErrorIs(t, err, ErrExtractionFailed)
}

// TestEvaluateCancelledContext 已取消的context直接返回错误
func TestEvaluateCancelledContext(t *testing.T) {
	pipeline := newTestPipeline(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pipeline.Evaluate(ctx, testResume, "Data Scientist", "")
	assert.ErrorIs(t, err, context.Canceled)
}
