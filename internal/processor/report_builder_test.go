package processor

import (
	"strings"
	"testing"
	"time"

	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/constants"
	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/types"
	"github.com/stretchr/testify/assert"
)

// TestRenderReportText 渲染结果包含结构化记录的每个字段
func TestRenderReportText(t *testing.T) {
	generatedAt := time.Date(2026, 8, 28, 15, 30, 0, 0, time.UTC)
	report := &types.EvaluationReport{
		Identity: types.ExtractedIdentity{
			Name:     "Jane Doe",
			Email:    types.FoundField("jane@example.com"),
			Projects: []string{"Churn model", "Dashboard"},
		},
		JobRole: "Data Scientist",
		Skills: types.SkillAssessment{
			Present: []string{"python", "machine learning"},
			Missing: []string{"sql"},
		},
		Similarity:     types.AvailableScore(86.5),
		Recommendation: types.RecommendationAligned,
		GeneratedAt:    generatedAt,
	}

	text := RenderReportText(report)

	assert.Contains(t, text, "Name: Jane Doe\n")
	assert.Contains(t, text, "Email: jane@example.com\n")
	assert.Contains(t, text, "Job Role: Data Scientist\n")
	assert.Contains(t, text, "Projects:\nChurn model\nDashboard\n")
	assert.Contains(t, text, "Skills Found:\npython, machine learning\n")
	assert.Contains(t, text, "Missing Skills:\nsql\n")
	assert.Contains(t, text, "ATS Score: 86.50\n")
	assert.Contains(t, text, "Recommendation: WELL_ALIGNED\n")
	assert.Contains(t, text, "Generated At: 2026-08-28T15:30:00Z\n")
}

// TestRenderReportTextSentinels 缺失字段落到哨兵文案
func TestRenderReportTextSentinels(t *testing.T) {
	report := &types.EvaluationReport{
		Identity: types.ExtractedIdentity{
			Name:     "",
			Email:    types.MissingField(),
			Projects: []string{constants.NoProjectsText},
		},
		Similarity:     types.NotAvailable(),
		Recommendation: types.RecommendationNone,
	}

	text := RenderReportText(report)

	assert.Contains(t, text, "Email: "+constants.EmailNotFoundText+"\n")
	assert.Contains(t, text, constants.NoProjectsText)
	assert.Contains(t, text, "ATS Score: "+constants.ScoreNotAvailable+"\n")
	assert.Contains(t, text, "Recommendation: NOT_EVALUATED\n")
}

// TestReportObjectName 姓名中的空格替换为下划线，带时间戳
func TestReportObjectName(t *testing.T) {
	at := time.Date(2026, 8, 28, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, "report_Jane_Doe_20260828_153000.txt", ReportObjectName("Jane Doe", at))
	assert.Equal(t, "report_unknown_20260828_153000.txt", ReportObjectName("   ", at))
}

// TestBuildLearningSuggestions 每个缺失技能对应一条学习资源链接
func TestBuildLearningSuggestions(t *testing.T) {
	suggestions := BuildLearningSuggestions([]string{"sql", "machine learning"})

	assert.Len(t, suggestions, 2)
	assert.Equal(t, "sql", suggestions[0].Skill)
	assert.Equal(t, "https://www.youtube.com/results?search_query=sql+tutorial", suggestions[0].YouTubeURL)
	assert.Equal(t, "https://www.coursera.org/search?query=sql", suggestions[0].CourseraURL)

	// 多词技能的空格在查询串中替换为加号
	assert.True(t, strings.Contains(suggestions[1].YouTubeURL, "machine+learning"))
	assert.True(t, strings.Contains(suggestions[1].CourseraURL, "machine+learning"))
}

// TestBuildLearningSuggestionsEmpty 没有缺失技能时返回空切片
func TestBuildLearningSuggestionsEmpty(t *testing.T) {
	assert.Empty(t, BuildLearningSuggestions(nil))
}
