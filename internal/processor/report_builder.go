package processor

import (
	"fmt"
	"strings"
	"time"

	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/constants"
	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/types"
)

// RenderReportText 把评估结果渲染为纯文本报告
// 结构化记录的每个字段都会出现在渲染结果中，提取失败的字段落到哨兵文案
func RenderReportText(report *types.EvaluationReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Name: %s\n", report.Identity.Name)
	fmt.Fprintf(&b, "Email: %s\n", report.Identity.Email.OrElse(constants.EmailNotFoundText))
	fmt.Fprintf(&b, "Job Role: %s\n", report.JobRole)
	b.WriteString("Projects:\n" + strings.Join(report.Identity.Projects, "\n") + "\n\n")
	b.WriteString("Skills Found:\n" + strings.Join(report.Skills.Present, ", ") + "\n")
	b.WriteString("Missing Skills:\n" + strings.Join(report.Skills.Missing, ", ") + "\n")
	fmt.Fprintf(&b, "\nATS Score: %s\n", report.ScoreText())
	fmt.Fprintf(&b, "Recommendation: %s\n", report.Recommendation)
	fmt.Fprintf(&b, "Generated At: %s\n", report.GeneratedAt.Format(time.RFC3339))

	return b.String()
}

// ReportObjectName 生成报告对象名，姓名中的空格替换为下划线
// 形如 report_Jane_Doe_20260828_153000.txt
func ReportObjectName(name string, generatedAt time.Time) string {
	safeName := strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
	if safeName == "" {
		safeName = "unknown"
	}
	return fmt.Sprintf("report_%s_%s.txt", safeName, generatedAt.Format("20060102_150405"))
}

// LearningSuggestion 针对缺失技能的学习资源链接
type LearningSuggestion struct {
	Skill       string `json:"skill"`
	YouTubeURL  string `json:"youtube_url"`
	CourseraURL string `json:"coursera_url"`
}

// BuildLearningSuggestions 为每个缺失技能生成学习资源链接
func BuildLearningSuggestions(missingSkills []string) []LearningSuggestion {
	suggestions := make([]LearningSuggestion, 0, len(missingSkills))
	for _, skill := range missingSkills {
		query := strings.ReplaceAll(strings.TrimSpace(skill), " ", "+")
		suggestions = append(suggestions, LearningSuggestion{
			Skill:       skill,
			YouTubeURL:  fmt.Sprintf("https://www.youtube.com/results?search_query=%s+tutorial", query),
			CourseraURL: fmt.Sprintf("https://www.coursera.org/search?query=%s", query),
		})
	}
	return suggestions
}
