package parser

import (
	"testing"

	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/constants"
	"github.com/stretchr/testify/assert"
)

// TestExtractTypicalResume 典型简历的姓名/邮箱/项目提取
func TestExtractTypicalResume(t *testing.T) {
	resume := `Jane Doe
Data Scientist

Contact: jane.doe@example.com

Projects: Churn prediction model using Python
Project - Realtime dashboard with Grafana
`
	extractor := NewDetailExtractor()
	identity := extractor.Extract(resume)

	assert.Equal(t, "Jane Doe", identity.Name)
	assert.True(t, identity.Email.Found)
	assert.Equal(t, "jane.doe@example.com", identity.Email.Value)
	assert.Equal(t, []string{
		"Churn prediction model using Python",
		"Realtime dashboard with Grafana",
	}, identity.Projects)
}

// TestExtractNameSkipsBlankLines 姓名取第一个非空行并去掉首尾空白
func TestExtractNameSkipsBlankLines(t *testing.T) {
	extractor := NewDetailExtractor()
	identity := extractor.Extract("\n\n   John Smith  \nother line")

	assert.Equal(t, "John Smith", identity.Name)
}

// TestExtractEmailFirstMatch 多个邮箱时取全文第一个
func TestExtractEmailFirstMatch(t *testing.T) {
	extractor := NewDetailExtractor()
	identity := extractor.Extract("first@example.com and second@example.org")

	assert.Equal(t, "first@example.com", identity.Email.Value)
}

// TestExtractEmptyInput 空输入: 姓名为空串、邮箱未找到、项目为哨兵序列
func TestExtractEmptyInput(t *testing.T) {
	extractor := NewDetailExtractor()
	identity := extractor.Extract("")

	assert.Equal(t, "", identity.Name)
	assert.False(t, identity.Email.Found)
	assert.Equal(t, []string{constants.NoProjectsText}, identity.Projects)
}

// TestExtractNoProjects 没有项目行时项目序列仍然非空
func TestExtractNoProjects(t *testing.T) {
	extractor := NewDetailExtractor()
	identity := extractor.Extract("John Smith\njohn@example.com\nSkills: Go")

	assert.Equal(t, []string{constants.NoProjectsText}, identity.Projects)
}

// TestExtractProjectsCaseInsensitive "PROJECT"/"projects"等关键词形式都能命中
func TestExtractProjectsCaseInsensitive(t *testing.T) {
	extractor := NewDetailExtractor()
	identity := extractor.Extract("PROJECTS: Inventory system\nproject: Chat bot")

	assert.Equal(t, []string{"Inventory system", "Chat bot"}, identity.Projects)
}

// TestExtractBestEffort 提取器尽力而为，不校验结果的真实性
func TestExtractBestEffort(t *testing.T) {
	extractor := NewDetailExtractor()
	// 第一行不是人名也照常当作姓名
	identity := extractor.Extract("Curriculum Vitae\nalice@example.com")

	assert.Equal(t, "Curriculum Vitae", identity.Name)
	assert.True(t, identity.Email.Found)
}
