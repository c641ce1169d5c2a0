package parser

import (
	"regexp"
	"strings"

	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/constants"
	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/types"
)

// ExtractorRules 细节提取的模式规则
// 作为数据而不是写死的逻辑，便于针对边界情况单独测试
type ExtractorRules struct {
	Email    *regexp.Regexp // 邮箱地址模式
	Projects *regexp.Regexp // 项目行模式，捕获组1为项目描述
}

// DefaultExtractorRules 默认规则集
func DefaultExtractorRules() ExtractorRules {
	return ExtractorRules{
		// 标准邮箱: local-part@domain，允许点、连字符、下划线
		Email: regexp.MustCompile(`[\w.\-]+@[\w.\-]+`),
		// "project"或"projects"后跟可选的冒号/横线，取到行尾
		Projects: regexp.MustCompile(`(?i)projects?\s*[:\-–]?\s*(.+)`),
	}
}

// DetailExtractor 从简历原始文本中提取身份信息的启发式提取器
// 尽力而为，不对提取结果做任何事实校验
type DetailExtractor struct {
	rules ExtractorRules
}

// NewDetailExtractor 创建细节提取器
func NewDetailExtractor() *DetailExtractor {
	return &DetailExtractor{rules: DefaultExtractorRules()}
}

// NewDetailExtractorWithRules 用自定义规则创建细节提取器
func NewDetailExtractorWithRules(rules ExtractorRules) *DetailExtractor {
	return &DetailExtractor{rules: rules}
}

// Extract 提取姓名、邮箱和项目片段
//   - 姓名: 第一个非空行，去掉首尾空白。依赖简历把姓名放在头部的惯例
//   - 邮箱: 全文第一个匹配的邮箱地址，没有则为未找到
//   - 项目: 每个"project(s)"行中关键词之后到行尾的内容；一个都没有时
//     返回单元素的哨兵序列，从不返回空序列
func (e *DetailExtractor) Extract(resumeText string) types.ExtractedIdentity {
	identity := types.ExtractedIdentity{
		Email:    types.MissingField(),
		Projects: []string{},
	}

	for _, line := range strings.Split(resumeText, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			identity.Name = trimmed
			break
		}
	}

	if match := e.rules.Email.FindString(resumeText); match != "" {
		identity.Email = types.FoundField(match)
	}

	for _, match := range e.rules.Projects.FindAllStringSubmatch(resumeText, -1) {
		fragment := strings.TrimSpace(match[1])
		if fragment != "" {
			identity.Projects = append(identity.Projects, fragment)
		}
	}
	if len(identity.Projects) == 0 {
		// 约定项目序列永远非空
		identity.Projects = []string{constants.NoProjectsText}
	}

	return identity
}
