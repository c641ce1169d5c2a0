package parser

import (
	"strings"

	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/types"
)

// MatchSkills 把岗位要求的技能划分为简历中出现/缺失两组
// 技能短语直接在原始文本上做大小写不敏感的子串匹配，
// 这样"machine learning"这类多词技能不会被分词拆散
// 遍历顺序跟随目录中的技能顺序，相同输入得到相同划分
func MatchSkills(resumeText string, requiredSkills []string) types.SkillAssessment {
	assessment := types.SkillAssessment{
		Present: []string{},
		Missing: []string{},
	}

	// 岗位未知（技能列表为空）时两组都为空，不视为错误
	if len(requiredSkills) == 0 {
		return assessment
	}

	loweredResume := strings.ToLower(resumeText)
	for _, skill := range requiredSkills {
		if strings.Contains(loweredResume, strings.ToLower(skill)) {
			assessment.Present = append(assessment.Present, skill)
		} else {
			assessment.Missing = append(assessment.Missing, skill)
		}
	}
	return assessment
}
