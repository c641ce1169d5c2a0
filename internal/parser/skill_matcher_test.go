package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleResume = `Jane Doe
jane.doe@example.com

Projects: Built a churn prediction model in Python
Experienced with machine learning pipelines and model deployment.
`

// TestMatchSkillsSplit 验证技能被正确划分为出现/缺失两组
func TestMatchSkillsSplit(t *testing.T) {
	required := []string{"python", "machine learning", "sql"}

	assessment := MatchSkills(sampleResume, required)

	assert.Equal(t, []string{"python", "machine learning"}, assessment.Present)
	assert.Equal(t, []string{"sql"}, assessment.Missing)
}

// TestMatchSkillsCaseInsensitive 匹配对大小写不敏感
func TestMatchSkillsCaseInsensitive(t *testing.T) {
	assessment := MatchSkills("Expert in PYTHON and Machine Learning", []string{"Python", "machine learning"})

	assert.Equal(t, []string{"Python", "machine learning"}, assessment.Present)
	assert.Empty(t, assessment.Missing)
}

// TestMatchSkillsPartition 两组的并集等于要求清单且互不相交
func TestMatchSkillsPartition(t *testing.T) {
	required := []string{"go", "docker", "kubernetes", "rust", "terraform"}
	assessment := MatchSkills("go developer using docker daily", required)

	assert.Len(t, assessment.Present, 2)
	assert.Len(t, assessment.Missing, 3)
	assert.Equal(t, len(required), len(assessment.Present)+len(assessment.Missing))

	seen := make(map[string]bool)
	for _, s := range assessment.Present {
		seen[s] = true
	}
	for _, s := range assessment.Missing {
		assert.False(t, seen[s], "技能 %q 不应同时出现在两组中", s)
	}
}

// TestMatchSkillsUnknownRole 要求清单为空时两组均为空，不视为错误
func TestMatchSkillsUnknownRole(t *testing.T) {
	assessment := MatchSkills(sampleResume, nil)

	assert.NotNil(t, assessment.Present)
	assert.NotNil(t, assessment.Missing)
	assert.Empty(t, assessment.Present)
	assert.Empty(t, assessment.Missing)
}

// TestMatchSkillsEmptyResume 空简历文本下所有技能都缺失
func TestMatchSkillsEmptyResume(t *testing.T) {
	required := []string{"python", "sql"}
	assessment := MatchSkills("", required)

	assert.Empty(t, assessment.Present)
	assert.Equal(t, required, assessment.Missing)
}

// TestMatchSkillsKeepsEveryRequiredEntry 清单里的每个条目都落入两组之一，
// 包括空字符串这样的退化条目（空串是任何文本的子串，归入出现组）
func TestMatchSkillsKeepsEveryRequiredEntry(t *testing.T) {
	required := []string{"python", "", "sql"}
	assessment := MatchSkills("python developer", required)

	assert.Equal(t, len(required), len(assessment.Present)+len(assessment.Missing))
	assert.Equal(t, []string{"python", ""}, assessment.Present)
	assert.Equal(t, []string{"sql"}, assessment.Missing)
}

// TestMatchSkillsSubstringSemantics 子串匹配: 多词技能不会被分词拆散
func TestMatchSkillsSubstringSemantics(t *testing.T) {
	assessment := MatchSkills("worked on natural language processing systems", []string{"natural language processing"})
	assert.Equal(t, []string{"natural language processing"}, assessment.Present)
}
