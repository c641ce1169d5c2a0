package types

import (
	"fmt"
	"time"

	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/constants"
)

// Field 表示一个可能缺失的提取字段
// 用显式的Found标志代替魔法字符串，渲染时才落到哨兵文案
type Field struct {
	Value string `json:"value"`
	Found bool   `json:"found"`
}

// FoundField 构造一个成功提取的字段
func FoundField(value string) Field {
	return Field{Value: value, Found: true}
}

// MissingField 构造一个未找到的字段
func MissingField() Field {
	return Field{}
}

// OrElse 返回字段值，未找到时返回给定的哨兵文案
func (f Field) OrElse(sentinel string) string {
	if f.Found {
		return f.Value
	}
	return sentinel
}

// ExtractedIdentity 从简历原始文本中提取的身份信息
// 每次评估创建一次，创建后不再修改
type ExtractedIdentity struct {
	Name     string   `json:"name"`     // 简历首个非空行
	Email    Field    `json:"email"`    // 第一个匹配到的邮箱地址
	Projects []string `json:"projects"` // "project(s):"之后到行尾的片段；至少一个元素
}

// SkillAssessment 技能匹配结果
// 不变式: Present ∪ Missing = 岗位要求的全部技能，且两者不相交
type SkillAssessment struct {
	Present []string `json:"present"` // 简历中出现的技能
	Missing []string `json:"missing"` // 简历中缺失的技能
}

// SimilarityResult 简历与JD的相似度得分
// 未提供JD或打分退化时Available为false
type SimilarityResult struct {
	Score     float64 `json:"score"` // [0,100]，保留两位小数
	Available bool    `json:"available"`
}

// AvailableScore 构造一个有效的相似度结果
func AvailableScore(score float64) SimilarityResult {
	return SimilarityResult{Score: score, Available: true}
}

// NotAvailable 构造一个不可用的相似度结果
func NotAvailable() SimilarityResult {
	return SimilarityResult{}
}

// Recommendation 推荐路径
type Recommendation string

const (
	// RecommendationImprove 得分低于阈值：简历需要针对JD改进
	RecommendationImprove Recommendation = "NEEDS_IMPROVEMENT"
	// RecommendationAligned 得分达到阈值：简历与JD匹配良好
	RecommendationAligned Recommendation = "WELL_ALIGNED"
	// RecommendationNone 无JD可比较时不给推荐
	RecommendationNone Recommendation = "NOT_EVALUATED"
)

// EvaluationReport 一次简历评估的完整结果
// 由核心流水线生成后不可变地交给持久化/通知组件
type EvaluationReport struct {
	Identity       ExtractedIdentity `json:"identity"`
	JobRole        string            `json:"job_role"`
	Skills         SkillAssessment   `json:"skills"`
	Similarity     SimilarityResult  `json:"similarity"`
	Recommendation Recommendation    `json:"recommendation"`
	GeneratedAt    time.Time         `json:"generated_at"`
}

// ScoreText 相似度得分的展示文案
func (r *EvaluationReport) ScoreText() string {
	if !r.Similarity.Available {
		return constants.ScoreNotAvailable
	}
	return fmt.Sprintf("%.2f", r.Similarity.Score)
}
