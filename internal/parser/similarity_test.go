package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScoreIdenticalDocuments 完全相同的文档得分应为100.00
func TestScoreIdenticalDocuments(t *testing.T) {
	scorer := NewSimilarityScorer()
	doc := "experienced python developer with machine learning background"

	score, err := scorer.Score(doc, doc)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, score, 0.001, "相同文档的余弦相似度应为满分")
}

// TestScoreDisjointDocuments 完全无共同词项的文档得分应为0.00
func TestScoreDisjointDocuments(t *testing.T) {
	scorer := NewSimilarityScorer()

	score, err := scorer.Score("python django flask", "kubernetes terraform ansible")
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

// TestScoreSymmetry 打分必须对称: Score(a,b) == Score(b,a)
func TestScoreSymmetry(t *testing.T) {
	scorer := NewSimilarityScorer()
	docA := "data scientist skilled in python machine learning and statistics"
	docB := "looking for machine learning engineer with python experience"

	scoreAB, err := scorer.Score(docA, docB)
	require.NoError(t, err)
	scoreBA, err := scorer.Score(docB, docA)
	require.NoError(t, err)

	assert.Equal(t, scoreAB, scoreBA, "参数顺序不应影响得分")
}

// TestScoreDeterministic 相同输入重复调用结果一致
func TestScoreDeterministic(t *testing.T) {
	scorer := NewSimilarityScorer()
	docA := "golang backend developer rabbitmq redis mysql"
	docB := "backend role requiring golang mysql and redis"

	first, err := scorer.Score(docA, docB)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := scorer.Score(docA, docB)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

// TestScoreRangeAndPrecision 得分落在[0,100]且保留两位小数
func TestScoreRangeAndPrecision(t *testing.T) {
	scorer := NewSimilarityScorer()
	docA := "python sql data analysis visualization reporting"
	docB := "sql reporting dashboard development and data modeling"

	score, err := scorer.Score(docA, docB)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 100.0)
	// 两位小数: 放大100倍后应为整数
	scaled := score * 100
	assert.InDelta(t, scaled, float64(int64(scaled+0.5)), 1e-6)
}

// TestScoreEmptyDocument 任一文档归一化后为空时返回ErrScoringUnavailable
func TestScoreEmptyDocument(t *testing.T) {
	scorer := NewSimilarityScorer()

	_, err := scorer.Score("", "python developer")
	assert.ErrorIs(t, err, ErrScoringUnavailable)

	_, err = scorer.Score("python developer", "")
	assert.ErrorIs(t, err, ErrScoringUnavailable)

	// 只含停用词的文档过滤后同样为空
	_, err = scorer.Score("the a an of", "python developer")
	assert.ErrorIs(t, err, ErrScoringUnavailable)
}

// TestNgramTerms bigram在unigram之后生成，数量为2n-1
func TestNgramTerms(t *testing.T) {
	terms := ngramTerms([]string{"machine", "learning", "engineer"})
	assert.Equal(t, []string{
		"machine", "learning", "engineer",
		"machine learning", "learning engineer",
	}, terms)

	assert.Nil(t, ngramTerms(nil))
	assert.Equal(t, []string{"solo"}, ngramTerms([]string{"solo"}))
}

// TestScoreBigramSensitivity 词序不同的文档不应得满分
func TestScoreBigramSensitivity(t *testing.T) {
	scorer := NewSimilarityScorer()

	score, err := scorer.Score("machine learning engineer", "engineer learning machine")
	require.NoError(t, err)
	assert.Less(t, score, 100.0, "bigram应区分词序")
	assert.Greater(t, score, 0.0, "unigram仍然完全重叠")
}
