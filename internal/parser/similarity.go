package parser

import (
	"errors"
	"io"
	"log"
	"math"
)

// ErrScoringUnavailable 当任一文档在归一化后为空时返回
// 调用方应将其吸收为"得分不可用"，而不是让评估流程失败
var ErrScoringUnavailable = errors.New("相似度打分不可用: 归一化后文档为空")

// SimilarityScorer 文档相似度打分器
// 在unigram+bigram词项空间上构建TF-IDF向量，用余弦相似度换算为0-100的百分比
type SimilarityScorer struct {
	logger *log.Logger
}

// SimilarityOption 打分器配置选项
type SimilarityOption func(*SimilarityScorer)

// WithSimilarityLogger 配置自定义日志记录器
func WithSimilarityLogger(logger *log.Logger) SimilarityOption {
	return func(s *SimilarityScorer) {
		s.logger = logger
	}
}

// NewSimilarityScorer 创建相似度打分器
func NewSimilarityScorer(options ...SimilarityOption) *SimilarityScorer {
	s := &SimilarityScorer{
		logger: log.New(io.Discard, "", 0),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Score 计算两份文档的匹配百分比，范围[0,100]，保留两位小数
// 对称且确定：Score(a,b) == Score(b,a)，相同输入重复调用结果一致
func (s *SimilarityScorer) Score(documentA, documentB string) (float64, error) {
	termsA := ngramTerms(NormalizeFiltered(documentA))
	termsB := ngramTerms(NormalizeFiltered(documentB))

	if len(termsA) == 0 || len(termsB) == 0 {
		s.logger.Printf("打分退化: 文档词项数 a=%d b=%d", len(termsA), len(termsB))
		return 0, ErrScoringUnavailable
	}

	tfA := termFrequencies(termsA)
	tfB := termFrequencies(termsB)

	// 平滑IDF: idf(t) = ln((1+n)/(1+df)) + 1，n为文档数(恒为2)
	idf := make(map[string]float64, len(tfA)+len(tfB))
	for term := range tfA {
		df := 1.0
		if _, ok := tfB[term]; ok {
			df = 2.0
		}
		idf[term] = math.Log(3.0/(1.0+df)) + 1.0
	}
	for term := range tfB {
		if _, ok := idf[term]; !ok {
			idf[term] = math.Log(3.0/2.0) + 1.0
		}
	}

	vectorA := weightVector(tfA, idf)
	vectorB := weightVector(tfB, idf)

	cosine := dotProduct(vectorA, vectorB)
	score := math.Round(cosine*100*100) / 100

	// 浮点误差可能让结果越过边界，夹回[0,100]
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score, nil
}

// ngramTerms 由token序列生成unigram+bigram词项
func ngramTerms(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	terms := make([]string, 0, len(tokens)*2-1)
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}

// termFrequencies 统计词项出现次数
func termFrequencies(terms []string) map[string]float64 {
	tf := make(map[string]float64, len(terms))
	for _, term := range terms {
		tf[term]++
	}
	return tf
}

// weightVector 计算L2归一化后的TF-IDF向量
func weightVector(tf map[string]float64, idf map[string]float64) map[string]float64 {
	vector := make(map[string]float64, len(tf))
	var norm float64
	for term, count := range tf {
		w := count * idf[term]
		vector[term] = w
		norm += w * w
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return vector
	}
	for term := range vector {
		vector[term] /= norm
	}
	return vector
}

// dotProduct 两个稀疏向量的点积
func dotProduct(a, b map[string]float64) float64 {
	// 遍历较小的向量
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for term, wa := range a {
		if wb, ok := b[term]; ok {
			sum += wa * wb
		}
	}
	return sum
}
