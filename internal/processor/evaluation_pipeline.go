package processor

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/catalog"
	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/parser"
	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/types"
)

// Components 聚合所有功能组件依赖，便于集中管理和测试替换
// 流水线只做纯计算，存储与通知等旁路依赖留在上层的handler里
type Components struct {
	TextExtractor   parser.TextExtractor    // 文档文本提取接口
	DetailExtractor *parser.DetailExtractor // 身份信息提取器
	Scorer          *parser.SimilarityScorer
	Catalog         *catalog.SkillCatalog // 岗位技能清单
}

// Settings 纯配置项，不包含任何业务逻辑组件
type Settings struct {
	RecommendationThreshold float64        // 推荐路径的分数阈值
	Debug                   bool           // 是否开启调试模式
	Logger                  *log.Logger    // 日志记录器
	TimeLocation            *time.Location // 时区设置
}

// EvaluationPipeline 简历评估流水线
// 持有组件集合并驱动 提取→匹配→打分→报告 的完整流程
type EvaluationPipeline struct {
	Components
	Settings
}

// ComponentOpt 组件选项类型，仅改变 Components 结构体内的字段
type ComponentOpt func(*Components)

// SettingOpt 设置选项类型，仅改变 Settings 结构体内的字段
type SettingOpt func(*Settings)

// WithcompTextextractor 设置文档文本提取器组件
func WithcompTextextractor(extractor parser.TextExtractor) ComponentOpt {
	return func(c *Components) {
		c.TextExtractor = extractor
	}
}

// WithcompDetailextractor 设置身份信息提取器组件
func WithcompDetailextractor(extractor *parser.DetailExtractor) ComponentOpt {
	return func(c *Components) {
		c.DetailExtractor = extractor
	}
}

// WithcompScorer 设置相似度打分器组件
func WithcompScorer(scorer *parser.SimilarityScorer) ComponentOpt {
	return func(c *Components) {
		c.Scorer = scorer
	}
}

// WithcompCatalog 设置岗位技能清单组件
func WithcompCatalog(cat *catalog.SkillCatalog) ComponentOpt {
	return func(c *Components) {
		c.Catalog = cat
	}
}

// WithsetThreshold 设置推荐路径的分数阈值
func WithsetThreshold(threshold float64) SettingOpt {
	return func(s *Settings) {
		s.RecommendationThreshold = threshold
	}
}

// WithsetDebug 设置调试模式
func WithsetDebug(debug bool) SettingOpt {
	return func(s *Settings) {
		s.Debug = debug
	}
}

// WithsetLogger 设置日志记录器
func WithsetLogger(logger *log.Logger) SettingOpt {
	return func(s *Settings) {
		if logger != nil {
			s.Logger = logger
		} else {
			// 提供一个 discard logger 以防panic
			s.Logger = log.New(io.Discard, "[NilLoggerFallback] ", log.LstdFlags)
		}
	}
}

// WithsetTimelocation 设置时区
func WithsetTimelocation(loc *time.Location) SettingOpt {
	return func(s *Settings) {
		if loc != nil {
			s.TimeLocation = loc
		} else {
			s.TimeLocation = time.Local
		}
	}
}

// NewEvaluationPipeline 创建评估流水线，未显式设置的组件使用默认实现
func NewEvaluationPipeline(compOpts []ComponentOpt, setOpts []SettingOpt) *EvaluationPipeline {
	p := &EvaluationPipeline{
		Components: Components{
			DetailExtractor: parser.NewDetailExtractor(),
			Scorer:          parser.NewSimilarityScorer(),
		},
		Settings: Settings{
			RecommendationThreshold: 80,
			Logger:                  log.New(os.Stderr, "[Evaluation] ", log.LstdFlags),
			TimeLocation:            time.Local,
		},
	}

	for _, opt := range compOpts {
		opt(&p.Components)
	}
	for _, opt := range setOpts {
		opt(&p.Settings)
	}

	return p
}

// ExtractResumeText 从原始文件字节提取简历纯文本
func (p *EvaluationPipeline) ExtractResumeText(ctx context.Context, uuid string, data []byte, filename string) (string, error) {
	if p.TextExtractor == nil {
		return "", NewExtractionError(uuid, "未配置文本提取器")
	}

	text, err := p.TextExtractor.ExtractTextFromBytes(ctx, data, filename)
	if err != nil {
		return "", NewExtractionError(uuid, err.Error())
	}
	if strings.TrimSpace(text) == "" {
		return "", NewExtractionError(uuid, "提取结果为空文本")
	}

	p.logDebug("简历文本提取完成: %d 个字符 (UUID: %s)", len(text), uuid)
	return text, nil
}

// Evaluate 对简历文本执行完整评估
// jobDescription 为空时跳过相似度打分，报告中的相似度标记为不可用
func (p *EvaluationPipeline) Evaluate(ctx context.Context, resumeText, jobRole, jobDescription string) (*types.EvaluationReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 身份信息提取：任何输入下都产出结果，不会失败
	identity := p.DetailExtractor.Extract(resumeText)

	// 技能匹配：未知岗位得到空的要求清单，两侧均为空
	var required []string
	if p.Catalog != nil {
		required = p.Catalog.RequiredSkills(jobRole)
	}
	skills := parser.MatchSkills(resumeText, required)

	// 相似度打分
	similarity := types.NotAvailable()
	if strings.TrimSpace(jobDescription) != "" {
		score, err := p.Scorer.Score(resumeText, jobDescription)
		if err != nil {
			if !errors.Is(err, parser.ErrScoringUnavailable) {
				return nil, err
			}
			// 归一化后没有任何词元，得分退化为不可用
			p.logDebug("相似度打分退化: %v", err)
		} else {
			similarity = types.AvailableScore(score)
		}
	}

	report := &types.EvaluationReport{
		Identity:       identity,
		JobRole:        jobRole,
		Skills:         skills,
		Similarity:     similarity,
		Recommendation: p.recommend(similarity),
		GeneratedAt:    time.Now().In(p.TimeLocation),
	}

	p.logInfo("评估完成: 岗位=%s, 已具备技能=%d, 缺失技能=%d, 得分=%s",
		jobRole, len(skills.Present), len(skills.Missing), report.ScoreText())
	return report, nil
}

// recommend 根据相似度得分给出推荐路径
func (p *EvaluationPipeline) recommend(similarity types.SimilarityResult) types.Recommendation {
	if !similarity.Available {
		return types.RecommendationNone
	}
	if similarity.Score < p.RecommendationThreshold {
		return types.RecommendationImprove
	}
	return types.RecommendationAligned
}

// logDebug 记录调试级别日志
func (p *EvaluationPipeline) logDebug(format string, args ...interface{}) {
	if p.Debug && p.Logger != nil {
		p.Logger.Printf(format, args...)
	}
}

// logInfo 记录信息级别日志
func (p *EvaluationPipeline) logInfo(format string, args ...interface{}) {
	if p.Logger != nil {
		p.Logger.Printf(format, args...)
	}
}
