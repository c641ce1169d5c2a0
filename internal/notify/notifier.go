package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/config"
	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/constants"
	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/logger"
	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/storage"
	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/types"
)

// Notifier 把评估结果摘要投递到通知队列，由下游消费者发送给管理员
type Notifier struct {
	queue storage.MessageQueue
	cfg   *config.RabbitMQConfig
}

// NewNotifier 创建通知组件
func NewNotifier(queue storage.MessageQueue, cfg *config.RabbitMQConfig) *Notifier {
	return &Notifier{queue: queue, cfg: cfg}
}

// NotifyEvaluated 发布评估完成通知
// 通知属于尽力而为的旁路操作，调用方不应因为它失败而中断主流程
func (n *Notifier) NotifyEvaluated(ctx context.Context, resumeID string, report *types.EvaluationReport, resumeURL, reportURL string) error {
	if n.queue == nil {
		return fmt.Errorf("消息队列未配置")
	}

	msg := storage.EvaluationNotification{
		MessageID:   uuid.NewString(),
		ResumeID:    resumeID,
		Subject:     BuildSubject(report),
		Body:        BuildBody(report, resumeURL, reportURL),
		Name:        report.Identity.Name,
		Email:       report.Identity.Email.OrElse(constants.EmailNotFoundText),
		JobRole:     report.JobRole,
		ScoreText:   report.ScoreText(),
		ResumeURL:   resumeURL,
		ReportURL:   reportURL,
		EvaluatedAt: time.Now(),
	}

	err := n.queue.PublishJSON(ctx, n.cfg.NotificationsExchange, n.cfg.EvaluatedRoutingKey, msg, true)
	if err != nil {
		logger.Error().Err(err).Str("resume_id", resumeID).Msg("发布评估通知失败")
		return fmt.Errorf("发布评估通知失败: %w", err)
	}

	logger.Info().Str("resume_id", resumeID).Str("message_id", msg.MessageID).Msg("评估通知已发布")
	return nil
}

// BuildSubject 生成通知主题
func BuildSubject(report *types.EvaluationReport) string {
	return fmt.Sprintf("Resume Evaluated for %s", report.Identity.Name)
}

// BuildBody 生成邮件风格的通知正文
func BuildBody(report *types.EvaluationReport, resumeURL, reportURL string) string {
	present := "None"
	if len(report.Skills.Present) > 0 {
		present = strings.Join(report.Skills.Present, ", ")
	}
	missing := "None"
	if len(report.Skills.Missing) > 0 {
		missing = strings.Join(report.Skills.Missing, ", ")
	}

	score := report.ScoreText()
	if report.Similarity.Available {
		score += "%"
	}

	var b strings.Builder
	b.WriteString("Dear Admin,\n\n")
	b.WriteString("A new resume has been successfully evaluated. Please find the summary below:\n\n")
	fmt.Fprintf(&b, "Student Name: %s\n", report.Identity.Name)
	fmt.Fprintf(&b, "Email: %s\n", report.Identity.Email.OrElse(constants.EmailNotFoundText))
	fmt.Fprintf(&b, "Job Role: %s\n", report.JobRole)
	fmt.Fprintf(&b, "Match Score: %s\n", score)
	fmt.Fprintf(&b, "Present Skills: %s\n", present)
	fmt.Fprintf(&b, "Missing Skills: %s\n\n", missing)
	if resumeURL != "" {
		fmt.Fprintf(&b, "Resume File: %s\n", resumeURL)
	}
	if reportURL != "" {
		fmt.Fprintf(&b, "Evaluation Report: %s\n", reportURL)
	}
	b.WriteString("\nKindly review the evaluation and take appropriate action if needed.\n\n")
	b.WriteString("Regards,\nSmart Resume Evaluator System\n")
	return b.String()
}
