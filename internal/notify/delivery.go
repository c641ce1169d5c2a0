package notify

import (
	"encoding/json"

	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/logger"
	"github.com/Rachit-Jain-24/AI-Powered-Resume-Evaluator/internal/storage"
)

// HandleDelivery 消费通知队列中的一条消息并投递给管理员
// 当前的投递方式是结构化日志输出，接SMTP等真实通道时替换这里即可
// 返回true表示消息已消费（确认），无法解析的消息同样确认掉，避免反复重新入队
func HandleDelivery(body []byte) bool {
	var msg storage.EvaluationNotification
	if err := json.Unmarshal(body, &msg); err != nil {
		logger.Error().Err(err).Int("body_bytes", len(body)).Msg("解析评估通知失败，丢弃消息")
		return true
	}

	logger.Info().
		Str("message_id", msg.MessageID).
		Str("resume_id", msg.ResumeID).
		Str("subject", msg.Subject).
		Str("job_role", msg.JobRole).
		Str("score", msg.ScoreText).
		Msg("投递评估通知")
	logger.Info().Str("message_id", msg.MessageID).Msg(msg.Body)
	return true
}
