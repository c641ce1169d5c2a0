package storage

import "time"

// EvaluationNotification 评估完成后投递到通知队列的消息
type EvaluationNotification struct {
	MessageID   string    `json:"message_id"`   // 消息唯一ID
	ResumeID    string    `json:"resume_id"`    // 评估记录主键
	Subject     string    `json:"subject"`      // 通知主题
	Body        string    `json:"body"`         // 通知正文
	Name        string    `json:"name"`         // 候选人姓名
	Email       string    `json:"email"`        // 候选人邮箱
	JobRole     string    `json:"job_role"`     // 目标岗位
	ScoreText   string    `json:"score_text"`   // 得分展示文案
	ResumeURL   string    `json:"resume_url,omitempty"` // 简历文件预签名URL
	ReportURL   string    `json:"report_url,omitempty"` // 评估报告预签名URL
	EvaluatedAt time.Time `json:"evaluated_at"` // 评估时间
}
