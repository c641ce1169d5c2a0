package models

import (
	"time"

	"gorm.io/datatypes"
)

// EvaluationRecord 简历评估记录表
// ATSScore为-1表示评估时没有可用的相似度得分
type EvaluationRecord struct {
	ResumeID          string         `gorm:"type:char(36);primaryKey"`
	Name              string         `gorm:"type:varchar(255);index:idx_er_name"`
	Email             string         `gorm:"type:varchar(255);index:idx_er_email"`
	JobRole           string         `gorm:"type:varchar(255);index:idx_er_job_role"`
	ATSScore          float64        `gorm:"type:double;default:-1"`
	Recommendation    string         `gorm:"type:varchar(50)"`
	PresentSkillsJSON datatypes.JSON `gorm:"type:json"`
	MissingSkillsJSON datatypes.JSON `gorm:"type:json"`
	ResumeObjectKey   string         `gorm:"type:varchar(1024)"`
	ReportObjectKey   string         `gorm:"type:varchar(1024)"`
	ReportURL         string         `gorm:"type:varchar(2048)"`
	RawFileMD5        string         `gorm:"type:char(32);index:idx_er_raw_file_md5"`
	UploadedAt        time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);index:idx_er_uploaded_at"`
	CreatedAt         time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt         time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`
}

func (EvaluationRecord) TableName() string {
	return "evaluation_records"
}
