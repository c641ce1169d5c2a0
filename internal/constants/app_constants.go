package constants

import "time"

const (
	// 对象存储中的路径前缀
	ResumeObjectPrefix = "resumes/"
	ReportObjectPrefix = "reports/"

	// Redis键
	RawFileMD5SetKey = "resumes:file_md5s" // 存放已上传文件MD5的Set

	// 文件MD5记录的默认过期时间
	DefaultMD5RecordExpiry = 30 * 24 * time.Hour

	// 提取结果的哨兵文案，仅用于渲染边界
	EmailNotFoundText = "Not found"
	NoProjectsText    = "No projects found"
	ScoreNotAvailable = "Not Available"
)
