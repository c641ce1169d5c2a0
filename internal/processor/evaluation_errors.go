package processor

import (
	"errors"
	"fmt"
)

// 定义基础错误类型
var (
	ErrExtractionFailed   = errors.New("提取简历文本失败")
	ErrStorageFailed      = errors.New("对象存储操作失败")
	ErrPersistenceFailed  = errors.New("评估记录持久化失败")
	ErrNotificationFailed = errors.New("发送评估通知失败")
)

// EvaluationError 包含详细错误信息的自定义错误
type EvaluationError struct {
	EvaluationUUID string
	Op             string
	BaseErr        error
	Detail         string
}

func (e *EvaluationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (操作:%s, UUID:%s): %s", e.BaseErr, e.Op, e.EvaluationUUID, e.Detail)
	}
	return fmt.Sprintf("%s (操作:%s, UUID:%s)", e.BaseErr, e.Op, e.EvaluationUUID)
}

func (e *EvaluationError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *EvaluationError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数
func NewExtractionError(uuid, detail string) error {
	return &EvaluationError{
		EvaluationUUID: uuid,
		Op:             "extract",
		BaseErr:        ErrExtractionFailed,
		Detail:         detail,
	}
}

func NewStorageError(uuid, detail string) error {
	return &EvaluationError{
		EvaluationUUID: uuid,
		Op:             "store",
		BaseErr:        ErrStorageFailed,
		Detail:         detail,
	}
}

func NewPersistenceError(uuid, detail string) error {
	return &EvaluationError{
		EvaluationUUID: uuid,
		Op:             "persist",
		BaseErr:        ErrPersistenceFailed,
		Detail:         detail,
	}
}

func NewNotificationError(uuid, detail string) error {
	return &EvaluationError{
		EvaluationUUID: uuid,
		Op:             "notify",
		BaseErr:        ErrNotificationFailed,
		Detail:         detail,
	}
}
