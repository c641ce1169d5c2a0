package processor

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestEvaluationErrorIs 构造的错误能通过errors.Is匹配到对应的基础错误
func TestEvaluationErrorIs(t *testing.T) {
	cases := []struct {
		err  error
		base error
	}{
		{NewExtractionError("uuid-1", "empty text"), ErrExtractionFailed},
		{NewStorageError("uuid-1", "upload failed"), ErrStorageFailed},
		{NewPersistenceError("uuid-1", "insert failed"), ErrPersistenceFailed},
		{NewNotificationError("uuid-1", "publish failed"), ErrNotificationFailed},
	}

	for _, c := range cases {
		assert.ErrorIs(t, c.err, c.base)
		// 不应误匹配其他基础错误
		for _, other := range cases {
			if other.base != c.base {
				assert.NotErrorIs(t, c.err, other.base)
			}
		}
	}
}

// TestEvaluationErrorMessage 错误消息包含UUID、操作和细节
func TestEvaluationErrorMessage(t *testing.T) {
	err := NewStorageError("uuid-42", "minio unreachable")

	msg := err.Error()
	assert.Contains(t, msg, "uuid-42")
	assert.Contains(t, msg, "store")
	assert.Contains(t, msg, "minio unreachable")
}

// TestEvaluationErrorUnwrap 包一层fmt.Errorf后仍能匹配
func TestEvaluationErrorUnwrap(t *testing.T) {
	inner := NewExtractionError("uuid-7", "corrupt file")
	wrapped := fmt.Errorf("处理请求失败: %w", inner)

	assert.ErrorIs(t, wrapped, ErrExtractionFailed)

	var evalErr *EvaluationError
	assert.True(t, errors.As(wrapped, &evalErr))
	assert.Equal(t, "uuid-7", evalErr.EvaluationUUID)
}
