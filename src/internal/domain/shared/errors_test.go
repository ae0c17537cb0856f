package shared_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

var errSample = &shared.DomainError{
	Kind:    shared.KindNotFound,
	Code:    "SAMPLE_NOT_FOUND",
	Message: "找不到樣本",
}

func TestDomainError_WithContext_KeepsIdentity(t *testing.T) {
	// Act
	err := errSample.WithContext("email", "a@b.c", "attempt", 2)

	// Assert
	assert.ErrorIs(t, err, errSample)
	assert.Equal(t, "[SAMPLE_NOT_FOUND] 找不到樣本 (context: attempt=2, email=a@b.c)", err.Error())
	assert.Empty(t, errSample.Context, "原始錯誤不應被修改")
}

func TestDomainError_WithContext_OddArguments_Panics(t *testing.T) {
	assert.Panics(t, func() {
		_ = errSample.WithContext("only-key")
	})
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want shared.ErrorKind
	}{
		{"nil", nil, ""},
		{"domain error", errSample, shared.KindNotFound},
		{"wrapped domain error", fmt.Errorf("lookup: %w", errSample.WithContext("k", "v")), shared.KindNotFound},
		{"plain error", errors.New("disk full"), shared.KindInternal},
		{"repository error", shared.ErrRepository, shared.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.KindOf(tt.err))
		})
	}
}

func TestIsRetryable_OnlyInternal(t *testing.T) {
	assert.True(t, shared.IsRetryable(shared.ErrConcurrentUpdate))
	assert.True(t, shared.IsRetryable(errors.New("database is locked")))
	assert.False(t, shared.IsRetryable(errSample))
	assert.False(t, shared.IsRetryable(shared.ErrForbidden))
	assert.False(t, shared.IsRetryable(nil))
}

func TestEventRecorder_PullEvents_Clears(t *testing.T) {
	// Arrange
	var rec shared.EventRecorder
	rec.Record(shared.BaseEvent{ID: "1", Type: "test.happened"})

	// Act
	first := rec.PullEvents()
	second := rec.PullEvents()

	// Assert
	assert.Len(t, first, 1)
	assert.Equal(t, "test.happened", first[0].EventType())
	assert.Empty(t, second)
}
