package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackyeh168/qr_points/src/internal/application/retry"
	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

var fast = retry.Policy{MaxRetries: 3, InitialInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond}

func TestDo_RetriesInternalUntilSuccess(t *testing.T) {
	calls := 0
	retries := 0

	err := retry.Do(context.Background(), fast, func() error {
		calls++
		if calls < 3 {
			return shared.ErrConcurrentUpdate
		}
		return nil
	}, func(error, time.Duration) { retries++ })

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 2, retries)
}

func TestDo_StopsAfterMaxRetries(t *testing.T) {
	calls := 0

	err := retry.Do(context.Background(), fast, func() error {
		calls++
		return errors.New("database is locked")
	}, nil)

	assert.EqualError(t, err, "database is locked")
	assert.Equal(t, 4, calls, "首次執行 + 3 次重試")
}

func TestDo_NonInternalErrorIsNotRetried(t *testing.T) {
	calls := 0
	notFound := &shared.DomainError{Kind: shared.KindNotFound, Code: "X", Message: "x"}

	err := retry.Do(context.Background(), fast, func() error {
		calls++
		return notFound
	}, nil)

	assert.ErrorIs(t, err, notFound)
	assert.Equal(t, 1, calls)
}

func TestDo_ZeroRetries(t *testing.T) {
	calls := 0

	err := retry.Do(context.Background(), retry.Policy{}, func() error {
		calls++
		return shared.ErrConcurrentUpdate
	}, nil)

	assert.ErrorIs(t, err, shared.ErrConcurrentUpdate)
	assert.Equal(t, 1, calls)
}
