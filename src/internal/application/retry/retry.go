// Package retry 對可重試的錯誤（KindInternal）做指數退避重試。
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
)

// Policy 重試策略
type Policy struct {
	MaxRetries      int           // 首次執行後最多再試幾次；0 表示不重試
	InitialInterval time.Duration // 第一次重試前的等待時間
	MaxInterval     time.Duration
}

// DefaultPolicy 預設策略：最多重試 3 次
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:      3,
		InitialInterval: 20 * time.Millisecond,
		MaxInterval:     500 * time.Millisecond,
	}
}

// Do 執行 op；只有 shared.IsRetryable 的錯誤會重試，其餘錯誤立即返回
//
// onRetry 在每次重試前被呼叫（可為 nil）。
func Do(ctx context.Context, p Policy, op func() error, onRetry func(err error, wait time.Duration)) error {
	expo := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		expo.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		expo.MaxInterval = p.MaxInterval
	}
	expo.MaxElapsedTime = 0 // 由次數限制

	maxRetries := p.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	b := backoff.WithContext(backoff.WithMaxRetries(expo, uint64(maxRetries)), ctx)

	wrapped := func() error {
		err := op()
		if err != nil && !shared.IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	var notify backoff.Notify
	if onRetry != nil {
		notify = func(err error, wait time.Duration) { onRetry(err, wait) }
	}
	return backoff.RetryNotify(wrapped, b, notify)
}
