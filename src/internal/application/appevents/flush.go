// Package appevents 在事務提交後發布聚合累積的領域事件。
package appevents

import (
	"context"
	"log/slog"

	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
)

// Source 累積領域事件的聚合根
type Source interface {
	PullEvents() []shared.DomainEvent
}

// Flush 取出所有來源的事件並批次發布
//
// 只在事務提交後呼叫。發布失敗只記錄日誌，不影響已提交的結果。
func Flush(ctx context.Context, publisher shared.EventPublisher, sources ...Source) {
	if publisher == nil {
		return
	}
	var events []shared.DomainEvent
	for _, s := range sources {
		if s == nil {
			continue
		}
		events = append(events, s.PullEvents()...)
	}
	if len(events) == 0 {
		return
	}
	if err := publisher.PublishBatch(events); err != nil {
		slog.Default().WarnContext(ctx, "failed to publish domain events",
			slog.Int("count", len(events)),
			slog.Any("error", err),
		)
	}
}
