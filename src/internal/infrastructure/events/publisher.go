// Package events 發布領域事件。
package events

import (
	"log/slog"

	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
)

// SlogPublisher 將領域事件寫入結構化日誌
//
// 事件在事務提交後才發布；目前沒有外部訂閱者，日誌即為事件出口。
type SlogPublisher struct {
	logger *slog.Logger
}

// NewSlogPublisher 創建事件發布器
func NewSlogPublisher(logger *slog.Logger) *SlogPublisher {
	return &SlogPublisher{logger: logger.With("component", "events")}
}

// Publish 發布單一事件
func (p *SlogPublisher) Publish(event shared.DomainEvent) error {
	p.logger.Info("domain_event",
		slog.String("event_id", event.EventID()),
		slog.String("event_type", event.EventType()),
		slog.String("aggregate_id", event.AggregateID()),
		slog.Time("occurred_at", event.OccurredAt()),
		slog.Any("payload", event),
	)
	return nil
}

// PublishBatch 依序發布多個事件
func (p *SlogPublisher) PublishBatch(events []shared.DomainEvent) error {
	for _, event := range events {
		if err := p.Publish(event); err != nil {
			return err
		}
	}
	return nil
}

var _ shared.EventPublisher = (*SlogPublisher)(nil)
