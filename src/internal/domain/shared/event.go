package shared

import "time"

// DomainEvent 領域事件基礎介面
type DomainEvent interface {
	EventID() string       // 事件唯一標識
	EventType() string     // 事件類型
	OccurredAt() time.Time // 發生時間
	AggregateID() string   // 聚合根 ID
}

// EventPublisher 事件發布器介面
//
// 事件在事務提交成功後才發布；發布失敗不影響已提交的狀態。
type EventPublisher interface {
	Publish(event DomainEvent) error
	PublishBatch(events []DomainEvent) error
}

// EventRecorder 聚合根共用的事件暫存
//
// 嵌入聚合根中使用：
//
//	type User struct { shared.EventRecorder; ... }
type EventRecorder struct {
	events []DomainEvent
}

// Record 添加領域事件到待發布列表
func (r *EventRecorder) Record(event DomainEvent) {
	r.events = append(r.events, event)
}

// PullEvents 獲取所有待發布事件並清空列表
func (r *EventRecorder) PullEvents() []DomainEvent {
	events := r.events
	r.events = nil
	return events
}

// BaseEvent 事件共用欄位
type BaseEvent struct {
	ID         string
	Type       string
	Aggregate  string
	OccurredOn time.Time
}

// EventID 實現 DomainEvent 介面
func (e BaseEvent) EventID() string { return e.ID }

// EventType 實現 DomainEvent 介面
func (e BaseEvent) EventType() string { return e.Type }

// OccurredAt 實現 DomainEvent 介面
func (e BaseEvent) OccurredAt() time.Time { return e.OccurredOn }

// AggregateID 實現 DomainEvent 介面
func (e BaseEvent) AggregateID() string { return e.Aggregate }
