package qrcode

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
)

const (
	EventTypeQRCodeCreated       = "qrcode.created"
	EventTypeQRCodeStatusChanged = "qrcode.status_changed"
	EventTypeQRCodeDeleted       = "qrcode.deleted"
)

// QRCodeCreatedEvent QR Code 建立事件
type QRCodeCreatedEvent struct {
	shared.BaseEvent
	Mode   Mode
	Points int
	Owner  string
}

// NewQRCodeCreatedEvent 創建建立事件
func NewQRCodeCreatedEvent(q *QRCode, at time.Time) *QRCodeCreatedEvent {
	return &QRCodeCreatedEvent{
		BaseEvent: newBase(EventTypeQRCodeCreated, q.id, at),
		Mode:      q.mode,
		Points:    q.points.Value(),
		Owner:     q.owner.String(),
	}
}

// QRCodeStatusChangedEvent 狀態變更事件
type QRCodeStatusChangedEvent struct {
	shared.BaseEvent
	From Status
	To   Status
}

// NewQRCodeStatusChangedEvent 創建狀態變更事件
func NewQRCodeStatusChangedEvent(id CodeID, from, to Status, at time.Time) *QRCodeStatusChangedEvent {
	return &QRCodeStatusChangedEvent{
		BaseEvent: newBase(EventTypeQRCodeStatusChanged, id, at),
		From:      from,
		To:        to,
	}
}

// QRCodeDeletedEvent 刪除事件
type QRCodeDeletedEvent struct {
	shared.BaseEvent
}

// NewQRCodeDeletedEvent 創建刪除事件
func NewQRCodeDeletedEvent(id CodeID, at time.Time) *QRCodeDeletedEvent {
	return &QRCodeDeletedEvent{BaseEvent: newBase(EventTypeQRCodeDeleted, id, at)}
}

func newBase(eventType string, id CodeID, at time.Time) shared.BaseEvent {
	return shared.BaseEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		Aggregate:  id.String(),
		OccurredOn: at,
	}
}
