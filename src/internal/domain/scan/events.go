package scan

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackyeh168/qr_points/src/internal/domain/qrcode"
	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
	"github.com/jackyeh168/qr_points/src/internal/domain/user"
)

const (
	EventTypeScanCompleted = "scan.completed"
	EventTypeScanRejected  = "scan.rejected"
)

// ScanCompletedEvent 掃描成功事件
type ScanCompletedEvent struct {
	shared.BaseEvent
	Caller       string
	Awards       []Award
	TotalAwarded int
}

// NewScanCompletedEvent 創建掃描成功事件
func NewScanCompletedEvent(r Result) *ScanCompletedEvent {
	return &ScanCompletedEvent{
		BaseEvent: shared.BaseEvent{
			ID:         uuid.NewString(),
			Type:       EventTypeScanCompleted,
			Aggregate:  r.QRCodeID.String(),
			OccurredOn: r.ScannedAt,
		},
		Caller:       r.Caller.String(),
		Awards:       r.Awards,
		TotalAwarded: r.TotalAwarded,
	}
}

// ScanRejectedEvent 掃描被拒絕事件
type ScanRejectedEvent struct {
	shared.BaseEvent
	Caller string
	Kind   shared.ErrorKind
	Reason string
}

// NewScanRejectedEvent 創建掃描被拒絕事件
func NewScanRejectedEvent(id qrcode.CodeID, caller user.Email, reason error, at time.Time) *ScanRejectedEvent {
	e := &ScanRejectedEvent{
		BaseEvent: shared.BaseEvent{
			ID:         uuid.NewString(),
			Type:       EventTypeScanRejected,
			Aggregate:  id.String(),
			OccurredOn: at,
		},
		Caller: caller.String(),
		Kind:   shared.KindOf(reason),
	}
	if reason != nil {
		e.Reason = reason.Error()
	}
	return e
}
