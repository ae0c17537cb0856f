package ledger

import "github.com/jackyeh168/qr_points/src/internal/domain/shared"

const (
	ErrCodeInvalidEventID      shared.ErrorCode = "SCAN_EVENT_ID_INVALID"
	ErrCodeInvalidAdjustmentID shared.ErrorCode = "ADJUSTMENT_ID_INVALID"
	ErrCodeInvalidScanEvent    shared.ErrorCode = "SCAN_EVENT_INVALID"
)

var (
	// ErrInvalidEventID 掃描事件 ID 不是合法的 ULID
	ErrInvalidEventID = &shared.DomainError{
		Kind:    shared.KindInvalidInput,
		Code:    ErrCodeInvalidEventID,
		Message: "掃描事件 ID 格式無效",
	}

	// ErrInvalidAdjustmentID 調整記錄 ID 不是合法的 UUID
	ErrInvalidAdjustmentID = &shared.DomainError{
		Kind:    shared.KindInvalidInput,
		Code:    ErrCodeInvalidAdjustmentID,
		Message: "調整記錄 ID 格式無效",
	}

	// ErrInvalidScanEvent 掃描事件缺少必要欄位
	ErrInvalidScanEvent = &shared.DomainError{
		Kind:    shared.KindInvalidInput,
		Code:    ErrCodeInvalidScanEvent,
		Message: "掃描事件資料不完整",
	}
)
