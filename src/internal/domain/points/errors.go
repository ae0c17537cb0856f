package points

import "github.com/jackyeh168/qr_points/src/internal/domain/shared"

// ===========================
// 錯誤代碼定義
// ===========================

const (
	ErrCodeNegativePointsAmount shared.ErrorCode = "POINTS_NEGATIVE"
	ErrCodeNonPositiveAmount    shared.ErrorCode = "POINTS_AMOUNT_NOT_POSITIVE"
	ErrCodeInvalidAction        shared.ErrorCode = "POINTS_ACTION_INVALID"
	ErrCodeAmountTooLarge       shared.ErrorCode = "POINTS_AMOUNT_TOO_LARGE"
)

// ===========================
// 預定義錯誤實例
// ===========================

var (
	// ErrNegativePointsAmount 積分數量為負數（建構約束違反）
	ErrNegativePointsAmount = &shared.DomainError{
		Kind:    shared.KindInvalidInput,
		Code:    ErrCodeNegativePointsAmount,
		Message: "積分數量不能為負數",
	}

	// ErrNonPositiveAmount 手動調整的數量必須大於 0
	ErrNonPositiveAmount = &shared.DomainError{
		Kind:    shared.KindInvalidInput,
		Code:    ErrCodeNonPositiveAmount,
		Message: "調整數量必須大於 0",
	}

	// ErrAmountTooLarge 單筆數量超過 MaxAmount
	ErrAmountTooLarge = &shared.DomainError{
		Kind:    shared.KindInvalidInput,
		Code:    ErrCodeAmountTooLarge,
		Message: "積分數量超過上限",
	}

	// ErrInvalidAction 未知的調整動作（只接受 add / subtract）
	ErrInvalidAction = &shared.DomainError{
		Kind:    shared.KindInvalidInput,
		Code:    ErrCodeInvalidAction,
		Message: "調整動作無效",
	}
)
