package scan

import "github.com/jackyeh168/qr_points/src/internal/domain/shared"

const (
	ErrCodeIllegalTransition shared.ErrorCode = "SCAN_ILLEGAL_TRANSITION"
	ErrCodeCooldown          shared.ErrorCode = "SCAN_COOLDOWN"
	ErrCodeCallerNotFound    shared.ErrorCode = "SCAN_CALLER_NOT_FOUND"
)

var (
	// ErrIllegalTransition 掃描流程狀態轉換不合法（程式錯誤）
	ErrIllegalTransition = &shared.DomainError{
		Kind:    shared.KindInternal,
		Code:    ErrCodeIllegalTransition,
		Message: "掃描狀態轉換不合法",
	}

	// ErrCooldown 同一呼叫者在冷卻時間內重複掃描同一 QR Code
	ErrCooldown = &shared.DomainError{
		Kind:    shared.KindRateLimited,
		Code:    ErrCodeCooldown,
		Message: "掃描過於頻繁，請稍後再試",
	}

	// ErrCallerNotFound 呼叫者不是已註冊的使用者
	ErrCallerNotFound = &shared.DomainError{
		Kind:    shared.KindNotFound,
		Code:    ErrCodeCallerNotFound,
		Message: "掃描者帳號不存在",
	}
)
