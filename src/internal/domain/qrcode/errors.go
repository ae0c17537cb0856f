package qrcode

import "github.com/jackyeh168/qr_points/src/internal/domain/shared"

// ===========================
// QRCode Domain 錯誤定義
// ===========================

const (
	ErrCodeEmptyCodeID      shared.ErrorCode = "QRCODE_ID_EMPTY"
	ErrCodeInvalidName      shared.ErrorCode = "QRCODE_NAME_INVALID"
	ErrCodeInvalidMode      shared.ErrorCode = "QRCODE_MODE_INVALID"
	ErrCodeInvalidStatus    shared.ErrorCode = "QRCODE_STATUS_INVALID"
	ErrCodeQRCodeNotFound   shared.ErrorCode = "QRCODE_NOT_FOUND"
	ErrCodeScanCodeNotFound shared.ErrorCode = "SCAN_CODE_NOT_FOUND"
	ErrCodeCodeInactive     shared.ErrorCode = "QRCODE_INACTIVE"
	ErrCodeDuplicateCodeID  shared.ErrorCode = "QRCODE_ID_CONFLICT"
)

var (
	// ErrEmptyCodeID QR Code ID 為空
	ErrEmptyCodeID = &shared.DomainError{
		Kind:    shared.KindEmptyInput,
		Code:    ErrCodeEmptyCodeID,
		Message: "QR Code ID 不能為空",
	}

	// ErrInvalidName QR Code 名稱不能為空
	ErrInvalidName = &shared.DomainError{
		Kind:    shared.KindInvalidInput,
		Code:    ErrCodeInvalidName,
		Message: "QR Code 名稱不能為空",
	}

	// ErrInvalidMode 未知的給點模式
	ErrInvalidMode = &shared.DomainError{
		Kind:    shared.KindInvalidInput,
		Code:    ErrCodeInvalidMode,
		Message: "給點模式無效",
	}

	// ErrInvalidStatus 未知的狀態
	ErrInvalidStatus = &shared.DomainError{
		Kind:    shared.KindInvalidInput,
		Code:    ErrCodeInvalidStatus,
		Message: "QR Code 狀態無效",
	}

	// ErrQRCodeNotFound 管理操作找不到 QR Code（NotFound）
	ErrQRCodeNotFound = &shared.DomainError{
		Kind:    shared.KindNotFound,
		Code:    ErrCodeQRCodeNotFound,
		Message: "QR Code 不存在",
	}

	// ErrScanCodeNotFound 掃描時找不到 QR Code（CodeNotFound）
	ErrScanCodeNotFound = &shared.DomainError{
		Kind:    shared.KindCodeNotFound,
		Code:    ErrCodeScanCodeNotFound,
		Message: "無效的 QR Code",
	}

	// ErrCodeInactive 掃描已停用的 QR Code
	ErrCodeInactive = &shared.DomainError{
		Kind:    shared.KindCodeInactive,
		Code:    ErrCodeCodeInactive,
		Message: "QR Code 已停用",
	}

	// ErrDuplicateCodeID 產生的 ID 已被使用（並發建立時發生，可重試）
	ErrDuplicateCodeID = &shared.DomainError{
		Kind:    shared.KindInternal,
		Code:    ErrCodeDuplicateCodeID,
		Message: "QR Code ID 衝突",
	}
)
