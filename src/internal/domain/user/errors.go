package user

import "github.com/jackyeh168/qr_points/src/internal/domain/shared"

// ===========================
// User Domain 錯誤定義
// ===========================

const (
	ErrCodeInvalidEmail       shared.ErrorCode = "INVALID_EMAIL"
	ErrCodeInvalidName        shared.ErrorCode = "INVALID_NAME"
	ErrCodeInvalidRole        shared.ErrorCode = "INVALID_ROLE"
	ErrCodeEmptyPassword      shared.ErrorCode = "EMPTY_PASSWORD"
	ErrCodeUserNotFound       shared.ErrorCode = "USER_NOT_FOUND"
	ErrCodeDuplicateEmail     shared.ErrorCode = "DUPLICATE_EMAIL"
	ErrCodeInvalidCredential  shared.ErrorCode = "INVALID_CREDENTIAL"
	ErrCodeAdminSignupBlocked shared.ErrorCode = "ADMIN_SIGNUP_DISABLED"
)

var (
	// ErrInvalidEmail 電子郵件格式無效
	ErrInvalidEmail = &shared.DomainError{
		Kind:    shared.KindInvalidInput,
		Code:    ErrCodeInvalidEmail,
		Message: "電子郵件格式無效",
	}

	// ErrInvalidName 名稱不能為空
	ErrInvalidName = &shared.DomainError{
		Kind:    shared.KindInvalidInput,
		Code:    ErrCodeInvalidName,
		Message: "名稱不能為空",
	}

	// ErrInvalidRole 角色無效（只接受 admin / scanner）
	ErrInvalidRole = &shared.DomainError{
		Kind:    shared.KindInvalidInput,
		Code:    ErrCodeInvalidRole,
		Message: "角色無效",
	}

	// ErrEmptyPassword 密碼不能為空
	ErrEmptyPassword = &shared.DomainError{
		Kind:    shared.KindEmptyInput,
		Code:    ErrCodeEmptyPassword,
		Message: "密碼不能為空",
	}

	// ErrUserNotFound 使用者不存在
	ErrUserNotFound = &shared.DomainError{
		Kind:    shared.KindNotFound,
		Code:    ErrCodeUserNotFound,
		Message: "使用者不存在",
	}

	// ErrDuplicateEmail 電子郵件已被註冊（不分大小寫）
	ErrDuplicateEmail = &shared.DomainError{
		Kind:    shared.KindDuplicateEmail,
		Code:    ErrCodeDuplicateEmail,
		Message: "電子郵件已被註冊",
	}

	// ErrInvalidCredential 帳號或密碼錯誤
	//
	// 帳號不存在與密碼錯誤返回同一個錯誤，不洩漏帳號是否存在
	ErrInvalidCredential = &shared.DomainError{
		Kind:    shared.KindInvalidCredential,
		Code:    ErrCodeInvalidCredential,
		Message: "帳號或密碼錯誤",
	}

	// ErrAdminSignupDisabled 未開放自行註冊管理員
	ErrAdminSignupDisabled = &shared.DomainError{
		Kind:    shared.KindForbidden,
		Code:    ErrCodeAdminSignupBlocked,
		Message: "不允許自行註冊管理員帳號",
	}
)
