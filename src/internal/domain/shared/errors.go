package shared

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ===========================
// 錯誤分類（Error Kind）
// ===========================

// ErrorKind 機器可辨識的錯誤分類
//
// 每個 DomainError 除了細分的 ErrorCode 外，還屬於一個 ErrorKind。
// Transport 層依 Kind 決定回應狀態碼；ScanEngine 只對 KindInternal 重試。
type ErrorKind string

const (
	KindInvalidInput      ErrorKind = "INVALID_INPUT"
	KindEmptyInput        ErrorKind = "EMPTY_INPUT"
	KindNotFound          ErrorKind = "NOT_FOUND"
	KindDuplicateEmail    ErrorKind = "DUPLICATE_EMAIL"
	KindCodeNotFound      ErrorKind = "CODE_NOT_FOUND"
	KindCodeInactive      ErrorKind = "CODE_INACTIVE"
	KindInvalidCredential ErrorKind = "INVALID_CREDENTIAL"
	KindForbidden         ErrorKind = "FORBIDDEN"
	KindRateLimited       ErrorKind = "RATE_LIMITED"
	KindInternal          ErrorKind = "INTERNAL"
)

// ErrorCode 細分錯誤代碼（各 bounded context 自行定義）
type ErrorCode string

// ===========================
// DomainError 結構
// ===========================

// DomainError 領域錯誤
//
// 錯誤實例以套件層級變數預先定義，呼叫端透過 WithContext 附加上下文，
// errors.Is 以 Code 比較。
type DomainError struct {
	Kind    ErrorKind
	Code    ErrorCode
	Message string
	Context map[string]interface{}
}

// Error 實現 error 接口
func (e *DomainError) Error() string {
	if len(e.Context) == 0 {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s (context: %s)", e.Code, e.Message, formatContext(e.Context))
}

// WithContext 添加上下文信息（返回新的錯誤實例）
//
// 使用範例：
//
//	return ErrUserNotFound.WithContext("email", email)
func (e *DomainError) WithContext(keyValues ...interface{}) error {
	if len(keyValues)%2 != 0 {
		panic("WithContext requires even number of arguments (key-value pairs)")
	}

	ctx := make(map[string]interface{}, len(e.Context)+len(keyValues)/2)
	for k, v := range e.Context {
		ctx[k] = v
	}
	for i := 0; i < len(keyValues); i += 2 {
		key, ok := keyValues[i].(string)
		if !ok {
			panic(fmt.Sprintf("context key must be string, got %T", keyValues[i]))
		}
		ctx[key] = keyValues[i+1]
	}

	return &DomainError{
		Kind:    e.Kind,
		Code:    e.Code,
		Message: e.Message,
		Context: ctx,
	}
}

// Is 實現 errors.Is 接口（以錯誤代碼判斷）
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// KindOf 取得錯誤分類
//
// 非 DomainError（資料庫驅動錯誤、panic 轉換等）一律視為 KindInternal。
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// IsRetryable 只有 Internal 錯誤可以由引擎自動重試
func IsRetryable(err error) bool {
	return err != nil && KindOf(err) == KindInternal
}

// AsDomainError 取出錯誤鏈中的 DomainError
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// formatContext 依 key 排序輸出，確保訊息穩定
func formatContext(ctx map[string]interface{}) string {
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, ctx[k]))
	}
	return strings.Join(parts, ", ")
}

// ===========================
// 共用錯誤
// ===========================

const (
	ErrCodeRepository       ErrorCode = "REPOSITORY_ERROR"
	ErrCodeConcurrentUpdate ErrorCode = "CONCURRENT_UPDATE"
	ErrCodeForbidden        ErrorCode = "FORBIDDEN"
)

var (
	// ErrRepository 倉儲操作失敗（資料庫錯誤）
	ErrRepository = &DomainError{
		Kind:    KindInternal,
		Code:    ErrCodeRepository,
		Message: "倉儲操作失敗",
	}

	// ErrConcurrentUpdate 樂觀鎖版本衝突
	ErrConcurrentUpdate = &DomainError{
		Kind:    KindInternal,
		Code:    ErrCodeConcurrentUpdate,
		Message: "資料已被其他請求修改",
	}

	// ErrForbidden 呼叫者角色不允許執行此操作
	ErrForbidden = &DomainError{
		Kind:    KindForbidden,
		Code:    ErrCodeForbidden,
		Message: "權限不足",
	}
)
