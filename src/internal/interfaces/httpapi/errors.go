package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
	"github.com/jackyeh168/qr_points/src/internal/infrastructure/logging"
)

// ===========================
// 錯誤回應
// ===========================

const (
	ErrCodeInvalidBody  shared.ErrorCode = "HTTP_INVALID_BODY"
	ErrCodeMissingToken shared.ErrorCode = "HTTP_MISSING_TOKEN"
	ErrCodeRateLimited  shared.ErrorCode = "HTTP_RATE_LIMITED"
)

var (
	errInvalidBody = &shared.DomainError{
		Kind:    shared.KindInvalidInput,
		Code:    ErrCodeInvalidBody,
		Message: "請求內容格式錯誤",
	}
	errMissingToken = &shared.DomainError{
		Kind:    shared.KindInvalidCredential,
		Code:    ErrCodeMissingToken,
		Message: "缺少登入憑證",
	}
	errRateLimited = &shared.DomainError{
		Kind:    shared.KindRateLimited,
		Code:    ErrCodeRateLimited,
		Message: "請求過於頻繁，請稍後再試",
	}
)

var statusByKind = map[shared.ErrorKind]int{
	shared.KindInvalidInput:      http.StatusBadRequest,
	shared.KindEmptyInput:        http.StatusBadRequest,
	shared.KindInvalidCredential: http.StatusUnauthorized,
	shared.KindForbidden:         http.StatusForbidden,
	shared.KindNotFound:          http.StatusNotFound,
	shared.KindCodeNotFound:      http.StatusNotFound,
	shared.KindDuplicateEmail:    http.StatusConflict,
	shared.KindCodeInactive:      http.StatusGone,
	shared.KindRateLimited:       http.StatusTooManyRequests,
	shared.KindInternal:          http.StatusInternalServerError,
}

// ErrorResponse 錯誤回應內容
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatusFor 錯誤種類對應的 HTTP 狀態碼
func StatusFor(kind shared.ErrorKind) int {
	if status, ok := statusByKind[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// writeError 寫出錯誤並中止後續 handler
//
// Internal 錯誤不回傳細節，只記錄在日誌。
func writeError(c *gin.Context, err error) {
	kind := shared.KindOf(err)
	body := ErrorResponse{Error: string(kind)}

	if de, ok := shared.AsDomainError(err); ok {
		body.Code = string(de.Code)
		body.Message = de.Message
	}

	log := logging.FromContext(c.Request.Context())
	if kind == shared.KindInternal {
		log.Error("request failed", slog.Any("error", err))
		body.Code = string(shared.KindInternal)
		body.Message = "internal error"
	} else {
		log.Debug("request rejected", slog.String("kind", string(kind)), slog.Any("error", err))
	}

	c.AbortWithStatusJSON(StatusFor(kind), body)
}
