package httpapi

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackyeh168/qr_points/src/internal/domain/user"
	"github.com/jackyeh168/qr_points/src/internal/infrastructure/logging"
	"github.com/oklog/ulid/v2"
)

// ===========================
// Middleware
// ===========================

const (
	headerRequestID = "X-Request-ID"
	callerKey       = "qrpoints.caller"
)

// TokenVerifier 驗證登入 token 並還原呼叫者身分
type TokenVerifier interface {
	Verify(token string) (user.Caller, error)
}

// RequestLogger 為每個請求建立帶 request id 的 logger 並記錄結果
func RequestLogger(base *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(headerRequestID)
		if reqID == "" {
			reqID = ulid.Make().String()
		}
		c.Header(headerRequestID, reqID)

		log := base.With(
			"req_id", reqID,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"remote_addr", c.ClientIP(),
		)
		c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), log))

		c.Next()

		logging.FromContext(c.Request.Context()).Info("http_request",
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"user_agent", c.Request.UserAgent(),
		)
	}
}

// Authenticate 驗證 Bearer token，並把呼叫者身分放入 gin context
func Authenticate(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			c.Header("WWW-Authenticate", `Bearer error="invalid_token"`)
			writeError(c, errMissingToken)
			return
		}

		caller, err := verifier.Verify(strings.TrimSpace(raw))
		if err != nil {
			c.Header("WWW-Authenticate", `Bearer error="invalid_token"`)
			writeError(c, err)
			return
		}

		c.Set(callerKey, caller)
		c.Request = c.Request.WithContext(logging.WithAttrs(c.Request.Context(),
			"caller", caller.Email.String(),
			"role", caller.Role.String(),
		))
		c.Next()
	}
}

// RequireAdmin 只允許管理員（必須在 Authenticate 之後）
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := callerFrom(c).RequireAdmin(); err != nil {
			writeError(c, err)
			return
		}
		c.Next()
	}
}

// callerFrom 取出 Authenticate 放入的呼叫者身分
func callerFrom(c *gin.Context) user.Caller {
	if v, ok := c.Get(callerKey); ok {
		if caller, ok := v.(user.Caller); ok {
			return caller
		}
	}
	return user.Caller{}
}
