// Package httpapi 以 gin 提供 JSON HTTP 介面。
package httpapi

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// Options 路由設定
type Options struct {
	Logger        *slog.Logger
	ScanRateLimit int // 每位呼叫者每分鐘的掃描請求數；0 表示不限制
	ScanRateBurst int
}

// NewRouter 建立所有路由
func NewRouter(svc Services, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	h := &handlers{svc: svc}

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger))

	r.GET("/healthz", h.health)

	v1 := r.Group("/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
	}

	authorized := v1.Group("/")
	authorized.Use(Authenticate(svc.Tokens))
	{
		authorized.GET("/users/me", h.me)
		authorized.GET("/users/me/history", h.myHistory)

		authorized.GET("/qrcodes", h.listQRCodes)
		authorized.GET("/qrcodes/:id", h.getQRCode)

		authorized.POST("/scans", CallerRateLimit(opts.ScanRateLimit, opts.ScanRateBurst), h.scan)
		authorized.GET("/scans", h.listScans)
		authorized.GET("/scans/summary", h.scanSummary)
	}

	adminOnly := v1.Group("/")
	adminOnly.Use(Authenticate(svc.Tokens), RequireAdmin())
	{
		adminOnly.GET("/users", h.listUsers)

		adminOnly.POST("/qrcodes", h.createQRCode)
		adminOnly.PATCH("/qrcodes/:id/status", h.setQRCodeStatus)
		adminOnly.DELETE("/qrcodes/:id", h.deleteQRCode)

		adminOnly.POST("/admin/points", h.adjustPoints)
		adminOnly.GET("/admin/reconcile", h.reconcile)
	}

	return r
}
