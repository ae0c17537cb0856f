package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackyeh168/qr_points/src/internal/application/account"
	"github.com/jackyeh168/qr_points/src/internal/application/admin"
	appledger "github.com/jackyeh168/qr_points/src/internal/application/ledger"
	appqrcode "github.com/jackyeh168/qr_points/src/internal/application/qrcode"
	appscan "github.com/jackyeh168/qr_points/src/internal/application/scan"
	"github.com/jackyeh168/qr_points/src/internal/infrastructure/logging"
)

// Services HTTP 層依賴的 use case
type Services struct {
	Register  account.RegisterUseCase
	Login     account.AuthenticateUseCase
	Profile   account.GetProfileUseCase
	ListUsers account.ListUsersUseCase
	QRCodes   appqrcode.Queries
	Admin     *admin.Operations
	Scan      appscan.UseCase
	Ledger    appledger.Queries
	Tokens    TokenVerifier
	Ping      func(ctx context.Context) error // 健康檢查；nil 表示只回報存活
}

type handlers struct {
	svc Services
}

// bindJSON 解析請求內容；失敗時寫出 400 並返回 false
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		writeError(c, errInvalidBody.WithContext("reason", err.Error()))
		return false
	}
	return true
}

// ===========================
// Health
// ===========================

func (h *handlers) health(c *gin.Context) {
	if h.svc.Ping != nil {
		if err := h.svc.Ping(c.Request.Context()); err != nil {
			logging.FromContext(c.Request.Context()).Error("health check failed", slog.Any("error", err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ===========================
// Auth / Users
// ===========================

func (h *handlers) register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.svc.Register.Execute(c.Request.Context(), account.RegisterCommand(req))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(*result))
}

func (h *handlers) login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.svc.Login.Execute(c.Request.Context(), account.AuthenticateCommand(req))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, loginResponse(*result))
}

func (h *handlers) me(c *gin.Context) {
	result, err := h.svc.Profile.Execute(c.Request.Context(), callerFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(*result))
}

func (h *handlers) listUsers(c *gin.Context) {
	users, err := h.svc.ListUsers.Execute(c.Request.Context(), account.ListUsersQuery{
		Actor: callerFrom(c),
		Role:  c.Query("role"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}
	c.JSON(http.StatusOK, resp)
}

// myHistory 逐筆串流輸出呼叫者的掃描記錄
func (h *handlers) myHistory(c *gin.Context) {
	ctx := c.Request.Context()
	enc := json.NewEncoder(c.Writer)
	started := false

	for e, err := range h.svc.Ledger.History(ctx, callerFrom(c)) {
		if err != nil {
			if !started {
				writeError(c, err)
				return
			}
			// 已開始輸出，只能中斷
			logging.FromContext(ctx).Error("history stream aborted", slog.Any("error", err))
			return
		}
		if !started {
			c.Header("Content-Type", "application/json; charset=utf-8")
			c.Status(http.StatusOK)
			_, _ = c.Writer.WriteString("[")
			started = true
		} else {
			_, _ = c.Writer.WriteString(",")
		}
		if err := enc.Encode(toScanEventResponse(e)); err != nil {
			logging.FromContext(ctx).Warn("history stream write failed", slog.Any("error", err))
			return
		}
	}

	if !started {
		c.JSON(http.StatusOK, []scanEventResponse{})
		return
	}
	_, _ = c.Writer.WriteString("]")
}

// ===========================
// QR Codes
// ===========================

func (h *handlers) listQRCodes(c *gin.Context) {
	codes, err := h.svc.QRCodes.List(c.Request.Context(), appqrcode.ListQuery{Mode: c.Query("mode")})
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]qrCodeResponse, 0, len(codes))
	for _, q := range codes {
		resp = append(resp, toQRCodeResponse(q))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handlers) getQRCode(c *gin.Context) {
	code, err := h.svc.QRCodes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toQRCodeResponse(*code))
}

func (h *handlers) createQRCode(c *gin.Context) {
	var req createQRCodeRequest
	if !bindJSON(c, &req) {
		return
	}
	code, err := h.svc.Admin.CreateQRCode(c.Request.Context(), appqrcode.CreateCommand{
		Actor:      callerFrom(c),
		Name:       req.Name,
		Tags:       req.Tags,
		Mode:       req.Mode,
		Points:     req.Points,
		OwnerEmail: req.OwnerEmail,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toQRCodeResponse(*code))
}

func (h *handlers) setQRCodeStatus(c *gin.Context) {
	var req setStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	code, err := h.svc.Admin.SetQRCodeStatus(c.Request.Context(), callerFrom(c), c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toQRCodeResponse(*code))
}

func (h *handlers) deleteQRCode(c *gin.Context) {
	if err := h.svc.Admin.DeleteQRCode(c.Request.Context(), callerFrom(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ===========================
// Scans
// ===========================

func (h *handlers) scan(c *gin.Context) {
	var req scanRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.svc.Scan.Execute(c.Request.Context(), appscan.Command{
		QRCodeID: req.QRCodeID,
		Caller:   callerFrom(c),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toScanResponse(result))
}

func (h *handlers) listScans(c *gin.Context) {
	events, err := h.svc.Ledger.ListScans(c.Request.Context(), appledger.ListScansQuery{
		Actor:    callerFrom(c),
		Email:    c.Query("email"),
		QRCodeID: c.Query("qrCodeId"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]scanEventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, toScanEventResponse(e))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handlers) scanSummary(c *gin.Context) {
	summary, err := h.svc.Ledger.Summary(c.Request.Context(), callerFrom(c), c.Query("email"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaryResponse(*summary))
}

// ===========================
// Admin
// ===========================

func (h *handlers) adjustPoints(c *gin.Context) {
	var req adjustPointsRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.svc.Admin.AdjustPoints(c.Request.Context(), admin.AdjustPointsCommand{
		Actor:  callerFrom(c),
		Email:  req.Email,
		Action: req.Action,
		Amount: req.Amount,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, adjustPointsResponse(*result))
}

func (h *handlers) reconcile(c *gin.Context) {
	report, err := h.svc.Admin.Reconcile(c.Request.Context(), callerFrom(c), admin.ReconcileQuery{Email: c.Query("email")})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toReconcileResponse(report))
}
