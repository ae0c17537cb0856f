package httpapi

import (
	"time"

	"github.com/jackyeh168/qr_points/src/internal/application/account"
	"github.com/jackyeh168/qr_points/src/internal/application/admin"
	appledger "github.com/jackyeh168/qr_points/src/internal/application/ledger"
	appqrcode "github.com/jackyeh168/qr_points/src/internal/application/qrcode"
	"github.com/jackyeh168/qr_points/src/internal/domain/scan"
	"github.com/shopspring/decimal"
)

// ===========================
// Request
// ===========================

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createQRCodeRequest struct {
	Name       string   `json:"name"`
	Tags       []string `json:"tags"`
	Mode       string   `json:"mode"`
	Points     int      `json:"points"`
	OwnerEmail string   `json:"ownerEmail"`
}

type setStatusRequest struct {
	Status string `json:"status"`
}

type scanRequest struct {
	QRCodeID string `json:"qrCodeId"`
}

type adjustPointsRequest struct {
	Email  string `json:"email"`
	Action string `json:"action"`
	Amount int    `json:"amount"`
}

// ===========================
// Response
// ===========================

type userResponse struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Points    int       `json:"points"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u account.UserDTO) userResponse {
	return userResponse(u)
}

type loginResponse struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type qrCodeResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Tags       []string  `json:"tags"`
	Mode       string    `json:"mode"`
	Points     int       `json:"points"`
	Status     string    `json:"status"`
	OwnerEmail string    `json:"ownerEmail"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func toQRCodeResponse(q appqrcode.QRCodeDTO) qrCodeResponse {
	return qrCodeResponse(q)
}

type awardResponse struct {
	Email   string `json:"email"`
	Points  int    `json:"points"`
	EventID string `json:"eventId"`
}

type scanResponse struct {
	QRCodeID     string          `json:"qrCodeId"`
	Awards       []awardResponse `json:"awards"`
	TotalAwarded int             `json:"totalAwarded"`
	ScannedAt    time.Time       `json:"scannedAt"`
}

func toScanResponse(r *scan.Result) scanResponse {
	awards := make([]awardResponse, 0, len(r.Awards))
	for _, a := range r.Awards {
		awards = append(awards, awardResponse{Email: a.Email.String(), Points: a.Points, EventID: a.EventID})
	}
	return scanResponse{
		QRCodeID:     r.QRCodeID.String(),
		Awards:       awards,
		TotalAwarded: r.TotalAwarded,
		ScannedAt:    r.ScannedAt,
	}
}

type scanEventResponse struct {
	EventID      string    `json:"eventId"`
	QRCodeID     string    `json:"qrCodeId"`
	ScannerEmail string    `json:"scannerEmail"`
	CallerEmail  string    `json:"callerEmail"`
	Points       int       `json:"points"`
	ScannedAt    time.Time `json:"scannedAt"`
}

func toScanEventResponse(e appledger.ScanEventDTO) scanEventResponse {
	return scanEventResponse(e)
}

type summaryResponse struct {
	Email         string          `json:"email"`
	ScanCount     int64           `json:"scanCount"`
	TotalPoints   int64           `json:"totalPoints"`
	AveragePoints decimal.Decimal `json:"averagePoints"`
	LastScanAt    *time.Time      `json:"lastScanAt"`
}

type adjustPointsResponse struct {
	Email        string `json:"email"`
	Action       string `json:"action"`
	Requested    int    `json:"requested"`
	Applied      int    `json:"applied"`
	Balance      int    `json:"balance"`
	AdjustmentID string `json:"adjustmentId"`
}

type reconciliationResponse struct {
	Email           string `json:"email"`
	StoredPoints    int64  `json:"storedPoints"`
	ScanTotal       int64  `json:"scanTotal"`
	AdjustmentTotal int64  `json:"adjustmentTotal"`
	Drift           int64  `json:"drift"`
}

type reconcileResponse struct {
	Consistent bool                     `json:"consistent"`
	Users      []reconciliationResponse `json:"users"`
	Mismatches []reconciliationResponse `json:"mismatches"`
}

func toReconcileResponse(r *admin.ReconcileReport) reconcileResponse {
	resp := reconcileResponse{
		Consistent: r.Consistent(),
		Users:      make([]reconciliationResponse, 0, len(r.Entries)),
		Mismatches: make([]reconciliationResponse, 0, len(r.Mismatches)),
	}
	for _, e := range r.Entries {
		item := reconciliationResponse{
			Email:           e.Email.String(),
			StoredPoints:    e.StoredPoints,
			ScanTotal:       e.ScanTotal,
			AdjustmentTotal: e.AdjustmentTotal,
			Drift:           e.Drift(),
		}
		resp.Users = append(resp.Users, item)
		if !e.Consistent() {
			resp.Mismatches = append(resp.Mismatches, item)
		}
	}
	return resp
}
