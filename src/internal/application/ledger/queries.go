package ledger

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/jackyeh168/qr_points/src/internal/domain/ledger"
	"github.com/jackyeh168/qr_points/src/internal/domain/qrcode"
	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
	"github.com/jackyeh168/qr_points/src/internal/domain/user"
	"github.com/shopspring/decimal"
)

// ScanEventDTO 掃描記錄
type ScanEventDTO struct {
	EventID      string
	QRCodeID     string
	ScannerEmail string
	CallerEmail  string
	Points       int
	ScannedAt    time.Time
}

// SummaryDTO 掃描統計
type SummaryDTO struct {
	Email         string
	ScanCount     int64
	TotalPoints   int64
	AveragePoints decimal.Decimal
	LastScanAt    *time.Time
}

// ListScansQuery 掃描記錄查詢
//
// Scanner 只能查詢自己（Email 為空視為自己）；Admin 可查詢任何人，Email 為空表示全部。
type ListScansQuery struct {
	Actor    user.Caller
	Email    string
	QRCodeID string
}

// Queries 帳本查詢接口（唯讀、冪等）
type Queries interface {
	ListScans(ctx context.Context, query ListScansQuery) ([]ScanEventDTO, error)
	History(ctx context.Context, caller user.Caller) iter.Seq2[ScanEventDTO, error]
	Summary(ctx context.Context, actor user.Caller, email string) (*SummaryDTO, error)
}

// QueryService Queries 實現
type QueryService struct {
	scanRepo  ledger.ScanEventRepository
	txManager shared.TransactionManager
}

// NewQueryService 創建帳本查詢服務
func NewQueryService(scanRepo ledger.ScanEventRepository, txManager shared.TransactionManager) *QueryService {
	return &QueryService{scanRepo: scanRepo, txManager: txManager}
}

// ListScans 依時間倒序列出掃描記錄
func (s *QueryService) ListScans(ctx context.Context, query ListScansQuery) ([]ScanEventDTO, error) {
	email, err := resolveSubject(query.Actor, query.Email)
	if err != nil {
		return nil, err
	}
	filter := ledger.ScanFilter{ScannerEmail: email}
	if strings.TrimSpace(query.QRCodeID) != "" {
		if filter.QRCodeID, err = qrcode.NewCodeID(query.QRCodeID); err != nil {
			return nil, err
		}
	}

	events, err := s.scanRepo.List(s.txManager.Reader(ctx), filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	result := make([]ScanEventDTO, 0, len(events))
	for _, e := range events {
		result = append(result, toDTO(e))
	}
	return result, nil
}

// History 逐筆讀取呼叫者自己的掃描記錄（時間倒序）
//
// 倉儲分頁讀取，迴圈內可以安全地寫出到慢速的客戶端。
func (s *QueryService) History(ctx context.Context, caller user.Caller) iter.Seq2[ScanEventDTO, error] {
	return func(yield func(ScanEventDTO, error) bool) {
		for e, err := range s.scanRepo.HistoryFor(s.txManager.Reader(ctx), caller.Email) {
			if err != nil {
				yield(ScanEventDTO{}, err)
				return
			}
			if !yield(toDTO(e), nil) {
				return
			}
		}
	}
}

// Summary 掃描統計
func (s *QueryService) Summary(ctx context.Context, actor user.Caller, rawEmail string) (*SummaryDTO, error) {
	email, err := resolveSubject(actor, rawEmail)
	if err != nil {
		return nil, err
	}
	if email.IsZero() {
		email = actor.Email
	}

	summary, err := s.scanRepo.SummaryFor(s.txManager.Reader(ctx), email)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize scans: %w", err)
	}
	return &SummaryDTO{
		Email:         summary.Email.String(),
		ScanCount:     summary.ScanCount,
		TotalPoints:   summary.TotalPoints,
		AveragePoints: summary.AveragePoints,
		LastScanAt:    summary.LastScanAt,
	}, nil
}

// resolveSubject 決定查詢對象；Admin 未指定時返回零值（全部）
func resolveSubject(actor user.Caller, raw string) (user.Email, error) {
	if strings.TrimSpace(raw) == "" {
		if actor.Role.IsAdmin() {
			return user.Email{}, nil
		}
		return actor.Email, nil
	}
	email, err := user.NewEmail(raw)
	if err != nil {
		return user.Email{}, err
	}
	if !actor.Role.IsAdmin() && !email.Equals(actor.Email) {
		return user.Email{}, shared.ErrForbidden.WithContext(
			"email", actor.Email.String(),
			"requested", email.String(),
		)
	}
	return email, nil
}

func toDTO(e *ledger.ScanEvent) ScanEventDTO {
	return ScanEventDTO{
		EventID:      e.ID().String(),
		QRCodeID:     e.QRCodeID().String(),
		ScannerEmail: e.ScannerEmail().String(),
		CallerEmail:  e.CallerEmail().String(),
		Points:       e.Points(),
		ScannedAt:    e.ScannedAt(),
	}
}
