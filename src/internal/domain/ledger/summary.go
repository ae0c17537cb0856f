package ledger

import (
	"time"

	"github.com/jackyeh168/qr_points/src/internal/domain/points"
	"github.com/jackyeh168/qr_points/src/internal/domain/user"
	"github.com/shopspring/decimal"
)

// Summary 使用者的掃描統計
type Summary struct {
	Email         user.Email
	ScanCount     int64
	TotalPoints   int64
	AveragePoints decimal.Decimal
	LastScanAt    *time.Time
}

// NewSummary 由聚合查詢結果建立統計
func NewSummary(email user.Email, count, total int64, lastScanAt *time.Time) Summary {
	return Summary{
		Email:         email,
		ScanCount:     count,
		TotalPoints:   total,
		AveragePoints: points.AveragePerScan(total, count),
		LastScanAt:    lastScanAt,
	}
}

// Reconciliation 單一使用者的餘額核對結果
//
// 不變量：StoredPoints == ScanTotal + AdjustmentTotal
type Reconciliation struct {
	Email           user.Email
	StoredPoints    int64
	ScanTotal       int64
	AdjustmentTotal int64
}

// Expected 由帳本推導出的餘額
func (r Reconciliation) Expected() int64 {
	return r.ScanTotal + r.AdjustmentTotal
}

// Consistent 儲存餘額是否與帳本一致
func (r Reconciliation) Consistent() bool {
	return r.StoredPoints == r.Expected()
}

// Drift 儲存餘額與帳本的差額（正數代表儲存值偏高）
func (r Reconciliation) Drift() int64 {
	return r.StoredPoints - r.Expected()
}
