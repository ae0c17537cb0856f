package ledger

import (
	"time"

	"github.com/jackyeh168/qr_points/src/internal/domain/ledger"
	"github.com/jackyeh168/qr_points/src/internal/domain/points"
	"github.com/jackyeh168/qr_points/src/internal/domain/qrcode"
	"github.com/jackyeh168/qr_points/src/internal/domain/user"
)

// ===========================
// ScanEventGORM
// ===========================

// ScanEventGORM 掃描事件資料表模型（只新增）
//
// qr_code_id 只是參照，不設外鍵：刪除 QR Code 不影響歷史記錄。
type ScanEventGORM struct {
	EventID      string    `gorm:"column:event_id;type:char(26);primaryKey"` // ULID
	QRCodeID     string    `gorm:"column:qr_code_id;type:varchar(32);index;not null"`
	ScannerEmail string    `gorm:"column:scanner_email;type:varchar(254);index:idx_scan_events_scanner_time,priority:1;not null"`
	CallerEmail  string    `gorm:"column:caller_email;type:varchar(254);index:idx_scan_events_caller_code,priority:1;not null"`
	Points       int       `gorm:"column:points;not null"`
	ScannedAt    time.Time `gorm:"column:scanned_at;index:idx_scan_events_scanner_time,priority:2;not null"`
}

// TableName 指定資料表名稱
func (ScanEventGORM) TableName() string {
	return "scan_events"
}

func (m *ScanEventGORM) toDomain() (*ledger.ScanEvent, error) {
	id, err := ledger.ParseEventID(m.EventID)
	if err != nil {
		return nil, err
	}
	codeID, err := qrcode.NewCodeID(m.QRCodeID)
	if err != nil {
		return nil, err
	}
	scanner, err := user.NewEmail(m.ScannerEmail)
	if err != nil {
		return nil, err
	}
	caller, err := user.NewEmail(m.CallerEmail)
	if err != nil {
		return nil, err
	}
	return ledger.ReconstructScanEvent(id, codeID, scanner, caller, m.Points, m.ScannedAt.UTC()), nil
}

func scanEventToGORM(e *ledger.ScanEvent) *ScanEventGORM {
	return &ScanEventGORM{
		EventID:      e.ID().String(),
		QRCodeID:     e.QRCodeID().String(),
		ScannerEmail: e.ScannerEmail().String(),
		CallerEmail:  e.CallerEmail().String(),
		Points:       e.Points(),
		ScannedAt:    e.ScannedAt(),
	}
}

// ===========================
// AdjustmentGORM
// ===========================

// AdjustmentGORM 手動調整記錄資料表模型（只新增）
type AdjustmentGORM struct {
	ID           string    `gorm:"column:id;type:varchar(36);primaryKey"` // UUID
	UserEmail    string    `gorm:"column:user_email;type:varchar(254);index;not null"`
	Action       string    `gorm:"column:action;type:varchar(16);not null"`
	Requested    int       `gorm:"column:requested;not null"`
	Applied      int       `gorm:"column:applied;not null"`
	BalanceAfter int       `gorm:"column:balance_after;not null"`
	PerformedBy  string    `gorm:"column:performed_by;type:varchar(254);not null"`
	CreatedAt    time.Time `gorm:"column:created_at;not null"`
}

// TableName 指定資料表名稱
func (AdjustmentGORM) TableName() string {
	return "point_adjustments"
}

func (m *AdjustmentGORM) toDomain() (*ledger.Adjustment, error) {
	id, err := ledger.AdjustmentIDFromString(m.ID)
	if err != nil {
		return nil, err
	}
	email, err := user.NewEmail(m.UserEmail)
	if err != nil {
		return nil, err
	}
	action, err := points.ParseAdjustmentAction(m.Action)
	if err != nil {
		return nil, err
	}
	performedBy, err := user.NewEmail(m.PerformedBy)
	if err != nil {
		return nil, err
	}
	return ledger.ReconstructAdjustment(
		id, email, action, m.Requested, m.Applied, m.BalanceAfter, performedBy, m.CreatedAt.UTC(),
	), nil
}

func adjustmentToGORM(a *ledger.Adjustment) *AdjustmentGORM {
	return &AdjustmentGORM{
		ID:           a.ID().String(),
		UserEmail:    a.UserEmail().String(),
		Action:       a.Action().String(),
		Requested:    a.Requested(),
		Applied:      a.Applied(),
		BalanceAfter: a.BalanceAfter(),
		PerformedBy:  a.PerformedBy().String(),
		CreatedAt:    a.CreatedAt(),
	}
}
