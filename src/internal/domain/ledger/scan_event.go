package ledger

import (
	"time"

	"github.com/jackyeh168/qr_points/src/internal/domain/qrcode"
	"github.com/jackyeh168/qr_points/src/internal/domain/user"
)

// ===========================
// ScanEvent 實體（只新增，不修改）
// ===========================

// ScanEvent 一筆掃描給點記錄
//
// scannerEmail 是獲得積分的一方（Both 模式下擁有者與掃描者各一筆），
// callerEmail 是實際掃描的人。points 是掃描當下的點數快照，
// 之後修改或刪除 QR Code 都不影響歷史記錄。
type ScanEvent struct {
	id           EventID
	qrCodeID     qrcode.CodeID
	scannerEmail user.Email
	callerEmail  user.Email
	points       int
	scannedAt    time.Time
}

// NewScanEvent 建立新的掃描事件
func NewScanEvent(qrCodeID qrcode.CodeID, scannerEmail, callerEmail user.Email, points int, at time.Time) (*ScanEvent, error) {
	if qrCodeID.IsZero() || scannerEmail.IsZero() || callerEmail.IsZero() {
		return nil, ErrInvalidScanEvent.WithContext(
			"qr_code_id", qrCodeID.String(),
			"scanner_email", scannerEmail.String(),
		)
	}
	if points < 0 {
		return nil, ErrInvalidScanEvent.WithContext("points", points)
	}
	at = at.UTC()
	return &ScanEvent{
		id:           NewEventID(at),
		qrCodeID:     qrCodeID,
		scannerEmail: scannerEmail,
		callerEmail:  callerEmail,
		points:       points,
		scannedAt:    at,
	}, nil
}

// ReconstructScanEvent 重建掃描事件（用於從資料庫載入）
func ReconstructScanEvent(
	id EventID,
	qrCodeID qrcode.CodeID,
	scannerEmail user.Email,
	callerEmail user.Email,
	points int,
	scannedAt time.Time,
) *ScanEvent {
	return &ScanEvent{
		id:           id,
		qrCodeID:     qrCodeID,
		scannerEmail: scannerEmail,
		callerEmail:  callerEmail,
		points:       points,
		scannedAt:    scannedAt,
	}
}

func (e *ScanEvent) ID() EventID              { return e.id }
func (e *ScanEvent) QRCodeID() qrcode.CodeID  { return e.qrCodeID }
func (e *ScanEvent) ScannerEmail() user.Email { return e.scannerEmail }
func (e *ScanEvent) CallerEmail() user.Email  { return e.callerEmail }
func (e *ScanEvent) Points() int              { return e.points }
func (e *ScanEvent) ScannedAt() time.Time     { return e.scannedAt }
