package qrcode

import (
	"strings"
	"time"

	"github.com/jackyeh168/qr_points/src/internal/domain/points"
	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
	"github.com/jackyeh168/qr_points/src/internal/domain/user"
)

// ===========================
// QRCode Aggregate Root
// ===========================

// QRCode QR Code 定義聚合根
//
// 不變量：
// 1. id 建立後不可變更
// 2. 名稱不能為空，points >= 0
// 3. 只有 Active 狀態可被掃描
// 4. 刪除 QR Code 不影響已記錄的掃描事件
type QRCode struct {
	shared.EventRecorder

	id       CodeID
	sequence int
	name     string
	tags     Tags
	mode     Mode
	points   points.PointsAmount
	status   Status
	owner    user.Email

	createdAt time.Time
	updatedAt time.Time
}

// NewQRCode 創建新的 QR Code（初始狀態 Active）
func NewQRCode(
	sequence int,
	name string,
	tags Tags,
	mode Mode,
	amount points.PointsAmount,
	owner user.Email,
) (*QRCode, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if _, err := ParseMode(string(mode)); err != nil {
		return nil, err
	}
	if owner.IsZero() {
		return nil, user.ErrInvalidEmail.WithContext("field", "owner_email")
	}
	if amount.Value() > points.MaxAmount {
		return nil, points.ErrAmountTooLarge.WithContext("points", amount.Value())
	}

	now := time.Now().UTC()
	code := &QRCode{
		id:        CodeIDFromSequence(sequence),
		sequence:  sequence,
		name:      name,
		tags:      tags,
		mode:      mode,
		points:    amount,
		status:    StatusActive,
		owner:     owner,
		createdAt: now,
		updatedAt: now,
	}
	code.Record(NewQRCodeCreatedEvent(code, now))
	return code, nil
}

// ReconstructQRCode 重建 QR Code 聚合（用於從資料庫載入）
func ReconstructQRCode(
	id CodeID,
	sequence int,
	name string,
	tags Tags,
	mode Mode,
	amount points.PointsAmount,
	status Status,
	owner user.Email,
	createdAt time.Time,
	updatedAt time.Time,
) *QRCode {
	return &QRCode{
		id:        id,
		sequence:  sequence,
		name:      name,
		tags:      tags,
		mode:      mode,
		points:    amount,
		status:    status,
		owner:     owner,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ===========================
// 行為方法
// ===========================

// SetStatus 變更狀態（冪等）
//
// 返回是否真的發生變更；相同狀態不產生事件也不更新時間戳。
func (q *QRCode) SetStatus(status Status) (bool, error) {
	if _, err := ParseStatus(string(status)); err != nil {
		return false, err
	}
	if q.status == status {
		return false, nil
	}
	from := q.status
	q.status = status
	q.updatedAt = time.Now().UTC()
	q.Record(NewQRCodeStatusChangedEvent(q.id, from, status, q.updatedAt))
	return true, nil
}

// EnsureScannable 檢查是否可被掃描
func (q *QRCode) EnsureScannable() error {
	if q.status != StatusActive {
		return ErrCodeInactive.WithContext("qr_code_id", q.id.String())
	}
	return nil
}

// AwardTargets 依模式計算給點對象
func (q *QRCode) AwardTargets(caller user.Email) []user.Email {
	return q.mode.AwardTargets(q.owner, caller)
}

// MarkDeleted 記錄刪除事件（實際刪除由倉儲執行）
func (q *QRCode) MarkDeleted() {
	q.Record(NewQRCodeDeletedEvent(q.id, time.Now().UTC()))
}

// ===========================
// Getters
// ===========================

func (q *QRCode) ID() CodeID                  { return q.id }
func (q *QRCode) Sequence() int               { return q.sequence }
func (q *QRCode) Name() string                { return q.name }
func (q *QRCode) Tags() Tags                  { return q.tags }
func (q *QRCode) Mode() Mode                  { return q.mode }
func (q *QRCode) Points() points.PointsAmount { return q.points }
func (q *QRCode) Status() Status              { return q.status }
func (q *QRCode) Owner() user.Email           { return q.owner }
func (q *QRCode) CreatedAt() time.Time        { return q.createdAt }
func (q *QRCode) UpdatedAt() time.Time        { return q.updatedAt }

// IsActive 是否為啟用狀態
func (q *QRCode) IsActive() bool {
	return q.status == StatusActive
}
