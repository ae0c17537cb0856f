package qrcode

import (
	"time"

	"github.com/jackyeh168/qr_points/src/internal/domain/points"
	"github.com/jackyeh168/qr_points/src/internal/domain/qrcode"
	"github.com/jackyeh168/qr_points/src/internal/domain/user"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QRCodeGORM QR Code 資料表模型
//
// 資料庫約束：
// - qr_code_id: 主鍵
// - seq: 唯一索引；刪除為軟刪除，已使用的序號不會再分配
// - tags: JSON 陣列（排序、去重後儲存）
type QRCodeGORM struct {
	QRCodeID   string                      `gorm:"column:qr_code_id;type:varchar(32);primaryKey"`
	Seq        int                         `gorm:"column:seq;uniqueIndex;not null"`
	Name       string                      `gorm:"column:name;type:varchar(255);not null"`
	Tags       datatypes.JSONSlice[string] `gorm:"column:tags"`
	Mode       string                      `gorm:"column:mode;type:varchar(32);index;not null"`
	Points     int                         `gorm:"column:points;not null;check:qrcode_points_non_negative,points >= 0"`
	Status     string                      `gorm:"column:status;type:varchar(16);not null"`
	OwnerEmail string                      `gorm:"column:owner_email;type:varchar(254);index;not null"`
	CreatedAt  time.Time                   `gorm:"column:created_at;not null"`
	UpdatedAt  time.Time                   `gorm:"column:updated_at;not null"`
	DeletedAt  gorm.DeletedAt              `gorm:"column:deleted_at;index"` // 軟刪除
}

// TableName 指定資料表名稱
func (QRCodeGORM) TableName() string {
	return "qrcodes"
}

// toDomain 將 GORM 模型轉換為 Domain 模型
func (m *QRCodeGORM) toDomain() (*qrcode.QRCode, error) {
	id, err := qrcode.NewCodeID(m.QRCodeID)
	if err != nil {
		return nil, err
	}
	mode, err := qrcode.ParseMode(m.Mode)
	if err != nil {
		return nil, err
	}
	status, err := qrcode.ParseStatus(m.Status)
	if err != nil {
		return nil, err
	}
	amount, err := points.NewPointsAmount(m.Points)
	if err != nil {
		return nil, err
	}
	owner, err := user.NewEmail(m.OwnerEmail)
	if err != nil {
		return nil, err
	}

	return qrcode.ReconstructQRCode(
		id,
		m.Seq,
		m.Name,
		qrcode.NewTags(m.Tags),
		mode,
		amount,
		status,
		owner,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

// toGORM 將 Domain 模型轉換為 GORM 模型
func toGORM(q *qrcode.QRCode) *QRCodeGORM {
	return &QRCodeGORM{
		QRCodeID:   q.ID().String(),
		Seq:        q.Sequence(),
		Name:       q.Name(),
		Tags:       datatypes.JSONSlice[string](q.Tags().Values()),
		Mode:       q.Mode().String(),
		Points:     q.Points().Value(),
		Status:     q.Status().String(),
		OwnerEmail: q.Owner().String(),
		CreatedAt:  q.CreatedAt(),
		UpdatedAt:  q.UpdatedAt(),
	}
}
