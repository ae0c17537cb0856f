package qrcode

import (
	"errors"

	"github.com/jackyeh168/qr_points/src/internal/domain/qrcode"
	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
	"github.com/jackyeh168/qr_points/src/internal/infrastructure/persistence/dbctx"
	"gorm.io/gorm"
)

// QRCodeRepositoryImpl QR Code 倉儲實現（GORM）
type QRCodeRepositoryImpl struct {
	db *gorm.DB
}

// NewQRCodeRepository 創建 QR Code 倉儲
func NewQRCodeRepository(db *gorm.DB) qrcode.QRCodeRepository {
	return &QRCodeRepositoryImpl{db: db}
}

// NextSequence 返回下一個序號
//
// 包含已軟刪除的記錄，刪除後序號不會被重用。
func (r *QRCodeRepositoryImpl) NextSequence(ctx shared.TransactionContext) (int, error) {
	db := dbctx.Resolve(ctx, r.db)

	var maxSeq int
	err := db.Unscoped().
		Model(&QRCodeGORM{}).
		Select("COALESCE(MAX(seq), 0)").
		Scan(&maxSeq).Error
	if err != nil {
		return 0, dbctx.WrapError(err, "qrcodes.next_sequence")
	}
	return maxSeq + 1, nil
}

// Save 新增 QR Code
func (r *QRCodeRepositoryImpl) Save(ctx shared.TransactionContext, code *qrcode.QRCode) error {
	db := dbctx.Resolve(ctx, r.db)

	if err := db.Create(toGORM(code)).Error; err != nil {
		if dbctx.IsUniqueConstraintError(err) {
			return qrcode.ErrDuplicateCodeID.WithContext(
				"qr_code_id", code.ID().String(),
				"seq", code.Sequence(),
			)
		}
		return dbctx.WrapError(err, "qrcodes.save")
	}
	return nil
}

// FindByID 查找 QR Code（不含已刪除）
func (r *QRCodeRepositoryImpl) FindByID(ctx shared.TransactionContext, id qrcode.CodeID) (*qrcode.QRCode, error) {
	db := dbctx.Resolve(ctx, r.db)

	var model QRCodeGORM
	err := db.Where("qr_code_id = ?", id.String()).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, qrcode.ErrQRCodeNotFound.WithContext("qr_code_id", id.String())
		}
		return nil, dbctx.WrapError(err, "qrcodes.find_by_id")
	}
	return model.toDomain()
}

// UpdateStatus 保存狀態變更
func (r *QRCodeRepositoryImpl) UpdateStatus(ctx shared.TransactionContext, code *qrcode.QRCode) error {
	db := dbctx.Resolve(ctx, r.db)

	result := db.Model(&QRCodeGORM{}).
		Where("qr_code_id = ?", code.ID().String()).
		Updates(map[string]interface{}{
			"status":     code.Status().String(),
			"updated_at": code.UpdatedAt(),
		})
	if result.Error != nil {
		return dbctx.WrapError(result.Error, "qrcodes.update_status")
	}
	if result.RowsAffected == 0 {
		return qrcode.ErrQRCodeNotFound.WithContext("qr_code_id", code.ID().String())
	}
	return nil
}

// Delete 刪除 QR Code 定義（軟刪除，掃描事件不受影響）
func (r *QRCodeRepositoryImpl) Delete(ctx shared.TransactionContext, id qrcode.CodeID) error {
	db := dbctx.Resolve(ctx, r.db)

	result := db.Where("qr_code_id = ?", id.String()).Delete(&QRCodeGORM{})
	if result.Error != nil {
		return dbctx.WrapError(result.Error, "qrcodes.delete")
	}
	if result.RowsAffected == 0 {
		return qrcode.ErrQRCodeNotFound.WithContext("qr_code_id", id.String())
	}
	return nil
}

// List 依建立順序列出 QR Code
func (r *QRCodeRepositoryImpl) List(ctx shared.TransactionContext, mode *qrcode.Mode) ([]*qrcode.QRCode, error) {
	db := dbctx.Resolve(ctx, r.db)

	query := db.Model(&QRCodeGORM{}).Order("seq ASC")
	if mode != nil {
		query = query.Where("mode = ?", mode.String())
	}

	var models []QRCodeGORM
	if err := query.Find(&models).Error; err != nil {
		return nil, dbctx.WrapError(err, "qrcodes.list")
	}

	codes := make([]*qrcode.QRCode, 0, len(models))
	for i := range models {
		code, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, nil
}
