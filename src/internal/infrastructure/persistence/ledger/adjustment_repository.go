package ledger

import (
	"github.com/jackyeh168/qr_points/src/internal/domain/ledger"
	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
	"github.com/jackyeh168/qr_points/src/internal/domain/user"
	"github.com/jackyeh168/qr_points/src/internal/infrastructure/persistence/dbctx"
	"gorm.io/gorm"
)

// AdjustmentRepositoryImpl 手動調整記錄倉儲實現（GORM）
type AdjustmentRepositoryImpl struct {
	db *gorm.DB
}

// NewAdjustmentRepository 創建調整記錄倉儲
func NewAdjustmentRepository(db *gorm.DB) ledger.AdjustmentRepository {
	return &AdjustmentRepositoryImpl{db: db}
}

// Append 新增調整記錄
func (r *AdjustmentRepositoryImpl) Append(ctx shared.TransactionContext, adjustment *ledger.Adjustment) error {
	db := dbctx.Resolve(ctx, r.db)

	if err := db.Create(adjustmentToGORM(adjustment)).Error; err != nil {
		return dbctx.WrapError(err, "point_adjustments.append")
	}
	return nil
}

// TotalFor 使用者所有調整的實際變動量總和
func (r *AdjustmentRepositoryImpl) TotalFor(ctx shared.TransactionContext, email user.Email) (int64, error) {
	db := dbctx.Resolve(ctx, r.db)

	var total int64
	err := db.Model(&AdjustmentGORM{}).
		Where("user_email = ?", email.String()).
		Select("COALESCE(SUM(applied), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, dbctx.WrapError(err, "point_adjustments.total")
	}
	return total, nil
}

// ListFor 依時間倒序列出使用者的調整記錄
func (r *AdjustmentRepositoryImpl) ListFor(ctx shared.TransactionContext, email user.Email) ([]*ledger.Adjustment, error) {
	db := dbctx.Resolve(ctx, r.db)

	var models []AdjustmentGORM
	err := db.Where("user_email = ?", email.String()).
		Order("created_at DESC, id DESC").
		Find(&models).Error
	if err != nil {
		return nil, dbctx.WrapError(err, "point_adjustments.list")
	}

	adjustments := make([]*ledger.Adjustment, 0, len(models))
	for i := range models {
		adj, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		adjustments = append(adjustments, adj)
	}
	return adjustments, nil
}
