package ledger

import (
	"github.com/jackyeh168/qr_points/src/internal/domain/ledger"
	"gorm.io/gorm"
)

// NewScanEventRepositoryWithPageSize 以指定的分頁大小建立倉儲（測試分頁邊界用）
func NewScanEventRepositoryWithPageSize(db *gorm.DB, pageSize int) ledger.ScanEventRepository {
	return &ScanEventRepositoryImpl{db: db, pageSize: pageSize}
}
