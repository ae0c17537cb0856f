package persistence

import (
	"context"

	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
	"gorm.io/gorm"
)

// GORMTransactionManager 以 GORM 實作 shared.TransactionManager
//
// fn 返回錯誤時回滾；fn panic 時回滾後重新 panic（gorm.DB.Transaction 的行為）。
type GORMTransactionManager struct {
	db *gorm.DB
}

// NewGORMTransactionManager 創建事務管理器
func NewGORMTransactionManager(db *gorm.DB) *GORMTransactionManager {
	return &GORMTransactionManager{db: db}
}

// InTransaction 在單一事務中執行 fn
func (m *GORMTransactionManager) InTransaction(ctx context.Context, fn func(tx shared.TransactionContext) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&txContext{db: tx})
	})
}

// Reader 返回綁定 ctx 的非事務上下文
func (m *GORMTransactionManager) Reader(ctx context.Context) shared.TransactionContext {
	return &txContext{db: m.db.WithContext(ctx)}
}

// txContext 把 *gorm.DB 包成 shared.TransactionContext，倉儲透過 dbctx.Resolve 取回
type txContext struct {
	db *gorm.DB
}

func (c *txContext) GetDB() *gorm.DB {
	return c.db
}

var _ shared.TransactionManager = (*GORMTransactionManager)(nil)
