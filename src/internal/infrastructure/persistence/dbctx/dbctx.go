// Package dbctx 提供各倉儲共用的 GORM 事務上下文解析與錯誤映射。
package dbctx

import (
	"errors"
	"strings"

	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
	"gorm.io/gorm"
)

// Context GORM 事務上下文（由 persistence.GORMTransactionManager 產生）
//
// 不在 shared.TransactionContext 中暴露 GetDB，Domain Layer 無法訪問 GORM。
type Context interface {
	shared.TransactionContext
	GetDB() *gorm.DB
}

// Resolve 取得要使用的 DB
//
// ctx 是 GORM 上下文時使用其中的連接（事務或綁定 context.Context 的讀取連接），
// 否則使用 fallback（auto-commit 模式）。
func Resolve(ctx shared.TransactionContext, fallback *gorm.DB) *gorm.DB {
	if gormCtx, ok := ctx.(Context); ok && gormCtx != nil {
		return gormCtx.GetDB()
	}
	return fallback
}

// IsUniqueConstraintError 檢查是否為唯一約束錯誤
//
// 支援：SQLite、PostgreSQL、MySQL
func IsUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	for _, marker := range []string{
		"UNIQUE constraint failed",   // SQLite
		"duplicate key value",        // PostgreSQL
		"violates unique constraint", // PostgreSQL
		"Duplicate entry",            // MySQL
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// WrapError 將資料庫錯誤包裝為 shared.ErrRepository（KindInternal）
func WrapError(err error, operation string) error {
	if err == nil {
		return nil
	}
	return shared.ErrRepository.WithContext(
		"operation", operation,
		"cause", err.Error(),
	)
}
