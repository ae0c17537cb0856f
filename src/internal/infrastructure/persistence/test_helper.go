package persistence

import (
	"io"
	"log/slog"
	"testing"

	"gorm.io/gorm"
)

// ===========================
// 測試輔助函數
// ===========================

// SetupTestDB 創建測試用的 SQLite in-memory 資料庫（已完成遷移）
//
// 每次呼叫都是獨立的資料庫；測試結束時自動關閉。
func SetupTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := Open(Config{Driver: DriverSQLite, DSN: ":memory:"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		_ = Close(db)
	})
	return db
}
