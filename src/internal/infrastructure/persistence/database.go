package persistence

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackyeh168/qr_points/src/internal/infrastructure/persistence/ledger"
	"github.com/jackyeh168/qr_points/src/internal/infrastructure/persistence/qrcode"
	"github.com/jackyeh168/qr_points/src/internal/infrastructure/persistence/user"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ===========================
// 資料庫連線
// ===========================

// 支援的資料庫驅動
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config 資料庫設定
type Config struct {
	Driver        string
	DSN           string
	MaxOpenConns  int
	SlowThreshold time.Duration
	LogLevel      string // silent / error / warn / info
}

// Open 依設定開啟資料庫連線
//
// sqlite 固定只使用一條連線：寫入天然序列化，:memory: 也共用同一個資料庫。
func Open(cfg Config, log *slog.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(
			slog.NewLogLogger(log.Handler(), slog.LevelWarn),
			logger.Config{
				SlowThreshold:             thresholdOrDefault(cfg.SlowThreshold),
				LogLevel:                  parseLogLevel(cfg.LogLevel),
				IgnoreRecordNotFoundError: true,
			},
		),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if normalizeDriver(cfg.Driver) == DriverSQLite {
		sqlDB.SetMaxOpenConns(1)
	} else if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	log.Info("database connected", slog.String("driver", normalizeDriver(cfg.Driver)))
	return db, nil
}

// Migrate 建立或更新所有資料表
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Models 所有 GORM 模型
func Models() []interface{} {
	return []interface{}{
		&user.UserGORM{},
		&qrcode.QRCodeGORM{},
		&ledger.ScanEventGORM{},
		&ledger.AdjustmentGORM{},
	}
}

// Close 關閉底層連線
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func dialectorFor(cfg Config) (gorm.Dialector, error) {
	switch normalizeDriver(cfg.Driver) {
	case DriverSQLite:
		dsn := cfg.DSN
		if dsn == "" {
			dsn = "file:qrpoints.db?_busy_timeout=5000"
		}
		return sqlite.Open(dsn), nil
	case DriverPostgres:
		return postgres.Open(cfg.DSN), nil
	case DriverMySQL:
		return mysql.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func normalizeDriver(driver string) string {
	switch d := strings.ToLower(strings.TrimSpace(driver)); d {
	case "", "sqlite3":
		return DriverSQLite
	case "postgresql", "pg":
		return DriverPostgres
	default:
		return d
	}
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "error":
		return logger.Error
	case "warn", "warning":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return logger.Silent
	}
}

func thresholdOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return 200 * time.Millisecond
	}
	return d
}
