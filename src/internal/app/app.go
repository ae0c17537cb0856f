// Package app 組裝所有依賴並管理服務生命週期。
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackyeh168/qr_points/src/internal/application/account"
	"github.com/jackyeh168/qr_points/src/internal/application/admin"
	appledger "github.com/jackyeh168/qr_points/src/internal/application/ledger"
	"github.com/jackyeh168/qr_points/src/internal/application/lock"
	appqrcode "github.com/jackyeh168/qr_points/src/internal/application/qrcode"
	"github.com/jackyeh168/qr_points/src/internal/application/retry"
	appscan "github.com/jackyeh168/qr_points/src/internal/application/scan"
	"github.com/jackyeh168/qr_points/src/internal/config"
	"github.com/jackyeh168/qr_points/src/internal/infrastructure/events"
	"github.com/jackyeh168/qr_points/src/internal/infrastructure/logging"
	"github.com/jackyeh168/qr_points/src/internal/infrastructure/persistence"
	ledgerrepo "github.com/jackyeh168/qr_points/src/internal/infrastructure/persistence/ledger"
	qrcoderepo "github.com/jackyeh168/qr_points/src/internal/infrastructure/persistence/qrcode"
	userrepo "github.com/jackyeh168/qr_points/src/internal/infrastructure/persistence/user"
	"github.com/jackyeh168/qr_points/src/internal/infrastructure/security"
	"github.com/jackyeh168/qr_points/src/internal/interfaces/httpapi"
	"gorm.io/gorm"
)

// BuildVersion 建置時以 ldflags 覆寫
var BuildVersion = "v0.1.0"

const serviceName = "qrpoints"

// Application 持有服務的所有依賴
type Application struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *gorm.DB
	server *http.Server
}

// NewLogger 依設定建立並設定預設 logger
func NewLogger(cfg *config.Config) *slog.Logger {
	return logging.New(logging.Config{
		Service: serviceName,
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
	})
}

// OpenDatabase 開啟資料庫並套用 schema
func OpenDatabase(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	db, err := persistence.Open(persistence.Config(cfg.Database), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := persistence.Migrate(db); err != nil {
		_ = persistence.Close(db)
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}
	logger.Info("database migrations applied", "driver", cfg.Database.Driver)
	return db, nil
}

// New 建立 Application 並完成所有依賴注入
func New(cfg *config.Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	app := &Application{cfg: cfg, logger: NewLogger(cfg)}

	db, err := OpenDatabase(cfg, app.logger)
	if err != nil {
		return nil, err
	}
	app.db = db

	router, err := app.initRouter()
	if err != nil {
		_ = persistence.Close(db)
		return nil, err
	}

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return app, nil
}

// initRouter 建立倉儲、use case 與路由
func (app *Application) initRouter() (*gin.Engine, error) {
	cfg := app.cfg

	tokens, err := security.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token issuer: %w", err)
	}
	hasher := security.NewArgon2Hasher(cfg.Auth.Pepper)
	publisher := events.NewSlogPublisher(app.logger)
	txManager := persistence.NewGORMTransactionManager(app.db)

	users := userrepo.NewUserRepository(app.db)
	codes := qrcoderepo.NewQRCodeRepository(app.db)
	scans := ledgerrepo.NewScanEventRepository(app.db)
	adjustments := ledgerrepo.NewAdjustmentRepository(app.db)

	policy := retry.DefaultPolicy()
	policy.MaxRetries = cfg.Scan.MaxRetries

	// 掃描與手動調整共用同一組使用者鎖
	locks := lock.New()

	svc := httpapi.Services{
		Register:  account.NewRegisterUseCase(users, hasher, txManager, publisher, cfg.Auth.AllowAdminSignup),
		Login:     account.NewAuthenticateUseCase(users, hasher, tokens, txManager),
		Profile:   account.NewGetProfileUseCase(users, txManager),
		ListUsers: account.NewListUsersUseCase(users, txManager),
		QRCodes:   appqrcode.NewQueryService(codes, txManager),
		Admin: admin.NewOperations(
			appqrcode.NewCreateUseCase(codes, users, txManager, publisher, policy),
			appqrcode.NewSetStatusUseCase(codes, txManager, publisher),
			appqrcode.NewDeleteUseCase(codes, txManager, publisher),
			admin.NewAdjustPointsUseCase(users, adjustments, txManager, publisher, locks, policy),
			admin.NewReconcileUseCase(users, scans, adjustments, txManager),
		),
		Scan: appscan.NewEngine(codes, users, scans, txManager, publisher, locks, appscan.Config{
			Retry:    policy,
			Cooldown: cfg.Scan.Cooldown,
		}),
		Ledger: appledger.NewQueryService(scans, txManager),
		Tokens: tokens,
		Ping:   app.ping,
	}

	gin.SetMode(cfg.Server.Mode)
	return httpapi.NewRouter(svc, httpapi.Options{
		Logger:        app.logger,
		ScanRateLimit: cfg.Scan.RateLimit,
		ScanRateBurst: cfg.Scan.RateBurst,
	}), nil
}

func (app *Application) ping(ctx context.Context) error {
	sqlDB, err := app.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Run 啟動 HTTP 服務，直到收到停止訊號或 ctx 結束
func (app *Application) Run(ctx context.Context) error {
	app.logger.Info("qrpoints service starting", "port", app.cfg.Server.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			_ = persistence.Close(app.db)
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		app.logger.Info("context cancelled", "error", ctx.Err())
	}

	if err := app.Shutdown(); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// Shutdown 等待進行中的請求完成後關閉資料庫
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down qrpoints service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.Server.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := persistence.Close(app.db); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("qrpoints service stopped")
	return nil
}

// Reconcile 對帳（CLI 使用，不經過管理員身分檢查）
func Reconcile(ctx context.Context, db *gorm.DB, email string) (*admin.ReconcileReport, error) {
	uc := admin.NewReconcileUseCase(
		userrepo.NewUserRepository(db),
		ledgerrepo.NewScanEventRepository(db),
		ledgerrepo.NewAdjustmentRepository(db),
		persistence.NewGORMTransactionManager(db),
	)
	return uc.Execute(ctx, admin.ReconcileQuery{Email: email})
}
