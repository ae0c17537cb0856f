package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackyeh168/qr_points/src/internal/application/appevents"
	"github.com/jackyeh168/qr_points/src/internal/application/lock"
	"github.com/jackyeh168/qr_points/src/internal/application/retry"
	"github.com/jackyeh168/qr_points/src/internal/domain/ledger"
	"github.com/jackyeh168/qr_points/src/internal/domain/qrcode"
	"github.com/jackyeh168/qr_points/src/internal/domain/scan"
	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
	"github.com/jackyeh168/qr_points/src/internal/domain/user"
)

// ===========================
// Scan Engine
// ===========================

// Command 掃描命令；Caller 由 Transport 層從 token 取得
type Command struct {
	QRCodeID string
	Caller   user.Caller
}

// UseCase 掃描 Use Case 接口
type UseCase interface {
	Execute(ctx context.Context, cmd Command) (*scan.Result, error)
}

// Config 掃描引擎設定
type Config struct {
	Retry    retry.Policy
	Cooldown time.Duration // > 0 時，同一呼叫者在時間窗內重複掃描同一 QR Code 會被拒絕
}

// Engine 掃描引擎
//
// 一次掃描的查詢、驗證、所有入帳與帳本寫入都在同一個事務中完成。
// 受益者的行程內鎖依 email 排序取得，同一使用者的入帳不會交錯；
// 跨行程的競爭由使用者的樂觀鎖偵測，以 Internal 錯誤觸發重試。
type Engine struct {
	codeRepo  qrcode.QRCodeRepository
	userRepo  user.UserRepository
	scanRepo  ledger.ScanEventRepository
	txManager shared.TransactionManager
	publisher shared.EventPublisher
	locks     *lock.KeyedMutex
	cfg       Config
	now       func() time.Time
}

// NewEngine 創建掃描引擎
//
// locks 與 AdjustPoints 共用，確保掃描與手動調整對同一使用者序列化。
func NewEngine(
	codeRepo qrcode.QRCodeRepository,
	userRepo user.UserRepository,
	scanRepo ledger.ScanEventRepository,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	locks *lock.KeyedMutex,
	cfg Config,
) *Engine {
	return &Engine{
		codeRepo:  codeRepo,
		userRepo:  userRepo,
		scanRepo:  scanRepo,
		txManager: txManager,
		publisher: publisher,
		locks:     locks,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Execute 執行一次掃描
func (e *Engine) Execute(ctx context.Context, cmd Command) (*scan.Result, error) {
	at := e.now().UTC()

	// 1. 提交：空白 ID 直接拒絕
	attempt, err := scan.Submit(cmd.QRCodeID, cmd.Caller, at)
	if err != nil {
		appevents.Flush(ctx, e.publisher, attempt)
		return nil, err
	}

	// 2. 鎖定可能的受益者
	unlock := e.locks.Lock(e.lockKeys(ctx, attempt.CodeID(), cmd.Caller.Email)...)
	defer unlock()

	// 3. 單一事務內完成驗證、入帳、記帳；Internal 錯誤整個重跑
	var (
		result   scan.Result
		credited []*user.User
	)
	err = retry.Do(ctx, e.cfg.Retry, func() error {
		// 每次重試使用新的 Attempt；輸入在步驟 1 已驗證過，這裡的錯誤不會重試
		next, err := scan.Submit(cmd.QRCodeID, cmd.Caller, at)
		if err != nil {
			return err
		}
		attempt = next
		credited = credited[:0]
		return e.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
			users, err := e.run(tx, attempt)
			if err != nil {
				return err
			}
			credited = users
			result, err = attempt.Complete()
			return err
		})
	}, func(err error, wait time.Duration) {
		slog.Default().WarnContext(ctx, "retrying scan",
			slog.String("qr_code_id", attempt.CodeID().String()),
			slog.String("caller", cmd.Caller.Email.String()),
			slog.Duration("wait", wait),
			slog.Any("error", err),
		)
	})
	if err != nil {
		if attempt.State() == scan.StateRejected {
			appevents.Flush(ctx, e.publisher, attempt)
			return nil, err
		}
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	// 4. 提交後發布事件
	sources := []appevents.Source{attempt}
	for _, u := range credited {
		sources = append(sources, u)
	}
	appevents.Flush(ctx, e.publisher, sources...)

	return &result, nil
}

// run 在事務中驗證並入帳，返回被入帳的使用者
func (e *Engine) run(tx shared.TransactionContext, attempt *scan.Attempt) ([]*user.User, error) {
	caller := attempt.Caller().Email

	// 查詢 QR Code：倉儲的 NotFound 轉為掃描流程的 CodeNotFound
	code, err := e.codeRepo.FindByID(tx, attempt.CodeID())
	if err != nil && !errors.Is(err, qrcode.ErrQRCodeNotFound) {
		return nil, err
	}
	if err := attempt.Validate(code); err != nil {
		return nil, err
	}

	// 呼叫者必須是已註冊帳號
	if _, err := e.userRepo.FindByEmail(tx, caller); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, attempt.Reject(scan.ErrCallerNotFound.WithContext("email", caller.String()))
		}
		return nil, err
	}

	if e.cfg.Cooldown > 0 {
		last, err := e.scanRepo.LastScanAt(tx, caller, attempt.CodeID())
		if err != nil {
			return nil, err
		}
		if last != nil && attempt.At().Sub(*last) < e.cfg.Cooldown {
			return nil, attempt.Reject(scan.ErrCooldown.WithContext(
				"qr_code_id", attempt.CodeID().String(),
				"retry_after", last.Add(e.cfg.Cooldown).Sub(attempt.At()).String(),
			))
		}
	}

	amount := attempt.Code().Points().Value()
	reason := "scan:" + attempt.CodeID().String()

	targets := attempt.Targets()
	credited := make([]*user.User, 0, len(targets))
	for _, target := range targets {
		u, err := e.userRepo.FindByEmail(tx, target)
		if err != nil {
			return nil, err
		}
		applied := u.Credit(amount, reason)
		if err := e.userRepo.Update(tx, u); err != nil {
			return nil, err
		}

		// 帳本記錄實際入帳量，餘額飽和時仍與 points 一致
		event, err := ledger.NewScanEvent(attempt.CodeID(), target, caller, applied, attempt.At())
		if err != nil {
			return nil, err
		}
		if err := e.scanRepo.Append(tx, event); err != nil {
			return nil, err
		}
		if err := attempt.AddAward(target, event.ID().String()); err != nil {
			return nil, err
		}
		credited = append(credited, u)
	}
	return credited, nil
}

// lockKeys 呼叫者與 QR Code 擁有者
//
// 擁有者與模式建立後不可變更，事務外讀到的值與事務內一致；
// 讀取失敗時只鎖呼叫者，事務內的驗證會拒絕這次掃描。
func (e *Engine) lockKeys(ctx context.Context, id qrcode.CodeID, caller user.Email) []string {
	keys := []string{caller.String()}
	code, err := e.codeRepo.FindByID(e.txManager.Reader(ctx), id)
	if err == nil {
		keys = append(keys, code.Owner().String())
	}
	return keys
}
