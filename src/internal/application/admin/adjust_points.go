package admin

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackyeh168/qr_points/src/internal/application/appevents"
	"github.com/jackyeh168/qr_points/src/internal/application/lock"
	"github.com/jackyeh168/qr_points/src/internal/application/retry"
	"github.com/jackyeh168/qr_points/src/internal/domain/ledger"
	"github.com/jackyeh168/qr_points/src/internal/domain/points"
	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
	"github.com/jackyeh168/qr_points/src/internal/domain/user"
)

// ===========================
// Adjust Points Use Case
// ===========================

// AdjustPointsCommand 手動調整積分命令
type AdjustPointsCommand struct {
	Actor  user.Caller
	Email  string
	Action string // add / subtract
	Amount int    // > 0
}

// AdjustPointsResult 調整結果
type AdjustPointsResult struct {
	Email        string
	Action       string
	Requested    int
	Applied      int // 帶正負號的實際變動量；扣點被夾在 0 時 |Applied| < Requested
	Balance      int
	AdjustmentID string
}

// AdjustPointsUseCase 手動調整積分 Use Case 接口
type AdjustPointsUseCase interface {
	Execute(ctx context.Context, cmd AdjustPointsCommand) (*AdjustPointsResult, error)
}

// AdjustPointsUseCaseImpl 手動調整積分 Use Case 實現
type AdjustPointsUseCaseImpl struct {
	userRepo       user.UserRepository
	adjustmentRepo ledger.AdjustmentRepository
	txManager      shared.TransactionManager
	publisher      shared.EventPublisher
	locks          *lock.KeyedMutex
	policy         retry.Policy
}

// NewAdjustPointsUseCase 創建手動調整積分 Use Case
func NewAdjustPointsUseCase(
	userRepo user.UserRepository,
	adjustmentRepo ledger.AdjustmentRepository,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	locks *lock.KeyedMutex,
	policy retry.Policy,
) *AdjustPointsUseCaseImpl {
	return &AdjustPointsUseCaseImpl{
		userRepo:       userRepo,
		adjustmentRepo: adjustmentRepo,
		txManager:      txManager,
		publisher:      publisher,
		locks:          locks,
		policy:         policy,
	}
}

// Execute 執行調整
//
// 餘額變更與調整記錄在同一事務中寫入，帳本與餘額保持一致。
func (uc *AdjustPointsUseCaseImpl) Execute(ctx context.Context, cmd AdjustPointsCommand) (*AdjustPointsResult, error) {
	// 1. 權限與輸入
	if err := cmd.Actor.RequireAdmin(); err != nil {
		return nil, err
	}
	action, err := points.ParseAdjustmentAction(cmd.Action)
	if err != nil {
		return nil, err
	}
	delta, err := action.SignedDelta(cmd.Amount)
	if err != nil {
		return nil, err
	}
	email, err := user.NewEmail(cmd.Email)
	if err != nil {
		return nil, err
	}

	// 2. 與掃描共用的使用者鎖
	unlock := uc.locks.Lock(email.String())
	defer unlock()

	// 3. 入帳 + 調整記錄
	var (
		target     *user.User
		adjustment *ledger.Adjustment
	)
	err = retry.Do(ctx, uc.policy, func() error {
		return uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
			u, err := uc.userRepo.FindByEmail(tx, email)
			if err != nil {
				return err
			}
			applied := u.Credit(delta, "adjustment:"+action.String())
			if err := uc.userRepo.Update(tx, u); err != nil {
				return err
			}
			a := ledger.NewAdjustment(email, action, cmd.Amount, applied, u.Points().Value(), cmd.Actor.Email)
			if err := uc.adjustmentRepo.Append(tx, a); err != nil {
				return err
			}
			target, adjustment = u, a
			return nil
		})
	}, func(err error, wait time.Duration) {
		slog.Default().WarnContext(ctx, "retrying points adjustment",
			slog.String("email", email.String()),
			slog.Duration("wait", wait),
			slog.Any("error", err),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to adjust points: %w", err)
	}

	// 4. 發布事件
	appevents.Flush(ctx, uc.publisher, target)

	return &AdjustPointsResult{
		Email:        email.String(),
		Action:       action.String(),
		Requested:    cmd.Amount,
		Applied:      adjustment.Applied(),
		Balance:      adjustment.BalanceAfter(),
		AdjustmentID: adjustment.ID().String(),
	}, nil
}
