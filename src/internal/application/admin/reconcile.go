package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackyeh168/qr_points/src/internal/domain/ledger"
	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
	"github.com/jackyeh168/qr_points/src/internal/domain/user"
)

// ===========================
// Reconcile Use Case
// ===========================

// ReconcileQuery 核對查詢
type ReconcileQuery struct {
	Email string // 空字串表示全部使用者
}

// ReconcileReport 核對報告
type ReconcileReport struct {
	Entries    []ledger.Reconciliation
	Mismatches []ledger.Reconciliation
}

// Consistent 所有使用者的餘額都與帳本一致
func (r ReconcileReport) Consistent() bool {
	return len(r.Mismatches) == 0
}

// ReconcileUseCase 核對儲存餘額與帳本（唯讀）
//
// 不檢查呼叫者身分：HTTP 路由限定管理員，CLI 由維運人員在主機上執行。
type ReconcileUseCase interface {
	Execute(ctx context.Context, query ReconcileQuery) (*ReconcileReport, error)
}

// ReconcileUseCaseImpl 核對 Use Case 實現
type ReconcileUseCaseImpl struct {
	userRepo       user.UserRepository
	scanRepo       ledger.ScanEventRepository
	adjustmentRepo ledger.AdjustmentRepository
	txManager      shared.TransactionManager
}

// NewReconcileUseCase 創建核對 Use Case
func NewReconcileUseCase(
	userRepo user.UserRepository,
	scanRepo ledger.ScanEventRepository,
	adjustmentRepo ledger.AdjustmentRepository,
	txManager shared.TransactionManager,
) *ReconcileUseCaseImpl {
	return &ReconcileUseCaseImpl{
		userRepo:       userRepo,
		scanRepo:       scanRepo,
		adjustmentRepo: adjustmentRepo,
		txManager:      txManager,
	}
}

// Execute 執行核對
//
// 在同一個事務中讀取，報告反映單一時間點的資料。
func (uc *ReconcileUseCaseImpl) Execute(ctx context.Context, query ReconcileQuery) (*ReconcileReport, error) {
	var single *user.Email
	if strings.TrimSpace(query.Email) != "" {
		email, err := user.NewEmail(query.Email)
		if err != nil {
			return nil, err
		}
		single = &email
	}

	report := &ReconcileReport{}
	err := uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		var users []*user.User
		if single != nil {
			u, err := uc.userRepo.FindByEmail(tx, *single)
			if err != nil {
				return err
			}
			users = []*user.User{u}
		} else {
			all, err := uc.userRepo.List(tx, nil)
			if err != nil {
				return err
			}
			users = all
		}

		for _, u := range users {
			scanTotal, err := uc.scanRepo.TotalPointsFor(tx, u.Email())
			if err != nil {
				return err
			}
			adjustmentTotal, err := uc.adjustmentRepo.TotalFor(tx, u.Email())
			if err != nil {
				return err
			}
			entry := ledger.Reconciliation{
				Email:           u.Email(),
				StoredPoints:    int64(u.Points().Value()),
				ScanTotal:       scanTotal,
				AdjustmentTotal: adjustmentTotal,
			}
			report.Entries = append(report.Entries, entry)
			if !entry.Consistent() {
				report.Mismatches = append(report.Mismatches, entry)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile: %w", err)
	}
	return report, nil
}
