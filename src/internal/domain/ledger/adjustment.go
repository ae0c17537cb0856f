package ledger

import (
	"time"

	"github.com/jackyeh168/qr_points/src/internal/domain/points"
	"github.com/jackyeh168/qr_points/src/internal/domain/user"
)

// ===========================
// Adjustment 實體（只新增，不修改）
// ===========================

// Adjustment 管理員手動調整記錄
//
// requested 是管理員輸入的數量（> 0），applied 是實際套用的帶正負號變動量；
// 扣點被夾在 0 時 |applied| < requested。
type Adjustment struct {
	id           AdjustmentID
	userEmail    user.Email
	action       points.AdjustmentAction
	requested    int
	applied      int
	balanceAfter int
	performedBy  user.Email
	createdAt    time.Time
}

// NewAdjustment 建立調整記錄
func NewAdjustment(
	userEmail user.Email,
	action points.AdjustmentAction,
	requested int,
	applied int,
	balanceAfter int,
	performedBy user.Email,
) *Adjustment {
	return &Adjustment{
		id:           NewAdjustmentID(),
		userEmail:    userEmail,
		action:       action,
		requested:    requested,
		applied:      applied,
		balanceAfter: balanceAfter,
		performedBy:  performedBy,
		createdAt:    time.Now().UTC(),
	}
}

// ReconstructAdjustment 重建調整記錄（用於從資料庫載入）
func ReconstructAdjustment(
	id AdjustmentID,
	userEmail user.Email,
	action points.AdjustmentAction,
	requested int,
	applied int,
	balanceAfter int,
	performedBy user.Email,
	createdAt time.Time,
) *Adjustment {
	return &Adjustment{
		id:           id,
		userEmail:    userEmail,
		action:       action,
		requested:    requested,
		applied:      applied,
		balanceAfter: balanceAfter,
		performedBy:  performedBy,
		createdAt:    createdAt,
	}
}

func (a *Adjustment) ID() AdjustmentID                { return a.id }
func (a *Adjustment) UserEmail() user.Email           { return a.userEmail }
func (a *Adjustment) Action() points.AdjustmentAction { return a.action }
func (a *Adjustment) Requested() int                  { return a.requested }
func (a *Adjustment) Applied() int                    { return a.applied }
func (a *Adjustment) BalanceAfter() int               { return a.balanceAfter }
func (a *Adjustment) PerformedBy() user.Email         { return a.performedBy }
func (a *Adjustment) CreatedAt() time.Time            { return a.createdAt }
