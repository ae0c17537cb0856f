package admin

import (
	"context"

	appqrcode "github.com/jackyeh168/qr_points/src/internal/application/qrcode"
	"github.com/jackyeh168/qr_points/src/internal/domain/qrcode"
	"github.com/jackyeh168/qr_points/src/internal/domain/user"
)

// ===========================
// AdminOperations
// ===========================

// Operations 管理員操作入口
//
// QR Code 管理直接轉交 application/qrcode，錯誤約定相同；
// 每個操作都要求 actor 為管理員。
type Operations struct {
	create    appqrcode.CreateUseCase
	setStatus appqrcode.SetStatusUseCase
	remove    appqrcode.DeleteUseCase
	adjust    AdjustPointsUseCase
	reconcile ReconcileUseCase
}

// NewOperations 創建管理員操作入口
func NewOperations(
	create appqrcode.CreateUseCase,
	setStatus appqrcode.SetStatusUseCase,
	remove appqrcode.DeleteUseCase,
	adjust AdjustPointsUseCase,
	reconcile ReconcileUseCase,
) *Operations {
	return &Operations{
		create:    create,
		setStatus: setStatus,
		remove:    remove,
		adjust:    adjust,
		reconcile: reconcile,
	}
}

// CreateQRCode 建立 QR Code；OwnerEmail 為空時由 actor 擁有
func (o *Operations) CreateQRCode(ctx context.Context, cmd appqrcode.CreateCommand) (*appqrcode.QRCodeDTO, error) {
	return o.create.Execute(ctx, cmd)
}

// ActivateQRCode 啟用 QR Code（冪等）
func (o *Operations) ActivateQRCode(ctx context.Context, actor user.Caller, id string) (*appqrcode.QRCodeDTO, error) {
	return o.SetQRCodeStatus(ctx, actor, id, qrcode.StatusActive.String())
}

// DeactivateQRCode 停用 QR Code（冪等）
func (o *Operations) DeactivateQRCode(ctx context.Context, actor user.Caller, id string) (*appqrcode.QRCodeDTO, error) {
	return o.SetQRCodeStatus(ctx, actor, id, qrcode.StatusInactive.String())
}

// SetQRCodeStatus 以字串狀態變更 QR Code
func (o *Operations) SetQRCodeStatus(ctx context.Context, actor user.Caller, id, status string) (*appqrcode.QRCodeDTO, error) {
	return o.setStatus.Execute(ctx, appqrcode.SetStatusCommand{Actor: actor, ID: id, Status: status})
}

// DeleteQRCode 刪除 QR Code
func (o *Operations) DeleteQRCode(ctx context.Context, actor user.Caller, id string) error {
	return o.remove.Execute(ctx, appqrcode.DeleteCommand{Actor: actor, ID: id})
}

// AdjustPoints 手動調整積分
func (o *Operations) AdjustPoints(ctx context.Context, cmd AdjustPointsCommand) (*AdjustPointsResult, error) {
	return o.adjust.Execute(ctx, cmd)
}

// Reconcile 核對餘額
func (o *Operations) Reconcile(ctx context.Context, actor user.Caller, query ReconcileQuery) (*ReconcileReport, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	return o.reconcile.Execute(ctx, query)
}
