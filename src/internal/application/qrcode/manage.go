package qrcode

import (
	"context"
	"fmt"

	"github.com/jackyeh168/qr_points/src/internal/application/appevents"
	"github.com/jackyeh168/qr_points/src/internal/domain/qrcode"
	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
	"github.com/jackyeh168/qr_points/src/internal/domain/user"
)

// ===========================
// Set Status Use Case
// ===========================

// SetStatusCommand 變更狀態命令
type SetStatusCommand struct {
	Actor  user.Caller
	ID     string
	Status string
}

// SetStatusUseCase 啟用 / 停用 QR Code
type SetStatusUseCase interface {
	Execute(ctx context.Context, cmd SetStatusCommand) (*QRCodeDTO, error)
}

// SetStatusUseCaseImpl 變更狀態 Use Case 實現
type SetStatusUseCaseImpl struct {
	codeRepo  qrcode.QRCodeRepository
	txManager shared.TransactionManager
	publisher shared.EventPublisher
}

// NewSetStatusUseCase 創建變更狀態 Use Case
func NewSetStatusUseCase(codeRepo qrcode.QRCodeRepository, txManager shared.TransactionManager, publisher shared.EventPublisher) *SetStatusUseCaseImpl {
	return &SetStatusUseCaseImpl{codeRepo: codeRepo, txManager: txManager, publisher: publisher}
}

// Execute 執行狀態變更（冪等：已是目標狀態時不寫入）
func (uc *SetStatusUseCaseImpl) Execute(ctx context.Context, cmd SetStatusCommand) (*QRCodeDTO, error) {
	if err := cmd.Actor.RequireAdmin(); err != nil {
		return nil, err
	}
	id, err := qrcode.NewCodeID(cmd.ID)
	if err != nil {
		return nil, err
	}
	status, err := qrcode.ParseStatus(cmd.Status)
	if err != nil {
		return nil, err
	}

	var code *qrcode.QRCode
	err = uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		c, err := uc.codeRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		changed, err := c.SetStatus(status)
		if err != nil {
			return err
		}
		if changed {
			if err := uc.codeRepo.UpdateStatus(tx, c); err != nil {
				return err
			}
		}
		code = c
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set qr code status: %w", err)
	}

	appevents.Flush(ctx, uc.publisher, code)

	dto := toDTO(code)
	return &dto, nil
}

// ===========================
// Delete Use Case
// ===========================

// DeleteCommand 刪除命令
type DeleteCommand struct {
	Actor user.Caller
	ID    string
}

// DeleteUseCase 刪除 QR Code（已記錄的掃描事件保留）
type DeleteUseCase interface {
	Execute(ctx context.Context, cmd DeleteCommand) error
}

// DeleteUseCaseImpl 刪除 Use Case 實現
type DeleteUseCaseImpl struct {
	codeRepo  qrcode.QRCodeRepository
	txManager shared.TransactionManager
	publisher shared.EventPublisher
}

// NewDeleteUseCase 創建刪除 Use Case
func NewDeleteUseCase(codeRepo qrcode.QRCodeRepository, txManager shared.TransactionManager, publisher shared.EventPublisher) *DeleteUseCaseImpl {
	return &DeleteUseCaseImpl{codeRepo: codeRepo, txManager: txManager, publisher: publisher}
}

// Execute 執行刪除
func (uc *DeleteUseCaseImpl) Execute(ctx context.Context, cmd DeleteCommand) error {
	if err := cmd.Actor.RequireAdmin(); err != nil {
		return err
	}
	id, err := qrcode.NewCodeID(cmd.ID)
	if err != nil {
		return err
	}

	var code *qrcode.QRCode
	err = uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		c, err := uc.codeRepo.FindByID(tx, id)
		if err != nil {
			return err
		}
		if err := uc.codeRepo.Delete(tx, id); err != nil {
			return err
		}
		c.MarkDeleted()
		code = c
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete qr code: %w", err)
	}

	appevents.Flush(ctx, uc.publisher, code)
	return nil
}
