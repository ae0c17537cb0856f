package qrcode

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackyeh168/qr_points/src/internal/application/appevents"
	"github.com/jackyeh168/qr_points/src/internal/application/retry"
	"github.com/jackyeh168/qr_points/src/internal/domain/points"
	"github.com/jackyeh168/qr_points/src/internal/domain/qrcode"
	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
	"github.com/jackyeh168/qr_points/src/internal/domain/user"
)

// ===========================
// Create QR Code Use Case
// ===========================

// CreateCommand 建立 QR Code 命令
type CreateCommand struct {
	Actor      user.Caller
	Name       string
	Tags       []string
	Mode       string
	Points     int
	OwnerEmail string // 空字串表示由執行的管理員擁有
}

// CreateUseCase 建立 QR Code Use Case 接口
type CreateUseCase interface {
	Execute(ctx context.Context, cmd CreateCommand) (*QRCodeDTO, error)
}

// CreateUseCaseImpl 建立 QR Code Use Case 實現
type CreateUseCaseImpl struct {
	codeRepo  qrcode.QRCodeRepository
	userRepo  user.UserRepository
	txManager shared.TransactionManager
	publisher shared.EventPublisher
	policy    retry.Policy
}

// NewCreateUseCase 創建建立 QR Code Use Case
func NewCreateUseCase(
	codeRepo qrcode.QRCodeRepository,
	userRepo user.UserRepository,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	policy retry.Policy,
) *CreateUseCaseImpl {
	return &CreateUseCaseImpl{
		codeRepo:  codeRepo,
		userRepo:  userRepo,
		txManager: txManager,
		publisher: publisher,
		policy:    policy,
	}
}

// Execute 執行建立
//
// 序號在事務內取得；兩個請求拿到同一個序號時，後寫入者收到 ErrDuplicateCodeID（Internal），
// 依重試策略重新取號。
func (uc *CreateUseCaseImpl) Execute(ctx context.Context, cmd CreateCommand) (*QRCodeDTO, error) {
	// 1. 權限
	if err := cmd.Actor.RequireAdmin(); err != nil {
		return nil, err
	}

	// 2. 驗證輸入
	mode, err := qrcode.ParseMode(cmd.Mode)
	if err != nil {
		return nil, err
	}
	amount, err := points.NewAwardAmount(cmd.Points)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, qrcode.ErrInvalidName
	}
	owner := cmd.Actor.Email
	if strings.TrimSpace(cmd.OwnerEmail) != "" {
		if owner, err = user.NewEmail(cmd.OwnerEmail); err != nil {
			return nil, err
		}
	}
	tags := qrcode.NewTags(cmd.Tags)

	// 3. 事務內確認擁有者存在、取號、保存
	var code *qrcode.QRCode
	err = retry.Do(ctx, uc.policy, func() error {
		return uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
			if _, err := uc.userRepo.FindByEmail(tx, owner); err != nil {
				if errors.Is(err, user.ErrUserNotFound) {
					return user.ErrUserNotFound.WithContext("owner_email", owner.String())
				}
				return err
			}

			seq, err := uc.codeRepo.NextSequence(tx)
			if err != nil {
				return err
			}
			c, err := qrcode.NewQRCode(seq, cmd.Name, tags, mode, amount, owner)
			if err != nil {
				return err
			}
			if err := uc.codeRepo.Save(tx, c); err != nil {
				return err
			}
			code = c
			return nil
		})
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create qr code: %w", err)
	}

	// 4. 發布事件
	appevents.Flush(ctx, uc.publisher, code)

	dto := toDTO(code)
	return &dto, nil
}
