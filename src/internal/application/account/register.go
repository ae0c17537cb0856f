package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackyeh168/qr_points/src/internal/application/appevents"
	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
	"github.com/jackyeh168/qr_points/src/internal/domain/user"
)

// ===========================
// Register Use Case
// ===========================

// RegisterCommand 註冊命令
type RegisterCommand struct {
	Name     string
	Email    string
	Password string
	Role     string // 空字串視為 scanner
}

// RegisterUseCase 註冊使用者 Use Case 接口
type RegisterUseCase interface {
	Execute(ctx context.Context, cmd RegisterCommand) (*UserDTO, error)
}

// RegisterUseCaseImpl 註冊使用者 Use Case 實現
type RegisterUseCaseImpl struct {
	userRepo         user.UserRepository
	hasher           user.PasswordHasher
	txManager        shared.TransactionManager
	publisher        shared.EventPublisher
	allowAdminSignup bool
}

// NewRegisterUseCase 創建註冊使用者 Use Case
//
// allowAdminSignup 為 false 時，自助註冊只能建立 scanner。
func NewRegisterUseCase(
	userRepo user.UserRepository,
	hasher user.PasswordHasher,
	txManager shared.TransactionManager,
	publisher shared.EventPublisher,
	allowAdminSignup bool,
) *RegisterUseCaseImpl {
	return &RegisterUseCaseImpl{
		userRepo:         userRepo,
		hasher:           hasher,
		txManager:        txManager,
		publisher:        publisher,
		allowAdminSignup: allowAdminSignup,
	}
}

// Execute 執行註冊
func (uc *RegisterUseCaseImpl) Execute(ctx context.Context, cmd RegisterCommand) (*UserDTO, error) {
	// 1. 驗證輸入
	email, err := user.NewEmail(cmd.Email)
	if err != nil {
		return nil, err
	}
	role := user.RoleScanner
	if strings.TrimSpace(cmd.Role) != "" {
		if role, err = user.ParseRole(cmd.Role); err != nil {
			return nil, err
		}
	}
	if role.IsAdmin() && !uc.allowAdminSignup {
		return nil, user.ErrAdminSignupDisabled
	}
	if cmd.Password == "" {
		return nil, user.ErrEmptyPassword
	}

	// 2. 雜湊密碼
	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// 3. 創建聚合
	u, err := user.NewUser(cmd.Name, email, role, hash)
	if err != nil {
		return nil, err
	}

	// 4. 保存（email 重複由倉儲返回 ErrDuplicateEmail）
	err = uc.txManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		return uc.userRepo.Save(tx, u)
	})
	if err != nil {
		return nil, err
	}

	// 5. 提交後發布事件
	appevents.Flush(ctx, uc.publisher, u)

	dto := toDTO(u)
	return &dto, nil
}
