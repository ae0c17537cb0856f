package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
	"github.com/jackyeh168/qr_points/src/internal/domain/user"
)

// TokenIssuer 簽發登入憑證
type TokenIssuer interface {
	Issue(caller user.Caller) (token string, expiresAt time.Time, err error)
}

// AuthenticateCommand 登入命令
type AuthenticateCommand struct {
	Email    string
	Password string
}

// AuthenticateResult 登入結果
type AuthenticateResult struct {
	Email     string
	Name      string
	Role      string
	Token     string
	ExpiresAt time.Time
}

// AuthenticateUseCase 登入 Use Case 接口
type AuthenticateUseCase interface {
	Execute(ctx context.Context, cmd AuthenticateCommand) (*AuthenticateResult, error)
}

// AuthenticateUseCaseImpl 登入 Use Case 實現
type AuthenticateUseCaseImpl struct {
	userRepo  user.UserRepository
	hasher    user.PasswordHasher
	issuer    TokenIssuer
	txManager shared.TransactionManager
}

// NewAuthenticateUseCase 創建登入 Use Case
func NewAuthenticateUseCase(
	userRepo user.UserRepository,
	hasher user.PasswordHasher,
	issuer TokenIssuer,
	txManager shared.TransactionManager,
) *AuthenticateUseCaseImpl {
	return &AuthenticateUseCaseImpl{
		userRepo:  userRepo,
		hasher:    hasher,
		issuer:    issuer,
		txManager: txManager,
	}
}

// Execute 執行登入
//
// email 格式錯誤、使用者不存在、密碼錯誤一律返回 ErrInvalidCredential，
// 不透露帳號是否存在。
func (uc *AuthenticateUseCaseImpl) Execute(ctx context.Context, cmd AuthenticateCommand) (*AuthenticateResult, error) {
	email, err := user.NewEmail(cmd.Email)
	if err != nil {
		return nil, user.ErrInvalidCredential
	}
	if cmd.Password == "" {
		return nil, user.ErrEmptyPassword
	}

	u, err := uc.userRepo.FindByEmail(uc.txManager.Reader(ctx), email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, user.ErrInvalidCredential
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	ok, err := uc.hasher.Verify(cmd.Password, u.CredentialHash())
	if err != nil {
		return nil, fmt.Errorf("failed to verify credential: %w", err)
	}
	if !ok {
		return nil, user.ErrInvalidCredential
	}

	token, expiresAt, err := uc.issuer.Issue(u.AsCaller())
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &AuthenticateResult{
		Email:     u.Email().String(),
		Name:      u.Name(),
		Role:      u.Role().String(),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
