package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
	"github.com/jackyeh168/qr_points/src/internal/domain/user"
)

// ===========================
// Get Profile（me / balance）
// ===========================

// GetProfileUseCase 查詢呼叫者自己的資料與餘額
type GetProfileUseCase interface {
	Execute(ctx context.Context, caller user.Caller) (*UserDTO, error)
}

// GetProfileUseCaseImpl 查詢個人資料 Use Case 實現
type GetProfileUseCaseImpl struct {
	userRepo  user.UserRepository
	txManager shared.TransactionManager
}

// NewGetProfileUseCase 創建查詢個人資料 Use Case
func NewGetProfileUseCase(userRepo user.UserRepository, txManager shared.TransactionManager) *GetProfileUseCaseImpl {
	return &GetProfileUseCaseImpl{userRepo: userRepo, txManager: txManager}
}

// Execute 執行查詢
func (uc *GetProfileUseCaseImpl) Execute(ctx context.Context, caller user.Caller) (*UserDTO, error) {
	u, err := uc.userRepo.FindByEmail(uc.txManager.Reader(ctx), caller.Email)
	if err != nil {
		return nil, err
	}
	dto := toDTO(u)
	return &dto, nil
}

// ===========================
// List Users（admin）
// ===========================

// ListUsersQuery 列出使用者查詢
type ListUsersQuery struct {
	Actor user.Caller
	Role  string // 空字串表示全部
}

// ListUsersUseCase 列出使用者 Use Case 接口
type ListUsersUseCase interface {
	Execute(ctx context.Context, query ListUsersQuery) ([]UserDTO, error)
}

// ListUsersUseCaseImpl 列出使用者 Use Case 實現
type ListUsersUseCaseImpl struct {
	userRepo  user.UserRepository
	txManager shared.TransactionManager
}

// NewListUsersUseCase 創建列出使用者 Use Case
func NewListUsersUseCase(userRepo user.UserRepository, txManager shared.TransactionManager) *ListUsersUseCaseImpl {
	return &ListUsersUseCaseImpl{userRepo: userRepo, txManager: txManager}
}

// Execute 依註冊順序列出使用者
func (uc *ListUsersUseCaseImpl) Execute(ctx context.Context, query ListUsersQuery) ([]UserDTO, error) {
	if err := query.Actor.RequireAdmin(); err != nil {
		return nil, err
	}

	var role *user.Role
	if strings.TrimSpace(query.Role) != "" {
		r, err := user.ParseRole(query.Role)
		if err != nil {
			return nil, err
		}
		role = &r
	}

	users, err := uc.userRepo.List(uc.txManager.Reader(ctx), role)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	result := make([]UserDTO, 0, len(users))
	for _, u := range users {
		result = append(result, toDTO(u))
	}
	return result, nil
}
