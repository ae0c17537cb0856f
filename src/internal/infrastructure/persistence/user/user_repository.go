package user

import (
	"errors"

	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
	"github.com/jackyeh168/qr_points/src/internal/domain/user"
	"github.com/jackyeh168/qr_points/src/internal/infrastructure/persistence/dbctx"
	"gorm.io/gorm"
)

// ===========================
// UserRepositoryImpl
// ===========================

// UserRepositoryImpl 使用者倉儲實現（GORM）
type UserRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepository 創建新的使用者倉儲實例
func NewUserRepository(db *gorm.DB) user.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Save 新增使用者
//
// 錯誤處理：
// - UNIQUE constraint 違反 → ErrDuplicateEmail
// - 其他資料庫錯誤 → shared.ErrRepository
func (r *UserRepositoryImpl) Save(ctx shared.TransactionContext, u *user.User) error {
	db := dbctx.Resolve(ctx, r.db)

	result := db.Create(toGORM(u))
	if result.Error != nil {
		if dbctx.IsUniqueConstraintError(result.Error) {
			return user.ErrDuplicateEmail.WithContext("email", u.Email().String())
		}
		return dbctx.WrapError(result.Error, "users.save")
	}
	return nil
}

// Update 保存餘額變更（樂觀鎖）
//
// UPDATE users SET points=?, updated_at=?, version=version+1
// WHERE email=? AND version=?
func (r *UserRepositoryImpl) Update(ctx shared.TransactionContext, u *user.User) error {
	db := dbctx.Resolve(ctx, r.db)

	result := db.Model(&UserGORM{}).
		Where("email = ? AND version = ?", u.Email().String(), u.Version()).
		Updates(map[string]interface{}{
			"points":     u.Points().Value(),
			"updated_at": u.UpdatedAt(),
			"version":    gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return dbctx.WrapError(result.Error, "users.update")
	}
	if result.RowsAffected == 1 {
		return nil
	}

	// 沒有更新任何資料：區分不存在與版本衝突
	var count int64
	if err := db.Model(&UserGORM{}).Where("email = ?", u.Email().String()).Count(&count).Error; err != nil {
		return dbctx.WrapError(err, "users.update")
	}
	if count == 0 {
		return user.ErrUserNotFound.WithContext("email", u.Email().String())
	}
	return shared.ErrConcurrentUpdate.WithContext(
		"email", u.Email().String(),
		"expected_version", u.Version(),
	)
}

// FindByEmail 根據電子郵件查找使用者
func (r *UserRepositoryImpl) FindByEmail(ctx shared.TransactionContext, email user.Email) (*user.User, error) {
	db := dbctx.Resolve(ctx, r.db)

	var model UserGORM
	result := db.Where("email = ?", email.String()).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound.WithContext("email", email.String())
		}
		return nil, dbctx.WrapError(result.Error, "users.find_by_email")
	}
	return model.toDomain()
}

// List 依註冊順序列出使用者
func (r *UserRepositoryImpl) List(ctx shared.TransactionContext, role *user.Role) ([]*user.User, error) {
	db := dbctx.Resolve(ctx, r.db)

	query := db.Model(&UserGORM{}).Order("id ASC")
	if role != nil {
		query = query.Where("role = ?", role.String())
	}

	var models []UserGORM
	if err := query.Find(&models).Error; err != nil {
		return nil, dbctx.WrapError(err, "users.list")
	}

	users := make([]*user.User, 0, len(models))
	for i := range models {
		u, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}
