package user

import (
	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
)

// ===========================
// UserRepository Interface
// ===========================

// UserRepository 使用者倉儲接口
//
// 寫操作（Save、Update）必須在 TransactionManager.InTransaction 中呼叫；
// 讀操作的 ctx 可為 nil 或 Reader(ctx)。
type UserRepository interface {
	// Save 新增使用者；email 已存在時返回 ErrDuplicateEmail
	Save(ctx shared.TransactionContext, user *User) error

	// Update 保存餘額變更（樂觀鎖）
	//
	// 以 user.Version() 比對資料庫版本，成功後資料庫版本 +1；
	// 版本不符返回 shared.ErrConcurrentUpdate，使用者不存在返回 ErrUserNotFound。
	Update(ctx shared.TransactionContext, user *User) error

	// FindByEmail 查找使用者；找不到時返回 ErrUserNotFound
	FindByEmail(ctx shared.TransactionContext, email Email) (*User, error)

	// List 依註冊順序列出使用者；role 為 nil 表示全部
	List(ctx shared.TransactionContext, role *Role) ([]*User, error)
}
