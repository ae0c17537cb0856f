package shared

import "context"

// TransactionContext 事務上下文介面
//
// 行為約定：
// - tx != nil: 在調用者的事務（或綁定 context 的唯讀連接）中執行
// - tx == nil: 使用 auto-commit 模式
//
// 修改狀態的 Repository 方法必須在 InTransaction 中呼叫；
// 查詢方法可傳入 Reader(ctx) 或 nil。
//
// 標記介面：Infrastructure Layer 負責實作具體封裝（GORM）。
type TransactionContext interface {
	// 標記介面：僅用於傳遞上下文，不暴露方法
}

// TransactionManager 事務管理器介面
type TransactionManager interface {
	// InTransaction 在單一事務中執行 fn；fn 返回錯誤或 panic 時回滾
	InTransaction(ctx context.Context, fn func(tx TransactionContext) error) error

	// Reader 返回綁定 ctx 的非事務上下文（供查詢使用）
	Reader(ctx context.Context) TransactionContext
}
