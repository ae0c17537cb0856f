package ledger

import (
	"iter"
	"time"

	"github.com/jackyeh168/qr_points/src/internal/domain/qrcode"
	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
	"github.com/jackyeh168/qr_points/src/internal/domain/user"
)

// ScanFilter 掃描記錄查詢條件（零值欄位表示不過濾）
type ScanFilter struct {
	ScannerEmail user.Email
	QRCodeID     qrcode.CodeID
}

// ScanEventRepository 掃描事件倉儲接口（只新增）
type ScanEventRepository interface {
	// Append 新增掃描事件（必須在事務中）
	Append(ctx shared.TransactionContext, event *ScanEvent) error

	// HistoryFor 依時間倒序逐筆讀取使用者的掃描記錄
	//
	// 每次 range 都重新查詢，反映當下的資料；迭代中發生的錯誤以第二個值傳回後停止。
	// 實作不得在 yield 期間佔住資料庫連線。
	HistoryFor(ctx shared.TransactionContext, email user.Email) iter.Seq2[*ScanEvent, error]

	// TotalPointsFor 使用者的掃描積分總和
	TotalPointsFor(ctx shared.TransactionContext, email user.Email) (int64, error)

	// List 依時間倒序列出符合條件的掃描記錄
	List(ctx shared.TransactionContext, filter ScanFilter) ([]*ScanEvent, error)

	// SummaryFor 使用者的掃描統計
	SummaryFor(ctx shared.TransactionContext, email user.Email) (Summary, error)

	// LastScanAt 呼叫者最後一次掃描指定 QR Code 的時間；沒有記錄時返回 nil
	LastScanAt(ctx shared.TransactionContext, caller user.Email, id qrcode.CodeID) (*time.Time, error)
}

// AdjustmentRepository 手動調整記錄倉儲接口（只新增）
type AdjustmentRepository interface {
	// Append 新增調整記錄（必須在事務中）
	Append(ctx shared.TransactionContext, adjustment *Adjustment) error

	// TotalFor 使用者所有調整的實際變動量總和
	TotalFor(ctx shared.TransactionContext, email user.Email) (int64, error)

	// ListFor 依時間倒序列出使用者的調整記錄
	ListFor(ctx shared.TransactionContext, email user.Email) ([]*Adjustment, error)
}
