package qrcode

import (
	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
)

// QRCodeRepository QR Code 倉儲接口
//
// 找不到時一律返回 ErrQRCodeNotFound（NotFound）；掃描流程自行轉換為 ErrScanCodeNotFound。
type QRCodeRepository interface {
	// NextSequence 返回下一個可用序號（目前最大序號 + 1，從 1 開始）
	NextSequence(ctx shared.TransactionContext) (int, error)

	// Save 新增 QR Code；ID 或序號衝突時返回 ErrDuplicateCodeID
	Save(ctx shared.TransactionContext, code *QRCode) error

	// FindByID 查找 QR Code
	FindByID(ctx shared.TransactionContext, id CodeID) (*QRCode, error)

	// UpdateStatus 保存狀態變更
	UpdateStatus(ctx shared.TransactionContext, code *QRCode) error

	// Delete 刪除定義（不影響掃描事件）
	Delete(ctx shared.TransactionContext, id CodeID) error

	// List 依建立順序列出；mode 為 nil 表示全部
	List(ctx shared.TransactionContext, mode *Mode) ([]*QRCode, error)
}
