package ledger

import (
	"errors"
	"iter"
	"time"

	"github.com/jackyeh168/qr_points/src/internal/domain/ledger"
	"github.com/jackyeh168/qr_points/src/internal/domain/qrcode"
	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
	"github.com/jackyeh168/qr_points/src/internal/domain/user"
	"github.com/jackyeh168/qr_points/src/internal/infrastructure/persistence/dbctx"
	"gorm.io/gorm"
)

const (
	historyOrder    = "scanned_at DESC, event_id DESC"
	historyPageSize = 200
)

// ScanEventRepositoryImpl 掃描事件倉儲實現（GORM）
type ScanEventRepositoryImpl struct {
	db       *gorm.DB
	pageSize int
}

// NewScanEventRepository 創建掃描事件倉儲
func NewScanEventRepository(db *gorm.DB) ledger.ScanEventRepository {
	return &ScanEventRepositoryImpl{db: db, pageSize: historyPageSize}
}

// Append 新增掃描事件
func (r *ScanEventRepositoryImpl) Append(ctx shared.TransactionContext, event *ledger.ScanEvent) error {
	db := dbctx.Resolve(ctx, r.db)

	if err := db.Create(scanEventToGORM(event)).Error; err != nil {
		return dbctx.WrapError(err, "scan_events.append")
	}
	return nil
}

// HistoryFor 逐筆讀取使用者的掃描記錄
//
// 以 (scanned_at, event_id) 游標分頁讀取，每頁讀完即歸還連線；
// 呼叫端在迴圈內處理多久都不會佔住連線。
func (r *ScanEventRepositoryImpl) HistoryFor(ctx shared.TransactionContext, email user.Email) iter.Seq2[*ledger.ScanEvent, error] {
	return func(yield func(*ledger.ScanEvent, error) bool) {
		db := dbctx.Resolve(ctx, r.db)

		var cursor *ScanEventGORM
		for {
			query := db.Where("scanner_email = ?", email.String())
			if cursor != nil {
				query = query.Where("(scanned_at < ? OR (scanned_at = ? AND event_id < ?))",
					cursor.ScannedAt, cursor.ScannedAt, cursor.EventID)
			}

			var page []ScanEventGORM
			if err := query.Order(historyOrder).Limit(r.pageSize).Find(&page).Error; err != nil {
				yield(nil, dbctx.WrapError(err, "scan_events.history"))
				return
			}

			for i := range page {
				event, err := page[i].toDomain()
				if err != nil {
					yield(nil, err)
					return
				}
				if !yield(event, nil) {
					return
				}
			}

			if len(page) < r.pageSize {
				return
			}
			cursor = &page[len(page)-1]
		}
	}
}

// TotalPointsFor 使用者的掃描積分總和（等同 HistoryFor 的 points 總和）
func (r *ScanEventRepositoryImpl) TotalPointsFor(ctx shared.TransactionContext, email user.Email) (int64, error) {
	db := dbctx.Resolve(ctx, r.db)

	var total int64
	err := db.Model(&ScanEventGORM{}).
		Where("scanner_email = ?", email.String()).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, dbctx.WrapError(err, "scan_events.total")
	}
	return total, nil
}

// List 依時間倒序列出符合條件的掃描記錄
func (r *ScanEventRepositoryImpl) List(ctx shared.TransactionContext, filter ledger.ScanFilter) ([]*ledger.ScanEvent, error) {
	db := dbctx.Resolve(ctx, r.db)

	query := db.Model(&ScanEventGORM{}).Order(historyOrder)
	if !filter.ScannerEmail.IsZero() {
		query = query.Where("scanner_email = ?", filter.ScannerEmail.String())
	}
	if !filter.QRCodeID.IsZero() {
		query = query.Where("qr_code_id = ?", filter.QRCodeID.String())
	}

	var models []ScanEventGORM
	if err := query.Find(&models).Error; err != nil {
		return nil, dbctx.WrapError(err, "scan_events.list")
	}

	events := make([]*ledger.ScanEvent, 0, len(models))
	for i := range models {
		event, err := models[i].toDomain()
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

// SummaryFor 使用者的掃描統計
func (r *ScanEventRepositoryImpl) SummaryFor(ctx shared.TransactionContext, email user.Email) (ledger.Summary, error) {
	db := dbctx.Resolve(ctx, r.db)

	var agg struct {
		Count int64
		Total int64
	}
	err := db.Model(&ScanEventGORM{}).
		Where("scanner_email = ?", email.String()).
		Select("COUNT(*) AS count, COALESCE(SUM(points), 0) AS total").
		Scan(&agg).Error
	if err != nil {
		return ledger.Summary{}, dbctx.WrapError(err, "scan_events.summary")
	}

	var last *time.Time
	if agg.Count > 0 {
		var latest ScanEventGORM
		err := db.Where("scanner_email = ?", email.String()).
			Order(historyOrder).
			First(&latest).Error
		if err != nil {
			return ledger.Summary{}, dbctx.WrapError(err, "scan_events.summary")
		}
		at := latest.ScannedAt.UTC()
		last = &at
	}

	return ledger.NewSummary(email, agg.Count, agg.Total, last), nil
}

// LastScanAt 呼叫者最後一次掃描指定 QR Code 的時間
func (r *ScanEventRepositoryImpl) LastScanAt(ctx shared.TransactionContext, caller user.Email, id qrcode.CodeID) (*time.Time, error) {
	db := dbctx.Resolve(ctx, r.db)

	var latest ScanEventGORM
	err := db.Where("caller_email = ? AND qr_code_id = ?", caller.String(), id.String()).
		Order(historyOrder).
		First(&latest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, dbctx.WrapError(err, "scan_events.last_scan")
	}
	at := latest.ScannedAt.UTC()
	return &at, nil
}
