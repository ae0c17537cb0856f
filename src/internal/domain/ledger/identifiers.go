package ledger

import (
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
	"github.com/oklog/ulid/v2"
)

// ===========================
// EventID（ULID）
// ===========================

// EventID 掃描事件 ID
//
// ULID 依時間遞增且可字典序排序；同一毫秒內由單調熵保證遞增。
type EventID struct {
	value ulid.ULID
}

var (
	entropyMu sync.Mutex
	entropy   io.Reader = ulid.Monotonic(rand.Reader, 0)
)

// NewEventID 以指定時間產生事件 ID
func NewEventID(at time.Time) EventID {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return EventID{value: ulid.MustNew(ulid.Timestamp(at), entropy)}
}

// ParseEventID 解析事件 ID
func ParseEventID(s string) (EventID, error) {
	id, err := ulid.ParseStrict(s)
	if err != nil {
		return EventID{}, ErrInvalidEventID.WithContext("input", s, "parse_error", err.Error())
	}
	return EventID{value: id}, nil
}

// String 返回 26 字元的 Crockford base32 表示
func (e EventID) String() string {
	return e.value.String()
}

// Time 返回 ID 內嵌的毫秒時間
func (e EventID) Time() time.Time {
	return ulid.Time(e.value.Time())
}

// IsZero 檢查是否為零值
func (e EventID) IsZero() bool {
	return e.value == ulid.ULID{}
}

// Compare 字典序比較
func (e EventID) Compare(other EventID) int {
	return e.value.Compare(other.value)
}

// ===========================
// AdjustmentID（UUID）
// ===========================

// AdjustmentMarker 調整記錄 ID 的標記類型
type AdjustmentMarker struct{}

// AdjustmentID 手動調整記錄 ID
type AdjustmentID = shared.EntityID[AdjustmentMarker]

// NewAdjustmentID 生成新的調整記錄 ID
func NewAdjustmentID() AdjustmentID {
	return shared.NewEntityID[AdjustmentMarker]()
}

// AdjustmentIDFromString 從字串解析調整記錄 ID
func AdjustmentIDFromString(s string) (AdjustmentID, error) {
	return shared.EntityIDFromString[AdjustmentMarker](s, ErrInvalidAdjustmentID)
}
