package shared

import (
	"github.com/google/uuid"
)

// ===========================
// EntityID[T] 泛型實體 ID
// ===========================

// EntityID 泛型實體 ID 值對象（UUID v4）
//
// 泛型參數 T 只是標記類型，讓不同實體的 ID 成為不同類型：
//
//	type AdjustmentMarker struct{}
//	type AdjustmentID = shared.EntityID[AdjustmentMarker]
type EntityID[T any] struct {
	value uuid.UUID
}

// NewEntityID 生成新的實體 ID
func NewEntityID[T any]() EntityID[T] {
	return EntityID[T]{value: uuid.New()}
}

// EntityIDFromString 從字串解析實體 ID
//
// 參數：
//
//	s - UUID 字串
//	errTemplate - 解析失敗時返回的領域錯誤（由各自的 bounded context 提供）
func EntityIDFromString[T any](s string, errTemplate *DomainError) (EntityID[T], error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return EntityID[T]{}, errTemplate.WithContext(
			"input", s,
			"parse_error", err.Error(),
		)
	}
	return EntityID[T]{value: id}, nil
}

// String 轉換為字串表示（小寫 UUID）
func (e EntityID[T]) String() string {
	return e.value.String()
}

// Equals 比較兩個 EntityID 是否相等
func (e EntityID[T]) Equals(other EntityID[T]) bool {
	return e.value == other.value
}

// IsEmpty 判斷是否為空 ID（零值）
func (e EntityID[T]) IsEmpty() bool {
	return e.value == uuid.Nil
}
