package points

import "strings"

// MaxAmount 單筆入帳數量上限（QR Code 點數、手動調整數量）
const MaxAmount = 1_000_000_000

// PointsAmount 積分數量值對象
// 值對象不可變、自我驗證；餘額與 QR Code 點數都以它表示
type PointsAmount struct {
	value int
}

// NewPointsAmount 建構函數（checked 版本）
//
// 建構約束：積分數量必須 >= 0
func NewPointsAmount(value int) (PointsAmount, error) {
	if value < 0 {
		return PointsAmount{}, ErrNegativePointsAmount.WithContext("value", value)
	}
	return PointsAmount{value: value}, nil
}

// NewAwardAmount 建構單筆入帳數量：0 <= value <= MaxAmount
//
// 餘額只受 >= 0 約束，使用 NewPointsAmount。
func NewAwardAmount(value int) (PointsAmount, error) {
	if value > MaxAmount {
		return PointsAmount{}, ErrAmountTooLarge.WithContext("value", value, "max", MaxAmount)
	}
	return NewPointsAmount(value)
}

// newPointsAmountUnchecked 內部建構函數（unchecked 版本）
//
// 前提條件：調用者必須保證 value >= 0
func newPointsAmountUnchecked(value int) PointsAmount {
	return PointsAmount{value: value}
}

// Zero 零積分
func Zero() PointsAmount {
	return PointsAmount{}
}

// Value 獲取積分數量
func (p PointsAmount) Value() int {
	return p.value
}

// Add 相加（返回新的 PointsAmount）
func (p PointsAmount) Add(other PointsAmount) PointsAmount {
	return newPointsAmountUnchecked(p.value + other.value)
}

// IsZero 是否為 0
func (p PointsAmount) IsZero() bool {
	return p.value == 0
}

// Equals 比較兩個 PointsAmount 是否相等
func (p PointsAmount) Equals(other PointsAmount) bool {
	return p.value == other.value
}

// ===========================
// AdjustmentAction 手動調整動作
// ===========================

// AdjustmentAction 管理員手動調整的方向
type AdjustmentAction string

const (
	ActionAdd      AdjustmentAction = "add"
	ActionSubtract AdjustmentAction = "subtract"
)

// ParseAdjustmentAction 解析調整動作（不分大小寫）
func ParseAdjustmentAction(s string) (AdjustmentAction, error) {
	switch AdjustmentAction(strings.ToLower(strings.TrimSpace(s))) {
	case ActionAdd:
		return ActionAdd, nil
	case ActionSubtract:
		return ActionSubtract, nil
	default:
		return "", ErrInvalidAction.WithContext("action", s)
	}
}

// SignedDelta 將正數的調整數量轉為帶正負號的變動量
//
// amount 必須在 1..MaxAmount 之間
func (a AdjustmentAction) SignedDelta(amount int) (int, error) {
	if amount <= 0 {
		return 0, ErrNonPositiveAmount.WithContext("amount", amount)
	}
	if amount > MaxAmount {
		return 0, ErrAmountTooLarge.WithContext("amount", amount, "max", MaxAmount)
	}
	switch a {
	case ActionAdd:
		return amount, nil
	case ActionSubtract:
		return -amount, nil
	default:
		return 0, ErrInvalidAction.WithContext("action", string(a))
	}
}

// String 返回字串表示
func (a AdjustmentAction) String() string {
	return string(a)
}
