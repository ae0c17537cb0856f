package points

import (
	"math"

	"github.com/shopspring/decimal"
)

// ===========================
// 餘額計算領域服務
// ===========================

// ApplyDelta 對餘額套用帶正負號的變動量
//
// 業務規則：
// - 結果餘額永遠 >= 0（扣除超過餘額時夾在 0）
// - 結果餘額不超過 math.MaxInt（加點溢位時飽和）
// - 返回實際套用的變動量（被夾住時絕對值小於請求量）
//
// 例：餘額 10，delta -1000 → 新餘額 0，applied -10
func ApplyDelta(balance PointsAmount, delta int) (PointsAmount, int) {
	var next int
	switch {
	case delta > 0 && balance.value > math.MaxInt-delta:
		next = math.MaxInt
	case balance.value+delta < 0:
		next = 0
	default:
		next = balance.value + delta
	}
	return newPointsAmountUnchecked(next), next - balance.value
}

// AveragePerScan 計算每次掃描的平均積分（四捨五入到小數點後 2 位）
//
// count 為 0 時返回 0
func AveragePerScan(total int64, count int64) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(total).
		Div(decimal.NewFromInt(count)).
		Round(2)
}
