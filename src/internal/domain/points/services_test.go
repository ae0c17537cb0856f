package points_test

import (
	"math"
	"testing"

	"github.com/jackyeh168/qr_points/src/internal/domain/points"
	"github.com/stretchr/testify/assert"
)

// ===== ApplyDelta 測試 =====

func TestApplyDelta(t *testing.T) {
	tests := []struct {
		name        string
		balance     int
		delta       int
		wantBalance int
		wantApplied int
	}{
		{"加點", 10, 5, 15, 5},
		{"扣點", 10, -4, 6, -4},
		{"剛好扣完", 10, -10, 0, -10},
		{"扣除超過餘額夾在 0", 10, -1000, 0, -10},
		{"零餘額再扣", 0, -1, 0, 0},
		{"零變動", 7, 0, 7, 0},
		{"加點溢位時飽和", 10, math.MaxInt, math.MaxInt, math.MaxInt - 10},
		{"已達上限再加點", math.MaxInt, 1, math.MaxInt, 0},
		{"極小變動量夾在 0", 10, math.MinInt, 0, -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			balance, _ := points.NewPointsAmount(tt.balance)

			// Act
			next, applied := points.ApplyDelta(balance, tt.delta)

			// Assert
			assert.Equal(t, tt.wantBalance, next.Value())
			assert.Equal(t, tt.wantApplied, applied)
			assert.Equal(t, tt.balance+applied, next.Value(), "applied 必須等於實際餘額變化")
		})
	}
}

// 任意加減序列都不會讓餘額變成負數
func TestApplyDelta_NeverNegative(t *testing.T) {
	balance := points.Zero()
	deltas := []int{5, -3, -100, 20, -19, -2, 7, -8}

	for _, d := range deltas {
		balance, _ = points.ApplyDelta(balance, d)
		assert.GreaterOrEqual(t, balance.Value(), 0)
	}
	assert.Equal(t, 0, balance.Value())
}

// ===== AveragePerScan 測試 =====

func TestAveragePerScan(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		count int64
		want  string
	}{
		{"整除", 30, 3, "10"},
		{"四捨五入到兩位", 10, 3, "3.33"},
		{"進位", 20, 3, "6.67"},
		{"沒有掃描", 0, 0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := points.AveragePerScan(tt.total, tt.count)
			assert.Equal(t, tt.want, got.String())
		})
	}
}
