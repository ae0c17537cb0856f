package qrcode

import (
	"fmt"
	"strings"
)

// ===========================
// CodeID Value Object
// ===========================

// CodeID QR Code 識別碼值對象
//
// 系統產生的 ID 格式為 "QR" + 至少三位數的序號（QR001、QR042、QR1234）。
// 比對不分大小寫：建構時統一轉為大寫。
// 格式不符的輸入仍是合法的查詢鍵，只是查不到任何 QR Code。
type CodeID struct {
	value string
}

// CodeIDPrefix 系統產生 ID 的前綴
const CodeIDPrefix = "QR"

// NewCodeID 從外部輸入建構 CodeID（Checked Constructor）
//
// 空字串（去除空白後）返回 ErrEmptyCodeID
func NewCodeID(value string) (CodeID, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	if normalized == "" {
		return CodeID{}, ErrEmptyCodeID
	}
	return CodeID{value: normalized}, nil
}

// MustCodeID 建構 CodeID，失敗時 panic（只用於已知合法的值）
func MustCodeID(value string) CodeID {
	id, err := NewCodeID(value)
	if err != nil {
		panic(err)
	}
	return id
}

// CodeIDFromSequence 由序號產生 CodeID
func CodeIDFromSequence(seq int) CodeID {
	return CodeID{value: fmt.Sprintf("%s%03d", CodeIDPrefix, seq)}
}

// String 返回字串表示
func (c CodeID) String() string {
	return c.value
}

// Equals 比較兩個 CodeID 是否相等
func (c CodeID) Equals(other CodeID) bool {
	return c.value == other.value
}

// IsZero 檢查是否為零值
func (c CodeID) IsZero() bool {
	return c.value == ""
}
