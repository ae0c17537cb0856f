package user

import (
	"net/mail"
	"strings"
)

// ===========================
// Email Value Object
// ===========================

// Email 使用者識別用的電子郵件值對象
//
// 業務規則：
// 1. 不分大小寫唯一：建構時統一轉為小寫
// 2. 前後空白會被移除
// 3. 必須是單一的 addr-spec（不接受 "Name <a@b.c>" 形式）
type Email struct {
	value string
}

// NewEmail 創建 Email 值對象（Checked Constructor）
func NewEmail(value string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return Email{}, ErrInvalidEmail.WithContext(
			"email", value,
			"reason", "cannot be empty",
		)
	}

	addr, err := mail.ParseAddress(normalized)
	if err != nil || addr.Address != normalized || addr.Name != "" {
		return Email{}, ErrInvalidEmail.WithContext(
			"email", value,
			"reason", "malformed address",
		)
	}

	return Email{value: normalized}, nil
}

// MustEmail 用於已知有效的輸入（測試與資料庫重建）
func MustEmail(value string) Email {
	e, err := NewEmail(value)
	if err != nil {
		panic(err)
	}
	return e
}

// String 返回正規化後的電子郵件
func (e Email) String() string {
	return e.value
}

// Equals 比較兩個 Email 是否相等
func (e Email) Equals(other Email) bool {
	return e.value == other.value
}

// IsZero 檢查是否為零值
func (e Email) IsZero() bool {
	return e.value == ""
}
