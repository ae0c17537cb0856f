package user

import (
	"strings"
	"time"

	"github.com/jackyeh168/qr_points/src/internal/domain/points"
	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
)

// ===========================
// User Aggregate Root
// ===========================

// User 使用者聚合根
//
// 不變量：
// 1. email 唯一（不分大小寫），建立後不可變更
// 2. 名稱不能為空
// 3. points >= 0（由 points.ApplyDelta 保證）
// 4. points 只能透過 Credit 變更
//
// 使用者不會被刪除。
type User struct {
	shared.EventRecorder

	email          Email
	name           string
	role           Role
	points         points.PointsAmount
	credentialHash string

	createdAt time.Time
	updatedAt time.Time
	version   int // 樂觀鎖版本號
}

// NewUser 創建新使用者（Checked Constructor）
//
// 初始積分為 0。credentialHash 由 PasswordHasher 產生，聚合不解讀其內容。
func NewUser(name string, email Email, role Role, credentialHash string) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if email.IsZero() {
		return nil, ErrInvalidEmail.WithContext("reason", "cannot be empty")
	}
	if role != RoleAdmin && role != RoleScanner {
		return nil, ErrInvalidRole.WithContext("role", string(role))
	}

	now := time.Now().UTC()
	u := &User{
		email:          email,
		name:           name,
		role:           role,
		points:         points.Zero(),
		credentialHash: credentialHash,
		createdAt:      now,
		updatedAt:      now,
		version:        1,
	}
	u.Record(NewUserRegisteredEvent(u.email, u.role, now))
	return u, nil
}

// ReconstructUser 重建使用者聚合（用於從資料庫載入）
//
// 不執行業務規則驗證（假設資料庫中的數據已驗證）
func ReconstructUser(
	email Email,
	name string,
	role Role,
	balance points.PointsAmount,
	credentialHash string,
	createdAt time.Time,
	updatedAt time.Time,
	version int,
) *User {
	return &User{
		email:          email,
		name:           name,
		role:           role,
		points:         balance,
		credentialHash: credentialHash,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		version:        version,
	}
}

// ===========================
// 行為方法
// ===========================

// Credit 以帶正負號的變動量調整餘額
//
// 餘額夾在 0；返回實際套用的變動量。
// reason 記錄在 PointsCredited 事件中（"scan:QR001"、"adjustment:add" 等）。
func (u *User) Credit(delta int, reason string) int {
	next, applied := points.ApplyDelta(u.points, delta)
	u.points = next
	u.updatedAt = time.Now().UTC()
	u.Record(NewPointsCreditedEvent(u.email, delta, applied, next.Value(), reason, u.updatedAt))
	return applied
}

// ===========================
// Getters
// ===========================

// Email 返回電子郵件
func (u *User) Email() Email { return u.email }

// Name 返回名稱
func (u *User) Name() string { return u.name }

// Role 返回角色
func (u *User) Role() Role { return u.role }

// Points 返回目前餘額
func (u *User) Points() points.PointsAmount { return u.points }

// CredentialHash 返回密碼雜湊
func (u *User) CredentialHash() string { return u.credentialHash }

// CreatedAt 返回創建時間
func (u *User) CreatedAt() time.Time { return u.createdAt }

// UpdatedAt 返回更新時間
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// Version 返回版本號（用於樂觀鎖）
func (u *User) Version() int { return u.version }

// AsCaller 轉為呼叫者身分
func (u *User) AsCaller() Caller {
	return Caller{Email: u.email, Role: u.role}
}

func errForbidden(c Caller) error {
	return shared.ErrForbidden.WithContext(
		"email", c.Email.String(),
		"role", c.Role.String(),
	)
}
