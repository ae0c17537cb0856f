package user

import "strings"

// Role 使用者角色
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleScanner Role = "scanner"
)

// ParseRole 解析角色字串（不分大小寫）
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleScanner:
		return RoleScanner, nil
	default:
		return "", ErrInvalidRole.WithContext("role", s)
	}
}

// IsAdmin 是否為管理員
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// String 返回線上格式
func (r Role) String() string {
	return string(r)
}

// Caller 已驗證的呼叫者身分
//
// Transport 層驗證 token 後產生，核心邏輯直接信任它。
type Caller struct {
	Email Email
	Role  Role
}

// RequireAdmin 非管理員返回 shared.ErrForbidden
func (c Caller) RequireAdmin() error {
	if !c.Role.IsAdmin() {
		return errForbidden(c)
	}
	return nil
}
