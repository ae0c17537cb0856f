package user

import (
	"time"

	"github.com/jackyeh168/qr_points/src/internal/domain/points"
	"github.com/jackyeh168/qr_points/src/internal/domain/user"
)

// ===========================
// GORM Models
// ===========================

// UserGORM 使用者資料表模型
//
// 資料庫約束：
// - id: 自增主鍵，代表註冊順序
// - email: 唯一索引（已正規化為小寫，因此等同不分大小寫唯一）
// - points: >= 0
type UserGORM struct {
	ID             uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Email          string    `gorm:"column:email;type:varchar(254);uniqueIndex;not null"`
	Name           string    `gorm:"column:name;type:varchar(255);not null"`
	Role           string    `gorm:"column:role;type:varchar(16);index;not null"`
	Points         int       `gorm:"column:points;not null;default:0;check:user_points_non_negative,points >= 0"`
	CredentialHash string    `gorm:"column:credential_hash;type:varchar(255);not null"`
	CreatedAt      time.Time `gorm:"column:created_at;not null"`
	UpdatedAt      time.Time `gorm:"column:updated_at;not null"`
	Version        int       `gorm:"column:version;not null;default:1"` // 樂觀鎖
}

// TableName 指定資料表名稱
func (UserGORM) TableName() string {
	return "users"
}

// toDomain 將 GORM 模型轉換為 Domain 模型
func (m *UserGORM) toDomain() (*user.User, error) {
	email, err := user.NewEmail(m.Email)
	if err != nil {
		return nil, err
	}
	role, err := user.ParseRole(m.Role)
	if err != nil {
		return nil, err
	}
	balance, err := points.NewPointsAmount(m.Points)
	if err != nil {
		return nil, err
	}

	return user.ReconstructUser(
		email,
		m.Name,
		role,
		balance,
		m.CredentialHash,
		m.CreatedAt,
		m.UpdatedAt,
		m.Version,
	), nil
}

// toGORM 將 Domain 模型轉換為 GORM 模型
func toGORM(u *user.User) *UserGORM {
	return &UserGORM{
		Email:          u.Email().String(),
		Name:           u.Name(),
		Role:           u.Role().String(),
		Points:         u.Points().Value(),
		CredentialHash: u.CredentialHash(),
		CreatedAt:      u.CreatedAt(),
		UpdatedAt:      u.UpdatedAt(),
		Version:        u.Version(),
	}
}
