package account

import (
	"time"

	"github.com/jackyeh168/qr_points/src/internal/domain/user"
)

// UserDTO 使用者資料（不含密碼雜湊）
type UserDTO struct {
	Email     string
	Name      string
	Role      string
	Points    int
	CreatedAt time.Time
}

func toDTO(u *user.User) UserDTO {
	return UserDTO{
		Email:     u.Email().String(),
		Name:      u.Name(),
		Role:      u.Role().String(),
		Points:    u.Points().Value(),
		CreatedAt: u.CreatedAt(),
	}
}
