package qrcode

import (
	"strings"

	"github.com/jackyeh168/qr_points/src/internal/domain/user"
)

// Mode 給點模式：決定掃描成功時誰獲得積分
type Mode string

const (
	ModeGiveToOwner Mode = "give_to_owner"
	ModeScanner     Mode = "scanner"
	ModeBoth        Mode = "both"
)

// ParseMode 解析給點模式（不分大小寫，接受 GiveToOwner / give-to-owner 等寫法）
func ParseMode(s string) (Mode, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	switch normalized {
	case "give_to_owner", "givetoowner", "owner":
		return ModeGiveToOwner, nil
	case "scanner":
		return ModeScanner, nil
	case "both":
		return ModeBoth, nil
	default:
		return "", ErrInvalidMode.WithContext("mode", s)
	}
}

// AwardTargets 計算本次掃描要給點的對象
//
//	GiveToOwner → [owner]
//	Scanner     → [caller]
//	Both        → [owner, caller]；同一人時只給一次
func (m Mode) AwardTargets(owner, caller user.Email) []user.Email {
	switch m {
	case ModeGiveToOwner:
		return []user.Email{owner}
	case ModeScanner:
		return []user.Email{caller}
	case ModeBoth:
		if owner.Equals(caller) {
			return []user.Email{owner}
		}
		return []user.Email{owner, caller}
	default:
		return nil
	}
}

// String 返回線上格式
func (m Mode) String() string {
	return string(m)
}

// Status QR Code 狀態
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// ParseStatus 解析狀態（不分大小寫）
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusActive:
		return StatusActive, nil
	case StatusInactive:
		return StatusInactive, nil
	default:
		return "", ErrInvalidStatus.WithContext("status", s)
	}
}

// String 返回線上格式
func (s Status) String() string {
	return string(s)
}
