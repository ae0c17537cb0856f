package user

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
)

// ===========================
// User 領域事件
// ===========================

const (
	EventTypeUserRegistered = "user.registered"
	EventTypePointsCredited = "user.points_credited"
)

// UserRegisteredEvent 使用者註冊事件
type UserRegisteredEvent struct {
	shared.BaseEvent
	Role Role
}

// NewUserRegisteredEvent 創建註冊事件
func NewUserRegisteredEvent(email Email, role Role, at time.Time) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseEvent: shared.BaseEvent{
			ID:         uuid.NewString(),
			Type:       EventTypeUserRegistered,
			Aggregate:  email.String(),
			OccurredOn: at,
		},
		Role: role,
	}
}

// PointsCreditedEvent 餘額變動事件
type PointsCreditedEvent struct {
	shared.BaseEvent
	Requested    int
	Applied      int
	BalanceAfter int
	Reason       string
}

// NewPointsCreditedEvent 創建餘額變動事件
func NewPointsCreditedEvent(email Email, requested, applied, balanceAfter int, reason string, at time.Time) *PointsCreditedEvent {
	return &PointsCreditedEvent{
		BaseEvent: shared.BaseEvent{
			ID:         uuid.NewString(),
			Type:       EventTypePointsCredited,
			Aggregate:  email.String(),
			OccurredOn: at,
		},
		Requested:    requested,
		Applied:      applied,
		BalanceAfter: balanceAfter,
		Reason:       reason,
	}
}
