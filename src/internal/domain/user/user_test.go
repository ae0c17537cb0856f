package user_test

import (
	"testing"

	"github.com/jackyeh168/qr_points/src/internal/domain/points"
	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
	"github.com/jackyeh168/qr_points/src/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===========================
// NewUser 測試
// ===========================

func TestNewUser_Success(t *testing.T) {
	// Arrange
	email := user.MustEmail("bob@example.com")

	// Act
	u, err := user.NewUser("  Bob ", email, user.RoleScanner, "hash")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Bob", u.Name())
	assert.Equal(t, email, u.Email())
	assert.Equal(t, user.RoleScanner, u.Role())
	assert.Equal(t, 0, u.Points().Value(), "初始積分必須為 0")
	assert.Equal(t, 1, u.Version())
	assert.Equal(t, "hash", u.CredentialHash())

	events := u.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, user.EventTypeUserRegistered, events[0].EventType())
	assert.Equal(t, "bob@example.com", events[0].AggregateID())
}

func TestNewUser_ValidationErrors(t *testing.T) {
	email := user.MustEmail("bob@example.com")

	_, err := user.NewUser("   ", email, user.RoleScanner, "h")
	assert.ErrorIs(t, err, user.ErrInvalidName)

	_, err = user.NewUser("Bob", user.Email{}, user.RoleScanner, "h")
	assert.ErrorIs(t, err, user.ErrInvalidEmail)

	_, err = user.NewUser("Bob", email, user.Role("owner"), "h")
	assert.ErrorIs(t, err, user.ErrInvalidRole)
	assert.Equal(t, shared.KindInvalidInput, shared.KindOf(err))
}

// ===========================
// Credit 測試
// ===========================

func TestUser_Credit_ClampsAtZero(t *testing.T) {
	// Arrange
	u := user.ReconstructUser(
		user.MustEmail("u@example.com"), "U", user.RoleScanner,
		mustPoints(t, 10), "h", fixedTime, fixedTime, 3,
	)

	// Act
	applied := u.Credit(-1000, "adjustment:subtract")

	// Assert
	assert.Equal(t, -10, applied)
	assert.Equal(t, 0, u.Points().Value())
	assert.Equal(t, 3, u.Version(), "版本號由倉儲在 Update 時遞增")

	events := u.PullEvents()
	require.Len(t, events, 1)
	credited, ok := events[0].(*user.PointsCreditedEvent)
	require.True(t, ok)
	assert.Equal(t, -1000, credited.Requested)
	assert.Equal(t, -10, credited.Applied)
	assert.Equal(t, 0, credited.BalanceAfter)
}

func TestUser_Credit_Add(t *testing.T) {
	u, _ := user.NewUser("U", user.MustEmail("u@example.com"), user.RoleScanner, "h")
	u.PullEvents()

	assert.Equal(t, 10, u.Credit(10, "scan:QR001"))
	assert.Equal(t, 5, u.Credit(5, "scan:QR002"))
	assert.Equal(t, 15, u.Points().Value())
	assert.Len(t, u.PullEvents(), 2)
}

// ===========================
// Caller 測試
// ===========================

func TestCaller_RequireAdmin(t *testing.T) {
	admin := user.Caller{Email: user.MustEmail("a@example.com"), Role: user.RoleAdmin}
	scanner := user.Caller{Email: user.MustEmail("s@example.com"), Role: user.RoleScanner}

	assert.NoError(t, admin.RequireAdmin())

	err := scanner.RequireAdmin()
	assert.ErrorIs(t, err, shared.ErrForbidden)
	assert.Equal(t, shared.KindForbidden, shared.KindOf(err))
}

func mustPoints(t *testing.T, v int) points.PointsAmount {
	t.Helper()
	p, err := points.NewPointsAmount(v)
	require.NoError(t, err)
	return p
}
