package scan_test

import (
	"testing"
	"time"

	"github.com/jackyeh168/qr_points/src/internal/domain/points"
	"github.com/jackyeh168/qr_points/src/internal/domain/qrcode"
	"github.com/jackyeh168/qr_points/src/internal/domain/scan"
	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
	"github.com/jackyeh168/qr_points/src/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ownerEmail = user.MustEmail("owner@example.com")
	scanner    = user.Caller{Email: user.MustEmail("scanner@example.com"), Role: user.RoleScanner}
	scannedAt  = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
)

func newCode(t *testing.T, mode qrcode.Mode, pts int) *qrcode.QRCode {
	t.Helper()
	amount, err := points.NewPointsAmount(pts)
	require.NoError(t, err)
	code, err := qrcode.NewQRCode(1, "Daily", qrcode.Tags{}, mode, amount, ownerEmail)
	require.NoError(t, err)
	return code
}

// ===========================
// 正常流程
// ===========================

func TestAttempt_HappyPath_BothMode(t *testing.T) {
	// Arrange
	attempt, err := scan.Submit("qr001", scanner, scannedAt)
	require.NoError(t, err)
	assert.Equal(t, scan.StateSubmitted, attempt.State())

	// Act: 驗證
	require.NoError(t, attempt.Validate(newCode(t, qrcode.ModeBoth, 5)))
	assert.Equal(t, scan.StateValidated, attempt.State())
	assert.Equal(t, []user.Email{ownerEmail, scanner.Email}, attempt.Targets())

	// Act: 入帳
	require.NoError(t, attempt.AddAward(ownerEmail, "E1"))
	assert.Equal(t, scan.StateCredited, attempt.State())
	require.NoError(t, attempt.AddAward(scanner.Email, "E2"))

	// Act: 完成
	result, err := attempt.Complete()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, scan.StateRecorded, attempt.State())
	assert.Equal(t, "QR001", result.QRCodeID.String())
	assert.Equal(t, 10, result.TotalAwarded)
	require.Len(t, result.Awards, 2)
	assert.Equal(t, 5, result.Awards[0].Points)
	assert.Equal(t, scannedAt, result.ScannedAt)

	events := attempt.PullEvents()
	require.Len(t, events, 1)
	assert.Equal(t, scan.EventTypeScanCompleted, events[0].EventType())
}

// ===========================
// 拒絕流程
// ===========================

func TestSubmit_BlankCode_Rejected(t *testing.T) {
	attempt, err := scan.Submit("   ", scanner, scannedAt)

	assert.ErrorIs(t, err, qrcode.ErrEmptyCodeID)
	assert.Equal(t, scan.StateRejected, attempt.State())
	assert.Equal(t, shared.KindEmptyInput, shared.KindOf(attempt.Reason()))
}

func TestAttempt_Validate_NotFound(t *testing.T) {
	attempt, _ := scan.Submit("QR404", scanner, scannedAt)

	err := attempt.Validate(nil)

	assert.ErrorIs(t, err, qrcode.ErrScanCodeNotFound)
	assert.Equal(t, shared.KindCodeNotFound, shared.KindOf(err))
	assert.Equal(t, scan.StateRejected, attempt.State())

	events := attempt.PullEvents()
	require.Len(t, events, 1)
	rejected := events[0].(*scan.ScanRejectedEvent)
	assert.Equal(t, shared.KindCodeNotFound, rejected.Kind)
}

func TestAttempt_Validate_Inactive(t *testing.T) {
	code := newCode(t, qrcode.ModeScanner, 10)
	_, _ = code.SetStatus(qrcode.StatusInactive)
	attempt, _ := scan.Submit("QR001", scanner, scannedAt)

	err := attempt.Validate(code)

	assert.ErrorIs(t, err, qrcode.ErrCodeInactive)
	assert.Equal(t, scan.StateRejected, attempt.State())
	assert.Empty(t, attempt.Targets())
}

func TestAttempt_RejectAfterValidate(t *testing.T) {
	attempt, _ := scan.Submit("QR001", scanner, scannedAt)
	require.NoError(t, attempt.Validate(newCode(t, qrcode.ModeScanner, 10)))

	err := attempt.Reject(scan.ErrCooldown)

	assert.ErrorIs(t, err, scan.ErrCooldown)
	assert.Equal(t, scan.StateRejected, attempt.State())
}

// ===========================
// 不合法的狀態轉換
// ===========================

func TestAttempt_IllegalTransitions(t *testing.T) {
	t.Run("未驗證就入帳", func(t *testing.T) {
		attempt, _ := scan.Submit("QR001", scanner, scannedAt)
		assert.ErrorIs(t, attempt.AddAward(scanner.Email, "E1"), scan.ErrIllegalTransition)
	})

	t.Run("重複驗證", func(t *testing.T) {
		attempt, _ := scan.Submit("QR001", scanner, scannedAt)
		code := newCode(t, qrcode.ModeScanner, 10)
		require.NoError(t, attempt.Validate(code))
		assert.ErrorIs(t, attempt.Validate(code), scan.ErrIllegalTransition)
	})

	t.Run("未全部入帳就完成", func(t *testing.T) {
		attempt, _ := scan.Submit("QR001", scanner, scannedAt)
		require.NoError(t, attempt.Validate(newCode(t, qrcode.ModeBoth, 5)))
		require.NoError(t, attempt.AddAward(ownerEmail, "E1"))
		_, err := attempt.Complete()
		assert.ErrorIs(t, err, scan.ErrIllegalTransition)
	})

	t.Run("入帳後不能拒絕", func(t *testing.T) {
		attempt, _ := scan.Submit("QR001", scanner, scannedAt)
		require.NoError(t, attempt.Validate(newCode(t, qrcode.ModeScanner, 10)))
		require.NoError(t, attempt.AddAward(scanner.Email, "E1"))
		assert.ErrorIs(t, attempt.Reject(scan.ErrCooldown), scan.ErrIllegalTransition)
	})

	t.Run("入帳次數超過受益者", func(t *testing.T) {
		attempt, _ := scan.Submit("QR001", scanner, scannedAt)
		require.NoError(t, attempt.Validate(newCode(t, qrcode.ModeScanner, 10)))
		require.NoError(t, attempt.AddAward(scanner.Email, "E1"))
		assert.ErrorIs(t, attempt.AddAward(scanner.Email, "E2"), scan.ErrIllegalTransition)
	})
}
