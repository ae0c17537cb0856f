package qrcode_test

import (
	"testing"

	"github.com/jackyeh168/qr_points/src/internal/domain/points"
	"github.com/jackyeh168/qr_points/src/internal/domain/qrcode"
	"github.com/jackyeh168/qr_points/src/internal/domain/user"
	"github.com/jackyeh168/qr_points/src/internal/infrastructure/persistence"
	qrcoderepo "github.com/jackyeh168/qr_points/src/internal/infrastructure/persistence/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var owner = user.MustEmail("admin@example.com")

func saveCode(t *testing.T, db *gorm.DB, repo qrcode.QRCodeRepository, name string, mode qrcode.Mode, pts int, tags ...string) *qrcode.QRCode {
	t.Helper()
	seq, err := repo.NextSequence(nil)
	require.NoError(t, err)
	amount, err := points.NewPointsAmount(pts)
	require.NoError(t, err)
	code, err := qrcode.NewQRCode(seq, name, qrcode.NewTags(tags), mode, amount, owner)
	require.NoError(t, err)
	require.NoError(t, repo.Save(nil, code))
	return code
}

func TestQRCodeRepository_SaveAndFind(t *testing.T) {
	// Arrange
	db := persistence.SetupTestDB(t)
	repo := qrcoderepo.NewQRCodeRepository(db)

	// Act
	saved := saveCode(t, db, repo, "Daily", qrcode.ModeBoth, 5, "food", "drink", "food")
	found, err := repo.FindByID(nil, saved.ID())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "QR001", found.ID().String())
	assert.Equal(t, "Daily", found.Name())
	assert.Equal(t, []string{"drink", "food"}, found.Tags().Values())
	assert.Equal(t, qrcode.ModeBoth, found.Mode())
	assert.Equal(t, 5, found.Points().Value())
	assert.Equal(t, qrcode.StatusActive, found.Status())
	assert.Equal(t, owner, found.Owner())
}

func TestQRCodeRepository_NextSequence_NeverReusesDeleted(t *testing.T) {
	db := persistence.SetupTestDB(t)
	repo := qrcoderepo.NewQRCodeRepository(db)

	saveCode(t, db, repo, "One", qrcode.ModeScanner, 1)
	second := saveCode(t, db, repo, "Two", qrcode.ModeScanner, 1)
	require.NoError(t, repo.Delete(nil, second.ID()))

	next, err := repo.NextSequence(nil)
	require.NoError(t, err)
	assert.Equal(t, 3, next)
}

func TestQRCodeRepository_Save_DuplicateID(t *testing.T) {
	db := persistence.SetupTestDB(t)
	repo := qrcoderepo.NewQRCodeRepository(db)
	saveCode(t, db, repo, "One", qrcode.ModeScanner, 1)

	clash, _ := qrcode.NewQRCode(1, "Clash", qrcode.Tags{}, qrcode.ModeScanner, points.Zero(), owner)
	err := repo.Save(nil, clash)

	assert.ErrorIs(t, err, qrcode.ErrDuplicateCodeID)
}

func TestQRCodeRepository_UpdateStatus(t *testing.T) {
	db := persistence.SetupTestDB(t)
	repo := qrcoderepo.NewQRCodeRepository(db)
	code := saveCode(t, db, repo, "Daily", qrcode.ModeScanner, 10)

	_, err := code.SetStatus(qrcode.StatusInactive)
	require.NoError(t, err)
	require.NoError(t, repo.UpdateStatus(nil, code))

	found, _ := repo.FindByID(nil, code.ID())
	assert.Equal(t, qrcode.StatusInactive, found.Status())
}

func TestQRCodeRepository_Delete_NotFound(t *testing.T) {
	db := persistence.SetupTestDB(t)
	repo := qrcoderepo.NewQRCodeRepository(db)
	code := saveCode(t, db, repo, "Daily", qrcode.ModeScanner, 10)

	require.NoError(t, repo.Delete(nil, code.ID()))

	_, err := repo.FindByID(nil, code.ID())
	assert.ErrorIs(t, err, qrcode.ErrQRCodeNotFound)
	assert.ErrorIs(t, repo.Delete(nil, code.ID()), qrcode.ErrQRCodeNotFound, "刪除兩次返回 NotFound")
}

func TestQRCodeRepository_List_CreationOrderAndModeFilter(t *testing.T) {
	db := persistence.SetupTestDB(t)
	repo := qrcoderepo.NewQRCodeRepository(db)
	saveCode(t, db, repo, "A", qrcode.ModeScanner, 1)
	saveCode(t, db, repo, "B", qrcode.ModeBoth, 2)
	saveCode(t, db, repo, "C", qrcode.ModeScanner, 3)

	all, err := repo.List(nil, nil)
	require.NoError(t, err)
	mode := qrcode.ModeScanner
	scannerOnly, err := repo.List(nil, &mode)
	require.NoError(t, err)

	assert.Equal(t, []string{"QR001", "QR002", "QR003"}, ids(all))
	assert.Equal(t, []string{"QR001", "QR003"}, ids(scannerOnly))
}

func ids(codes []*qrcode.QRCode) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		out = append(out, c.ID().String())
	}
	return out
}
