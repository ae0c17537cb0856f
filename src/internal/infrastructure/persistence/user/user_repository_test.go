package user_test

import (
	"context"
	"testing"

	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
	"github.com/jackyeh168/qr_points/src/internal/domain/user"
	"github.com/jackyeh168/qr_points/src/internal/infrastructure/persistence"
	userrepo "github.com/jackyeh168/qr_points/src/internal/infrastructure/persistence/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===========================
// UserRepository Integration Tests
// ===========================

func createTestUser(t *testing.T, name, email string, role user.Role) *user.User {
	t.Helper()
	u, err := user.NewUser(name, user.MustEmail(email), role, "$argon2id$stub")
	require.NoError(t, err)
	return u
}

func TestUserRepository_SaveAndFind(t *testing.T) {
	// Arrange
	db := persistence.SetupTestDB(t)
	repo := userrepo.NewUserRepository(db)
	u := createTestUser(t, "Alice", "alice@example.com", user.RoleAdmin)

	// Act
	require.NoError(t, repo.Save(nil, u))
	found, err := repo.FindByEmail(nil, user.MustEmail("ALICE@example.com"))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Alice", found.Name())
	assert.Equal(t, user.RoleAdmin, found.Role())
	assert.Equal(t, 0, found.Points().Value())
	assert.Equal(t, "$argon2id$stub", found.CredentialHash())
	assert.Equal(t, 1, found.Version())
}

func TestUserRepository_Save_DuplicateEmail_CaseInsensitive(t *testing.T) {
	db := persistence.SetupTestDB(t)
	repo := userrepo.NewUserRepository(db)
	require.NoError(t, repo.Save(nil, createTestUser(t, "A", "dup@example.com", user.RoleScanner)))

	err := repo.Save(nil, createTestUser(t, "B", "Dup@Example.com", user.RoleScanner))

	assert.ErrorIs(t, err, user.ErrDuplicateEmail)
	assert.Equal(t, shared.KindDuplicateEmail, shared.KindOf(err))
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	db := persistence.SetupTestDB(t)
	repo := userrepo.NewUserRepository(db)

	_, err := repo.FindByEmail(nil, user.MustEmail("ghost@example.com"))

	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_Update_OptimisticLock(t *testing.T) {
	// Arrange
	db := persistence.SetupTestDB(t)
	repo := userrepo.NewUserRepository(db)
	require.NoError(t, repo.Save(nil, createTestUser(t, "U", "u@example.com", user.RoleScanner)))

	first, _ := repo.FindByEmail(nil, user.MustEmail("u@example.com"))
	stale, _ := repo.FindByEmail(nil, user.MustEmail("u@example.com"))

	// Act: 第一個更新成功
	first.Credit(10, "test")
	require.NoError(t, repo.Update(nil, first))

	// Act: 使用舊版本更新失敗
	stale.Credit(5, "test")
	err := repo.Update(nil, stale)

	// Assert
	assert.ErrorIs(t, err, shared.ErrConcurrentUpdate)
	assert.True(t, shared.IsRetryable(err))

	reloaded, _ := repo.FindByEmail(nil, user.MustEmail("u@example.com"))
	assert.Equal(t, 10, reloaded.Points().Value(), "舊版本的更新不應寫入")
	assert.Equal(t, 2, reloaded.Version())
}

func TestUserRepository_Update_NotFound(t *testing.T) {
	db := persistence.SetupTestDB(t)
	repo := userrepo.NewUserRepository(db)

	err := repo.Update(nil, createTestUser(t, "Ghost", "ghost@example.com", user.RoleScanner))

	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUserRepository_List_RegistrationOrderAndFilter(t *testing.T) {
	// Arrange
	db := persistence.SetupTestDB(t)
	repo := userrepo.NewUserRepository(db)
	tx := persistence.NewGORMTransactionManager(db)
	for _, u := range []*user.User{
		createTestUser(t, "Zed", "zed@example.com", user.RoleScanner),
		createTestUser(t, "Amy", "amy@example.com", user.RoleAdmin),
		createTestUser(t, "Bob", "bob@example.com", user.RoleScanner),
	} {
		require.NoError(t, repo.Save(nil, u))
	}

	// Act
	all, err := repo.List(tx.Reader(context.Background()), nil)
	require.NoError(t, err)
	scanner := user.RoleScanner
	scanners, err := repo.List(nil, &scanner)
	require.NoError(t, err)
	again, _ := repo.List(nil, nil)

	// Assert
	assert.Equal(t, []string{"zed@example.com", "amy@example.com", "bob@example.com"}, emails(all))
	assert.Equal(t, []string{"zed@example.com", "bob@example.com"}, emails(scanners))
	assert.Equal(t, emails(all), emails(again), "沒有寫入時重複讀取結果相同")
}

func emails(users []*user.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.Email().String())
	}
	return out
}
