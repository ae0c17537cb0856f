package security

import (
	"strings"
	"testing"
	"time"

	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
	"github.com/jackyeh168/qr_points/src/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===========================
// Argon2Hasher
// ===========================

func TestArgon2Hasher_HashAndVerify(t *testing.T) {
	// Arrange
	hasher := NewArgon2Hasher("pepper")

	// Act
	encoded, err := hasher.Hash("s3cret")
	require.NoError(t, err)

	// Assert
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$m=19456,t=2,p=1$"))

	ok, err := hasher.Verify("s3cret", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify("wrong", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2Hasher_SaltedHashesDiffer(t *testing.T) {
	hasher := NewArgon2Hasher("")

	a, _ := hasher.Hash("same")
	b, _ := hasher.Hash("same")

	assert.NotEqual(t, a, b)
}

func TestArgon2Hasher_PepperMismatch(t *testing.T) {
	encoded, _ := NewArgon2Hasher("pepper-a").Hash("s3cret")

	ok, err := NewArgon2Hasher("pepper-b").Verify("s3cret", encoded)

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2Hasher_MalformedHash(t *testing.T) {
	hasher := NewArgon2Hasher("")

	for _, encoded := range []string{
		"",
		"plaintext",
		"$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=1,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=x,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1,t=1,p=1$!!!$aGFzaA",
	} {
		_, err := hasher.Verify("pw", encoded)
		assert.ErrorIs(t, err, ErrMalformedHash, encoded)
	}
}

// ===========================
// TokenIssuer
// ===========================

func TestTokenIssuer_IssueAndVerify(t *testing.T) {
	// Arrange
	issuer, err := NewTokenIssuer("0123456789abcdef0123", time.Hour)
	require.NoError(t, err)
	caller := user.Caller{Email: user.MustEmail("admin@example.com"), Role: user.RoleAdmin}

	// Act
	token, expiresAt, err := issuer.Issue(caller)
	require.NoError(t, err)
	got, err := issuer.Verify(token)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, caller, got)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer, _ := NewTokenIssuer("0123456789abcdef0123", time.Minute)
	caller := user.Caller{Email: user.MustEmail("s@example.com"), Role: user.RoleScanner}
	token, _, _ := issuer.Issue(caller)

	issuer.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err := issuer.Verify(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Equal(t, shared.KindInvalidCredential, shared.KindOf(err))
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	a, _ := NewTokenIssuer("aaaaaaaaaaaaaaaaaaaa", time.Hour)
	b, _ := NewTokenIssuer("bbbbbbbbbbbbbbbbbbbb", time.Hour)
	token, _, _ := a.Issue(user.Caller{Email: user.MustEmail("s@example.com"), Role: user.RoleScanner})

	_, err := b.Verify(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenIssuer_Validation(t *testing.T) {
	_, err := NewTokenIssuer("short", time.Hour)
	assert.Error(t, err)

	_, err = NewTokenIssuer("0123456789abcdef0123", 0)
	assert.Error(t, err)
}
