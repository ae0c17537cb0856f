package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/jackyeh168/qr_points/src/internal/domain/user"
	"golang.org/x/crypto/argon2"
)

// Argon2id 參數
const (
	argonMemory      = 19 * 1024 // KiB
	argonIterations  = 2
	argonParallelism = 1
	argonKeyLength   = 32
	argonSaltLength  = 16
)

// ErrMalformedHash 儲存的雜湊不是可解析的 PHC 格式
var ErrMalformedHash = errors.New("malformed argon2id hash")

// Argon2Hasher 以 Argon2id 實作 user.PasswordHasher
//
// 雜湊為 PHC 格式：$argon2id$v=19$m=19456,t=2,p=1$<salt>$<hash>
// pepper 不存進資料庫，由設定檔提供。
type Argon2Hasher struct {
	pepper string
}

// NewArgon2Hasher 創建密碼雜湊器
func NewArgon2Hasher(pepper string) *Argon2Hasher {
	return &Argon2Hasher{pepper: pepper}
}

// Hash 產生 PHC 格式的雜湊字串
func (h *Argon2Hasher) Hash(plain string) (string, error) {
	salt := make([]byte, argonSaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("read salt: %w", err)
	}

	key := argon2.IDKey([]byte(plain+h.pepper), salt, argonIterations, argonMemory, argonParallelism, argonKeyLength)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argonMemory,
		argonIterations,
		argonParallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify 比對密碼；參數取自雜湊本身，調整參數後舊雜湊仍可驗證
func (h *Argon2Hasher) Verify(plain, encoded string) (bool, error) {
	// ["", "argon2id", "v=19", "m=X,t=Y,p=Z", "salt", "hash"]
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false, fmt.Errorf("%w: unsupported version %q", ErrMalformedHash, parts[2])
	}

	var memory, iterations uint32
	var parallelism uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism); err != nil {
		return false, fmt.Errorf("%w: parameters: %v", ErrMalformedHash, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("%w: salt: %v", ErrMalformedHash, err)
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(expected) == 0 {
		return false, fmt.Errorf("%w: key", ErrMalformedHash)
	}

	computed := argon2.IDKey([]byte(plain+h.pepper), salt, iterations, memory, parallelism, uint32(len(expected))) // #nosec G115
	return subtle.ConstantTimeCompare(computed, expected) == 1, nil
}

var _ user.PasswordHasher = (*Argon2Hasher)(nil)
