package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackyeh168/qr_points/src/internal/domain/shared"
	"github.com/jackyeh168/qr_points/src/internal/domain/user"
)

const (
	ErrCodeInvalidToken shared.ErrorCode = "INVALID_TOKEN"
	tokenIssuer                          = "qrpoints"
)

// ErrInvalidToken token 無效、過期或簽章錯誤
var ErrInvalidToken = &shared.DomainError{
	Kind:    shared.KindInvalidCredential,
	Code:    ErrCodeInvalidToken,
	Message: "登入憑證無效或已過期",
}

// Claims 登入 token 內容
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer 以 HS256 簽發與驗證登入 token
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer 創建 token 簽發器
func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	if len(secret) < 16 {
		return nil, errors.New("jwt secret must be at least 16 bytes")
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue 為呼叫者簽發 token，返回 token 與到期時間
func (i *TokenIssuer) Issue(caller user.Caller) (string, time.Time, error) {
	now := i.now()
	expiresAt := now.Add(i.ttl)

	claims := Claims{
		Role: caller.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   caller.Email.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify 驗證 token 並還原呼叫者身分
func (i *TokenIssuer) Verify(token string) (user.Caller, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return user.Caller{}, ErrInvalidToken.WithContext("reason", err.Error())
	}

	email, err := user.NewEmail(claims.Subject)
	if err != nil {
		return user.Caller{}, ErrInvalidToken.WithContext("reason", "bad subject")
	}
	role, err := user.ParseRole(claims.Role)
	if err != nil {
		return user.Caller{}, ErrInvalidToken.WithContext("reason", "bad role")
	}
	return user.Caller{Email: email, Role: role}, nil
}
