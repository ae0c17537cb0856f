package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault_PassesValidationOnceSecretIsSet(t *testing.T) {
	// Arrange
	cfg := Default()

	// Act & Assert
	assert.Error(t, cfg.Validate(), "預設沒有 jwt secret")

	cfg.Auth.JWTSecret = "0123456789abcdef"
	assert.NoError(t, cfg.Validate())
	assert.NoError(t, cfg.Database.Validate())
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	// Arrange
	t.Chdir(t.TempDir())
	path := writeFile(t, ".", "custom.yaml", `
server:
  port: 9090
  shutdown_grace_period: 3s
database:
  driver: postgres
  dsn: postgres://localhost/qr
auth:
  jwt_secret: from-yaml-0123456789
  token_ttl: 2h
  allow_admin_signup: true
scan:
  cooldown: 1m30s
`)

	// Act
	cfg, err := Load(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode, "未指定的欄位保留預設值")
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownGracePeriod)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Auth.AllowAdminSignup)
	assert.Equal(t, 90*time.Second, cfg.Scan.Cooldown)
	assert.Equal(t, 3, cfg.Scan.MaxRetries)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	// Arrange
	t.Chdir(t.TempDir())
	writeFile(t, ".", "config.yaml", "server:\n  port: 9090\n")
	t.Setenv("QRPOINTS_SERVER_PORT", "7070")
	t.Setenv("QRPOINTS_SCAN_COOLDOWN", "10s")
	t.Setenv("QRPOINTS_AUTH_ALLOW_ADMIN_SIGNUP", "true")

	// Act
	cfg, err := Load("")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Scan.Cooldown)
	assert.True(t, cfg.Auth.AllowAdminSignup)
}

func TestLoad_DotEnv(t *testing.T) {
	// Arrange
	t.Chdir(t.TempDir())
	writeFile(t, ".", ".env", "QRPOINTS_AUTH_JWT_SECRET=dotenv-secret-0123456789\n")
	t.Setenv("QRPOINTS_AUTH_JWT_SECRET", "") // 由 t.Setenv 負責還原
	require.NoError(t, os.Unsetenv("QRPOINTS_AUTH_JWT_SECRET"))

	// Act
	cfg, err := Load("")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "dotenv-secret-0123456789", cfg.Auth.JWTSecret)
}

func TestLoad_Errors(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load("missing.yaml")
	assert.Error(t, err)

	bad := writeFile(t, ".", "bad.yaml", "server: [not, a, map]\n")
	_, err = Load(bad)
	assert.Error(t, err)

	t.Setenv("QRPOINTS_SERVER_PORT", "eighty")
	_, err = Load("")
	assert.ErrorContains(t, err, "QRPOINTS_SERVER_PORT")
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	// Arrange
	cfg := Default()
	cfg.Server.Port = 0
	cfg.Database.Driver = "oracle"
	cfg.Scan.MaxRetries = -1
	cfg.Scan.RateBurst = 0

	// Act
	err := cfg.Validate()

	// Assert
	require.Error(t, err)
	for _, want := range []string{"server.port", "database.driver", "auth.jwt_secret", "scan.max_retries", "scan.rate_burst"} {
		assert.ErrorContains(t, err, want)
	}
}
