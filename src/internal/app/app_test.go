package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackyeh168/qr_points/src/internal/config"
	"github.com/jackyeh168/qr_points/src/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Server.Mode = gin.TestMode
	cfg.Database.DSN = ":memory:"
	cfg.Database.LogLevel = "silent"
	cfg.Auth.JWTSecret = "test-secret-0123456789"
	cfg.Auth.AllowAdminSignup = true
	cfg.Log.Level = "error"
	cfg.Scan.RateLimit = 0
	return &cfg
}

func call(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, h http.Handler, email string) string {
	t.Helper()
	w := call(t, h, http.MethodPost, "/v1/auth/login", "", map[string]string{"email": email, "password": "s3cret-pass"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func TestNew_InvalidConfig(t *testing.T) {
	// Arrange
	cfg := testConfig()
	cfg.Auth.JWTSecret = "short"

	// Act
	app, err := New(cfg)

	// Assert
	require.Error(t, err)
	assert.Nil(t, app)
	assert.Contains(t, err.Error(), "jwt_secret")
}

// TestApplication_EndToEnd 以真實 SQLite 與完整依賴走過一次主要流程
func TestApplication_EndToEnd(t *testing.T) {
	// Arrange
	app, err := New(testConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = persistence.Close(app.db) })
	h := app.server.Handler

	for _, u := range []map[string]string{
		{"name": "Admin", "email": "admin@example.com", "password": "s3cret-pass", "role": "admin"},
		{"name": "Bob", "email": "bob@example.com", "password": "s3cret-pass"},
	} {
		w := call(t, h, http.MethodPost, "/v1/auth/register", "", u)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
	adminToken := login(t, h, "admin@example.com")
	bobToken := login(t, h, "bob@example.com")

	created := call(t, h, http.MethodPost, "/v1/qrcodes", adminToken, map[string]any{
		"name": "Entrance", "mode": "both", "points": 4,
	})
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	var code struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &code))

	// Act
	scan := call(t, h, http.MethodPost, "/v1/scans", bobToken, map[string]string{"qrCodeId": code.ID})

	// Assert
	require.Equal(t, http.StatusCreated, scan.Code, scan.Body.String())
	var result struct {
		TotalAwarded int `json:"totalAwarded"`
	}
	require.NoError(t, json.Unmarshal(scan.Body.Bytes(), &result))
	assert.Equal(t, 8, result.TotalAwarded, "both 模式給掃描者與擁有者各一份")

	health := call(t, h, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, health.Code)

	report, err := Reconcile(context.Background(), app.db, "")
	require.NoError(t, err)
	assert.True(t, report.Consistent())
	assert.Len(t, report.Entries, 2)
}

func TestReconcile_UnknownEmail(t *testing.T) {
	db := persistence.SetupTestDB(t)

	_, err := Reconcile(context.Background(), db, "ghost@example.com")

	require.Error(t, err)
}
