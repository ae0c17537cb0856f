// Package config 載入服務設定：預設值 → YAML 檔 → .env → QRPOINTS_* 環境變數。
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix 環境變數前綴
const EnvPrefix = "QRPOINTS_"

// DefaultPaths 未指定設定檔時依序嘗試的路徑
var DefaultPaths = []string{"config.yaml", "config/config.yaml"}

// Config 服務設定
type Config struct {
	Env      string         `yaml:"env"` // dev / prod
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
	Scan     ScanConfig     `yaml:"scan"`
}

// ServerConfig HTTP 伺服器
type ServerConfig struct {
	Port                int           `yaml:"port"`
	Mode                string        `yaml:"mode"` // gin 模式：debug / release / test
	ShutdownGracePeriod time.Duration `yaml:"shutdown_grace_period"`
}

// DatabaseConfig 資料庫
type DatabaseConfig struct {
	Driver        string        `yaml:"driver"` // sqlite / postgres / mysql
	DSN           string        `yaml:"dsn"`
	MaxOpenConns  int           `yaml:"max_open_conns"`
	SlowThreshold time.Duration `yaml:"slow_threshold"`
	LogLevel      string        `yaml:"log_level"` // silent / error / warn / info
}

// AuthConfig 登入與密碼
type AuthConfig struct {
	JWTSecret        string        `yaml:"jwt_secret"`
	TokenTTL         time.Duration `yaml:"token_ttl"`
	Pepper           string        `yaml:"pepper"`
	AllowAdminSignup bool          `yaml:"allow_admin_signup"`
}

// LogConfig 日誌
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json / text
}

// ScanConfig 掃描引擎
type ScanConfig struct {
	MaxRetries int           `yaml:"max_retries"`
	Cooldown   time.Duration `yaml:"cooldown"`   // 0 表示允許無限制重複掃描
	RateLimit  int           `yaml:"rate_limit"` // 每位呼叫者每分鐘的掃描請求數；0 表示不限制
	RateBurst  int           `yaml:"rate_burst"`
}

// Default 所有欄位的預設值
func Default() Config {
	return Config{
		Env: "dev",
		Server: ServerConfig{
			Port:                8080,
			Mode:                "release",
			ShutdownGracePeriod: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:        "sqlite",
			DSN:           "file:qrpoints.db?_busy_timeout=5000",
			SlowThreshold: 200 * time.Millisecond,
			LogLevel:      "warn",
		},
		Auth: AuthConfig{
			TokenTTL: 24 * time.Hour,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Scan: ScanConfig{
			MaxRetries: 3,
			RateLimit:  60,
			RateBurst:  10,
		},
	}
}

// Load 載入設定
//
// path 為空時依序嘗試 DefaultPaths，都不存在就只使用預設值。
// 工作目錄下的 .env 會先載入到行程環境（不覆蓋已存在的變數），
// 之後 QRPOINTS_* 環境變數覆蓋檔案中的值。
func Load(path string) (*Config, error) {
	cfg := Default()

	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	if path == "" {
		path = firstExisting(DefaultPaths)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func firstExisting(paths []string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// ===========================
// 環境變數覆蓋
// ===========================

type lookupFunc func(key string) (string, bool)

func applyEnv(cfg *Config, lookup lookupFunc) error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v, ok := lookup(EnvPrefix + key); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = n
		}
	}
	dur := func(key string, dst *time.Duration) {
		if v, ok := lookup(EnvPrefix + key); ok {
			d, err := time.ParseDuration(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = d
		}
	}
	flag := func(key string, dst *bool) {
		if v, ok := lookup(EnvPrefix + key); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = b
		}
	}

	str("ENV", &cfg.Env)

	num("SERVER_PORT", &cfg.Server.Port)
	str("SERVER_MODE", &cfg.Server.Mode)
	dur("SERVER_SHUTDOWN_GRACE_PERIOD", &cfg.Server.ShutdownGracePeriod)

	str("DATABASE_DRIVER", &cfg.Database.Driver)
	str("DATABASE_DSN", &cfg.Database.DSN)
	num("DATABASE_MAX_OPEN_CONNS", &cfg.Database.MaxOpenConns)
	dur("DATABASE_SLOW_THRESHOLD", &cfg.Database.SlowThreshold)
	str("DATABASE_LOG_LEVEL", &cfg.Database.LogLevel)

	str("AUTH_JWT_SECRET", &cfg.Auth.JWTSecret)
	dur("AUTH_TOKEN_TTL", &cfg.Auth.TokenTTL)
	str("AUTH_PEPPER", &cfg.Auth.Pepper)
	flag("AUTH_ALLOW_ADMIN_SIGNUP", &cfg.Auth.AllowAdminSignup)

	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FORMAT", &cfg.Log.Format)

	num("SCAN_MAX_RETRIES", &cfg.Scan.MaxRetries)
	dur("SCAN_COOLDOWN", &cfg.Scan.Cooldown)
	num("SCAN_RATE_LIMIT", &cfg.Scan.RateLimit)
	num("SCAN_RATE_BURST", &cfg.Scan.RateBurst)

	return errors.Join(errs...)
}

// ===========================
// 驗證
// ===========================

// Validate 檢查 serve 所需的全部設定
func (c *Config) Validate() error {
	return errors.Join(
		c.Server.Validate(),
		c.Database.Validate(),
		c.Auth.Validate(),
		c.Log.Validate(),
		c.Scan.Validate(),
	)
}

// Validate 檢查伺服器設定
func (s ServerConfig) Validate() error {
	var errs []error
	if s.Port <= 0 || s.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", s.Port))
	}
	switch s.Mode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("server.mode must be debug, release or test: %q", s.Mode))
	}
	if s.ShutdownGracePeriod <= 0 {
		errs = append(errs, errors.New("server.shutdown_grace_period must be positive"))
	}
	return errors.Join(errs...)
}

// Validate 檢查資料庫設定（migrate / reconcile 只需要這部分）
func (d DatabaseConfig) Validate() error {
	var errs []error
	switch strings.ToLower(d.Driver) {
	case "sqlite", "sqlite3", "postgres", "postgresql", "mysql":
	default:
		errs = append(errs, fmt.Errorf("database.driver unsupported: %q", d.Driver))
	}
	if strings.TrimSpace(d.DSN) == "" {
		errs = append(errs, errors.New("database.dsn is required"))
	}
	if d.MaxOpenConns < 0 {
		errs = append(errs, errors.New("database.max_open_conns must not be negative"))
	}
	return errors.Join(errs...)
}

// Validate 檢查登入設定
func (a AuthConfig) Validate() error {
	var errs []error
	if len(a.JWTSecret) < 16 {
		errs = append(errs, errors.New("auth.jwt_secret must be at least 16 bytes"))
	}
	if a.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth.token_ttl must be positive"))
	}
	return errors.Join(errs...)
}

// Validate 檢查日誌設定
func (l LogConfig) Validate() error {
	switch strings.ToLower(l.Format) {
	case "json", "text":
		return nil
	default:
		return fmt.Errorf("log.format must be json or text: %q", l.Format)
	}
}

// Validate 檢查掃描設定
func (s ScanConfig) Validate() error {
	var errs []error
	if s.MaxRetries < 0 {
		errs = append(errs, errors.New("scan.max_retries must not be negative"))
	}
	if s.Cooldown < 0 {
		errs = append(errs, errors.New("scan.cooldown must not be negative"))
	}
	if s.RateLimit < 0 {
		errs = append(errs, errors.New("scan.rate_limit must not be negative"))
	}
	if s.RateLimit > 0 && s.RateBurst < 1 {
		errs = append(errs, errors.New("scan.rate_burst must be at least 1 when rate_limit is set"))
	}
	return errors.Join(errs...)
}
