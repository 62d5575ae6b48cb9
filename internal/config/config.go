package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName               string        `mapstructure:"app_name"`
	Env                   string        `mapstructure:"app_env"`
	LogLevel              string        `mapstructure:"log_level"`
	BaseURL               string        `mapstructure:"base_url"`
	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`
	HTTPDebug             bool          `mapstructure:"http_debug"`

	SessionStore           string        `mapstructure:"session_store"`
	SessionDBPath          string        `mapstructure:"session_db_path"`
	SessionTTLSeconds      int64         `mapstructure:"session_ttl_seconds"`
	SessionCleanupSeconds  int64         `mapstructure:"session_cleanup_interval_seconds"`
	SessionTTL             time.Duration `mapstructure:"-"`
	SessionCleanupInterval time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "interviewctl")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("base_url", "http://localhost:8000")
	v.SetDefault("request_timeout_seconds", 30)
	v.SetDefault("http_debug", false)
	v.SetDefault("session_store", "bbolt")
	v.SetDefault("session_db_path", "./data/sessions.db")
	v.SetDefault("session_ttl_seconds", int64((7*24*time.Hour)/time.Second))
	v.SetDefault("session_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base_url must not be empty")
	}

	if cfg.RequestTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid request_timeout_seconds (must be positive seconds)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	if cfg.SessionTTLSeconds <= 0 {
		return nil, fmt.Errorf("invalid session_ttl_seconds (must be positive seconds)")
	}
	if cfg.SessionCleanupSeconds <= 0 {
		return nil, fmt.Errorf("invalid session_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.SessionTTL = time.Duration(cfg.SessionTTLSeconds) * time.Second
	cfg.SessionCleanupInterval = time.Duration(cfg.SessionCleanupSeconds) * time.Second

	return &cfg, nil
}
