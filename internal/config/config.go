package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
)

// Config holds all application configuration
// Supports environment variables with sensible defaults
//
// Environment Variables:
// HTTP Configuration:
// - LISTEN_ADDR: Address the API server binds to (default: :8972)
//
// Translation Backend Configuration:
// - TRANSLATE_API_URL: Translation backend endpoint (default: http://127.0.0.1:8000/api/translate_subtitle/)
// - TRANSLATE_TIMEOUT: Request timeout in seconds (default: 120)
//
// Subtitle Fetch Configuration:
// - FETCH_TIMEOUT: Subtitle document fetch timeout in seconds (default: 15)
//
// Storage Configuration:
// - DATA_DIR: Directory for the sqlite database (default: ./data)
//
// Session Configuration:
// - SESSION_TTL_MINUTES: Idle minutes before a session is pruned (default: 120)
// - JANITOR_CRON_EXPR: Schedule for the session janitor (default: */10 * * * *)
//
// System Configuration:
// - LOG_LEVEL: debug, info, warn, error or fatal (default: info)

type Config struct {
	HTTP      HTTPConfig      `json:"http"`
	Translate TranslateConfig `json:"translate"`
	Fetch     FetchConfig     `json:"fetch"`
	Storage   StorageConfig   `json:"storage"`
	Session   SessionConfig   `json:"session"`
	LogLevel  string          `json:"log_level"`
}

type HTTPConfig struct {
	ListenAddr string `json:"listen_addr"`
}

// TranslateConfig holds the translation backend client settings.
type TranslateConfig struct {
	APIURL  string `json:"api_url"`
	Timeout int    `json:"timeout"`
}

type FetchConfig struct {
	Timeout int `json:"timeout"`
}

type StorageConfig struct {
	DataDir string `json:"data_dir"`
}

// SessionConfig controls idle-session cleanup.
type SessionConfig struct {
	TTLMinutes int    `json:"ttl_minutes"`
	CronExpr   string `json:"cron_expr"`
}

func (c SessionConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

// DBPath returns the sqlite database file path under the data directory.
func (c StorageConfig) DBPath() string {
	return filepath.Join(c.DataDir, "dualsub.db")
}

// Option is a function type for configuring Config
type Option func(*Config)

// NewFromEnv creates a new Config instance with values from environment variables and options
func NewFromEnv(opts ...Option) (*Config, error) {
	config := &Config{
		HTTP: HTTPConfig{
			ListenAddr: getEnvString("LISTEN_ADDR", ":8972"),
		},
		Translate: TranslateConfig{
			APIURL:  getEnvString("TRANSLATE_API_URL", "http://127.0.0.1:8000/api/translate_subtitle/"),
			Timeout: getEnvInt("TRANSLATE_TIMEOUT", 120),
		},
		Fetch: FetchConfig{
			Timeout: getEnvInt("FETCH_TIMEOUT", 15),
		},
		Storage: StorageConfig{
			DataDir: getEnvString("DATA_DIR", "./data"),
		},
		Session: SessionConfig{
			TTLMinutes: getEnvInt("SESSION_TTL_MINUTES", 120),
			CronExpr:   getEnvString("JANITOR_CRON_EXPR", "*/10 * * * *"),
		},
		LogLevel: getEnvString("LOG_LEVEL", "info"),
	}

	// Apply custom options
	for _, opt := range opts {
		opt(config)
	}

	// Validate required configuration
	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// validate checks if all required configuration is properly set
func (c *Config) validate() error {
	if c.HTTP.ListenAddr == "" {
		return fmt.Errorf("LISTEN_ADDR is required")
	}
	if c.Translate.APIURL == "" {
		return fmt.Errorf("TRANSLATE_API_URL is required")
	}
	if c.Session.TTLMinutes <= 0 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be positive")
	}
	if _, err := cron.ParseStandard(c.Session.CronExpr); err != nil {
		return fmt.Errorf("invalid JANITOR_CRON_EXPR: %w", err)
	}
	return nil
}

// getEnvString gets a string value from environment variables with default
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer value from environment variables with default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
