package shared

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Catalog       CatalogConfig      `toml:"catalog"`
	Notifications NotificationConfig `toml:"notifications"`
	Library       LibraryConfig      `toml:"library"`
	Database      DatabaseConfig     `toml:"database"`
	Log           LogConfig          `toml:"log"`
	Profile       ProfileConfig      `toml:"profile"`
}

// CatalogConfig contains settings for the remote song catalog (iTunes Search API).
type CatalogConfig struct {
	BaseURL        string  `toml:"base_url"`
	Country        string  `toml:"country"`
	Limit          int     `toml:"limit"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	RateLimit      float64 `toml:"rate_limit"`
}

// NotificationConfig controls transient status messages.
type NotificationConfig struct {
	DurationMS int `toml:"duration_ms"`
}

// LibraryConfig controls the derived views over the collection.
type LibraryConfig struct {
	RecentLimit    int    `toml:"recent_limit"`
	HighlightLimit int    `toml:"highlight_limit"`
	ExportDir      string `toml:"export_dir"`
	DefaultSort    string `toml:"default_sort"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LogConfig contains log level and file rotation settings.
type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

// ProfileConfig holds the user facing profile shown on the Profile tab.
type ProfileConfig struct {
	Name       string `toml:"name"`
	Instrument string `toml:"instrument"`
}

// Timeout returns the catalog request timeout as a [time.Duration].
func (c CatalogConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Duration returns how long a notification stays on screen.
func (n NotificationConfig) Duration() time.Duration {
	if n.DurationMS <= 0 {
		return 3 * time.Second
	}
	return time.Duration(n.DurationMS) * time.Millisecond
}

// Validate checks values that would otherwise fail later in surprising ways.
func (c *Config) Validate() error {
	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("%w: catalog.base_url is required", ErrInvalidConfig)
	}
	if c.Catalog.Limit < 0 || c.Catalog.Limit > 200 {
		return fmt.Errorf("%w: catalog.limit must be between 0 and 200", ErrInvalidConfig)
	}
	if c.Catalog.RateLimit < 0 {
		return fmt.Errorf("%w: catalog.rate_limit must not be negative", ErrInvalidConfig)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("%w: database.path is required", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values of the embedded example config.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// EncodeConfig renders the configuration back to TOML.
func EncodeConfig(c *Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// LoadEnv reads the optional env files (default ".env") into the process environment.
//
// A missing file is not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}

	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// ApplyEnv overrides config values from WOODSHED_* environment variables.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv("WOODSHED_CATALOG_URL")); v != "" {
		c.Catalog.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("WOODSHED_DATABASE_PATH")); v != "" {
		c.Database.Path = v
	}
	if v := strings.TrimSpace(os.Getenv("WOODSHED_LOG_LEVEL")); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("WOODSHED_LOG_FILE")); v != "" {
		c.Log.File = v
	}
	if v := strings.TrimSpace(os.Getenv("WOODSHED_PROFILE_NAME")); v != "" {
		c.Profile.Name = v
	}
}
