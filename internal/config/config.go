// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/motourapp/admin-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete admin console configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// API contains backend API connection settings.
	API APIConfig `toml:"api" json:"api"`

	// Session contains local session behavior settings.
	Session SessionConfig `toml:"session" json:"session"`

	// Update contains deployment update-check settings.
	Update UpdateConfig `toml:"update" json:"update"`

	// Audit contains local audit trail settings.
	Audit AuditConfig `toml:"audit" json:"audit"`

	// UI contains terminal UI settings.
	UI UIConfig `toml:"ui" json:"ui"`
}

// APIConfig contains backend API connection settings.
type APIConfig struct {
	// BaseURL is the admin REST API root, e.g. "https://api.motour.app/api".
	BaseURL string `toml:"base_url" json:"base_url"`
	// WebURL is the deployed admin web host whose entry page the update
	// poller fingerprints, e.g. "https://admin.motour.app".
	WebURL string `toml:"web_url" json:"web_url"`
	// TimeoutSecs is the per-request timeout in seconds.
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
}

// SessionConfig contains local session behavior settings.
type SessionConfig struct {
	// IdleTimeoutSecs is how long the console may sit idle before the
	// operator is logged out. Zero disables the idle timeout.
	IdleTimeoutSecs int `toml:"idle_timeout_secs" json:"idle_timeout_secs"`
	// WarningSecs is how long before the idle timeout a warning is shown.
	WarningSecs int `toml:"warning_secs" json:"warning_secs"`
	// TOTPSecret, when set, is used to generate MFA codes automatically
	// instead of prompting the operator.
	TOTPSecret string `toml:"totp_secret" json:"totp_secret"`
}

// UpdateConfig contains deployment update-check settings.
type UpdateConfig struct {
	// Enabled turns the update poller on or off.
	Enabled bool `toml:"enabled" json:"enabled"`
	// IntervalSecs is the poll interval in seconds.
	IntervalSecs int `toml:"interval_secs" json:"interval_secs"`
}

// AuditConfig contains local audit trail settings.
type AuditConfig struct {
	// Enabled turns the local audit trail on or off.
	Enabled bool `toml:"enabled" json:"enabled"`
	// DBPath is the SQLite database path (empty = ~/.motour-admin/audit.db).
	DBPath string `toml:"db_path" json:"db_path"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	// Theme selects the color theme: "dark" or "light".
	Theme string `toml:"theme" json:"theme"`
	// PageSize is the number of rows requested per table page.
	PageSize int `toml:"page_size" json:"page_size"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		Version: "1",
		API: APIConfig{
			BaseURL:     "http://localhost:5001/api",
			WebURL:      "http://localhost:5001",
			TimeoutSecs: 10,
		},
		Session: SessionConfig{
			IdleTimeoutSecs: 900,
			WarningSecs:     120,
		},
		Update: UpdateConfig{
			Enabled:      true,
			IntervalSecs: 120,
		},
		Audit: AuditConfig{
			Enabled: true,
		},
		UI: UIConfig{
			Theme:    "dark",
			PageSize: 10,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the configuration directory (~/.motour-admin).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".motour-admin"), nil
}

// ConfigPathTOML returns the TOML config file path.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the JSON config file path.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir creates the configuration directory with restricted
// permissions if it does not exist.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads configuration from disk, preferring TOML over JSON, and
// falling back to defaults. Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()

	if path, err := ConfigPathTOML(); err == nil {
		if _, err := os.Stat(path); err == nil {
			if err := LoadTOML(cfg, path); err != nil {
				return nil, err
			}
			cfg.ApplyEnvOverrides()
			return cfg, cfg.Validate()
		}
	}

	if path, err := ConfigPathJSON(); err == nil {
		if _, err := os.Stat(path); err == nil {
			if err := LoadJSON(cfg, path); err != nil {
				return nil, err
			}
			cfg.ApplyEnvOverrides()
			return cfg, cfg.Validate()
		}
	}

	cfg.ApplyEnvOverrides()
	return cfg, cfg.Validate()
}

// LoadTOML merges TOML configuration from path into cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// LoadJSON merges JSON configuration from path into cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// LoadFromPath loads configuration from an explicit path, detecting the
// format from the file extension.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = LoadTOML(cfg, path)
	case ".json":
		err = LoadJSON(cfg, path)
	default:
		err = fmt.Errorf("unsupported config format: %s", path)
	}
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	return cfg, cfg.Validate()
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration to the TOML config path atomically.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes cfg as TOML to path.
// RELIABILITY: Atomic write with fsync prevents config corruption on crash
func SaveTOML(cfg *Config, path string) error {
	var buf strings.Builder
	buf.WriteString("# Motour admin console configuration\n")
	buf.WriteString("# Generated on " + time.Now().Format(time.RFC3339) + "\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return util.AtomicWriteFile(path, []byte(buf.String()), 0600)
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies MOTOUR_ADMIN_* environment variables on top of
// the loaded configuration.
//
//	MOTOUR_ADMIN_API_URL        overrides api.base_url
//	MOTOUR_ADMIN_WEB_URL        overrides api.web_url
//	MOTOUR_ADMIN_TIMEOUT_SECS   overrides api.timeout_secs
//	MOTOUR_ADMIN_IDLE_TIMEOUT   overrides session.idle_timeout_secs
//	MOTOUR_ADMIN_UPDATE_CHECK   overrides update.enabled ("0" disables)
//	MOTOUR_ADMIN_THEME          overrides ui.theme
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("MOTOUR_ADMIN_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("MOTOUR_ADMIN_WEB_URL"); v != "" {
		c.API.WebURL = v
	}
	if v := os.Getenv("MOTOUR_ADMIN_TIMEOUT_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.API.TimeoutSecs = n
		}
	}
	if v := os.Getenv("MOTOUR_ADMIN_IDLE_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Session.IdleTimeoutSecs = n
		}
	}
	if v := os.Getenv("MOTOUR_ADMIN_UPDATE_CHECK"); v != "" {
		c.Update.Enabled = v != "0" && !strings.EqualFold(v, "false")
	}
	if v := os.Getenv("MOTOUR_ADMIN_THEME"); v != "" {
		c.UI.Theme = v
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes a single invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return ValidationError{"api.base_url", "must not be empty"}
	}
	if _, err := url.Parse(c.API.BaseURL); err != nil {
		return ValidationError{"api.base_url", "invalid URL: " + err.Error()}
	}
	if c.API.WebURL != "" {
		if _, err := url.Parse(c.API.WebURL); err != nil {
			return ValidationError{"api.web_url", "invalid URL: " + err.Error()}
		}
	}
	if c.API.TimeoutSecs <= 0 {
		return ValidationError{"api.timeout_secs", "must be positive"}
	}
	if c.Session.IdleTimeoutSecs < 0 {
		return ValidationError{"session.idle_timeout_secs", "must not be negative"}
	}
	if c.Update.IntervalSecs < 10 {
		return ValidationError{"update.interval_secs", "must be at least 10"}
	}
	if c.UI.Theme != "dark" && c.UI.Theme != "light" {
		return ValidationError{"ui.theme", `must be "dark" or "light"`}
	}
	if c.UI.PageSize <= 0 {
		return ValidationError{"ui.page_size", "must be positive"}
	}
	return nil
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Timeout returns the per-request API timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSecs) * time.Second
}

// IdleTimeout returns the session idle timeout as a duration.
func (c *Config) IdleTimeout() time.Duration {
	return time.Duration(c.Session.IdleTimeoutSecs) * time.Second
}

// UpdateInterval returns the update poll interval as a duration.
func (c *Config) UpdateInterval() time.Duration {
	return time.Duration(c.Update.IntervalSecs) * time.Second
}

// AuditDBPath returns the audit database path, applying the default when
// the configured path is empty.
func (c *Config) AuditDBPath() (string, error) {
	if c.Audit.DBPath != "" {
		return c.Audit.DBPath, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "audit.db"), nil
}

// CredentialsPath returns the path of the persisted session credentials.
func CredentialsPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "credentials"), nil
}
