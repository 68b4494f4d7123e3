// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values used when neither the config file nor the environment set a field.
const (
	DefaultBackendURL     = "http://localhost:8080"
	DefaultVoiceID        = "en-US-natalie"
	DefaultSessionTTL     = "12h"
	DefaultRequestTimeout = "60s"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "pretty"
)

// Config represents the CLI configuration. It can be loaded from a JSON or YAML file
// and is overlaid by environment variables and command line flags.
type Config struct {
	// Backend
	BackendURL     string `json:"backend_url,omitempty" yaml:"backend_url,omitempty"`         // Base URL of the interview-prep backend
	RequestTimeout string `json:"request_timeout,omitempty" yaml:"request_timeout,omitempty"` // Per request timeout, Go duration syntax
	Offline        bool   `json:"offline,omitempty" yaml:"offline,omitempty"`                 // Generate and score questions locally with Gemini

	// Session storage
	StoreURL      string `json:"store_url,omitempty" yaml:"store_url,omitempty"`           // File path, redis:// or postgres:// URL
	SessionSecret string `json:"session_secret,omitempty" yaml:"session_secret,omitempty"` // Key material for sealing the auth token
	SessionTTL    string `json:"session_ttl,omitempty" yaml:"session_ttl,omitempty"`       // Lifetime of a token stored without "remember me"

	// Speech
	MurfAPIKey    string `json:"murf_api_key,omitempty" yaml:"murf_api_key,omitempty"`     // Murf text-to-speech key
	VoiceID       string `json:"voice_id,omitempty" yaml:"voice_id,omitempty"`             // Murf voice
	PlayerCommand string `json:"player_command,omitempty" yaml:"player_command,omitempty"` // External audio player, e.g. "ffplay -nodisp -autoexit"
	CacheDir      string `json:"cache_dir,omitempty" yaml:"cache_dir,omitempty"`           // Downloaded audio and rendered exports

	// Offline generation
	GeminiAPIKey string `json:"gemini_api_key,omitempty" yaml:"gemini_api_key,omitempty"` // Gemini API key

	// Export
	ChromePath string `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty"` // Chrome/Chromium binary for PDF export

	// Logging
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		BackendURL:     DefaultBackendURL,
		RequestTimeout: DefaultRequestTimeout,
		StoreURL:       filepath.Join(DefaultDir(), "session.json"),
		SessionTTL:     DefaultSessionTTL,
		VoiceID:        DefaultVoiceID,
		CacheDir:       filepath.Join(DefaultDir(), "cache"),
		LogLevel:       DefaultLogLevel,
		LogFormat:      DefaultLogFormat,
	}
}

// DefaultDir returns the per-user configuration directory.
func DefaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "interview-prep")
}

// FromEnv reads configuration from environment variables. Unset variables leave fields empty.
func FromEnv() Config {
	return Config{
		BackendURL:     os.Getenv("BACKEND_URL"),
		RequestTimeout: os.Getenv("PREP_REQUEST_TIMEOUT"),
		Offline:        strings.EqualFold(os.Getenv("PREP_OFFLINE"), "true"),
		StoreURL:       os.Getenv("PREP_STORE_URL"),
		SessionSecret:  os.Getenv("PREP_SESSION_SECRET"),
		SessionTTL:     os.Getenv("PREP_SESSION_TTL"),
		MurfAPIKey:     os.Getenv("MURF_API_KEY"),
		VoiceID:        os.Getenv("MURF_VOICE_ID"),
		PlayerCommand:  os.Getenv("PREP_PLAYER"),
		CacheDir:       os.Getenv("PREP_CACHE_DIR"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		ChromePath:     os.Getenv("CHROME_PATH"),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		LogFormat:      os.Getenv("LOG_FORMAT"),
	}
}

// LoadConfig loads configuration from a JSON or YAML file. The format is chosen by extension.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Load resolves the effective configuration: environment over file over defaults.
// An empty path skips the file layer.
func Load(path string) (*Config, error) {
	base := Defaults()
	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		base = fileCfg.MergeWithDefaults(base)
	}

	env := FromEnv()
	cfg := env.MergeWithDefaults(base)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.BackendURL != "" {
		u, err := url.Parse(c.BackendURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config error: 'backend_url' must be an absolute URL: %q", c.BackendURL)
		}
	}

	if _, err := c.SessionTTLDuration(); err != nil {
		return err
	}
	if _, err := c.RequestTimeoutDuration(); err != nil {
		return err
	}

	switch c.LogFormat {
	case "", "pretty", "json":
	default:
		return fmt.Errorf("config error: 'log_format' must be \"pretty\" or \"json\", got %q", c.LogFormat)
	}

	if c.Offline && c.GeminiAPIKey == "" {
		return fmt.Errorf("config error: 'offline' requires 'gemini_api_key' (or GEMINI_API_KEY)")
	}

	return nil
}

// SessionTTLDuration parses SessionTTL. Empty means the default.
func (c *Config) SessionTTLDuration() (time.Duration, error) {
	return parseDuration("session_ttl", c.SessionTTL, DefaultSessionTTL)
}

// RequestTimeoutDuration parses RequestTimeout. Empty means the default.
func (c *Config) RequestTimeoutDuration() (time.Duration, error) {
	return parseDuration("request_timeout", c.RequestTimeout, DefaultRequestTimeout)
}

func parseDuration(field, value, fallback string) (time.Duration, error) {
	if value == "" {
		value = fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("config error: '%s' is not a duration: %w", field, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config error: '%s' must be positive", field)
	}
	return d, nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&result.BackendURL, defaults.BackendURL)
	fill(&result.RequestTimeout, defaults.RequestTimeout)
	fill(&result.StoreURL, defaults.StoreURL)
	fill(&result.SessionSecret, defaults.SessionSecret)
	fill(&result.SessionTTL, defaults.SessionTTL)
	fill(&result.MurfAPIKey, defaults.MurfAPIKey)
	fill(&result.VoiceID, defaults.VoiceID)
	fill(&result.PlayerCommand, defaults.PlayerCommand)
	fill(&result.CacheDir, defaults.CacheDir)
	fill(&result.GeminiAPIKey, defaults.GeminiAPIKey)
	fill(&result.ChromePath, defaults.ChromePath)
	fill(&result.LogLevel, defaults.LogLevel)
	fill(&result.LogFormat, defaults.LogFormat)

	// Bools cannot distinguish unset from false; either layer can switch offline mode on.
	result.Offline = result.Offline || defaults.Offline

	return result
}
