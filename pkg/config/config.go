// Package config loads client configuration from YAML files and the
// environment.
//
// File values come first, then EWSKIT_* environment variables override
// them, then explicit flag values applied by the caller win over both.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"
)

// Common errors for configuration loading/saving.
var (
	ErrFileNotFound     = errors.New("configuration file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidYAML      = errors.New("invalid YAML syntax")
	ErrEmptyFile        = errors.New("configuration file is empty")
)

// Impersonation identifies the account the client acts as.
type Impersonation struct {
	// Type is the connecting SID kind: PrincipalName, SID,
	// PrimarySmtpAddress or SmtpAddress.
	Type string `yaml:"type" env:"EWSKIT_IMPERSONATION_TYPE"`

	// Address is the identifier of the impersonated account.
	Address string `yaml:"address" env:"EWSKIT_IMPERSONATION_ADDRESS"`
}

// TimeZoneContext names the time zone requests are evaluated in.
type TimeZoneContext struct {
	ID   string `yaml:"id" env:"EWSKIT_TIMEZONE_ID"`
	Name string `yaml:"name" env:"EWSKIT_TIMEZONE_NAME"`
}

// Config holds everything needed to talk to an Exchange endpoint.
type Config struct {
	// Endpoint is the EWS URL, typically ending in /EWS/Exchange.asmx.
	Endpoint string `yaml:"endpoint" env:"EWSKIT_ENDPOINT"`

	// Username and Password authenticate requests via HTTP basic auth.
	Username string `yaml:"username" env:"EWSKIT_USERNAME"`
	Password string `yaml:"password" env:"EWSKIT_PASSWORD"`

	// ServerVersion is the schema version sent in the request header.
	// The value "none" suppresses the version directive entirely.
	ServerVersion string `yaml:"server_version" env:"EWSKIT_SERVER_VERSION"`

	// Impersonation, when its address is set, adds an impersonation
	// header to every request.
	Impersonation Impersonation `yaml:"impersonation"`

	// TimeZone, when its ID is set, adds a time zone context header.
	TimeZone TimeZoneContext `yaml:"timezone"`

	// HTTPTimeout bounds each round trip to the endpoint.
	HTTPTimeout time.Duration `yaml:"http_timeout" env:"EWSKIT_HTTP_TIMEOUT"`

	// LogLevel and LogFormat configure the client logger.
	LogLevel  string `yaml:"log_level" env:"EWSKIT_LOG_LEVEL"`
	LogFormat string `yaml:"log_format" env:"EWSKIT_LOG_FORMAT"`
}

// Default returns a configuration with usable defaults and nothing else.
func Default() *Config {
	return &Config{
		ServerVersion: "Exchange2013",
		HTTPTimeout:   60 * time.Second,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// LoadFromFile reads a Config from a YAML file.
// Returns wrapped errors for common failure cases.
func LoadFromFile(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	return ParseYAML(data)
}

// ParseYAML parses YAML bytes into a Config on top of the defaults.
func ParseYAML(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	return cfg, nil
}

// ApplyEnv overlays EWSKIT_* environment variables onto cfg. Unset
// variables leave the existing values alone.
func ApplyEnv(cfg *Config) error {
	if err := envdecode.Decode(cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return fmt.Errorf("failed to decode environment: %w", err)
	}
	return nil
}

// Load builds the effective configuration: defaults, then the file at
// path if it exists (an empty path skips the file layer), then the
// environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		loaded, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration can produce working requests.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return errors.New("endpoint is required")
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("endpoint is not a valid URL: %s", c.Endpoint)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("endpoint scheme must be http or https, got %s", u.Scheme)
	}
	if c.HTTPTimeout < 0 {
		return errors.New("http_timeout cannot be negative")
	}
	return nil
}

// SaveToFile writes the configuration as YAML using atomic rename.
// Creates parent directories if they don't exist.
func SaveToFile(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("config cannot be nil")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

// Redacted returns a copy safe to print: the password is masked.
func (c *Config) Redacted() Config {
	out := *c
	if out.Password != "" {
		out.Password = strings.Repeat("*", 8)
	}
	return out
}
