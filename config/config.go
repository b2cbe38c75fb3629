// ABOUTME: Configuration loading for the kinetic dashboard
// ABOUTME: Merges defaults, an XDG YAML file and environment variable overrides
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	// AppName names the XDG config directory.
	AppName = "kinetic"

	// ConfigFileName is the YAML file inside the config directory.
	ConfigFileName = "config.yaml"

	DefaultModel        = "gemini-3-flash-preview"
	DefaultPort         = 8080
	DefaultAuditTimeout = 60 * time.Second
	DefaultLogLevel     = "info"
)

// Config holds every tunable of the application.
type Config struct {
	AI  AIConfig  `yaml:"ai"`
	Web WebConfig `yaml:"web"`
	Log LogConfig `yaml:"log"`
}

// AIConfig configures the hosted model used for audits.
type AIConfig struct {
	// APIKey is normally supplied through GEMINI_API_KEY rather than the file.
	APIKey       string        `yaml:"api_key,omitempty"`
	Model        string        `yaml:"model"`
	BaseURL      string        `yaml:"base_url,omitempty"`
	AuditTimeout time.Duration `yaml:"audit_timeout"`
}

type WebConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// Format is "console", "json" or "" (auto: console on a terminal).
	Format string `yaml:"format,omitempty"`
}

// Default returns a config with sensible defaults.
func Default() *Config {
	return &Config{
		AI: AIConfig{
			Model:        DefaultModel,
			AuditTimeout: DefaultAuditTimeout,
		},
		Web: WebConfig{Port: DefaultPort},
		Log: LogConfig{Level: DefaultLogLevel},
	}
}

// Dir returns the XDG config directory for kinetic.
func Dir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Path returns the default config file location.
func Path() string {
	return filepath.Join(Dir(), ConfigFileName)
}

// Load reads the config file at path (the XDG default when empty), falls back
// to defaults when it does not exist, and applies environment overrides:
//   - GEMINI_API_KEY (or API_KEY)
//   - KINETIC_MODEL
//   - KINETIC_AI_BASE_URL
//   - KINETIC_AUDIT_TIMEOUT
//   - KINETIC_PORT
//   - KINETIC_LOG_LEVEL
//   - KINETIC_LOG_FORMAT
func Load(path string) (*Config, error) {
	if path == "" {
		path = Path()
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	cfg.fillDefaults()

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.AI.APIKey = key
	} else if key := os.Getenv("API_KEY"); key != "" {
		cfg.AI.APIKey = key
	}
	if model := os.Getenv("KINETIC_MODEL"); model != "" {
		cfg.AI.Model = model
	}
	if baseURL := os.Getenv("KINETIC_AI_BASE_URL"); baseURL != "" {
		cfg.AI.BaseURL = baseURL
	}
	if timeout := os.Getenv("KINETIC_AUDIT_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid KINETIC_AUDIT_TIMEOUT: %w", err)
		}
		cfg.AI.AuditTimeout = d
	}
	if port := os.Getenv("KINETIC_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid KINETIC_PORT: %w", err)
		}
		cfg.Web.Port = p
	}
	if level := os.Getenv("KINETIC_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if format := os.Getenv("KINETIC_LOG_FORMAT"); format != "" {
		cfg.Log.Format = format
	}
	return nil
}

func (c *Config) fillDefaults() {
	if c.AI.Model == "" {
		c.AI.Model = DefaultModel
	}
	if c.AI.AuditTimeout <= 0 {
		c.AI.AuditTimeout = DefaultAuditTimeout
	}
	if c.Web.Port == 0 {
		c.Web.Port = DefaultPort
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// Save writes the config to path (the XDG default when empty). The API key is
// never written.
func (c *Config) Save(path string) error {
	if path == "" {
		path = Path()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	out := *c
	out.AI.APIKey = ""
	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// HasAPIKey reports whether audits can reach the model.
func (c *Config) HasAPIKey() bool {
	return c.AI.APIKey != ""
}
