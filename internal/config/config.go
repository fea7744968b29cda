// Package config loads goyal-store settings from YAML with environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all service configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Advisor AdvisorConfig `yaml:"advisor"`
	Auth    AuthConfig    `yaml:"auth"`
	Events  EventsConfig  `yaml:"events"`
	Flags   FlagsConfig   `yaml:"flags"`

	// Runtime switches, hot-reloaded by Watch
	LogLevel string `yaml:"log_level"`
	Offline  bool   `yaml:"offline"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr              string `yaml:"addr"`
	ReadHeaderTimeout string `yaml:"read_header_timeout"`
	ShutdownTimeout   string `yaml:"shutdown_timeout"`
}

// StorageConfig selects the durable backend.
type StorageConfig struct {
	Driver    string `yaml:"driver"` // memory, dir, postgres, pgx, sqlite
	DSN       string `yaml:"dsn"`
	Dir       string `yaml:"dir"`
	Table     string `yaml:"table"`
	Namespace string `yaml:"namespace"` // key prefix for every collection
}

// AdvisorConfig configures the generative text client.
type AdvisorConfig struct {
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	Timeout   string `yaml:"timeout"`
	StoreName string `yaml:"store_name"`
}

// FlagsConfig selects the remote flag source. Without an app key the
// offline and log_level switches below are used.
type FlagsConfig struct {
	RolloutAppKey string `yaml:"rollout_app_key"`
}

// AuthConfig configures the admin gate.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

// EventsConfig configures order event publishing. No brokers disables it.
type EventsConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: "5s",
			ShutdownTimeout:   "10s",
		},
		Storage: StorageConfig{
			Driver:    "dir",
			Dir:       "data",
			Table:     "shop_state",
			Namespace: "goyal_",
		},
		Advisor: AdvisorConfig{
			Model:     "gemini-3-flash-preview",
			Timeout:   "20s",
			StoreName: "Goyal Cloth Store",
		},
		Events: EventsConfig{
			Topic: "goyal.orders",
		},
		LogLevel: "info",
	}
}

// Load reads configuration from a YAML file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.Advisor.APIKey = v
	} else if v := os.Getenv("GOOGLE_API_KEY"); v != "" && c.Advisor.APIKey == "" {
		c.Advisor.APIKey = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("GOYAL_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("GOYAL_STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv("GOYAL_DSN"); v != "" {
		c.Storage.DSN = v
	}
	if v := os.Getenv("GOYAL_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("ROLLOUT_APP_KEY"); v != "" {
		c.Flags.RolloutAppKey = v
	}
	if v := os.Getenv("GOYAL_KAFKA_BROKERS"); v != "" {
		c.Events.Brokers = splitCSV(v)
	}
}

// Validate checks fields that would otherwise fail late at startup.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "memory":
	case "dir":
		if c.Storage.Dir == "" {
			return fmt.Errorf("storage.dir is required for the dir driver")
		}
	case "postgres", "pgx", "sqlite":
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required for the %s driver", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	for name, v := range map[string]string{
		"server.read_header_timeout": c.Server.ReadHeaderTimeout,
		"server.shutdown_timeout":    c.Server.ShutdownTimeout,
		"advisor.timeout":            c.Advisor.Timeout,
	} {
		if _, err := parseDuration(v); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// AdvisorTimeout is the per-call bound for AI requests.
func (c *Config) AdvisorTimeout() time.Duration {
	d, _ := parseDuration(c.Advisor.Timeout)
	return d
}

// ReadHeaderTimeout for the HTTP server.
func (c *Config) ReadHeaderTimeout() time.Duration {
	d, _ := parseDuration(c.Server.ReadHeaderTimeout)
	return d
}

// ShutdownTimeout bounds graceful HTTP shutdown.
func (c *Config) ShutdownTimeout() time.Duration {
	d, _ := parseDuration(c.Server.ShutdownTimeout)
	return d
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %s", s)
	}
	return d, nil
}

func splitCSV(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
