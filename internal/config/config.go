// Package config handles service configuration.
//
// Values are resolved in three layers: built-in defaults, an optional YAML
// file, then AUDIOINFO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultMaxUploadSize is the largest accepted audio payload.
const DefaultMaxUploadSize = 10 << 20

// Config holds all service configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	// MaxUploadSize is the largest decoded payload accepted, in bytes.
	MaxUploadSize int64 `yaml:"max_upload_size"`
	// Environment is "development" or "production".
	Environment string `yaml:"environment"`
}

// ServerConfig holds HTTP server and CORS configuration.
type ServerConfig struct {
	Address string `yaml:"address"`
	// AllowedOrigins is a comma-separated list of allowed origins for CORS.
	AllowedOrigins string        `yaml:"allowed_origins"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is "text" or "json".
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Address:        ":8080",
			AllowedOrigins: "http://localhost:3000,http://localhost:5173",
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   30 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		MaxUploadSize: DefaultMaxUploadSize,
		Environment:   "development",
	}
}

// Load builds the configuration. path may be empty, in which case only
// defaults and the environment apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path) // #nosec G304 -- path is operator supplied
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Server.Address = getEnv("AUDIOINFO_SERVER_ADDRESS", c.Server.Address)
	c.Server.AllowedOrigins = getEnv("AUDIOINFO_ALLOWED_ORIGINS", c.Server.AllowedOrigins)
	c.Log.Level = getEnv("AUDIOINFO_LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("AUDIOINFO_LOG_FORMAT", c.Log.Format)
	c.Environment = getEnv("AUDIOINFO_ENV", c.Environment)

	var err error
	if c.Server.ReadTimeout, err = getDuration("AUDIOINFO_READ_TIMEOUT", c.Server.ReadTimeout); err != nil {
		return err
	}
	if c.Server.WriteTimeout, err = getDuration("AUDIOINFO_WRITE_TIMEOUT", c.Server.WriteTimeout); err != nil {
		return err
	}
	if v := os.Getenv("AUDIOINFO_MAX_UPLOAD_SIZE"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("AUDIOINFO_MAX_UPLOAD_SIZE: %w", err)
		}
		c.MaxUploadSize = n
	}
	return nil
}

// Validate rejects configurations the service cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Address == "" {
		errs = append(errs, errors.New("server address is empty"))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, fmt.Errorf("read timeout must be positive, got %s", c.Server.ReadTimeout))
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, fmt.Errorf("write timeout must be positive, got %s", c.Server.WriteTimeout))
	}
	if c.MaxUploadSize <= 0 {
		errs = append(errs, fmt.Errorf("max upload size must be positive, got %d", c.MaxUploadSize))
	}
	for _, o := range c.Origins() {
		if o != "*" && !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			errs = append(errs, fmt.Errorf("allowed origin %q must be \"*\" or an http(s) URL", o))
		}
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.Log.Level))
	}
	switch c.Environment {
	case "development", "production", "test":
	default:
		errs = append(errs, fmt.Errorf("unknown environment %q", c.Environment))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Origins returns the CORS origins as a list, skipping blanks.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.Server.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv returns the value of the environment variable key, or defaultValue if unset.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
