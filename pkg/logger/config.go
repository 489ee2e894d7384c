package logger

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// ErrInvalidConfig is returned for unknown levels or formats.
var ErrInvalidConfig = errors.New("logger: invalid configuration")

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Config holds logger settings loaded from the environment.
type Config struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
	Sentry SentryConfig
}

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	// MinLevel is the lowest level stored in Sentry. Errors always create
	// issues.
	MinLevel slog.Level `env:"SENTRY_MIN_LEVEL" envDefault:"WARN"`
}

// LoadConfig reads Config from LOG_* and SENTRY_* environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports an unknown level or format.
func (c Config) Validate() error {
	if _, err := c.level(); err != nil {
		return err
	}
	_, err := c.format()
	return err
}

// level parses Level. Empty means info.
func (c Config) level() (slog.Level, error) {
	if c.Level == "" {
		return slog.LevelInfo, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Level)); err != nil {
		return 0, fmt.Errorf("%w: level %q", ErrInvalidConfig, c.Level)
	}
	return l, nil
}

func (c Config) format() (string, error) {
	switch f := strings.ToLower(c.Format); f {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatText:
		return f, nil
	default:
		return "", fmt.Errorf("%w: format %q", ErrInvalidConfig, c.Format)
	}
}
