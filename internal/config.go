package internal

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/fluent/pkg/logger"
)

// Config holds bundle settings loaded from the environment.
type Config struct {
	Locale        string `env:"FLUENT_LOCALE" envDefault:"en-US"`
	UseIsolating  bool   `env:"FLUENT_USE_ISOLATING" envDefault:"true"`
	MaxDepth      int    `env:"FLUENT_MAX_DEPTH" envDefault:"64"`
	MaxPlaceables int    `env:"FLUENT_MAX_PLACEABLES" envDefault:"100"`

	// Log configures the bundle logger (LOG_LEVEL, LOG_FORMAT, SENTRY_*).
	Log logger.Config
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.MaxDepth < 1 {
		return fmt.Errorf("%w: max depth must be positive, got %d", ErrInvalidConfig, c.MaxDepth)
	}
	if c.MaxPlaceables < 1 {
		return fmt.Errorf("%w: max placeables must be positive, got %d", ErrInvalidConfig, c.MaxPlaceables)
	}
	if err := c.Log.Validate(); err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}
	return nil
}

// NewFromConfig creates a bundle for cfg.Locale with the settings of cfg,
// logging to stderr as cfg.Log describes. Options are applied after cfg.
func NewFromConfig(cfg Config, opts ...Option) (*Bundle, error) {
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, fmt.Errorf("locale %q: %w", cfg.Locale, err))
	}
	log, err := logger.NewWithConfig(cfg.Log, os.Stderr)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	base := []Option{WithConfig(cfg), WithCustomLogger(log)}
	return New(tag, append(base, opts...)...)
}
