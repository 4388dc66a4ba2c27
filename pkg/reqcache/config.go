package reqcache

import (
	"errors"
	"time"
)

// Config holds cache settings for env or YAML driven setups.
type Config struct {
	Mode       Mode          `env:"CACHE_MODE" envDefault:"client" yaml:"mode"`
	DefaultTTL time.Duration `env:"CACHE_DEFAULT_TTL" envDefault:"0s" yaml:"default_ttl"`
	MaxEntries int           `env:"CACHE_MAX_ENTRIES" envDefault:"100" yaml:"max_entries"`
}

// DefaultConfig returns the settings New uses without options.
func DefaultConfig() Config {
	return Config{
		Mode:       ModeClient,
		DefaultTTL: 0,
		MaxEntries: DefaultMaxEntries,
	}
}

// Validate reports configuration values New would otherwise silently adjust.
func (c Config) Validate() error {
	if c.Mode != ModeClient && c.Mode != ModeServer {
		return ErrInvalidMode
	}
	if c.DefaultTTL < 0 {
		return ErrInvalidTTL
	}
	return nil
}

// Options converts the config to cache options.
func (c Config) Options() ([]Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return []Option{
		WithMode(c.Mode),
		WithDefaultTTL(c.DefaultTTL),
		WithMaxEntries(c.MaxEntries),
	}, nil
}

// NewFromConfig creates a Cache from cfg. extra options are applied
// after the config, so they take precedence.
func NewFromConfig(cfg Config, extra ...Option) (*Cache, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	return New(append(opts, extra...)...), nil
}
