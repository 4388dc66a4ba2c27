package httpclient

import (
	"errors"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/fetchcache/pkg/reqcache"
)

// Config holds client settings for env or YAML driven setups.
type Config struct {
	Headers map[string]string `env:"FETCH_HEADERS" envSeparator:"," yaml:"headers"`
	BaseURL string            `env:"FETCH_BASE_URL,required" yaml:"base_url"`
	Cache   reqcache.Config   `envPrefix:"FETCH_" yaml:"cache"`
	Timeout time.Duration     `env:"FETCH_TIMEOUT" envDefault:"30s" yaml:"timeout"`
}

// DefaultConfig returns a Config with default timeout and cache settings.
func DefaultConfig() Config {
	return Config{
		Timeout: defaultTimeout,
		Cache:   reqcache.DefaultConfig(),
	}
}

// yamlConfig mirrors Config with the mode kept as text.
type yamlConfig struct {
	Headers map[string]string `yaml:"headers"`
	BaseURL string            `yaml:"base_url"`
	Cache   struct {
		Mode       string        `yaml:"mode"`
		DefaultTTL time.Duration `yaml:"default_ttl"`
		MaxEntries *int          `yaml:"max_entries"`
	} `yaml:"cache"`
	Timeout *time.Duration `yaml:"timeout"`
}

// ParseConfig reads a YAML document. Missing fields keep DefaultConfig values.
//
//	base_url: https://api.example.com
//	timeout: 10s
//	headers:
//	  Authorization: Bearer xyz
//	cache:
//	  mode: client
//	  default_ttl: 1m
//	  max_entries: 500
func ParseConfig(data []byte) (Config, error) {
	var raw yamlConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}

	cfg := DefaultConfig()
	cfg.BaseURL = raw.BaseURL
	cfg.Headers = raw.Headers
	if raw.Timeout != nil {
		cfg.Timeout = *raw.Timeout
	}

	mode, err := reqcache.ParseMode(raw.Cache.Mode)
	if err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	cfg.Cache.Mode = mode
	cfg.Cache.DefaultTTL = raw.Cache.DefaultTTL
	if raw.Cache.MaxEntries != nil {
		cfg.Cache.MaxEntries = *raw.Cache.MaxEntries
	}

	if err := cfg.Cache.Validate(); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}

	return cfg, nil
}

// NewFromConfig creates a Client from cfg. opts are applied after the
// config values.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	cacheOpts, err := cfg.Cache.Options()
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	base := make([]Option, 0, len(cfg.Headers)+2+len(opts))
	base = append(base, WithTimeout(cfg.Timeout), WithCacheOptions(cacheOpts...))
	for k, v := range cfg.Headers {
		base = append(base, WithHeader(k, v))
	}

	return New(cfg.BaseURL, append(base, opts...)...)
}
