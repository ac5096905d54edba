// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ersonp/typeclash/internal/infrastructure/logging"
)

const (
	// DefaultConfigDir is the directory name for typeclash configuration.
	DefaultConfigDir = ".typeclash"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
	// DefaultPokeAPIURL is the public PokeAPI v2 endpoint.
	DefaultPokeAPIURL = "https://pokeapi.co/api/v2"
)

// Config holds static configuration (read-only after init).
type Config struct {
	PokeAPI PokeAPIConfig `yaml:"pokeapi,omitempty"`
	Breaker BreakerConfig `yaml:"breaker,omitempty"`
	Weights WeightsConfig `yaml:"weights,omitempty"`
	Log     LogConfig     `yaml:"log,omitempty"`
}

// PokeAPIConfig holds configuration for the PokeAPI data source.
type PokeAPIConfig struct {
	BaseURL           string        `yaml:"base_url,omitempty"`
	Timeout           time.Duration `yaml:"timeout,omitempty"`
	RequestsPerSecond float64       `yaml:"requests_per_second,omitempty"`
	Burst             int           `yaml:"burst,omitempty"`
	// Concurrency bounds parallel lookups while loading a roster.
	Concurrency int `yaml:"concurrency,omitempty"`
}

// BreakerConfig holds circuit breaker settings for PokeAPI calls.
type BreakerConfig struct {
	MaxFailures uint32        `yaml:"max_failures,omitempty"`
	OpenTimeout time.Duration `yaml:"open_timeout,omitempty"`
}

// WeightsConfig holds the advantage points per matching type.
type WeightsConfig struct {
	DoubleDamageTo int `yaml:"double_damage_to"`
	HalfDamageFrom int `yaml:"half_damage_from"`
	NoDamageFrom   int `yaml:"no_damage_from"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		PokeAPI: PokeAPIConfig{
			BaseURL:           DefaultPokeAPIURL,
			Timeout:           10 * time.Second,
			RequestsPerSecond: 10,
			Burst:             5,
			Concurrency:       4,
		},
		Breaker: BreakerConfig{
			MaxFailures: 3,
			OpenTimeout: 30 * time.Second,
		},
		Weights: WeightsConfig{
			DoubleDamageTo: 2,
			HalfDamageFrom: 1,
			NoDamageFrom:   2,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load loads configuration from the .typeclash directory in the given path.
// A missing config file yields the defaults.
func Load(basePath string) (*Config, error) {
	configFile := ConfigFilePath(basePath)

	// Start with defaults
	cfg := Default()

	data, err := os.ReadFile(configFile)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configFile, err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("TYPECLASH_POKEAPI_URL"); v != "" {
		c.PokeAPI.BaseURL = v
	}
	if v := os.Getenv("TYPECLASH_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Validate checks that configuration values are usable.
func (c *Config) Validate() error {
	var errs []error

	if u, err := url.Parse(c.PokeAPI.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("pokeapi.base_url %q is not an absolute URL", c.PokeAPI.BaseURL))
	}
	if c.PokeAPI.Timeout <= 0 {
		errs = append(errs, errors.New("pokeapi.timeout must be positive"))
	}
	if c.PokeAPI.RequestsPerSecond <= 0 {
		errs = append(errs, errors.New("pokeapi.requests_per_second must be positive"))
	}
	if c.PokeAPI.Burst < 1 {
		errs = append(errs, errors.New("pokeapi.burst must be at least 1"))
	}
	if c.PokeAPI.Concurrency < 1 {
		errs = append(errs, errors.New("pokeapi.concurrency must be at least 1"))
	}
	if c.Breaker.MaxFailures == 0 {
		errs = append(errs, errors.New("breaker.max_failures must be at least 1"))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	return errors.Join(errs...)
}

// ConfigDir returns the path to the .typeclash config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(ConfigDir(basePath), DefaultConfigFile)
}

// Exists checks if a typeclash config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}
