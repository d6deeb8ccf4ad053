// Package config loads the foodsearch YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/poiesic/foodsearch/consolidate"
	"github.com/poiesic/foodsearch/dataset"
	"github.com/poiesic/foodsearch/search"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a configuration file fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config mirrors the layout of a foodsearch YAML file.
type Config struct {
	Log         LogConfig         `yaml:"log"`
	Dataset     DatasetConfig     `yaml:"dataset"`
	Search      SearchConfig      `yaml:"search"`
	Consolidate ConsolidateConfig `yaml:"consolidate"`
}

type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

type DatasetConfig struct {
	Path string `yaml:"path"`
}

type SearchConfig struct {
	Strategy string `yaml:"strategy"` // containment or fuzzy
	Limit    int    `yaml:"limit"`    // 0 means unlimited
}

// ConsolidateConfig holds the builder settings. Durations use Go syntax ("500ms").
type ConsolidateConfig struct {
	Workers           int           `yaml:"workers"`
	MaxAttempts       int           `yaml:"max_attempts"`
	RetryDelay        time.Duration `yaml:"retry_delay"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`
	ReportInterval    int           `yaml:"report_interval"`
	CacheDir          string        `yaml:"cache_dir"` // empty disables the fetch cache
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	builder := consolidate.DefaultConfig()
	return &Config{
		Log:     LogConfig{Level: "info"},
		Dataset: DatasetConfig{Path: dataset.DefaultSourceName},
		Search:  SearchConfig{Strategy: search.ContainmentStrategyName},
		Consolidate: ConsolidateConfig{
			Workers:           builder.Workers,
			MaxAttempts:       builder.MaxAttempts,
			RetryDelay:        builder.RetryDelay,
			RequestsPerSecond: builder.RequestsPerSecond,
			Burst:             builder.Burst,
			ReportInterval:    builder.ReportInterval,
		},
	}
}

// Load reads a YAML file, expands ${VAR} references from the environment and
// validates the result. Keys absent from the file keep their Default values.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse([]byte(os.ExpandEnv(string(raw))))
}

// Parse decodes and validates YAML configuration text.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Log.Level)
	}
	if _, err := search.StrategyByName(c.Search.Strategy); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Search.Limit < 0 {
		return fmt.Errorf("%w: search limit must not be negative", ErrInvalidConfig)
	}
	if err := c.Consolidate.Builder().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Builder converts the section into a consolidate.Config.
func (c ConsolidateConfig) Builder() *consolidate.Config {
	return consolidate.NewConfig(
		consolidate.WithWorkers(c.Workers),
		consolidate.WithMaxAttempts(c.MaxAttempts),
		consolidate.WithRetryDelay(c.RetryDelay),
		consolidate.WithRateLimit(c.RequestsPerSecond, c.Burst),
		consolidate.WithReportInterval(c.ReportInterval),
	)
}
