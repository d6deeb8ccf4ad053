package consolidate

import (
	"fmt"
	"runtime"
	"time"
)

// Config holds the tuning knobs of a Builder.
type Config struct {
	// Workers is the number of catalog items fetched concurrently.
	Workers int

	// MaxAttempts is the number of fetch attempts per item.
	MaxAttempts int

	// RetryDelay is the base delay for exponential backoff.
	RetryDelay time.Duration

	// RequestsPerSecond caps fetches across all workers. Zero disables the limit.
	RequestsPerSecond float64

	// Burst is the number of fetches allowed at once under the rate limit.
	Burst int

	// ReportInterval is how often to report progress (number of items).
	ReportInterval int

	// CheckpointName is the key under which build outcomes are recorded.
	CheckpointName string
}

// ConfigOption modifies a Config.
type ConfigOption func(*Config)

func WithWorkers(n int) ConfigOption {
	return func(c *Config) {
		c.Workers = n
	}
}

func WithMaxAttempts(n int) ConfigOption {
	return func(c *Config) {
		c.MaxAttempts = n
	}
}

func WithRetryDelay(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.RetryDelay = d
	}
}

func WithRateLimit(perSecond float64, burst int) ConfigOption {
	return func(c *Config) {
		c.RequestsPerSecond = perSecond
		c.Burst = burst
	}
}

func WithReportInterval(n int) ConfigOption {
	return func(c *Config) {
		c.ReportInterval = n
	}
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	workers := runtime.NumCPU() / 2
	if workers < 1 {
		workers = 1
	}
	return &Config{
		Workers:           workers,
		MaxAttempts:       3,
		RetryDelay:        500 * time.Millisecond,
		RequestsPerSecond: 0,
		Burst:             1,
		ReportInterval:    100,
		CheckpointName:    "consolidate",
	}
}

// NewConfig returns DefaultConfig with opts applied.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("%w: Workers must be at least 1", ErrInvalidConfig)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrInvalidMaxAttempts)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("%w: RetryDelay must not be negative", ErrInvalidConfig)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: RequestsPerSecond must not be negative", ErrInvalidConfig)
	}
	if c.RequestsPerSecond > 0 && c.Burst < 1 {
		return fmt.Errorf("%w: Burst must be at least 1 when rate limited", ErrInvalidConfig)
	}
	if c.ReportInterval < 1 {
		return fmt.Errorf("%w: ReportInterval must be at least 1", ErrInvalidConfig)
	}
	if c.CheckpointName == "" {
		return fmt.Errorf("%w: CheckpointName is required", ErrInvalidConfig)
	}
	return nil
}
