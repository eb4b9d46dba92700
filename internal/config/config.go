// Package config defines the attendance engine's process configuration.
package config

import (
	"fmt"
	"time"

	"face-logbook/internal/shared/clock"
)

const (
	DefaultMatchThreshold  = 0.60
	DefaultDebounceSeconds = 30
	DefaultResetBatchSize  = 200
)

// Config contains process configuration. Keys are flat so that
// FACELOG_DEBOUNCE_SECONDS maps onto debounce_seconds.
type Config struct {
	// Env selects the logger flavour: development or production.
	Env string `koanf:"env"`

	// MatchThreshold is the minimum cosine similarity accepted as a match.
	MatchThreshold float64 `koanf:"match_threshold"`

	// DebounceSeconds is the minimum spacing between two transitions of the
	// same identity on the same day.
	DebounceSeconds int `koanf:"debounce_seconds"`

	// Timezone is the IANA zone that defines "today" and local midnight.
	Timezone string `koanf:"timezone"`

	// ResetBatchSize bounds how many identities one reset transaction touches.
	ResetBatchSize int `koanf:"reset_batch_size"`

	// ResetLockTTL is how long the once-per-day reset guard lives in redis.
	ResetLockTTL time.Duration `koanf:"reset_lock_ttl"`

	DBHost       string `koanf:"db_host"`
	DBPort       string `koanf:"db_port"`
	DBUser       string `koanf:"db_user"`
	DBPassword   string `koanf:"db_password"`
	DBName       string `koanf:"db_name"`
	DBSSLMode    string `koanf:"db_sslmode"`
	DBMaxRetries int    `koanf:"db_max_retries"`

	// RedisAddr is optional; without it the reset guard is disabled.
	RedisAddr string `koanf:"redis_addr"`

	// KafkaBroker is optional; without it transition events are not published.
	KafkaBroker        string        `koanf:"kafka_broker"`
	KafkaTopic         string        `koanf:"kafka_topic"`
	OutboxPollInterval time.Duration `koanf:"outbox_poll_interval"`

	// MetricsAddr is where the worker serves /metrics. Empty disables it.
	MetricsAddr string `koanf:"metrics_addr"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Env:                "development",
		MatchThreshold:     DefaultMatchThreshold,
		DebounceSeconds:    DefaultDebounceSeconds,
		Timezone:           clock.DefaultTimezone,
		ResetBatchSize:     DefaultResetBatchSize,
		ResetLockTTL:       25 * time.Hour,
		DBHost:             "localhost",
		DBPort:             "5432",
		DBUser:             "postgres",
		DBName:             "attendance",
		DBSSLMode:          "disable",
		DBMaxRetries:       5,
		KafkaTopic:         "attendance.transitions.v1",
		OutboxPollInterval: 3 * time.Second,
		MetricsAddr:        ":9090",
	}
}

// Debounce returns DebounceSeconds as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceSeconds) * time.Second
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	return clock.LoadLocation(c.Timezone)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.MatchThreshold < -1 || c.MatchThreshold > 1 {
		return fmt.Errorf("%w: match_threshold must be within [-1, 1], got %v", ErrInvalidConfig, c.MatchThreshold)
	}
	if c.DebounceSeconds < 0 {
		return fmt.Errorf("%w: debounce_seconds must not be negative", ErrInvalidConfig)
	}
	if c.ResetBatchSize <= 0 {
		return fmt.Errorf("%w: reset_batch_size must be positive", ErrInvalidConfig)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
