package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"face-logbook/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(config.EnvFileVar, "")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 0.60, cfg.MatchThreshold)
	assert.Equal(t, 30, cfg.DebounceSeconds)
	assert.Equal(t, 30*time.Second, cfg.Debounce())
	assert.Equal(t, "Asia/Kolkata", cfg.Timezone)
	assert.Equal(t, 200, cfg.ResetBatchSize)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(config.EnvFileVar, "")
	t.Setenv("FACELOG_MATCH_THRESHOLD", "0.72")
	t.Setenv("FACELOG_DEBOUNCE_SECONDS", "45")
	t.Setenv("FACELOG_TIMEZONE", "UTC")
	t.Setenv("FACELOG_OUTBOX_POLL_INTERVAL", "10s")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 0.72, cfg.MatchThreshold)
	assert.Equal(t, 45, cfg.DebounceSeconds)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, 10*time.Second, cfg.OutboxPollInterval)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "facelog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("debounce_seconds: 60\nreset_batch_size: 50\n"), 0o600))
	t.Setenv(config.EnvFileVar, path)
	t.Setenv("FACELOG_RESET_BATCH_SIZE", "75")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.DebounceSeconds)
	assert.Equal(t, 75, cfg.ResetBatchSize)
}

func TestValidate(t *testing.T) {
	t.Run("threshold out of range", func(t *testing.T) {
		cfg := config.New()
		cfg.MatchThreshold = 1.5
		assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig)
	})

	t.Run("unknown timezone", func(t *testing.T) {
		cfg := config.New()
		cfg.Timezone = "Nowhere/Town"
		assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig)
	})

	t.Run("non-positive batch size", func(t *testing.T) {
		cfg := config.New()
		cfg.ResetBatchSize = 0
		assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig)
	})
}
