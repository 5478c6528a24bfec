package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChipDepot/Bran/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8014, cfg.Port)
	assert.Equal(t, "http://dothing:8050", cfg.ExecutorBaseURL)
	assert.Equal(t, time.Duration(0), cfg.WatcherDelay)
	assert.Equal(t, 120*time.Second, cfg.WatcherInterval)
}

func TestLoad_OverridesFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("dothing", "http://executor:1234")
	t.Setenv("watcher_delay", "5")
	t.Setenv("watcher_interval", "30")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "http://executor:1234", cfg.ExecutorBaseURL)
	assert.Equal(t, 5*time.Second, cfg.WatcherDelay)
	assert.Equal(t, 30*time.Second, cfg.WatcherInterval)
}

func TestLoad_InvalidPortIsError(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	_, err := config.Load()
	assert.Error(t, err)
}
