package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))
	return file
}

func TestConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := DefaultConfig()
		assert.Equal(t, ":8090", cfg.HTTPAddr)
		assert.Equal(t, History{LogSize: 1000, ValueSize: 2000}, cfg.History)
		assert.Equal(t, Values{Min: 0, Max: 999}, cfg.Values)
		assert.Equal(t, AutoEmit{Enabled: false, Interval: 5 * time.Second}, cfg.AutoEmit)
	})

	t.Run("load overrides defaults", func(t *testing.T) {
		file := writeConfig(t, `
http_addr: ":9000"
values:
  max: 99
auto_emit:
  enabled: true
  interval: 100ms
`)
		cfg, err := LoadConfig(file)
		require.NoError(t, err)
		assert.Equal(t, ":9000", cfg.HTTPAddr)
		assert.Equal(t, Values{Min: 0, Max: 99}, cfg.Values)
		assert.Equal(t, AutoEmit{Enabled: true, Interval: 100 * time.Millisecond}, cfg.AutoEmit)
		assert.Equal(t, History{LogSize: 1000, ValueSize: 2000}, cfg.History)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("rejects empty values range", func(t *testing.T) {
		file := writeConfig(t, "values:\n  min: 10\n  max: 5\n")
		_, err := LoadConfig(file)
		require.ErrorContains(t, err, "values range is empty")
	})

	t.Run("rejects malformed file", func(t *testing.T) {
		file := writeConfig(t, "values: [")
		_, err := LoadConfig(file)
		require.ErrorContains(t, err, "failed to parse config file")
	})
}
