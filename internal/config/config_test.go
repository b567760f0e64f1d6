package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, `
strategy:
  name: buyhold
  params:
    symbol: SPY
    weight: 0.5
data:
  type: synthetic
  seed: 42
log:
  level: debug
output: results/ledger.csv
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "buyhold", cfg.Strategy.Name)
	assert.Equal(t, "SPY", cfg.Strategy.Params["symbol"])
	assert.Equal(t, int64(42), cfg.Data.Seed)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "results/ledger.csv", cfg.Output)
}

func TestLoadRequiresStrategyName(t *testing.T) {
	path := writeConfig(t, `
data:
  type: synthetic
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strategy.name")
}

func TestLoadRejectsUnknownDataType(t *testing.T) {
	path := writeConfig(t, `
strategy:
  name: buyhold
data:
  type: bloomberg
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadFileDataRequiresDir(t *testing.T) {
	path := writeConfig(t, `
strategy:
  name: buyhold
data:
  type: file
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data.dir")
}

func TestLoadRejectsBadResolutionParam(t *testing.T) {
	path := writeConfig(t, `
strategy:
  name: buyhold
  params:
    resolution: tick
data:
  type: synthetic
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("BACKTEST_LOG_LEVEL", "warn")
	t.Setenv("BACKTEST_DATA_SEED", "99")

	path := writeConfig(t, `
strategy:
  name: buyhold
data:
  type: synthetic
  seed: 1
log:
  level: info
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, int64(99), cfg.Data.Seed)
}

func TestDataDirResolvesRelativeToConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "history"), 0o755))
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
strategy:
  name: buyhold
data:
  type: file
  dir: history
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "history"), cfg.Data.Dir)
}

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "buyhold", cfg.Strategy.Name)
	assert.Equal(t, DataTypeSynthetic, cfg.Data.Type)
}
