package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"equity-backtest/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Strategy StrategyConfig `yaml:"strategy"`
	Data     DataConfig     `yaml:"data"`
	Log      LogConfig      `yaml:"log"`

	// Output is where the CLI writes the ledger CSV.
	Output string `yaml:"output"`
}

type StrategyConfig struct {
	Name   string         `yaml:"name"`
	Params map[string]any `yaml:"params"`
}

// DataConfig selects where bar history comes from.
// type "file" reads per-symbol JSON files from Dir;
// type "synthetic" generates a deterministic random walk.
type DataConfig struct {
	Type       string  `yaml:"type"`
	Dir        string  `yaml:"dir"`
	Seed       int64   `yaml:"seed"`
	StartPrice float64 `yaml:"start_price"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

const (
	DataTypeFile      = "file"
	DataTypeSynthetic = "synthetic"
)

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.ApplyEnv()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads config without defaults or validation.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	// Data dir paths are interpreted relative to the config file when they
	// don't resolve from the working directory.
	if c.Data.Dir != "" && !filepath.IsAbs(c.Data.Dir) {
		if _, statErr := os.Stat(c.Data.Dir); statErr != nil {
			cand := filepath.Join(filepath.Dir(path), c.Data.Dir)
			if _, statErr := os.Stat(cand); statErr == nil {
				c.Data.Dir = cand
			}
		}
	}
	return &c, nil
}

// Default returns the configuration used when no file is given: the
// buy-and-hold reference strategy on synthetic data.
func Default() *Config {
	c := &Config{
		Strategy: StrategyConfig{Name: "buyhold"},
		Data:     DataConfig{Type: DataTypeSynthetic, Seed: 1},
		Log:      LogConfig{Level: "info"},
	}
	c.ApplyEnv()
	return c
}

// ApplyEnv overlays environment overrides onto the loaded file. The
// entrypoints load .env first, so either source works.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("BACKTEST_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("BACKTEST_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("BACKTEST_DATA_DIR"); v != "" {
		c.Data.Dir = v
	}
	if v := os.Getenv("BACKTEST_DATA_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Data.Seed = seed
		}
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Strategy.Name == "" {
		return errors.New("strategy.name is required")
	}
	switch c.Data.Type {
	case DataTypeFile:
		if c.Data.Dir == "" {
			return errors.New("data.dir is required for file data")
		}
	case DataTypeSynthetic:
		// Seed 0 is allowed; it is still deterministic.
	case "":
		return errors.New("data.type is required")
	default:
		return fmt.Errorf("unsupported data.type: %q", c.Data.Type)
	}
	if res, ok := c.Strategy.Params["resolution"].(string); ok {
		if _, err := model.ParseResolution(res); err != nil {
			return fmt.Errorf("strategy params invalid: %w", err)
		}
	}
	return nil
}
