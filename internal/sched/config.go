package sched

import (
	"errors"
	"io/fs"
	"os"

	yaml "github.com/goccy/go-yaml"
)

// Config mirrors config.yml
type Config struct {
	Benchmark       string       `yaml:"benchmark"`        // Richards (by default)
	Iterations      int          `yaml:"iterations"`       // 1 (by default)
	InnerIterations int          `yaml:"inner_iterations"` // 1 (by default)
	MaxDispatches   int          `yaml:"max_dispatches"`   // 1000000 (by default)
	Trace           bool         `yaml:"trace"`            // print the dispatch trace
	TraceCSV        string       `yaml:"trace_csv"`        // CSV event log path, empty = off
	Logger          LoggerConfig `yaml:"logger"`
}

// LoggerConfig selects the zap level and encoder.
type LoggerConfig struct {
	Level    string `yaml:"level"`    // info (by default)
	Encoding string `yaml:"encoding"` // console or json
}

// DefaultConfig is used when no config file is found.
func DefaultConfig() Config {
	return Config{
		Benchmark:       "Richards",
		Iterations:      1,
		InnerIterations: 1,
		MaxDispatches:   1_000_000,
		Logger: LoggerConfig{
			Level:    "info",
			Encoding: "console",
		},
	}
}

// Load reads YAML and overrides defaults; empty path or missing file = defaults only
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), err
	}
	cfg.clamp()
	return cfg, nil
}

// sanity clamps
func (c *Config) clamp() {
	def := DefaultConfig()
	if c.Benchmark == "" {
		c.Benchmark = def.Benchmark
	}
	if c.Iterations <= 0 {
		c.Iterations = def.Iterations
	}
	if c.InnerIterations <= 0 {
		c.InnerIterations = def.InnerIterations
	}
	if c.MaxDispatches <= 0 {
		c.MaxDispatches = def.MaxDispatches
	}
	if c.Logger.Level == "" {
		c.Logger.Level = def.Logger.Level
	}
	if c.Logger.Encoding != "json" {
		c.Logger.Encoding = def.Logger.Encoding
	}
}
