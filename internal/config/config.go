// Package config loads the CLI configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Digits   uint64        `yaml:"digits"`    // decimal places to compute
	Workers  int           `yaml:"workers"`   // 0 means runtime.NumCPU()
	LogLevel string        `yaml:"log_level"` // "debug", "info", "warn", "error"
	Bench    BenchConfig   `yaml:"bench"`
	Metrics  MetricsConfig `yaml:"metrics"`
}

// BenchConfig configures the benchmark harness.
type BenchConfig struct {
	Keypoints    []uint64 `yaml:"keypoints"`     // digit counts to measure
	WorkerCounts []int    `yaml:"worker_counts"` // worker counts to measure at every keypoint
	Samples      int      `yaml:"samples"`       // runs per measurement
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Addr string `yaml:"addr"` // e.g. ":9090"; empty disables the endpoint
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads a YAML configuration file, fills in defaults and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Digits == 0 {
		cfg.Digits = 1000
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if len(cfg.Bench.Keypoints) == 0 {
		// 100..900 terms, seven digits each.
		cfg.Bench.Keypoints = []uint64{700, 2100, 3500, 4900, 6300}
	}
	if len(cfg.Bench.WorkerCounts) == 0 {
		cfg.Bench.WorkerCounts = []int{1, runtime.NumCPU()}
	}
	if cfg.Bench.Samples == 0 {
		cfg.Bench.Samples = 10
	}
}

// Validate checks the configuration for values the engine would reject.
func (c *Config) Validate() error {
	if c.Digits == 0 {
		return errors.New("digits must be positive")
	}
	if c.Workers < 1 {
		return errors.New("workers must be positive")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	for _, d := range c.Bench.Keypoints {
		if d == 0 {
			return errors.New("bench keypoints must be positive")
		}
	}
	for _, w := range c.Bench.WorkerCounts {
		if w < 1 {
			return errors.New("bench worker counts must be positive")
		}
	}
	if c.Bench.Samples < 1 {
		return errors.New("bench samples must be positive")
	}

	return nil
}
