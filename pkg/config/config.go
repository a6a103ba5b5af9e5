// Package config loads the validator's optional YAML configuration file.
// The validator runs with sane defaults when no config file is present or
// named; nothing here is required for correctness.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the tunables a config file may override.
type Config struct {
	// TestTimeout bounds how long the runner waits for one test before
	// declaring it timed out.
	TestTimeout time.Duration `yaml:"test_timeout"`
	// Parallelism caps how many (plugin, test) pairs the runner dispatches
	// concurrently.
	Parallelism int `yaml:"parallelism"`
	// BlockSize overrides the ProcessingTest driver's default block size
	// (testcases.BufferSize), applied via testcases.SetBlockSize.
	BlockSize int `yaml:"block_size"`
	// ExtraSearchPaths are appended to the platform-default plugin bundle
	// search paths used by internal/discovery.
	ExtraSearchPaths []string `yaml:"extra_search_paths"`
}

// Default returns the configuration used when no file is loaded.
func Default() Config {
	return Config{
		TestTimeout: 10 * time.Second,
		Parallelism: 1,
		BlockSize:   512,
	}
}

// Load reads and parses a YAML config file, filling any field the file
// doesn't set from Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if cfg.TestTimeout <= 0 {
		cfg.TestTimeout = Default().TestTimeout
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = Default().Parallelism
	}
	if cfg.BlockSize <= 0 {
		cfg.BlockSize = Default().BlockSize
	}
	return cfg, nil
}
