// Package config holds the server tuning knobs and their loaders
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variable names recognized after LoadEnv
const (
	EnvConfigFile = "AVIATOR_CONFIG"
	EnvLogLevel   = "AVIATOR_LOG_LEVEL"
	EnvLogFile    = "AVIATOR_LOG_FILE"
)

// Config tunes the round engine. The wire protocol and the explosion
// formula are fixed and not configurable.
type Config struct {
	// Capacity is the number of player slots
	Capacity int

	// BettingWindow is how long the betting phase stays open
	BettingWindow time.Duration

	// TickInterval is the cadence of multiplier ticks during flight
	TickInterval time.Duration

	LogLevel string
	LogFile  string
}

// fileConfig is the YAML shape of the tuning file; durations are written as
// Go duration strings ("10s", "100ms")
type fileConfig struct {
	Capacity      *int   `yaml:"capacity"`
	BettingWindow string `yaml:"betting_window"`
	TickInterval  string `yaml:"tick_interval"`
	LogLevel      string `yaml:"log_level"`
	LogFile       string `yaml:"log_file"`
}

// Default returns the standard game tuning: 10 slots, a 10 second betting
// window and a 100 ms tick.
func Default() Config {
	return Config{
		Capacity:      10,
		BettingWindow: 10 * time.Second,
		TickInterval:  100 * time.Millisecond,
		LogLevel:      "INFO",
	}
}

// LoadEnv loads a .env file if one is present. A missing file is not an
// error; explicit environment variables always win.
func LoadEnv(path string) {
	_ = godotenv.Load(path)
}

// Load reads a YAML tuning file over the defaults and applies environment
// overrides. An empty path skips the file and returns defaults plus
// overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
		if err := fc.apply(&cfg); err != nil {
			return cfg, err
		}
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.LogFile = v
	}

	return cfg, cfg.validate()
}

// apply folds the file values over the defaults
func (fc fileConfig) apply(cfg *Config) error {
	if fc.Capacity != nil {
		cfg.Capacity = *fc.Capacity
	}
	if fc.BettingWindow != "" {
		d, err := time.ParseDuration(fc.BettingWindow)
		if err != nil {
			return fmt.Errorf("invalid betting_window: %w", err)
		}
		cfg.BettingWindow = d
	}
	if fc.TickInterval != "" {
		d, err := time.ParseDuration(fc.TickInterval)
		if err != nil {
			return fmt.Errorf("invalid tick_interval: %w", err)
		}
		cfg.TickInterval = d
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.LogFile != "" {
		cfg.LogFile = fc.LogFile
	}
	return nil
}

func (c Config) validate() error {
	if c.Capacity < 1 {
		return fmt.Errorf("capacity must be at least 1, got %d", c.Capacity)
	}
	if c.BettingWindow <= 0 {
		return fmt.Errorf("betting_window must be positive, got %s", c.BettingWindow)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive, got %s", c.TickInterval)
	}
	return nil
}
