package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	PuzzlePath string // .hcl file or directory

	LogFormat string
	LogLevel  string
	MaxSteps  int // step ceiling for walks that do not set their own; 0 is the simulator default
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.PuzzlePath == "" {
		return nil, errors.New("PuzzlePath is a required configuration field and cannot be empty")
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}
	if cfg.MaxSteps < 0 {
		return nil, fmt.Errorf("max steps must not be negative, got %d", cfg.MaxSteps)
	}
	return &cfg, nil
}
