package app

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/specialistvlad/gridwalk/internal/config"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	loader config.Loader
	config *Config
	runID  string
}

// NewApp wires an App. Answers are printed to outW and logs go to logW.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader) *App {
	runID := uuid.NewString()
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW).With("run_id", runID)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		loader: loader,
		config: cfg,
		runID:  runID,
	}
}

// RunID identifies this App's run in its logs.
func (a *App) RunID() string {
	return a.runID
}
