package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/specialistvlad/gridwalk/internal/app"
)

// Environment variables that provide flag defaults.
const (
	EnvLogLevel  = "GRIDWALK_LOG_LEVEL"
	EnvLogFormat = "GRIDWALK_LOG_FORMAT"
	EnvMaxSteps  = "GRIDWALK_MAX_STEPS"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding ones already set. Missing files are not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				slog.Debug("No .env file found.", "path", path)
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		slog.Debug("Loaded .env file.", "path", path)
	}
	return nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("gridwalk", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
gridwalk - solves grid puzzles declared in HCL files.

Usage:
  gridwalk [options] [PUZZLE_PATH]

Arguments:
  PUZZLE_PATH
    Path to a single .hcl file or a directory containing .hcl files.

Environment:
  GRIDWALK_LOG_LEVEL, GRIDWALK_LOG_FORMAT, GRIDWALK_MAX_STEPS
    Defaults for the matching options. A .env file in the working
    directory is read as well.

Options:
`)
		flagSet.PrintDefaults()
	}

	defaultMaxSteps := 0
	if raw, ok := os.LookupEnv(EnvMaxSteps); ok && raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid %s: %v", EnvMaxSteps, err)}
		}
		defaultMaxSteps = n
	}

	puzzlesFlag := flagSet.String("puzzles", "", "Path to the puzzle file or directory.")
	pFlag := flagSet.String("p", "", "Path to the puzzle file or directory (shorthand).")
	logFormatFlag := flagSet.String("log-format", envOr(EnvLogFormat, "text"), "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", envOr(EnvLogLevel, "info"), "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	maxStepsFlag := flagSet.Int("max-steps", defaultMaxSteps, "Step ceiling for walks without their own max_steps. 0 uses the grid-derived default.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *puzzlesFlag != "" {
		path = *puzzlesFlag
	} else if *pFlag != "" {
		path = *pFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Puzzle path determined.", "path", path)

	if path == "" {
		slog.Debug("No puzzle path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	config, err := app.NewConfig(app.Config{
		PuzzlePath: path,
		LogFormat:  strings.ToLower(*logFormatFlag),
		LogLevel:   strings.ToLower(*logLevelFlag),
		MaxSteps:   *maxStepsFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
