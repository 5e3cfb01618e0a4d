package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/specialistvlad/gridwalk/internal/app"
	"github.com/specialistvlad/gridwalk/internal/cli"
	"github.com/specialistvlad/gridwalk/internal/hcl"
)

// main is the entrypoint for the gridwalk application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := cli.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// The real main function handles errors and exit codes.
	if err := run(context.Background(), os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW, errW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// Bounds violations inside the grid engine panic; report them as a
	// failed run instead of a stack trace.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("puzzle run panicked: %v", r)
		}
	}()

	gridwalkApp := app.NewApp(outW, errW, appConfig, hcl.NewLoader())
	_, err = gridwalkApp.Run(ctx)
	return err
}
