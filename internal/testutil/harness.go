package testutil

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/specialistvlad/gridwalk/internal/app"
	"github.com/specialistvlad/gridwalk/internal/hcl"
	"github.com/stretchr/testify/require"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Dir       string
	Output    string
	LogOutput string
	Report    *app.Report
	Err       error
}

// RunPuzzles writes files into a temp dir and runs the app over it with
// debug logging.
func RunPuzzles(t *testing.T, files map[string]string) *HarnessResult {
	t.Helper()
	return RunPuzzlesWithContext(context.Background(), t, files)
}

// RunPuzzlesWithContext is RunPuzzles with a caller-provided context.
func RunPuzzlesWithContext(ctx context.Context, t *testing.T, files map[string]string) *HarnessResult {
	t.Helper()

	dir := WriteFiles(t, files)
	cfg, err := app.NewConfig(app.Config{
		PuzzlePath: dir,
		LogLevel:   "debug",
		LogFormat:  "text",
	})
	require.NoError(t, err)

	out, logs := &bytes.Buffer{}, &bytes.Buffer{}
	report, runErr := app.NewApp(out, logs, cfg, hcl.NewLoader()).Run(ctx)

	if os.Getenv("GRIDWALK_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
	}

	return &HarnessResult{
		Dir:       dir,
		Output:    out.String(),
		LogOutput: logs.String(),
		Report:    report,
		Err:       runErr,
	}
}
