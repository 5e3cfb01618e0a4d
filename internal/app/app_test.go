package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/gridwalk/internal/grid"
	"github.com/specialistvlad/gridwalk/internal/hcl"
	"github.com/specialistvlad/gridwalk/internal/walk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const patrol = `....#.....
.........#
..........
..#.......
.......#..
..........
.#..^.....
........#.
#.........
......#...
`

// setupAppTest writes files into a temp dir and returns an App pointed at it
// together with its answer and log buffers.
func setupAppTest(t *testing.T, files map[string]string) (*App, *bytes.Buffer, *bytes.Buffer, string) {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}

	cfg, err := NewConfig(Config{PuzzlePath: dir, LogFormat: "text", LogLevel: "debug"})
	require.NoError(t, err)

	out, logs := &bytes.Buffer{}, &bytes.Buffer{}
	testApp := NewApp(out, logs, cfg, hcl.NewLoader())

	t.Cleanup(func() {
		if os.Getenv("GRIDWALK_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})
	return testApp, out, logs, dir
}

func TestRun_ScanAndWalk(t *testing.T) {
	testApp, out, logs, dir := setupAppTest(t, map[string]string{
		"puzzles.hcl": `
scan "xmas" {
  grid = <<-EOT
    XMAS
    MM..
    A.A.
    S..S
  EOT
  pattern = "XMAS"
}

walk "guard" {
  input    = "patrol.txt"
  snapshot = "out/patrol.txt"
}
`,
		"patrol.txt": patrol,
	})

	report, err := testApp.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Walks, 1)

	want := &Report{
		Scans: []ScanResult{{Name: "xmas", Count: 3}},
		Walks: []WalkResult{{
			Name:         "guard",
			Outcome:      walk.Exited,
			Visited:      41,
			Steps:        report.Walks[0].Steps,
			SnapshotPath: filepath.Join(dir, "out", "patrol.txt"),
		}},
	}
	if diff := cmp.Diff(want, report); diff != "" {
		t.Errorf("Run() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "scan \"xmas\": 3\nwalk \"guard\": 41 (exited)\n", out.String())

	snapshot, err := os.ReadFile(filepath.Join(dir, "out", "patrol.txt"))
	require.NoError(t, err)
	assert.Equal(t, 41, strings.Count(string(snapshot), "X"))
	assert.NotContains(t, string(snapshot), "^")

	assert.Contains(t, logs.String(), "run_id="+testApp.RunID())
	assert.Contains(t, logs.String(), "puzzle=guard")
	assert.Contains(t, logs.String(), "Match found.")
}

func TestRun_LoopedWalkFails(t *testing.T) {
	testApp, out, _, dir := setupAppTest(t, map[string]string{
		"loop.hcl": `
walk "trap" {
  grid     = ".#...\n....#\n.^...\n#....\n...#.\n"
  snapshot = "trap.txt"
}
`,
	})

	report, err := testApp.Run(context.Background())
	require.ErrorIs(t, err, walk.ErrLooped)
	assert.Contains(t, err.Error(), `walk "trap"`)

	require.Len(t, report.Walks, 1)
	assert.Equal(t, walk.Looped, report.Walks[0].Outcome)
	assert.Equal(t, 8, report.Walks[0].Visited)
	assert.Equal(t, "walk \"trap\": 8 (looped)\n", out.String())

	_, statErr := os.Stat(filepath.Join(dir, "trap.txt"))
	assert.NoError(t, statErr, "snapshot is written even when the walk loops")
}

func TestRun_MaxStepsFallback(t *testing.T) {
	testApp, _, _, _ := setupAppTest(t, map[string]string{
		"guard.hcl": `
walk "guard" {
  input = "patrol.txt"
}
`,
		"patrol.txt": patrol,
	})
	testApp.config.MaxSteps = 5

	report, err := testApp.Run(context.Background())
	require.ErrorIs(t, err, walk.ErrStepLimit)
	require.Len(t, report.Walks, 1)
	assert.Equal(t, 5, report.Walks[0].Steps)
}

func TestRun_InvalidGrids(t *testing.T) {
	testCases := []struct {
		name   string
		hcl    string
		target any
	}{
		{
			name:   "unknown walk symbol",
			hcl:    "walk \"bad\" {\n  grid = \".^.\\n.?.\\n\"\n}\n",
			target: new(*grid.MalformedInputError),
		},
		{
			name:   "ragged scan grid",
			hcl:    "scan \"bad\" {\n  grid    = \"XMAS\\nXM\\n\"\n  pattern = \"XMAS\"\n}\n",
			target: new(*grid.MalformedInputError),
		},
		{
			name:   "two agents",
			hcl:    "walk \"bad\" {\n  grid = \"^.^\\n\"\n}\n",
			target: new(*walk.MultipleAgentError),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			testApp, out, _, _ := setupAppTest(t, map[string]string{"bad.hcl": tc.hcl})

			_, err := testApp.Run(context.Background())
			require.Error(t, err)
			assert.ErrorAs(t, err, tc.target)
			assert.Empty(t, out.String())
		})
	}
}

func TestRun_MissingAgent(t *testing.T) {
	testApp, _, _, _ := setupAppTest(t, map[string]string{
		"bad.hcl": "walk \"empty\" {\n  grid = \"...\\n.#.\\n\"\n}\n",
	})

	_, err := testApp.Run(context.Background())
	require.ErrorIs(t, err, walk.ErrMissingAgent)
}

func TestRun_AnchorMismatch(t *testing.T) {
	testApp, _, _, _ := setupAppTest(t, map[string]string{
		"bad.hcl": "scan \"bad\" {\n  grid    = \"XMAS\"\n  pattern = \"XMAS\"\n  anchor  = \"S\"\n}\n",
	})

	_, err := testApp.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pattern must start with the anchor symbol")
}

func TestRun_LoadError(t *testing.T) {
	testApp, _, _, _ := setupAppTest(t, nil)

	_, err := testApp.Run(context.Background())
	require.ErrorIs(t, err, hcl.ErrNoPuzzleFiles)
}

func TestNewApp_JSONLogs(t *testing.T) {
	cfg, err := NewConfig(Config{PuzzlePath: "x", LogFormat: "json", LogLevel: "info"})
	require.NoError(t, err)

	logs := &bytes.Buffer{}
	testApp := NewApp(&bytes.Buffer{}, logs, cfg, hcl.NewLoader())
	testApp.logger.Info("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, testApp.RunID(), entry["run_id"])
}

func TestNewConfig(t *testing.T) {
	valid := Config{PuzzlePath: "p", LogFormat: "text", LogLevel: "info"}

	_, err := NewConfig(valid)
	require.NoError(t, err)

	for name, mutate := range map[string]func(*Config){
		"missing path":   func(c *Config) { c.PuzzlePath = "" },
		"bad format":     func(c *Config) { c.LogFormat = "xml" },
		"bad level":      func(c *Config) { c.LogLevel = "trace" },
		"negative steps": func(c *Config) { c.MaxSteps = -1 },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := valid
			mutate(&cfg)
			_, err := NewConfig(cfg)
			assert.Error(t, err)
		})
	}
}
