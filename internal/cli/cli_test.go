package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/gridwalk/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name           string
		args           []string
		env            map[string]string
		expectExit     bool
		expectErr      string
		expectedConfig *app.Config
		checkOutput    func(t *testing.T, output string)
	}{
		{
			name: "all flags",
			args: []string{"-puzzles", "/puzzles", "--log-level=DEBUG", "--log-format=json", "--max-steps=99"},
			expectedConfig: &app.Config{
				PuzzlePath: "/puzzles",
				LogLevel:   "debug",
				LogFormat:  "json",
				MaxSteps:   99,
			},
		},
		{
			name: "shorthand flag and defaults",
			args: []string{"-p", "/short"},
			expectedConfig: &app.Config{
				PuzzlePath: "/short",
				LogLevel:   "info",
				LogFormat:  "text",
			},
		},
		{
			name: "positional path",
			args: []string{"/positional"},
			expectedConfig: &app.Config{
				PuzzlePath: "/positional",
				LogLevel:   "info",
				LogFormat:  "text",
			},
		},
		{
			name: "environment defaults",
			args: []string{"/env"},
			env:  map[string]string{EnvLogLevel: "warn", EnvLogFormat: "json", EnvMaxSteps: "1000"},
			expectedConfig: &app.Config{
				PuzzlePath: "/env",
				LogLevel:   "warn",
				LogFormat:  "json",
				MaxSteps:   1000,
			},
		},
		{
			name: "flags override environment",
			args: []string{"--log-level=error", "--max-steps=7", "/env"},
			env:  map[string]string{EnvLogLevel: "warn", EnvMaxSteps: "1000"},
			expectedConfig: &app.Config{
				PuzzlePath: "/env",
				LogLevel:   "error",
				LogFormat:  "text",
				MaxSteps:   7,
			},
		},
		{
			name:       "help flag triggers clean exit",
			args:       []string{"-h"},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				assert.Contains(t, output, "Usage:")
			},
		},
		{
			name:       "no path prints usage",
			args:       nil,
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				assert.Contains(t, output, "PUZZLE_PATH")
			},
		},
		{
			name:      "error - unknown flag",
			args:      []string{"--nope"},
			expectErr: "flag provided but not defined",
		},
		{
			name:      "error - invalid log format",
			args:      []string{"--log-format=xml", "/p"},
			expectErr: "invalid log format",
		},
		{
			name:      "error - invalid log level",
			args:      []string{"--log-level=trace", "/p"},
			expectErr: "invalid log level",
		},
		{
			name:      "error - negative max steps",
			args:      []string{"--max-steps=-1", "/p"},
			expectErr: "must not be negative",
		},
		{
			name:      "error - non-numeric env max steps",
			args:      []string{"/p"},
			env:       map[string]string{EnvMaxSteps: "lots"},
			expectErr: EnvMaxSteps,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for _, key := range []string{EnvLogLevel, EnvLogFormat, EnvMaxSteps} {
				t.Setenv(key, tc.env[key])
			}
			out := &bytes.Buffer{}

			cfg, shouldExit, err := Parse(tc.args, out)

			if tc.expectErr != "" {
				var exitErr *ExitError
				require.ErrorAs(t, err, &exitErr)
				assert.Equal(t, 2, exitErr.Code)
				assert.Contains(t, exitErr.Message, tc.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectExit, shouldExit)
			if tc.checkOutput != nil {
				tc.checkOutput(t, out.String())
			}
			if tc.expectedConfig != nil {
				if diff := cmp.Diff(tc.expectedConfig, cfg); diff != "" {
					t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte(EnvLogLevel+"=debug\n"+EnvMaxSteps+"=42\n"), 0o600))

	t.Setenv(EnvLogLevel, "")
	require.NoError(t, os.Unsetenv(EnvLogLevel))
	t.Setenv(EnvMaxSteps, "7")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "debug", os.Getenv(EnvLogLevel))
	assert.Equal(t, "7", os.Getenv(EnvMaxSteps), "existing variables are not overridden")

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}
