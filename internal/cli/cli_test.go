package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/substationdsl/internal/app"
	"github.com/vk/substationdsl/internal/dslerr"
	"github.com/vk/substationdsl/internal/export"
	"github.com/vk/substationdsl/internal/ir"
)

func TestParse(t *testing.T) {
	t.Parallel()

	settings := filepath.Join(t.TempDir(), "subdsl.hcl")
	require.NoError(t, os.WriteFile(settings, []byte(`
log {
  level  = "debug"
  format = "json"
}
validate {
  strict = true
}
output {
  format = "yaml"
}
`), 0o600))

	testCases := []struct {
		name           string
		args           []string
		expectExit     bool
		expectErr      string
		expectedConfig *app.Config
		checkOutput    func(t *testing.T, output string)
	}{
		{
			name: "check with defaults",
			args: []string{"check", "station.sub"},
			expectedConfig: &app.Config{
				Command: app.CommandCheck, Path: "station.sub",
				LogLevel: "info", LogFormat: "text", OutputFormat: export.FormatJSON,
			},
		},
		{
			name: "global flags",
			args: []string{"--log-level=debug", "--log-format", "json", "--strict", "inspect", "plant/"},
			expectedConfig: &app.Config{
				Command: app.CommandInspect, Path: "plant/",
				LogLevel: "debug", LogFormat: "json", Strict: true, OutputFormat: export.FormatJSON,
			},
		},
		{
			name: "dump format flag",
			args: []string{"dump", "-f", "yaml", "station.sub"},
			expectedConfig: &app.Config{
				Command: app.CommandDump, Path: "station.sub",
				LogLevel: "info", LogFormat: "text", OutputFormat: export.FormatYAML,
			},
		},
		{
			name: "settings file",
			args: []string{"--config", settings, "dump", "station.sub"},
			expectedConfig: &app.Config{
				Command: app.CommandDump, Path: "station.sub",
				LogLevel: "debug", LogFormat: "json", Strict: true, OutputFormat: export.FormatYAML,
			},
		},
		{
			name: "flags override settings file",
			args: []string{"--config", settings, "--log-level", "error", "dump", "--format", "json", "station.sub"},
			expectedConfig: &app.Config{
				Command: app.CommandDump, Path: "station.sub",
				LogLevel: "error", LogFormat: "json", Strict: true, OutputFormat: export.FormatJSON,
			},
		},
		{
			name: "inspect kind filter",
			args: []string{"inspect", "--kind", "BUS,SHUNT_REACTOR", "-k", "LINE", "plant/"},
			expectedConfig: &app.Config{
				Command: app.CommandInspect, Path: "plant/",
				LogLevel: "info", LogFormat: "text", OutputFormat: export.FormatJSON,
				Kinds: []ir.Kind{ir.Bus, ir.ShuntReactor, ir.Line},
			},
		},
		{
			name: "grammar takes no path",
			args: []string{"grammar"},
			expectedConfig: &app.Config{
				Command:  app.CommandGrammar,
				LogLevel: "info", LogFormat: "text", OutputFormat: export.FormatJSON,
			},
		},
		{
			name:       "no arguments prints usage",
			args:       []string{},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				require.Contains(t, output, "Usage: subdsl")
				require.Contains(t, output, "check")
				require.Contains(t, output, "inspect")
			},
		},
		{
			name:       "help flag",
			args:       []string{"--help"},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				require.Contains(t, output, "Usage:")
			},
		},
		{name: "unknown flag", args: []string{"--workers=3", "check", "x.sub"}, expectErr: "unknown flag --workers"},
		{name: "missing path", args: []string{"check"}, expectErr: "expected"},
		{name: "invalid log level", args: []string{"--log-level=trace", "check", "x.sub"}, expectErr: "invalid log-level"},
		{name: "invalid log format", args: []string{"--log-format=xml", "check", "x.sub"}, expectErr: "invalid log-format"},
		{name: "invalid dump format", args: []string{"dump", "--format=toml", "x.sub"}, expectErr: "invalid output format"},
		{name: "unknown kind", args: []string{"inspect", "--kind=GENERATOR", "x.sub"}, expectErr: `must be one of "BUS"`},
		{name: "missing settings file", args: []string{"--config=/nonexistent/subdsl.hcl", "check", "x.sub"}, expectErr: "failed to read settings file"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// Arrange
			var out bytes.Buffer

			// Act
			cfg, shouldExit, err := Parse(tc.args, &out)

			// Assert
			if tc.expectErr != "" {
				require.Error(t, err)
				var exitErr *ExitError
				require.True(t, errors.As(err, &exitErr))
				assert.Equal(t, ExitUsage, exitErr.Code)
				assert.Contains(t, exitErr.Message, tc.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectExit, shouldExit)
			if tc.checkOutput != nil {
				tc.checkOutput(t, out.String())
			}
			if diff := cmp.Diff(tc.expectedConfig, cfg); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAsExitError(t *testing.T) {
	semantic := dslerr.NewSemantic(dslerr.CodeBreakerUnused, "Breaker %s is not connected.", "k1")
	syntax := &dslerr.SyntaxError{Message: "unexpected token", Line: 1, Column: 2}

	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "exit error kept", err: &ExitError{Code: ExitUsage, Message: "bad"}, expected: ExitUsage},
		{name: "syntax", err: fmt.Errorf("a.sub: %w", syntax), expected: ExitSyntax},
		{name: "semantic", err: fmt.Errorf("a.sub: %w", semantic), expected: ExitSemantic},
		{name: "joined prefers syntax", err: errors.Join(semantic, syntax), expected: ExitSyntax},
		{name: "other", err: errors.New("disk on fire"), expected: ExitFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := AsExitError(tc.err)
			assert.Equal(t, tc.expected, got.Code)
			assert.Equal(t, tc.err.Error(), got.Message)
		})
	}
}
