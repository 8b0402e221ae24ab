package cmd

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/phroun/illumiterm"
	"github.com/phroun/illumiterm/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func isolate(t *testing.T, frontend string) {
	t.Helper()
	t.Setenv(config.PathEnv, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("ILLUMITERM_FRONTEND", frontend)
	t.Setenv("ILLUMITERM_LOGGING_LEVEL", "error")
	t.Setenv("ILLUMITERM_LOGGING_OUTPUT", "stderr")
}

func execute(t *testing.T, frontends map[string]Frontend, args ...string) (Result, error) {
	t.Helper()
	var result Result
	root := NewRootCmd(frontends, &result)
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return result, err
}

// capture returns a frontend that records the invocation and reports status
func capture(got **illumiterm.Invocation, status int) Frontend {
	return func(_ context.Context, inv *illumiterm.Invocation, _ *config.Config, _ *zap.Logger) error {
		*got = inv
		inv.Report(status)
		return nil
	}
}

func TestRootCmdPassesCommand(t *testing.T) {
	isolate(t, config.FrontendCLI)

	var inv *illumiterm.Invocation
	result, err := execute(t, map[string]Frontend{
		config.FrontendCLI: capture(&inv, 7),
	}, "--cmd", "echo hi")
	require.NoError(t, err)
	require.NotNil(t, inv)

	cmdline, ok := inv.Command()
	assert.True(t, ok)
	assert.Equal(t, "echo hi", cmdline)
	assert.Equal(t, 7, result.Status)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, cwd, inv.Cwd())
}

func TestRootCmdEmptyCommandIsStillACommand(t *testing.T) {
	isolate(t, config.FrontendCLI)

	var inv *illumiterm.Invocation
	_, err := execute(t, map[string]Frontend{
		config.FrontendCLI: capture(&inv, 0),
	}, "--cmd", "")
	require.NoError(t, err)

	cmdline, ok := inv.Command()
	assert.True(t, ok)
	assert.Empty(t, cmdline)
	assert.Equal(t, []string{illumiterm.CommandShell, "-c", ""}, illumiterm.BuildArgv(inv))
}

func TestRootCmdWithoutCommandUsesShell(t *testing.T) {
	isolate(t, config.FrontendCLI)
	t.Setenv("SHELL", "/bin/zsh")

	var inv *illumiterm.Invocation
	result, err := execute(t, map[string]Frontend{
		config.FrontendCLI: capture(&inv, 0),
	})
	require.NoError(t, err)

	_, ok := inv.Command()
	assert.False(t, ok)
	assert.Equal(t, []string{"/bin/zsh"}, illumiterm.BuildArgv(inv))
	assert.Equal(t, 0, result.Status)
}

func TestRootCmdSelectsConfiguredFrontend(t *testing.T) {
	isolate(t, config.FrontendGTK)

	var used string
	frontend := func(name string) Frontend {
		return func(_ context.Context, inv *illumiterm.Invocation, cfg *config.Config, _ *zap.Logger) error {
			used = name
			assert.Equal(t, name, cfg.Frontend)
			inv.Report(0)
			return nil
		}
	}
	_, err := execute(t, map[string]Frontend{
		config.FrontendGTK: frontend(config.FrontendGTK),
		config.FrontendCLI: frontend(config.FrontendCLI),
	})
	require.NoError(t, err)
	assert.Equal(t, config.FrontendGTK, used)
}

func TestRootCmdUnreportedSessionExitsWithOne(t *testing.T) {
	isolate(t, config.FrontendCLI)

	boom := errors.New("boom")
	result, err := execute(t, map[string]Frontend{
		config.FrontendCLI: func(context.Context, *illumiterm.Invocation, *config.Config, *zap.Logger) error {
			return boom
		},
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, result.Status)
}

func TestRootCmdErrors(t *testing.T) {
	tests := []struct {
		name     string
		frontend string
		args     []string
	}{
		{"missing frontend", config.FrontendGTK, nil},
		{"invalid frontend", "qt", nil},
		{"positional args", config.FrontendCLI, []string{"ls"}},
		{"unknown flag", config.FrontendCLI, []string{"--verbose"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t, tt.frontend)
			called := false
			result, err := execute(t, map[string]Frontend{
				config.FrontendCLI: func(_ context.Context, inv *illumiterm.Invocation, _ *config.Config, _ *zap.Logger) error {
					called = true
					inv.Report(0)
					return nil
				},
			}, tt.args...)
			assert.Error(t, err)
			assert.False(t, called)
			assert.Equal(t, 1, result.Status)
		})
	}
}

func TestFont(t *testing.T) {
	cfg := config.Default()
	cfg.Font.Family = "DejaVu Sans Mono"
	cfg.Font.Size = 11

	assert.Equal(t, illumiterm.FontDescription{Family: "DejaVu Sans Mono", Size: 11}, Font(cfg))
}
