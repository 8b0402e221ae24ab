package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every config location at an empty temp dir
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(PathEnv, "")
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, FrontendGTK, cfg.Frontend)
	assert.Equal(t, "Monospace", cfg.Font.Family)
	assert.Equal(t, 12.0, cfg.Font.Size)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.NoError(t, cfg.Validate())
}

func TestLoadWithoutFile(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileThenEnvironment(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, `
frontend = "cli"

[font]
family = "DejaVu Sans Mono"
size = 11.5

[logging]
level = "warn"
`)
	t.Setenv(PathEnv, path)
	t.Setenv("ILLUMITERM_FONT_SIZE", "14")
	t.Setenv("ILLUMITERM_LOGGING_DEVELOPMENT", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, FrontendCLI, cfg.Frontend)
	assert.Equal(t, "DejaVu Sans Mono", cfg.Font.Family)
	assert.Equal(t, 14.0, cfg.Font.Size)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, "stderr", cfg.Logging.Output)
}

func TestLoadXDGFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "illumiterm"), 0o700))
	writeConfig(t, filepath.Join(dir, "illumiterm"), `frontend = "cli"`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, FrontendCLI, cfg.Frontend)
}

func TestLoadYAMLFile(t *testing.T) {
	dir := isolate(t)
	confDir := filepath.Join(dir, "illumiterm")
	require.NoError(t, os.MkdirAll(confDir, 0o700))
	path := filepath.Join(confDir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`frontend: cli
font:
  family: Hack
logging:
  level: debug
`), 0o600))

	found, explicit := Path()
	assert.Equal(t, path, found)
	assert.False(t, explicit)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, FrontendCLI, cfg.Frontend)
	assert.Equal(t, "Hack", cfg.Font.Family)
	assert.Equal(t, 12.0, cfg.Font.Size)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestTOMLWinsOverYAML(t *testing.T) {
	dir := isolate(t)
	confDir := filepath.Join(dir, "illumiterm")
	require.NoError(t, os.MkdirAll(confDir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(confDir, "config.yml"), []byte("frontend: gtk\n"), 0o600))
	tomlPath := writeConfig(t, confDir, `frontend = "cli"`)

	found, _ := Path()
	assert.Equal(t, tomlPath, found)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, FrontendCLI, cfg.Frontend)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, dir string)
	}{
		{
			name: "explicit file missing",
			setup: func(t *testing.T, dir string) {
				t.Setenv(PathEnv, filepath.Join(dir, "nope.toml"))
			},
		},
		{
			name: "unknown key",
			setup: func(t *testing.T, dir string) {
				t.Setenv(PathEnv, writeConfig(t, dir, `colour = "red"`))
			},
		},
		{
			name: "malformed toml",
			setup: func(t *testing.T, dir string) {
				t.Setenv(PathEnv, writeConfig(t, dir, `frontend = `))
			},
		},
		{
			name: "unknown yaml key",
			setup: func(t *testing.T, dir string) {
				path := filepath.Join(dir, "config.yaml")
				require.NoError(t, os.WriteFile(path, []byte("colour: red\n"), 0o600))
				t.Setenv(PathEnv, path)
			},
		},
		{
			name: "bad frontend",
			setup: func(t *testing.T, dir string) {
				t.Setenv("ILLUMITERM_FRONTEND", "qt")
			},
		},
		{
			name: "bad font size",
			setup: func(t *testing.T, dir string) {
				t.Setenv("ILLUMITERM_FONT_SIZE", "big")
			},
		},
		{
			name: "zero font size",
			setup: func(t *testing.T, dir string) {
				t.Setenv("ILLUMITERM_FONT_SIZE", "0")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			tt.setup(t, dir)

			_, err := Load()
			assert.Error(t, err)
			assert.Equal(t, Default(), LoadOrDefault())
		})
	}
}

func TestPath(t *testing.T) {
	t.Setenv(PathEnv, "/etc/illumiterm.toml")
	path, explicit := Path()
	assert.Equal(t, "/etc/illumiterm.toml", path)
	assert.True(t, explicit)

	t.Setenv(PathEnv, "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	path, explicit = Path()
	assert.Equal(t, filepath.Join("/xdg", "illumiterm", "config.toml"), path)
	assert.False(t, explicit)

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/someone")
	path, _ = Path()
	assert.Equal(t, filepath.Join("/home/someone", ".config", "illumiterm", "config.toml"), path)
}
