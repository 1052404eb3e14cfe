package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jamesainslie/limits/pkg/limits/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, host.DefaultRoot(), cfg.Root)
	assert.Equal(t, DefaultExcludeDevices, cfg.Mounts.ExcludeDevices)
	assert.Equal(t, DefaultExcludeFSTypes, cfg.Mounts.ExcludeFSTypes)
	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
	assert.Equal(t, DefaultLogMaxSize, cfg.Logging.Rotation.MaxSize)
	assert.Equal(t, DefaultLogMaxBackups, cfg.Logging.Rotation.MaxBackups)
}

func TestLoad_FromFile(t *testing.T) {
	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, ".config", "limits")
	require.NoError(t, os.MkdirAll(configDir, 0o755))

	content := `
root: /srv
mounts:
  exclude_devices:
    - loop
    - ram
  exclude_fstypes:
    - squashfs
    - overlay
logging:
  level: debug
  rotation:
    max_size: 1MB
    max_backups: 7
`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(content), 0o644))

	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv", cfg.Root)
	assert.Equal(t, []string{"loop", "ram"}, cfg.Mounts.ExcludeDevices)
	assert.Equal(t, []string{"squashfs", "overlay"}, cfg.Mounts.ExcludeFSTypes)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 7, cfg.Logging.Rotation.MaxBackups)
}

func TestLoad_XDGConfigHome(t *testing.T) {
	xdgDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(xdgDir, "limits"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(xdgDir, "limits", "config.yaml"), []byte("root: /xdg\n"), 0o644))

	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", xdgDir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/xdg", cfg.Root)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("LIMITS_ROOT", "/from/env")
	t.Setenv("LIMITS_LOGGING_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/from/env", cfg.Root)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root: ~/data\n"), 0o644))

	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "data"), cfg.Root)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root: [unterminated\n"), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestCollectorOptions(t *testing.T) {
	cfg := &Config{
		Root: "/data",
		Mounts: MountsConfig{
			ExcludeDevices: []string{"loop"},
			ExcludeFSTypes: []string{"squashfs"},
		},
	}

	opts := cfg.CollectorOptions()
	assert.Equal(t, "/data", opts.Root)
	assert.Equal(t, []string{"loop"}, opts.ExcludeDevices)
	assert.Equal(t, []string{"squashfs"}, opts.ExcludeFSTypes)
}

func TestLoggingOptions(t *testing.T) {
	cfg := &Config{Logging: LoggingConfig{
		Level:    "debug",
		Path:     "/tmp/limits.log",
		Rotation: RotationConfig{MaxSize: "2MB", MaxBackups: 4},
	}}

	opts, err := cfg.LoggingOptions()
	require.NoError(t, err)

	assert.Equal(t, "debug", opts.Level)
	assert.Equal(t, "/tmp/limits.log", opts.Path)
	assert.Equal(t, int64(2_000_000), opts.Rotation.MaxSize)
	assert.Equal(t, 4, opts.Rotation.MaxBackups)
}

func TestLoggingOptions_InvalidSize(t *testing.T) {
	cfg := &Config{Logging: LoggingConfig{Rotation: RotationConfig{MaxSize: "lots"}}}

	_, err := cfg.LoggingOptions()
	assert.Error(t, err)
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/x")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x"), got)

	got, err = ExpandPath("/abs")
	require.NoError(t, err)
	assert.Equal(t, "/abs", got)
}

func TestConfigDir(t *testing.T) {
	assert.Equal(t, "limits", filepath.Base(ConfigDir()))
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "limits", "config.yaml")

	created, err := WriteDefault(path)
	require.NoError(t, err)
	assert.True(t, created)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultExcludeDevices, cfg.Mounts.ExcludeDevices)
	assert.Equal(t, DefaultExcludeFSTypes, cfg.Mounts.ExcludeFSTypes)
	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
	assert.Equal(t, DefaultLogMaxBackups, cfg.Logging.Rotation.MaxBackups)

	created, err = WriteDefault(path)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, filepath.Join(ConfigDir(), "config.yaml"), ConfigPath())
}
