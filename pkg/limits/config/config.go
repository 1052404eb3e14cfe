package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/dustin/go-humanize"
	"github.com/jamesainslie/limits/pkg/limits/collector"
	"github.com/jamesainslie/limits/pkg/limits/host"
	"github.com/jamesainslie/limits/pkg/limits/logging"
	"github.com/spf13/viper"
)

// RotationConfig configures log file rotation.
type RotationConfig struct {
	MaxSize    string `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// LoggingConfig configures application logging.
type LoggingConfig struct {
	Level      string            `mapstructure:"level"`
	Path       string            `mapstructure:"path"`
	Rotation   RotationConfig    `mapstructure:"rotation"`
	Components map[string]string `mapstructure:"components"`
}

// MountsConfig selects which mounts are treated as pseudo filesystems.
type MountsConfig struct {
	ExcludeDevices []string `mapstructure:"exclude_devices"`
	ExcludeFSTypes []string `mapstructure:"exclude_fstypes"`
}

// Config represents the application configuration.
type Config struct {
	// Root is the path whose filesystem limits are reported.
	Root    string        `mapstructure:"root"`
	Mounts  MountsConfig  `mapstructure:"mounts"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// Load loads configuration from the default locations and environment.
// Config file locations (in order of precedence):
//   - $XDG_CONFIG_HOME/limits/config.yaml
//   - $HOME/.config/limits/config.yaml
//
// Environment variables are prefixed with LIMITS_ (e.g. LIMITS_ROOT,
// LIMITS_LOGGING_LEVEL). A missing config file is not an error.
func Load() (*Config, error) {
	return load(newViper(""))
}

// LoadFile loads configuration from an explicit file. The file must exist.
func LoadFile(path string) (*Config, error) {
	return load(newViper(path))
}

func newViper(file string) *viper.Viper {
	v := viper.New()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
			v.AddConfigPath(filepath.Join(xdgConfigHome, "limits"))
		}
		if homeDir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".config", "limits"))
		}
	}

	v.SetEnvPrefix("LIMITS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	SetDefaults(v)
	return v
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("root", host.DefaultRoot())
	v.SetDefault("mounts.exclude_devices", DefaultExcludeDevices)
	v.SetDefault("mounts.exclude_fstypes", DefaultExcludeFSTypes)

	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.path", "") // Empty means use logging.DefaultLogPath
	v.SetDefault("logging.rotation.max_size", DefaultLogMaxSize)
	v.SetDefault("logging.rotation.max_backups", DefaultLogMaxBackups)
	v.SetDefault("logging.components", map[string]string{})
}

func load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is acceptable; we use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	root, err := ExpandPath(cfg.Root)
	if err != nil {
		return nil, err
	}
	cfg.Root = root

	return &cfg, nil
}

// CollectorOptions converts the configuration into collector options.
func (c *Config) CollectorOptions() collector.Options {
	return collector.Options{
		Root:           c.Root,
		ExcludeDevices: c.Mounts.ExcludeDevices,
		ExcludeFSTypes: c.Mounts.ExcludeFSTypes,
	}
}

// LoggingOptions converts the configuration into logging options.
func (c *Config) LoggingOptions() (logging.Config, error) {
	var maxSize int64
	if c.Logging.Rotation.MaxSize != "" {
		n, err := humanize.ParseBytes(c.Logging.Rotation.MaxSize)
		if err != nil {
			return logging.Config{}, fmt.Errorf("invalid logging.rotation.max_size %q: %w", c.Logging.Rotation.MaxSize, err)
		}
		maxSize = int64(n)
	}

	path, err := ExpandPath(c.Logging.Path)
	if err != nil {
		return logging.Config{}, err
	}

	return logging.Config{
		Level: c.Logging.Level,
		Path:  path,
		Rotation: logging.RotationConfig{
			MaxSize:    maxSize,
			MaxBackups: c.Logging.Rotation.MaxBackups,
		},
		Components: c.Logging.Components,
	}, nil
}

// ConfigDir returns the configuration directory.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, "limits")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, path[1:]), nil
}

// ConfigPath returns the default config file path.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// WriteDefault writes a commented default config file to path, creating its
// directory. An existing file is left untouched and reported as created=false.
func WriteDefault(path string) (created bool, err error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to check config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	defaultConfig := fmt.Sprintf(`# limits configuration

# Path whose filename and path length limits are reported
root: %q

# Mounts whose device or filesystem type contains one of these are skipped
mounts:
  exclude_devices:
%s  exclude_fstypes:
%s
# Logging configuration
logging:
  level: %s
  # path: ~/.local/state/limits/limits.log
  rotation:
    max_size: %s
    max_backups: %d
`,
		host.DefaultRoot(),
		yamlList(DefaultExcludeDevices),
		yamlList(DefaultExcludeFSTypes),
		DefaultLogLevel,
		DefaultLogMaxSize,
		DefaultLogMaxBackups,
	)

	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}
	return true, nil
}

func yamlList(items []string) string {
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "    - %q\n", item)
	}
	return b.String()
}
