package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jamesainslie/limits/pkg/limits/config"
	"github.com/jamesainslie/limits/pkg/limits/logging"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage limits configuration settings.

Configuration is loaded from:
  1. $XDG_CONFIG_HOME/limits/config.yaml (if set)
  2. ~/.config/limits/config.yaml

Environment variables can override config file settings using the LIMITS_ prefix:
  LIMITS_ROOT=/home
  LIMITS_LOGGING_LEVEL=debug`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration settings from all sources.`,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	Long:  `Create a default configuration file if one doesn't exist.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	Long:  `Display the path to the configuration file.`,
	Run:   runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// configFilePath returns the file in use: --config if given, else the default.
func configFilePath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.ConfigPath()
}

// runConfigShow displays the current configuration.
func runConfigShow(cmd *cobra.Command, args []string) error {
	if cfgErr != nil {
		return fmt.Errorf("failed to load configuration: %w", cfgErr)
	}
	showConfig(cmd.OutOrStdout(), cfg, configFilePath())
	return nil
}

func showConfig(w io.Writer, cfg *config.Config, path string) {
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(w, "Config file: %s\n\n", path)
	} else {
		fmt.Fprintln(w, "Config file: (using defaults, no file found)")
		fmt.Fprintln(w)
	}

	logPath := cfg.Logging.Path
	if logPath == "" {
		logPath = logging.DefaultLogPath()
	}

	fmt.Fprintln(w, "Current Configuration:")
	fmt.Fprintln(w, "----------------------")
	fmt.Fprintf(w, "root:                    %s\n", cfg.Root)
	fmt.Fprintf(w, "mounts.exclude_devices:  %s\n", strings.Join(cfg.Mounts.ExcludeDevices, ", "))
	fmt.Fprintf(w, "mounts.exclude_fstypes:  %s\n", strings.Join(cfg.Mounts.ExcludeFSTypes, ", "))
	fmt.Fprintf(w, "logging.level:           %s\n", cfg.Logging.Level)
	fmt.Fprintf(w, "logging.path:            %s\n", logPath)
	fmt.Fprintf(w, "logging.rotation:        %s, %d backups\n", cfg.Logging.Rotation.MaxSize, cfg.Logging.Rotation.MaxBackups)

	fmt.Fprintln(w, "\nEnvironment Overrides:")
	fmt.Fprintln(w, "----------------------")
	anyOverrides := false
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "LIMITS_") {
			fmt.Fprintln(w, env)
			anyOverrides = true
		}
	}
	if !anyOverrides {
		fmt.Fprintln(w, "(none)")
	}
}

// runConfigInit creates a default config file.
func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configFilePath()

	created, err := config.WriteDefault(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	out := cmd.OutOrStdout()
	if !created {
		fmt.Fprintf(out, "Config file already exists: %s\n", path)
		return nil
	}
	fmt.Fprintf(out, "Created default config file: %s\n", path)
	return nil
}

// runConfigPath prints the config file path.
func runConfigPath(cmd *cobra.Command, args []string) {
	fmt.Fprintln(cmd.OutOrStdout(), configFilePath())
}
