package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jamesainslie/limits/cmd/limits/tui"
	"github.com/jamesainslie/limits/pkg/limits/collector"
	"github.com/jamesainslie/limits/pkg/limits/config"
	"github.com/jamesainslie/limits/pkg/limits/host"
	"github.com/jamesainslie/limits/pkg/limits/logging"
	"github.com/jamesainslie/limits/pkg/limits/output"
	"github.com/jamesainslie/limits/pkg/limits/rlimit"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	cfg     *config.Config
	cfgErr  error

	rootCmd = &cobra.Command{
		Use:   "limits",
		Short: "Show OS and filesystem limits",
		Long: `Limits shows CPU topology, memory, per-process resource limits,
filesystem path limits and mounted volume usage for this host.

By default, limits launches an interactive table. Press r to refresh
and q to quit. Use --format to print a single snapshot instead.

Examples:
  limits                     # Interactive view
  limits -f json             # One snapshot as JSON
  limits -f markdown > h.md  # Markdown tables for a report
  limits config show         # Show configuration`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runLimits,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/limits/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug output")
	rootCmd.Flags().StringP("format", "f", "",
		fmt.Sprintf("print one snapshot and exit (%s)", strings.Join(output.Available(), ", ")))

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("format", rootCmd.Flags().Lookup("format"))
}

// initConfig loads the config file and environment overrides.
func initConfig() {
	if cfgFile != "" {
		cfg, cfgErr = config.LoadFile(cfgFile)
	} else {
		cfg, cfgErr = config.Load()
	}
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		printError("%v", err)
		return err
	}
	return nil
}

// runLimits launches the interactive view, or prints one snapshot when a
// format is given.
func runLimits(cmd *cobra.Command, args []string) error {
	if cfgErr != nil {
		return fmt.Errorf("loading configuration: %w", cfgErr)
	}

	format := viper.GetString("format")
	interactive := format == ""

	if err := setupLogging(cfg, interactive); err != nil {
		printError("logging disabled: %v", err)
	}
	defer func() { _ = logging.Close() }()

	c := newCollector(cfg)

	if !interactive {
		return writeSnapshot(cmd.OutOrStdout(), format, c, time.Now())
	}

	return tui.Run(tui.Options{
		Collector: c,
		Hostname:  hostname(),
	})
}

// setupLogging initializes file logging. The interactive view never logs
// to the terminal; snapshot mode mirrors logs to stderr with --verbose.
func setupLogging(cfg *config.Config, interactive bool) error {
	logCfg, err := cfg.LoggingOptions()
	if err != nil {
		return err
	}

	verbose := viper.GetBool("verbose")
	if verbose {
		logCfg.Level = logging.LevelDebug.String()
	}
	logCfg.TUIMode = interactive
	logCfg.Console = verbose && !interactive

	return logging.Init(logCfg)
}

// newCollector wires the collector to the live host. Resource limits are
// only read where the platform supports them.
func newCollector(cfg *config.Config) *collector.Collector {
	var limits collector.LimitSource
	if rlimit.Supported {
		limits = rlimit.NewReader()
	}
	return collector.New(host.New(), limits, cfg.CollectorOptions())
}

// writeSnapshot collects once and writes the result in the named format.
func writeSnapshot(w io.Writer, format string, c tui.Collector, now time.Time) error {
	formatter, err := output.Get(format)
	if err != nil {
		return fmt.Errorf("%w (available: %s)", err, strings.Join(output.Available(), ", "))
	}

	snapshot := &output.Snapshot{
		Hostname:    hostname(),
		CollectedAt: now,
		Records:     c.Collect(),
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, snapshot); err != nil {
		return fmt.Errorf("formatting snapshot: %w", err)
	}

	_, err = w.Write(buf.Bytes())
	return err
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return ""
	}
	return name
}

// printError prints an error message to stderr.
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
