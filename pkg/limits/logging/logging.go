// Package logging provides component loggers for limits, backed by
// charmbracelet/log and a size-rotated log file.
//
// Basic usage:
//
//	if err := logging.Init(logging.Config{Level: "info"}); err != nil {
//	    return err
//	}
//	defer logging.Close()
//
//	logger := logging.Get("collector")
//	logger.Debug("probe failed", "probe", "inodes", "err", err)
//
// Loggers obtained before Init write nowhere; Init rebinds them.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
)

// Level represents a logging level.
type Level int

// Log levels from least to most severe.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

func (l Level) charm() log.Level {
	switch l {
	case LevelDebug:
		return log.DebugLevel
	case LevelWarn:
		return log.WarnLevel
	case LevelError:
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ErrInvalidLevel is returned when an invalid log level string is provided.
var ErrInvalidLevel = errors.New("invalid log level")

// ParseLevel parses a string into a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("%w: %s", ErrInvalidLevel, s)
	}
}

// Config configures the logging system.
type Config struct {
	// Level is the default log level (debug, info, warn, error).
	Level string

	// Path is the log file path. Empty uses DefaultLogPath().
	Path string

	// Rotation configures log file rotation.
	Rotation RotationConfig

	// Components maps component names to level overrides.
	Components map[string]string

	// Console mirrors log output to stderr. Ignored in TUI mode, where the
	// terminal belongs to the interface.
	Console bool

	// TUIMode suppresses all terminal output.
	TUIMode bool
}

// Logger is a component logger.
type Logger struct {
	mu        sync.RWMutex
	component string
	inner     *log.Logger
}

func (l *Logger) logger() *log.Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.inner
}

func (l *Logger) rebind(inner *log.Logger) {
	l.mu.Lock()
	l.inner = inner
	l.mu.Unlock()
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...interface{}) {
	l.logger().Debug(msg, args...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, args ...interface{}) {
	l.logger().Info(msg, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.logger().Warn(msg, args...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, args ...interface{}) {
	l.logger().Error(msg, args...)
}

// Component returns the component name.
func (l *Logger) Component() string {
	return l.component
}

type state struct {
	mu          sync.Mutex
	initialized bool
	writer      *RotatingWriter
	out         io.Writer
	level       Level
	components  map[string]Level
	loggers     map[string]*Logger
}

var global = &state{
	out:        io.Discard,
	components: make(map[string]Level),
	loggers:    make(map[string]*Logger),
}

// Init opens the log file and rebinds every logger handed out so far.
// Calling Init again replaces the previous configuration.
func Init(cfg Config) error {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}

	components := make(map[string]Level, len(cfg.Components))
	for comp, lvl := range cfg.Components {
		parsed, err := ParseLevel(lvl)
		if err != nil {
			return fmt.Errorf("parsing level for component %s: %w", comp, err)
		}
		components[comp] = parsed
	}

	path := cfg.Path
	if path == "" {
		path = DefaultLogPath()
	}

	writer, err := NewRotatingWriter(path, cfg.Rotation)
	if err != nil {
		return fmt.Errorf("creating log writer: %w", err)
	}

	global.mu.Lock()
	defer global.mu.Unlock()

	if global.writer != nil {
		if err := global.writer.Close(); err != nil {
			_ = writer.Close()
			return fmt.Errorf("closing existing writer: %w", err)
		}
	}

	var out io.Writer = writer
	if cfg.Console && !cfg.TUIMode {
		out = io.MultiWriter(writer, os.Stderr)
	}

	global.writer = writer
	global.out = out
	global.level = level
	global.components = components
	global.initialized = true

	for comp, l := range global.loggers {
		l.rebind(global.newCharm(comp))
	}

	return nil
}

// Get returns the logger for component, creating it on first use.
func Get(component string) *Logger {
	global.mu.Lock()
	defer global.mu.Unlock()

	if l, ok := global.loggers[component]; ok {
		return l
	}

	l := &Logger{component: component, inner: global.newCharm(component)}
	global.loggers[component] = l
	return l
}

// newCharm builds the charmbracelet logger for component.
// Must be called with global.mu held.
func (s *state) newCharm(component string) *log.Logger {
	level := s.level
	if override, ok := s.components[component]; ok {
		level = override
	}

	return log.NewWithOptions(s.out, log.Options{
		Level:           level.charm(),
		ReportTimestamp: s.initialized,
		TimeFormat:      time.RFC3339,
		Prefix:          component,
	})
}

// Close flushes and closes the log file. Loggers fall back to discarding
// output.
func Close() error {
	global.mu.Lock()
	defer global.mu.Unlock()

	if !global.initialized {
		return nil
	}

	var err error
	if global.writer != nil {
		err = global.writer.Close()
		global.writer = nil
	}

	global.initialized = false
	global.out = io.Discard
	global.level = LevelInfo
	global.components = make(map[string]Level)
	for comp, l := range global.loggers {
		l.rebind(global.newCharm(comp))
	}

	if err != nil {
		return fmt.Errorf("closing log writer: %w", err)
	}
	return nil
}

// DefaultLogPath returns $XDG_STATE_HOME/limits/limits.log.
func DefaultLogPath() string {
	return filepath.Join(xdg.StateHome, "limits", "limits.log")
}
