// Package config provides configuration management for limits.
package config

// Default configuration values.
const (
	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultLogMaxSize is the size at which the log file is rotated.
	DefaultLogMaxSize = "10MB"

	// DefaultLogMaxBackups is the number of rotated log files kept.
	DefaultLogMaxBackups = 3
)

// DefaultExcludeDevices lists device-path substrings of pseudo mounts.
var DefaultExcludeDevices = []string{"loop"}

// DefaultExcludeFSTypes lists filesystem types of pseudo mounts.
var DefaultExcludeFSTypes = []string{"squashfs"}
