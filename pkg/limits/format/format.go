// Package format renders raw measurements as the human-readable strings shown
// in the limits table.
package format

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"
	"syscall"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/jamesainslie/limits/pkg/limits/types"
)

// Style selects how a raw limit value is rendered.
type Style int

const (
	// StyleCount renders a plain count with thousands separators.
	StyleCount Style = iota
	// StyleBinarySize renders a byte quantity in IEC units (KiB, MiB, ...).
	StyleBinarySize
	// StyleDuration renders a number of seconds in natural language.
	StyleDuration
)

// String returns the name of the style.
func (s Style) String() string {
	switch s {
	case StyleCount:
		return "count"
	case StyleBinarySize:
		return "binary-size"
	case StyleDuration:
		return "duration"
	default:
		return "unknown"
	}
}

const (
	// allOnes is the bit pattern of -1 stored in an unsigned limit.
	allOnes = math.MaxUint64

	// maxDurationSeconds is the largest span time.Duration can hold.
	maxDurationSeconds = uint64(math.MaxInt64 / int64(time.Second))
)

// IsUnlimited reports whether raw denotes "no limit".
// Both the platform sentinel and -1 are accepted; on platforms where the two
// differ a genuine limit of -1 is also reported as unlimited.
func IsUnlimited(raw, unlimited uint64) bool {
	return raw == unlimited || raw == allOnes
}

// Limit renders a resource limit. Values matching the unlimited sentinel
// render as "Unlimited"; anything else is rendered with the given style.
func Limit(raw, unlimited uint64, style Style) string {
	if IsUnlimited(raw, unlimited) {
		return types.Unlimited
	}
	switch style {
	case StyleBinarySize:
		return BinarySize(raw)
	case StyleDuration:
		return Duration(raw)
	default:
		return Count(raw)
	}
}

// Count renders n with thousands separators (e.g. "1,024").
func Count(n uint64) string {
	if n > math.MaxInt64 {
		return humanize.BigComma(new(big.Int).SetUint64(n))
	}
	return humanize.Comma(int64(n))
}

// BinarySize renders a byte count using 1024-based units (e.g. "8.0 GiB").
func BinarySize(n uint64) string {
	return humanize.IBytes(n)
}

// DecimalSize renders a byte count using 1000-based units (e.g. "500 GB").
func DecimalSize(n uint64) string {
	return humanize.Bytes(n)
}

// Duration renders a number of seconds in natural language
// (e.g. "1 hour", "3 days").
func Duration(seconds uint64) string {
	if seconds == 0 {
		return "0 seconds"
	}
	if seconds > maxDurationSeconds {
		seconds = maxDurationSeconds
	}
	epoch := time.Unix(0, 0)
	return strings.TrimSpace(humanize.RelTime(epoch, time.Unix(int64(seconds), 0), "", ""))
}

// Characters renders a length limit (e.g. "255 characters").
func Characters(n int) string {
	return fmt.Sprintf("%d characters", n)
}

// Usage renders a "<total> Total, <free> Free" pair.
func Usage(total, free string) string {
	return fmt.Sprintf("%s Total, %s Free", total, free)
}

// Reason returns the OS description of err with its first letter
// capitalized. Errno values are reported without the wrapping path or
// operation (e.g. "Permission denied").
func Reason(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	var errno syscall.Errno
	if errors.As(err, &errno) {
		msg = errno.Error()
	}
	return capitalize(msg)
}

// Error renders err as a table value ("Error: <reason>").
func Error(err error) string {
	return "Error: " + Reason(err)
}

// capitalize upper-cases the first rune of s.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
