//go:build !linux && !darwin

package rlimit

import (
	"fmt"
	"math"
)

// Supported reports whether getrlimit is available on this platform.
const Supported = false

// Infinity is the platform's "no limit" sentinel.
const Infinity uint64 = math.MaxUint64

func get(kind Kind) (Limit, error) {
	return Limit{}, fmt.Errorf("%s: %w", kind, ErrUnsupported)
}
