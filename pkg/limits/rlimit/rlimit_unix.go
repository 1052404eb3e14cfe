//go:build linux || darwin

package rlimit

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Supported reports whether getrlimit is available on this platform.
const Supported = true

// Infinity is the platform's "no limit" sentinel.
const Infinity uint64 = unix.RLIM_INFINITY

var resources = map[Kind]int{
	OpenFiles:    unix.RLIMIT_NOFILE,
	StackSize:    unix.RLIMIT_STACK,
	Processes:    unix.RLIMIT_NPROC,
	AddressSpace: unix.RLIMIT_AS,
	CPUTime:      unix.RLIMIT_CPU,
}

func get(kind Kind) (Limit, error) {
	resource, ok := resources[kind]
	if !ok {
		return Limit{}, fmt.Errorf("%s: %w", kind, ErrUnsupported)
	}

	var rl unix.Rlimit
	if err := unix.Getrlimit(resource, &rl); err != nil {
		return Limit{}, fmt.Errorf("getrlimit %s: %w", kind, err)
	}
	return Limit{Soft: rl.Cur, Hard: rl.Max}, nil
}
