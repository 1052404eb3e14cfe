// Package rlimit reads per-process resource limits.
//
// Whether the facility exists is decided at build time: Supported is true on
// platforms with getrlimit(2) and NewReader is only meaningful there.
package rlimit

import "errors"

// Kind identifies a resource limit.
type Kind int

// Resource limits reported by the collector.
const (
	OpenFiles Kind = iota
	StackSize
	Processes
	AddressSpace
	CPUTime
)

// String returns the conventional RLIMIT_* name for the kind.
func (k Kind) String() string {
	switch k {
	case OpenFiles:
		return "RLIMIT_NOFILE"
	case StackSize:
		return "RLIMIT_STACK"
	case Processes:
		return "RLIMIT_NPROC"
	case AddressSpace:
		return "RLIMIT_AS"
	case CPUTime:
		return "RLIMIT_CPU"
	default:
		return "RLIMIT_UNKNOWN"
	}
}

// Limit is a soft/hard limit pair as reported by the OS.
type Limit struct {
	// Soft is the currently enforced ceiling.
	Soft uint64
	// Hard is the ceiling the soft limit may be raised to.
	Hard uint64
}

// ErrUnsupported is returned for kinds the platform cannot report.
var ErrUnsupported = errors.New("resource limit not supported on this platform")

// Reader reads resource limits of the current process.
type Reader struct{}

// NewReader returns a Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Infinity returns the platform's "no limit" sentinel.
func (r *Reader) Infinity() uint64 {
	return Infinity
}

// Get returns the limit pair for kind.
func (r *Reader) Get(kind Kind) (Limit, error) {
	return get(kind)
}
