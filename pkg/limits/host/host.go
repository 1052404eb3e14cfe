// Package host probes the local machine: CPU topology, memory, mounted
// partitions, disk usage, inode counts and filesystem path limits.
//
// CPU, memory, partition and usage queries go through gopsutil; inode and
// path-limit queries use platform calls and may be unsupported.
package host

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

// ErrUnsupported is returned by probes the platform cannot answer.
var ErrUnsupported = errors.New("not supported on this platform")

// Memory describes physical memory.
type Memory struct {
	// Total is the physical RAM in bytes.
	Total uint64
	// Available is the memory available to new processes without swapping.
	Available uint64
}

// Partition is a mounted volume.
type Partition struct {
	Device     string
	Mountpoint string
	Fstype     string
}

// Usage is a total/free pair, in bytes for disk usage or in entries for
// inode counts.
type Usage struct {
	Total uint64
	Free  uint64
}

// System answers probes against the live host. It holds no state; every
// call reads the OS afresh.
type System struct{}

// New returns a System.
func New() *System {
	return &System{}
}

// CPUCounts returns the number of physical cores (logical=false) or
// logical processors (logical=true).
func (s *System) CPUCounts(logical bool) (int, error) {
	n, err := cpu.Counts(logical)
	if err != nil {
		return 0, fmt.Errorf("counting cpus: %w", err)
	}
	return n, nil
}

// VirtualMemory returns physical memory totals.
func (s *System) VirtualMemory() (Memory, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return Memory{}, fmt.Errorf("reading virtual memory: %w", err)
	}
	return Memory{Total: vm.Total, Available: vm.Available}, nil
}

// SwapTotal returns the total swap space in bytes.
func (s *System) SwapTotal() (uint64, error) {
	sw, err := mem.SwapMemory()
	if err != nil {
		return 0, fmt.Errorf("reading swap memory: %w", err)
	}
	return sw.Total, nil
}

// Partitions returns the mounted physical partitions in mount-table order.
func (s *System) Partitions() ([]Partition, error) {
	parts, err := disk.Partitions(false)
	if err != nil {
		return nil, fmt.Errorf("listing partitions: %w", err)
	}

	result := make([]Partition, 0, len(parts))
	for _, p := range parts {
		result = append(result, Partition{
			Device:     p.Device,
			Mountpoint: p.Mountpoint,
			Fstype:     p.Fstype,
		})
	}
	return result, nil
}

// DiskUsage returns total and free bytes for the filesystem at path.
// The returned error is the raw OS error so callers can report its reason.
func (s *System) DiskUsage(path string) (Usage, error) {
	u, err := disk.Usage(path)
	if err != nil {
		return Usage{}, err
	}
	return Usage{Total: u.Total, Free: u.Free}, nil
}

// Exists reports whether path currently exists.
func (s *System) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// InodesSupported reports whether Inodes can answer on this platform.
func (s *System) InodesSupported() bool {
	return inodesSupported
}

// Inodes returns total and free inode counts for the filesystem at path.
func (s *System) Inodes(path string) (Usage, error) {
	return inodes(path)
}

// NameMax returns the longest file name, in characters, allowed on the
// filesystem at path.
func (s *System) NameMax(path string) (int, error) {
	return nameMax(path)
}

// PathMax returns the longest path, in characters, allowed on the
// filesystem at path.
func (s *System) PathMax(path string) (int, error) {
	return pathMax(path)
}

// DefaultRoot returns the primary root path: "/" on POSIX systems and the
// system drive root on Windows.
func DefaultRoot() string {
	if runtime.GOOS != "windows" {
		return "/"
	}
	drive := os.Getenv("SystemDrive")
	if drive == "" {
		drive = "C:"
	}
	return drive + `\`
}
