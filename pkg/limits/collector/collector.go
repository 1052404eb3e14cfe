// Package collector gathers a snapshot of host limits as an ordered list of
// display records.
//
// Basic usage:
//
//	c := collector.New(host.New(), rlimit.NewReader(), collector.DefaultOptions())
//	for _, r := range c.Collect() {
//	    fmt.Println(r.Label, r.Value)
//	}
//
// Every probe is isolated: an unavailable facility or a failed query becomes
// a row carrying "Not Available" or "Error: <reason>" and collection carries on.
package collector

import (
	"strings"

	"github.com/jamesainslie/limits/pkg/limits/format"
	"github.com/jamesainslie/limits/pkg/limits/host"
	"github.com/jamesainslie/limits/pkg/limits/logging"
	"github.com/jamesainslie/limits/pkg/limits/rlimit"
	"github.com/jamesainslie/limits/pkg/limits/types"
)

// logger is the package-level logger for probe failures.
var logger = logging.Get("collector")

// Host is the set of OS probes the collector reads.
type Host interface {
	CPUCounts(logical bool) (int, error)
	VirtualMemory() (host.Memory, error)
	SwapTotal() (uint64, error)
	Partitions() ([]host.Partition, error)
	DiskUsage(path string) (host.Usage, error)
	Exists(path string) bool
	InodesSupported() bool
	Inodes(path string) (host.Usage, error)
	NameMax(path string) (int, error)
	PathMax(path string) (int, error)
}

// LimitSource reads per-process resource limits.
type LimitSource interface {
	// Infinity returns the platform's "no limit" sentinel.
	Infinity() uint64
	// Get returns the soft/hard pair for kind.
	Get(kind rlimit.Kind) (rlimit.Limit, error)
}

// Options tunes what the collector probes.
type Options struct {
	// Root is the path whose filesystem limits are reported.
	Root string

	// ExcludeDevices lists device-path substrings that mark pseudo mounts.
	ExcludeDevices []string

	// ExcludeFSTypes lists filesystem-type substrings that mark pseudo mounts.
	ExcludeFSTypes []string
}

// DefaultOptions returns options that skip loop devices and squashfs
// images and report limits for the primary root path.
func DefaultOptions() Options {
	return Options{
		Root:           host.DefaultRoot(),
		ExcludeDevices: []string{"loop"},
		ExcludeFSTypes: []string{"squashfs"},
	}
}

// Collector produces snapshots. It keeps no state between passes.
type Collector struct {
	host   Host
	limits LimitSource
	opts   Options
}

// New creates a collector. A nil limits means the platform has no
// resource-limit facility; the section then holds a single
// "Not Available" row.
func New(h Host, limits LimitSource, opts Options) *Collector {
	if opts.Root == "" {
		opts.Root = host.DefaultRoot()
	}
	return &Collector{host: h, limits: limits, opts: opts}
}

// Collect runs one collection pass and returns the records in display
// order: CPU, memory, resource limits, filesystem limits, mounts.
func (c *Collector) Collect() []types.Record {
	var records []types.Record
	records = append(records, c.cpu()...)
	records = append(records, c.memory()...)
	records = append(records, c.resourceLimits()...)
	records = append(records, c.filesystemLimits()...)
	records = append(records, c.mounts()...)
	return records
}

// cpu reports core counts.
func (c *Collector) cpu() []types.Record {
	records := []types.Record{types.Header(types.SectionCPU)}

	records = append(records, types.Row(
		"CPU Physical Cores",
		c.count("cpu.physical", false),
		"Number of physical CPU cores.",
	))
	records = append(records, types.Row(
		"CPU Logical Processors",
		c.count("cpu.logical", true),
		"Total number of CPU threads (hyper-threading).",
	))

	return records
}

func (c *Collector) count(probe string, logical bool) string {
	n, err := c.host.CPUCounts(logical)
	if err != nil {
		logger.Debug("probe failed", "probe", probe, "err", err)
		return types.NotAvailable
	}
	if n <= 0 {
		return types.NotAvailable
	}
	return format.Count(uint64(n))
}

// memory reports RAM and swap totals in binary units.
func (c *Collector) memory() []types.Record {
	records := []types.Record{types.Header(types.SectionMemory)}

	vm, err := c.host.VirtualMemory()
	if err != nil {
		logger.Debug("probe failed", "probe", "memory.virtual", "err", err)
		reason := format.Reason(err)
		records = append(records,
			types.Row("Total RAM", types.NotAvailable, reason),
			types.Row("Available RAM", types.NotAvailable, reason),
		)
	} else {
		records = append(records,
			types.Row("Total RAM", format.BinarySize(vm.Total), "Total physical memory (RAM)."),
			types.Row("Available RAM", format.BinarySize(vm.Available), "Memory available for new processes without swapping."),
		)
	}

	swap, err := c.host.SwapTotal()
	if err != nil {
		logger.Debug("probe failed", "probe", "memory.swap", "err", err)
		records = append(records, types.Row("Total Swap", types.NotAvailable, format.Reason(err)))
	} else {
		records = append(records, types.Row("Total Swap", format.BinarySize(swap), "Total swap space available on disk."))
	}

	return records
}

// limitRow describes one row of the resource-limits section.
type limitRow struct {
	kind        rlimit.Kind
	hard        bool
	label       string
	style       format.Style
	description string
}

// limitRows lists the resource-limit rows in display order.
var limitRows = []limitRow{
	{rlimit.OpenFiles, false, "Max Open Files (Soft)", format.StyleCount,
		"The effective maximum number of open file descriptors per process."},
	{rlimit.OpenFiles, true, "Max Open Files (Hard)", format.StyleCount,
		"The absolute upper bound for the soft limit, set by the root user."},
	{rlimit.StackSize, false, "Stack Size (Soft)", format.StyleBinarySize,
		"The effective maximum process stack size."},
	{rlimit.StackSize, true, "Stack Size (Hard)", format.StyleBinarySize,
		"The absolute upper bound for the stack size."},
	{rlimit.Processes, false, "Max Processes (Soft)", format.StyleCount,
		"The effective maximum number of processes a user can create."},
	{rlimit.AddressSpace, false, "Virtual Memory (Soft)", format.StyleBinarySize,
		"The effective max virtual memory (address space) a process can use."},
	{rlimit.CPUTime, false, "CPU Time (Soft)", format.StyleDuration,
		"The max CPU time a process can consume before being sent a signal."},
}

// resourceLimits reports getrlimit values, or a single row when the
// facility is absent.
func (c *Collector) resourceLimits() []types.Record {
	records := []types.Record{types.Header(types.SectionResourceLimits)}

	if c.limits == nil {
		return append(records, types.Row(
			"Resource Limits",
			types.NotAvailable,
			"Resource limits are not available on this OS (e.g., Windows).",
		))
	}

	type result struct {
		limit rlimit.Limit
		err   error
	}
	results := make(map[rlimit.Kind]result)
	infinity := c.limits.Infinity()

	for _, row := range limitRows {
		res, ok := results[row.kind]
		if !ok {
			lim, err := c.limits.Get(row.kind)
			if err != nil {
				logger.Debug("probe failed", "probe", row.kind.String(), "err", err)
			}
			res = result{limit: lim, err: err}
			results[row.kind] = res
		}

		if res.err != nil {
			records = append(records, types.Row(row.label, format.Error(res.err), row.description))
			continue
		}

		raw := res.limit.Soft
		if row.hard {
			raw = res.limit.Hard
		}
		records = append(records, types.Row(row.label, format.Limit(raw, infinity, row.style), row.description))
	}

	return records
}

// filesystemLimits reports name and path length limits for the root path.
func (c *Collector) filesystemLimits() []types.Record {
	records := []types.Record{types.Header(types.SectionFilesystem)}
	root := c.opts.Root

	probes := []struct {
		label string
		query func(string) (int, error)
	}{
		{"Max Filename Length", c.host.NameMax},
		{"Max Path Length", c.host.PathMax},
	}

	for _, p := range probes {
		n, err := p.query(root)
		if err != nil {
			logger.Debug("probe failed", "probe", p.label, "path", root, "err", err)
			records = append(records, types.Row(p.label, types.NotAvailable, "Could not be determined for this filesystem."))
			continue
		}
		records = append(records, types.Row(p.label, format.Characters(n), "For the filesystem at '"+root+"'."))
	}

	return records
}

// mounts reports disk and inode usage for each physical mount.
func (c *Collector) mounts() []types.Record {
	records := []types.Record{types.Header(types.SectionMounts)}

	parts, err := c.host.Partitions()
	if err != nil {
		logger.Debug("probe failed", "probe", "partitions", "err", err)
		return append(records, types.Row(types.SectionMounts, format.Error(err), "Mounted partitions could not be listed."))
	}

	seen := make(map[string]struct{})
	for _, part := range parts {
		if c.skip(part) {
			continue
		}
		if _, dup := seen[part.Device]; dup {
			continue
		}
		seen[part.Device] = struct{}{}

		records = append(records, c.diskUsage(part))
		if r, ok := c.inodes(part); ok {
			records = append(records, r)
		}
	}

	return records
}

// skip reports whether part is a pseudo mount or no longer exists.
func (c *Collector) skip(part host.Partition) bool {
	for _, pattern := range c.opts.ExcludeDevices {
		if pattern != "" && strings.Contains(part.Device, pattern) {
			return true
		}
	}
	for _, pattern := range c.opts.ExcludeFSTypes {
		if pattern != "" && strings.Contains(part.Fstype, pattern) {
			return true
		}
	}
	return !c.host.Exists(part.Mountpoint)
}

func (c *Collector) diskUsage(part host.Partition) types.Record {
	label := "Disk: " + part.Mountpoint
	description := "Device: " + part.Device

	usage, err := c.host.DiskUsage(part.Mountpoint)
	if err != nil {
		logger.Debug("probe failed", "probe", "disk.usage", "mountpoint", part.Mountpoint, "err", err)
		return types.Row(label, format.Error(err), description)
	}

	value := format.Usage(format.DecimalSize(usage.Total), format.DecimalSize(usage.Free))
	return types.Row(label, value, description)
}

// inodes returns the inode row for part, if one should be shown.
func (c *Collector) inodes(part host.Partition) (types.Record, bool) {
	if !c.host.InodesSupported() {
		return types.Record{}, false
	}

	label := "Inodes: " + part.Mountpoint
	description := "Filesystem type: " + part.Fstype

	usage, err := c.host.Inodes(part.Mountpoint)
	if err != nil {
		logger.Debug("probe failed", "probe", "inodes", "mountpoint", part.Mountpoint, "err", err)
		return types.Row(label, format.Error(err), description), true
	}
	if usage.Total == 0 {
		return types.Record{}, false
	}

	value := format.Usage(format.Count(usage.Total), format.Count(usage.Free))
	return types.Row(label, value, description), true
}
