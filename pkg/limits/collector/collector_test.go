package collector

import (
	"errors"
	"math"
	"syscall"
	"testing"

	"github.com/jamesainslie/limits/pkg/limits/host"
	"github.com/jamesainslie/limits/pkg/limits/rlimit"
	"github.com/jamesainslie/limits/pkg/limits/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const infinity = math.MaxUint64

// fakeHost is an in-memory Host.
type fakeHost struct {
	physical, logical int
	cpuErr            error
	memory            host.Memory
	memErr            error
	swap              uint64
	swapErr           error
	partitions        []host.Partition
	partErr           error
	usage             map[string]host.Usage
	usageErr          map[string]error
	missing           map[string]bool
	inodesSupported   bool
	inodes            map[string]host.Usage
	inodeErr          map[string]error
	nameMax, pathMax  int
	pathErr           error

	usageCalls []string
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		physical:        8,
		logical:         16,
		memory:          host.Memory{Total: 32 << 30, Available: 16 << 30},
		swap:            2 << 30,
		usage:           map[string]host.Usage{},
		usageErr:        map[string]error{},
		missing:         map[string]bool{},
		inodesSupported: true,
		inodes:          map[string]host.Usage{},
		inodeErr:        map[string]error{},
		nameMax:         255,
		pathMax:         4096,
	}
}

func (f *fakeHost) CPUCounts(logical bool) (int, error) {
	if f.cpuErr != nil {
		return 0, f.cpuErr
	}
	if logical {
		return f.logical, nil
	}
	return f.physical, nil
}

func (f *fakeHost) VirtualMemory() (host.Memory, error) { return f.memory, f.memErr }
func (f *fakeHost) SwapTotal() (uint64, error)         { return f.swap, f.swapErr }

func (f *fakeHost) Partitions() ([]host.Partition, error) {
	return f.partitions, f.partErr
}

func (f *fakeHost) DiskUsage(path string) (host.Usage, error) {
	f.usageCalls = append(f.usageCalls, path)
	if err := f.usageErr[path]; err != nil {
		return host.Usage{}, err
	}
	return f.usage[path], nil
}

func (f *fakeHost) Exists(path string) bool { return !f.missing[path] }
func (f *fakeHost) InodesSupported() bool   { return f.inodesSupported }

func (f *fakeHost) Inodes(path string) (host.Usage, error) {
	if err := f.inodeErr[path]; err != nil {
		return host.Usage{}, err
	}
	return f.inodes[path], nil
}

func (f *fakeHost) NameMax(string) (int, error) { return f.nameMax, f.pathErr }
func (f *fakeHost) PathMax(string) (int, error) { return f.pathMax, f.pathErr }

// fakeLimits is an in-memory LimitSource.
type fakeLimits struct {
	limits map[rlimit.Kind]rlimit.Limit
	errs   map[rlimit.Kind]error
	calls  map[rlimit.Kind]int
}

func newFakeLimits() *fakeLimits {
	return &fakeLimits{
		limits: map[rlimit.Kind]rlimit.Limit{
			rlimit.OpenFiles:    {Soft: 1024, Hard: infinity},
			rlimit.StackSize:    {Soft: 8 << 20, Hard: infinity},
			rlimit.Processes:    {Soft: 63000, Hard: 63000},
			rlimit.AddressSpace: {Soft: infinity, Hard: infinity},
			rlimit.CPUTime:      {Soft: 3600, Hard: infinity},
		},
		errs:  map[rlimit.Kind]error{},
		calls: map[rlimit.Kind]int{},
	}
}

func (f *fakeLimits) Infinity() uint64 { return infinity }

func (f *fakeLimits) Get(kind rlimit.Kind) (rlimit.Limit, error) {
	f.calls[kind]++
	if err := f.errs[kind]; err != nil {
		return rlimit.Limit{}, err
	}
	return f.limits[kind], nil
}

func testOptions() Options {
	return Options{
		Root:           "/",
		ExcludeDevices: []string{"loop"},
		ExcludeFSTypes: []string{"squashfs"},
	}
}

// find returns the first record with the given label.
func find(t *testing.T, records []types.Record, label string) types.Record {
	t.Helper()
	for _, r := range records {
		if r.Label == label {
			return r
		}
	}
	t.Fatalf("no record labeled %q", label)
	return types.Record{}
}

func labels(records []types.Record) []string {
	var out []string
	for _, r := range records {
		out = append(out, r.Label)
	}
	return out
}

func sectionRows(records []types.Record, section string) []types.Record {
	for _, g := range types.Grouped(records) {
		if g.Section == section {
			return g.Rows
		}
	}
	return nil
}

func TestCollect_SectionOrder(t *testing.T) {
	c := New(newFakeHost(), newFakeLimits(), testOptions())

	var headers []string
	for _, r := range c.Collect() {
		if r.IsHeader() {
			headers = append(headers, r.Value)
		}
	}

	assert.Equal(t, types.Sections, headers)
}

func TestCollect_CPU(t *testing.T) {
	records := New(newFakeHost(), newFakeLimits(), testOptions()).Collect()

	assert.Equal(t, "8", find(t, records, "CPU Physical Cores").Value)
	assert.Equal(t, "16", find(t, records, "CPU Logical Processors").Value)
}

func TestCollect_CPUFailure(t *testing.T) {
	h := newFakeHost()
	h.cpuErr = errors.New("no cpuinfo")

	records := New(h, newFakeLimits(), testOptions()).Collect()

	assert.Equal(t, types.NotAvailable, find(t, records, "CPU Physical Cores").Value)
	assert.Equal(t, types.NotAvailable, find(t, records, "CPU Logical Processors").Value)
}

func TestCollect_Memory(t *testing.T) {
	records := New(newFakeHost(), newFakeLimits(), testOptions()).Collect()

	assert.Equal(t, "32 GiB", find(t, records, "Total RAM").Value)
	assert.Equal(t, "16 GiB", find(t, records, "Available RAM").Value)
	assert.Equal(t, "2.0 GiB", find(t, records, "Total Swap").Value)
}

func TestCollect_MemoryFailure(t *testing.T) {
	h := newFakeHost()
	h.memErr = errors.New("meminfo unreadable")
	h.swapErr = errors.New("swaps unreadable")

	records := New(h, newFakeLimits(), testOptions()).Collect()

	assert.Equal(t, types.NotAvailable, find(t, records, "Total RAM").Value)
	assert.Equal(t, "Meminfo unreadable", find(t, records, "Total RAM").Description)
	assert.Equal(t, types.NotAvailable, find(t, records, "Available RAM").Value)
	assert.Equal(t, types.NotAvailable, find(t, records, "Total Swap").Value)
}

func TestCollect_ResourceLimits(t *testing.T) {
	records := New(newFakeHost(), newFakeLimits(), testOptions()).Collect()

	tests := []struct {
		label string
		want  string
	}{
		{"Max Open Files (Soft)", "1,024"},
		{"Max Open Files (Hard)", "Unlimited"},
		{"Stack Size (Soft)", "8.0 MiB"},
		{"Stack Size (Hard)", "Unlimited"},
		{"Max Processes (Soft)", "63,000"},
		{"Virtual Memory (Soft)", "Unlimited"},
		{"CPU Time (Soft)", "1 hour"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, find(t, records, tt.label).Value)
		})
	}
}

func TestCollect_ResourceLimitsQueriedOncePerKind(t *testing.T) {
	lim := newFakeLimits()
	New(newFakeHost(), lim, testOptions()).Collect()

	for kind, n := range lim.calls {
		assert.Equal(t, 1, n, "kind %s queried %d times", kind, n)
	}
	assert.Len(t, lim.calls, 5)
}

func TestCollect_ResourceLimitFailureIsolated(t *testing.T) {
	lim := newFakeLimits()
	lim.errs[rlimit.StackSize] = syscall.EINVAL

	records := New(newFakeHost(), lim, testOptions()).Collect()

	assert.Equal(t, "Error: Invalid argument", find(t, records, "Stack Size (Soft)").Value)
	assert.Equal(t, "Error: Invalid argument", find(t, records, "Stack Size (Hard)").Value)
	assert.Equal(t, "1,024", find(t, records, "Max Open Files (Soft)").Value)
	assert.Equal(t, "1 hour", find(t, records, "CPU Time (Soft)").Value)
}

func TestCollect_ResourceLimitsUnavailable(t *testing.T) {
	records := New(newFakeHost(), nil, testOptions()).Collect()

	rows := sectionRows(records, types.SectionResourceLimits)
	require.Len(t, rows, 1)
	assert.Equal(t, "Resource Limits", rows[0].Label)
	assert.Equal(t, types.NotAvailable, rows[0].Value)

	// Later sections are still collected.
	assert.Equal(t, "255 characters", find(t, records, "Max Filename Length").Value)
}

func TestCollect_FilesystemLimits(t *testing.T) {
	records := New(newFakeHost(), newFakeLimits(), testOptions()).Collect()

	name := find(t, records, "Max Filename Length")
	assert.Equal(t, "255 characters", name.Value)
	assert.Equal(t, "For the filesystem at '/'.", name.Description)
	assert.Equal(t, "4096 characters", find(t, records, "Max Path Length").Value)
}

func TestCollect_FilesystemLimitsFailure(t *testing.T) {
	h := newFakeHost()
	h.pathErr = host.ErrUnsupported

	records := New(h, newFakeLimits(), testOptions()).Collect()

	for _, label := range []string{"Max Filename Length", "Max Path Length"} {
		r := find(t, records, label)
		assert.Equal(t, types.NotAvailable, r.Value)
		assert.Equal(t, "Could not be determined for this filesystem.", r.Description)
	}
}

func TestCollect_DefaultRootWhenEmpty(t *testing.T) {
	c := New(newFakeHost(), newFakeLimits(), Options{})
	assert.Equal(t, host.DefaultRoot(), c.opts.Root)
}

func TestCollect_Mounts(t *testing.T) {
	h := newFakeHost()
	h.partitions = []host.Partition{
		{Device: "/dev/sda1", Mountpoint: "/", Fstype: "ext4"},
		{Device: "/dev/sdb1", Mountpoint: "/data", Fstype: "xfs"},
	}
	h.usage["/"] = host.Usage{Total: 500_000_000_000, Free: 100_000_000_000}
	h.usage["/data"] = host.Usage{Total: 2_000_000_000_000, Free: 1_500_000_000_000}
	h.inodes["/"] = host.Usage{Total: 30_000_000, Free: 29_000_000}
	h.inodes["/data"] = host.Usage{Total: 1_000_000, Free: 999_999}

	records := New(h, newFakeLimits(), testOptions()).Collect()

	root := find(t, records, "Disk: /")
	assert.Equal(t, "500 GB Total, 100 GB Free", root.Value)
	assert.Equal(t, "Device: /dev/sda1", root.Description)

	inodes := find(t, records, "Inodes: /")
	assert.Equal(t, "30,000,000 Total, 29,000,000 Free", inodes.Value)
	assert.Equal(t, "Filesystem type: ext4", inodes.Description)

	assert.Equal(t, "2.0 TB Total, 1.5 TB Free", find(t, records, "Disk: /data").Value)
	assert.Equal(t, "1,000,000 Total, 999,999 Free", find(t, records, "Inodes: /data").Value)

	assert.Equal(t,
		[]string{"Disk: /", "Inodes: /", "Disk: /data", "Inodes: /data"},
		labels(sectionRows(records, types.SectionMounts)))
}

func TestCollect_MountsSkipPseudoAndMissing(t *testing.T) {
	h := newFakeHost()
	h.partitions = []host.Partition{
		{Device: "/dev/loop3", Mountpoint: "/snap/core/1", Fstype: "ext4"},
		{Device: "/dev/sdc1", Mountpoint: "/snap/app/2", Fstype: "squashfs"},
		{Device: "/dev/sdd1", Mountpoint: "/media/gone", Fstype: "vfat"},
		{Device: "/dev/sda1", Mountpoint: "/", Fstype: "ext4"},
	}
	h.missing["/media/gone"] = true
	h.inodes["/"] = host.Usage{Total: 10, Free: 5}

	records := New(h, newFakeLimits(), testOptions()).Collect()

	assert.Equal(t, []string{"Disk: /", "Inodes: /"}, labels(sectionRows(records, types.SectionMounts)))
	assert.Equal(t, []string{"/"}, h.usageCalls)
}

func TestCollect_MountsDeduplicateByDevice(t *testing.T) {
	h := newFakeHost()
	h.partitions = []host.Partition{
		{Device: "/dev/sda1", Mountpoint: "/", Fstype: "ext4"},
		{Device: "/dev/sda1", Mountpoint: "/var/lib/docker", Fstype: "ext4"},
		{Device: "/dev/sdb1", Mountpoint: "/home", Fstype: "ext4"},
		{Device: "/dev/sdb1", Mountpoint: "/srv", Fstype: "ext4"},
	}
	h.inodesSupported = false

	records := New(h, newFakeLimits(), testOptions()).Collect()

	assert.Equal(t, []string{"Disk: /", "Disk: /home"}, labels(sectionRows(records, types.SectionMounts)))
}

func TestCollect_MountsCustomExclusions(t *testing.T) {
	h := newFakeHost()
	h.partitions = []host.Partition{
		{Device: "tmpfs", Mountpoint: "/run", Fstype: "tmpfs"},
		{Device: "/dev/loop0", Mountpoint: "/mnt/img", Fstype: "ext4"},
	}
	h.inodesSupported = false

	opts := Options{Root: "/", ExcludeFSTypes: []string{"tmpfs"}}
	records := New(h, newFakeLimits(), opts).Collect()

	// Loop devices are only skipped when configured.
	assert.Equal(t, []string{"Disk: /mnt/img"}, labels(sectionRows(records, types.SectionMounts)))
}

func TestCollect_DiskUsagePermissionDenied(t *testing.T) {
	h := newFakeHost()
	h.partitions = []host.Partition{
		{Device: "/dev/sdb1", Mountpoint: "/secret", Fstype: "ext4"},
		{Device: "/dev/sda1", Mountpoint: "/", Fstype: "ext4"},
	}
	h.usageErr["/secret"] = syscall.EACCES
	h.inodeErr["/secret"] = syscall.EACCES
	h.usage["/"] = host.Usage{Total: 1000, Free: 10}

	records := New(h, newFakeLimits(), testOptions()).Collect()

	secret := find(t, records, "Disk: /secret")
	assert.Contains(t, secret.Value, "Error: Permission denied")
	assert.Contains(t, secret.Description, "/dev/sdb1")

	inodes := find(t, records, "Inodes: /secret")
	assert.Equal(t, "Error: Permission denied", inodes.Value)
	assert.Equal(t, "Filesystem type: ext4", inodes.Description)

	// The failing mount does not stop the next one.
	assert.Equal(t, "1.0 kB Total, 10 B Free", find(t, records, "Disk: /").Value)
}

func TestCollect_InodesZeroTotalOmitted(t *testing.T) {
	h := newFakeHost()
	h.partitions = []host.Partition{{Device: "/dev/sda1", Mountpoint: "/", Fstype: "btrfs"}}
	h.inodes["/"] = host.Usage{Total: 0, Free: 0}

	records := New(h, newFakeLimits(), testOptions()).Collect()

	assert.Equal(t, []string{"Disk: /"}, labels(sectionRows(records, types.SectionMounts)))
}

func TestCollect_PartitionsFailure(t *testing.T) {
	h := newFakeHost()
	h.partErr = syscall.EACCES

	records := New(h, newFakeLimits(), testOptions()).Collect()

	rows := sectionRows(records, types.SectionMounts)
	require.Len(t, rows, 1)
	assert.Equal(t, "Error: Permission denied", rows[0].Value)
}

func TestCollect_Idempotent(t *testing.T) {
	h := newFakeHost()
	h.partitions = []host.Partition{
		{Device: "/dev/sda1", Mountpoint: "/", Fstype: "ext4"},
		{Device: "/dev/sda1", Mountpoint: "/boot", Fstype: "ext4"},
	}
	h.usage["/"] = host.Usage{Total: 1 << 40, Free: 1 << 39}
	h.inodes["/"] = host.Usage{Total: 100, Free: 50}

	c := New(h, newFakeLimits(), testOptions())

	assert.Equal(t, c.Collect(), c.Collect())
}

func TestCollect_LiveHost(t *testing.T) {
	var lim LimitSource
	if rlimit.Supported {
		lim = rlimit.NewReader()
	}

	records := New(host.New(), lim, DefaultOptions()).Collect()

	require.NotEmpty(t, records)
	assert.NotEmpty(t, sectionRows(records, types.SectionResourceLimits))
	assert.NotEqual(t, "", find(t, records, "CPU Logical Processors").Value)
}
