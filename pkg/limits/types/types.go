// Package types provides the display model shared by the collector, the TUI
// and the snapshot formatters.
package types

// Section names recognized as group headers.
const (
	SectionCPU            = "CPU"
	SectionMemory         = "Memory Information"
	SectionResourceLimits = "Process Resource Limits"
	SectionFilesystem     = "Filesystem Limits"
	SectionMounts         = "Mounted Filesystems"
)

// Sentinel values rendered in place of a measurement.
const (
	Unlimited    = "Unlimited"
	NotAvailable = "Not Available"
)

// Sections lists the section names in display order.
var Sections = []string{
	SectionCPU,
	SectionMemory,
	SectionResourceLimits,
	SectionFilesystem,
	SectionMounts,
}

// Record is a single entry of a snapshot.
// A record with an empty Label and a known section name in Value is a
// section header; any record with a Label is a data row.
type Record struct {
	// Label identifies the metric (e.g. "Total RAM").
	Label string `json:"label" yaml:"label"`

	// Value is the human-readable measurement.
	Value string `json:"value" yaml:"value"`

	// Description is a one-line explanation of the metric.
	Description string `json:"description" yaml:"description"`
}

// Header returns a section header record.
func Header(section string) Record {
	return Record{Value: section}
}

// Row returns a data record.
func Row(label, value, description string) Record {
	return Record{Label: label, Value: value, Description: description}
}

// IsSection reports whether name is one of the known section names.
func IsSection(name string) bool {
	for _, s := range Sections {
		if s == name {
			return true
		}
	}
	return false
}

// IsHeader reports whether the record is a section header.
func (r Record) IsHeader() bool {
	return r.Label == "" && IsSection(r.Value)
}

// Group is a section together with the data rows that follow its header.
type Group struct {
	Section string   `json:"section" yaml:"section"`
	Rows    []Record `json:"rows" yaml:"rows"`
}

// Grouped splits a record sequence into sections. Rows that appear before
// the first header are collected into a group with an empty name.
func Grouped(records []Record) []Group {
	var groups []Group
	for _, r := range records {
		if r.IsHeader() {
			groups = append(groups, Group{Section: r.Value, Rows: []Record{}})
			continue
		}
		if len(groups) == 0 {
			groups = append(groups, Group{Rows: []Record{}})
		}
		last := &groups[len(groups)-1]
		last.Rows = append(last.Rows, r)
	}
	return groups
}
