package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordIsHeader(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		want   bool
	}{
		{"section header", Header(SectionCPU), true},
		{"memory header", Header(SectionMemory), true},
		{"unknown section", Record{Value: "Something Else"}, false},
		{"data row", Row("Total RAM", "8.0 GiB", "Total physical memory (RAM)."), false},
		{"data row named like a section", Row("CPU", SectionCPU, ""), false},
		{"blank record", Record{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.IsHeader())
		})
	}
}

func TestIsSection(t *testing.T) {
	for _, s := range Sections {
		assert.True(t, IsSection(s), "expected %q to be a section", s)
	}
	assert.False(t, IsSection(""))
	assert.False(t, IsSection("cpu"))
}

func TestGrouped(t *testing.T) {
	records := []Record{
		Header(SectionCPU),
		Row("CPU Physical Cores", "8", ""),
		Row("CPU Logical Processors", "16", ""),
		Header(SectionMemory),
		Row("Total RAM", "32.0 GiB", ""),
		Header(SectionMounts),
	}

	groups := Grouped(records)
	require.Len(t, groups, 3)

	assert.Equal(t, SectionCPU, groups[0].Section)
	assert.Len(t, groups[0].Rows, 2)
	assert.Equal(t, SectionMemory, groups[1].Section)
	assert.Len(t, groups[1].Rows, 1)
	assert.Equal(t, SectionMounts, groups[2].Section)
	assert.Empty(t, groups[2].Rows)
}

func TestGrouped_RowsBeforeHeader(t *testing.T) {
	groups := Grouped([]Record{Row("orphan", "1", "")})
	require.Len(t, groups, 1)
	assert.Equal(t, "", groups[0].Section)
	assert.Len(t, groups[0].Rows, 1)
}
