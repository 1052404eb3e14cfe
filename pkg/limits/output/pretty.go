package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jamesainslie/limits/pkg/limits/types"
)

// PrettyFormatter formats a snapshot with colors and styling for terminal
// display.
type PrettyFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *PrettyFormatter) Format(w *bytes.Buffer, s *Snapshot) error {
	w.WriteString(f.formatHeader(s))
	w.WriteString("\n")

	groups := buildDocument(s).Sections
	labelWidth, valueWidth := columnWidths(s.Records)

	for i, g := range groups {
		if i > 0 {
			w.WriteString("\n")
		}
		if g.Section != "" {
			w.WriteString(SectionStyle.Render(g.Section))
			w.WriteString("\n")
		}
		for _, r := range g.Rows {
			label := LabelStyle.Render(padRight(r.Label, labelWidth))
			value := valueStyle(r.Value).Render(padRight(r.Value, valueWidth))
			fmt.Fprintf(w, "  %s  %s  %s\n", label, value, MutedStyle.Render(r.Description))
		}
	}

	return nil
}

// formatHeader builds the header box with host and collection time.
func (f *PrettyFormatter) formatHeader(s *Snapshot) string {
	var parts []string
	if s.Hostname != "" {
		parts = append(parts, MutedStyle.Render("Host:")+" "+ValueStyle.Render(s.Hostname))
	}
	if !s.CollectedAt.IsZero() {
		parts = append(parts, MutedStyle.Render("Collected:")+" "+ValueStyle.Render(s.CollectedAt.Format("2006-01-02 15:04:05")))
	}
	if len(parts) == 0 {
		parts = append(parts, SectionStyle.Render("OS Limits"))
	}
	return HeaderBox.Render(strings.Join(parts, "  "))
}

// valueStyle picks the style for a measurement.
func valueStyle(value string) lipgloss.Style {
	switch {
	case value == types.Unlimited:
		return UnlimitedStyle
	case value == types.NotAvailable:
		return MutedStyle
	case strings.HasPrefix(value, "Error:"):
		return ErrorStyle
	default:
		return ValueStyle
	}
}

// columnWidths returns the widest label and value among data rows.
func columnWidths(records []types.Record) (label, value int) {
	for _, r := range records {
		if r.IsHeader() {
			continue
		}
		label = max(label, lipgloss.Width(r.Label))
		value = max(value, lipgloss.Width(r.Value))
	}
	return label, value
}

// padRight pads s with spaces to width cells.
func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func init() {
	Register("pretty", func() Formatter {
		return &PrettyFormatter{}
	})
}

// Ensure PrettyFormatter implements Formatter.
var _ Formatter = (*PrettyFormatter)(nil)
