package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
)

// CSVFormatter formats a snapshot as RFC 4180 comma-separated values with a
// section column.
type CSVFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *CSVFormatter) Format(w *bytes.Buffer, s *Snapshot) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"SECTION", "CONFIGURATION", "VALUE", "DESCRIPTION"}); err != nil {
		return err
	}

	for _, g := range buildDocument(s).Sections {
		for _, r := range g.Rows {
			if err := writer.Write([]string{g.Section, r.Label, r.Value, r.Description}); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

func init() {
	Register("csv", func() Formatter {
		return &CSVFormatter{}
	})
}

// Ensure CSVFormatter implements Formatter.
var _ Formatter = (*CSVFormatter)(nil)

// MarkdownFormatter formats a snapshot as GitHub-flavored Markdown, one
// table per section.
type MarkdownFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *MarkdownFormatter) Format(w *bytes.Buffer, s *Snapshot) error {
	for i, g := range buildDocument(s).Sections {
		if i > 0 {
			w.WriteString("\n")
		}
		if g.Section != "" {
			fmt.Fprintf(w, "## %s\n\n", g.Section)
		}
		w.WriteString("| Configuration | Value | Description |\n")
		w.WriteString("|---|---|---|\n")
		for _, r := range g.Rows {
			fmt.Fprintf(w, "| %s | %s | %s |\n",
				escapeMarkdownPipe(r.Label),
				escapeMarkdownPipe(r.Value),
				escapeMarkdownPipe(r.Description))
		}
	}
	return nil
}

// escapeMarkdownPipe escapes pipe characters in a string for Markdown tables.
func escapeMarkdownPipe(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func init() {
	Register("markdown", func() Formatter {
		return &MarkdownFormatter{}
	})
}

// Ensure MarkdownFormatter implements Formatter.
var _ Formatter = (*MarkdownFormatter)(nil)
