package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"
)

// PlainFormatter formats a snapshot as aligned plain text, one section per
// block, with no colors or styling.
type PlainFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *PlainFormatter) Format(w *bytes.Buffer, s *Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	for i, r := range s.Records {
		if r.IsHeader() {
			if i > 0 {
				fmt.Fprintln(tw)
			}
			fmt.Fprintf(tw, "[%s]\n", r.Value)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Label, r.Value, r.Description)
	}

	return tw.Flush()
}

func init() {
	Register("plain", func() Formatter {
		return &PlainFormatter{}
	})
}

// Ensure PlainFormatter implements Formatter.
var _ Formatter = (*PlainFormatter)(nil)
