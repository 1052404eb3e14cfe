package output

import "github.com/charmbracelet/lipgloss"

// Color constants using the ANSI 256-color palette.
const (
	// ColorPrimary is used for headers (bright blue).
	ColorPrimary = lipgloss.Color("39")

	// ColorWarning is used for "Unlimited" values (orange).
	ColorWarning = lipgloss.Color("214")

	// ColorDanger is used for probe errors (red).
	ColorDanger = lipgloss.Color("196")

	// ColorMuted is used for descriptions and "Not Available" (gray).
	ColorMuted = lipgloss.Color("245")
)

var (
	// HeaderBox contains the host and timestamp line.
	HeaderBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1).
			MarginBottom(1)

	// SectionStyle is used for section titles.
	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// LabelStyle is used for metric labels.
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	// ValueStyle is used for measurements.
	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255"))

	// UnlimitedStyle is used for "Unlimited" values.
	UnlimitedStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// ErrorStyle is used for "Error: ..." values.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger)

	// MutedStyle is used for descriptions and unavailable values.
	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)
)
