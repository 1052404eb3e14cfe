package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jamesainslie/limits/pkg/limits/logging"
	"github.com/jamesainslie/limits/pkg/limits/types"
)

// logger is the package-level logger for the TUI.
var logger = logging.Get("tui")

// Collector produces a fresh snapshot of records on every call.
type Collector interface {
	Collect() []types.Record
}

// Options configures the TUI application.
type Options struct {
	// Collector is queried on startup and on every refresh.
	Collector Collector

	// Hostname is shown in the header when set.
	Hostname string
}

// Table column titles.
const (
	columnConfiguration = "Configuration"
	columnValue         = "Value"
	columnDescription   = "Description"
)

// chromeLines is the number of lines around the table body: two border
// lines, the header, two dividers, the column titles and the footer.
const chromeLines = 7

// initializeMsg is sent once when the program starts.
type initializeMsg struct{}

// Model is the Bubble Tea model for the limits view. It owns the table and
// is the only thing that mutates it.
type Model struct {
	collector Collector
	hostname  string
	table     Table
	keys      keyMap
	help      help.Model

	lastRefresh time.Time
	now         func() time.Time

	// Window dimensions
	width  int
	height int
}

// NewModel creates a new TUI model with the given options.
func NewModel(opts Options) Model {
	m := Model{
		collector: opts.Collector,
		hostname:  opts.Hostname,
		table:     NewTable(),
		keys:      defaultKeyMap(),
		help:      help.New(),
		now:       time.Now,
		width:     80,
		height:    24,
	}
	m.resize()
	return m
}

// Init requests the first population.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		return initializeMsg{}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case initializeMsg:
		m.populate()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey handles key input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		logger.Debug("quit requested")
		return m, tea.Quit

	case key.Matches(msg, m.keys.Refresh):
		m.populate()

	case key.Matches(msg, m.keys.Up):
		m.table.MoveUp(1)

	case key.Matches(msg, m.keys.Down):
		m.table.MoveDown(1)

	case key.Matches(msg, m.keys.PageUp):
		m.table.MoveUp(m.table.PageSize())

	case key.Matches(msg, m.keys.PageDown):
		m.table.MoveDown(m.table.PageSize())

	case key.Matches(msg, m.keys.Top):
		m.table.GotoTop()

	case key.Matches(msg, m.keys.Bottom):
		m.table.GotoBottom()
	}

	return m, nil
}

// populate replaces every row with a fresh collection pass. Columns,
// striping and the row cursor are set up on the first call only.
func (m *Model) populate() {
	if !m.table.HasColumns() {
		m.table.AddColumns(columnConfiguration, columnValue, columnDescription)
		m.table.SetCursorMode(true)
		m.table.SetZebra(true)
	}

	m.table.Clear()

	var records []types.Record
	if m.collector != nil {
		records = m.collector.Collect()
	}
	for _, r := range records {
		if r.IsHeader() {
			m.table.AddRow("", "", "", "")
		}
		m.table.AddRow(r.Label, r.Label, r.Value, r.Description)
	}
	m.table.Clamp()

	m.lastRefresh = m.now()
	logger.Debug("table populated", "records", len(records), "rows", m.table.RowCount())
}

// resize fits the table into the window.
func (m *Model) resize() {
	m.help.Width = m.width - 4
	m.table.SetDimensions(m.width-4, m.height-chromeLines)
}

// Table returns the display surface.
func (m Model) Table() Table {
	return m.table
}

// LastRefresh returns when the table was last populated.
func (m Model) LastRefresh() time.Time {
	return m.lastRefresh
}

// View renders the model.
func (m Model) View() string {
	contentWidth := m.width - 4
	if contentWidth < 40 {
		contentWidth = 40
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(renderDivider(contentWidth))
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(renderDivider(contentWidth))
	b.WriteString("\n")
	b.WriteString(m.renderFooter(contentWidth))

	return outerBoxStyle.Width(m.width - 2).Render(b.String())
}

// renderHeader renders the title line.
func (m Model) renderHeader() string {
	header := " " + titleStyle.Render("LIMITS") + mutedTextStyle.Render("  OS & filesystem limits")
	if m.hostname != "" {
		header += mutedTextStyle.Render("  •  " + m.hostname)
	}
	return header
}

// renderFooter renders key help and the last refresh time.
func (m Model) renderFooter(width int) string {
	left := " " + m.help.View(m.keys)

	right := mutedTextStyle.Render("not yet loaded")
	if !m.lastRefresh.IsZero() {
		right = mutedTextStyle.Render(fmt.Sprintf("refreshed %s", m.lastRefresh.Format("15:04:05")))
	}

	spacing := width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 1 {
		spacing = 1
	}

	return left + strings.Repeat(" ", spacing) + right
}

// Run starts the TUI and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
