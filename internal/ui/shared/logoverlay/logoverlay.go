// Package logoverlay shows recent debug log entries on top of the running
// screen, so submissions and navigation can be traced without leaving the TUI.
package logoverlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/feeportal/internal/log"
	"github.com/zjrosen/feeportal/internal/ui/shared/overlay"
	"github.com/zjrosen/feeportal/internal/ui/styles"
)

const (
	viewportMaxHeight = 25
	viewportMinHeight = 5
	maxEntries        = 10000
)

// CloseMsg is sent when the overlay closes itself.
type CloseMsg struct{}

var levelKeys = map[string]log.Level{
	"d": log.LevelDebug,
	"i": log.LevelInfo,
	"w": log.LevelWarn,
	"e": log.LevelError,
}

// Model is the overlay state.
type Model struct {
	visible  bool
	minLevel log.Level
	width    int
	height   int
	viewport viewport.Model
	ready    bool
}

// New creates a hidden overlay showing every level.
func New() Model {
	return Model{minLevel: log.LevelDebug}
}

// Visible reports whether the overlay is open.
func (m Model) Visible() bool { return m.visible }

// MinLevel returns the active level filter.
func (m Model) MinLevel() log.Level { return m.minLevel }

// Toggle opens or closes the overlay.
func (m Model) Toggle() Model {
	m.visible = !m.visible
	if m.visible {
		m.refresh()
	}
	return m
}

// SetSize records the terminal size and rebuilds the viewport.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.initViewport()
	return m
}

// Update handles keys while visible.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch k := key.String(); k {
	case "ctrl+x", "esc":
		m.visible = false
		return m, func() tea.Msg { return CloseMsg{} }
	case "c":
		log.ClearBuffer()
		m.refresh()
	case "d", "i", "w", "e":
		m.minLevel = levelKeys[k]
		m.refresh()
	case "j", "down":
		m.viewport.ScrollDown(1)
	case "k", "up":
		m.viewport.ScrollUp(1)
	case "g":
		m.viewport.GotoTop()
	case "G":
		m.viewport.GotoBottom()
	}
	return m, nil
}

func (m Model) boxWidth() int {
	return max(min(m.width-4, 100), 40)
}

func (m *Model) initViewport() {
	if m.width == 0 || m.height == 0 {
		return
	}
	// header, divider, footer divider, hint and two border rows
	height := max(min(viewportMaxHeight, m.height-6), viewportMinHeight)
	m.viewport = viewport.New(m.boxWidth()-2, height)
	m.ready = true
	m.refresh()
}

func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.content(m.boxWidth() - 2))
	m.viewport.GotoBottom()
}

func (m Model) content(width int) string {
	entries := log.Recent(maxEntries, m.minLevel)
	if len(entries) == 0 {
		return styles.MutedStyle.Italic(true).Render("No logs to display")
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = colorize(e, width)
	}
	return strings.Join(lines, "\n")
}

func colorize(e log.Entry, width int) string {
	line := strings.TrimSuffix(e.Line, "\n")
	if ansi.StringWidth(line) > width {
		line = ansi.Truncate(line, width-3, "...")
	}
	var color lipgloss.TerminalColor
	switch e.Level {
	case log.LevelError:
		color = styles.StatusErrorColor
	case log.LevelWarn:
		color = styles.StatusWarningColor
	case log.LevelInfo:
		color = styles.AccentColor
	default:
		color = styles.TextMutedColor
	}
	return lipgloss.NewStyle().Foreground(color).Render(line)
}

func (m Model) hints() string {
	hint := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	active := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Bold(true)

	parts := []string{hint.Render("[c] Clear")}
	for _, opt := range []struct {
		key   string
		label string
	}{{"d", "Debug"}, {"i", "Info"}, {"w", "Warn"}, {"e", "Error"}} {
		text := "[" + opt.key + "] " + opt.label
		if levelKeys[opt.key] == m.minLevel {
			parts = append(parts, active.Render(text))
		} else {
			parts = append(parts, hint.Render(text))
		}
	}
	return strings.Join(parts, "  ")
}

// View renders the overlay box.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	width := m.boxWidth()
	divider := lipgloss.NewStyle().Foreground(styles.OverlayBorderColor).Render(strings.Repeat("─", width-2))

	body := m.content(width - 2)
	if m.ready {
		body = m.viewport.View()
	}

	inner := strings.Join([]string{
		lipgloss.NewStyle().Bold(true).Foreground(styles.OverlayTitleColor).PaddingLeft(1).Render("Logs"),
		divider,
		body,
		divider,
		m.hints(),
	}, "\n")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(width - 2).
		Render(inner)
}

// Overlay renders the log box centered over bg when visible.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.View(), bg)
}
