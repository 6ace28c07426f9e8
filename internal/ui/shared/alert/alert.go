// Package alert is a blocking informational dialog with a single OK button.
// While visible it swallows every key; enter, space or esc dismiss it and
// the dialog emits its follow-up message, if any.
package alert

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/feeportal/internal/ui/shared/overlay"
	"github.com/zjrosen/feeportal/internal/ui/styles"
)

// Titles used by the portal.
const (
	TitleError   = "Error"
	TitleSuccess = "Success"
	TitleInfo    = "Info"
)

// ZoneOK is the bubblezone id of the OK button.
const ZoneOK = "alert-ok"

const maxWidth = 50

// DismissedMsg is emitted when the dialog closes. Then is the message the
// caller attached to the alert, nil if none.
type DismissedMsg struct {
	Then tea.Msg
}

// Model is the alert dialog.
type Model struct {
	title   string
	message string
	then    tea.Msg
	visible bool
	width   int
	height  int
}

// New creates a hidden alert.
func New() Model {
	return Model{}
}

// Show displays the dialog. then is delivered with DismissedMsg on OK.
func (m Model) Show(title, message string, then tea.Msg) Model {
	m.title = title
	m.message = message
	m.then = then
	m.visible = true
	return m
}

// Visible reports whether the dialog is open.
func (m Model) Visible() bool { return m.visible }

// Title returns the current title.
func (m Model) Title() string { return m.title }

// Message returns the current message.
func (m Model) Message() string { return m.message }

// SetSize records the canvas size used by Overlay.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Update handles input while visible.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", " ", "space", "esc", "o":
			return m.dismiss()
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft &&
			zone.Get(ZoneOK).InBounds(msg) {
			return m.dismiss()
		}
	}
	return m, nil
}

func (m Model) dismiss() (Model, tea.Cmd) {
	then := m.then
	m.visible = false
	m.then = nil
	return m, func() tea.Msg { return DismissedMsg{Then: then} }
}

// View renders the dialog box.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	width := maxWidth
	if m.width > 0 {
		width = min(maxWidth, max(m.width-4, 20))
	}
	inner := width - 4

	titleColor := styles.AccentColor
	switch m.title {
	case TitleError:
		titleColor = styles.StatusErrorColor
	case TitleSuccess:
		titleColor = styles.StatusSuccessColor
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(titleColor).Render(m.title)
	body := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Render(wordwrap.String(m.message, inner))
	ok := zone.Mark(ZoneOK, styles.ButtonStyle(true).Render("OK"))

	content := strings.Join([]string{
		title,
		"",
		body,
		"",
		lipgloss.PlaceHorizontal(inner, lipgloss.Right, ok),
	}, "\n")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(titleColor).
		Padding(0, 1).
		Width(width - 2).
		Render(content)
}

// Overlay renders the dialog centered over bg when visible.
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
