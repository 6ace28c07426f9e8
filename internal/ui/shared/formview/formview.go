// Package formview is a full-screen form: labelled text inputs followed by a
// row of buttons. Every keystroke is written through to a form.Record so the
// record always mirrors what is on screen.
package formview

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/feeportal/internal/form"
	"github.com/zjrosen/feeportal/internal/log"
	"github.com/zjrosen/feeportal/internal/ui/styles"
)

// FieldConfig describes one text input.
type FieldConfig struct {
	Key         string
	Label       string
	Placeholder string
	Required    bool
	Secret      bool
	CharLimit   int
}

// ButtonConfig describes one button. The first button of a form is primary:
// it submits and shows the loading spinner.
type ButtonConfig struct {
	Key   string
	Label string
	// LoadingLabel replaces Label while loading. Only used on the primary button.
	LoadingLabel string
	// Link renders the button as an inline text link.
	Link bool
}

// FormConfig configures a form.
type FormConfig struct {
	// ID prefixes bubblezone ids so several forms never collide.
	ID       string
	Title    string
	Subtitle string
	Fields   []FieldConfig
	Buttons  []ButtonConfig
}

// PressedMsg reports a button press. Enter on the last field and ctrl+s
// press the primary button.
type PressedMsg struct {
	FormID string
	Key    string
}

// Model is the form state.
type Model struct {
	cfg     FormConfig
	record  form.Record
	inputs  []textinput.Model
	spinner spinner.Model

	// focus indexes fields first, then buttons.
	focus   int
	loading bool

	width  int
	height int
	offset int
}

const defaultWidth = 60

// New creates a form bound to rec. Field keys must be fields of rec.
func New(cfg FormConfig, rec form.Record) Model {
	inputs := make([]textinput.Model, len(cfg.Fields))
	for i, f := range cfg.Fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = f.Placeholder
		ti.CharLimit = f.CharLimit
		if f.Secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		if v, err := rec.Get(f.Key); err == nil {
			ti.SetValue(v)
		}
		inputs[i] = ti
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.AccentColor)

	m := Model{
		cfg:     cfg,
		record:  rec,
		inputs:  inputs,
		spinner: sp,
		width:   defaultWidth,
	}
	m.applyFocus()
	return m
}

// Focused returns the key of the focused field or button.
func (m Model) Focused() string {
	if m.focus < len(m.inputs) {
		return m.cfg.Fields[m.focus].Key
	}
	if b := m.focus - len(m.inputs); b < len(m.cfg.Buttons) {
		return m.cfg.Buttons[b].Key
	}
	return ""
}

// Loading reports whether the primary button shows the spinner.
func (m Model) Loading() bool { return m.loading }

// SetLoading toggles the loading state. Inputs are read-only while loading.
func (m Model) SetLoading(loading bool) (Model, tea.Cmd) {
	m.loading = loading
	if loading {
		return m, m.spinner.Tick
	}
	return m, nil
}

// SetSize sets the render area.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	for i := range m.inputs {
		m.inputs[i].Width = max(m.sectionWidth()-4, 1)
	}
	return m
}

func (m Model) sectionWidth() int {
	return max(min(m.width-2, defaultWidth), 20)
}

func (m Model) focusables() int {
	return len(m.inputs) + len(m.cfg.Buttons)
}

func (m *Model) applyFocus() {
	for i := range m.inputs {
		if i == m.focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m *Model) move(delta int) {
	n := m.focusables()
	if n == 0 {
		return
	}
	m.focus = ((m.focus+delta)%n + n) % n
	m.applyFocus()
}

func (m Model) press(key string) tea.Cmd {
	id := m.cfg.ID
	return func() tea.Msg { return PressedMsg{FormID: id, Key: key} }
}

func (m Model) pressPrimary() tea.Cmd {
	if len(m.cfg.Buttons) == 0 {
		return nil
	}
	return m.press(m.cfg.Buttons[0].Key)
}

// ZoneID returns the bubblezone id for a field or button key.
func (m Model) ZoneID(key string) string {
	return m.cfg.ID + "-" + key
}

// Update handles navigation, typing and presses.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		for i, f := range m.cfg.Fields {
			if zone.Get(m.ZoneID(f.Key)).InBounds(msg) {
				m.focus = i
				m.applyFocus()
				return m, nil
			}
		}
		for i, b := range m.cfg.Buttons {
			if zone.Get(m.ZoneID(b.Key)).InBounds(msg) {
				m.focus = len(m.inputs) + i
				m.applyFocus()
				return m, m.press(b.Key)
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			m.move(1)
			m.scrollToFocus()
			return m, nil
		case "shift+tab", "up":
			m.move(-1)
			m.scrollToFocus()
			return m, nil
		case "ctrl+s":
			return m, m.pressPrimary()
		case "enter":
			if m.focus < len(m.inputs) {
				if m.focus == len(m.inputs)-1 {
					return m, m.pressPrimary()
				}
				m.move(1)
				m.scrollToFocus()
				return m, nil
			}
			return m, m.press(m.Focused())
		}

		if m.focus >= len(m.inputs) || m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		m.sync(m.focus)
		return m, cmd
	}

	if m.focus < len(m.inputs) {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

// sync writes the input value for field i into the record.
func (m Model) sync(i int) {
	key := m.cfg.Fields[i].Key
	if err := m.record.Set(key, m.inputs[i].Value()); err != nil {
		log.ErrorErr(log.CatForm, "Field update failed", err, "field", key)
		return
	}
	log.Debug(log.CatForm, "Field updated", "form", m.cfg.ID, "field", key, "len", len([]rune(m.inputs[i].Value())))
}

// render returns every line of the form and the line span of the focused element.
func (m Model) render() (lines []string, focusStart, focusEnd int) {
	w := m.sectionWidth()

	if m.cfg.Title != "" {
		lines = append(lines, styles.TitleStyle.Render(m.cfg.Title))
	}
	if m.cfg.Subtitle != "" {
		lines = append(lines, strings.Split(styles.SubtitleStyle.Render(wordwrap.String(m.cfg.Subtitle, w)), "\n")...)
	}
	if len(lines) > 0 {
		lines = append(lines, "")
	}

	for i, f := range m.cfg.Fields {
		hint := ""
		if f.Required {
			hint = "required"
		}
		section := styles.RenderFormSection([]string{" " + m.inputs[i].View()}, f.Label, hint, w, i == m.focus, styles.AccentColor)
		section = zone.Mark(m.ZoneID(f.Key), section)
		start := len(lines)
		lines = append(lines, strings.Split(section, "\n")...)
		if i == m.focus {
			focusStart, focusEnd = start, len(lines)
		}
	}

	var buttons, links []string
	for i, b := range m.cfg.Buttons {
		focused := m.focus == len(m.inputs)+i
		label := b.Label
		if i == 0 && m.loading {
			label = m.spinner.View() + " " + b.LoadingLabel
			if b.LoadingLabel == "" {
				label = m.spinner.View() + " " + b.Label
			}
		}
		var rendered string
		if b.Link {
			style := lipgloss.NewStyle().Foreground(styles.AccentColor)
			if focused {
				style = style.Underline(true).Bold(true)
			}
			rendered = style.Render(label)
		} else {
			rendered = styles.ButtonStyle(focused).Render(label)
		}
		rendered = zone.Mark(m.ZoneID(b.Key), rendered)
		if b.Link {
			links = append(links, rendered)
		} else {
			buttons = append(buttons, rendered)
		}
	}

	lines = append(lines, "")
	start := len(lines)
	if len(buttons) > 0 {
		lines = append(lines, strings.Split(lipgloss.JoinHorizontal(lipgloss.Top, buttons...), "\n")...)
	}
	if len(links) > 0 {
		lines = append(lines, strings.Join(links, styles.MutedStyle.Render("  ·  ")))
	}
	if m.focus >= len(m.inputs) {
		focusStart, focusEnd = start, len(lines)
	}
	return lines, focusStart, focusEnd
}

func (m *Model) scrollToFocus() {
	if m.height <= 0 {
		return
	}
	lines, start, end := m.render()
	if start < m.offset {
		m.offset = start
	}
	if end > m.offset+m.height {
		m.offset = end - m.height
	}
	m.offset = max(min(m.offset, len(lines)-m.height), 0)
}

// View renders the visible window of the form.
func (m Model) View() string {
	lines, _, _ := m.render()
	if m.height > 0 && len(lines) > m.height {
		from := min(m.offset, len(lines)-m.height)
		lines = lines[from : from+m.height]
	}
	return strings.Join(lines, "\n")
}
