// Package support shows the contact and help page.
package support

import (
	_ "embed"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/zjrosen/feeportal/internal/log"
	"github.com/zjrosen/feeportal/internal/mode"
	"github.com/zjrosen/feeportal/internal/nav"
	"github.com/zjrosen/feeportal/internal/ui/styles"
)

//go:embed support.md
var Page string

// Style selects the glamour style. "auto" follows the terminal background.
var Style = "auto"

const defaultWidth = 80

// Render renders markdown wrapped to width.
func Render(markdown string, width int) (string, error) {
	opt := glamour.WithStandardStyle(Style)
	if Style == "auto" {
		opt = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(opt, glamour.WithWordWrap(width))
	if err != nil {
		return "", err
	}
	return r.Render(markdown)
}

// Model is the support screen.
type Model struct {
	viewport viewport.Model
	content  string
	width    int
	height   int
}

// New creates the screen rendered at the default width.
func New() Model {
	m := Model{viewport: viewport.New(defaultWidth, 0)}
	return m.render(defaultWidth)
}

// Route implements mode.Screen.
func (m Model) Route() nav.Route { return nav.RouteSupport }

// Content returns the rendered page.
func (m Model) Content() string { return m.content }

func (m Model) render(width int) Model {
	out, err := Render(Page, max(width-4, 20))
	if err != nil {
		log.ErrorErr(log.CatUI, "Rendering support page failed", err)
		out = Page
	}
	m.content = out
	m.viewport.SetContent(out)
	return m
}

// Init implements mode.Screen.
func (m Model) Init() tea.Cmd {
	log.Debug(log.CatNav, "Screen mounted", "screen", m.Route())
	return nil
}

// Close implements mode.Screen.
func (m Model) Close() {}

// SetSize implements mode.Screen.
func (m Model) SetSize(width, height int) mode.Screen {
	resized := width != m.width
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height-1, 0)
	if resized {
		m = m.render(width)
	}
	return m
}

// Update implements mode.Screen.
func (m Model) Update(msg tea.Msg) (mode.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc", "q":
			return m, mode.Back()
		case "g", "home":
			m.viewport.GotoTop()
			return m, nil
		case "G", "end":
			m.viewport.GotoBottom()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements mode.Screen.
func (m Model) View() string {
	help := styles.HelpStyle.UnsetPaddingTop().Render("↑/↓ scroll • g/G top/bottom • esc back")
	if m.height <= 0 {
		return m.content + "\n" + help
	}
	return m.viewport.View() + "\n" + help
}
