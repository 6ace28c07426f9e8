// Package app is the root Bubble Tea model. It owns the navigation stack,
// routes input to the top screen and hosts the alert and log overlays.
package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/feeportal/internal/log"
	"github.com/zjrosen/feeportal/internal/mode"
	"github.com/zjrosen/feeportal/internal/mode/history"
	"github.com/zjrosen/feeportal/internal/mode/home"
	"github.com/zjrosen/feeportal/internal/mode/login"
	"github.com/zjrosen/feeportal/internal/mode/options"
	"github.com/zjrosen/feeportal/internal/mode/register"
	"github.com/zjrosen/feeportal/internal/mode/support"
	"github.com/zjrosen/feeportal/internal/nav"
	"github.com/zjrosen/feeportal/internal/ui/shared/alert"
	"github.com/zjrosen/feeportal/internal/ui/shared/logoverlay"
	"github.com/zjrosen/feeportal/internal/ui/styles"
)

const headerHeight = 2

// Option configures a Model.
type Option func(*Model)

// WithChanges makes the app reload payment data whenever changes fires.
// invalidate runs before screens are told, so the reload misses any cache.
func WithChanges(changes <-chan struct{}, invalidate func()) Option {
	return func(m *Model) {
		m.changes = changes
		m.invalidate = invalidate
	}
}

// Model is the root model.
type Model struct {
	services mode.Services
	stack    nav.Stack
	screens  []mode.Screen
	alert    alert.Model
	logs     logoverlay.Model

	changes    <-chan struct{}
	invalidate func()

	width  int
	height int
}

// New creates the app with the home screen as root.
func New(services mode.Services, opts ...Option) Model {
	m := Model{
		services: services,
		stack:    nav.NewStack(nav.RouteHome),
		screens:  []mode.Screen{home.New()},
		alert:    alert.New(),
		logs:     logoverlay.New(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Screen builds the screen for route.
func Screen(route nav.Route, services mode.Services) mode.Screen {
	switch route {
	case nav.RouteRegister:
		return register.New(services)
	case nav.RouteLogin:
		return login.New(services)
	case nav.RoutePaymentOptions:
		return options.New(services)
	case nav.RoutePaymentHistory:
		return history.New(services)
	case nav.RouteSupport:
		return support.New()
	default:
		return home.New()
	}
}

// Current returns the top screen.
func (m Model) Current() mode.Screen {
	return m.screens[len(m.screens)-1]
}

// Stack returns the navigation stack.
func (m Model) Stack() nav.Stack { return m.stack }

// Alert returns the alert dialog state.
func (m Model) Alert() alert.Model { return m.alert }

// Logs returns the log overlay state.
func (m Model) Logs() logoverlay.Model { return m.logs }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Current().Init(), m.waitForChange())
}

func (m Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return mode.DataChangedMsg{}
	}
}

func (m Model) screenHeight() int {
	return max(m.height-headerHeight, 0)
}

func (m *Model) setTop(s mode.Screen) {
	m.screens[len(m.screens)-1] = s
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.alert = m.alert.SetSize(msg.Width, msg.Height)
		m.logs = m.logs.SetSize(msg.Width, msg.Height)
		for i, s := range m.screens {
			m.screens[i] = s.SetSize(msg.Width, m.screenHeight())
		}
		return m, nil

	case mode.NavigateMsg:
		return m.push(msg.To)

	case mode.BackMsg:
		return m.pop(), nil

	case mode.ShowAlertMsg:
		log.Debug(log.CatUI, "Alert shown", "title", msg.Title)
		m.alert = m.alert.Show(msg.Title, msg.Message, msg.Then)
		return m, nil

	case alert.DismissedMsg:
		if msg.Then == nil {
			return m, nil
		}
		then := msg.Then
		return m, func() tea.Msg { return then }

	case logoverlay.CloseMsg:
		return m, nil

	case mode.DataChangedMsg:
		log.Info(log.CatWatcher, "Payment data changed, reloading")
		if m.invalidate != nil {
			m.invalidate()
		}
		return m, tea.Batch(m.waitForChange(), m.broadcast(msg))

	case mode.SubmitDoneMsg, history.RecordsLoadedMsg:
		// The screen that started the work may no longer be on top.
		return m, m.broadcast(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.Close()
			return m, tea.Quit
		case "ctrl+x":
			if !m.logs.Visible() {
				m.logs = m.logs.Toggle()
				return m, nil
			}
		}
		if m.logs.Visible() {
			var cmd tea.Cmd
			m.logs, cmd = m.logs.Update(msg)
			return m, cmd
		}
		if m.alert.Visible() {
			var cmd tea.Cmd
			m.alert, cmd = m.alert.Update(msg)
			return m, cmd
		}

	case tea.MouseMsg:
		if m.logs.Visible() {
			return m, nil
		}
		if m.alert.Visible() {
			var cmd tea.Cmd
			m.alert, cmd = m.alert.Update(msg)
			return m, cmd
		}
	}

	s, cmd := m.Current().Update(msg)
	m.setTop(s)
	return m, cmd
}

// broadcast delivers msg to every screen on the stack.
func (m Model) broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.screens))
	for i, s := range m.screens {
		var cmd tea.Cmd
		m.screens[i], cmd = s.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m Model) push(route nav.Route) (tea.Model, tea.Cmd) {
	s := Screen(route, m.services)
	if m.width > 0 || m.height > 0 {
		s = s.SetSize(m.width, m.screenHeight())
	}
	m.stack.Push(route)
	m.screens = append(m.screens, s)
	return m, s.Init()
}

func (m Model) pop() Model {
	if _, ok := m.stack.Back(); !ok {
		return m
	}
	top := m.Current()
	top.Close()
	m.screens = m.screens[:len(m.screens)-1]
	log.Debug(log.CatNav, "Screen popped", "screen", top.Route(), "now", m.stack.Current())
	return m
}

// Close releases every screen on the stack, cancelling pending submissions.
func (m Model) Close() {
	for _, s := range m.screens {
		s.Close()
	}
}

func (m Model) header() string {
	route := m.stack.Current()
	back := ""
	if m.stack.CanGoBack() {
		back = styles.MutedStyle.Render("‹ esc  ")
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(styles.TextPrimaryColor).Render(route.Title())
	line := back + title
	if m.width > 0 {
		line = lipgloss.NewStyle().Width(m.width).Render(line)
	}
	return line + "\n" + styles.MutedStyle.Render(rule(m.width))
}

func rule(width int) string {
	if width <= 0 {
		width = 40
	}
	return strings.Repeat("─", width)
}

// View implements tea.Model.
func (m Model) View() string {
	view := m.header() + "\n" + m.Current().View()
	if m.height > 0 {
		view = lipgloss.NewStyle().MaxHeight(m.height).Render(view)
	}
	if m.alert.Visible() {
		view = m.alert.Overlay(view)
	}
	if m.logs.Visible() {
		view = m.logs.Overlay(view)
	}
	return zone.Scan(view)
}
