// Package home is the landing screen: four feature cards and a support link.
package home

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/feeportal/internal/log"
	"github.com/zjrosen/feeportal/internal/mode"
	"github.com/zjrosen/feeportal/internal/nav"
	"github.com/zjrosen/feeportal/internal/ui/styles"
)

// Card is one feature entry.
type Card struct {
	Title       string
	Description string
	Icon        string
	Color       lipgloss.TerminalColor
	Route       nav.Route
}

// Cards are shown in this order.
var Cards = []Card{
	{Title: "Student Registration", Description: "Create your account and get started", Icon: "👤", Color: styles.AccentColor, Route: nav.RouteRegister},
	{Title: "Login", Description: "Access your existing account", Icon: "🔐", Color: styles.StatusSuccessColor, Route: nav.RouteLogin},
	{Title: "Payment Options", Description: "View available payment methods", Icon: "💳", Color: styles.StatusWarningColor, Route: nav.RoutePaymentOptions},
	{Title: "Payment History", Description: "Track your payment records", Icon: "📊", Color: styles.StatusInfoColor, Route: nav.RoutePaymentHistory},
}

const zoneSupport = "home-support"

func cardZone(i int) string { return "home-card-" + strconv.Itoa(i) }

// Model is the home screen.
type Model struct {
	cursor int
	width  int
	height int
}

// New creates the home screen.
func New() Model {
	return Model{}
}

// Route implements mode.Screen.
func (m Model) Route() nav.Route { return nav.RouteHome }

// Cursor returns the highlighted card index.
func (m Model) Cursor() int { return m.cursor }

// Init implements mode.Screen.
func (m Model) Init() tea.Cmd {
	log.Debug(log.CatNav, "Screen mounted", "screen", m.Route())
	return nil
}

// Close implements mode.Screen.
func (m Model) Close() {}

// SetSize implements mode.Screen.
func (m Model) SetSize(width, height int) mode.Screen {
	m.width = width
	m.height = height
	return m
}

func (m Model) open(i int) tea.Cmd {
	card := Cards[i]
	log.Debug(log.CatNav, "Feature card selected", "card", card.Title, "route", card.Route)
	return mode.Navigate(card.Route)
}

// Update implements mode.Screen.
func (m Model) Update(msg tea.Msg) (mode.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch k := msg.String(); k {
		case "up", "k", "shift+tab":
			m.cursor = (m.cursor - 1 + len(Cards)) % len(Cards)
		case "down", "j", "tab":
			m.cursor = (m.cursor + 1) % len(Cards)
		case "enter":
			return m, m.open(m.cursor)
		case "1", "2", "3", "4":
			i := int(k[0] - '1')
			m.cursor = i
			return m, m.open(i)
		case "s":
			log.Debug(log.CatNav, "Support pressed")
			return m, mode.Navigate(nav.RouteSupport)
		case "q":
			return m, tea.Quit
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		for i := range Cards {
			if zone.Get(cardZone(i)).InBounds(msg) {
				m.cursor = i
				return m, m.open(i)
			}
		}
		if zone.Get(zoneSupport).InBounds(msg) {
			return m, mode.Navigate(nav.RouteSupport)
		}
	}
	return m, nil
}

func (m Model) cardWidth() int {
	if m.width <= 0 {
		return 56
	}
	return max(min(m.width-4, 64), 30)
}

func (m Model) renderCard(i int) string {
	card := Cards[i]
	focused := i == m.cursor

	icon := lipgloss.NewStyle().Foreground(card.Color).Render(card.Icon)
	title := lipgloss.NewStyle().Bold(true).Foreground(styles.TextPrimaryColor).Render(card.Title)
	desc := styles.SubtitleStyle.Render(styles.TruncateString(card.Description, m.cardWidth()-10))
	chevron := styles.MutedStyle.Render("›")

	body := lipgloss.JoinHorizontal(lipgloss.Center,
		icon+"  ",
		lipgloss.JoinVertical(lipgloss.Left, title, desc),
	)
	gap := max(m.cardWidth()-4-lipgloss.Width(body)-1, 1)
	body = lipgloss.JoinHorizontal(lipgloss.Center, body, strings.Repeat(" ", gap), chevron)

	border := styles.BorderDefaultColor
	if focused {
		border = styles.AccentColor
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(m.cardWidth() - 2).
		Render(body)
	return zone.Mark(cardZone(i), box)
}

// View implements mode.Screen.
func (m Model) View() string {
	header := lipgloss.JoinVertical(lipgloss.Left,
		styles.SubtitleStyle.Render("Welcome to"),
		lipgloss.NewStyle().Bold(true).Foreground(styles.AccentColor).Render("Institute Payment Portal"),
		styles.SubtitleStyle.Render("Manage your payments and registration easily"),
	)

	cards := make([]string, len(Cards))
	for i := range Cards {
		cards[i] = m.renderCard(i)
	}

	footer := lipgloss.JoinVertical(lipgloss.Left,
		styles.MutedStyle.Render("Need help? Contact our support team"),
		zone.Mark(zoneSupport, styles.ButtonStyle(false).Render("Get Support")),
	)

	help := styles.HelpStyle.Render("↑/↓ select • enter open • 1-4 jump • s support • q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		lipgloss.JoinVertical(lipgloss.Left, cards...),
		"",
		footer,
		help,
	)
}
