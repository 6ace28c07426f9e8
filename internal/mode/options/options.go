// Package options is the payment options screen: the amount due, the
// payment method catalog and the proceed action.
package options

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/feeportal/internal/log"
	"github.com/zjrosen/feeportal/internal/mode"
	"github.com/zjrosen/feeportal/internal/mode/shared"
	"github.com/zjrosen/feeportal/internal/nav"
	"github.com/zjrosen/feeportal/internal/payments"
	"github.com/zjrosen/feeportal/internal/ui/styles"
)

// TitleProcessing titles the gateway confirmation alert.
const TitleProcessing = "Payment Processing"

const (
	zoneProceed = "options-proceed"
	zoneHistory = "options-history"
)

func methodZone(i int) string { return "options-method-" + strconv.Itoa(i) }

// Model is the payment options screen.
type Model struct {
	amountDue string
	checkout  payments.Checkout
	width     int
	height    int
}

// New creates the screen. The amount due comes from configuration.
func New(services mode.Services) Model {
	return Model{amountDue: services.Config.UI.AmountDue}
}

// Route implements mode.Screen.
func (m Model) Route() nav.Route { return nav.RoutePaymentOptions }

// Checkout returns the selection state.
func (m Model) Checkout() payments.Checkout { return m.checkout }

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

func (m Model) selectMethod(i int) Model {
	id := payments.Methods[i].ID
	m.checkout.Select(id)
	log.Debug(log.CatPayments, "Payment method selected", "method", id)
	return m
}

func (m Model) proceed() tea.Cmd {
	method, err := m.checkout.ProceedToPayment()
	if err != nil {
		log.Warn(log.CatPayments, "Proceed without selection")
		return shared.ErrorAlert(err)
	}
	log.Info(log.CatPayments, "Proceeding to payment", "method", method.ID)
	return mode.Alert(TitleProcessing, payments.GatewayMessage(method), mode.NavigateMsg{To: nav.RoutePaymentHistory})
}

// Update implements mode.Screen.
func (m Model) Update(msg tea.Msg) (mode.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch k := msg.String(); k {
		case "up", "k", "shift+tab":
			m.checkout.Cycle(-1)
		case "down", "j", "tab":
			m.checkout.Cycle(1)
		case "1", "2", "3", "4":
			return m.selectMethod(int(k[0] - '1')), nil
		case "p", "ctrl+s", "enter":
			return m, m.proceed()
		case "h":
			return m, mode.Navigate(nav.RoutePaymentHistory)
		case "esc":
			return m, mode.Back()
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		for i := range payments.Methods {
			if zone.Get(methodZone(i)).InBounds(msg) {
				return m.selectMethod(i), nil
			}
		}
		if zone.Get(zoneProceed).InBounds(msg) {
			return m, m.proceed()
		}
		if zone.Get(zoneHistory).InBounds(msg) {
			return m, mode.Navigate(nav.RoutePaymentHistory)
		}
	}
	return m, nil
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 60
	}
	return max(min(m.width-2, 72), 30)
}

func (m Model) renderAmount() string {
	lines := []string{
		" " + lipgloss.NewStyle().Bold(true).Foreground(styles.AccentColor).Render(m.amountDue),
		" " + styles.MutedStyle.Render("Semester fees including tuition and materials"),
	}
	return styles.RenderFormSection(lines, "Amount Due", "", m.contentWidth(), true, styles.AccentColor)
}

func (m Model) renderMethod(i int) string {
	method := payments.Methods[i]
	selected := m.checkout.IsSelected(method.ID)

	radio := styles.MutedStyle.Render("○")
	border := styles.BorderDefaultColor
	if selected {
		radio = lipgloss.NewStyle().Foreground(styles.AccentColor).Render("●")
		border = styles.AccentColor
	}

	text := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Foreground(styles.TextPrimaryColor).Render(method.Title),
		styles.SubtitleStyle.Render(method.Description),
		styles.MutedStyle.Render(method.Fees),
	)
	row := lipgloss.JoinHorizontal(lipgloss.Center, method.Icon+"  ", text)
	gap := max(m.contentWidth()-4-lipgloss.Width(row)-1, 1)
	row = lipgloss.JoinHorizontal(lipgloss.Center, row, lipgloss.NewStyle().Width(gap).Render(""), radio)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(m.contentWidth() - 2).
		Render(row)
	return zone.Mark(methodZone(i), box)
}

// View implements mode.Screen.
func (m Model) View() string {
	header := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Choose Payment Method"),
		styles.SubtitleStyle.Render("Select your preferred way to pay for institute fees"),
	)

	methods := make([]string, len(payments.Methods))
	for i := range payments.Methods {
		methods[i] = m.renderMethod(i)
	}

	_, hasSelection := m.checkout.Selected()
	proceed := zone.Mark(zoneProceed, styles.ButtonStyle(hasSelection).Render("Proceed to Payment"))
	history := zone.Mark(zoneHistory, styles.ButtonStyle(false).Render("View Payment History"))

	help := styles.HelpStyle.Render("↑/↓ choose • 1-4 pick • p proceed • h history • esc back")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		m.renderAmount(),
		"",
		styles.HeaderStyle.Render("Payment Methods"),
		lipgloss.JoinVertical(lipgloss.Left, methods...),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, proceed, "  ", history),
		help,
	)
}
