// Package history is the payment history screen: the paid total, the status
// filter tabs and the filtered transaction list.
package history

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/feeportal/internal/log"
	"github.com/zjrosen/feeportal/internal/mode"
	"github.com/zjrosen/feeportal/internal/nav"
	"github.com/zjrosen/feeportal/internal/payments"
	"github.com/zjrosen/feeportal/internal/selection"
	"github.com/zjrosen/feeportal/internal/ui/shared/table"
	"github.com/zjrosen/feeportal/internal/ui/styles"
)

const (
	zoneNewPayment = "history-new-payment"
	loadTimeout    = 5 * time.Second
)

func filterZone(i int) string { return "history-filter-" + strconv.Itoa(i) }

// RecordsLoadedMsg carries the result of a provider read.
type RecordsLoadedMsg struct {
	Records []payments.PaymentRecord
	Err     error
}

// Load reads every record from provider.
func Load(provider payments.Provider) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		records, err := provider.Records(ctx)
		return RecordsLoadedMsg{Records: records, Err: err}
	}
}

// StatusColor maps a payment status to its badge colour.
func StatusColor(s payments.Status) lipgloss.TerminalColor {
	switch s {
	case payments.StatusCompleted:
		return styles.StatusSuccessColor
	case payments.StatusPending:
		return styles.StatusWarningColor
	case payments.StatusFailed:
		return styles.StatusErrorColor
	}
	return styles.TextMutedColor
}

func record(row any) payments.PaymentRecord {
	r, _ := row.(payments.PaymentRecord)
	return r
}

var columns = []table.ColumnConfig{
	{Key: "date", Header: "Date", Width: 12, Render: func(row any, _ string, _ int, _ bool) string {
		return record(row).DisplayDate()
	}},
	{Key: "description", Header: "Description", MinWidth: 16, Render: func(row any, _ string, _ int, _ bool) string {
		return record(row).Description
	}},
	{Key: "method", Header: "Method", Width: 14, Render: func(row any, _ string, _ int, _ bool) string {
		return record(row).Method
	}},
	{Key: "transaction", Header: "ID", Width: 13, Render: func(row any, _ string, _ int, _ bool) string {
		return record(row).TransactionID
	}},
	{Key: "amount", Header: "Amount", Width: 10, Align: lipgloss.Right, Render: func(row any, _ string, _ int, _ bool) string {
		return record(row).Amount.Dollars()
	}},
	{Key: "status", Header: "Status", Width: 9, Render: func(row any, _ string, _ int, _ bool) string {
		return record(row).Status.Label()
	}, Style: func(row any) lipgloss.Style {
		return lipgloss.NewStyle().Bold(true).Foreground(StatusColor(record(row).Status))
	}},
}

func newTable() table.Model {
	return table.New(table.TableConfig{
		Columns:      columns,
		ShowHeader:   true,
		EmptyMessage: "No payments found for the selected filter",
	})
}

// RenderTable renders records the way the screen lists them.
func RenderTable(records []payments.PaymentRecord, width int) string {
	rows := make([]any, len(records))
	for i, r := range records {
		rows[i] = r
	}
	return newTable().SetRows(rows).SetWidth(width).View()
}

// Model is the payment history screen.
type Model struct {
	provider payments.Provider
	view     payments.View
	filter   selection.Selection[payments.Filter]
	table    table.Model
	viewport viewport.Model
	loaded   bool
	err      error
	width    int
	height   int
}

// New creates the screen with the All tab active. Records load in Init.
func New(services mode.Services) Model {
	m := Model{
		provider: services.Payments,
		filter:   selection.New(payments.FilterAll),
		table:    newTable(),
		viewport: viewport.New(0, 0),
	}
	return m.refresh()
}

// Route implements mode.Screen.
func (m Model) Route() nav.Route { return nav.RoutePaymentHistory }

// Filter returns the active tab.
func (m Model) Filter() payments.Filter {
	f, _ := m.filter.Selected()
	return f
}

// Visible returns the records shown under the active tab.
func (m Model) Visible() []payments.PaymentRecord {
	return m.view.Filtered(m.Filter())
}

// Init implements mode.Screen.
func (m Model) Init() tea.Cmd {
	log.Debug(log.CatNav, "Screen mounted", "screen", m.Route())
	if m.provider == nil {
		return nil
	}
	return Load(m.provider)
}

// Close implements mode.Screen.
func (m Model) Close() {}

// SetSize implements mode.Screen.
func (m Model) SetSize(width, height int) mode.Screen {
	m.width = width
	m.height = height
	return m.refresh()
}

func (m Model) setFilter(f payments.Filter) Model {
	m.filter.Select(f)
	log.Debug(log.CatPayments, "History filter changed", "filter", f)
	m.viewport.GotoTop()
	return m.refresh()
}

// refresh rebuilds the table rows and viewport content.
func (m Model) refresh() Model {
	visible := m.Visible()
	rows := make([]any, len(visible))
	for i, r := range visible {
		rows[i] = r
	}
	m.table = m.table.SetRows(rows).SetWidth(m.contentWidth())

	m.viewport.Width = max(m.width, 0)
	m.viewport.Height = max(m.height-1, 0)
	m.viewport.SetContent(m.body())
	return m
}

// Update implements mode.Screen.
func (m Model) Update(msg tea.Msg) (mode.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case RecordsLoadedMsg:
		if msg.Err != nil {
			log.ErrorErr(log.CatPayments, "Loading history failed", msg.Err)
			m.err = msg.Err
			return m.refresh(), nil
		}
		m.err = nil
		m.loaded = true
		m.view = payments.NewView(msg.Records)
		log.Debug(log.CatPayments, "History loaded", "records", m.view.Len())
		return m.refresh(), nil

	case mode.DataChangedMsg:
		if m.provider == nil {
			return m, nil
		}
		return m, Load(m.provider)

	case tea.KeyMsg:
		switch k := msg.String(); k {
		case "left", "h", "shift+tab":
			m.filter.Cycle(payments.Filters, -1)
			return m.setFilter(m.Filter()), nil
		case "right", "l", "tab":
			m.filter.Cycle(payments.Filters, 1)
			return m.setFilter(m.Filter()), nil
		case "1", "2", "3", "4":
			return m.setFilter(payments.Filters[k[0]-'1']), nil
		case "n", "enter":
			return m, mode.Navigate(nav.RoutePaymentOptions)
		case "r":
			if m.provider != nil {
				return m, Load(m.provider)
			}
			return m, nil
		case "esc":
			return m, mode.Back()
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
			for i, f := range payments.Filters {
				if zone.Get(filterZone(i)).InBounds(msg) {
					return m.setFilter(f), nil
				}
			}
			if zone.Get(zoneNewPayment).InBounds(msg) {
				return m, mode.Navigate(nav.RoutePaymentOptions)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return max(m.width-2, 40)
}

func (m Model) renderSummary() string {
	lines := []string{
		" " + lipgloss.NewStyle().Bold(true).Foreground(styles.StatusSuccessColor).Render(m.view.TotalPaid().Dollars()),
		" " + styles.MutedStyle.Render("Total Paid This Year"),
	}
	return styles.RenderFormSection(lines, "Payment Summary", "", min(m.contentWidth(), 48), true, styles.StatusSuccessColor)
}

func (m Model) renderTabs() string {
	counts := m.view.Counts()
	tabs := make([]string, len(payments.Filters))
	for i, f := range payments.Filters {
		label := fmt.Sprintf("%s (%d)", f.Label(), counts[f])
		tabs[i] = zone.Mark(filterZone(i), styles.ButtonStyle(m.filter.Is(f)).Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(tabs, " "))
}

func (m Model) body() string {
	var sections []string
	switch {
	case m.err != nil:
		sections = append(sections,
			styles.ErrorStyle.Render("Could not load payment history"),
			styles.MutedStyle.Render(m.err.Error()),
			"",
		)
	case !m.loaded:
		sections = append(sections, styles.MutedStyle.Render("Loading payments..."), "")
	}

	sections = append(sections,
		m.renderSummary(),
		"",
		m.renderTabs(),
		"",
		styles.HeaderStyle.Render(fmt.Sprintf("Transaction History (%d)", len(m.Visible()))),
		m.table.View(),
		"",
		zone.Mark(zoneNewPayment, styles.ButtonStyle(true).Render("Make New Payment")),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// View implements mode.Screen.
func (m Model) View() string {
	help := styles.HelpStyle.UnsetPaddingTop().Render("←/→ filter • 1-4 tab • ↑/↓ scroll • n new payment • r reload • esc back")
	if m.height <= 0 {
		return m.body() + "\n" + help
	}
	return m.viewport.View() + "\n" + help
}
