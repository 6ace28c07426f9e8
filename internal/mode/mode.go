// Package mode defines what every portal screen shares: the services it is
// given, the screen interface and the messages screens use to ask the app
// to navigate or show an alert.
package mode

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/feeportal/internal/config"
	"github.com/zjrosen/feeportal/internal/nav"
	"github.com/zjrosen/feeportal/internal/payments"
	"github.com/zjrosen/feeportal/internal/submit"
)

// Services are the dependencies handed to screens. Screens that submit build
// their own submit.Simulator from Submit, so one screen's pending submission
// never blocks another's.
type Services struct {
	Config   config.Config
	Payments payments.Provider
	Submit   submit.Delays
}

// Screen is one entry of the navigation stack.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View() string
	SetSize(width, height int) Screen
	Route() nav.Route
	// Close releases anything the screen started, such as a pending
	// submission. It is called when the screen leaves the stack.
	Close()
}

// NavigateMsg pushes a screen.
type NavigateMsg struct {
	To nav.Route
}

// BackMsg pops the current screen.
type BackMsg struct{}

// ShowAlertMsg opens the blocking alert. Then is dispatched when the user
// presses OK.
type ShowAlertMsg struct {
	Title   string
	Message string
	Then    tea.Msg
}

// SubmitDoneMsg reports that a pending submission resolved. Cancelled is set
// when it was cancelled instead of completing.
type SubmitDoneMsg struct {
	ID        string
	Kind      submit.Kind
	Outcome   submit.Outcome
	Cancelled bool
}

// WaitForSubmit returns a command that blocks until p resolves.
func WaitForSubmit(p *submit.Pending) tea.Cmd {
	return func() tea.Msg {
		o, ok := p.Wait()
		return SubmitDoneMsg{ID: p.ID, Kind: p.Kind, Outcome: o, Cancelled: !ok}
	}
}

// DataChangedMsg reports that the payment records source changed on disk.
type DataChangedMsg struct{}

// Navigate returns a command that pushes to.
func Navigate(to nav.Route) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{To: to} }
}

// Back returns a command that pops the current screen.
func Back() tea.Cmd {
	return func() tea.Msg { return BackMsg{} }
}

// Alert returns a command that opens the alert dialog.
func Alert(title, message string, then tea.Msg) tea.Cmd {
	return func() tea.Msg { return ShowAlertMsg{Title: title, Message: message, Then: then} }
}
