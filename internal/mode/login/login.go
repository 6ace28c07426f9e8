// Package login is the student login screen.
package login

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/feeportal/internal/form"
	"github.com/zjrosen/feeportal/internal/log"
	"github.com/zjrosen/feeportal/internal/mode"
	"github.com/zjrosen/feeportal/internal/mode/shared"
	"github.com/zjrosen/feeportal/internal/nav"
	"github.com/zjrosen/feeportal/internal/submit"
	"github.com/zjrosen/feeportal/internal/ui/shared/alert"
	"github.com/zjrosen/feeportal/internal/ui/shared/formview"
	"github.com/zjrosen/feeportal/internal/ui/styles"
)

const (
	formID         = "login"
	buttonSubmit   = "submit"
	buttonForgot   = "forgot"
	buttonRegister = "register"
)

// ForgotPasswordMessage is shown by the "Forgot Password?" link.
const ForgotPasswordMessage = "Password reset functionality will be available soon."

// Config is the login form layout.
var Config = formview.FormConfig{
	ID:       formID,
	Title:    "Welcome Back",
	Subtitle: "Sign in to access your account and manage payments",
	Fields: []formview.FieldConfig{
		{Key: form.FieldEmail, Label: "Email Address", Placeholder: "Enter your email"},
		{Key: form.FieldPassword, Label: "Password", Placeholder: "Enter your password", Secret: true},
	},
	Buttons: []formview.ButtonConfig{
		{Key: buttonSubmit, Label: "Sign In", LoadingLabel: "Signing In..."},
		{Key: buttonForgot, Label: "Forgot Password?", Link: true},
		{Key: buttonRegister, Label: "Don't have an account? Register here", Link: true},
	},
}

// Model is the login screen.
type Model struct {
	services mode.Services
	record   *form.Login
	form     formview.Model
	sim      *submit.Simulator
	pending  *submit.Pending
}

// New creates the screen with an empty login record.
func New(services mode.Services) Model {
	rec := &form.Login{}
	return Model{
		services: services,
		record:   rec,
		sim:      submit.New(services.Submit),
		form:     formview.New(Config, rec),
	}
}

// Route implements mode.Screen.
func (m Model) Route() nav.Route { return nav.RouteLogin }

// Record returns the form record.
func (m Model) Record() *form.Login { return m.record }

// Loading reports whether a submission is pending.
func (m Model) Loading() bool { return m.pending != nil }

// Init implements mode.Screen.
func (m Model) Init() tea.Cmd {
	log.Debug(log.CatNav, "Screen mounted", "screen", m.Route())
	return nil
}

// Close cancels a pending submission.
func (m Model) Close() {
	if m.pending != nil {
		m.pending.Cancel()
	}
}

// SetSize implements mode.Screen.
func (m Model) SetSize(width, height int) mode.Screen {
	m.form = m.form.SetSize(width, max(height-1, 0))
	return m
}

// Update implements mode.Screen.
func (m Model) Update(msg tea.Msg) (mode.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return m, mode.Back()
		}

	case formview.PressedMsg:
		if msg.FormID != formID {
			return m, nil
		}
		switch msg.Key {
		case buttonSubmit:
			return m.submit()
		case buttonForgot:
			log.Debug(log.CatForm, "Forgot password pressed")
			return m, mode.Alert(alert.TitleInfo, ForgotPasswordMessage, nil)
		case buttonRegister:
			return m, mode.Navigate(nav.RouteRegister)
		}
		return m, nil

	case mode.SubmitDoneMsg:
		if m.pending == nil || msg.ID != m.pending.ID {
			return m, nil
		}
		m.pending = nil
		m.form, _ = m.form.SetLoading(false)
		if msg.Cancelled {
			return m, nil
		}
		log.Info(log.CatForm, "Login submitted", "id", msg.ID)
		return m, mode.Alert(alert.TitleSuccess, submit.SuccessMessage(submit.KindLogin), mode.NavigateMsg{To: nav.RoutePaymentOptions})
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) submit() (mode.Screen, tea.Cmd) {
	if err := form.ValidateLogin(*m.record); err != nil {
		log.Warn(log.CatForm, "Login rejected", "reason", shared.Reason(err))
		return m, shared.ErrorAlert(err)
	}

	p, err := m.sim.Submit(context.Background(), submit.KindLogin)
	if errors.Is(err, submit.ErrInFlight) {
		return m, nil
	}
	if err != nil {
		log.ErrorErr(log.CatSubmit, "Login submit failed", err)
		return m, shared.ErrorAlert(err)
	}

	m.pending = p
	var spin tea.Cmd
	m.form, spin = m.form.SetLoading(true)
	return m, tea.Batch(spin, mode.WaitForSubmit(p))
}

// View implements mode.Screen.
func (m Model) View() string {
	return m.form.View() + "\n" + styles.HelpStyle.UnsetPaddingTop().Render("tab next • ctrl+s sign in • esc back")
}
