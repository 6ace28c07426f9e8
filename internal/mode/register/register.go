// Package register is the student registration screen.
package register

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
	formID       = "register"
	buttonSubmit = "submit"
	buttonLogin  = "login"
)

// Config is the registration form layout.
var Config = formview.FormConfig{
	ID:       formID,
	Title:    "Create Your Account",
	Subtitle: "Fill in your details to register for the institute",
	Fields: []formview.FieldConfig{
		{Key: form.FieldFirstName, Label: "First Name", Placeholder: "Enter your first name", Required: true},
		{Key: form.FieldLastName, Label: "Last Name", Placeholder: "Enter your last name", Required: true},
		{Key: form.FieldEmail, Label: "Email Address", Placeholder: "Enter your email", Required: true},
		{Key: form.FieldPhone, Label: "Phone Number", Placeholder: "Enter your phone number"},
		{Key: form.FieldStudentID, Label: "Student ID", Placeholder: "Enter your student ID (if available)"},
		{Key: form.FieldPassword, Label: "Password", Placeholder: "Create a password", Required: true, Secret: true},
		{Key: form.FieldConfirmPassword, Label: "Confirm Password", Placeholder: "Confirm your password", Required: true, Secret: true},
	},
	Buttons: []formview.ButtonConfig{
		{Key: buttonSubmit, Label: "Create Account", LoadingLabel: "Creating Account..."},
		{Key: buttonLogin, Label: "Already have an account? Login here", Link: true},
	},
}

// Model is the registration screen.
type Model struct {
	services mode.Services
	record   *form.Registration
	form     formview.Model
	sim      *submit.Simulator
	pending  *submit.Pending
}

// New creates the screen with an empty registration record.
func New(services mode.Services) Model {
	rec := &form.Registration{}
	return Model{
		services: services,
		record:   rec,
		sim:      submit.New(services.Submit),
		form:     formview.New(Config, rec),
	}
}

// Route implements mode.Screen.
func (m Model) Route() nav.Route { return nav.RouteRegister }

// Record returns the form record.
func (m Model) Record() *form.Registration { return m.record }

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
		case buttonLogin:
			return m, mode.Navigate(nav.RouteLogin)
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
		log.Info(log.CatForm, "Registration submitted", "id", msg.ID)
		return m, mode.Alert(alert.TitleSuccess, submit.SuccessMessage(submit.KindRegistration), mode.NavigateMsg{To: nav.RouteLogin})
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) submit() (mode.Screen, tea.Cmd) {
	if err := form.ValidateRegistration(*m.record); err != nil {
		var ve *form.ValidationError
		if errors.As(err, &ve) {
			log.Warn(log.CatForm, "Registration rejected", "kind", ve.Kind, "fields", ve.Fields)
		}
		return m, shared.ErrorAlert(err)
	}

	p, err := m.sim.Submit(context.Background(), submit.KindRegistration)
	if errors.Is(err, submit.ErrInFlight) {
		return m, nil
	}
	if err != nil {
		log.ErrorErr(log.CatSubmit, "Registration submit failed", err)
		return m, shared.ErrorAlert(err)
	}

	m.pending = p
	var spin tea.Cmd
	m.form, spin = m.form.SetLoading(true)
	return m, tea.Batch(spin, mode.WaitForSubmit(p))
}

// View implements mode.Screen.
func (m Model) View() string {
	return m.form.View() + "\n" + styles.HelpStyle.UnsetPaddingTop().Render("tab next • ctrl+s create account • esc back")
}
