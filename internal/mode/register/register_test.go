package register

import (
	"os"
	"regexp"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/feeportal/internal/form"
	"github.com/zjrosen/feeportal/internal/mode"
	"github.com/zjrosen/feeportal/internal/nav"
	"github.com/zjrosen/feeportal/internal/submit"
	"github.com/zjrosen/feeportal/internal/ui/shared/formview"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

var zonePattern = regexp.MustCompile(`\x1b\[\d+z`)

func plain(s string) string {
	return ansi.Strip(zonePattern.ReplaceAllString(s, ""))
}

func newModel() Model {
	return New(mode.Services{
		Submit: submit.Delays{Login: 10 * time.Millisecond, Registration: 10 * time.Millisecond},
	})
}

func press(key string) formview.PressedMsg {
	return formview.PressedMsg{FormID: formID, Key: key}
}

func fill(m Model, r form.Registration) Model {
	*m.record = r
	return m
}

var valid = form.Registration{
	FirstName:       "Ada",
	LastName:        "Lovelace",
	Email:           "ada@example.edu",
	Password:        "engine1",
	ConfirmPassword: "engine1",
}

func TestView_ShowsFields(t *testing.T) {
	view := plain(newModel().SetSize(80, 60).View())
	require.Contains(t, view, "Create Your Account")
	for _, f := range Config.Fields {
		require.Contains(t, view, f.Label)
	}
	require.Contains(t, view, "Create Account")
	require.Contains(t, view, "Already have an account? Login here")
}

func TestSubmit_ValidationAlerts(t *testing.T) {
	tests := []struct {
		name string
		rec  form.Registration
		want string
	}{
		{"empty", form.Registration{}, "Please fill in all required fields"},
		{"mismatch", form.Registration{FirstName: "a", LastName: "b", Email: "c", Password: "secret1", ConfirmPassword: "secret2"}, "Passwords do not match"},
		{"too short", form.Registration{FirstName: "a", LastName: "b", Email: "c", Password: "abc", ConfirmPassword: "abc"}, "Password must be at least 6 characters long"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, cmd := fill(newModel(), tt.rec).Update(press(buttonSubmit))
			require.NotNil(t, cmd)
			require.Equal(t, mode.ShowAlertMsg{Title: "Error", Message: tt.want}, cmd())
			require.False(t, s.(Model).Loading())
		})
	}
}

func TestSubmit_SuccessNavigatesToLogin(t *testing.T) {
	s, cmd := fill(newModel(), valid).Update(press(buttonSubmit))
	require.NotNil(t, cmd)
	m := s.(Model)
	require.True(t, m.Loading())
	require.Contains(t, plain(m.View()), "Creating Account...")

	done := mode.WaitForSubmit(m.pending)()
	require.IsType(t, mode.SubmitDoneMsg{}, done)

	s, cmd = m.Update(done)
	require.False(t, s.(Model).Loading())
	require.NotNil(t, cmd)
	require.Equal(t, mode.ShowAlertMsg{
		Title:   "Success",
		Message: "Registration successful! You can now login.",
		Then:    mode.NavigateMsg{To: nav.RouteLogin},
	}, cmd())
}

func TestSubmit_IgnoredWhileLoading(t *testing.T) {
	s, _ := fill(newModel(), valid).Update(press(buttonSubmit))
	first := s.(Model).pending

	s, cmd := s.Update(press(buttonSubmit))
	require.Nil(t, cmd)
	require.Same(t, first, s.(Model).pending)
	s.Close()
}

func TestSubmit_GuardIsPerScreen(t *testing.T) {
	services := mode.Services{Submit: submit.Delays{Login: time.Second, Registration: time.Second}}

	first, _ := fill(New(services), valid).Update(press(buttonSubmit))
	defer first.Close()
	second, cmd := fill(New(services), valid).Update(press(buttonSubmit))
	defer second.Close()

	require.NotNil(t, cmd)
	require.True(t, first.(Model).Loading())
	require.True(t, second.(Model).Loading())
}

func TestSubmitDone_StaleIDIgnored(t *testing.T) {
	s, _ := fill(newModel(), valid).Update(press(buttonSubmit))
	defer s.Close()

	s, cmd := s.Update(mode.SubmitDoneMsg{ID: "other", Kind: submit.KindRegistration})
	require.Nil(t, cmd)
	require.True(t, s.(Model).Loading())
}

func TestClose_CancelsPending(t *testing.T) {
	s, _ := fill(newModel(), valid).Update(press(buttonSubmit))
	m := s.(Model)
	m.Close()

	done := mode.WaitForSubmit(m.pending)().(mode.SubmitDoneMsg)
	require.True(t, done.Cancelled)

	s, cmd := m.Update(done)
	require.Nil(t, cmd)
	require.False(t, s.(Model).Loading())
}

func TestEsc_GoesBack(t *testing.T) {
	_, cmd := newModel().Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	require.Equal(t, mode.BackMsg{}, cmd())
}

func TestLoginLink(t *testing.T) {
	_, cmd := newModel().Update(press(buttonLogin))
	require.NotNil(t, cmd)
	require.Equal(t, mode.NavigateMsg{To: nav.RouteLogin}, cmd())
}

func TestTyping_WritesRecord(t *testing.T) {
	var s mode.Screen = newModel()
	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Ada")})
	require.Equal(t, "Ada", s.(Model).Record().FirstName)
}

func TestPressFromOtherForm_Ignored(t *testing.T) {
	_, cmd := newModel().Update(formview.PressedMsg{FormID: "login", Key: buttonSubmit})
	require.Nil(t, cmd)
}
