package history

import (
	"context"
	"errors"
	"os"
	"regexp"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/feeportal/internal/mode"
	"github.com/zjrosen/feeportal/internal/nav"
	"github.com/zjrosen/feeportal/internal/payments"
	"github.com/zjrosen/feeportal/internal/ui/styles"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

var zonePattern = regexp.MustCompile(`\x1b\[\d+z`)

func plain(s string) string {
	return ansi.Strip(zonePattern.ReplaceAllString(s, ""))
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loaded returns a sized screen that has consumed its Init load.
func loaded(t *testing.T, provider payments.Provider) mode.Screen {
	t.Helper()
	var s mode.Screen = New(mode.Services{Payments: provider})
	s = s.SetSize(160, 80)
	cmd := s.Init()
	require.NotNil(t, cmd)
	s, _ = s.Update(cmd())
	return s
}

func TestLoad_SeedSummary(t *testing.T) {
	s := loaded(t, payments.StaticProvider(payments.SeedRecords()))
	view := plain(s.View())

	require.Contains(t, view, "Payment Summary")
	require.Contains(t, view, "$5150.00")
	require.Contains(t, view, "Total Paid This Year")
	require.Contains(t, view, "Transaction History (5)")
	require.Contains(t, view, "Spring Semester Tuition")
	require.Contains(t, view, "Jan 15, 2024")
	require.Contains(t, view, "TXN-2024-001")
	require.Contains(t, view, "$2500.00")
	require.Contains(t, view, "Make New Payment")
	require.Equal(t, payments.FilterAll, s.(Model).Filter())
}

func TestFilter_NumberKeys(t *testing.T) {
	s := loaded(t, payments.StaticProvider(payments.SeedRecords()))

	s, _ = s.Update(runes("3"))
	require.Equal(t, payments.FilterPending, s.(Model).Filter())
	require.Len(t, s.(Model).Visible(), 1)
	view := plain(s.View())
	require.Contains(t, view, "Transaction History (1)")
	require.Contains(t, view, "$5150.00", "total ignores the filter")

	s, _ = s.Update(runes("4"))
	require.Equal(t, payments.FilterFailed, s.(Model).Filter())
	require.Len(t, s.(Model).Visible(), 1)
}

func TestFilter_Cycles(t *testing.T) {
	s := loaded(t, payments.StaticProvider(payments.SeedRecords()))
	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, payments.FilterCompleted, s.(Model).Filter())
	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyLeft})
	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyLeft})
	require.Equal(t, payments.FilterFailed, s.(Model).Filter())
}

func TestEmptyState(t *testing.T) {
	only := payments.StaticProvider{{ID: "1", Status: payments.StatusCompleted, Amount: 100}}
	s := loaded(t, only)
	s, _ = s.Update(runes("4"))

	view := plain(s.View())
	require.Contains(t, view, "Transaction History (0)")
	require.Contains(t, view, "No payments found for the selected filter")
}

type failingProvider struct{}

func (failingProvider) Records(context.Context) ([]payments.PaymentRecord, error) {
	return nil, errors.New("disk on fire")
}

func TestLoadError(t *testing.T) {
	s := loaded(t, failingProvider{})
	view := plain(s.View())
	require.Contains(t, view, "Could not load payment history")
	require.Contains(t, view, "disk on fire")
	require.Contains(t, view, "$0.00")
}

func TestDataChanged_Reloads(t *testing.T) {
	s := loaded(t, payments.StaticProvider(payments.SeedRecords()))
	_, cmd := s.Update(mode.DataChangedMsg{})
	require.NotNil(t, cmd)
	msg, ok := cmd().(RecordsLoadedMsg)
	require.True(t, ok)
	require.Len(t, msg.Records, 5)
}

func TestNewPayment(t *testing.T) {
	s := loaded(t, payments.StaticProvider(nil))
	_, cmd := s.Update(runes("n"))
	require.NotNil(t, cmd)
	require.Equal(t, mode.NavigateMsg{To: nav.RoutePaymentOptions}, cmd())
}

func TestEsc_GoesBack(t *testing.T) {
	_, cmd := New(mode.Services{}).Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	require.Equal(t, mode.BackMsg{}, cmd())
}

func TestStatusColor(t *testing.T) {
	require.Equal(t, styles.StatusSuccessColor, StatusColor(payments.StatusCompleted))
	require.Equal(t, styles.StatusWarningColor, StatusColor(payments.StatusPending))
	require.Equal(t, styles.StatusErrorColor, StatusColor(payments.StatusFailed))
	require.Equal(t, styles.TextMutedColor, StatusColor("refunded"))
}
