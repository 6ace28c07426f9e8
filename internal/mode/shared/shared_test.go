package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/feeportal/internal/form"
	"github.com/zjrosen/feeportal/internal/mode"
	"github.com/zjrosen/feeportal/internal/payments"
)

func TestReason(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"missing field", form.ValidateLogin(form.Login{}), "Please fill in all fields"},
		{"mismatch", form.ValidateRegistration(form.Registration{
			FirstName: "a", LastName: "b", Email: "c", Password: "secret1", ConfirmPassword: "secret2",
		}), "Passwords do not match"},
		{"no selection", payments.ErrNoSelection, "Please select a payment option"},
		{"wrapped no selection", fmt.Errorf("proceed: %w", payments.ErrNoSelection), "Please select a payment option"},
		{"other", errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Reason(tt.err))
		})
	}
}

func TestErrorAlert(t *testing.T) {
	msg := ErrorAlert(payments.ErrNoSelection)()
	require.Equal(t, mode.ShowAlertMsg{Title: "Error", Message: "Please select a payment option"}, msg)
}
