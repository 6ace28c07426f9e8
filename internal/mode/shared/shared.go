// Package shared holds helpers used by more than one screen.
package shared

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/feeportal/internal/form"
	"github.com/zjrosen/feeportal/internal/mode"
	"github.com/zjrosen/feeportal/internal/payments"
	"github.com/zjrosen/feeportal/internal/ui/shared/alert"
)

// Reason returns the user-facing alert text for err.
func Reason(err error) string {
	var ve *form.ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Reason
	case errors.Is(err, payments.ErrNoSelection):
		return payments.ReasonNoSelection
	default:
		return err.Error()
	}
}

// ErrorAlert shows err in the blocking error dialog.
func ErrorAlert(err error) tea.Cmd {
	return mode.Alert(alert.TitleError, Reason(err), nil)
}
