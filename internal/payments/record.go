// Package payments holds the read-only payment history, the derived views
// computed over it, the payment method catalog and the checkout selection.
package payments

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Status is the settlement state of a payment.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusPending   Status = "pending"
	StatusFailed    Status = "failed"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusCompleted, StatusPending, StatusFailed:
		return true
	}
	return false
}

// Label returns the capitalized status for display.
func (s Status) Label() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// Amount is a currency value in minor units (cents).
type Amount int64

// ErrInvalidAmount is returned for amounts that are not plain decimals with at
// most two fractional digits.
var ErrInvalidAmount = errors.New("invalid amount")

// maxUnits keeps units*100 + 99 within int64.
const maxUnits = math.MaxInt64/100 - 1

// ParseAmount parses "2500", "2500.5" or "2500.00" into minor units. Signs,
// separators and more than two fractional digits are rejected.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	whole, frac, hasFrac := strings.Cut(s, ".")
	if !digits(whole) || (hasFrac && (!digits(frac) || len(frac) > 2)) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units > maxUnits {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	var cents int64
	if hasFrac {
		if len(frac) == 1 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
	}
	return Amount(units*100 + cents), nil
}

// digits reports whether s is a non-empty run of ASCII digits.
func digits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// String renders the amount with two decimals, e.g. "2500.00".
func (a Amount) String() string {
	sign := ""
	if a < 0 {
		sign = "-"
		a = -a
	}
	return fmt.Sprintf("%s%d.%02d", sign, int64(a)/100, int64(a)%100)
}

// Dollars renders the amount with a leading dollar sign.
func (a Amount) Dollars() string {
	return "$" + a.String()
}

// UnmarshalYAML accepts both quoted decimals and bare numbers.
func (a *Amount) UnmarshalYAML(node *yaml.Node) error {
	v, err := ParseAmount(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*a = v
	return nil
}

// MarshalYAML writes the amount as a two-decimal string.
func (a Amount) MarshalYAML() (any, error) {
	return a.String(), nil
}

// DateLayout is the calendar date format used by fixtures and storage.
const DateLayout = "2006-01-02"

// PaymentRecord is one entry of the payment history. Records are immutable
// once loaded.
type PaymentRecord struct {
	ID            string    `yaml:"id"`
	Date          time.Time `yaml:"date"`
	Amount        Amount    `yaml:"amount"`
	Description   string    `yaml:"description"`
	Status        Status    `yaml:"status"`
	Method        string    `yaml:"method"`
	TransactionID string    `yaml:"transactionId"`
}

// DisplayDate formats the date the way the history screen shows it ("Jan 15, 2024").
func (r PaymentRecord) DisplayDate() string {
	return r.Date.Format("Jan 2, 2006")
}

// Validate checks the fields a view relies on.
func (r PaymentRecord) Validate() error {
	if r.ID == "" {
		return errors.New("record id is required")
	}
	if !r.Status.Valid() {
		return fmt.Errorf("record %s: unknown status %q", r.ID, r.Status)
	}
	if r.Amount < 0 {
		return fmt.Errorf("record %s: negative amount", r.ID)
	}
	return nil
}
