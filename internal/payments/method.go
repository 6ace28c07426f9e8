package payments

import (
	"errors"
	"fmt"

	"github.com/zjrosen/feeportal/internal/selection"
)

// MethodID identifies a payment method.
type MethodID string

const (
	MethodCreditCard    MethodID = "credit-card"
	MethodBankTransfer  MethodID = "bank-transfer"
	MethodDigitalWallet MethodID = "digital-wallet"
	MethodInstallments  MethodID = "installments"
)

// Method describes one way to pay.
type Method struct {
	ID          MethodID
	Title       string
	Description string
	Fees        string
	Icon        string
}

// Methods is the fixed catalog offered on the payment options screen.
var Methods = []Method{
	{ID: MethodCreditCard, Title: "Credit/Debit Card", Description: "Pay securely with your card", Fees: "Processing fee: 2.9%", Icon: "💳"},
	{ID: MethodBankTransfer, Title: "Bank Transfer", Description: "Direct transfer from your bank", Fees: "No additional fees", Icon: "🏦"},
	{ID: MethodDigitalWallet, Title: "Digital Wallet", Description: "Pay with Apple Pay, Google Pay", Fees: "Processing fee: 1.5%", Icon: "📱"},
	{ID: MethodInstallments, Title: "Installment Plan", Description: "Split payment into monthly installments", Fees: "Interest may apply", Icon: "📅"},
}

// MethodIDs returns the catalog identifiers in display order.
func MethodIDs() []MethodID {
	ids := make([]MethodID, len(Methods))
	for i, m := range Methods {
		ids[i] = m.ID
	}
	return ids
}

// LookupMethod finds a method in the catalog.
func LookupMethod(id MethodID) (Method, bool) {
	for _, m := range Methods {
		if m.ID == id {
			return m, true
		}
	}
	return Method{}, false
}

// ErrNoSelection is returned when proceeding without a chosen payment method.
var ErrNoSelection = errors.New("no payment option selected")

// ReasonNoSelection is the alert text for ErrNoSelection.
const ReasonNoSelection = "Please select a payment option"

// Checkout is the payment options screen's single-select state.
type Checkout struct {
	sel selection.Selection[MethodID]
}

// Select picks a method. Membership in the catalog is not checked here;
// the screen only offers catalog entries.
func (c *Checkout) Select(id MethodID) {
	c.sel.Select(id)
}

// Cycle moves the selection through the catalog.
func (c *Checkout) Cycle(delta int) {
	c.sel.Cycle(MethodIDs(), delta)
}

// Selected returns the chosen method id, if any.
func (c Checkout) Selected() (MethodID, bool) {
	return c.sel.Selected()
}

// IsSelected reports whether id is the current choice.
func (c Checkout) IsSelected(id MethodID) bool {
	return c.sel.Is(id)
}

// ProceedToPayment returns the chosen method, or ErrNoSelection.
func (c Checkout) ProceedToPayment() (Method, error) {
	id, ok := c.sel.Selected()
	if !ok {
		return Method{}, ErrNoSelection
	}
	m, found := LookupMethod(id)
	if !found {
		// Selection accepts any id; fall back to the raw id as the title.
		return Method{ID: id, Title: string(id)}, nil
	}
	return m, nil
}

// GatewayMessage is the confirmation shown when proceeding with m.
func GatewayMessage(m Method) string {
	return fmt.Sprintf("You selected %s. This would redirect to the payment gateway.", m.Title)
}
