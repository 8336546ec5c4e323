// Package event defines the domain events emitted by the lending core.
package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wandysoluciones/wandy-soluciones-prestamos/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

const (
	aggregateLoan     = "Loan"
	aggregateCashBook = "CashBook"
)

// ---------------------------------------------------------------------------
// Loan events
// ---------------------------------------------------------------------------

// LoanDisbursed is raised when a loan is created and its principal paid out.
type LoanDisbursed struct {
	events.BaseEvent
	ClientID     string          `json:"client_id"`
	Principal    decimal.Decimal `json:"principal"`
	Rate         decimal.Decimal `json:"rate"`
	TermMonths   int             `json:"term_months"`
	Frequency    string          `json:"frequency"`
	FirstDueDate time.Time       `json:"first_due_date"`
	Installments int             `json:"installments"`
}

func NewLoanDisbursed(
	loanID, clientID string,
	principal, rate decimal.Decimal,
	termMonths int, frequency string,
	firstDueDate time.Time, installments int,
) LoanDisbursed {
	return LoanDisbursed{
		BaseEvent:    events.NewBaseEvent("LoanDisbursed", loanID, aggregateLoan),
		ClientID:     clientID,
		Principal:    principal,
		Rate:         rate,
		TermMonths:   termMonths,
		Frequency:    frequency,
		FirstDueDate: firstDueDate,
		Installments: installments,
	}
}

// PaymentReceived is raised for every payment applied to a loan.
type PaymentReceived struct {
	events.BaseEvent
	PaymentID          string          `json:"payment_id"`
	InstallmentNumber  *int            `json:"installment_number,omitempty"`
	Amount             decimal.Decimal `json:"amount"`
	Capital            decimal.Decimal `json:"capital"`
	Interest           decimal.Decimal `json:"interest"`
	Kind               string          `json:"kind"`
	RemainingPrincipal decimal.Decimal `json:"remaining_principal"`
}

func NewPaymentReceived(
	loanID, paymentID string,
	installmentNumber *int,
	amount, capital, interest decimal.Decimal,
	kind string,
	remainingPrincipal decimal.Decimal,
) PaymentReceived {
	return PaymentReceived{
		BaseEvent:          events.NewBaseEvent("PaymentReceived", loanID, aggregateLoan),
		PaymentID:          paymentID,
		InstallmentNumber:  installmentNumber,
		Amount:             amount,
		Capital:            capital,
		Interest:           interest,
		Kind:               kind,
		RemainingPrincipal: remainingPrincipal,
	}
}

// PaymentReversed is raised when a recorded payment is undone.
type PaymentReversed struct {
	events.BaseEvent
	PaymentID         string          `json:"payment_id"`
	Amount            decimal.Decimal `json:"amount"`
	RestoredPrincipal decimal.Decimal `json:"restored_principal"`
}

func NewPaymentReversed(loanID, paymentID string, amount, restoredPrincipal decimal.Decimal) PaymentReversed {
	return PaymentReversed{
		BaseEvent:         events.NewBaseEvent("PaymentReversed", loanID, aggregateLoan),
		PaymentID:         paymentID,
		Amount:            amount,
		RestoredPrincipal: restoredPrincipal,
	}
}

// LoanPaidOff is raised when a loan's principal reaches zero.
type LoanPaidOff struct {
	events.BaseEvent
}

func NewLoanPaidOff(loanID string) LoanPaidOff {
	return LoanPaidOff{
		BaseEvent: events.NewBaseEvent("LoanPaidOff", loanID, aggregateLoan),
	}
}

// ScheduleRecalculated is raised when a loan's unpaid installments are
// regenerated after a principal reduction.
type ScheduleRecalculated struct {
	events.BaseEvent
	RemainingPrincipal  decimal.Decimal `json:"remaining_principal"`
	PendingInstallments int             `json:"pending_installments"`
}

func NewScheduleRecalculated(loanID string, remainingPrincipal decimal.Decimal, pendingInstallments int) ScheduleRecalculated {
	return ScheduleRecalculated{
		BaseEvent:           events.NewBaseEvent("ScheduleRecalculated", loanID, aggregateLoan),
		RemainingPrincipal:  remainingPrincipal,
		PendingInstallments: pendingInstallments,
	}
}

// LoanStatusChanged is raised for manual loan status transitions.
type LoanStatusChanged struct {
	events.BaseEvent
	From string `json:"from"`
	To   string `json:"to"`
}

func NewLoanStatusChanged(loanID, from, to string) LoanStatusChanged {
	return LoanStatusChanged{
		BaseEvent: events.NewBaseEvent("LoanStatusChanged", loanID, aggregateLoan),
		From:      from,
		To:        to,
	}
}

// ---------------------------------------------------------------------------
// Cash book events
// ---------------------------------------------------------------------------

// CashEntryRecorded is raised for every entry appended to the cash book.
type CashEntryRecorded struct {
	events.BaseEvent
	EntryID     string          `json:"entry_id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	NewBalance  decimal.Decimal `json:"new_balance"`
}

func NewCashEntryRecorded(bookID, entryID string, amount decimal.Decimal, category, description string, newBalance decimal.Decimal) CashEntryRecorded {
	return CashEntryRecorded{
		BaseEvent:   events.NewBaseEvent("CashEntryRecorded", bookID, aggregateCashBook),
		EntryID:     entryID,
		Amount:      amount,
		Category:    category,
		Description: description,
		NewBalance:  newBalance,
	}
}
