package model

import (
	"time"

	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/domain/valueobject"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/pkg/money"
)

// Payment is an immutable record of money received against a loan. It is
// never edited in place; corrections go through the reversal flow, which
// undoes its effects symmetrically and appends a compensating cash entry.
type Payment struct {
	id                string
	loanID            string
	installmentNumber *int // nil for extraordinary payments not tied to a due date
	amount            money.Money
	capital           money.Money
	interest          money.Money
	// principalReduced is how much the loan's principal actually dropped when
	// this payment was applied. It can be less than the capital portion when
	// the payment paid the loan off with the final rounding sliver, and it is
	// what reversal restores, so round-trips are exact.
	principalReduced money.Money
	kind             valueobject.PaymentKind
	paidAt           time.Time
	recordedBy       string
}

// ReconstructPayment rebuilds a Payment from persistence.
func ReconstructPayment(
	id, loanID string,
	installmentNumber *int,
	amount, capital, interest, principalReduced money.Money,
	kind valueobject.PaymentKind,
	paidAt time.Time,
	recordedBy string,
) Payment {
	return Payment{
		id:                id,
		loanID:            loanID,
		installmentNumber: installmentNumber,
		amount:            amount,
		capital:           capital,
		interest:          interest,
		principalReduced:  principalReduced,
		kind:              kind,
		paidAt:            paidAt,
		recordedBy:        recordedBy,
	}
}

func (p Payment) ID() string                    { return p.id }
func (p Payment) LoanID() string                { return p.loanID }
func (p Payment) Amount() money.Money           { return p.amount }
func (p Payment) Capital() money.Money          { return p.capital }
func (p Payment) Interest() money.Money         { return p.interest }
func (p Payment) PrincipalReduced() money.Money { return p.principalReduced }
func (p Payment) Kind() valueobject.PaymentKind { return p.kind }
func (p Payment) PaidAt() time.Time             { return p.paidAt }
func (p Payment) RecordedBy() string            { return p.recordedBy }

// InstallmentNumber returns the targeted installment number, or nil when the
// payment was not tied to a specific due date.
func (p Payment) InstallmentNumber() *int {
	if p.installmentNumber == nil {
		return nil
	}
	n := *p.installmentNumber
	return &n
}
