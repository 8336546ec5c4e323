package model

import (
	"time"

	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/domain/valueobject"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/pkg/money"
)

// Installment is one scheduled due obligation within a loan's repayment plan.
// Capital + Interest always equals Total. RemainingPrincipal is the loan
// principal left after this installment settles, informational only.
type Installment struct {
	Number             int
	DueDate            time.Time
	Capital            money.Money
	Interest           money.Money
	Total              money.Money
	RemainingPrincipal money.Money
	CapitalPaid        money.Money
	InterestPaid       money.Money
	Status             valueobject.InstallmentStatus
}

// CapitalOwed returns the capital still due on this installment.
func (i Installment) CapitalOwed() money.Money {
	owed := i.Capital.Sub(i.CapitalPaid)
	if owed.IsNegative() {
		return money.Zero()
	}
	return owed
}

// InterestOwed returns the interest still due on this installment.
func (i Installment) InterestOwed() money.Money {
	owed := i.Interest.Sub(i.InterestPaid)
	if owed.IsNegative() {
		return money.Zero()
	}
	return owed
}

// TotalOwed returns how much is still due on this installment.
func (i Installment) TotalOwed() money.Money {
	return i.CapitalOwed().Add(i.InterestOwed())
}

// IsOverdue reports whether the installment is unsettled past its due date.
func (i Installment) IsOverdue(asOf time.Time) bool {
	return !i.Status.IsPaid() && i.DueDate.Before(asOf)
}

// DaysLate returns how many whole days the installment is past due, zero if
// settled or not yet due.
func (i Installment) DaysLate(asOf time.Time) int {
	if !i.IsOverdue(asOf) {
		return 0
	}
	return int(asOf.Sub(i.DueDate).Hours() / 24)
}

// applyPortions credits capital and interest against the installment and
// recomputes its status. Credits are capped at the amounts due so the
// remaining balance never goes negative.
func (i Installment) applyPortions(capital, interest money.Money) Installment {
	next := i

	c := capital
	if c.Cmp(i.CapitalOwed()) > 0 {
		c = i.CapitalOwed()
	}
	next.CapitalPaid = i.CapitalPaid.Add(c)

	in := interest
	if in.Cmp(i.InterestOwed()) > 0 {
		in = i.InterestOwed()
	}
	next.InterestPaid = i.InterestPaid.Add(in)

	next.Status = next.deriveStatus()
	return next
}

// revertPortions undoes a previous credit, flooring at zero, and recomputes
// the status. Used only by the payment reversal flow.
func (i Installment) revertPortions(capital, interest money.Money) Installment {
	next := i

	next.CapitalPaid = i.CapitalPaid.Sub(capital)
	if next.CapitalPaid.IsNegative() {
		next.CapitalPaid = money.Zero()
	}
	next.InterestPaid = i.InterestPaid.Sub(interest)
	if next.InterestPaid.IsNegative() {
		next.InterestPaid = money.Zero()
	}

	next.Status = next.deriveStatus()
	return next
}

func (i Installment) deriveStatus() valueobject.InstallmentStatus {
	covered := i.CapitalPaid.GreaterThanOrEqual(i.Capital) && i.InterestPaid.GreaterThanOrEqual(i.Interest)
	switch {
	case covered:
		return valueobject.InstallmentStatusPaid
	case i.CapitalPaid.IsPositive() || i.InterestPaid.IsPositive():
		return valueobject.InstallmentStatusPartial
	default:
		return valueobject.InstallmentStatusPending
	}
}
