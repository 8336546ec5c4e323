package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/domain/event"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/domain/valueobject"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/pkg/money"
)

// Cash entry categories. Loan flows use the first three; the rest are
// operator bookkeeping.
const (
	CategoryDisbursement     = "DISBURSEMENT"
	CategoryLoanPayment      = "LOAN_PAYMENT"
	CategoryPaymentReversal  = "PAYMENT_REVERSAL"
	CategoryExpense          = "EXPENSE"
	CategoryCapitalInjection = "CAPITAL_INJECTION"
	CategoryAdjustment       = "ADJUSTMENT"
)

// CashEntry is one immutable line in the cash book.
//
// Sign convention: a positive amount is money leaving the till (an expense or
// a loan disbursement), a negative amount is money coming in (a payment
// received, a capital injection). The book balance therefore moves by the
// negated amount of each entry.
type CashEntry struct {
	id          string
	amount      money.Money
	category    string
	description string
	loanID      string // empty for entries not tied to a loan
	paymentID   string // empty for entries not tied to a payment
	recordedBy  string
	recordedAt  time.Time
}

// ReconstructCashEntry rebuilds an entry from persistence.
func ReconstructCashEntry(
	id string,
	amount money.Money,
	category, description, loanID, paymentID, recordedBy string,
	recordedAt time.Time,
) CashEntry {
	return CashEntry{
		id:          id,
		amount:      amount,
		category:    category,
		description: description,
		loanID:      loanID,
		paymentID:   paymentID,
		recordedBy:  recordedBy,
		recordedAt:  recordedAt,
	}
}

func (e CashEntry) ID() string            { return e.id }
func (e CashEntry) Amount() money.Money   { return e.amount }
func (e CashEntry) Category() string      { return e.category }
func (e CashEntry) Description() string   { return e.description }
func (e CashEntry) LoanID() string        { return e.loanID }
func (e CashEntry) PaymentID() string     { return e.paymentID }
func (e CashEntry) RecordedBy() string    { return e.recordedBy }
func (e CashEntry) RecordedAt() time.Time { return e.recordedAt }

// IsOutflow reports whether the entry takes money out of the till.
func (e CashEntry) IsOutflow() bool { return e.amount.IsPositive() }

// IsInflow reports whether the entry brings money into the till.
func (e CashEntry) IsInflow() bool { return e.amount.IsNegative() }

// CashPosition is the aggregated state of the book at a point in time.
type CashPosition struct {
	Balance      money.Money
	TotalInflow  money.Money
	TotalOutflow money.Money
	EntryCount   int
}

// CashBook is the append-only ledger of money movements. It carries a running
// balance that must always equal the fold of its entries; Reconcile verifies
// that invariant.
type CashBook struct {
	id           string
	entries      []CashEntry
	balance      money.Money
	version      int
	updatedAt    time.Time
	domainEvents []event.DomainEvent
}

// NewCashBook creates an empty cash book.
func NewCashBook(now time.Time) CashBook {
	return CashBook{
		id:        uuid.New().String(),
		balance:   money.Zero(),
		version:   1,
		updatedAt: now,
	}
}

// ReconstructCashBook rebuilds a CashBook from persistence.
func ReconstructCashBook(
	id string,
	entries []CashEntry,
	balance money.Money,
	version int,
	updatedAt time.Time,
) CashBook {
	return CashBook{
		id:        id,
		entries:   entries,
		balance:   balance,
		version:   version,
		updatedAt: updatedAt,
	}
}

// Record appends an entry and moves the balance. Entries are never edited or
// removed afterwards; corrections are compensating entries with the opposite
// sign.
func (b CashBook) Record(
	amount money.Money,
	category, description, loanID, paymentID, recordedBy string,
	now time.Time,
) (CashBook, CashEntry, error) {
	if amount.IsZero() {
		return b, CashEntry{}, errors.New("cash entry amount must not be zero")
	}
	if category == "" {
		return b, CashEntry{}, errors.New("cash entry category is required")
	}

	entry := CashEntry{
		id:          uuid.New().String(),
		amount:      amount.Round(),
		category:    category,
		description: description,
		loanID:      loanID,
		paymentID:   paymentID,
		recordedBy:  recordedBy,
		recordedAt:  now,
	}

	next := b
	next.entries = append(copyEntries(b.entries), entry)
	next.balance = b.balance.Sub(entry.amount)
	next.updatedAt = now
	next.domainEvents = copyEvents(b.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewCashEntryRecorded(
		b.id, entry.id, entry.amount.Amount(), category, description, next.balance.Amount(),
	))

	return next, entry, nil
}

// Balance returns the current running balance.
func (b CashBook) Balance() money.Money { return b.balance }

// Position aggregates the book into inflow/outflow totals and the balance.
func (b CashBook) Position() CashPosition {
	pos := CashPosition{
		Balance:      b.balance,
		TotalInflow:  money.Zero(),
		TotalOutflow: money.Zero(),
		EntryCount:   len(b.entries),
	}
	for _, e := range b.entries {
		if e.IsInflow() {
			pos.TotalInflow = pos.TotalInflow.Add(e.amount.Abs())
		} else {
			pos.TotalOutflow = pos.TotalOutflow.Add(e.amount)
		}
	}
	return pos
}

// Reconcile recomputes the balance from the entries and compares it against
// the stored running balance. A divergence means the book was corrupted
// outside the aggregate.
func (b CashBook) Reconcile() error {
	computed := money.Zero()
	for _, e := range b.entries {
		computed = computed.Sub(e.amount)
	}
	if !computed.Equal(b.balance) {
		return fmt.Errorf("%w: stored balance %s, entries fold to %s",
			valueobject.ErrLedgerInconsistency, b.balance, computed)
	}
	return nil
}

func (b CashBook) ID() string                        { return b.id }
func (b CashBook) Version() int                      { return b.version }
func (b CashBook) UpdatedAt() time.Time              { return b.updatedAt }
func (b CashBook) DomainEvents() []event.DomainEvent { return b.domainEvents }

// Entries returns a defensive copy of the entry list in insertion order.
func (b CashBook) Entries() []CashEntry {
	if b.entries == nil {
		return nil
	}
	return copyEntries(b.entries)
}

// ClearEvents returns a copy with an empty event list.
func (b CashBook) ClearEvents() CashBook {
	next := b
	next.domainEvents = nil
	return next
}

func copyEntries(entries []CashEntry) []CashEntry {
	out := make([]CashEntry, len(entries))
	copy(out, entries)
	return out
}
