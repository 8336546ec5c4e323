package model

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/domain/event"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/domain/valueobject"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/pkg/money"
)

// Collateral is optional security metadata attached to a loan.
type Collateral struct {
	Kind        string
	Description string
	Value       money.Money
	Status      valueobject.CollateralStatus
}

// ---------------------------------------------------------------------------
// Loan aggregate root
// ---------------------------------------------------------------------------

// Loan is an immutable aggregate. Mutations return a new copy.
//
// The stored principal is the amount still outstanding: it drops only when a
// capital-reducing payment (extraordinary or capital abono) is applied, never
// through normal installment amortization. Status moves to PAID automatically
// and irreversibly when principal hits zero.
type Loan struct {
	id           string
	clientID     string
	principal    money.Money
	rate         decimal.Decimal
	termMonths   int
	frequency    valueobject.Frequency
	firstDueDate time.Time
	collateral   *Collateral
	status       valueobject.LoanStatus
	schedule     []Installment
	version      int
	createdAt    time.Time
	updatedAt    time.Time
	domainEvents []event.DomainEvent
}

// NewLoan creates a loan, generates its installment schedule and emits
// LoanDisbursed. The loan starts ACTIVE.
func NewLoan(
	clientID string,
	principal money.Money,
	rate decimal.Decimal,
	termMonths int,
	frequency valueobject.Frequency,
	firstDueDate time.Time,
	collateral *Collateral,
	now time.Time,
) (Loan, error) {
	if clientID == "" {
		return Loan{}, errors.New("client ID is required")
	}
	if !principal.IsPositive() {
		return Loan{}, errors.New("principal must be positive")
	}
	if rate.IsNegative() {
		return Loan{}, errors.New("rate must not be negative")
	}
	if termMonths <= 0 {
		return Loan{}, errors.New("term months must be positive")
	}
	if frequency.IsZero() {
		return Loan{}, valueobject.ErrUnknownFrequency
	}
	if firstDueDate.IsZero() {
		return Loan{}, errors.New("first due date is required")
	}

	schedule, err := GenerateSchedule(principal, rate, termMonths, frequency, firstDueDate)
	if err != nil {
		return Loan{}, fmt.Errorf("generate schedule: %w", err)
	}

	id := uuid.New().String()
	loan := Loan{
		id:           id,
		clientID:     clientID,
		principal:    principal.Round(),
		rate:         rate,
		termMonths:   termMonths,
		frequency:    frequency,
		firstDueDate: firstDueDate,
		collateral:   collateral,
		status:       valueobject.LoanStatusActive,
		schedule:     schedule,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}

	loan.domainEvents = append(loan.domainEvents, event.NewLoanDisbursed(
		id, clientID, loan.principal.Amount(), rate, termMonths,
		frequency.String(), firstDueDate, len(schedule),
	))

	return loan, nil
}

// ReconstructLoan rebuilds a Loan aggregate from persistence.
func ReconstructLoan(
	id, clientID string,
	principal money.Money,
	rate decimal.Decimal,
	termMonths int,
	frequency valueobject.Frequency,
	firstDueDate time.Time,
	collateral *Collateral,
	status valueobject.LoanStatus,
	schedule []Installment,
	version int,
	createdAt, updatedAt time.Time,
) Loan {
	return Loan{
		id:           id,
		clientID:     clientID,
		principal:    principal,
		rate:         rate,
		termMonths:   termMonths,
		frequency:    frequency,
		firstDueDate: firstDueDate,
		collateral:   collateral,
		status:       status,
		schedule:     schedule,
		version:      version,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// ---------------------------------------------------------------------------
// Payment allocation
// ---------------------------------------------------------------------------

// ApplyPayment allocates a received amount against the loan.
//
// The capital and interest portions must add up to the amount within the
// money epsilon, otherwise ErrInvalidAllocation. When installmentNumber is
// set, the targeted installment is credited and its status derived. When the
// kind reduces principal, the loan's principal drops by the capital portion:
// reaching zero transitions the loan to PAID, anything left triggers a
// schedule recalculation. A capital portion exceeding the outstanding
// principal beyond the epsilon is rejected with ErrNegativePrincipal.
func (l Loan) ApplyPayment(
	installmentNumber *int,
	amount, capital, interest money.Money,
	kind valueobject.PaymentKind,
	recordedBy string,
	now time.Time,
) (Loan, Payment, error) {
	if !l.status.Equal(valueobject.LoanStatusActive) {
		return l, Payment{}, fmt.Errorf("payments are only accepted on active loans, loan is %s", l.status)
	}
	if !amount.IsPositive() {
		return l, Payment{}, errors.New("payment amount must be positive")
	}
	if capital.IsNegative() || interest.IsNegative() {
		return l, Payment{}, fmt.Errorf("%w: portions must not be negative", valueobject.ErrInvalidAllocation)
	}
	if !capital.Add(interest).WithinEpsilon(amount) {
		return l, Payment{}, fmt.Errorf("%w: %s + %s != %s",
			valueobject.ErrInvalidAllocation, capital, interest, amount)
	}

	next := l
	next.domainEvents = copyEvents(l.domainEvents)

	// Credit the targeted installment, if any.
	if installmentNumber != nil {
		idx := next.installmentIndex(*installmentNumber)
		if idx < 0 {
			return l, Payment{}, fmt.Errorf("installment %d not found on loan %s", *installmentNumber, l.id)
		}
		if next.schedule[idx].Status.IsPaid() {
			return l, Payment{}, fmt.Errorf("installment %d is already settled", *installmentNumber)
		}
		next.schedule = copySchedule(next.schedule)
		next.schedule[idx] = next.schedule[idx].applyPortions(capital, interest)
	}

	principalReduced := money.Zero()
	paidOff := false

	if kind.ReducesPrincipal() {
		if capital.Sub(l.principal).Amount().GreaterThan(money.AllocationEpsilon) {
			return l, Payment{}, fmt.Errorf("%w: capital %s exceeds outstanding principal %s",
				valueobject.ErrNegativePrincipal, capital, l.principal)
		}

		principalReduced = capital
		remaining := l.principal.Sub(capital)
		if remaining.LessThanOrEqual(money.Zero()) {
			principalReduced = l.principal
			remaining = money.Zero()
			paidOff = true
		}
		next.principal = remaining
	}

	payment := Payment{
		id:                uuid.New().String(),
		loanID:            l.id,
		installmentNumber: installmentNumber,
		amount:            amount.Round(),
		capital:           capital.Round(),
		interest:          interest.Round(),
		principalReduced:  principalReduced.Round(),
		kind:              kind,
		paidAt:            now,
		recordedBy:        recordedBy,
	}

	next.updatedAt = now
	next.domainEvents = append(next.domainEvents, event.NewPaymentReceived(
		l.id, payment.id, payment.InstallmentNumber(),
		payment.amount.Amount(), payment.capital.Amount(), payment.interest.Amount(),
		kind.String(), next.principal.Amount(),
	))

	if kind.ReducesPrincipal() {
		recalced, err := next.Recalculate(now)
		if err != nil {
			return l, Payment{}, fmt.Errorf("recalculate after capital reduction: %w", err)
		}
		next = recalced
		if paidOff {
			next.status = valueobject.LoanStatusPaid
			next.domainEvents = append(next.domainEvents, event.NewLoanPaidOff(l.id))
		}
	}

	return next, payment, nil
}

// ReversePayment undoes a previously applied payment: the installment credit
// is reverted, the principal reduction restored, and the schedule
// regenerated when the principal changed. The caller appends the
// compensating cash entry.
func (l Loan) ReversePayment(p Payment, now time.Time) (Loan, error) {
	if p.loanID != l.id {
		return l, fmt.Errorf("payment %s does not belong to loan %s", p.id, l.id)
	}

	next := l
	next.domainEvents = copyEvents(l.domainEvents)

	if p.installmentNumber != nil {
		// The installment may have been replaced by a recalculation since the
		// payment was applied; reverting is then covered by the regeneration
		// below.
		if idx := next.installmentIndex(*p.installmentNumber); idx >= 0 {
			next.schedule = copySchedule(next.schedule)
			next.schedule[idx] = next.schedule[idx].revertPortions(p.capital, p.interest)
		}
	}

	if p.principalReduced.IsPositive() {
		next.principal = l.principal.Add(p.principalReduced)
		if next.status.Equal(valueobject.LoanStatusPaid) {
			next.status = valueobject.LoanStatusActive
		}
	}

	next.updatedAt = now
	next.domainEvents = append(next.domainEvents, event.NewPaymentReversed(
		l.id, p.id, p.amount.Amount(), next.principal.Amount(),
	))

	if p.principalReduced.IsPositive() {
		recalced, err := next.Recalculate(now)
		if err != nil {
			return l, fmt.Errorf("recalculate after reversal: %w", err)
		}
		next = recalced
	}

	return next, nil
}

// ---------------------------------------------------------------------------
// Schedule recalculation
// ---------------------------------------------------------------------------

// Recalculate regenerates the unsettled part of the schedule against the
// current principal. Settled installments are preserved untouched; pending
// and partial ones are replaced by a fresh run of the generator over the
// remaining periods, keeping the original due-date cadence (the new first due
// date is the earliest due date being replaced). Calling it twice without an
// intervening payment yields the same schedule.
func (l Loan) Recalculate(now time.Time) (Loan, error) {
	if l.status.IsSettled() {
		return l, fmt.Errorf("%w: loan %s is %s", valueobject.ErrScheduleRegenerationConflict, l.id, l.status)
	}

	totalPeriods, err := l.frequency.Periods(l.termMonths)
	if err != nil {
		return l, err
	}

	var settled []Installment
	baseline := time.Time{}
	lastSettledNumber := 0
	for _, inst := range l.schedule {
		if inst.Status.IsPaid() {
			settled = append(settled, inst)
			if inst.Number > lastSettledNumber {
				lastSettledNumber = inst.Number
			}
			continue
		}
		if baseline.IsZero() || inst.DueDate.Before(baseline) {
			baseline = inst.DueDate
		}
	}

	remainingPeriods := totalPeriods - len(settled)

	next := l
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)

	if remainingPeriods <= 0 || !l.principal.IsPositive() {
		next.schedule = settled
		next.domainEvents = append(next.domainEvents,
			event.NewScheduleRecalculated(l.id, l.principal.Amount(), 0))
		return next, nil
	}

	if baseline.IsZero() {
		// Every remaining installment was settled out of order; continue the
		// cadence from the last settled due date.
		baseline = l.firstDueDate
		if n := len(settled); n > 0 {
			baseline, err = l.frequency.StepDueDate(settled[n-1].DueDate)
			if err != nil {
				return l, err
			}
		}
	}

	regenerated, err := generateInstallments(
		l.principal, l.rate, l.frequency, remainingPeriods, baseline, lastSettledNumber+1,
	)
	if err != nil {
		return l, fmt.Errorf("regenerate installments: %w", err)
	}

	schedule := make([]Installment, 0, len(settled)+len(regenerated))
	schedule = append(schedule, settled...)
	schedule = append(schedule, regenerated...)
	sort.Slice(schedule, func(a, b int) bool { return schedule[a].Number < schedule[b].Number })

	next.schedule = schedule
	next.domainEvents = append(next.domainEvents,
		event.NewScheduleRecalculated(l.id, l.principal.Amount(), len(regenerated)))
	return next, nil
}

// ---------------------------------------------------------------------------
// Manual status transitions
// ---------------------------------------------------------------------------

// ChangeStatus performs an operator-driven status transition. PAID cannot be
// set or left this way.
func (l Loan) ChangeStatus(target valueobject.LoanStatus, now time.Time) (Loan, error) {
	if !l.status.CanTransitionManuallyTo(target) {
		return l, fmt.Errorf("%w: %s -> %s", valueobject.ErrInvalidStatusTransition, l.status, target)
	}
	next := l
	next.status = target
	next.updatedAt = now
	next.domainEvents = copyEvents(l.domainEvents)
	next.domainEvents = append(next.domainEvents,
		event.NewLoanStatusChanged(l.id, l.status.String(), target.String()))
	return next, nil
}

// ---------------------------------------------------------------------------
// Read model
// ---------------------------------------------------------------------------

// LoanSummary aggregates the repayment state of a loan.
type LoanSummary struct {
	TotalDue          money.Money
	Paid              money.Money
	Pending           money.Money
	TotalInstallments int
	PaidCount         int
	PendingCount      int
	OverdueCount      int
}

// Summary computes repayment totals and overdue counts as of the given time.
func (l Loan) Summary(asOf time.Time) LoanSummary {
	s := LoanSummary{
		TotalDue: money.Zero(),
		Paid:     money.Zero(),
		Pending:  money.Zero(),
	}
	for _, inst := range l.schedule {
		s.TotalInstallments++
		s.TotalDue = s.TotalDue.Add(inst.Total)
		s.Paid = s.Paid.Add(inst.CapitalPaid).Add(inst.InterestPaid)
		s.Pending = s.Pending.Add(inst.TotalOwed())
		if inst.Status.IsPaid() {
			s.PaidCount++
		} else {
			s.PendingCount++
		}
		if inst.IsOverdue(asOf) {
			s.OverdueCount++
		}
	}
	return s
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (l Loan) ID() string                        { return l.id }
func (l Loan) ClientID() string                  { return l.clientID }
func (l Loan) Principal() money.Money            { return l.principal }
func (l Loan) Rate() decimal.Decimal             { return l.rate }
func (l Loan) TermMonths() int                   { return l.termMonths }
func (l Loan) Frequency() valueobject.Frequency  { return l.frequency }
func (l Loan) FirstDueDate() time.Time           { return l.firstDueDate }
func (l Loan) Status() valueobject.LoanStatus    { return l.status }
func (l Loan) Version() int                      { return l.version }
func (l Loan) CreatedAt() time.Time              { return l.createdAt }
func (l Loan) UpdatedAt() time.Time              { return l.updatedAt }
func (l Loan) DomainEvents() []event.DomainEvent { return l.domainEvents }

// Collateral returns a copy of the collateral metadata, or nil.
func (l Loan) Collateral() *Collateral {
	if l.collateral == nil {
		return nil
	}
	c := *l.collateral
	return &c
}

// Schedule returns a defensive copy of the installment schedule, ordered by
// installment number.
func (l Loan) Schedule() []Installment {
	if l.schedule == nil {
		return nil
	}
	return copySchedule(l.schedule)
}

// Installment returns the installment with the given number.
func (l Loan) Installment(number int) (Installment, bool) {
	idx := l.installmentIndex(number)
	if idx < 0 {
		return Installment{}, false
	}
	return l.schedule[idx], true
}

// ClearEvents returns a copy with an empty event list.
func (l Loan) ClearEvents() Loan {
	next := l
	next.domainEvents = nil
	return next
}

func (l Loan) installmentIndex(number int) int {
	for i, inst := range l.schedule {
		if inst.Number == number {
			return i
		}
	}
	return -1
}

func copySchedule(s []Installment) []Installment {
	out := make([]Installment, len(s))
	copy(out, s)
	return out
}

func copyEvents(evts []event.DomainEvent) []event.DomainEvent {
	if evts == nil {
		return nil
	}
	out := make([]event.DomainEvent, len(evts))
	copy(out, evts)
	return out
}
