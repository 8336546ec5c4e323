package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/domain/valueobject"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/pkg/money"
)

// GenerateSchedule computes a loan's installment schedule.
//
// Parameters:
//   - principal:  the amount lent
//   - rate:       flat periodic percentage (10 = 10% per month-equivalent
//     period; Biweekly and Weekly charge rate/2 and rate/4 per period)
//   - termMonths: the term in months; the frequency decides how many
//     installments that produces
//   - frequency:  repayment cadence and apportionment model
//   - firstDue:   due date of the first installment
//
// Interest is simple interest on the generation-time principal, constant
// every period, not declining balance. Capital portions are rounded to the
// cent with the final period absorbing the remainder, so their sum equals the
// principal exactly.
func GenerateSchedule(
	principal money.Money,
	rate decimal.Decimal,
	termMonths int,
	frequency valueobject.Frequency,
	firstDue time.Time,
) ([]Installment, error) {
	if !principal.IsPositive() {
		return nil, fmt.Errorf("principal must be positive, got %s", principal)
	}
	if rate.IsNegative() {
		return nil, fmt.Errorf("rate must not be negative, got %s", rate)
	}
	if termMonths <= 0 {
		return nil, fmt.Errorf("term must be positive, got %d months", termMonths)
	}

	periods, err := frequency.Periods(termMonths)
	if err != nil {
		return nil, err
	}
	return generateInstallments(principal, rate, frequency, periods, firstDue, 1)
}

// generateInstallments is the core generator. Recalculation calls it directly
// with a reduced period count and a start number following the last settled
// installment.
func generateInstallments(
	principal money.Money,
	rate decimal.Decimal,
	frequency valueobject.Frequency,
	periods int,
	firstDue time.Time,
	startNumber int,
) ([]Installment, error) {
	if periods <= 0 {
		return nil, nil
	}

	switch {
	case frequency.Equal(valueobject.FrequencyBullet):
		return bulletInstallments(principal, rate, frequency, periods, firstDue, startNumber)
	case frequency.Equal(valueobject.FrequencyInterestOnly):
		return interestOnlyInstallments(principal, rate, frequency, periods, firstDue, startNumber)
	default:
		return amortizedInstallments(principal, rate, frequency, periods, firstDue, startNumber)
	}
}

// amortizedInstallments covers Monthly, Biweekly and Weekly: an even capital
// split plus constant flat interest per period.
func amortizedInstallments(
	principal money.Money,
	rate decimal.Decimal,
	frequency valueobject.Frequency,
	periods int,
	firstDue time.Time,
	startNumber int,
) ([]Installment, error) {
	periodicRate, err := frequency.PeriodicRate(rate)
	if err != nil {
		return nil, err
	}

	capitals, err := principal.Split(periods)
	if err != nil {
		return nil, err
	}
	interest := principal.MulRate(periodicRate).Round()

	schedule := make([]Installment, 0, periods)
	remaining := principal.Round()
	due := firstDue

	for p := 0; p < periods; p++ {
		capital := capitals[p]
		remaining = remaining.Sub(capital)
		if remaining.IsNegative() {
			remaining = money.Zero()
		}

		schedule = append(schedule, Installment{
			Number:             startNumber + p,
			DueDate:            due,
			Capital:            capital,
			Interest:           interest,
			Total:              capital.Add(interest),
			RemainingPrincipal: remaining,
			Status:             valueobject.InstallmentStatusPending,
		})

		due, err = frequency.StepDueDate(due)
		if err != nil {
			return nil, err
		}
	}

	return schedule, nil
}

// bulletInstallments defers everything to the final period: full capital plus
// interest accrued flat over every period.
func bulletInstallments(
	principal money.Money,
	rate decimal.Decimal,
	frequency valueobject.Frequency,
	periods int,
	firstDue time.Time,
	startNumber int,
) ([]Installment, error) {
	whole := principal.Round()
	totalInterest := principal.MulRate(rate).Mul(decimal.NewFromInt(int64(periods))).Round()

	schedule := make([]Installment, 0, periods)
	due := firstDue

	for p := 0; p < periods; p++ {
		inst := Installment{
			Number:             startNumber + p,
			DueDate:            due,
			Capital:            money.Zero(),
			Interest:           money.Zero(),
			Total:              money.Zero(),
			RemainingPrincipal: whole,
			Status:             valueobject.InstallmentStatusPending,
		}
		if p == periods-1 {
			inst.Capital = whole
			inst.Interest = totalInterest
			inst.Total = whole.Add(totalInterest)
			inst.RemainingPrincipal = money.Zero()
		}
		schedule = append(schedule, inst)

		var err error
		due, err = frequency.StepDueDate(due)
		if err != nil {
			return nil, err
		}
	}

	return schedule, nil
}

// interestOnlyInstallments charges flat interest every period and never
// touches capital.
func interestOnlyInstallments(
	principal money.Money,
	rate decimal.Decimal,
	frequency valueobject.Frequency,
	periods int,
	firstDue time.Time,
	startNumber int,
) ([]Installment, error) {
	whole := principal.Round()
	interest := principal.MulRate(rate).Round()

	schedule := make([]Installment, 0, periods)
	due := firstDue

	for p := 0; p < periods; p++ {
		schedule = append(schedule, Installment{
			Number:             startNumber + p,
			DueDate:            due,
			Capital:            money.Zero(),
			Interest:           interest,
			Total:              interest,
			RemainingPrincipal: whole,
			Status:             valueobject.InstallmentStatusPending,
		})

		var err error
		due, err = frequency.StepDueDate(due)
		if err != nil {
			return nil, err
		}
	}

	return schedule, nil
}
