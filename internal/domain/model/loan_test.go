package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/domain/valueobject"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/pkg/money"
)

var testNow = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func intPtr(n int) *int { return &n }

// newTestLoan builds an active monthly loan of 30,000 at 4% per period over
// 10 months: every installment owes capital 3,000 and interest 1,200.
func newTestLoan(t *testing.T) Loan {
	t.Helper()
	loan, err := NewLoan(
		"client-1",
		mustMoney(t, "30000"),
		decimal.NewFromInt(4),
		10,
		valueobject.FrequencyMonthly,
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		nil,
		testNow,
	)
	require.NoError(t, err)
	return loan.ClearEvents()
}

func TestNewLoan(t *testing.T) {
	t.Run("creates an active loan with a full schedule", func(t *testing.T) {
		collateral := &Collateral{
			Kind:        "VEHICLE",
			Description: "2019 pickup",
			Value:       mustMoney(t, "150000"),
			Status:      valueobject.CollateralStatusInCustody,
		}
		loan, err := NewLoan(
			"client-1",
			mustMoney(t, "120000"),
			decimal.NewFromInt(10),
			12,
			valueobject.FrequencyMonthly,
			time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
			collateral,
			testNow,
		)
		require.NoError(t, err)

		assert.NotEmpty(t, loan.ID())
		assert.Equal(t, valueobject.LoanStatusActive, loan.Status())
		assert.Equal(t, "120000.00", loan.Principal().String())
		assert.Len(t, loan.Schedule(), 12)
		require.NotNil(t, loan.Collateral())
		assert.Equal(t, "VEHICLE", loan.Collateral().Kind)

		events := loan.DomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, "LoanDisbursed", events[0].EventType())
		assert.Equal(t, loan.ID(), events[0].AggregateID())
	})

	t.Run("validation", func(t *testing.T) {
		firstDue := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		rate := decimal.NewFromInt(5)

		_, err := NewLoan("", mustMoney(t, "1000"), rate, 6, valueobject.FrequencyMonthly, firstDue, nil, testNow)
		assert.Error(t, err)

		_, err = NewLoan("c", money.Zero(), rate, 6, valueobject.FrequencyMonthly, firstDue, nil, testNow)
		assert.Error(t, err)

		_, err = NewLoan("c", mustMoney(t, "1000"), rate, 0, valueobject.FrequencyMonthly, firstDue, nil, testNow)
		assert.Error(t, err)

		_, err = NewLoan("c", mustMoney(t, "1000"), rate, 6, valueobject.Frequency{}, firstDue, nil, testNow)
		assert.ErrorIs(t, err, valueobject.ErrUnknownFrequency)

		_, err = NewLoan("c", mustMoney(t, "1000"), rate, 6, valueobject.FrequencyMonthly, time.Time{}, nil, testNow)
		assert.Error(t, err)
	})
}

func TestLoan_ApplyPayment(t *testing.T) {
	t.Run("full installment payment settles it", func(t *testing.T) {
		loan := newTestLoan(t)

		next, payment, err := loan.ApplyPayment(
			intPtr(1),
			mustMoney(t, "4200"), mustMoney(t, "3000"), mustMoney(t, "1200"),
			valueobject.PaymentKindNormal, "cashier-1", testNow,
		)
		require.NoError(t, err)

		inst, ok := next.Installment(1)
		require.True(t, ok)
		assert.Equal(t, valueobject.InstallmentStatusPaid, inst.Status)
		assert.Equal(t, "3000.00", inst.CapitalPaid.String())
		assert.Equal(t, "1200.00", inst.InterestPaid.String())

		// Normal payments never touch the outstanding principal.
		assert.Equal(t, "30000.00", next.Principal().String())
		assert.True(t, payment.PrincipalReduced().IsZero())
		assert.Equal(t, "4200.00", payment.Amount().String())
		require.NotNil(t, payment.InstallmentNumber())
		assert.Equal(t, 1, *payment.InstallmentNumber())

		events := next.DomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, "PaymentReceived", events[0].EventType())

		// The original copy is untouched.
		orig, _ := loan.Installment(1)
		assert.Equal(t, valueobject.InstallmentStatusPending, orig.Status)
	})

	t.Run("partial payment leaves the installment partial", func(t *testing.T) {
		loan := newTestLoan(t)

		next, _, err := loan.ApplyPayment(
			intPtr(1),
			mustMoney(t, "2000"), mustMoney(t, "1000"), mustMoney(t, "1000"),
			valueobject.PaymentKindNormal, "cashier-1", testNow,
		)
		require.NoError(t, err)

		inst, _ := next.Installment(1)
		assert.Equal(t, valueobject.InstallmentStatusPartial, inst.Status)
		assert.Equal(t, "2000.00", inst.CapitalOwed().String())
		assert.Equal(t, "200.00", inst.InterestOwed().String())
	})

	t.Run("portions must add up to the amount", func(t *testing.T) {
		loan := newTestLoan(t)

		_, _, err := loan.ApplyPayment(
			intPtr(1),
			mustMoney(t, "4200"), mustMoney(t, "3000"), mustMoney(t, "1100"),
			valueobject.PaymentKindNormal, "cashier-1", testNow,
		)
		assert.ErrorIs(t, err, valueobject.ErrInvalidAllocation)
	})

	t.Run("one-cent allocation drift is tolerated", func(t *testing.T) {
		loan := newTestLoan(t)

		_, _, err := loan.ApplyPayment(
			intPtr(1),
			mustMoney(t, "4200"), mustMoney(t, "3000"), mustMoney(t, "1199.99"),
			valueobject.PaymentKindNormal, "cashier-1", testNow,
		)
		assert.NoError(t, err)
	})

	t.Run("rejects payments on non-active loans", func(t *testing.T) {
		loan := newTestLoan(t)
		paused, err := loan.ChangeStatus(valueobject.LoanStatusPaused, testNow)
		require.NoError(t, err)

		_, _, err = paused.ApplyPayment(
			intPtr(1),
			mustMoney(t, "4200"), mustMoney(t, "3000"), mustMoney(t, "1200"),
			valueobject.PaymentKindNormal, "cashier-1", testNow,
		)
		assert.Error(t, err)
	})

	t.Run("rejects unknown installment numbers", func(t *testing.T) {
		loan := newTestLoan(t)
		_, _, err := loan.ApplyPayment(
			intPtr(99),
			mustMoney(t, "100"), mustMoney(t, "100"), money.Zero(),
			valueobject.PaymentKindNormal, "cashier-1", testNow,
		)
		assert.Error(t, err)
	})
}

func TestLoan_CapitalReduction(t *testing.T) {
	t.Run("abono reduces principal and regenerates the pending schedule", func(t *testing.T) {
		loan := newTestLoan(t)

		// Settle installment 1 first so regeneration preserves it.
		loan, _, err := loan.ApplyPayment(
			intPtr(1),
			mustMoney(t, "4200"), mustMoney(t, "3000"), mustMoney(t, "1200"),
			valueobject.PaymentKindNormal, "cashier-1", testNow,
		)
		require.NoError(t, err)

		next, payment, err := loan.ApplyPayment(
			nil,
			mustMoney(t, "9000"), mustMoney(t, "9000"), money.Zero(),
			valueobject.PaymentKindCapitalAbono, "cashier-1", testNow,
		)
		require.NoError(t, err)

		assert.Equal(t, "21000.00", next.Principal().String())
		assert.Equal(t, "9000.00", payment.PrincipalReduced().String())

		schedule := next.Schedule()
		require.Len(t, schedule, 10)

		// Installment 1 preserved untouched.
		assert.Equal(t, valueobject.InstallmentStatusPaid, schedule[0].Status)
		assert.Equal(t, "3000.00", schedule[0].Capital.String())

		// Nine regenerated installments over 21,000: even split, flat 4%.
		for _, inst := range schedule[1:] {
			assert.Equal(t, valueobject.InstallmentStatusPending, inst.Status)
			assert.Equal(t, "840.00", inst.Interest.String())
		}
		sum := money.Zero()
		for _, inst := range schedule[1:] {
			sum = sum.Add(inst.Capital)
		}
		assert.Equal(t, "21000.00", sum.String())

		// Cadence continues from the first replaced due date.
		assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), schedule[1].DueDate)
		assert.Equal(t, 2, schedule[1].Number)
	})

	t.Run("abono above the outstanding principal is rejected", func(t *testing.T) {
		loan := newTestLoan(t)

		_, _, err := loan.ApplyPayment(
			nil,
			mustMoney(t, "30000.02"), mustMoney(t, "30000.02"), money.Zero(),
			valueobject.PaymentKindCapitalAbono, "cashier-1", testNow,
		)
		assert.ErrorIs(t, err, valueobject.ErrNegativePrincipal)
	})

	t.Run("abono equal to the principal pays the loan off", func(t *testing.T) {
		loan := newTestLoan(t)

		next, payment, err := loan.ApplyPayment(
			nil,
			mustMoney(t, "30000"), mustMoney(t, "30000"), money.Zero(),
			valueobject.PaymentKindCapitalAbono, "cashier-1", testNow,
		)
		require.NoError(t, err)

		assert.Equal(t, valueobject.LoanStatusPaid, next.Status())
		assert.True(t, next.Principal().IsZero())
		assert.Equal(t, "30000.00", payment.PrincipalReduced().String())
		assert.Empty(t, next.Schedule())

		types := make([]string, 0, len(next.DomainEvents()))
		for _, e := range next.DomainEvents() {
			types = append(types, e.EventType())
		}
		assert.Equal(t, []string{"PaymentReceived", "ScheduleRecalculated", "LoanPaidOff"}, types)
	})

	t.Run("one-cent overshoot floors the principal at zero", func(t *testing.T) {
		loan := newTestLoan(t)

		next, payment, err := loan.ApplyPayment(
			nil,
			mustMoney(t, "30000.01"), mustMoney(t, "30000.01"), money.Zero(),
			valueobject.PaymentKindCapitalAbono, "cashier-1", testNow,
		)
		require.NoError(t, err)

		assert.Equal(t, valueobject.LoanStatusPaid, next.Status())
		assert.True(t, next.Principal().IsZero())
		// Only the actual reduction is recorded, so a reversal restores the
		// original principal exactly.
		assert.Equal(t, "30000.00", payment.PrincipalReduced().String())
	})
}

func TestLoan_ReversePayment(t *testing.T) {
	t.Run("round-trips a normal payment exactly", func(t *testing.T) {
		loan := newTestLoan(t)

		paid, payment, err := loan.ApplyPayment(
			intPtr(1),
			mustMoney(t, "4200"), mustMoney(t, "3000"), mustMoney(t, "1200"),
			valueobject.PaymentKindNormal, "cashier-1", testNow,
		)
		require.NoError(t, err)

		restored, err := paid.ReversePayment(payment, testNow)
		require.NoError(t, err)

		assert.True(t, restored.Principal().Equal(loan.Principal()))
		assert.Equal(t, loan.Status(), restored.Status())

		want := loan.Schedule()
		got := restored.Schedule()
		require.Len(t, got, len(want))
		for i := range want {
			assert.Equal(t, want[i].Status, got[i].Status, "installment %d", want[i].Number)
			assert.True(t, got[i].CapitalPaid.Equal(want[i].CapitalPaid))
			assert.True(t, got[i].InterestPaid.Equal(want[i].InterestPaid))
		}
	})

	t.Run("round-trips a capital abono including the schedule", func(t *testing.T) {
		loan := newTestLoan(t)

		reduced, payment, err := loan.ApplyPayment(
			nil,
			mustMoney(t, "9000"), mustMoney(t, "9000"), money.Zero(),
			valueobject.PaymentKindCapitalAbono, "cashier-1", testNow,
		)
		require.NoError(t, err)

		restored, err := reduced.ReversePayment(payment, testNow)
		require.NoError(t, err)

		assert.Equal(t, "30000.00", restored.Principal().String())

		want := loan.Schedule()
		got := restored.Schedule()
		require.Len(t, got, len(want))
		for i := range want {
			assert.Equal(t, want[i].Number, got[i].Number)
			assert.Equal(t, want[i].DueDate, got[i].DueDate)
			assert.True(t, got[i].Capital.Equal(want[i].Capital), "installment %d capital", want[i].Number)
			assert.True(t, got[i].Interest.Equal(want[i].Interest), "installment %d interest", want[i].Number)
		}
	})

	t.Run("reversing a payoff reactivates the loan", func(t *testing.T) {
		loan := newTestLoan(t)

		paidOff, payment, err := loan.ApplyPayment(
			nil,
			mustMoney(t, "30000"), mustMoney(t, "30000"), money.Zero(),
			valueobject.PaymentKindCapitalAbono, "cashier-1", testNow,
		)
		require.NoError(t, err)
		require.Equal(t, valueobject.LoanStatusPaid, paidOff.Status())

		restored, err := paidOff.ReversePayment(payment, testNow)
		require.NoError(t, err)

		assert.Equal(t, valueobject.LoanStatusActive, restored.Status())
		assert.Equal(t, "30000.00", restored.Principal().String())
		assert.Len(t, restored.Schedule(), 10)
	})

	t.Run("rejects payments from other loans", func(t *testing.T) {
		loan := newTestLoan(t)
		other := newTestLoan(t)

		_, payment, err := other.ApplyPayment(
			intPtr(1),
			mustMoney(t, "4200"), mustMoney(t, "3000"), mustMoney(t, "1200"),
			valueobject.PaymentKindNormal, "cashier-1", testNow,
		)
		require.NoError(t, err)

		_, err = loan.ReversePayment(payment, testNow)
		assert.Error(t, err)
	})
}

func TestLoan_Recalculate(t *testing.T) {
	t.Run("is idempotent", func(t *testing.T) {
		loan := newTestLoan(t)

		loan, _, err := loan.ApplyPayment(
			nil,
			mustMoney(t, "6000"), mustMoney(t, "6000"), money.Zero(),
			valueobject.PaymentKindCapitalAbono, "cashier-1", testNow,
		)
		require.NoError(t, err)

		again, err := loan.Recalculate(testNow)
		require.NoError(t, err)

		want := loan.Schedule()
		got := again.Schedule()
		require.Len(t, got, len(want))
		for i := range want {
			assert.Equal(t, want[i].Number, got[i].Number)
			assert.Equal(t, want[i].DueDate, got[i].DueDate)
			assert.True(t, got[i].Capital.Equal(want[i].Capital))
			assert.True(t, got[i].Interest.Equal(want[i].Interest))
			assert.Equal(t, want[i].Status, got[i].Status)
		}
	})

	t.Run("refuses settled loans", func(t *testing.T) {
		loan := newTestLoan(t)
		cancelled, err := loan.ChangeStatus(valueobject.LoanStatusCancelled, testNow)
		require.NoError(t, err)

		_, err = cancelled.Recalculate(testNow)
		assert.ErrorIs(t, err, valueobject.ErrScheduleRegenerationConflict)
	})
}

func TestLoan_ChangeStatus(t *testing.T) {
	loan := newTestLoan(t)

	t.Run("active can pause and resume", func(t *testing.T) {
		paused, err := loan.ChangeStatus(valueobject.LoanStatusPaused, testNow)
		require.NoError(t, err)
		assert.Equal(t, valueobject.LoanStatusPaused, paused.Status())

		resumed, err := paused.ChangeStatus(valueobject.LoanStatusActive, testNow)
		require.NoError(t, err)
		assert.Equal(t, valueobject.LoanStatusActive, resumed.Status())
	})

	t.Run("paid is not reachable manually", func(t *testing.T) {
		_, err := loan.ChangeStatus(valueobject.LoanStatusPaid, testNow)
		assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		cancelled, err := loan.ChangeStatus(valueobject.LoanStatusCancelled, testNow)
		require.NoError(t, err)

		_, err = cancelled.ChangeStatus(valueobject.LoanStatusActive, testNow)
		assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)

		_, err = cancelled.ChangeStatus(valueobject.LoanStatusPaused, testNow)
		assert.ErrorIs(t, err, valueobject.ErrInvalidStatusTransition)
	})
}

func TestLoan_Summary(t *testing.T) {
	loan := newTestLoan(t)

	loan, _, err := loan.ApplyPayment(
		intPtr(1),
		mustMoney(t, "4200"), mustMoney(t, "3000"), mustMoney(t, "1200"),
		valueobject.PaymentKindNormal, "cashier-1", testNow,
	)
	require.NoError(t, err)

	// Installments 2 and 3 due 2026-03-01 and 2026-04-01 are overdue by May.
	asOf := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	s := loan.Summary(asOf)

	assert.Equal(t, 10, s.TotalInstallments)
	assert.Equal(t, 1, s.PaidCount)
	assert.Equal(t, 9, s.PendingCount)
	assert.Equal(t, "42000.00", s.TotalDue.String())
	assert.Equal(t, "4200.00", s.Paid.String())
	assert.Equal(t, "37800.00", s.Pending.String())
	assert.Equal(t, 2, s.OverdueCount)
}
