package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/application/dto"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/application/usecase"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/domain/model"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/domain/valueobject"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/pkg/money"
)

func appliedPayment(t *testing.T) (model.Loan, model.Payment) {
	t.Helper()
	loan := activeLoan(t)

	amount, _ := money.NewFromString("4200")
	capital, _ := money.NewFromString("3000")
	interest, _ := money.NewFromString("1200")

	paid, payment, err := loan.ApplyPayment(
		intPtr(1), amount, capital, interest,
		valueobject.PaymentKindNormal, "cashier-001", time.Now().UTC(),
	)
	require.NoError(t, err)
	return paid.ClearEvents(), payment
}

func TestReversePaymentUseCase_Execute(t *testing.T) {
	t.Run("restores the loan and books the compensating outflow", func(t *testing.T) {
		loan, payment := appliedPayment(t)
		uow, loans, payments, cash := newMockUoW()
		loans.findByIDFunc = func(_ context.Context, _ string) (model.Loan, error) {
			return loan, nil
		}
		payments.findByIDFunc = func(_ context.Context, id string) (model.Payment, error) {
			assert.Equal(t, payment.ID(), id)
			return payment, nil
		}
		publisher := &mockEventPublisher{}
		uc := usecase.NewReversePaymentUseCase(uow, publisher, usecase.NewLoanLocks())

		resp, err := uc.Execute(context.Background(), dto.ReversePaymentRequest{
			LoanID:     loan.ID(),
			PaymentID:  payment.ID(),
			RecordedBy: "cashier-001",
		})
		require.NoError(t, err)

		assert.Equal(t, "ACTIVE", resp.Status)

		require.Len(t, loans.savedLoans, 1)
		inst, ok := loans.savedLoans[0].Installment(1)
		require.True(t, ok)
		assert.Equal(t, valueobject.InstallmentStatusPending, inst.Status)
		assert.True(t, inst.CapitalPaid.IsZero())

		assert.Equal(t, []string{payment.ID()}, payments.reversedIDs)

		require.Len(t, cash.savedBooks, 1)
		book := cash.savedBooks[0]
		require.Len(t, book.Entries(), 1)
		assert.Equal(t, model.CategoryPaymentReversal, book.Entries()[0].Category())
		assert.True(t, book.Entries()[0].IsOutflow())
		assert.True(t, decimal.NewFromInt(4200).Neg().Equal(book.Balance().Amount()))

		assert.Contains(t, eventTypes(publisher.publishedEvents), "PaymentReversed")
	})

	t.Run("refuses double reversal", func(t *testing.T) {
		loan, payment := appliedPayment(t)
		uow, loans, payments, _ := newMockUoW()
		loans.findByIDFunc = func(_ context.Context, _ string) (model.Loan, error) {
			return loan, nil
		}
		payments.findByIDFunc = func(_ context.Context, _ string) (model.Payment, error) {
			return payment, nil
		}
		payments.isReversedFunc = func(_ context.Context, _ string) (bool, error) {
			return true, nil
		}
		uc := usecase.NewReversePaymentUseCase(uow, &mockEventPublisher{}, usecase.NewLoanLocks())

		_, err := uc.Execute(context.Background(), dto.ReversePaymentRequest{
			LoanID:    loan.ID(),
			PaymentID: payment.ID(),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already reversed")
	})

	t.Run("rejects a payment from another loan", func(t *testing.T) {
		loan, _ := appliedPayment(t)
		_, otherPayment := appliedPayment(t)
		uow, _, payments, _ := newMockUoW()
		payments.findByIDFunc = func(_ context.Context, _ string) (model.Payment, error) {
			return otherPayment, nil
		}
		uc := usecase.NewReversePaymentUseCase(uow, &mockEventPublisher{}, usecase.NewLoanLocks())

		_, err := uc.Execute(context.Background(), dto.ReversePaymentRequest{
			LoanID:    loan.ID(),
			PaymentID: otherPayment.ID(),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not belong")
	})
}
