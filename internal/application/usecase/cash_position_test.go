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
	"github.com/wandysoluciones/wandy-soluciones-prestamos/pkg/money"
)

func seededBook(t *testing.T) model.CashBook {
	t.Helper()
	now := time.Now().UTC()
	book := model.NewCashBook(now)

	out, _ := money.NewFromString("10000")
	in, _ := money.NewFromString("-4200")

	book, _, err := book.Record(out, model.CategoryDisbursement, "", "loan-1", "", "cashier-1", now)
	require.NoError(t, err)
	book, _, err = book.Record(in, model.CategoryLoanPayment, "", "loan-1", "pay-1", "cashier-1", now)
	require.NoError(t, err)
	return book
}

func TestGetCashPositionUseCase_Execute(t *testing.T) {
	t.Run("reports balance, totals and reconciliation", func(t *testing.T) {
		book := seededBook(t)
		cashRepo := &mockCashBookRepository{
			getFunc: func(_ context.Context) (model.CashBook, error) {
				return book, nil
			},
		}
		uc := usecase.NewGetCashPositionUseCase(cashRepo)

		resp, err := uc.Execute(context.Background())
		require.NoError(t, err)

		assert.True(t, decimal.NewFromInt(-5800).Equal(resp.Balance))
		assert.True(t, decimal.NewFromInt(4200).Equal(resp.TotalInflow))
		assert.True(t, decimal.NewFromInt(10000).Equal(resp.TotalOutflow))
		assert.Equal(t, 2, resp.EntryCount)
		assert.True(t, resp.Reconciled)
	})

	t.Run("flags a book that fails reconciliation", func(t *testing.T) {
		now := time.Now().UTC()
		corrupt, _ := money.NewFromString("500")
		entries := []model.CashEntry{
			model.ReconstructCashEntry("e1", corrupt, model.CategoryExpense, "", "", "", "cashier-1", now),
		}
		stored, _ := money.NewFromString("-400")
		book := model.ReconstructCashBook("book-1", entries, stored, 2, now)

		cashRepo := &mockCashBookRepository{
			getFunc: func(_ context.Context) (model.CashBook, error) {
				return book, nil
			},
		}
		uc := usecase.NewGetCashPositionUseCase(cashRepo)

		resp, err := uc.Execute(context.Background())
		require.NoError(t, err)
		assert.False(t, resp.Reconciled)
	})
}

func TestRecordCashEntryUseCase_Execute(t *testing.T) {
	uow, _, _, cash := newMockUoW()
	publisher := &mockEventPublisher{}
	uc := usecase.NewRecordCashEntryUseCase(uow, publisher)

	resp, err := uc.Execute(context.Background(), dto.RecordCashEntryRequest{
		Amount:      decimal.NewFromInt(1500),
		Category:    model.CategoryExpense,
		Description: "office rent",
		RecordedBy:  "admin-001",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, model.CategoryExpense, resp.Category)
	assert.True(t, decimal.NewFromInt(1500).Equal(resp.Amount))

	require.Len(t, cash.savedBooks, 1)
	assert.Contains(t, eventTypes(publisher.publishedEvents), "CashEntryRecorded")
}

func TestChangeLoanStatusUseCase_Execute(t *testing.T) {
	t.Run("pauses an active loan", func(t *testing.T) {
		loan := activeLoan(t)
		loanRepo := &mockLoanRepository{
			findByIDFunc: func(_ context.Context, _ string) (model.Loan, error) {
				return loan, nil
			},
		}
		publisher := &mockEventPublisher{}
		uc := usecase.NewChangeLoanStatusUseCase(loanRepo, publisher, usecase.NewLoanLocks())

		resp, err := uc.Execute(context.Background(), dto.ChangeLoanStatusRequest{
			LoanID: loan.ID(),
			Status: "PAUSED",
		})
		require.NoError(t, err)

		assert.Equal(t, "PAUSED", resp.Status)
		require.Len(t, loanRepo.savedLoans, 1)
		assert.Contains(t, eventTypes(publisher.publishedEvents), "LoanStatusChanged")
	})

	t.Run("rejects transitions to PAID", func(t *testing.T) {
		loan := activeLoan(t)
		loanRepo := &mockLoanRepository{
			findByIDFunc: func(_ context.Context, _ string) (model.Loan, error) {
				return loan, nil
			},
		}
		uc := usecase.NewChangeLoanStatusUseCase(loanRepo, &mockEventPublisher{}, usecase.NewLoanLocks())

		_, err := uc.Execute(context.Background(), dto.ChangeLoanStatusRequest{
			LoanID: loan.ID(),
			Status: "PAID",
		})
		require.Error(t, err)
		assert.Empty(t, loanRepo.savedLoans)
	})
}
