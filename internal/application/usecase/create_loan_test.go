package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/application/dto"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/application/usecase"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/domain/event"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/domain/model"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/domain/port"
)

// --- Mocks ---

type mockLoanRepository struct {
	saveFunc     func(ctx context.Context, loan model.Loan) error
	findByIDFunc func(ctx context.Context, id string) (model.Loan, error)
	savedLoans   []model.Loan
}

func (m *mockLoanRepository) Save(ctx context.Context, loan model.Loan) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, loan)
	}
	m.savedLoans = append(m.savedLoans, loan)
	return nil
}

func (m *mockLoanRepository) FindByID(ctx context.Context, id string) (model.Loan, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Loan{}, fmt.Errorf("loan not found")
}

func (m *mockLoanRepository) FindByClientID(_ context.Context, _ string) ([]model.Loan, error) {
	return nil, nil
}

func (m *mockLoanRepository) FindByStatus(_ context.Context, _ string) ([]model.Loan, error) {
	return nil, nil
}

type mockPaymentRepository struct {
	saveFunc       func(ctx context.Context, payment model.Payment) error
	findByIDFunc   func(ctx context.Context, id string) (model.Payment, error)
	isReversedFunc func(ctx context.Context, paymentID string) (bool, error)
	savedPayments  []model.Payment
	reversedIDs    []string
}

func (m *mockPaymentRepository) Save(ctx context.Context, payment model.Payment) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, payment)
	}
	m.savedPayments = append(m.savedPayments, payment)
	return nil
}

func (m *mockPaymentRepository) FindByID(ctx context.Context, id string) (model.Payment, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Payment{}, fmt.Errorf("payment not found")
}

func (m *mockPaymentRepository) FindByLoanID(_ context.Context, _ string) ([]model.Payment, error) {
	return nil, nil
}

func (m *mockPaymentRepository) MarkReversed(_ context.Context, paymentID string, _ time.Time) error {
	m.reversedIDs = append(m.reversedIDs, paymentID)
	return nil
}

func (m *mockPaymentRepository) IsReversed(ctx context.Context, paymentID string) (bool, error) {
	if m.isReversedFunc != nil {
		return m.isReversedFunc(ctx, paymentID)
	}
	return false, nil
}

type mockCashBookRepository struct {
	getFunc    func(ctx context.Context) (model.CashBook, error)
	saveFunc   func(ctx context.Context, book model.CashBook) error
	savedBooks []model.CashBook
}

func (m *mockCashBookRepository) Get(ctx context.Context) (model.CashBook, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx)
	}
	return model.NewCashBook(time.Now().UTC()), nil
}

func (m *mockCashBookRepository) Save(ctx context.Context, book model.CashBook) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, book)
	}
	m.savedBooks = append(m.savedBooks, book)
	return nil
}

func (m *mockCashBookRepository) FindEntries(_ context.Context, _, _ time.Time, _ string, _ int) ([]model.CashEntry, error) {
	return nil, nil
}

type mockUnitOfWork struct {
	repos port.Repositories
}

func (m *mockUnitOfWork) Execute(_ context.Context, fn func(r port.Repositories) error) error {
	return fn(m.repos)
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

func newMockUoW() (*mockUnitOfWork, *mockLoanRepository, *mockPaymentRepository, *mockCashBookRepository) {
	loans := &mockLoanRepository{}
	payments := &mockPaymentRepository{}
	cash := &mockCashBookRepository{}
	return &mockUnitOfWork{repos: port.Repositories{
		Loans:    loans,
		Payments: payments,
		CashBook: cash,
	}}, loans, payments, cash
}

func eventTypes(events []event.DomainEvent) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.EventType()
	}
	return out
}

// --- Tests ---

func validCreateRequest() dto.CreateLoanRequest {
	return dto.CreateLoanRequest{
		ClientID:     "client-001",
		Principal:    decimal.NewFromInt(120000),
		Rate:         decimal.NewFromInt(10),
		TermMonths:   12,
		Frequency:    "MONTHLY",
		FirstDueDate: time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC),
		RecordedBy:   "cashier-001",
	}
}

func TestCreateLoanUseCase_Execute(t *testing.T) {
	t.Run("creates the loan and books the disbursement outflow", func(t *testing.T) {
		uow, loans, _, cash := newMockUoW()
		publisher := &mockEventPublisher{}
		uc := usecase.NewCreateLoanUseCase(uow, publisher)

		resp, err := uc.Execute(context.Background(), validCreateRequest())
		require.NoError(t, err)

		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "ACTIVE", resp.Status)
		assert.Len(t, resp.Schedule, 12)
		assert.True(t, decimal.NewFromInt(120000).Equal(resp.Principal))

		require.Len(t, loans.savedLoans, 1)
		require.Len(t, cash.savedBooks, 1)

		book := cash.savedBooks[0]
		require.Len(t, book.Entries(), 1)
		entry := book.Entries()[0]
		assert.Equal(t, model.CategoryDisbursement, entry.Category())
		assert.True(t, entry.IsOutflow())
		assert.Equal(t, "-120000.00", book.Balance().String())

		assert.Contains(t, eventTypes(publisher.publishedEvents), "LoanDisbursed")
		assert.Contains(t, eventTypes(publisher.publishedEvents), "CashEntryRecorded")
	})

	t.Run("rejects unknown frequencies", func(t *testing.T) {
		uow, _, _, _ := newMockUoW()
		uc := usecase.NewCreateLoanUseCase(uow, &mockEventPublisher{})

		req := validCreateRequest()
		req.Frequency = "DAILY"
		_, err := uc.Execute(context.Background(), req)
		require.Error(t, err)
	})

	t.Run("rolls up repository failures", func(t *testing.T) {
		uow, loans, _, _ := newMockUoW()
		loans.saveFunc = func(_ context.Context, _ model.Loan) error {
			return fmt.Errorf("connection refused")
		}
		uc := usecase.NewCreateLoanUseCase(uow, &mockEventPublisher{})

		_, err := uc.Execute(context.Background(), validCreateRequest())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "save loan")
	})
}
