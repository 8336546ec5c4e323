package port

import (
	"context"
	"time"

	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/domain/event"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// LoanRepository persists and retrieves loans together with their schedules.
type LoanRepository interface {
	Save(ctx context.Context, loan model.Loan) error
	FindByID(ctx context.Context, id string) (model.Loan, error)
	FindByClientID(ctx context.Context, clientID string) ([]model.Loan, error)
	FindByStatus(ctx context.Context, status string) ([]model.Loan, error)
}

// PaymentRepository persists and retrieves payment records.
type PaymentRepository interface {
	Save(ctx context.Context, payment model.Payment) error
	FindByID(ctx context.Context, id string) (model.Payment, error)
	FindByLoanID(ctx context.Context, loanID string) ([]model.Payment, error)
	MarkReversed(ctx context.Context, paymentID string, reversedAt time.Time) error
	IsReversed(ctx context.Context, paymentID string) (bool, error)
}

// CashBookRepository persists and retrieves the cash book.
type CashBookRepository interface {
	Save(ctx context.Context, book model.CashBook) error
	Get(ctx context.Context) (model.CashBook, error)
	FindEntries(ctx context.Context, from, to time.Time, category string, limit int) ([]model.CashEntry, error)
}

// ---------------------------------------------------------------------------
// Unit of work
// ---------------------------------------------------------------------------

// Repositories bundles the repository ports bound to a single transaction.
type Repositories struct {
	Loans    LoanRepository
	Payments PaymentRepository
	CashBook CashBookRepository
}

// UnitOfWork runs fn inside one database transaction. Every repository call
// made through the passed Repositories commits or rolls back together, so a
// payment's loan update, payment record and cash entry land atomically.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(r Repositories) error) error
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}
