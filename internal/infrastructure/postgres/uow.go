package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/domain/port"
	pgshared "github.com/wandysoluciones/wandy-soluciones-prestamos/pkg/postgres"
)

// UnitOfWork implements port.UnitOfWork: fn runs against repositories bound
// to one transaction, so a payment's loan update, payment insert and cash
// entry commit or roll back as a unit.
type UnitOfWork struct {
	pool *pgxpool.Pool
}

// NewUnitOfWork creates a transaction boundary over the given pool.
func NewUnitOfWork(pool *pgxpool.Pool) *UnitOfWork {
	return &UnitOfWork{pool: pool}
}

// Execute runs fn within a single database transaction.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(r port.Repositories) error) error {
	return pgshared.WithTransaction(ctx, u.pool, func(tx pgx.Tx) error {
		return fn(port.Repositories{
			Loans:    NewLoanRepo(tx),
			Payments: NewPaymentRepo(tx),
			CashBook: NewCashBookRepo(tx),
		})
	})
}
