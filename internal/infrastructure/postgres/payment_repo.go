package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/domain/model"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/domain/valueobject"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/pkg/money"
	pgshared "github.com/wandysoluciones/wandy-soluciones-prestamos/pkg/postgres"
)

// PaymentRepo implements port.PaymentRepository on PostgreSQL.
type PaymentRepo struct {
	q pgshared.Querier
}

// NewPaymentRepo creates a PostgreSQL-backed payment repository.
func NewPaymentRepo(q pgshared.Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Save inserts a payment. Payments are immutable; there is no update path.
func (r *PaymentRepo) Save(ctx context.Context, p model.Payment) error {
	query := `
		INSERT INTO payments (
			id, loan_id, installment_number, amount, capital, interest,
			principal_reduced, kind, paid_at, recorded_by
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`
	_, err := r.q.Exec(ctx, query,
		p.ID(), p.LoanID(), p.InstallmentNumber(),
		p.Amount().Amount(), p.Capital().Amount(), p.Interest().Amount(),
		p.PrincipalReduced().Amount(), p.Kind().String(), p.PaidAt(), p.RecordedBy(),
	)
	if err != nil {
		return fmt.Errorf("save payment: %w", err)
	}
	return nil
}

const paymentColumns = `
	id, loan_id, installment_number, amount, capital, interest,
	principal_reduced, kind, paid_at, recorded_by
`

// FindByID retrieves a payment.
func (r *PaymentRepo) FindByID(ctx context.Context, id string) (model.Payment, error) {
	row := r.q.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)
	p, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Payment{}, fmt.Errorf("payment %s: %w", id, ErrNotFound)
		}
		return model.Payment{}, fmt.Errorf("find payment: %w", err)
	}
	return p, nil
}

// FindByLoanID retrieves all payments of a loan in application order.
func (r *PaymentRepo) FindByLoanID(ctx context.Context, loanID string) ([]model.Payment, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE loan_id = $1 ORDER BY paid_at`, loanID)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	var payments []model.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// MarkReversed flags a payment as reversed. The payment row itself stays
// untouched; reversal is an audit fact, not an edit.
func (r *PaymentRepo) MarkReversed(ctx context.Context, paymentID string, reversedAt time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE payments SET reversed_at = $2 WHERE id = $1 AND reversed_at IS NULL`,
		paymentID, reversedAt,
	)
	if err != nil {
		return fmt.Errorf("mark payment reversed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("payment %s already reversed or missing", paymentID)
	}
	return nil
}

// IsReversed reports whether a payment has been reversed.
func (r *PaymentRepo) IsReversed(ctx context.Context, paymentID string) (bool, error) {
	var reversedAt *time.Time
	err := r.q.QueryRow(ctx, `SELECT reversed_at FROM payments WHERE id = $1`, paymentID).Scan(&reversedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, fmt.Errorf("payment %s: %w", paymentID, ErrNotFound)
		}
		return false, fmt.Errorf("check payment reversal: %w", err)
	}
	return reversedAt != nil, nil
}

func scanPayment(row pgx.Row) (model.Payment, error) {
	var id, loanID, kind, recordedBy string
	var installmentNumber *int
	var amount, capital, interest, principalReduced decimal.Decimal
	var paidAt time.Time

	err := row.Scan(
		&id, &loanID, &installmentNumber,
		&amount, &capital, &interest, &principalReduced,
		&kind, &paidAt, &recordedBy,
	)
	if err != nil {
		return model.Payment{}, err
	}

	paymentKind, err := valueobject.NewPaymentKind(kind)
	if err != nil {
		return model.Payment{}, err
	}

	return model.ReconstructPayment(
		id, loanID, installmentNumber,
		money.New(amount), money.New(capital), money.New(interest), money.New(principalReduced),
		paymentKind, paidAt, recordedBy,
	), nil
}
