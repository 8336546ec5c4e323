package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/domain/model"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/pkg/money"
	pgshared "github.com/wandysoluciones/wandy-soluciones-prestamos/pkg/postgres"
)

// defaultBookID pins the single cash book row. The schema seeds it.
const defaultBookID = "00000000-0000-0000-0000-000000000001"

// CashBookRepo implements port.CashBookRepository on PostgreSQL. The book is
// a single row holding the running balance plus an append-only entries table.
type CashBookRepo struct {
	q pgshared.Querier
}

// NewCashBookRepo creates a PostgreSQL-backed cash book repository.
func NewCashBookRepo(q pgshared.Querier) *CashBookRepo {
	return &CashBookRepo{q: q}
}

// Get loads the cash book with all its entries.
func (r *CashBookRepo) Get(ctx context.Context) (model.CashBook, error) {
	var id string
	var balance decimal.Decimal
	var version int
	var updatedAt time.Time

	err := r.q.QueryRow(ctx,
		`SELECT id, balance, version, updated_at FROM cash_books WHERE id = $1 FOR UPDATE`,
		defaultBookID,
	).Scan(&id, &balance, &version, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.CashBook{}, fmt.Errorf("cash book: %w", ErrNotFound)
		}
		return model.CashBook{}, fmt.Errorf("load cash book: %w", err)
	}

	entries, err := r.loadEntries(ctx, id)
	if err != nil {
		return model.CashBook{}, err
	}

	return model.ReconstructCashBook(id, entries, money.New(balance), version, updatedAt), nil
}

// Save persists the book's balance row and appends any new entries. Existing
// entries are immutable, so inserts use ON CONFLICT DO NOTHING keyed by
// entry ID.
func (r *CashBookRepo) Save(ctx context.Context, book model.CashBook) error {
	bookQuery := `
		UPDATE cash_books
		SET balance = $2, version = cash_books.version + 1, updated_at = $3
		WHERE id = $1 AND version = $4
	`
	tag, err := r.q.Exec(ctx, bookQuery,
		book.ID(), book.Balance().Amount(), book.UpdatedAt(), book.Version(),
	)
	if err != nil {
		return fmt.Errorf("save cash book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w on cash book %s", ErrVersionConflict, book.ID())
	}

	for _, e := range book.Entries() {
		entryQuery := `
			INSERT INTO cash_entries (
				id, book_id, amount, category, description,
				loan_id, payment_id, recorded_by, recorded_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
			ON CONFLICT (id) DO NOTHING
		`
		_, err := r.q.Exec(ctx, entryQuery,
			e.ID(), book.ID(), e.Amount().Amount(), e.Category(), e.Description(),
			nullable(e.LoanID()), nullable(e.PaymentID()), e.RecordedBy(), e.RecordedAt(),
		)
		if err != nil {
			return fmt.Errorf("save cash entry %s: %w", e.ID(), err)
		}
	}

	return nil
}

// FindEntries lists entries filtered by category and date range, oldest
// first. Zero time bounds and an empty category match everything; the caller
// clamps limit.
func (r *CashBookRepo) FindEntries(ctx context.Context, from, to time.Time, category string, limit int) ([]model.CashEntry, error) {
	query := `
		SELECT id, amount, category, description, loan_id, payment_id, recorded_by, recorded_at
		FROM cash_entries
		WHERE ($1::timestamptz IS NULL OR recorded_at >= $1)
		  AND ($2::timestamptz IS NULL OR recorded_at <= $2)
		  AND ($3::text IS NULL OR category = $3)
		ORDER BY recorded_at
		LIMIT $4
	`
	rows, err := r.q.Query(ctx, query, nullableTime(from), nullableTime(to), nullable(category), limit)
	if err != nil {
		return nil, fmt.Errorf("query cash entries: %w", err)
	}
	defer rows.Close()

	var entries []model.CashEntry
	for rows.Next() {
		e, err := scanCashEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cash entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *CashBookRepo) loadEntries(ctx context.Context, bookID string) ([]model.CashEntry, error) {
	query := `
		SELECT id, amount, category, description, loan_id, payment_id, recorded_by, recorded_at
		FROM cash_entries
		WHERE book_id = $1
		ORDER BY recorded_at
	`
	rows, err := r.q.Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("query cash entries: %w", err)
	}
	defer rows.Close()

	var entries []model.CashEntry
	for rows.Next() {
		e, err := scanCashEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cash entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanCashEntry(row pgx.Row) (model.CashEntry, error) {
	var id, category, recordedBy string
	var description, loanID, paymentID *string
	var amount decimal.Decimal
	var recordedAt time.Time

	err := row.Scan(&id, &amount, &category, &description, &loanID, &paymentID, &recordedBy, &recordedAt)
	if err != nil {
		return model.CashEntry{}, err
	}

	return model.ReconstructCashEntry(
		id, money.New(amount), category, derefString(description),
		derefString(loanID), derefString(paymentID), recordedBy, recordedAt,
	), nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
