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

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrVersionConflict is returned when an optimistic locking guard rejects a
// save. The caller reloads and retries, or surfaces the conflict.
var ErrVersionConflict = errors.New("optimistic locking conflict")

// LoanRepo implements port.LoanRepository on PostgreSQL. It works against
// either a pool or a transaction through the shared Querier interface.
type LoanRepo struct {
	q pgshared.Querier
}

// NewLoanRepo creates a PostgreSQL-backed loan repository.
func NewLoanRepo(q pgshared.Querier) *LoanRepo {
	return &LoanRepo{q: q}
}

// Save persists a loan and replaces its installment schedule. Updates carry
// an optimistic version guard: a concurrent writer that bumped the version
// first wins and this save fails with ErrVersionConflict.
func (r *LoanRepo) Save(ctx context.Context, loan model.Loan) error {
	loanQuery := `
		INSERT INTO loans (
			id, client_id, principal, rate, term_months, frequency,
			first_due_date, collateral_kind, collateral_description,
			collateral_value, collateral_status,
			status, version, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		ON CONFLICT (id) DO UPDATE SET
			principal             = EXCLUDED.principal,
			collateral_status     = EXCLUDED.collateral_status,
			status                = EXCLUDED.status,
			version               = loans.version + 1,
			updated_at            = EXCLUDED.updated_at
		WHERE loans.version = $13
	`

	var colKind, colDesc, colStatus *string
	var colValue *decimal.Decimal
	if c := loan.Collateral(); c != nil {
		kind, desc, status := c.Kind, c.Description, c.Status.String()
		value := c.Value.Amount()
		colKind, colDesc, colStatus, colValue = &kind, &desc, &status, &value
	}

	tag, err := r.q.Exec(ctx, loanQuery,
		loan.ID(), loan.ClientID(), loan.Principal().Amount(), loan.Rate(),
		loan.TermMonths(), loan.Frequency().String(), loan.FirstDueDate(),
		colKind, colDesc, colValue, colStatus,
		loan.Status().String(), loan.Version(), loan.CreatedAt(), loan.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save loan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w on loan %s", ErrVersionConflict, loan.ID())
	}

	// The schedule is regenerated wholesale on recalculation, so replace it
	// rather than diffing.
	if _, err := r.q.Exec(ctx, `DELETE FROM installments WHERE loan_id = $1`, loan.ID()); err != nil {
		return fmt.Errorf("clear installments: %w", err)
	}
	for _, inst := range loan.Schedule() {
		instQuery := `
			INSERT INTO installments (
				loan_id, number, due_date, capital, interest, total,
				remaining_principal, capital_paid, interest_paid, status
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		`
		_, err := r.q.Exec(ctx, instQuery,
			loan.ID(), inst.Number, inst.DueDate,
			inst.Capital.Amount(), inst.Interest.Amount(), inst.Total.Amount(),
			inst.RemainingPrincipal.Amount(), inst.CapitalPaid.Amount(),
			inst.InterestPaid.Amount(), inst.Status.String(),
		)
		if err != nil {
			return fmt.Errorf("save installment %d: %w", inst.Number, err)
		}
	}

	return nil
}

const loanColumns = `
	id, client_id, principal, rate, term_months, frequency,
	first_due_date, collateral_kind, collateral_description,
	collateral_value, collateral_status,
	status, version, created_at, updated_at
`

// FindByID retrieves a loan and its schedule.
func (r *LoanRepo) FindByID(ctx context.Context, id string) (model.Loan, error) {
	row := r.q.QueryRow(ctx, `SELECT `+loanColumns+` FROM loans WHERE id = $1`, id)
	loan, err := r.scanLoan(ctx, row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Loan{}, fmt.Errorf("loan %s: %w", id, ErrNotFound)
		}
		return model.Loan{}, fmt.Errorf("find loan: %w", err)
	}
	return loan, nil
}

// FindByClientID retrieves all loans of a client, newest first.
func (r *LoanRepo) FindByClientID(ctx context.Context, clientID string) ([]model.Loan, error) {
	return r.findMany(ctx, `SELECT `+loanColumns+` FROM loans WHERE client_id = $1 ORDER BY created_at DESC`, clientID)
}

// FindByStatus retrieves all loans in the given status, newest first.
func (r *LoanRepo) FindByStatus(ctx context.Context, status string) ([]model.Loan, error) {
	return r.findMany(ctx, `SELECT `+loanColumns+` FROM loans WHERE status = $1 ORDER BY created_at DESC`, status)
}

func (r *LoanRepo) findMany(ctx context.Context, query string, arg any) ([]model.Loan, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("query loans: %w", err)
	}
	defer rows.Close()

	var loans []model.Loan
	for rows.Next() {
		loan, err := r.scanLoan(ctx, rows)
		if err != nil {
			return nil, fmt.Errorf("scan loan: %w", err)
		}
		loans = append(loans, loan)
	}
	return loans, rows.Err()
}

func (r *LoanRepo) scanLoan(ctx context.Context, row pgx.Row) (model.Loan, error) {
	var id, clientID, frequency, status string
	var principal, rate decimal.Decimal
	var termMonths, version int
	var firstDueDate, createdAt, updatedAt time.Time
	var colKind, colDesc, colStatus *string
	var colValue *decimal.Decimal

	err := row.Scan(
		&id, &clientID, &principal, &rate, &termMonths, &frequency,
		&firstDueDate, &colKind, &colDesc, &colValue, &colStatus,
		&status, &version, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.Loan{}, err
	}

	freq, err := valueobject.NewFrequency(frequency)
	if err != nil {
		return model.Loan{}, err
	}
	loanStatus, err := valueobject.NewLoanStatus(status)
	if err != nil {
		return model.Loan{}, err
	}

	var collateral *model.Collateral
	if colKind != nil {
		cs, err := valueobject.NewCollateralStatus(derefString(colStatus))
		if err != nil {
			return model.Loan{}, err
		}
		collateral = &model.Collateral{
			Kind:        *colKind,
			Description: derefString(colDesc),
			Value:       money.New(derefDecimal(colValue)),
			Status:      cs,
		}
	}

	schedule, err := r.loadSchedule(ctx, id)
	if err != nil {
		return model.Loan{}, err
	}

	return model.ReconstructLoan(
		id, clientID, money.New(principal), rate, termMonths, freq,
		firstDueDate, collateral, loanStatus, schedule,
		version, createdAt, updatedAt,
	), nil
}

func (r *LoanRepo) loadSchedule(ctx context.Context, loanID string) ([]model.Installment, error) {
	query := `
		SELECT number, due_date, capital, interest, total,
		       remaining_principal, capital_paid, interest_paid, status
		FROM installments
		WHERE loan_id = $1
		ORDER BY number
	`
	rows, err := r.q.Query(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("query installments: %w", err)
	}
	defer rows.Close()

	var schedule []model.Installment
	for rows.Next() {
		var number int
		var dueDate time.Time
		var capital, interest, total, remainingPrincipal, capPaid, intPaid decimal.Decimal
		var status string
		err := rows.Scan(
			&number, &dueDate, &capital, &interest, &total,
			&remainingPrincipal, &capPaid, &intPaid, &status,
		)
		if err != nil {
			return nil, fmt.Errorf("scan installment: %w", err)
		}

		instStatus, err := valueobject.NewInstallmentStatus(status)
		if err != nil {
			return nil, err
		}

		schedule = append(schedule, model.Installment{
			Number:             number,
			DueDate:            dueDate,
			Capital:            money.New(capital),
			Interest:           money.New(interest),
			Total:              money.New(total),
			RemainingPrincipal: money.New(remainingPrincipal),
			CapitalPaid:        money.New(capPaid),
			InterestPaid:       money.New(intPaid),
			Status:             instStatus,
		})
	}
	return schedule, rows.Err()
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefDecimal(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
