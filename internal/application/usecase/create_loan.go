package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/application/dto"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/domain/event"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/domain/model"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/domain/port"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/domain/valueobject"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/pkg/money"
)

// CreateLoanUseCase creates a loan with its full installment schedule and
// records the disbursement outflow in the cash book, all in one transaction.
type CreateLoanUseCase struct {
	uow       port.UnitOfWork
	publisher port.EventPublisher
}

// NewCreateLoanUseCase wires dependencies.
func NewCreateLoanUseCase(uow port.UnitOfWork, publisher port.EventPublisher) *CreateLoanUseCase {
	return &CreateLoanUseCase{uow: uow, publisher: publisher}
}

// Execute creates and disburses a loan.
func (uc *CreateLoanUseCase) Execute(ctx context.Context, req dto.CreateLoanRequest) (dto.LoanResponse, error) {
	now := time.Now().UTC()

	frequency, err := valueobject.NewFrequency(req.Frequency)
	if err != nil {
		return dto.LoanResponse{}, err
	}

	var collateral *model.Collateral
	if req.Collateral != nil {
		collateral = &model.Collateral{
			Kind:        req.Collateral.Kind,
			Description: req.Collateral.Description,
			Value:       money.New(req.Collateral.Value),
			Status:      valueobject.CollateralStatusInCustody,
		}
	}

	loan, err := model.NewLoan(
		req.ClientID,
		money.New(req.Principal),
		req.Rate,
		req.TermMonths,
		frequency,
		req.FirstDueDate,
		collateral,
		now,
	)
	if err != nil {
		return dto.LoanResponse{}, fmt.Errorf("create loan: %w", err)
	}

	var events []event.DomainEvent
	err = uc.uow.Execute(ctx, func(r port.Repositories) error {
		if err := r.Loans.Save(ctx, loan); err != nil {
			return fmt.Errorf("save loan: %w", err)
		}

		book, err := r.CashBook.Get(ctx)
		if err != nil {
			return fmt.Errorf("load cash book: %w", err)
		}
		book, _, err = book.Record(
			loan.Principal(),
			model.CategoryDisbursement,
			fmt.Sprintf("loan %s disbursed to client %s", loan.ID(), loan.ClientID()),
			loan.ID(), "", req.RecordedBy, now,
		)
		if err != nil {
			return fmt.Errorf("record disbursement: %w", err)
		}
		if err := r.CashBook.Save(ctx, book); err != nil {
			return fmt.Errorf("save cash book: %w", err)
		}

		events = append(loan.DomainEvents(), book.DomainEvents()...)
		return nil
	})
	if err != nil {
		return dto.LoanResponse{}, err
	}

	if err := uc.publisher.Publish(ctx, events...); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toLoanResponse(loan), nil
}

func toLoanResponse(loan model.Loan) dto.LoanResponse {
	resp := dto.LoanResponse{
		ID:           loan.ID(),
		ClientID:     loan.ClientID(),
		Principal:    loan.Principal().Amount(),
		Rate:         loan.Rate(),
		TermMonths:   loan.TermMonths(),
		Frequency:    loan.Frequency().String(),
		FirstDueDate: loan.FirstDueDate(),
		Status:       loan.Status().String(),
		Schedule:     toInstallmentResponses(loan.Schedule(), time.Time{}),
		CreatedAt:    loan.CreatedAt(),
		UpdatedAt:    loan.UpdatedAt(),
	}
	if c := loan.Collateral(); c != nil {
		resp.Collateral = &dto.CollateralResponse{
			Kind:        c.Kind,
			Description: c.Description,
			Value:       c.Value.Amount(),
			Status:      c.Status.String(),
		}
	}
	return resp
}

// toInstallmentResponses maps a schedule; a non-zero asOf fills DaysLate.
func toInstallmentResponses(schedule []model.Installment, asOf time.Time) []dto.InstallmentResponse {
	out := make([]dto.InstallmentResponse, len(schedule))
	for i, inst := range schedule {
		out[i] = dto.InstallmentResponse{
			Number:             inst.Number,
			DueDate:            inst.DueDate,
			Capital:            inst.Capital.Amount(),
			Interest:           inst.Interest.Amount(),
			Total:              inst.Total.Amount(),
			RemainingPrincipal: inst.RemainingPrincipal.Amount(),
			CapitalPaid:        inst.CapitalPaid.Amount(),
			InterestPaid:       inst.InterestPaid.Amount(),
			Status:             inst.Status.String(),
		}
		if !asOf.IsZero() {
			out[i].DaysLate = inst.DaysLate(asOf)
		}
	}
	return out
}
