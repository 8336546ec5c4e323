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

// ApplyPaymentUseCase allocates a received payment against a loan: the loan
// mutation, the payment record and the cash book inflow commit in one
// transaction. Mutations are serialized per loan.
type ApplyPaymentUseCase struct {
	uow       port.UnitOfWork
	publisher port.EventPublisher
	locks     *LoanLocks
}

// NewApplyPaymentUseCase wires dependencies. The lock table is shared with
// the other mutating use cases.
func NewApplyPaymentUseCase(uow port.UnitOfWork, publisher port.EventPublisher, locks *LoanLocks) *ApplyPaymentUseCase {
	return &ApplyPaymentUseCase{uow: uow, publisher: publisher, locks: locks}
}

// Execute applies a payment to a loan.
func (uc *ApplyPaymentUseCase) Execute(ctx context.Context, req dto.ApplyPaymentRequest) (dto.PaymentResponse, error) {
	now := time.Now().UTC()

	kind, err := valueobject.NewPaymentKind(req.Kind)
	if err != nil {
		return dto.PaymentResponse{}, err
	}

	unlock := uc.locks.Lock(req.LoanID)
	defer unlock()

	var (
		updated model.Loan
		payment model.Payment
		events  []event.DomainEvent
	)
	err = uc.uow.Execute(ctx, func(r port.Repositories) error {
		loan, err := r.Loans.FindByID(ctx, req.LoanID)
		if err != nil {
			return fmt.Errorf("find loan: %w", err)
		}

		updated, payment, err = loan.ApplyPayment(
			req.InstallmentNumber,
			money.New(req.Amount), money.New(req.Capital), money.New(req.Interest),
			kind, req.RecordedBy, now,
		)
		if err != nil {
			return fmt.Errorf("apply payment: %w", err)
		}

		if err := r.Loans.Save(ctx, updated); err != nil {
			return fmt.Errorf("save loan: %w", err)
		}
		if err := r.Payments.Save(ctx, payment); err != nil {
			return fmt.Errorf("save payment: %w", err)
		}

		book, err := r.CashBook.Get(ctx)
		if err != nil {
			return fmt.Errorf("load cash book: %w", err)
		}
		book, _, err = book.Record(
			payment.Amount().Neg(),
			model.CategoryLoanPayment,
			fmt.Sprintf("payment %s on loan %s", payment.ID(), loan.ID()),
			loan.ID(), payment.ID(), req.RecordedBy, now,
		)
		if err != nil {
			return fmt.Errorf("record payment inflow: %w", err)
		}
		if err := r.CashBook.Save(ctx, book); err != nil {
			return fmt.Errorf("save cash book: %w", err)
		}

		events = append(updated.DomainEvents(), book.DomainEvents()...)
		return nil
	})
	if err != nil {
		return dto.PaymentResponse{}, err
	}

	if err := uc.publisher.Publish(ctx, events...); err != nil {
		return dto.PaymentResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return dto.PaymentResponse{
		PaymentID:          payment.ID(),
		LoanID:             payment.LoanID(),
		InstallmentNumber:  payment.InstallmentNumber(),
		Amount:             payment.Amount().Amount(),
		Capital:            payment.Capital().Amount(),
		Interest:           payment.Interest().Amount(),
		Kind:               payment.Kind().String(),
		RemainingPrincipal: updated.Principal().Amount(),
		LoanStatus:         updated.Status().String(),
		PaidAt:             payment.PaidAt(),
	}, nil
}
