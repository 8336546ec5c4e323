package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/application/dto"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/domain/event"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/domain/model"
	"github.com/wandysoluciones/wandy-soluciones-prestamos/internal/domain/port"
)

// ReversePaymentUseCase undoes a recorded payment: the loan is restored to
// its pre-payment state, the payment is flagged reversed, and a compensating
// outflow lands in the cash book, all in one transaction.
type ReversePaymentUseCase struct {
	uow       port.UnitOfWork
	publisher port.EventPublisher
	locks     *LoanLocks
}

// NewReversePaymentUseCase wires dependencies. The lock table is shared with
// the other mutating use cases.
func NewReversePaymentUseCase(uow port.UnitOfWork, publisher port.EventPublisher, locks *LoanLocks) *ReversePaymentUseCase {
	return &ReversePaymentUseCase{uow: uow, publisher: publisher, locks: locks}
}

// Execute reverses a payment.
func (uc *ReversePaymentUseCase) Execute(ctx context.Context, req dto.ReversePaymentRequest) (dto.LoanResponse, error) {
	now := time.Now().UTC()

	unlock := uc.locks.Lock(req.LoanID)
	defer unlock()

	var (
		restored model.Loan
		events   []event.DomainEvent
	)
	err := uc.uow.Execute(ctx, func(r port.Repositories) error {
		payment, err := r.Payments.FindByID(ctx, req.PaymentID)
		if err != nil {
			return fmt.Errorf("find payment: %w", err)
		}
		if payment.LoanID() != req.LoanID {
			return fmt.Errorf("payment %s does not belong to loan %s", req.PaymentID, req.LoanID)
		}

		reversed, err := r.Payments.IsReversed(ctx, payment.ID())
		if err != nil {
			return fmt.Errorf("check reversal: %w", err)
		}
		if reversed {
			return fmt.Errorf("payment %s is already reversed", payment.ID())
		}

		loan, err := r.Loans.FindByID(ctx, req.LoanID)
		if err != nil {
			return fmt.Errorf("find loan: %w", err)
		}

		restored, err = loan.ReversePayment(payment, now)
		if err != nil {
			return fmt.Errorf("reverse payment: %w", err)
		}

		if err := r.Loans.Save(ctx, restored); err != nil {
			return fmt.Errorf("save loan: %w", err)
		}
		if err := r.Payments.MarkReversed(ctx, payment.ID(), now); err != nil {
			return fmt.Errorf("mark reversed: %w", err)
		}

		book, err := r.CashBook.Get(ctx)
		if err != nil {
			return fmt.Errorf("load cash book: %w", err)
		}
		book, _, err = book.Record(
			payment.Amount(),
			model.CategoryPaymentReversal,
			fmt.Sprintf("reversal of payment %s on loan %s", payment.ID(), loan.ID()),
			loan.ID(), payment.ID(), req.RecordedBy, now,
		)
		if err != nil {
			return fmt.Errorf("record reversal outflow: %w", err)
		}
		if err := r.CashBook.Save(ctx, book); err != nil {
			return fmt.Errorf("save cash book: %w", err)
		}

		events = append(restored.DomainEvents(), book.DomainEvents()...)
		return nil
	})
	if err != nil {
		return dto.LoanResponse{}, err
	}

	if err := uc.publisher.Publish(ctx, events...); err != nil {
		return dto.LoanResponse{}, fmt.Errorf("publish events: %w", err)
	}

	return toLoanResponse(restored), nil
}
