package payment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/barber-payments/internal/audit"
	domain "github.com/BruksfildServices01/barber-payments/internal/domain/payment"
	"github.com/BruksfildServices01/barber-payments/internal/httperr"
	"github.com/BruksfildServices01/barber-payments/internal/models"
)

// ======================================================
// USE CASE
// ======================================================

// RetryTransfer é o caminho manual do operador: reexecuta o contrato da
// transferência para um único Payment.
type RetryTransfer struct {
	repo     domain.Repository
	barbers  domain.BarberStore
	transfer *TransferFunds
	audit    *audit.Dispatcher
}

func NewRetryTransfer(
	repo domain.Repository,
	barbers domain.BarberStore,
	transfer *TransferFunds,
	auditDispatcher *audit.Dispatcher,
) *RetryTransfer {
	return &RetryTransfer{
		repo:     repo,
		barbers:  barbers,
		transfer: transfer,
		audit:    auditDispatcher,
	}
}

func (uc *RetryTransfer) Execute(
	ctx context.Context,
	paymentID uint,
	operatorID uint,
) (*models.Payment, error) {

	p, err := uc.repo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("payment_not_found")
		}
		return nil, err
	}

	if err := domain.CanRetryTransfer(domain.TransferStatus(p.TransferStatus)); err != nil {
		return nil, err
	}

	barber, err := uc.barbers.FindByID(ctx, p.BarberID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("barber_not_found")
		}
		return nil, err
	}
	if !barber.HasConnectedAccount() {
		return nil, httperr.ErrBusiness("no_connected_account")
	}

	if err := uc.transfer.Execute(ctx, p, barber); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BranchID: barber.BranchID,
		BarberID: &operatorID,
		Action:   "transfer_retried",
		Entity:   "payment",
		EntityID: &p.ID,
		Metadata: map[string]string{"transfer_status": p.TransferStatus},
	})

	return p, nil
}
