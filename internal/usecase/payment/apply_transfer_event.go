package payment

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/BruksfildServices01/barber-payments/internal/audit"
	domain "github.com/BruksfildServices01/barber-payments/internal/domain/payment"
)

// ======================================================
// INPUT
// ======================================================

type ApplyTransferEventInput struct {
	TransferID     string
	ProviderStatus string
	// Mensagem descritiva; se vazia, é derivada do status do provedor
	Message string
}

// ======================================================
// USE CASE
// ======================================================

// ApplyTransferEvent projeta eventos assíncronos de transferência
// (updated/reversed/failed) sobre o ledger. completed é terminal: nenhum
// evento posterior rebaixa o estado.
type ApplyTransferEvent struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewApplyTransferEvent(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
) *ApplyTransferEvent {
	return &ApplyTransferEvent{
		repo:  repo,
		audit: auditDispatcher,
	}
}

func (uc *ApplyTransferEvent) Execute(
	ctx context.Context,
	in ApplyTransferEventInput,
) error {

	p, err := uc.repo.FindPaymentByTransferID(ctx, in.TransferID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		log.Printf("transfer event: no payment for transfer %s, ignoring", in.TransferID)
		return nil
	}

	mapped, ok := domain.MapProviderTransferStatus(in.ProviderStatus)
	if !ok {
		log.Printf("transfer event: status %q for transfer %s ignored", in.ProviderStatus, in.TransferID)
		return nil
	}

	if p.TransferStatus == string(domain.TransferCompleted) && mapped != domain.TransferCompleted {
		log.Printf("transfer event: payment %d already completed, ignoring %q", p.ID, in.ProviderStatus)
		return nil
	}

	p.TransferStatus = string(mapped)
	if mapped == domain.TransferFailed {
		msg := in.Message
		if msg == "" {
			msg = fmt.Sprintf("provider reported transfer status %q", in.ProviderStatus)
		}
		p.ErrorMessage = msg
	}

	if err := uc.repo.UpdatePayment(ctx, p); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "transfer_event_applied",
		Entity:   "payment",
		EntityID: &p.ID,
		Metadata: map[string]string{
			"transfer_id":     in.TransferID,
			"provider_status": in.ProviderStatus,
			"transfer_status": p.TransferStatus,
		},
	})

	return nil
}
