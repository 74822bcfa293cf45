package payment

import (
	"context"
	"errors"
	"log"

	domain "github.com/BruksfildServices01/barber-payments/internal/domain/payment"
)

// ======================================================
// USE CASE
// ======================================================

// SweepPendingTransfers reage a um evento de conta conectada atualizada: se a
// conta ficou totalmente pronta, retenta a transferência de todos os
// pagamentos do barbeiro que ainda aguardam repasse. Falha de um pagamento
// não interrompe a varredura.
type SweepPendingTransfers struct {
	repo     domain.Repository
	barbers  domain.BarberStore
	transfer *TransferFunds
}

func NewSweepPendingTransfers(
	repo domain.Repository,
	barbers domain.BarberStore,
	transfer *TransferFunds,
) *SweepPendingTransfers {
	return &SweepPendingTransfers{
		repo:     repo,
		barbers:  barbers,
		transfer: transfer,
	}
}

func (uc *SweepPendingTransfers) Execute(
	ctx context.Context,
	connectedAccountID string,
	ready bool,
) error {

	if !ready {
		log.Printf("sweep: account %s not fully ready yet, nothing to do", connectedAccountID)
		return nil
	}

	barber, err := uc.barbers.FindByConnectedAccountID(ctx, connectedAccountID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		log.Printf("sweep: no barber for connected account %s, ignoring", connectedAccountID)
		return nil
	}

	payments, err := uc.repo.ListAwaitingTransfer(ctx, barber.ID)
	if err != nil {
		return err
	}

	log.Printf("sweep: barber %d ready, %d payment(s) awaiting transfer", barber.ID, len(payments))

	for i := range payments {
		p := &payments[i]
		if err := uc.transfer.Execute(ctx, p, barber); err != nil {
			log.Printf("sweep: transfer for payment %d failed: %v", p.ID, err)
		}
	}

	return nil
}
