package payment

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/BruksfildServices01/barber-payments/internal/audit"
	domain "github.com/BruksfildServices01/barber-payments/internal/domain/payment"
	"github.com/BruksfildServices01/barber-payments/internal/notify"
)

// ======================================================
// USE CASE
// ======================================================

// RecordPaymentFailed projeta um evento de pagamento recusado: agendamento
// vira rejected/failed e o Payment (se existir) registra o motivo.
type RecordPaymentFailed struct {
	repo         domain.Repository
	appointments domain.AppointmentStore
	audit        *audit.Dispatcher
	notify       *notify.Dispatcher
}

func NewRecordPaymentFailed(
	repo domain.Repository,
	appointments domain.AppointmentStore,
	auditDispatcher *audit.Dispatcher,
	notifyDispatcher *notify.Dispatcher,
) *RecordPaymentFailed {
	return &RecordPaymentFailed{
		repo:         repo,
		appointments: appointments,
		audit:        auditDispatcher,
		notify:       notifyDispatcher,
	}
}

func (uc *RecordPaymentFailed) Execute(
	ctx context.Context,
	intentID string,
	reason string,
) error {

	ap, err := uc.appointments.FindByIntentID(ctx, intentID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("find appointment for intent %s: %w", intentID, err)
		}
		log.Printf("payment failed: no appointment for intent %s, ignoring", intentID)
		return nil
	}

	domain.Reject(ap)
	if err := uc.appointments.Update(ctx, ap); err != nil {
		return fmt.Errorf("reject appointment %d: %w", ap.ID, err)
	}

	// Payment para esse intent só existe se um evento aprovado chegou antes;
	// nesse caso o ledger também registra a falha.
	p, err := uc.repo.FindPaymentByIntentID(ctx, intentID)
	switch {
	case err == nil:
		p.Status = string(domain.StatusFailed)
		p.ErrorMessage = reason
		if err := uc.repo.UpdatePayment(ctx, p); err != nil {
			return err
		}
	case !errors.Is(err, domain.ErrNotFound):
		return fmt.Errorf("find payment for intent %s: %w", intentID, err)
	}

	uc.audit.Dispatch(audit.Event{
		BranchID: ap.BranchID,
		Action:   "payment_failed",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]string{"intent_id": intentID, "reason": reason},
	})

	uc.notify.Dispatch(notify.Notification{
		To:      ap.CustomerEmail,
		Subject: "Pagamento não aprovado",
		Body: fmt.Sprintf(
			"Olá %s, não conseguimos confirmar seu pagamento. Tente novamente para garantir seu horário.",
			ap.CustomerName,
		),
	})

	return nil
}
