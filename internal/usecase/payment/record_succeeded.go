package payment

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/BruksfildServices01/barber-payments/internal/audit"
	domain "github.com/BruksfildServices01/barber-payments/internal/domain/payment"
	"github.com/BruksfildServices01/barber-payments/internal/models"
	"github.com/BruksfildServices01/barber-payments/internal/notify"
)

// ======================================================
// INPUT
// ======================================================

type RecordPaymentSucceededInput struct {
	IntentID      string
	AmountCents   int64
	Currency      string
	ReceiptEmail  string
	PaymentMethod string
}

// ======================================================
// USE CASE
// ======================================================

// RecordPaymentSucceeded é o handler de "pagamento aprovado": cria o registro
// no ledger (idempotente por intent id), confirma o agendamento e dispara a
// transferência quando o barbeiro já tem conta conectada.
type RecordPaymentSucceeded struct {
	repo         domain.Repository
	appointments domain.AppointmentStore
	barbers      domain.BarberStore
	transfer     *TransferFunds
	audit        *audit.Dispatcher
	notify       *notify.Dispatcher

	feePercent float64
}

func NewRecordPaymentSucceeded(
	repo domain.Repository,
	appointments domain.AppointmentStore,
	barbers domain.BarberStore,
	transfer *TransferFunds,
	auditDispatcher *audit.Dispatcher,
	notifyDispatcher *notify.Dispatcher,
	feePercent float64,
) *RecordPaymentSucceeded {
	return &RecordPaymentSucceeded{
		repo:         repo,
		appointments: appointments,
		barbers:      barbers,
		transfer:     transfer,
		audit:        auditDispatcher,
		notify:       notifyDispatcher,
		feePercent:   feePercent,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *RecordPaymentSucceeded) Execute(
	ctx context.Context,
	in RecordPaymentSucceededInput,
) error {

	// --------------------------------------------------
	// 1️⃣ Agendamento dono do intent
	// --------------------------------------------------
	ap, err := uc.appointments.FindByIntentID(ctx, in.IntentID)
	if err != nil {
		// só o miss real é engolível; falha de storage propaga para o
		// provedor reentregar
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("find appointment for intent %s: %w", in.IntentID, err)
		}

		// pagamento sem reserva é alerta operacional, não derruba o webhook
		log.Printf("payment succeeded: ORPHAN intent %s, no matching appointment", in.IntentID)
		uc.audit.Dispatch(audit.Event{
			Action:   "orphan_payment_event",
			Entity:   "payment_intent",
			Metadata: map[string]string{"intent_id": in.IntentID},
		})
		return nil
	}

	// --------------------------------------------------
	// 2️⃣ Rateio plataforma / barbeiro
	// --------------------------------------------------
	split := domain.SplitAmount(in.AmountCents, uc.feePercent)

	// --------------------------------------------------
	// 3️⃣ Criação idempotente no ledger
	// --------------------------------------------------
	p := &models.Payment{
		AppointmentID: ap.ID,
		BarberID:      ap.BarberID,

		CustomerName:  ap.CustomerName,
		CustomerEmail: firstNonEmpty(in.ReceiptEmail, ap.CustomerEmail),

		TotalAmount:  split.TotalAmount,
		PlatformFee:  split.PlatformFee,
		BarberAmount: split.BarberAmount,
		Currency:     firstNonEmpty(in.Currency, "brl"),

		PaymentIntentID: in.IntentID,
		PaymentMethod:   in.PaymentMethod,

		Status:         string(domain.StatusSucceeded),
		TransferStatus: string(domain.TransferPending),
	}

	created, err := uc.repo.CreatePayment(ctx, p)
	if err != nil {
		return fmt.Errorf("create payment for intent %s: %w", in.IntentID, err)
	}

	if !created {
		// entrega duplicada: o índice único venceu, seguimos com o existente
		log.Printf("payment succeeded: intent %s already recorded, skipping creation", in.IntentID)
		existing, err := uc.repo.FindPaymentByIntentID(ctx, in.IntentID)
		if err != nil {
			return err
		}
		p = existing
	} else {
		uc.audit.Dispatch(audit.Event{
			BranchID: ap.BranchID,
			Action:   "payment_recorded",
			Entity:   "payment",
			EntityID: &p.ID,
			Metadata: map[string]any{
				"intent_id":     in.IntentID,
				"total_amount":  split.TotalAmount,
				"platform_fee":  split.PlatformFee,
				"barber_amount": split.BarberAmount,
			},
		})
	}

	// --------------------------------------------------
	// 4️⃣ Projeção no agendamento (não rebaixa confirmado)
	// --------------------------------------------------
	if domain.Confirm(ap) {
		if err := uc.appointments.Update(ctx, ap); err != nil {
			return fmt.Errorf("confirm appointment %d: %w", ap.ID, err)
		}

		uc.notify.Dispatch(notify.Notification{
			To:      ap.CustomerEmail,
			Subject: "Pagamento confirmado",
			Body: fmt.Sprintf(
				"Olá %s, recebemos seu pagamento de R$ %.2f. Seu horário está confirmado.",
				ap.CustomerName, split.TotalAmount,
			),
		})
	}

	// --------------------------------------------------
	// 5️⃣ Transferência (se o barbeiro já fez onboarding)
	// --------------------------------------------------
	barber, err := uc.barbers.FindByID(ctx, ap.BarberID)
	if err != nil {
		return fmt.Errorf("load barber %d: %w", ap.BarberID, err)
	}

	if !barber.HasConnectedAccount() {
		log.Printf("payment succeeded: barber %d not onboarded yet, transfer stays pending", barber.ID)
		return nil
	}

	p.Appointment = *ap
	return uc.transfer.Execute(ctx, p, barber)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
