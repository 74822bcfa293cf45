package payment

import (
	"context"
	"errors"
	"log"

	"github.com/BruksfildServices01/barber-payments/internal/audit"
	domain "github.com/BruksfildServices01/barber-payments/internal/domain/payment"
	"github.com/BruksfildServices01/barber-payments/internal/models"
	"github.com/BruksfildServices01/barber-payments/internal/provider"
)

// ======================================================
// TRANSFER ENGINE
// ======================================================

// TransferFunds move a parte do barbeiro do saldo da plataforma para a conta
// conectada dele e registra o desfecho. Nunca propaga erro do provedor para o
// chamador: o resultado fica no próprio Payment (transfer_status +
// error_message) e os caminhos de retry reentram por aqui.
type TransferFunds struct {
	repo    domain.Repository
	gateway provider.Gateway
	audit   *audit.Dispatcher
}

func NewTransferFunds(
	repo domain.Repository,
	gateway provider.Gateway,
	audit *audit.Dispatcher,
) *TransferFunds {
	return &TransferFunds{
		repo:    repo,
		gateway: gateway,
		audit:   audit,
	}
}

func (uc *TransferFunds) Execute(
	ctx context.Context,
	p *models.Payment,
	barber *models.Barber,
) error {

	// --------------------------------------------------
	// 1️⃣ Barbeiro sem conta conectada → fica pendente
	// --------------------------------------------------
	if !barber.HasConnectedAccount() {
		log.Printf("transfer: barber %d has no connected account, payment %d stays pending", barber.ID, p.ID)
		return nil
	}

	// --------------------------------------------------
	// 2️⃣ Token de exclusão (pending/failed → processing)
	// --------------------------------------------------
	claimed, err := uc.repo.ClaimTransfer(ctx, p.ID)
	if err != nil {
		return err
	}
	if !claimed {
		// outra tentativa detém o token (ou já está completed)
		log.Printf("transfer: payment %d already claimed, skipping", p.ID)
		return nil
	}
	p.TransferStatus = string(domain.TransferProcessing)

	// --------------------------------------------------
	// 3️⃣ Prontidão da conta, consultada ao vivo
	// --------------------------------------------------
	acct, err := uc.gateway.RetrieveAccount(ctx, barber.ConnectedAccountID)
	if err != nil {
		return uc.release(ctx, p, domain.TransferFailed, "", err.Error())
	}

	if !acct.Ready() {
		// estado esperado e retentável, não é falha
		log.Printf("transfer: account %s not ready (charges=%v payouts=%v), payment %d stays pending",
			acct.ID, acct.ChargesEnabled, acct.PayoutsEnabled, p.ID)
		return uc.release(ctx, p, domain.TransferPending, "", "")
	}

	// --------------------------------------------------
	// 4️⃣ Transferência no provedor
	// --------------------------------------------------
	tr, err := uc.gateway.CreateTransfer(ctx, provider.TransferInput{
		AmountCents:          domain.TransferCents(p),
		Currency:             p.Currency,
		DestinationAccountID: barber.ConnectedAccountID,
		IdempotencyKey:       domain.IdempotencyKey(p),
		Metadata: map[string]string{
			"payment_id":     itoa(p.ID),
			"appointment_id": itoa(p.AppointmentID),
			"barber_id":      itoa(p.BarberID),
		},
	})
	if err != nil {
		if errors.Is(err, provider.ErrOutcomeUnknown) {
			// o dinheiro pode ter saído: reconciliação manual obrigatória
			log.Printf("transfer: AMBIGUOUS OUTCOME for payment %d: %v", p.ID, err)
		}
		uc.audit.Dispatch(audit.Event{
			BranchID: p.Appointment.BranchID,
			Action:   "transfer_failed",
			Entity:   "payment",
			EntityID: &p.ID,
			Metadata: map[string]string{"error": err.Error()},
		})
		return uc.release(ctx, p, domain.TransferFailed, "", err.Error())
	}

	// --------------------------------------------------
	// 5️⃣ Sucesso → registra transfer id e conclui
	// --------------------------------------------------
	p.Status = string(domain.StatusTransferred)
	uc.audit.Dispatch(audit.Event{
		BranchID: p.Appointment.BranchID,
		Action:   "transfer_completed",
		Entity:   "payment",
		EntityID: &p.ID,
		Metadata: map[string]string{"transfer_id": tr.ID},
	})
	log.Printf("transfer: payment %d transferred to %s (%s)", p.ID, barber.ConnectedAccountID, tr.ID)

	return uc.release(ctx, p, domain.TransferCompleted, tr.ID, "")
}

// release devolve o token de exclusão persistindo o desfecho da tentativa.
func (uc *TransferFunds) release(
	ctx context.Context,
	p *models.Payment,
	status domain.TransferStatus,
	transferID string,
	errMsg string,
) error {

	p.TransferStatus = string(status)
	if transferID != "" {
		p.TransferID = transferID
	}
	if errMsg != "" {
		p.ErrorMessage = errMsg
	}

	return uc.repo.UpdatePayment(ctx, p)
}
