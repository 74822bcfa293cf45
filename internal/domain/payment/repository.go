package payment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/barber-payments/internal/models"
)

// ErrNotFound é o único erro de leitura que o pipeline pode tratar como
// "registro não existe". Qualquer outro erro de storage precisa propagar, para
// o webhook responder 500 e o provedor reentregar o evento.
var ErrNotFound = errors.New("record not found")

// Repository é o contrato de persistência do ledger. A implementação precisa
// garantir no storage (não só na aplicação):
//   - unicidade de payment_intent_id na criação (CreatePayment reporta
//     created=false quando o registro já existe, entrega duplicada);
//   - atomicidade do claim de transferência (um único vencedor).
type Repository interface {
	// -------- Payment (ledger) --------
	CreatePayment(
		ctx context.Context,
		p *models.Payment,
	) (created bool, err error)

	FindPaymentByID(
		ctx context.Context,
		id uint,
	) (*models.Payment, error)

	FindPaymentByIntentID(
		ctx context.Context,
		intentID string,
	) (*models.Payment, error)

	FindPaymentByTransferID(
		ctx context.Context,
		transferID string,
	) (*models.Payment, error)

	UpdatePayment(
		ctx context.Context,
		p *models.Payment,
	) error

	// ClaimTransfer move transfer_status para processing, condicionado ao
	// estado atual estar em {pending, failed}. Retorna false se outra
	// tentativa já detém o token.
	ClaimTransfer(
		ctx context.Context,
		paymentID uint,
	) (bool, error)

	// ListAwaitingTransfer lista pagamentos aprovados de um barbeiro cuja
	// transferência ainda está pendente ou falhou (varredura de retry).
	ListAwaitingTransfer(
		ctx context.Context,
		barberID uint,
	) ([]models.Payment, error)
}

// AppointmentStore é o colaborador dono dos agendamentos. O pipeline só
// escreve status e payment_status.
type AppointmentStore interface {
	FindByIntentID(
		ctx context.Context,
		intentID string,
	) (*models.Appointment, error)

	FindByID(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	Update(
		ctx context.Context,
		ap *models.Appointment,
	) error
}

// BarberStore é o colaborador dono dos barbeiros.
type BarberStore interface {
	FindByID(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	FindByConnectedAccountID(
		ctx context.Context,
		accountID string,
	) (*models.Barber, error)
}
