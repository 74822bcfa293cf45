package payment

import "github.com/BruksfildServices01/barber-payments/internal/httperr"

// ===============================
// Payment Status
// ===============================

type Status string

const (
	StatusPending     Status = "pending"
	StatusSucceeded   Status = "succeeded"
	StatusFailed      Status = "failed"
	StatusRefunded    Status = "refunded"
	StatusTransferred Status = "transferred"
)

// ===============================
// Transfer Status
// ===============================

// pending → processing → completed (terminal)
//                      ↘ failed → (retry) processing → ...
// Nunca sai de completed.

type TransferStatus string

const (
	TransferPending    TransferStatus = "pending"
	TransferProcessing TransferStatus = "processing"
	TransferCompleted  TransferStatus = "completed"
	TransferFailed     TransferStatus = "failed"
)

// ===============================
// Appointment (projeção)
// ===============================

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentRejected  AppointmentStatus = "rejected"
	AppointmentCompleted AppointmentStatus = "completed"
)

type AppointmentPaymentStatus string

const (
	PaymentStatusPending  AppointmentPaymentStatus = "pending"
	PaymentStatusPaid     AppointmentPaymentStatus = "paid"
	PaymentStatusFailed   AppointmentPaymentStatus = "failed"
	PaymentStatusRefunded AppointmentPaymentStatus = "refunded"
)

// ===============================
// Validations
// ===============================

// CanRetryTransfer define se uma transferência pode ser retentada manualmente
func CanRetryTransfer(current TransferStatus) error {
	if current == TransferCompleted {
		return httperr.ErrBusiness("already_transferred")
	}
	if current == TransferProcessing {
		return httperr.ErrBusiness("transfer_in_progress")
	}
	return nil
}

// CanClaimTransfer define os estados a partir dos quais uma tentativa de
// transferência pode tomar o token de exclusão (processing)
func CanClaimTransfer(current TransferStatus) bool {
	return current == TransferPending || current == TransferFailed
}

// MapProviderTransferStatus traduz o status de transferência reportado pelo
// provedor para o nosso estado. O segundo retorno indica se o evento deve ser
// aplicado; status desconhecidos são ignorados.
func MapProviderTransferStatus(providerStatus string) (TransferStatus, bool) {
	switch providerStatus {
	case "paid", "in_transit":
		return TransferCompleted, true
	case "failed", "canceled":
		return TransferFailed, true
	default:
		return "", false
	}
}
