package payment

import (
	"math"
	"strconv"

	"github.com/BruksfildServices01/barber-payments/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Split é o rateio de um pagamento entre plataforma e barbeiro.
type Split struct {
	TotalAmount  float64
	PlatformFee  float64
	BarberAmount float64
}

// SplitAmount aplica o percentual da plataforma ao valor do intent. O rateio é
// feito em centavos inteiros, então fee + barber == total sem resto de ponto
// flutuante, qualquer que seja o percentual.
func SplitAmount(amountCents int64, feePercent float64) Split {
	feeCents := int64(math.Round(float64(amountCents) * feePercent / 100))

	return Split{
		TotalAmount:  float64(amountCents) / 100,
		PlatformFee:  float64(feeCents) / 100,
		BarberAmount: float64(amountCents-feeCents) / 100,
	}
}

// TransferCents é o valor a transferir para a conta do barbeiro, em centavos.
func TransferCents(p *models.Payment) int64 {
	return int64(math.Round(p.BarberAmount * 100))
}

// IdempotencyKey é a chave estável usada na criação da transferência no
// provedor: uma retentativa depois de falha ambígua de rede reaproveita a
// mesma chave e não pode pagar o barbeiro duas vezes.
func IdempotencyKey(p *models.Payment) string {
	return "transfer-" + strconv.FormatUint(uint64(p.ID), 10)
}

// Confirm projeta um evento de pagamento aprovado sobre o agendamento.
// Não rebaixa um agendamento já confirmado.
func Confirm(ap *models.Appointment) bool {
	if ap.Status == string(AppointmentConfirmed) {
		return false
	}
	ap.Status = string(AppointmentConfirmed)
	ap.PaymentStatus = string(PaymentStatusPaid)
	return true
}

// Reject projeta um evento de pagamento recusado sobre o agendamento.
func Reject(ap *models.Appointment) {
	ap.Status = string(AppointmentRejected)
	ap.PaymentStatus = string(PaymentStatusFailed)
}
