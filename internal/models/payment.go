package models

import "time"

// Payment é o ledger: registro durável de dinheiro recebido e devido por
// agendamento. Nunca é apagado (trilha de auditoria financeira).
type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint        `json:"appointment_id"`
	Appointment   Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"appointment"`

	BarberID uint   `json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	CustomerName  string `gorm:"size:100" json:"customer_name"`
	CustomerEmail string `gorm:"size:100" json:"customer_email"`

	// barber_amount = total_amount - platform_fee, sempre
	TotalAmount  float64 `json:"total_amount"`
	PlatformFee  float64 `json:"platform_fee"`
	BarberAmount float64 `json:"barber_amount"`
	Currency     string  `gorm:"size:10;default:'brl'" json:"currency"`

	// Um Payment por payment intent do provedor. O índice único é o que
	// garante idempotência sob entrega duplicada de webhook.
	PaymentIntentID string `gorm:"size:100;uniqueIndex;not null" json:"payment_intent_id"`
	TransferID      string `gorm:"size:100;index" json:"transfer_id"`

	Status         string `gorm:"size:20;default:'pending'" json:"status"`
	TransferStatus string `gorm:"size:20;default:'pending'" json:"transfer_status"`

	PaymentMethod string `gorm:"size:30" json:"payment_method"`
	ErrorMessage  string `gorm:"size:500" json:"error_message"`

	RefundID       string   `gorm:"size:100" json:"refund_id"`
	RefundedAmount *float64 `json:"refunded_amount"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
