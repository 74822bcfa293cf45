package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingCode string `gorm:"size:36;uniqueIndex" json:"booking_code"`

	BranchID uint   `json:"branch_id"`
	Branch   Branch `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"branch"`

	BarberID uint   `json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	// Snapshot do cliente no momento da reserva
	CustomerName  string `gorm:"size:100;not null" json:"customer_name"`
	CustomerPhone string `gorm:"size:20" json:"customer_phone"`
	CustomerEmail string `gorm:"size:100" json:"customer_email"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	// Serviços contratados (snapshot de nome/preço/duração)
	Services []AppointmentService `gorm:"constraint:OnDelete:CASCADE;" json:"services"`

	// Valor total em unidade monetária + espelho em centavos
	TotalPrice       float64 `json:"total_price"`
	TotalAmountCents int64   `json:"total_amount_cents"`

	Status        string `gorm:"size:20;default:'pending'" json:"status"`
	PaymentStatus string `gorm:"size:20;default:'pending'" json:"payment_status"`

	// Preenchido se e somente se pay_online=true e a cobrança foi iniciada
	// no provedor. No máximo um agendamento por intent ativa.
	PayOnline       bool    `json:"pay_online"`
	PaymentIntentID *string `gorm:"size:100;uniqueIndex" json:"payment_intent_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppointmentService congela nome, preço e duração do serviço no momento da
// reserva. Mudanças posteriores no catálogo não afetam reservas existentes.
type AppointmentService struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	AppointmentID uint `gorm:"index" json:"appointment_id"`
	ServiceID     uint `json:"service_id"`

	Position    int     `json:"position"`
	Name        string  `gorm:"size:100;not null" json:"name"`
	Price       float64 `json:"price"`
	DurationMin int     `json:"duration_min"`
}
