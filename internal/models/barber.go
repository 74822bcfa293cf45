package models

import "time"

type Barber struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	BranchID uint   `json:"branch_id"`
	Branch   Branch `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"branch"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	Role         string `gorm:"size:20;default:'owner'" json:"role"`

	// Conta conectada no provedor (vazio até o onboarding terminar).
	// Os flags de prontidão (charges/payouts/details) são sempre consultados
	// ao vivo no provedor, nunca cacheados aqui.
	ConnectedAccountID string `gorm:"size:100;index" json:"connected_account_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Barber) HasConnectedAccount() bool {
	return b.ConnectedAccountID != ""
}
