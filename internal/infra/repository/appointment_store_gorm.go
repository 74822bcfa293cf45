package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-payments/internal/models"
)

// AppointmentStoreGorm é o colaborador de agendamentos visto pelo pipeline de
// pagamento: lookup por intent e atualização de status.
type AppointmentStoreGorm struct {
	db *gorm.DB
}

func NewAppointmentStoreGorm(db *gorm.DB) *AppointmentStoreGorm {
	return &AppointmentStoreGorm{db: db}
}

func (s *AppointmentStoreGorm) FindByIntentID(
	ctx context.Context,
	intentID string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := s.db.WithContext(ctx).
		Where("payment_intent_id = ?", intentID).
		First(&ap).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &ap, nil
}

func (s *AppointmentStoreGorm) FindByID(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := s.db.WithContext(ctx).
		Preload("Services").
		First(&ap, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &ap, nil
}

func (s *AppointmentStoreGorm) Update(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return s.db.WithContext(ctx).
		Omit("Services", "Branch", "Barber").
		Save(ap).Error
}
