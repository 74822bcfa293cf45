package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-payments/internal/models"
)

type BarberStoreGorm struct {
	db *gorm.DB
}

func NewBarberStoreGorm(db *gorm.DB) *BarberStoreGorm {
	return &BarberStoreGorm{db: db}
}

func (s *BarberStoreGorm) FindByID(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var b models.Barber
	if err := s.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &b, nil
}

func (s *BarberStoreGorm) FindByConnectedAccountID(
	ctx context.Context,
	accountID string,
) (*models.Barber, error) {

	var b models.Barber
	if err := s.db.WithContext(ctx).
		Where("connected_account_id = ?", accountID).
		First(&b).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &b, nil
}
