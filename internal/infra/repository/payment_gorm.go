package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-payments/internal/domain/payment"
	"github.com/BruksfildServices01/barber-payments/internal/models"
)

// notFoundOr traduz o miss do gorm para o sentinel do domínio; outros erros de
// storage passam intactos.
func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// PaymentGormRepository implementa domain.Repository sobre gorm. Idempotência
// e exclusão mútua são resolvidas aqui, no storage, não na aplicação.
type PaymentGormRepository struct {
	db *gorm.DB
}

func NewPaymentGormRepository(db *gorm.DB) *PaymentGormRepository {
	return &PaymentGormRepository{db: db}
}

// CreatePayment insere com ON CONFLICT DO NOTHING no índice único de
// payment_intent_id: sob entrega duplicada concorrente exatamente um insert
// vence e o perdedor recebe created=false.
func (r *PaymentGormRepository) CreatePayment(
	ctx context.Context,
	p *models.Payment,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Omit("Appointment", "Barber").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "payment_intent_id"}},
			DoNothing: true,
		}).
		Create(p)

	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected > 0, nil
}

func (r *PaymentGormRepository) FindPaymentByID(
	ctx context.Context,
	id uint,
) (*models.Payment, error) {

	var p models.Payment
	if err := r.db.WithContext(ctx).
		Preload("Appointment").
		First(&p, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &p, nil
}

func (r *PaymentGormRepository) FindPaymentByIntentID(
	ctx context.Context,
	intentID string,
) (*models.Payment, error) {

	var p models.Payment
	if err := r.db.WithContext(ctx).
		Where("payment_intent_id = ?", intentID).
		First(&p).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &p, nil
}

func (r *PaymentGormRepository) FindPaymentByTransferID(
	ctx context.Context,
	transferID string,
) (*models.Payment, error) {

	var p models.Payment
	if err := r.db.WithContext(ctx).
		Where("transfer_id = ?", transferID).
		First(&p).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &p, nil
}

func (r *PaymentGormRepository) UpdatePayment(
	ctx context.Context,
	p *models.Payment,
) error {
	return r.db.WithContext(ctx).Omit("Appointment", "Barber").Save(p).Error
}

// ClaimTransfer é o token de exclusão por Payment: UPDATE condicional que só
// um chamador concorrente vence (RowsAffected = 1).
func (r *PaymentGormRepository) ClaimTransfer(
	ctx context.Context,
	paymentID uint,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where(
			"id = ? AND transfer_status IN ?",
			paymentID,
			[]string{string(domain.TransferPending), string(domain.TransferFailed)},
		).
		Update("transfer_status", string(domain.TransferProcessing))

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *PaymentGormRepository) ListAwaitingTransfer(
	ctx context.Context,
	barberID uint,
) ([]models.Payment, error) {

	var payments []models.Payment
	if err := r.db.WithContext(ctx).
		Preload("Appointment").
		Where(
			"barber_id = ? AND status = ? AND transfer_status IN ?",
			barberID,
			string(domain.StatusSucceeded),
			[]string{string(domain.TransferPending), string(domain.TransferFailed)},
		).
		Order("id ASC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}
