package repository

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-payments/internal/domain/payment"
	"github.com/BruksfildServices01/barber-payments/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Branch{},
		&models.Barber{},
		&models.Appointment{},
		&models.Payment{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newPayment(intentID string, barberID uint) *models.Payment {
	return &models.Payment{
		BarberID:        barberID,
		TotalAmount:     25.00,
		PlatformFee:     2.50,
		BarberAmount:    22.50,
		Currency:        "brl",
		PaymentIntentID: intentID,
		Status:          string(domain.StatusSucceeded),
		TransferStatus:  string(domain.TransferPending),
	}
}

func TestCreatePayment_DuplicateIntentInsertsOnce(t *testing.T) {
	db := newTestDB(t)
	repo := NewPaymentGormRepository(db)
	ctx := context.Background()

	created, err := repo.CreatePayment(ctx, newPayment("pi_1", 7))
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if !created {
		t.Fatal("first create must win")
	}

	created, err = repo.CreatePayment(ctx, newPayment("pi_1", 7))
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if created {
		t.Fatal("duplicate intent must not create a second row")
	}

	var count int64
	if err := db.Model(&models.Payment{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("payments = %d, want exactly 1", count)
	}
}

func TestClaimTransfer_OnlyOneWinner(t *testing.T) {
	db := newTestDB(t)
	repo := NewPaymentGormRepository(db)
	ctx := context.Background()

	p := newPayment("pi_1", 7)
	if _, err := repo.CreatePayment(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}

	won, err := repo.ClaimTransfer(ctx, p.ID)
	if err != nil {
		t.Fatalf("first claim: %v", err)
	}
	if !won {
		t.Fatal("first claim must win")
	}

	won, err = repo.ClaimTransfer(ctx, p.ID)
	if err != nil {
		t.Fatalf("second claim: %v", err)
	}
	if won {
		t.Fatal("second claim must lose while processing")
	}

	got, err := repo.FindPaymentByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.TransferStatus != string(domain.TransferProcessing) {
		t.Fatalf("transfer status = %q, want processing", got.TransferStatus)
	}
}

func TestClaimTransfer_FailedIsClaimableAgain(t *testing.T) {
	db := newTestDB(t)
	repo := NewPaymentGormRepository(db)
	ctx := context.Background()

	p := newPayment("pi_1", 7)
	p.TransferStatus = string(domain.TransferFailed)
	if _, err := repo.CreatePayment(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}

	won, err := repo.ClaimTransfer(ctx, p.ID)
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if !won {
		t.Fatal("failed transfer must be claimable for retry")
	}
}

func TestClaimTransfer_CompletedIsTerminal(t *testing.T) {
	db := newTestDB(t)
	repo := NewPaymentGormRepository(db)
	ctx := context.Background()

	p := newPayment("pi_1", 7)
	if _, err := repo.CreatePayment(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}
	p.TransferStatus = string(domain.TransferCompleted)
	if err := repo.UpdatePayment(ctx, p); err != nil {
		t.Fatalf("update: %v", err)
	}

	won, err := repo.ClaimTransfer(ctx, p.ID)
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if won {
		t.Fatal("completed transfer must never be claimed again")
	}
}

func TestListAwaitingTransfer(t *testing.T) {
	db := newTestDB(t)
	repo := NewPaymentGormRepository(db)
	ctx := context.Background()

	pending := newPayment("pi_pending", 7)
	failed := newPayment("pi_failed", 7)
	failed.TransferStatus = string(domain.TransferFailed)
	done := newPayment("pi_done", 7)
	done.TransferStatus = string(domain.TransferCompleted)
	notPaid := newPayment("pi_unpaid", 7)
	notPaid.Status = string(domain.StatusPending)
	otherBarber := newPayment("pi_other", 8)

	for _, p := range []*models.Payment{pending, failed, done, notPaid, otherBarber} {
		if _, err := repo.CreatePayment(ctx, p); err != nil {
			t.Fatalf("create %s: %v", p.PaymentIntentID, err)
		}
	}

	got, err := repo.ListAwaitingTransfer(ctx, 7)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("awaiting = %d, want 2", len(got))
	}
	if got[0].PaymentIntentID != "pi_pending" || got[1].PaymentIntentID != "pi_failed" {
		t.Fatalf("order = [%s %s], want [pi_pending pi_failed]",
			got[0].PaymentIntentID,
			got[1].PaymentIntentID,
		)
	}
}

func TestFindPaymentByTransferID(t *testing.T) {
	db := newTestDB(t)
	repo := NewPaymentGormRepository(db)
	ctx := context.Background()

	p := newPayment("pi_1", 7)
	p.TransferID = "tr_1"
	if _, err := repo.CreatePayment(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.FindPaymentByTransferID(ctx, "tr_1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.ID != p.ID {
		t.Fatalf("id = %d, want %d", got.ID, p.ID)
	}

	if _, err := repo.FindPaymentByTransferID(ctx, "tr_ghost"); err == nil {
		t.Fatal("unknown transfer id must return an error")
	}
}
