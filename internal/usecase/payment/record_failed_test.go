package payment

import (
	"context"
	"errors"
	"testing"

	domain "github.com/BruksfildServices01/barber-payments/internal/domain/payment"
	"github.com/BruksfildServices01/barber-payments/internal/models"
)

func newRecordFailed(t *testing.T, repo *fakeRepo, aps *fakeAppointments) *RecordPaymentFailed {
	t.Helper()
	return NewRecordPaymentFailed(repo, aps, newTestAudit(t), newTestNotify())
}

func TestRecordPaymentFailed_RejectsAppointment(t *testing.T) {
	ap := &models.Appointment{
		ID:              1,
		CustomerName:    "João",
		CustomerEmail:   "joao@example.com",
		Status:          string(domain.AppointmentPending),
		PaymentStatus:   string(domain.PaymentStatusPending),
		PaymentIntentID: strPtr("pi_bad"),
	}

	repo := newFakeRepo()
	aps := newFakeAppointments(ap)
	uc := newRecordFailed(t, repo, aps)

	if err := uc.Execute(context.Background(), "pi_bad", "card declined"); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if ap.Status != string(domain.AppointmentRejected) {
		t.Fatalf("status = %q, want rejected", ap.Status)
	}
	if ap.PaymentStatus != string(domain.PaymentStatusFailed) {
		t.Fatalf("payment status = %q, want failed", ap.PaymentStatus)
	}
}

func TestRecordPaymentFailed_MarksExistingLedgerEntry(t *testing.T) {
	ap := &models.Appointment{
		ID:              1,
		PaymentIntentID: strPtr("pi_flip"),
	}

	repo := newFakeRepo()
	p := seedPayment(repo, "pi_flip", 7, 10)

	uc := newRecordFailed(t, repo, newFakeAppointments(ap))
	if err := uc.Execute(context.Background(), "pi_flip", "card declined"); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if p.Status != string(domain.StatusFailed) {
		t.Fatalf("payment status = %q, want failed", p.Status)
	}
	if p.ErrorMessage != "card declined" {
		t.Fatalf("error message = %q", p.ErrorMessage)
	}
}

func TestRecordPaymentFailed_UnknownIntentIgnored(t *testing.T) {
	repo := newFakeRepo()
	aps := newFakeAppointments()

	uc := newRecordFailed(t, repo, aps)
	if err := uc.Execute(context.Background(), "pi_ghost", "card declined"); err != nil {
		t.Fatalf("unknown intent must not fail the webhook: %v", err)
	}
	if aps.updates != 0 {
		t.Fatalf("appointment updates = %d, want 0", aps.updates)
	}
}

func TestRecordPaymentFailed_AppointmentLookupErrorPropagates(t *testing.T) {
	repo := newFakeRepo()
	aps := newFakeAppointments()
	aps.findErr = errors.New("db down")

	uc := newRecordFailed(t, repo, aps)
	if err := uc.Execute(context.Background(), "pi_flaky", "card declined"); err == nil {
		t.Fatal("storage error must propagate so the provider redelivers")
	}
}

func TestRecordPaymentFailed_LedgerLookupErrorPropagates(t *testing.T) {
	ap := &models.Appointment{
		ID:              1,
		PaymentIntentID: strPtr("pi_flaky"),
	}

	repo := newFakeRepo()
	repo.findErr = errors.New("db down")

	uc := newRecordFailed(t, repo, newFakeAppointments(ap))
	if err := uc.Execute(context.Background(), "pi_flaky", "card declined"); err == nil {
		t.Fatal("ledger lookup error must propagate, not skip the update")
	}
}
