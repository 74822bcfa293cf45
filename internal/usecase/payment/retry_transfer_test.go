package payment

import (
	"context"
	"errors"
	"testing"

	domain "github.com/BruksfildServices01/barber-payments/internal/domain/payment"
	"github.com/BruksfildServices01/barber-payments/internal/httperr"
	"github.com/BruksfildServices01/barber-payments/internal/models"
)

func newRetry(t *testing.T, repo *fakeRepo, barbers *fakeBarbers, gw *fakeGateway) *RetryTransfer {
	t.Helper()
	auditD := newTestAudit(t)
	return NewRetryTransfer(repo, barbers, NewTransferFunds(repo, gw, auditD), auditD)
}

func TestRetryTransfer_NotFound(t *testing.T) {
	uc := newRetry(t, newFakeRepo(), newFakeBarbers(), newFakeGateway())

	_, err := uc.Execute(context.Background(), 999, 1)
	if !httperr.IsBusiness(err, "payment_not_found") {
		t.Fatalf("err = %v, want payment_not_found", err)
	}
}

func TestRetryTransfer_StorageErrorIsNotNotFound(t *testing.T) {
	repo := newFakeRepo()
	repo.findErr = errors.New("db down")

	uc := newRetry(t, repo, newFakeBarbers(), newFakeGateway())

	_, err := uc.Execute(context.Background(), 1, 1)
	if err == nil {
		t.Fatal("storage error must propagate")
	}
	if httperr.IsBusiness(err, "payment_not_found") {
		t.Fatal("storage error must not be reported as payment_not_found")
	}
}

func TestRetryTransfer_AlreadyTransferred(t *testing.T) {
	repo := newFakeRepo()
	p := seedPayment(repo, "pi_1", 7, 10)
	p.TransferStatus = string(domain.TransferCompleted)

	uc := newRetry(t, repo, newFakeBarbers(), newFakeGateway())

	_, err := uc.Execute(context.Background(), p.ID, 1)
	if !httperr.IsBusiness(err, "already_transferred") {
		t.Fatalf("err = %v, want already_transferred", err)
	}
}

func TestRetryTransfer_NoConnectedAccount(t *testing.T) {
	repo := newFakeRepo()
	p := seedPayment(repo, "pi_2", 7, 10)
	p.TransferStatus = string(domain.TransferFailed)

	barber := &models.Barber{ID: 7}
	uc := newRetry(t, repo, newFakeBarbers(barber), newFakeGateway())

	_, err := uc.Execute(context.Background(), p.ID, 1)
	if !httperr.IsBusiness(err, "no_connected_account") {
		t.Fatalf("err = %v, want no_connected_account", err)
	}
}

func TestRetryTransfer_RetriesFailedTransfer(t *testing.T) {
	repo := newFakeRepo()
	gw := newFakeGateway()

	p := seedPayment(repo, "pi_3", 7, 22.50)
	p.TransferStatus = string(domain.TransferFailed)
	p.ErrorMessage = "first attempt failed"

	barber := &models.Barber{ID: 7, ConnectedAccountID: "acct_7"}
	uc := newRetry(t, repo, newFakeBarbers(barber), gw)

	out, err := uc.Execute(context.Background(), p.ID, 1)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if out.TransferStatus != string(domain.TransferCompleted) {
		t.Fatalf("transfer status = %q, want completed", out.TransferStatus)
	}
	if gw.transferCalls != 1 {
		t.Fatalf("transfer calls = %d, want 1", gw.transferCalls)
	}
}
