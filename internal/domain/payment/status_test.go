package payment

import (
	"testing"

	"github.com/BruksfildServices01/barber-payments/internal/httperr"
)

func TestCanRetryTransfer(t *testing.T) {
	if err := CanRetryTransfer(TransferPending); err != nil {
		t.Fatalf("pending: %v", err)
	}
	if err := CanRetryTransfer(TransferFailed); err != nil {
		t.Fatalf("failed: %v", err)
	}

	if err := CanRetryTransfer(TransferCompleted); !httperr.IsBusiness(err, "already_transferred") {
		t.Fatalf("completed: err = %v, want already_transferred", err)
	}
	if err := CanRetryTransfer(TransferProcessing); !httperr.IsBusiness(err, "transfer_in_progress") {
		t.Fatalf("processing: err = %v, want transfer_in_progress", err)
	}
}

func TestCanClaimTransfer(t *testing.T) {
	claimable := map[TransferStatus]bool{
		TransferPending:    true,
		TransferFailed:     true,
		TransferProcessing: false,
		TransferCompleted:  false,
	}

	for status, want := range claimable {
		if got := CanClaimTransfer(status); got != want {
			t.Fatalf("CanClaimTransfer(%s) = %v, want %v", status, got, want)
		}
	}
}

func TestMapProviderTransferStatus(t *testing.T) {
	cases := []struct {
		provider string
		mapped   TransferStatus
		applied  bool
	}{
		{"paid", TransferCompleted, true},
		{"in_transit", TransferCompleted, true},
		{"failed", TransferFailed, true},
		{"canceled", TransferFailed, true},
		{"pending", "", false},
		{"", "", false},
		{"something_new", "", false},
	}

	for _, tc := range cases {
		mapped, ok := MapProviderTransferStatus(tc.provider)
		if ok != tc.applied {
			t.Fatalf("%q: applied = %v, want %v", tc.provider, ok, tc.applied)
		}
		if mapped != tc.mapped {
			t.Fatalf("%q: mapped = %q, want %q", tc.provider, mapped, tc.mapped)
		}
	}
}
