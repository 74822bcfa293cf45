package provider

import (
	"context"
	"errors"
)

// ErrOutcomeUnknown marca chamadas que estouraram o timeout: o provedor pode
// ter executado a operação mesmo sem respondermos a tempo. Quem captura esse
// erro deve logar em severidade alta, nunca retentar em silêncio.
var ErrOutcomeUnknown = errors.New("provider call timed out, outcome unknown")

// Account é o estado da conta conectada reportado pelo provedor.
// Consultado ao vivo, nunca cacheado como fonte de verdade.
type Account struct {
	ID               string
	ChargesEnabled   bool
	PayoutsEnabled   bool
	DetailsSubmitted bool
}

// Ready indica que a conta pode receber transferências.
func (a *Account) Ready() bool {
	return a.ChargesEnabled && a.PayoutsEnabled && a.DetailsSubmitted
}

type PaymentIntent struct {
	ID            string
	ClientSecret  string
	AmountCents   int64
	Currency      string
	ReceiptEmail  string
	PaymentMethod string
}

type Transfer struct {
	ID string
}

type IntentInput struct {
	AmountCents  int64
	Currency     string
	ReceiptEmail string
	Description  string
	Metadata     map[string]string
}

type TransferInput struct {
	AmountCents          int64
	Currency             string
	DestinationAccountID string

	// Chave estável por Payment: retentativas não podem pagar duas vezes.
	IdempotencyKey string

	Metadata map[string]string
}

// Gateway abstrai o provedor de pagamento. Construído uma vez a partir da
// configuração e injetado; nil significa "não configurado" e os handlers
// respondem com indisponibilidade em vez de derrubar o processo.
type Gateway interface {
	RetrieveAccount(ctx context.Context, accountID string) (*Account, error)
	CreateAccount(ctx context.Context, email string) (*Account, error)
	CreateOnboardingLink(ctx context.Context, accountID, refreshURL, returnURL string) (string, error)

	CreatePaymentIntent(ctx context.Context, in IntentInput) (*PaymentIntent, error)
	RetrievePaymentIntent(ctx context.Context, intentID string) (*PaymentIntent, error)

	CreateTransfer(ctx context.Context, in TransferInput) (*Transfer, error)
}
