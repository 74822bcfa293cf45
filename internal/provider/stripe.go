package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	stripe "github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
)

// Timeout de toda chamada ao provedor. Quem estoura vira ErrOutcomeUnknown,
// nunca espera indefinida.
const callTimeout = 15 * time.Second

type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(secretKey string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{api: api}
}

// --------------------------------------------------
// Connected accounts
// --------------------------------------------------

func (g *StripeGateway) RetrieveAccount(
	ctx context.Context,
	accountID string,
) (*Account, error) {

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	params := &stripe.AccountParams{}
	params.Context = ctx

	acct, err := g.api.Accounts.GetByID(accountID, params)
	if err != nil {
		return nil, wrapErr("retrieve account", ctx, err)
	}

	return &Account{
		ID:               acct.ID,
		ChargesEnabled:   acct.ChargesEnabled,
		PayoutsEnabled:   acct.PayoutsEnabled,
		DetailsSubmitted: acct.DetailsSubmitted,
	}, nil
}

func (g *StripeGateway) CreateAccount(
	ctx context.Context,
	email string,
) (*Account, error) {

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	params := &stripe.AccountParams{
		Type:  stripe.String(string(stripe.AccountTypeExpress)),
		Email: stripe.String(email),
	}
	params.Context = ctx

	acct, err := g.api.Accounts.New(params)
	if err != nil {
		return nil, wrapErr("create account", ctx, err)
	}

	return &Account{
		ID:               acct.ID,
		ChargesEnabled:   acct.ChargesEnabled,
		PayoutsEnabled:   acct.PayoutsEnabled,
		DetailsSubmitted: acct.DetailsSubmitted,
	}, nil
}

func (g *StripeGateway) CreateOnboardingLink(
	ctx context.Context,
	accountID string,
	refreshURL string,
	returnURL string,
) (string, error) {

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	params := &stripe.AccountLinkParams{
		Account:    stripe.String(accountID),
		RefreshURL: stripe.String(refreshURL),
		ReturnURL:  stripe.String(returnURL),
		Type:       stripe.String(string(stripe.AccountLinkTypeAccountOnboarding)),
	}
	params.Context = ctx

	link, err := g.api.AccountLinks.New(params)
	if err != nil {
		return "", wrapErr("create onboarding link", ctx, err)
	}
	return link.URL, nil
}

// --------------------------------------------------
// Payment intents
// --------------------------------------------------

func (g *StripeGateway) CreatePaymentIntent(
	ctx context.Context,
	in IntentInput,
) (*PaymentIntent, error) {

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Amount:       stripe.Int64(in.AmountCents),
		Currency:     stripe.String(in.Currency),
		ReceiptEmail: stripe.String(in.ReceiptEmail),
		Description:  stripe.String(in.Description),
	}
	params.Context = ctx
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, wrapErr("create payment intent", ctx, err)
	}
	return toPaymentIntent(pi), nil
}

func (g *StripeGateway) RetrievePaymentIntent(
	ctx context.Context,
	intentID string,
) (*PaymentIntent, error) {

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.Get(intentID, params)
	if err != nil {
		return nil, wrapErr("retrieve payment intent", ctx, err)
	}
	return toPaymentIntent(pi), nil
}

// --------------------------------------------------
// Transfers
// --------------------------------------------------

func (g *StripeGateway) CreateTransfer(
	ctx context.Context,
	in TransferInput,
) (*Transfer, error) {

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	params := &stripe.TransferParams{
		Amount:      stripe.Int64(in.AmountCents),
		Currency:    stripe.String(in.Currency),
		Destination: stripe.String(in.DestinationAccountID),
	}
	params.Context = ctx
	if in.IdempotencyKey != "" {
		params.SetIdempotencyKey(in.IdempotencyKey)
	}
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	tr, err := g.api.Transfers.New(params)
	if err != nil {
		return nil, wrapErr("create transfer", ctx, err)
	}
	return &Transfer{ID: tr.ID}, nil
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func toPaymentIntent(pi *stripe.PaymentIntent) *PaymentIntent {
	method := ""
	if len(pi.PaymentMethodTypes) > 0 {
		method = pi.PaymentMethodTypes[0]
	}
	return &PaymentIntent{
		ID:            pi.ID,
		ClientSecret:  pi.ClientSecret,
		AmountCents:   pi.Amount,
		Currency:      string(pi.Currency),
		ReceiptEmail:  pi.ReceiptEmail,
		PaymentMethod: method,
	}
}

func wrapErr(op string, ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, ErrOutcomeUnknown)
	}

	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return fmt.Errorf("%s: %s", op, stripeErr.Msg)
	}
	return fmt.Errorf("%s: %w", op, err)
}
