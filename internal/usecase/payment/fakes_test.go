package payment

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-payments/internal/audit"
	domain "github.com/BruksfildServices01/barber-payments/internal/domain/payment"
	"github.com/BruksfildServices01/barber-payments/internal/models"
	"github.com/BruksfildServices01/barber-payments/internal/notify"
	"github.com/BruksfildServices01/barber-payments/internal/provider"
)

// ------------------------------
// test wiring
// ------------------------------

func newTestAudit(t *testing.T) *audit.Dispatcher {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.AuditLog{}); err != nil {
		t.Fatalf("migrate audit: %v", err)
	}

	return audit.NewDispatcher(audit.New(db))
}

func newTestNotify() *notify.Dispatcher {
	return notify.NewDispatcher(notify.LogSender{})
}

// ------------------------------
// repository fake
// ------------------------------

type fakeRepo struct {
	nextID     uint
	byIntent   map[string]*models.Payment
	byID       map[uint]*models.Payment
	createErr  error
	findErr    error
	updateErr  error
	claimErr   error
	denyClaims bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byIntent: map[string]*models.Payment{},
		byID:     map[uint]*models.Payment{},
	}
}

func (r *fakeRepo) CreatePayment(_ context.Context, p *models.Payment) (bool, error) {
	if r.createErr != nil {
		return false, r.createErr
	}
	if _, ok := r.byIntent[p.PaymentIntentID]; ok {
		return false, nil
	}
	r.nextID++
	p.ID = r.nextID
	r.byIntent[p.PaymentIntentID] = p
	r.byID[p.ID] = p
	return true, nil
}

func (r *fakeRepo) FindPaymentByID(_ context.Context, id uint) (*models.Payment, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if p, ok := r.byID[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRepo) FindPaymentByIntentID(_ context.Context, intentID string) (*models.Payment, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if p, ok := r.byIntent[intentID]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRepo) FindPaymentByTransferID(_ context.Context, transferID string) (*models.Payment, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, p := range r.byID {
		if p.TransferID == transferID {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRepo) UpdatePayment(_ context.Context, p *models.Payment) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.byID[p.ID] = p
	r.byIntent[p.PaymentIntentID] = p
	return nil
}

func (r *fakeRepo) ClaimTransfer(_ context.Context, paymentID uint) (bool, error) {
	if r.claimErr != nil {
		return false, r.claimErr
	}
	if r.denyClaims {
		return false, nil
	}
	p, ok := r.byID[paymentID]
	if !ok {
		return false, domain.ErrNotFound
	}
	if !domain.CanClaimTransfer(domain.TransferStatus(p.TransferStatus)) {
		return false, nil
	}
	p.TransferStatus = string(domain.TransferProcessing)
	return true, nil
}

func (r *fakeRepo) ListAwaitingTransfer(_ context.Context, barberID uint) ([]models.Payment, error) {
	var out []models.Payment
	for id := uint(1); id <= r.nextID; id++ {
		p, ok := r.byID[id]
		if !ok || p.BarberID != barberID {
			continue
		}
		if p.Status != string(domain.StatusSucceeded) {
			continue
		}
		if p.TransferStatus != string(domain.TransferPending) &&
			p.TransferStatus != string(domain.TransferFailed) {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

// ------------------------------
// appointment store fake
// ------------------------------

type fakeAppointments struct {
	byIntent map[string]*models.Appointment
	byID     map[uint]*models.Appointment
	findErr  error
	updates  int
}

func newFakeAppointments(aps ...*models.Appointment) *fakeAppointments {
	s := &fakeAppointments{
		byIntent: map[string]*models.Appointment{},
		byID:     map[uint]*models.Appointment{},
	}
	for _, ap := range aps {
		s.byID[ap.ID] = ap
		if ap.PaymentIntentID != nil {
			s.byIntent[*ap.PaymentIntentID] = ap
		}
	}
	return s
}

func (s *fakeAppointments) FindByIntentID(_ context.Context, intentID string) (*models.Appointment, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if ap, ok := s.byIntent[intentID]; ok {
		return ap, nil
	}
	return nil, domain.ErrNotFound
}

func (s *fakeAppointments) FindByID(_ context.Context, id uint) (*models.Appointment, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if ap, ok := s.byID[id]; ok {
		return ap, nil
	}
	return nil, domain.ErrNotFound
}

func (s *fakeAppointments) Update(_ context.Context, ap *models.Appointment) error {
	s.updates++
	s.byID[ap.ID] = ap
	return nil
}

// ------------------------------
// barber store fake
// ------------------------------

type fakeBarbers struct {
	byID      map[uint]*models.Barber
	byAccount map[string]*models.Barber
	findErr   error
}

func newFakeBarbers(barbers ...*models.Barber) *fakeBarbers {
	s := &fakeBarbers{
		byID:      map[uint]*models.Barber{},
		byAccount: map[string]*models.Barber{},
	}
	for _, b := range barbers {
		s.byID[b.ID] = b
		if b.ConnectedAccountID != "" {
			s.byAccount[b.ConnectedAccountID] = b
		}
	}
	return s
}

func (s *fakeBarbers) FindByID(_ context.Context, id uint) (*models.Barber, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if b, ok := s.byID[id]; ok {
		return b, nil
	}
	return nil, domain.ErrNotFound
}

func (s *fakeBarbers) FindByConnectedAccountID(_ context.Context, accountID string) (*models.Barber, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if b, ok := s.byAccount[accountID]; ok {
		return b, nil
	}
	return nil, domain.ErrNotFound
}

// ------------------------------
// provider gateway fake
// ------------------------------

type fakeGateway struct {
	account    *provider.Account
	accountErr error

	transferErr    error
	transferCalls  int
	lastTransferIn provider.TransferInput
	nextTransferID string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		account: &provider.Account{
			ID:               "acct_test",
			ChargesEnabled:   true,
			PayoutsEnabled:   true,
			DetailsSubmitted: true,
		},
		nextTransferID: "tr_test",
	}
}

func (g *fakeGateway) RetrieveAccount(_ context.Context, accountID string) (*provider.Account, error) {
	if g.accountErr != nil {
		return nil, g.accountErr
	}
	acct := *g.account
	acct.ID = accountID
	return &acct, nil
}

func (g *fakeGateway) CreateAccount(_ context.Context, _ string) (*provider.Account, error) {
	return g.account, nil
}

func (g *fakeGateway) CreateOnboardingLink(_ context.Context, _, _, _ string) (string, error) {
	return "https://connect.example/onboarding", nil
}

func (g *fakeGateway) CreatePaymentIntent(_ context.Context, _ provider.IntentInput) (*provider.PaymentIntent, error) {
	return nil, errors.New("not implemented in fake")
}

func (g *fakeGateway) RetrievePaymentIntent(_ context.Context, _ string) (*provider.PaymentIntent, error) {
	return nil, errors.New("not implemented in fake")
}

func (g *fakeGateway) CreateTransfer(_ context.Context, in provider.TransferInput) (*provider.Transfer, error) {
	g.transferCalls++
	g.lastTransferIn = in
	if g.transferErr != nil {
		return nil, g.transferErr
	}
	return &provider.Transfer{ID: g.nextTransferID}, nil
}
