package subscription_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/rentpro/internal/application/dto"
	"github.com/tu-usuario/rentpro/internal/application/ports"
	"github.com/tu-usuario/rentpro/internal/application/subscription"
	"github.com/tu-usuario/rentpro/internal/domain"
	"github.com/tu-usuario/rentpro/internal/domain/entity"
	"github.com/tu-usuario/rentpro/internal/domain/repository"
	"github.com/tu-usuario/rentpro/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeSubRepo struct {
	subs []*entity.OwnerSubscription
}

func (r *fakeSubRepo) Create(sub *entity.OwnerSubscription) error {
	for _, s := range r.subs {
		if s.OwnerID == sub.OwnerID && s.Status == entity.SubscriptionStatusActive &&
			sub.Status == entity.SubscriptionStatusActive {
			return domain.ErrConflict
		}
	}
	r.subs = append(r.subs, sub)
	return nil
}

func (r *fakeSubRepo) GetByID(id string) (*entity.OwnerSubscription, error) {
	for _, s := range r.subs {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSubRepo) GetActiveByOwner(ownerID string) (*entity.OwnerSubscription, error) {
	for _, s := range r.subs {
		if s.OwnerID == ownerID && s.IsCurrent(time.Now()) {
			return s, nil
		}
	}
	return nil, nil
}

// Como el repo real: por status, sin filtrar por end_date (una suscripción
// vencida que sigue marcada active debe poder cancelarse al renovar).
func (r *fakeSubRepo) GetActiveByOwnerForUpdate(ownerID string) (*entity.OwnerSubscription, error) {
	for _, s := range r.subs {
		if s.OwnerID == ownerID && s.Status == entity.SubscriptionStatusActive {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSubRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.OwnerSubscription, error) {
	var out []*entity.OwnerSubscription
	for _, s := range r.subs {
		if s.OwnerID == ownerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSubRepo) Update(sub *entity.OwnerSubscription) error {
	for i, s := range r.subs {
		if s.ID == sub.ID {
			r.subs[i] = sub
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakePlanRepo struct {
	plans map[string]*entity.SubscriptionPlan
}

func (r *fakePlanRepo) Create(plan *entity.SubscriptionPlan) error {
	r.plans[plan.ID] = plan
	return nil
}
func (r *fakePlanRepo) GetByID(id string) (*entity.SubscriptionPlan, error) {
	return r.plans[id], nil
}
func (r *fakePlanRepo) ListActive() ([]*entity.SubscriptionPlan, error) {
	var out []*entity.SubscriptionPlan
	for _, p := range r.plans {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *fakePlanRepo) Update(plan *entity.SubscriptionPlan) error {
	r.plans[plan.ID] = plan
	return nil
}
func (r *fakePlanRepo) Deactivate(id string) error {
	if p, ok := r.plans[id]; ok {
		p.IsActive = false
	}
	return nil
}
func (r *fakePlanRepo) HasSubscriptions(string) (bool, error) { return false, nil }

type fakePaymentRepo struct {
	payments []*entity.Payment
}

func (r *fakePaymentRepo) Create(p *entity.Payment) error {
	for _, e := range r.payments {
		if e.TransactionID != "" && e.TransactionID == p.TransactionID {
			return domain.ErrDuplicate
		}
	}
	r.payments = append(r.payments, p)
	return nil
}
func (r *fakePaymentRepo) GetByID(id string) (*entity.Payment, error) {
	for _, p := range r.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakePaymentRepo) ListByLease(string, int, int) ([]*entity.Payment, error) { return nil, nil }
func (r *fakePaymentRepo) ListByPayer(string, int, int) ([]*entity.Payment, error) { return nil, nil }
func (r *fakePaymentRepo) CountByTransactionID(txID string) (int, error) {
	n := 0
	for _, p := range r.payments {
		if p.TransactionID == txID {
			n++
		}
	}
	return n, nil
}
func (r *fakePaymentRepo) Update(*entity.Payment) error { return nil }

type fakePropertyCounter struct {
	repository.PropertyRepository
	available int
}

func (r *fakePropertyCounter) CountAvailableByOwner(string) (int, error) { return r.available, nil }

type fakeUnitCounter struct {
	repository.UnitRepository
	count int
}

func (r *fakeUnitCounter) CountByProperty(string) (int, error) { return r.count, nil }

type fakeProvider struct {
	cancelled []string
	cancelErr error
}

func (p *fakeProvider) CreateCheckoutSession(context.Context, ports.CheckoutParams) (*ports.CheckoutSession, error) {
	return nil, errors.New("no implementado")
}
func (p *fakeProvider) RetrieveSession(context.Context, string, string) (*ports.SessionStatus, error) {
	return nil, errors.New("no implementado")
}
func (p *fakeProvider) VerifyWebhook([]byte, string, string) (*ports.ProviderEvent, error) {
	return nil, errors.New("no implementado")
}
func (p *fakeProvider) CancelSubscription(_ context.Context, subscriptionID string) error {
	p.cancelled = append(p.cancelled, subscriptionID)
	return p.cancelErr
}

// fakeTxRunner pasa los mismos repos en memoria; no hay transacción real.
type fakeTxRunner struct {
	subRepo     *fakeSubRepo
	planRepo    *fakePlanRepo
	paymentRepo *fakePaymentRepo
}

func (t *fakeTxRunner) RunActivation(_ context.Context, fn func(
	repository.SubscriptionRepository,
	repository.PlanRepository,
	repository.PaymentRepository,
) error) error {
	return fn(t.subRepo, t.planRepo, t.paymentRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const ownerID = "00000000-0000-0000-0000-0000000000aa"

type fixture struct {
	uc       *subscription.SubscriptionUseCase
	subs     *fakeSubRepo
	plans    *fakePlanRepo
	payments *fakePaymentRepo
	props    *fakePropertyCounter
	units    *fakeUnitCounter
	provider *fakeProvider
}

func newFixture() *fixture {
	f := &fixture{
		subs:     &fakeSubRepo{},
		plans:    &fakePlanRepo{plans: make(map[string]*entity.SubscriptionPlan)},
		payments: &fakePaymentRepo{},
		props:    &fakePropertyCounter{},
		units:    &fakeUnitCounter{},
		provider: &fakeProvider{},
	}
	tx := &fakeTxRunner{subRepo: f.subs, planRepo: f.plans, paymentRepo: f.payments}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	f.uc = subscription.NewSubscriptionUseCase(tx, f.subs, f.plans, f.props, f.units, f.provider, log)
	return f
}

func (f *fixture) addPlan(id string, maxProps, maxUnits, months int) *entity.SubscriptionPlan {
	plan := &entity.SubscriptionPlan{
		ID:             id,
		Name:           "Plan " + id,
		Tier:           "basic",
		Price:          decimal.NewFromInt(29),
		DurationMonths: months,
		MaxProperties:  maxProps,
		MaxUnits:       maxUnits,
		IsActive:       true,
	}
	f.plans.plans[id] = plan
	return plan
}

func (f *fixture) addActiveSub(planID, stripeSubID string) *entity.OwnerSubscription {
	now := time.Now()
	sub := &entity.OwnerSubscription{
		ID:                   "sub-" + planID,
		OwnerID:              ownerID,
		PlanID:               planID,
		Status:               entity.SubscriptionStatusActive,
		StartDate:            now.AddDate(0, 0, -1),
		EndDate:              now.AddDate(0, 1, 0),
		StripeSubscriptionID: stripeSubID,
	}
	f.subs.subs = append(f.subs.subs, sub)
	return sub
}

// ──────────────────────────────────────────────────────────────────────────────
// Activación
// ──────────────────────────────────────────────────────────────────────────────

// Activar con una suscripción previa activa debe cancelarla, crear la nueva y
// cancelar la recurrencia en el proveedor.
func TestActivate_CancelaSuscripcionPrevia(t *testing.T) {
	f := newFixture()
	f.addPlan("basic", 1, 5, 1)
	f.addPlan("pro", 10, 50, 1)
	prev := f.addActiveSub("basic", "sub_stripe_123")

	got, err := f.uc.Activate(context.Background(), ownerID, dto.ActivateSubscriptionRequest{
		PlanID:          "pro",
		PaymentIntentID: "pi_001",
	})
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, entity.SubscriptionStatusCancelled, prev.Status,
		"la suscripción previa debe quedar cancelada")
	assert.NotNil(t, prev.CancelledAt)
	assert.Equal(t, entity.SubscriptionStatusActive, got.Status)
	assert.Equal(t, "pro", got.PlanID)

	// Solo la nueva queda activa
	active, err := f.subs.GetActiveByOwner(ownerID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, got.ID, active.ID)

	// Se registró el pago de suscripción con el payment intent como transacción
	require.Len(t, f.payments.payments, 1)
	assert.Equal(t, entity.PaymentTypeSubscription, f.payments.payments[0].PaymentType)
	assert.Equal(t, "pi_001", f.payments.payments[0].TransactionID)

	// Y se canceló la recurrencia previa en el proveedor
	assert.Equal(t, []string{"sub_stripe_123"}, f.provider.cancelled)
}

// Una suscripción vencida pero todavía marcada active no debe bloquear la
// renovación: la activación la cancela y crea la nueva sin conflicto con la
// unicidad de activa por owner.
func TestActivate_RenuevaSuscripcionVencida(t *testing.T) {
	f := newFixture()
	f.addPlan("basic", 1, 5, 1)
	prev := f.addActiveSub("basic", "sub_stripe_123")
	prev.EndDate = time.Now().AddDate(0, 0, -10)

	got, err := f.uc.Activate(context.Background(), ownerID, dto.ActivateSubscriptionRequest{PlanID: "basic"})
	require.NoError(t, err, "la renovación no debe chocar con la fila vencida")
	assert.Equal(t, entity.SubscriptionStatusCancelled, prev.Status)
	assert.Equal(t, entity.SubscriptionStatusActive, got.Status)
}

// La vigencia es inicio + 30 días por mes de duración.
func TestActivate_VigenciaPorDuracionDelPlan(t *testing.T) {
	f := newFixture()
	f.addPlan("anual", 10, 50, 12)

	got, err := f.uc.Activate(context.Background(), ownerID, dto.ActivateSubscriptionRequest{PlanID: "anual"})
	require.NoError(t, err)

	wantDays := 12 * 30
	assert.InDelta(t, float64(wantDays*24), got.EndDate.Sub(got.StartDate).Hours(), 1,
		"end_date debe ser start + 30 días por mes")
}

// Un plan inactivo no puede contratarse.
func TestActivate_PlanInactivoRetornaNotFound(t *testing.T) {
	f := newFixture()
	plan := f.addPlan("viejo", 1, 5, 1)
	plan.IsActive = false

	_, err := f.uc.Activate(context.Background(), ownerID, dto.ActivateSubscriptionRequest{PlanID: "viejo"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Sin payment intent, la transacción del pago usa el ID de la suscripción.
func TestActivate_SinPaymentIntentGeneraTransaccionSintetica(t *testing.T) {
	f := newFixture()
	f.addPlan("basic", 1, 5, 1)

	got, err := f.uc.Activate(context.Background(), ownerID, dto.ActivateSubscriptionRequest{PlanID: "basic"})
	require.NoError(t, err)
	require.Len(t, f.payments.payments, 1)
	assert.Equal(t, "SUB-"+got.ID, f.payments.payments[0].TransactionID)
}

// Un fallo al cancelar la recurrencia en el proveedor no revierte la
// activación: se loguea y se resuelve por soporte.
func TestActivate_FalloDelProveedorNoRevierte(t *testing.T) {
	f := newFixture()
	f.addPlan("basic", 1, 5, 1)
	f.addPlan("pro", 10, 50, 1)
	f.addActiveSub("basic", "sub_stripe_999")
	f.provider.cancelErr = errors.New("stripe caído")

	got, err := f.uc.Activate(context.Background(), ownerID, dto.ActivateSubscriptionRequest{PlanID: "pro"})
	require.NoError(t, err, "el fallo del proveedor no debe revertir la activación")
	assert.Equal(t, entity.SubscriptionStatusActive, got.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cupos
// ──────────────────────────────────────────────────────────────────────────────

func TestVerifyActive_SinSuscripcionRetornaError(t *testing.T) {
	f := newFixture()
	_, err := f.uc.VerifyActive(ownerID)
	assert.ErrorIs(t, err, domain.ErrNoActiveSubscription)
}

// Con max_properties=1 y una propiedad disponible, la segunda no cabe.
func TestCheckPropertyQuota_SinCupo(t *testing.T) {
	f := newFixture()
	f.addPlan("basic", 1, 5, 1)
	f.addActiveSub("basic", "")
	f.props.available = 1

	err := f.uc.CheckPropertyQuota(ownerID)
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
}

func TestCheckPropertyQuota_ConCupo(t *testing.T) {
	f := newFixture()
	f.addPlan("basic", 2, 5, 1)
	f.addActiveSub("basic", "")
	f.props.available = 1

	assert.NoError(t, f.uc.CheckPropertyQuota(ownerID))
}

// count(units) == max_units bloquea la unidad siguiente.
func TestCheckUnitQuota_SinCupo(t *testing.T) {
	f := newFixture()
	f.addPlan("basic", 1, 3, 1)
	f.addActiveSub("basic", "")
	f.units.count = 3

	err := f.uc.CheckUnitQuota(ownerID, "prop-1")
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
}

func TestQuota_ReportaUsoActual(t *testing.T) {
	f := newFixture()
	f.addPlan("basic", 4, 10, 1)
	f.addActiveSub("basic", "")
	f.props.available = 2

	got, err := f.uc.Quota(ownerID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.MaxProperties)
	assert.Equal(t, 2, got.UsedProperties)
	assert.Equal(t, 10, got.MaxUnits)
}
