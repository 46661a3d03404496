package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/rentpro/internal/application/billing"
	"github.com/tu-usuario/rentpro/internal/application/dto"
	"github.com/tu-usuario/rentpro/internal/application/ports"
	"github.com/tu-usuario/rentpro/internal/domain"
	"github.com/tu-usuario/rentpro/internal/domain/actor"
	"github.com/tu-usuario/rentpro/internal/domain/entity"
	"github.com/tu-usuario/rentpro/internal/domain/repository"
	"github.com/tu-usuario/rentpro/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeInvoiceRepo struct {
	invoices map[string]*entity.Invoice
}

func (r *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	r.invoices[inv.ID] = inv
	return nil
}
func (r *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	return r.invoices[id], nil
}
func (r *fakeInvoiceRepo) GetByCheckoutID(checkoutID string) (*entity.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.StripeCheckoutID == checkoutID {
			return inv, nil
		}
	}
	return nil, nil
}
func (r *fakeInvoiceRepo) ListByOwner(string, int, int) ([]*entity.Invoice, error)  { return nil, nil }
func (r *fakeInvoiceRepo) ListByTenant(string, int, int) ([]*entity.Invoice, error) { return nil, nil }
func (r *fakeInvoiceRepo) ExistsForLeaseAndDue(leaseID string, dueDate time.Time, invoiceType string) (bool, error) {
	for _, inv := range r.invoices {
		if inv.LeaseID == leaseID && inv.InvoiceType == invoiceType && inv.DueDate.Equal(dueDate) {
			return true, nil
		}
	}
	return false, nil
}
func (r *fakeInvoiceRepo) Update(inv *entity.Invoice) error {
	r.invoices[inv.ID] = inv
	return nil
}
func (r *fakeInvoiceRepo) UpdateCheckout(inv *entity.Invoice) error {
	r.invoices[inv.ID] = inv
	return nil
}
func (r *fakeInvoiceRepo) MarkPaid(id string, paidAt time.Time, paymentIntentID string) (bool, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return false, domain.ErrNotFound
	}
	if inv.IsPaid() {
		return false, nil
	}
	inv.Status = entity.InvoiceStatusPaid
	inv.PaymentDate = &paidAt
	if paymentIntentID != "" {
		inv.StripePaymentIntentID = paymentIntentID
	}
	return true, nil
}

type fakePaymentRepo struct {
	payments []*entity.Payment
}

func (r *fakePaymentRepo) Create(p *entity.Payment) error {
	if p.TransactionID != "" {
		for _, e := range r.payments {
			if e.TransactionID == p.TransactionID {
				return domain.ErrDuplicate
			}
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
func (r *fakePaymentRepo) CountByTransactionID(transactionID string) (int, error) {
	n := 0
	for _, p := range r.payments {
		if p.TransactionID == transactionID {
			n++
		}
	}
	return n, nil
}
func (r *fakePaymentRepo) Update(*entity.Payment) error { return nil }

// fakeLeaseSource cubre solo las lecturas que usa el motor de facturación.
type fakeLeaseSource struct {
	repository.LeaseRepository
	leases map[string]*entity.LeaseAgreement
}

func (r *fakeLeaseSource) GetByID(id string) (*entity.LeaseAgreement, error) {
	return r.leases[id], nil
}
func (r *fakeLeaseSource) ListActiveEndingAfter(asOf time.Time) ([]*entity.LeaseAgreement, error) {
	var out []*entity.LeaseAgreement
	for _, l := range r.leases {
		if l.Status == entity.LeaseStatusActive && !l.EndDate.Before(asOf) {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakePropSource struct {
	repository.PropertyRepository
	props map[string]*entity.Property
}

func (r *fakePropSource) GetByID(id string) (*entity.Property, error) { return r.props[id], nil }

type fakeOwnerRepo struct {
	owners map[string]*entity.PropertyOwner
}

func (r *fakeOwnerRepo) Create(o *entity.PropertyOwner) error { r.owners[o.ID] = o; return nil }
func (r *fakeOwnerRepo) GetByID(id string) (*entity.PropertyOwner, error) {
	return r.owners[id], nil
}
func (r *fakeOwnerRepo) GetByUserID(userID string) (*entity.PropertyOwner, error) {
	for _, o := range r.owners {
		if o.UserID == userID {
			return o, nil
		}
	}
	return nil, nil
}

type fakeTenantRepo struct {
	tenants map[string]*entity.Tenant
}

func (r *fakeTenantRepo) Create(tn *entity.Tenant) error { r.tenants[tn.ID] = tn; return nil }
func (r *fakeTenantRepo) GetByID(id string) (*entity.Tenant, error) {
	return r.tenants[id], nil
}
func (r *fakeTenantRepo) GetByUserID(userID string) (*entity.Tenant, error) {
	for _, tn := range r.tenants {
		if tn.UserID == userID {
			return tn, nil
		}
	}
	return nil, nil
}

type fakeAccountRepo struct {
	repository.BankAccountRepository
	byID   map[string]*entity.BankAccount
	active *entity.BankAccount
}

func (r *fakeAccountRepo) GetByID(id string) (*entity.BankAccount, error) { return r.byID[id], nil }
func (r *fakeAccountRepo) GetActiveByPropertyAndType(string, string) (*entity.BankAccount, error) {
	return r.active, nil
}

type fakeProvider struct {
	checkoutSession *ports.CheckoutSession
	checkoutErr     error
	sessionStatus   *ports.SessionStatus
	retrieveErr     error
	webhookEvent    *ports.ProviderEvent
	webhookErr      error

	checkoutCalls int
	retrieveCalls int
}

func (p *fakeProvider) CreateCheckoutSession(_ context.Context, _ ports.CheckoutParams) (*ports.CheckoutSession, error) {
	p.checkoutCalls++
	return p.checkoutSession, p.checkoutErr
}
func (p *fakeProvider) RetrieveSession(_ context.Context, _, _ string) (*ports.SessionStatus, error) {
	p.retrieveCalls++
	return p.sessionStatus, p.retrieveErr
}
func (p *fakeProvider) VerifyWebhook(_ []byte, _, _ string) (*ports.ProviderEvent, error) {
	return p.webhookEvent, p.webhookErr
}
func (p *fakeProvider) CancelSubscription(context.Context, string) error { return nil }

type notified struct {
	recipientID string
	ntype       string
}

type fakeNotifier struct {
	sent []notified
}

func (n *fakeNotifier) Notify(_ context.Context, recipientID, ntype, _, _, _ string) {
	n.sent = append(n.sent, notified{recipientID: recipientID, ntype: ntype})
}

type fakeTxRunner struct {
	invoiceRepo *fakeInvoiceRepo
	paymentRepo *fakePaymentRepo
}

func (t *fakeTxRunner) RunBilling(_ context.Context, fn func(
	repository.InvoiceRepository,
	repository.PaymentRepository,
) error) error {
	return fn(t.invoiceRepo, t.paymentRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	ownerProfileID  = "owner-1"
	ownerUserID     = "user-owner-1"
	tenantProfileID = "tenant-1"
	tenantUserID    = "user-tenant-1"
	propertyID      = "prop-1"
	unitID          = "unit-1"
	leaseID         = "lease-1"
	accountID       = "acc-1"
)

type fixture struct {
	uc       *billing.BillingUseCase
	invoices *fakeInvoiceRepo
	payments *fakePaymentRepo
	leases   *fakeLeaseSource
	accounts *fakeAccountRepo
	provider *fakeProvider
	notifier *fakeNotifier
}

func newFixture() *fixture {
	f := &fixture{
		invoices: &fakeInvoiceRepo{invoices: make(map[string]*entity.Invoice)},
		payments: &fakePaymentRepo{},
		provider: &fakeProvider{},
		notifier: &fakeNotifier{},
	}
	f.leases = &fakeLeaseSource{leases: map[string]*entity.LeaseAgreement{
		leaseID: {
			ID: leaseID, PropertyID: propertyID, UnitID: unitID, TenantID: tenantProfileID,
			StartDate:   time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
			MonthlyRent: decimal.NewFromInt(500),
			RentDueDay:  10,
			Status:      entity.LeaseStatusActive,
		},
	}}
	props := &fakePropSource{props: map[string]*entity.Property{
		propertyID: {ID: propertyID, OwnerID: ownerProfileID, Title: "Edificio Central"},
	}}
	owners := &fakeOwnerRepo{owners: map[string]*entity.PropertyOwner{
		ownerProfileID: {ID: ownerProfileID, UserID: ownerUserID},
	}}
	tenants := &fakeTenantRepo{tenants: map[string]*entity.Tenant{
		tenantProfileID: {ID: tenantProfileID, UserID: tenantUserID},
	}}
	f.accounts = &fakeAccountRepo{
		byID: make(map[string]*entity.BankAccount),
		active: &entity.BankAccount{
			ID: accountID, PropertyID: propertyID,
			AccountType: entity.BankAccountTypeStripe,
			Status:      entity.BankAccountStatusActive,
			SecretKey:   "sk_test_123",
		},
	}
	tx := &fakeTxRunner{invoiceRepo: f.invoices, paymentRepo: f.payments}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	cfg := billing.Config{
		Currency:      "usd",
		SuccessURL:    "https://app.test/pago-ok",
		CancelURL:     "https://app.test/pago-cancelado",
		WebhookSecret: "whsec_test",
		LeadDays:      5,
	}
	f.uc = billing.NewBillingUseCase(tx, f.invoices, f.payments, f.leases, props,
		owners, tenants, f.accounts, f.provider, f.notifier, cfg, log)
	return f
}

func ownerActor() actor.Actor  { return actor.Owner(ownerUserID, ownerProfileID) }
func tenantActor() actor.Actor { return actor.Tenant(tenantUserID, tenantProfileID) }

func (f *fixture) addPendingInvoice() *entity.Invoice {
	inv := &entity.Invoice{
		ID: "inv-1", LeaseID: leaseID, PropertyID: propertyID, UnitID: unitID,
		TenantID:      tenantProfileID,
		InvoiceNumber: "RENT-TEST0001",
		InvoiceType:   entity.InvoiceTypeRent,
		Amount:        decimal.NewFromInt(500),
		TotalAmount:   decimal.NewFromInt(500),
		DueDate:       time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
		IssueDate:     time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
		Status:        entity.InvoiceStatusPending,
	}
	f.invoices.invoices[inv.ID] = inv
	return inv
}

func notifiedTypes(n *fakeNotifier) []string {
	var out []string
	for _, s := range n.sent {
		out = append(out, s.ntype)
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Generador de facturas de renta
// ──────────────────────────────────────────────────────────────────────────────

// Con rent_due_day=10 y LeadDays=5, la corrida del día 5 emite la factura que
// vence el 10; repetirla no duplica.
func TestGenerateDueInvoices_EmiteYEsIdempotente(t *testing.T) {
	f := newFixture()
	asOf := time.Date(2024, time.January, 5, 8, 0, 0, 0, time.UTC)

	report := f.uc.GenerateDueInvoices(asOf)
	require.Empty(t, report.Errors)
	assert.Equal(t, 1, report.Scanned)
	require.Len(t, report.Created, 1)
	assert.Contains(t, report.Created[0], "RENT-")
	assert.Equal(t, []string{entity.NotificationPaymentDue}, notifiedTypes(f.notifier))

	// Segunda corrida del mismo día: la factura ya existe
	report = f.uc.GenerateDueInvoices(asOf)
	require.Empty(t, report.Errors)
	assert.Empty(t, report.Created)
	assert.Equal(t, 1, report.Skipped)
}

// Un vencimiento fuera de la ventana de anticipación no genera factura.
func TestGenerateDueInvoices_FueraDeVentanaOmite(t *testing.T) {
	f := newFixture()
	f.leases.leases[leaseID].RentDueDay = 20

	report := f.uc.GenerateDueInvoices(time.Date(2024, time.January, 5, 8, 0, 0, 0, time.UTC))
	require.Empty(t, report.Errors)
	assert.Empty(t, report.Created)
	assert.Equal(t, 1, report.Skipped)
}

// Los contratos vencidos quedan fuera de la corrida.
func TestGenerateDueInvoices_ContratoVencidoFueraDeCorrida(t *testing.T) {
	f := newFixture()
	f.leases.leases[leaseID].EndDate = time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC)

	report := f.uc.GenerateDueInvoices(time.Date(2024, time.January, 5, 8, 0, 0, 0, time.UTC))
	assert.Equal(t, 0, report.Scanned)
	assert.Empty(t, report.Created)
}

// ──────────────────────────────────────────────────────────────────────────────
// Confirmación de pago
// ──────────────────────────────────────────────────────────────────────────────

// La entrega repetida del mismo transaction_id produce un solo Payment.
func TestConfirmPayment_IdempotentePorTransaccion(t *testing.T) {
	f := newFixture()
	inv := f.addPendingInvoice()
	ctx := context.Background()

	require.NoError(t, f.uc.ConfirmPayment(ctx, inv.ID, "cs_test_1", "pi_test_1", "pm_test_1", entity.PaymentMethodStripe))
	require.NoError(t, f.uc.ConfirmPayment(ctx, inv.ID, "cs_test_1", "pi_test_1", "pm_test_1", entity.PaymentMethodStripe))

	require.Len(t, f.payments.payments, 1)
	got := f.payments.payments[0]
	assert.Equal(t, "cs_test_1", got.TransactionID)
	assert.Equal(t, entity.PaymentStatusCompleted, got.Status)
	assert.Equal(t, tenantUserID, got.PaidByID)
	assert.True(t, got.Amount.Equal(inv.TotalAmount))
	assert.True(t, f.invoices.invoices[inv.ID].IsPaid())
}

// Si la factura ya estaba pagada, otro transaction_id tampoco crea un pago.
func TestConfirmPayment_FacturaPagadaNoDuplica(t *testing.T) {
	f := newFixture()
	inv := f.addPendingInvoice()
	ctx := context.Background()

	require.NoError(t, f.uc.ConfirmPayment(ctx, inv.ID, "cs_test_1", "pi_test_1", "", entity.PaymentMethodStripe))
	require.NoError(t, f.uc.ConfirmPayment(ctx, inv.ID, "cs_test_2", "pi_test_2", "", entity.PaymentMethodStripe))

	assert.Len(t, f.payments.payments, 1)
}

// Al liquidarse la factura se avisa al inquilino y al propietario.
func TestConfirmPayment_NotificaAInquilinoYPropietario(t *testing.T) {
	f := newFixture()
	inv := f.addPendingInvoice()

	require.NoError(t, f.uc.ConfirmPayment(context.Background(), inv.ID, "cs_test_1", "", "", entity.PaymentMethodStripe))

	require.Len(t, f.notifier.sent, 2)
	assert.Equal(t, tenantUserID, f.notifier.sent[0].recipientID)
	assert.Equal(t, ownerUserID, f.notifier.sent[1].recipientID)
	for _, s := range f.notifier.sent {
		assert.Equal(t, entity.NotificationPaymentReceived, s.ntype)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Pago manual
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordManualPayment_RegistraEfectivo(t *testing.T) {
	f := newFixture()
	inv := f.addPendingInvoice()

	got, err := f.uc.RecordManualPayment(context.Background(), ownerActor(), dto.RecordPaymentRequest{
		InvoiceID: inv.ID,
		Amount:    decimal.NewFromInt(500),
		Method:    entity.PaymentMethodCash,
	})
	require.NoError(t, err)
	assert.True(t, got.IsPaid())

	require.Len(t, f.payments.payments, 1)
	assert.Equal(t, entity.PaymentMethodCash, f.payments.payments[0].Method)
	// Sin transaction_id externo se genera uno sintético para la deduplicación
	assert.Contains(t, f.payments.payments[0].TransactionID, "CASH-")
}

func TestRecordManualPayment_MontoParcialRechazado(t *testing.T) {
	f := newFixture()
	inv := f.addPendingInvoice()

	_, err := f.uc.RecordManualPayment(context.Background(), ownerActor(), dto.RecordPaymentRequest{
		InvoiceID: inv.ID,
		Amount:    decimal.NewFromInt(300),
		Method:    entity.PaymentMethodCash,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.payments.payments)
}

func TestRecordManualPayment_InquilinoProhibido(t *testing.T) {
	f := newFixture()
	inv := f.addPendingInvoice()

	_, err := f.uc.RecordManualPayment(context.Background(), tenantActor(), dto.RecordPaymentRequest{
		InvoiceID: inv.ID,
		Amount:    decimal.NewFromInt(500),
		Method:    entity.PaymentMethodCash,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Emisión manual
// ──────────────────────────────────────────────────────────────────────────────

// La factura manual denormaliza propiedad/unidad/inquilino desde el contrato
// y total = amount + late_fee.
func TestCreateInvoice_DenormalizaDesdeElContrato(t *testing.T) {
	f := newFixture()

	got, err := f.uc.CreateInvoice(ownerActor(), dto.CreateInvoiceRequest{
		LeaseID:     leaseID,
		InvoiceType: entity.InvoiceTypeMaintenance,
		Description: "Reparación de calentador",
		Amount:      decimal.NewFromInt(120),
		LateFee:     decimal.NewFromInt(10),
		DueDate:     "2024-02-01",
	})
	require.NoError(t, err)
	assert.Equal(t, propertyID, got.PropertyID)
	assert.Equal(t, unitID, got.UnitID)
	assert.Equal(t, tenantProfileID, got.TenantID)
	assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(130)))
	assert.Equal(t, entity.InvoiceStatusPending, got.Status)
	assert.Equal(t, []string{entity.NotificationPaymentDue}, notifiedTypes(f.notifier))
}

// Sin cuenta de cobro usable la factura manual no se emite: el error sale en
// la emisión, no recién cuando el inquilino intenta pagar.
func TestCreateInvoice_SinCuentaDeCobroNoEmite(t *testing.T) {
	f := newFixture()
	f.accounts.active = nil

	_, err := f.uc.CreateInvoice(ownerActor(), dto.CreateInvoiceRequest{
		LeaseID:     leaseID,
		InvoiceType: entity.InvoiceTypeRent,
		Amount:      decimal.NewFromInt(500),
		DueDate:     "2024-02-01",
	})
	assert.ErrorIs(t, err, domain.ErrPaymentAccountMisconfigured)
	assert.Empty(t, f.invoices.invoices)
}

// La factura queda ligada a la cuenta que va a cobrarla.
func TestCreateInvoice_AsignaCuentaDeCobro(t *testing.T) {
	f := newFixture()

	got, err := f.uc.CreateInvoice(ownerActor(), dto.CreateInvoiceRequest{
		LeaseID:     leaseID,
		InvoiceType: entity.InvoiceTypeRent,
		Amount:      decimal.NewFromInt(500),
		DueDate:     "2024-02-01",
	})
	require.NoError(t, err)
	assert.Equal(t, accountID, got.BankAccountID)
}

func TestCreateInvoice_OtroPropietarioProhibido(t *testing.T) {
	f := newFixture()
	otro := actor.Owner("user-owner-2", "owner-2")

	_, err := f.uc.CreateInvoice(otro, dto.CreateInvoiceRequest{
		LeaseID:     leaseID,
		InvoiceType: entity.InvoiceTypeRent,
		Amount:      decimal.NewFromInt(500),
		DueDate:     "2024-02-01",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Checkout
// ──────────────────────────────────────────────────────────────────────────────

func TestInitiateCheckout_PersisteCorrelacion(t *testing.T) {
	f := newFixture()
	inv := f.addPendingInvoice()
	f.provider.checkoutSession = &ports.CheckoutSession{
		ID:  "cs_test_abc",
		URL: "https://checkout.test/cs_test_abc",
	}

	got, err := f.uc.InitiateCheckout(context.Background(), tenantActor(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "cs_test_abc", got.CheckoutID)
	assert.Equal(t, "https://checkout.test/cs_test_abc", got.CheckoutURL)

	stored := f.invoices.invoices[inv.ID]
	assert.Equal(t, "cs_test_abc", stored.StripeCheckoutID)
	assert.Equal(t, accountID, stored.BankAccountID)
}

func TestInitiateCheckout_SinCuentaConfigurada(t *testing.T) {
	f := newFixture()
	inv := f.addPendingInvoice()
	f.accounts.active = nil

	_, err := f.uc.InitiateCheckout(context.Background(), tenantActor(), inv.ID)
	assert.ErrorIs(t, err, domain.ErrPaymentAccountMisconfigured)
	assert.Zero(t, f.provider.checkoutCalls)
}

func TestInitiateCheckout_FacturaPagadaConflicto(t *testing.T) {
	f := newFixture()
	inv := f.addPendingInvoice()
	inv.Status = entity.InvoiceStatusPaid

	_, err := f.uc.InitiateCheckout(context.Background(), tenantActor(), inv.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestInitiateCheckout_FalloDelGateway(t *testing.T) {
	f := newFixture()
	inv := f.addPendingInvoice()
	f.provider.checkoutErr = errors.New("stripe caído")

	_, err := f.uc.InitiateCheckout(context.Background(), tenantActor(), inv.ID)
	assert.ErrorIs(t, err, domain.ErrProviderError)
}

// Si la factura ya está pagada, la verificación no consulta al proveedor.
func TestVerifyCheckout_YaPagadaCortocircuita(t *testing.T) {
	f := newFixture()
	inv := f.addPendingInvoice()
	inv.Status = entity.InvoiceStatusPaid
	inv.StripeCheckoutID = "cs_test_abc"

	got, err := f.uc.VerifyCheckout(context.Background(), tenantActor(), "cs_test_abc")
	require.NoError(t, err)
	assert.True(t, got.Paid)
	assert.Zero(t, f.provider.retrieveCalls)
}

// El proveedor es la fuente de verdad: sesión sin pagar no confirma nada.
func TestVerifyCheckout_SesionSinPagar(t *testing.T) {
	f := newFixture()
	inv := f.addPendingInvoice()
	inv.StripeCheckoutID = "cs_test_abc"
	f.provider.sessionStatus = &ports.SessionStatus{ID: "cs_test_abc", PaymentStatus: "unpaid"}

	got, err := f.uc.VerifyCheckout(context.Background(), tenantActor(), "cs_test_abc")
	require.NoError(t, err)
	assert.False(t, got.Paid)
	assert.Empty(t, f.payments.payments)
	assert.False(t, f.invoices.invoices[inv.ID].IsPaid())
}

func TestVerifyCheckout_SesionPagadaConfirma(t *testing.T) {
	f := newFixture()
	inv := f.addPendingInvoice()
	inv.StripeCheckoutID = "cs_test_abc"
	f.provider.sessionStatus = &ports.SessionStatus{
		ID: "cs_test_abc", PaymentStatus: "paid", PaymentIntent: "pi_test_1",
	}

	got, err := f.uc.VerifyCheckout(context.Background(), tenantActor(), "cs_test_abc")
	require.NoError(t, err)
	assert.True(t, got.Paid)
	assert.Equal(t, entity.InvoiceStatusPaid, got.Status)
	require.Len(t, f.payments.payments, 1)
	assert.Equal(t, "cs_test_abc", f.payments.payments[0].TransactionID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Webhook
// ──────────────────────────────────────────────────────────────────────────────

func TestProcessWebhook_FirmaInvalida(t *testing.T) {
	f := newFixture()
	f.provider.webhookErr = errors.New("firma no verifica")

	err := f.uc.ProcessWebhook(context.Background(), []byte(`{}`), "t=1,v1=bad")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestProcessWebhook_TipoDesconocidoIgnorado(t *testing.T) {
	f := newFixture()
	f.provider.webhookEvent = &ports.ProviderEvent{ID: "evt_1", Type: "invoice.created"}

	err := f.uc.ProcessWebhook(context.Background(), []byte(`{}`), "t=1,v1=ok")
	assert.NoError(t, err)
	assert.Empty(t, f.payments.payments)
}

// Una sesión que no corresponde a ninguna factura se confirma sin error para
// que el gateway no reintente.
func TestProcessWebhook_SesionDesconocidaAck(t *testing.T) {
	f := newFixture()
	f.provider.webhookEvent = &ports.ProviderEvent{
		ID: "evt_1", Type: "checkout.session.completed", SessionID: "cs_de_otro_sistema",
	}

	err := f.uc.ProcessWebhook(context.Background(), []byte(`{}`), "t=1,v1=ok")
	assert.NoError(t, err)
	assert.Empty(t, f.payments.payments)
}

func TestProcessWebhook_LiquidaLaFactura(t *testing.T) {
	f := newFixture()
	inv := f.addPendingInvoice()
	inv.StripeCheckoutID = "cs_test_abc"
	f.provider.webhookEvent = &ports.ProviderEvent{
		ID: "evt_1", Type: "checkout.session.completed",
		SessionID: "cs_test_abc", PaymentIntent: "pi_test_1", PaymentMethod: "pm_test_1",
	}

	require.NoError(t, f.uc.ProcessWebhook(context.Background(), []byte(`{}`), "t=1,v1=ok"))
	assert.True(t, f.invoices.invoices[inv.ID].IsPaid())
	require.Len(t, f.payments.payments, 1)
	assert.Equal(t, entity.PaymentMethodStripe, f.payments.payments[0].Method)
}

// ──────────────────────────────────────────────────────────────────────────────
// Depósito de garantía
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSecurityDepositCharge_RegistraCargoPendiente(t *testing.T) {
	f := newFixture()
	f.leases.leases[leaseID].SecurityDeposit = decimal.NewFromInt(1000)

	got, err := f.uc.CreateSecurityDepositCharge(ownerActor(), leaseID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentTypeSecurityDeposit, got.PaymentType)
	assert.Equal(t, entity.PaymentStatusPending, got.Status)
	assert.True(t, got.Amount.Equal(decimal.NewFromInt(1000)))
	require.NotNil(t, got.DueDate)
	assert.True(t, got.DueDate.Equal(f.leases.leases[leaseID].StartDate))
}

func TestCreateSecurityDepositCharge_SinDepositoRechazado(t *testing.T) {
	f := newFixture()

	_, err := f.uc.CreateSecurityDepositCharge(ownerActor(), leaseID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
