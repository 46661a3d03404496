package billing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/rentpro/internal/application/dto"
	"github.com/tu-usuario/rentpro/internal/application/ports"
	"github.com/tu-usuario/rentpro/internal/domain"
	"github.com/tu-usuario/rentpro/internal/domain/actor"
	"github.com/tu-usuario/rentpro/internal/domain/entity"
	"github.com/tu-usuario/rentpro/internal/domain/repository"
	"github.com/tu-usuario/rentpro/pkg/logger"
)

const dateLayout = "2006-01-02"

// BillingUseCase motor de facturación: emisión de facturas de renta, cobro
// vía gateway y registro de pagos.
type BillingUseCase struct {
	txRunner    TxRunner
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
	leaseRepo   repository.LeaseRepository
	propRepo    repository.PropertyRepository
	ownerRepo   repository.OwnerRepository
	tenantRepo  repository.TenantRepository
	accountRepo repository.BankAccountRepository
	provider    ports.PaymentProvider
	notifier    ports.Notifier
	cfg         Config
	log         *logger.Logger
}

// NewBillingUseCase construye el caso de uso.
func NewBillingUseCase(
	txRunner TxRunner,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	leaseRepo repository.LeaseRepository,
	propRepo repository.PropertyRepository,
	ownerRepo repository.OwnerRepository,
	tenantRepo repository.TenantRepository,
	accountRepo repository.BankAccountRepository,
	provider ports.PaymentProvider,
	notifier ports.Notifier,
	cfg Config,
	log *logger.Logger,
) *BillingUseCase {
	if cfg.LeadDays == 0 {
		cfg.LeadDays = 5
	}
	if cfg.Currency == "" {
		cfg.Currency = "usd"
	}
	return &BillingUseCase{
		txRunner:    txRunner,
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		leaseRepo:   leaseRepo,
		propRepo:    propRepo,
		ownerRepo:   ownerRepo,
		tenantRepo:  tenantRepo,
		accountRepo: accountRepo,
		provider:    provider,
		notifier:    notifier,
		cfg:         cfg,
		log:         log,
	}
}

// newInvoiceNumber genera un número único tipo RENT-3FA84C21.
func newInvoiceNumber() string {
	hex := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "RENT-" + hex[:8]
}

// CreateInvoice emite una factura manual sobre un contrato. property/unit/
// tenant se denormalizan desde el contrato; total = amount + late_fee. Exige
// una cuenta de cobro usable (la del contrato o la activa de la propiedad):
// sin ella la factura no se emite, en vez de fallar recién en el checkout.
func (uc *BillingUseCase) CreateInvoice(act actor.Actor, in dto.CreateInvoiceRequest) (*entity.Invoice, error) {
	due, err := time.Parse(dateLayout, in.DueDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if in.Amount.IsNegative() || in.Amount.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	lease, err := uc.leaseRepo.GetByID(in.LeaseID)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, domain.ErrNotFound
	}
	prop, err := uc.propRepo.GetByID(lease.PropertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, domain.ErrNotFound
	}
	if !act.OwnsProfile(actor.TypeOwner, prop.OwnerID) {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	invoice := &entity.Invoice{
		ID:            uuid.New().String(),
		LeaseID:       lease.ID,
		PropertyID:    lease.PropertyID,
		UnitID:        lease.UnitID,
		TenantID:      lease.TenantID,
		InvoiceNumber: newInvoiceNumber(),
		InvoiceType:   in.InvoiceType,
		Description:   in.Description,
		Amount:        in.Amount,
		LateFee:       in.LateFee,
		TotalAmount:   in.Amount.Add(in.LateFee),
		DueDate:       due,
		IssueDate:     now,
		Status:        entity.InvoiceStatusPending,
		BankAccountID: lease.BankAccountID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	account, err := uc.chargeAccount(invoice)
	if err != nil {
		return nil, err
	}
	invoice.BankAccountID = account.ID
	if err := uc.invoiceRepo.Create(invoice); err != nil {
		return nil, err
	}

	uc.notifyTenantOfInvoice(invoice)
	return invoice, nil
}

// GetInvoice devuelve la factura con autorización por Actor.
func (uc *BillingUseCase) GetInvoice(act actor.Actor, id string) (*entity.Invoice, error) {
	invoice, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.authorizeInvoice(act, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// ListInvoices lista facturas según el actor: propietario ve las de sus
// propiedades, inquilino las suyas.
func (uc *BillingUseCase) ListInvoices(act actor.Actor, page dto.PageRequest) ([]*entity.Invoice, error) {
	page.DefaultPage()
	switch {
	case act.IsTenant():
		return uc.invoiceRepo.ListByTenant(act.ProfileID, page.Limit, page.Offset)
	case act.IsOwner():
		return uc.invoiceRepo.ListByOwner(act.ProfileID, page.Limit, page.Offset)
	}
	return nil, domain.ErrForbidden
}

// ListPayments lista pagos según el actor.
func (uc *BillingUseCase) ListPayments(act actor.Actor, leaseID string, page dto.PageRequest) ([]*entity.Payment, error) {
	page.DefaultPage()
	if leaseID != "" {
		if _, err := uc.authorizedLease(act, leaseID); err != nil {
			return nil, err
		}
		return uc.paymentRepo.ListByLease(leaseID, page.Limit, page.Offset)
	}
	return uc.paymentRepo.ListByPayer(act.UserID, page.Limit, page.Offset)
}

// authorizeInvoice permite inquilino de la factura, propietario de la
// propiedad o superadmin.
func (uc *BillingUseCase) authorizeInvoice(act actor.Actor, invoice *entity.Invoice) error {
	if act.IsSuperAdmin() {
		return nil
	}
	if act.IsTenant() {
		if act.OwnsProfile(actor.TypeTenant, invoice.TenantID) {
			return nil
		}
		return domain.ErrForbidden
	}
	prop, err := uc.propRepo.GetByID(invoice.PropertyID)
	if err != nil {
		return err
	}
	if prop == nil {
		return domain.ErrNotFound
	}
	if !act.OwnsProfile(actor.TypeOwner, prop.OwnerID) {
		return domain.ErrForbidden
	}
	return nil
}

// authorizedLease carga el contrato y aplica la misma regla de autorización.
func (uc *BillingUseCase) authorizedLease(act actor.Actor, leaseID string) (*entity.LeaseAgreement, error) {
	lease, err := uc.leaseRepo.GetByID(leaseID)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, domain.ErrNotFound
	}
	if act.IsSuperAdmin() {
		return lease, nil
	}
	if act.IsTenant() {
		if act.OwnsProfile(actor.TypeTenant, lease.TenantID) {
			return lease, nil
		}
		return nil, domain.ErrForbidden
	}
	prop, err := uc.propRepo.GetByID(lease.PropertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, domain.ErrNotFound
	}
	if !act.OwnsProfile(actor.TypeOwner, prop.OwnerID) {
		return nil, domain.ErrForbidden
	}
	return lease, nil
}

// notifyTenantOfInvoice avisa payment_due al inquilino; no bloqueante.
func (uc *BillingUseCase) notifyTenantOfInvoice(invoice *entity.Invoice) {
	tenant, err := uc.tenantRepo.GetByID(invoice.TenantID)
	if err != nil || tenant == nil {
		return
	}
	uc.notifier.Notify(context.Background(), tenant.UserID, entity.NotificationPaymentDue,
		"Nueva factura "+invoice.InvoiceNumber,
		"Tienes una factura pendiente con vencimiento "+invoice.DueDate.Format(dateLayout),
		invoice.ID)
}
