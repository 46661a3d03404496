package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/rentpro/internal/application/auth"
	"github.com/tu-usuario/rentpro/internal/application/billing"
	"github.com/tu-usuario/rentpro/internal/application/lease"
	"github.com/tu-usuario/rentpro/internal/application/registry"
	"github.com/tu-usuario/rentpro/internal/application/subscription"
	"github.com/tu-usuario/rentpro/internal/domain/repository"
)

// El runner satisface los puertos transaccionales de todos los casos de uso.
var _ auth.TxRunner = (*TxRunner)(nil)
var _ subscription.TxRunner = (*TxRunner)(nil)
var _ registry.TxRunner = (*TxRunner)(nil)
var _ lease.TxRunner = (*TxRunner)(nil)
var _ billing.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// inTx inicia una transacción, ejecuta fn y hace Commit o Rollback.
func (r *TxRunner) inTx(ctx context.Context, fn func(tx Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunRegistration transacción del registro de usuarios: usuario + perfil
// (+ relación inquilino-propiedad).
func (r *TxRunner) RunRegistration(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	ownerRepo repository.OwnerRepository,
	tenantRepo repository.TenantRepository,
	tpRepo repository.TenantPropertyRepository,
) error) error {
	return r.inTx(ctx, func(tx Querier) error {
		return fn(
			NewUserRepository(tx),
			NewOwnerRepository(tx),
			NewTenantRepository(tx),
			NewTenantPropertyRepository(tx),
		)
	})
}

// RunActivation transacción de activación de suscripción: bloquea la previa
// (FOR UPDATE), crea la nueva y registra el pago.
func (r *TxRunner) RunActivation(ctx context.Context, fn func(
	subRepo repository.SubscriptionRepository,
	planRepo repository.PlanRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	return r.inTx(ctx, func(tx Querier) error {
		return fn(
			NewSubscriptionRepository(tx),
			NewPlanRepository(tx),
			NewPaymentRepository(tx),
		)
	})
}

// RunRegistry transacción del alta de propiedades/unidades con chequeo de cupo.
func (r *TxRunner) RunRegistry(ctx context.Context, fn func(
	subRepo repository.SubscriptionRepository,
	planRepo repository.PlanRepository,
	propertyRepo repository.PropertyRepository,
	unitRepo repository.UnitRepository,
) error) error {
	return r.inTx(ctx, func(tx Querier) error {
		return fn(
			NewSubscriptionRepository(tx),
			NewPlanRepository(tx),
			NewPropertyRepository(tx),
			NewUnitRepository(tx),
		)
	})
}

// RunLease transacción de mutaciones de contratos: contrato + disponibilidad
// de la unidad + relación inquilino-propiedad.
func (r *TxRunner) RunLease(ctx context.Context, fn func(
	leaseRepo repository.LeaseRepository,
	unitRepo repository.UnitRepository,
	tpRepo repository.TenantPropertyRepository,
) error) error {
	return r.inTx(ctx, func(tx Querier) error {
		return fn(
			NewLeaseRepository(tx),
			NewUnitRepository(tx),
			NewTenantPropertyRepository(tx),
		)
	})
}

// RunBilling transacción de confirmación de pago: factura + payment.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	return r.inTx(ctx, func(tx Querier) error {
		return fn(
			NewInvoiceRepository(tx),
			NewPaymentRepository(tx),
		)
	})
}
