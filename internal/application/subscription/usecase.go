package subscription

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/rentpro/internal/application/dto"
	"github.com/tu-usuario/rentpro/internal/application/ports"
	"github.com/tu-usuario/rentpro/internal/domain"
	"github.com/tu-usuario/rentpro/internal/domain/entity"
	"github.com/tu-usuario/rentpro/internal/domain/repository"
	"github.com/tu-usuario/rentpro/pkg/logger"
)

// SubscriptionUseCase casos de uso del libro de suscripciones: suscripción
// activa, cupos del plan y activación transaccional.
type SubscriptionUseCase struct {
	txRunner     TxRunner
	subRepo      repository.SubscriptionRepository
	planRepo     repository.PlanRepository
	propertyRepo repository.PropertyRepository
	unitRepo     repository.UnitRepository
	provider     ports.PaymentProvider
	log          *logger.Logger
}

// NewSubscriptionUseCase construye el caso de uso.
func NewSubscriptionUseCase(
	txRunner TxRunner,
	subRepo repository.SubscriptionRepository,
	planRepo repository.PlanRepository,
	propertyRepo repository.PropertyRepository,
	unitRepo repository.UnitRepository,
	provider ports.PaymentProvider,
	log *logger.Logger,
) *SubscriptionUseCase {
	return &SubscriptionUseCase{
		txRunner:     txRunner,
		subRepo:      subRepo,
		planRepo:     planRepo,
		propertyRepo: propertyRepo,
		unitRepo:     unitRepo,
		provider:     provider,
		log:          log,
	}
}

// GetActive devuelve la suscripción activa y vigente del propietario, o nil.
func (uc *SubscriptionUseCase) GetActive(ownerID string) (*entity.OwnerSubscription, error) {
	return uc.subRepo.GetActiveByOwner(ownerID)
}

// VerifyActive devuelve ErrNoActiveSubscription si el propietario no tiene
// suscripción activa vigente.
func (uc *SubscriptionUseCase) VerifyActive(ownerID string) (*entity.OwnerSubscription, error) {
	sub, err := uc.subRepo.GetActiveByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, domain.ErrNoActiveSubscription
	}
	return sub, nil
}

// CheckPropertyQuota verifica que el propietario pueda registrar una propiedad
// más: count(disponibles)+1 <= max_properties del plan activo.
func (uc *SubscriptionUseCase) CheckPropertyQuota(ownerID string) error {
	sub, err := uc.VerifyActive(ownerID)
	if err != nil {
		return err
	}
	plan, err := uc.planRepo.GetByID(sub.PlanID)
	if err != nil {
		return err
	}
	if plan == nil {
		return domain.ErrNotFound
	}
	count, err := uc.propertyRepo.CountAvailableByOwner(ownerID)
	if err != nil {
		return err
	}
	if count+1 > plan.MaxProperties {
		return domain.ErrQuotaExceeded
	}
	return nil
}

// CheckUnitQuota verifica que la propiedad admita una unidad más:
// count(units) < max_units del plan activo del propietario.
func (uc *SubscriptionUseCase) CheckUnitQuota(ownerID, propertyID string) error {
	sub, err := uc.VerifyActive(ownerID)
	if err != nil {
		return err
	}
	plan, err := uc.planRepo.GetByID(sub.PlanID)
	if err != nil {
		return err
	}
	if plan == nil {
		return domain.ErrNotFound
	}
	count, err := uc.unitRepo.CountByProperty(propertyID)
	if err != nil {
		return err
	}
	if count >= plan.MaxUnits {
		return domain.ErrQuotaExceeded
	}
	return nil
}

// Quota devuelve los cupos del plan activo y el uso actual de propiedades.
func (uc *SubscriptionUseCase) Quota(ownerID string) (*dto.QuotaResponse, error) {
	sub, err := uc.VerifyActive(ownerID)
	if err != nil {
		return nil, err
	}
	plan, err := uc.planRepo.GetByID(sub.PlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	used, err := uc.propertyRepo.CountAvailableByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	return &dto.QuotaResponse{
		MaxProperties:  plan.MaxProperties,
		UsedProperties: used,
		MaxUnits:       plan.MaxUnits,
	}, nil
}

// Activate contrata el plan para el propietario: dentro de una transacción
// bloquea y cancela la suscripción activa previa, crea la nueva con
// end_date = now + 30 días por mes de duración y registra el Payment de
// suscripción. La cancelación en el proveedor se intenta fuera del commit y su
// fallo no revierte la activación (se loguea y se reintenta por soporte).
func (uc *SubscriptionUseCase) Activate(ctx context.Context, ownerID string, in dto.ActivateSubscriptionRequest) (*entity.OwnerSubscription, error) {
	plan, err := uc.planRepo.GetByID(in.PlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil || !plan.IsActive {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	newSub := &entity.OwnerSubscription{
		ID:                    uuid.New().String(),
		OwnerID:               ownerID,
		PlanID:                plan.ID,
		Status:                entity.SubscriptionStatusActive,
		StartDate:             now,
		EndDate:               entity.SubscriptionEndDate(now, plan.DurationMonths),
		PaymentStatus:         "completed",
		PaymentAmount:         plan.Price,
		PaymentDate:           &now,
		StripePaymentIntentID: in.PaymentIntentID,
		StripeCustomerID:      in.CustomerID,
		StripeSubscriptionID:  in.SubscriptionID,
		AutoRenew:             in.AutoRenew,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	var previousStripeSub string
	err = uc.txRunner.RunActivation(ctx, func(
		subRepo repository.SubscriptionRepository,
		_ repository.PlanRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		prev, err := subRepo.GetActiveByOwnerForUpdate(ownerID)
		if err != nil {
			return err
		}
		if prev != nil {
			prev.Status = entity.SubscriptionStatusCancelled
			prev.CancelledAt = &now
			prev.UpdatedAt = now
			if err := subRepo.Update(prev); err != nil {
				return err
			}
			previousStripeSub = prev.StripeSubscriptionID
		}
		if err := subRepo.Create(newSub); err != nil {
			return err
		}
		txID := in.PaymentIntentID
		if txID == "" {
			txID = "SUB-" + newSub.ID
		}
		return paymentRepo.Create(&entity.Payment{
			ID:                    uuid.New().String(),
			PaymentType:           entity.PaymentTypeSubscription,
			Amount:                plan.Price,
			PaymentDate:           &now,
			Status:                entity.PaymentStatusCompleted,
			Method:                entity.PaymentMethodStripe,
			PaidByID:              ownerID,
			TransactionID:         txID,
			StripePaymentIntentID: in.PaymentIntentID,
			CreatedAt:             now,
			UpdatedAt:             now,
		})
	})
	if err != nil {
		return nil, err
	}

	if previousStripeSub != "" && uc.provider != nil {
		if err := uc.provider.CancelSubscription(ctx, previousStripeSub); err != nil {
			uc.log.Warn().Err(err).
				Str("stripe_subscription_id", previousStripeSub).
				Msg("no se pudo cancelar la suscripción previa en el proveedor")
		}
	}
	return newSub, nil
}

// ListByOwner lista el historial de suscripciones del propietario.
func (uc *SubscriptionUseCase) ListByOwner(ownerID string, page dto.PageRequest) ([]*entity.OwnerSubscription, error) {
	page.DefaultPage()
	return uc.subRepo.ListByOwner(ownerID, page.Limit, page.Offset)
}
