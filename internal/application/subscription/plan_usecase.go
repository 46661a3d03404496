package subscription

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/rentpro/internal/application/dto"
	"github.com/tu-usuario/rentpro/internal/domain"
	"github.com/tu-usuario/rentpro/internal/domain/entity"
	"github.com/tu-usuario/rentpro/internal/domain/repository"
)

// PlanUseCase administración de planes (solo superadmin).
type PlanUseCase struct {
	planRepo repository.PlanRepository
}

// NewPlanUseCase construye el caso de uso de planes.
func NewPlanUseCase(planRepo repository.PlanRepository) *PlanUseCase {
	return &PlanUseCase{planRepo: planRepo}
}

// Create registra un plan nuevo.
func (uc *PlanUseCase) Create(in dto.CreatePlanRequest) (*entity.SubscriptionPlan, error) {
	if in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	plan := &entity.SubscriptionPlan{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Tier:           in.Tier,
		Price:          in.Price,
		StripePriceID:  in.StripePriceID,
		DurationMonths: in.DurationMonths,
		MaxProperties:  in.MaxProperties,
		MaxUnits:       in.MaxUnits,
		Description:    in.Description,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.planRepo.Create(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// GetByID devuelve un plan por ID.
func (uc *PlanUseCase) GetByID(id string) (*entity.SubscriptionPlan, error) {
	plan, err := uc.planRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	return plan, nil
}

// ListActive lista los planes contratables.
func (uc *PlanUseCase) ListActive() ([]*entity.SubscriptionPlan, error) {
	return uc.planRepo.ListActive()
}

// Update modifica campos del plan; los cupos nuevos aplican solo a chequeos
// futuros, no revocan registros existentes.
func (uc *PlanUseCase) Update(id string, in dto.UpdatePlanRequest) (*entity.SubscriptionPlan, error) {
	plan, err := uc.planRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		plan.Name = in.Name
	}
	if !in.Price.IsZero() {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		plan.Price = in.Price
	}
	if in.StripePriceID != "" {
		plan.StripePriceID = in.StripePriceID
	}
	if in.MaxProperties > 0 {
		plan.MaxProperties = in.MaxProperties
	}
	if in.MaxUnits > 0 {
		plan.MaxUnits = in.MaxUnits
	}
	if in.Description != "" {
		plan.Description = in.Description
	}
	if in.IsActive != nil {
		plan.IsActive = *in.IsActive
	}
	plan.UpdatedAt = time.Now()
	if err := uc.planRepo.Update(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Delete desactiva el plan. Un plan referenciado por suscripciones nunca se
// elimina físicamente: devuelve ErrPlanInUse y queda en manos del caller
// desactivarlo vía Update si esa era la intención.
func (uc *PlanUseCase) Delete(id string) error {
	plan, err := uc.planRepo.GetByID(id)
	if err != nil {
		return err
	}
	if plan == nil {
		return domain.ErrNotFound
	}
	inUse, err := uc.planRepo.HasSubscriptions(id)
	if err != nil {
		return err
	}
	if inUse {
		return domain.ErrPlanInUse
	}
	return uc.planRepo.Deactivate(id)
}
