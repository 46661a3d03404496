package repository

import "github.com/tu-usuario/rentpro/internal/domain/entity"

// PlanRepository define el puerto de persistencia para SubscriptionPlan.
type PlanRepository interface {
	Create(plan *entity.SubscriptionPlan) error
	GetByID(id string) (*entity.SubscriptionPlan, error)
	ListActive() ([]*entity.SubscriptionPlan, error)
	Update(plan *entity.SubscriptionPlan) error
	// Deactivate apaga el plan sin eliminarlo (los planes referenciados no se borran).
	Deactivate(id string) error
	// HasSubscriptions indica si alguna suscripción referencia el plan.
	HasSubscriptions(planID string) (bool, error)
}

// SubscriptionRepository define el puerto de persistencia para OwnerSubscription.
type SubscriptionRepository interface {
	Create(sub *entity.OwnerSubscription) error
	GetByID(id string) (*entity.OwnerSubscription, error)
	// GetActiveByOwner devuelve la suscripción con status=active y end_date>now,
	// o nil si no existe.
	GetActiveByOwner(ownerID string) (*entity.OwnerSubscription, error)
	// GetActiveByOwnerForUpdate bloquea (FOR UPDATE) la fila con status=active
	// del owner, sin filtrar por end_date: la activación debe cancelar también
	// una suscripción vencida que siga marcada active antes de crear la nueva.
	GetActiveByOwnerForUpdate(ownerID string) (*entity.OwnerSubscription, error)
	ListByOwner(ownerID string, limit, offset int) ([]*entity.OwnerSubscription, error)
	Update(sub *entity.OwnerSubscription) error
}
