package registry

import (
	"context"

	"github.com/tu-usuario/rentpro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. El alta de propiedades y unidades bloquea la
// suscripción activa (SELECT FOR UPDATE) y re-chequea el cupo dentro de la
// misma transacción que hace el insert.
type TxRunner interface {
	RunRegistry(ctx context.Context, fn func(
		subRepo repository.SubscriptionRepository,
		planRepo repository.PlanRepository,
		propertyRepo repository.PropertyRepository,
		unitRepo repository.UnitRepository,
	) error) error
}
