package subscription

import (
	"context"

	"github.com/tu-usuario/rentpro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. La activación bloquea la suscripción activa
// previa (SELECT FOR UPDATE) para serializar activaciones concurrentes del
// mismo propietario.
type TxRunner interface {
	RunActivation(ctx context.Context, fn func(
		subRepo repository.SubscriptionRepository,
		planRepo repository.PlanRepository,
		paymentRepo repository.PaymentRepository,
	) error) error
}
