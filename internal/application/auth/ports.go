package auth

import (
	"context"

	"github.com/tu-usuario/rentpro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. El registro crea usuario + perfil (+ relación
// con la propiedad si aplica) de forma atómica.
type TxRunner interface {
	RunRegistration(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		ownerRepo repository.OwnerRepository,
		tenantRepo repository.TenantRepository,
		tpRepo repository.TenantPropertyRepository,
	) error) error
}
