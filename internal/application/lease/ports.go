package lease

import (
	"context"

	"github.com/tu-usuario/rentpro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Las transiciones de estado mutan el contrato
// y la disponibilidad de la unidad de forma atómica.
type TxRunner interface {
	RunLease(ctx context.Context, fn func(
		leaseRepo repository.LeaseRepository,
		unitRepo repository.UnitRepository,
		tpRepo repository.TenantPropertyRepository,
	) error) error
}
