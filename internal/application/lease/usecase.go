package lease

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/rentpro/internal/application/dto"
	"github.com/tu-usuario/rentpro/internal/application/ports"
	"github.com/tu-usuario/rentpro/internal/domain"
	"github.com/tu-usuario/rentpro/internal/domain/actor"
	"github.com/tu-usuario/rentpro/internal/domain/entity"
	"github.com/tu-usuario/rentpro/internal/domain/repository"
	"github.com/tu-usuario/rentpro/internal/domain/schedule"
)

const dateLayout = "2006-01-02"

// LeaseUseCase ciclo de vida de contratos de arrendamiento.
type LeaseUseCase struct {
	txRunner   TxRunner
	leaseRepo  repository.LeaseRepository
	unitRepo   repository.UnitRepository
	propRepo   repository.PropertyRepository
	tenantRepo repository.TenantRepository
	notifier   ports.Notifier
}

// NewLeaseUseCase construye el caso de uso.
func NewLeaseUseCase(
	txRunner TxRunner,
	leaseRepo repository.LeaseRepository,
	unitRepo repository.UnitRepository,
	propRepo repository.PropertyRepository,
	tenantRepo repository.TenantRepository,
	notifier ports.Notifier,
) *LeaseUseCase {
	return &LeaseUseCase{
		txRunner:   txRunner,
		leaseRepo:  leaseRepo,
		unitRepo:   unitRepo,
		propRepo:   propRepo,
		tenantRepo: tenantRepo,
		notifier:   notifier,
	}
}

// Create registra un contrato en estado pending. Valida start<end, unidad
// disponible, no-solape contra contratos activos de la unidad y que el
// inquilino no tenga otro contrato activo en la propiedad. Notifica
// lease_created al inquilino (no bloqueante).
func (uc *LeaseUseCase) Create(ctx context.Context, act actor.Actor, in dto.CreateLeaseRequest) (*entity.LeaseAgreement, error) {
	start, err := time.Parse(dateLayout, in.StartDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	end, err := time.Parse(dateLayout, in.EndDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if !start.Before(end) {
		return nil, domain.ErrInvalidInput
	}
	if in.MonthlyRent.IsNegative() || in.MonthlyRent.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	unit, err := uc.unitRepo.GetByID(in.UnitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}
	prop, err := uc.propRepo.GetByID(unit.PropertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, domain.ErrNotFound
	}
	if !act.OwnsProfile(actor.TypeOwner, prop.OwnerID) {
		return nil, domain.ErrForbidden
	}
	if !unit.IsAvailable {
		return nil, domain.ErrUnitUnavailable
	}
	tenant, err := uc.tenantRepo.GetByID(in.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}

	overlap, err := uc.leaseRepo.ExistsActiveOverlap(unit.ID, start, end, "")
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, domain.ErrLeaseOverlap
	}
	hasLease, err := uc.leaseRepo.ExistsActiveForTenantInProperty(tenant.ID, prop.ID)
	if err != nil {
		return nil, err
	}
	if hasLease {
		return nil, domain.ErrTenantHasActiveLease
	}

	now := time.Now()
	lease := &entity.LeaseAgreement{
		ID:              uuid.New().String(),
		PropertyID:      prop.ID,
		UnitID:          unit.ID,
		TenantID:        tenant.ID,
		BankAccountID:   in.BankAccountID,
		StartDate:       start,
		EndDate:         end,
		MonthlyRent:     in.MonthlyRent,
		SecurityDeposit: in.SecurityDeposit,
		RentDueDay:      in.RentDueDay,
		Status:          entity.LeaseStatusPending,
		Terms:           in.Terms,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	err = uc.txRunner.RunLease(ctx, func(
		leaseRepo repository.LeaseRepository,
		_ repository.UnitRepository,
		tpRepo repository.TenantPropertyRepository,
	) error {
		if err := leaseRepo.Create(lease); err != nil {
			return err
		}
		existing, err := tpRepo.GetByTenantAndProperty(tenant.ID, prop.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return nil
		}
		return tpRepo.Create(&entity.TenantProperty{
			ID:         uuid.New().String(),
			TenantID:   tenant.ID,
			PropertyID: prop.ID,
			Status:     entity.TenantPropertyStatusPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, tenant.UserID, entity.NotificationLeaseCreated,
		"Nuevo contrato de arrendamiento",
		"Se creó un contrato para la unidad "+unit.UnitNumber+" en "+prop.Title,
		lease.ID)
	return lease, nil
}

// GetByID devuelve el contrato; solo el propietario de la propiedad, el
// inquilino del contrato o superadmin pueden verlo.
func (uc *LeaseUseCase) GetByID(act actor.Actor, id string) (*entity.LeaseAgreement, error) {
	lease, err := uc.leaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.authorize(act, lease); err != nil {
		return nil, err
	}
	return lease, nil
}

// ListByOwner lista los contratos de las propiedades del propietario.
func (uc *LeaseUseCase) ListByOwner(ownerID string, page dto.PageRequest) ([]*entity.LeaseAgreement, error) {
	page.DefaultPage()
	return uc.leaseRepo.ListByOwner(ownerID, page.Limit, page.Offset)
}

// ListByTenant lista los contratos del inquilino.
func (uc *LeaseUseCase) ListByTenant(tenantID string, page dto.PageRequest) ([]*entity.LeaseAgreement, error) {
	page.DefaultPage()
	return uc.leaseRepo.ListByTenant(tenantID, page.Limit, page.Offset)
}

// Update modifica campos editables de un contrato no terminal.
func (uc *LeaseUseCase) Update(act actor.Actor, id string, in dto.UpdateLeaseRequest) (*entity.LeaseAgreement, error) {
	lease, err := uc.ownedLease(act, id)
	if err != nil {
		return nil, err
	}
	if lease.IsTerminal() {
		return nil, domain.ErrInvalidTransition
	}
	if in.EndDate != "" {
		end, err := time.Parse(dateLayout, in.EndDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		if !lease.StartDate.Before(end) {
			return nil, domain.ErrInvalidInput
		}
		lease.EndDate = end
	}
	if !in.MonthlyRent.IsZero() {
		if in.MonthlyRent.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		lease.MonthlyRent = in.MonthlyRent
	}
	if !in.SecurityDeposit.IsZero() {
		lease.SecurityDeposit = in.SecurityDeposit
	}
	if in.RentDueDay != 0 {
		lease.RentDueDay = in.RentDueDay
	}
	if in.Terms != "" {
		lease.Terms = in.Terms
	}
	lease.UpdatedAt = time.Now()
	if err := uc.leaseRepo.Update(lease); err != nil {
		return nil, err
	}
	return lease, nil
}

// ChangeStatus aplica la máquina de estados: pending→active→{terminated,
// expired}. active→pending y los terminales devuelven ErrInvalidTransition.
// Al activar, la unidad se marca no disponible y la relación
// inquilino-propiedad pasa a activa; al terminar o expirar la unidad se libera.
func (uc *LeaseUseCase) ChangeStatus(ctx context.Context, act actor.Actor, id, newStatus string) (*entity.LeaseAgreement, error) {
	lease, err := uc.ownedLease(act, id)
	if err != nil {
		return nil, err
	}
	if newStatus == lease.Status {
		return lease, nil
	}
	if !lease.CanTransitionTo(newStatus) {
		return nil, domain.ErrInvalidTransition
	}

	err = uc.txRunner.RunLease(ctx, func(
		leaseRepo repository.LeaseRepository,
		unitRepo repository.UnitRepository,
		tpRepo repository.TenantPropertyRepository,
	) error {
		if err := leaseRepo.UpdateStatus(lease.ID, newStatus); err != nil {
			return err
		}
		switch newStatus {
		case entity.LeaseStatusActive:
			if err := unitRepo.SetAvailability(lease.UnitID, false); err != nil {
				return err
			}
			tp, err := tpRepo.GetByTenantAndProperty(lease.TenantID, lease.PropertyID)
			if err != nil {
				return err
			}
			if tp != nil && tp.Status != entity.TenantPropertyStatusActive {
				now := time.Now()
				tp.Status = entity.TenantPropertyStatusActive
				tp.StartDate = &now
				tp.UpdatedAt = now
				return tpRepo.Update(tp)
			}
		case entity.LeaseStatusTerminated, entity.LeaseStatusExpired:
			if err := unitRepo.SetAvailability(lease.UnitID, true); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	lease.Status = newStatus
	lease.UpdatedAt = time.Now()

	uc.notifyStatus(ctx, lease, newStatus)
	return lease, nil
}

// Delete elimina el contrato en cualquier estado y libera la unidad. Notifica
// la terminación al inquilino.
func (uc *LeaseUseCase) Delete(ctx context.Context, act actor.Actor, id string) error {
	lease, err := uc.ownedLease(act, id)
	if err != nil {
		return err
	}
	err = uc.txRunner.RunLease(ctx, func(
		leaseRepo repository.LeaseRepository,
		unitRepo repository.UnitRepository,
		_ repository.TenantPropertyRepository,
	) error {
		if err := leaseRepo.Delete(lease.ID); err != nil {
			return err
		}
		return unitRepo.SetAvailability(lease.UnitID, true)
	})
	if err != nil {
		return err
	}
	uc.notifyTenant(ctx, lease, entity.NotificationLeaseTerminated,
		"Contrato eliminado", "El contrato de arrendamiento fue eliminado")
	return nil
}

// NextPaymentDate calcula la próxima fecha de pago del contrato a partir de
// hoy, con el día de vencimiento clampado al último día del mes.
func (uc *LeaseUseCase) NextPaymentDate(act actor.Actor, id string, today time.Time) (time.Time, error) {
	lease, err := uc.GetByID(act, id)
	if err != nil {
		return time.Time{}, err
	}
	return schedule.NextPaymentDate(today, lease.RentDueDay), nil
}

// authorize permite propietario de la propiedad, inquilino del contrato o
// superadmin.
func (uc *LeaseUseCase) authorize(act actor.Actor, lease *entity.LeaseAgreement) error {
	if act.IsSuperAdmin() {
		return nil
	}
	if act.IsTenant() {
		if act.OwnsProfile(actor.TypeTenant, lease.TenantID) {
			return nil
		}
		return domain.ErrForbidden
	}
	prop, err := uc.propRepo.GetByID(lease.PropertyID)
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

// ownedLease carga el contrato y exige que el actor sea el propietario (o
// superadmin); los inquilinos no mutan contratos.
func (uc *LeaseUseCase) ownedLease(act actor.Actor, id string) (*entity.LeaseAgreement, error) {
	lease, err := uc.leaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, domain.ErrNotFound
	}
	if act.IsTenant() {
		return nil, domain.ErrForbidden
	}
	if err := uc.authorize(act, lease); err != nil {
		return nil, err
	}
	return lease, nil
}

func (uc *LeaseUseCase) notifyStatus(ctx context.Context, lease *entity.LeaseAgreement, status string) {
	switch status {
	case entity.LeaseStatusActive:
		uc.notifyTenant(ctx, lease, entity.NotificationLeaseUpdate,
			"Contrato activado", "Tu contrato de arrendamiento está activo")
	case entity.LeaseStatusTerminated:
		uc.notifyTenant(ctx, lease, entity.NotificationLeaseTerminated,
			"Contrato terminado", "Tu contrato de arrendamiento fue terminado")
	case entity.LeaseStatusExpired:
		uc.notifyTenant(ctx, lease, entity.NotificationLeaseUpdate,
			"Contrato vencido", "Tu contrato de arrendamiento venció")
	}
}

// notifyTenant resuelve el user del inquilino y envía la notificación; un
// fallo en la resolución solo omite el aviso.
func (uc *LeaseUseCase) notifyTenant(ctx context.Context, lease *entity.LeaseAgreement, ntype, title, message string) {
	tenant, err := uc.tenantRepo.GetByID(lease.TenantID)
	if err != nil || tenant == nil {
		return
	}
	uc.notifier.Notify(ctx, tenant.UserID, ntype, title, message, lease.ID)
}
