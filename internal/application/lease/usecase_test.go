package lease_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/rentpro/internal/application/dto"
	"github.com/tu-usuario/rentpro/internal/application/lease"
	"github.com/tu-usuario/rentpro/internal/domain"
	"github.com/tu-usuario/rentpro/internal/domain/actor"
	"github.com/tu-usuario/rentpro/internal/domain/entity"
	"github.com/tu-usuario/rentpro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeLeaseRepo struct {
	leases map[string]*entity.LeaseAgreement
}

func newFakeLeaseRepo() *fakeLeaseRepo {
	return &fakeLeaseRepo{leases: make(map[string]*entity.LeaseAgreement)}
}

func (r *fakeLeaseRepo) Create(l *entity.LeaseAgreement) error {
	r.leases[l.ID] = l
	return nil
}
func (r *fakeLeaseRepo) GetByID(id string) (*entity.LeaseAgreement, error) {
	return r.leases[id], nil
}
func (r *fakeLeaseRepo) ListByProperty(string, int, int) ([]*entity.LeaseAgreement, error) {
	return nil, nil
}
func (r *fakeLeaseRepo) ListByTenant(string, int, int) ([]*entity.LeaseAgreement, error) {
	return nil, nil
}
func (r *fakeLeaseRepo) ListByOwner(string, int, int) ([]*entity.LeaseAgreement, error) {
	return nil, nil
}
func (r *fakeLeaseRepo) ListActiveEndingAfter(asOf time.Time) ([]*entity.LeaseAgreement, error) {
	var out []*entity.LeaseAgreement
	for _, l := range r.leases {
		if l.Status == entity.LeaseStatusActive && !l.EndDate.Before(asOf) {
			out = append(out, l)
		}
	}
	return out, nil
}
func (r *fakeLeaseRepo) ExistsActiveOverlap(unitID string, start, end time.Time, excludeID string) (bool, error) {
	for _, l := range r.leases {
		if l.UnitID != unitID || l.Status != entity.LeaseStatusActive || l.ID == excludeID {
			continue
		}
		if l.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}
func (r *fakeLeaseRepo) ExistsActiveForTenantInProperty(tenantID, propertyID string) (bool, error) {
	for _, l := range r.leases {
		if l.TenantID == tenantID && l.PropertyID == propertyID && l.Status == entity.LeaseStatusActive {
			return true, nil
		}
	}
	return false, nil
}
func (r *fakeLeaseRepo) ExistsActiveForProperty(propertyID string) (bool, error) {
	for _, l := range r.leases {
		if l.PropertyID == propertyID && l.Status == entity.LeaseStatusActive {
			return true, nil
		}
	}
	return false, nil
}
func (r *fakeLeaseRepo) Update(l *entity.LeaseAgreement) error {
	r.leases[l.ID] = l
	return nil
}
func (r *fakeLeaseRepo) UpdateStatus(id, status string) error {
	l, ok := r.leases[id]
	if !ok {
		return domain.ErrNotFound
	}
	l.Status = status
	return nil
}
func (r *fakeLeaseRepo) Delete(id string) error {
	delete(r.leases, id)
	return nil
}

type fakeUnitRepo struct {
	units map[string]*entity.PropertyUnit
}

func (r *fakeUnitRepo) Create(u *entity.PropertyUnit) error { r.units[u.ID] = u; return nil }
func (r *fakeUnitRepo) GetByID(id string) (*entity.PropertyUnit, error) {
	return r.units[id], nil
}
func (r *fakeUnitRepo) ListByProperty(string) ([]*entity.PropertyUnit, error) { return nil, nil }
func (r *fakeUnitRepo) CountByProperty(string) (int, error)                   { return 0, nil }
func (r *fakeUnitRepo) Update(u *entity.PropertyUnit) error                   { r.units[u.ID] = u; return nil }
func (r *fakeUnitRepo) SetAvailability(id string, available bool) error {
	u, ok := r.units[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.IsAvailable = available
	return nil
}
func (r *fakeUnitRepo) Delete(id string) error { delete(r.units, id); return nil }

type fakePropRepo struct {
	props map[string]*entity.Property
}

func (r *fakePropRepo) Create(p *entity.Property) error { r.props[p.ID] = p; return nil }
func (r *fakePropRepo) GetByID(id string) (*entity.Property, error) {
	return r.props[id], nil
}
func (r *fakePropRepo) ListByOwner(string, int, int) ([]*entity.Property, error) { return nil, nil }
func (r *fakePropRepo) CountAvailableByOwner(string) (int, error)                { return 0, nil }
func (r *fakePropRepo) Update(p *entity.Property) error                          { r.props[p.ID] = p; return nil }
func (r *fakePropRepo) Delete(id string) error                                   { delete(r.props, id); return nil }

type fakeTenantRepo struct {
	tenants map[string]*entity.Tenant
}

func (r *fakeTenantRepo) Create(tn *entity.Tenant) error { r.tenants[tn.ID] = tn; return nil }
func (r *fakeTenantRepo) GetByID(id string) (*entity.Tenant, error) {
	return r.tenants[id], nil
}
func (r *fakeTenantRepo) GetByUserID(userID string) (*entity.Tenant, error) {
	for _, tn := range r.tenants {
		if tn.UserID == userID {
			return tn, nil
		}
	}
	return nil, nil
}

type fakeTPRepo struct {
	relations map[string]*entity.TenantProperty // key tenant|property
}

func (r *fakeTPRepo) Create(tp *entity.TenantProperty) error {
	key := tp.TenantID + "|" + tp.PropertyID
	if _, ok := r.relations[key]; ok {
		return domain.ErrDuplicate
	}
	r.relations[key] = tp
	return nil
}
func (r *fakeTPRepo) GetByTenantAndProperty(tenantID, propertyID string) (*entity.TenantProperty, error) {
	return r.relations[tenantID+"|"+propertyID], nil
}
func (r *fakeTPRepo) Update(tp *entity.TenantProperty) error {
	r.relations[tp.TenantID+"|"+tp.PropertyID] = tp
	return nil
}

type notified struct {
	recipientID string
	ntype       string
}

type fakeNotifier struct {
	sent []notified
}

func (n *fakeNotifier) Notify(_ context.Context, recipientID, ntype, _, _, _ string) {
	n.sent = append(n.sent, notified{recipientID: recipientID, ntype: ntype})
}

type fakeTxRunner struct {
	leaseRepo *fakeLeaseRepo
	unitRepo  *fakeUnitRepo
	tpRepo    *fakeTPRepo
}

func (t *fakeTxRunner) RunLease(_ context.Context, fn func(
	repository.LeaseRepository,
	repository.UnitRepository,
	repository.TenantPropertyRepository,
) error) error {
	return fn(t.leaseRepo, t.unitRepo, t.tpRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	ownerProfileID  = "owner-1"
	tenantProfileID = "tenant-1"
	tenantUserID    = "user-tenant-1"
	propertyID      = "prop-1"
	unitID          = "unit-1"
)

type fixture struct {
	uc       *lease.LeaseUseCase
	leases   *fakeLeaseRepo
	units    *fakeUnitRepo
	tps      *fakeTPRepo
	notifier *fakeNotifier
}

func newFixture() *fixture {
	f := &fixture{
		leases:   newFakeLeaseRepo(),
		units:    &fakeUnitRepo{units: make(map[string]*entity.PropertyUnit)},
		tps:      &fakeTPRepo{relations: make(map[string]*entity.TenantProperty)},
		notifier: &fakeNotifier{},
	}
	props := &fakePropRepo{props: map[string]*entity.Property{
		propertyID: {ID: propertyID, OwnerID: ownerProfileID, Title: "Edificio Central", PropertyType: entity.PropertyTypeResidential},
	}}
	tenants := &fakeTenantRepo{tenants: map[string]*entity.Tenant{
		tenantProfileID: {ID: tenantProfileID, UserID: tenantUserID},
	}}
	f.units.units[unitID] = &entity.PropertyUnit{
		ID: unitID, PropertyID: propertyID, UnitNumber: "101",
		MonthlyRent: decimal.NewFromInt(500), IsAvailable: true,
	}
	tx := &fakeTxRunner{leaseRepo: f.leases, unitRepo: f.units, tpRepo: f.tps}
	f.uc = lease.NewLeaseUseCase(tx, f.leases, f.units, props, tenants, f.notifier)
	return f
}

func ownerActor() actor.Actor  { return actor.Owner("user-owner-1", ownerProfileID) }
func tenantActor() actor.Actor { return actor.Tenant(tenantUserID, tenantProfileID) }

func createRequest() dto.CreateLeaseRequest {
	return dto.CreateLeaseRequest{
		UnitID:      unitID,
		TenantID:    tenantProfileID,
		StartDate:   "2025-01-01",
		EndDate:     "2025-12-31",
		MonthlyRent: decimal.NewFromInt(500),
		RentDueDay:  5,
	}
}

func (f *fixture) addActiveLease(id string, start, end time.Time) *entity.LeaseAgreement {
	l := &entity.LeaseAgreement{
		ID: id, PropertyID: propertyID, UnitID: unitID, TenantID: tenantProfileID,
		StartDate: start, EndDate: end,
		MonthlyRent: decimal.NewFromInt(500), RentDueDay: 5,
		Status: entity.LeaseStatusActive,
	}
	f.leases.leases[id] = l
	return l
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación
// ──────────────────────────────────────────────────────────────────────────────

// El contrato nace pending, crea la relación inquilino-propiedad y notifica.
func TestCreate_NacePendingYNotifica(t *testing.T) {
	f := newFixture()

	got, err := f.uc.Create(context.Background(), ownerActor(), createRequest())
	require.NoError(t, err)
	assert.Equal(t, entity.LeaseStatusPending, got.Status)

	tp := f.tps.relations[tenantProfileID+"|"+propertyID]
	require.NotNil(t, tp, "debe crearse la relación inquilino-propiedad")
	assert.Equal(t, entity.TenantPropertyStatusPending, tp.Status)
	assert.Nil(t, tp.StartDate, "la relación pendiente todavía no tiene fecha de inicio")

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, tenantUserID, f.notifier.sent[0].recipientID)
	assert.Equal(t, entity.NotificationLeaseCreated, f.notifier.sent[0].ntype)
}

// Dos contratos activos de la misma unidad no pueden solapar fechas.
func TestCreate_SolapamientoRetornaError(t *testing.T) {
	f := newFixture()
	f.addActiveLease("existente", date(2025, time.March, 1), date(2026, time.February, 28))

	_, err := f.uc.Create(context.Background(), ownerActor(), createRequest())
	assert.ErrorIs(t, err, domain.ErrLeaseOverlap)
}

// Rangos disjuntos no bloquean (el contrato existente termina antes).
func TestCreate_RangosDisjuntosPermitidos(t *testing.T) {
	f := newFixture()
	f.addActiveLease("anterior", date(2024, time.January, 1), date(2024, time.June, 30))
	// La unidad del contrato terminado sigue ocupada: liberarla para el nuevo
	f.leases.leases["anterior"].Status = entity.LeaseStatusExpired

	_, err := f.uc.Create(context.Background(), ownerActor(), createRequest())
	assert.NoError(t, err)
}

// Un inquilino con contrato activo en la propiedad no puede tener otro.
func TestCreate_InquilinoConContratoActivo(t *testing.T) {
	f := newFixture()
	// Contrato activo en otra unidad de la misma propiedad
	l := f.addActiveLease("otro", date(2024, time.January, 1), date(2024, time.June, 30))
	l.UnitID = "unit-2"

	_, err := f.uc.Create(context.Background(), ownerActor(), createRequest())
	assert.ErrorIs(t, err, domain.ErrTenantHasActiveLease)
}

func TestCreate_UnidadNoDisponible(t *testing.T) {
	f := newFixture()
	f.units.units[unitID].IsAvailable = false

	_, err := f.uc.Create(context.Background(), ownerActor(), createRequest())
	assert.ErrorIs(t, err, domain.ErrUnitUnavailable)
}

func TestCreate_FechasInvalidas(t *testing.T) {
	f := newFixture()
	in := createRequest()
	in.StartDate = "2025-12-31"
	in.EndDate = "2025-01-01"

	_, err := f.uc.Create(context.Background(), ownerActor(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_OtroPropietarioProhibido(t *testing.T) {
	f := newFixture()
	otro := actor.Owner("user-owner-2", "owner-2")

	_, err := f.uc.Create(context.Background(), otro, createRequest())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Máquina de estados
// ──────────────────────────────────────────────────────────────────────────────

// pending→active ocupa la unidad y activa la relación inquilino-propiedad.
func TestChangeStatus_ActivarOcupaLaUnidad(t *testing.T) {
	f := newFixture()
	l, err := f.uc.Create(context.Background(), ownerActor(), createRequest())
	require.NoError(t, err)

	got, err := f.uc.ChangeStatus(context.Background(), ownerActor(), l.ID, entity.LeaseStatusActive)
	require.NoError(t, err)
	assert.Equal(t, entity.LeaseStatusActive, got.Status)
	assert.False(t, f.units.units[unitID].IsAvailable, "la unidad debe quedar ocupada")

	tp := f.tps.relations[tenantProfileID+"|"+propertyID]
	require.NotNil(t, tp)
	assert.Equal(t, entity.TenantPropertyStatusActive, tp.Status)
	assert.NotNil(t, tp.StartDate, "activar fija la fecha de inicio de la relación")
}

// active→pending está prohibido.
func TestChangeStatus_ActivoAPendingRechazado(t *testing.T) {
	f := newFixture()
	f.addActiveLease("lease-1", date(2025, time.January, 1), date(2025, time.December, 31))

	_, err := f.uc.ChangeStatus(context.Background(), ownerActor(), "lease-1", entity.LeaseStatusPending)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// Terminar libera la unidad.
func TestChangeStatus_TerminarLiberaLaUnidad(t *testing.T) {
	f := newFixture()
	f.addActiveLease("lease-1", date(2025, time.January, 1), date(2025, time.December, 31))
	f.units.units[unitID].IsAvailable = false

	got, err := f.uc.ChangeStatus(context.Background(), ownerActor(), "lease-1", entity.LeaseStatusTerminated)
	require.NoError(t, err)
	assert.Equal(t, entity.LeaseStatusTerminated, got.Status)
	assert.True(t, f.units.units[unitID].IsAvailable, "la unidad debe liberarse")
}

// Los estados terminales no admiten transiciones.
func TestChangeStatus_TerminalNoMuta(t *testing.T) {
	f := newFixture()
	l := f.addActiveLease("lease-1", date(2025, time.January, 1), date(2025, time.December, 31))
	l.Status = entity.LeaseStatusTerminated

	_, err := f.uc.ChangeStatus(context.Background(), ownerActor(), "lease-1", entity.LeaseStatusActive)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// Repetir el estado actual es un no-op, no un error.
func TestChangeStatus_MismoEstadoNoOp(t *testing.T) {
	f := newFixture()
	f.addActiveLease("lease-1", date(2025, time.January, 1), date(2025, time.December, 31))

	got, err := f.uc.ChangeStatus(context.Background(), ownerActor(), "lease-1", entity.LeaseStatusActive)
	require.NoError(t, err)
	assert.Equal(t, entity.LeaseStatusActive, got.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Autorización y borrado
// ──────────────────────────────────────────────────────────────────────────────

// El inquilino ve su contrato pero no lo muta.
func TestTenant_VeSuContratoPeroNoLoMuta(t *testing.T) {
	f := newFixture()
	f.addActiveLease("lease-1", date(2025, time.January, 1), date(2025, time.December, 31))

	got, err := f.uc.GetByID(tenantActor(), "lease-1")
	require.NoError(t, err)
	assert.Equal(t, "lease-1", got.ID)

	_, err = f.uc.Update(tenantActor(), "lease-1", dto.UpdateLeaseRequest{Terms: "nuevo"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.ChangeStatus(context.Background(), tenantActor(), "lease-1", entity.LeaseStatusTerminated)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGetByID_OtroInquilinoProhibido(t *testing.T) {
	f := newFixture()
	f.addActiveLease("lease-1", date(2025, time.January, 1), date(2025, time.December, 31))

	otro := actor.Tenant("user-x", "tenant-x")
	_, err := f.uc.GetByID(otro, "lease-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Eliminar el contrato libera la unidad y notifica la terminación.
func TestDelete_LiberaLaUnidad(t *testing.T) {
	f := newFixture()
	f.addActiveLease("lease-1", date(2025, time.January, 1), date(2025, time.December, 31))
	f.units.units[unitID].IsAvailable = false

	require.NoError(t, f.uc.Delete(context.Background(), ownerActor(), "lease-1"))
	assert.Nil(t, f.leases.leases["lease-1"])
	assert.True(t, f.units.units[unitID].IsAvailable)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, entity.NotificationLeaseTerminated, f.notifier.sent[0].ntype)
}

// Los contratos terminados no se editan.
func TestUpdate_ContratoTerminalRechazado(t *testing.T) {
	f := newFixture()
	l := f.addActiveLease("lease-1", date(2025, time.January, 1), date(2025, time.December, 31))
	l.Status = entity.LeaseStatusExpired

	_, err := f.uc.Update(ownerActor(), "lease-1", dto.UpdateLeaseRequest{Terms: "nuevo"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}
