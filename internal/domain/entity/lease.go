package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un contrato de arrendamiento.
const (
	LeaseStatusPending    = "pending"
	LeaseStatusActive     = "active"
	LeaseStatusTerminated = "terminated"
	LeaseStatusExpired    = "expired"
)

// LeaseAgreement contrato que vincula un inquilino a una unidad por un período
// y una renta mensual. Invariantes: start_date < end_date; a lo sumo un
// contrato activo por unidad con rangos de fechas solapados; un inquilino
// tiene a lo sumo un contrato activo por propiedad.
type LeaseAgreement struct {
	ID              string
	PropertyID      string
	UnitID          string
	TenantID        string
	BankAccountID   string // cuenta de cobro usada para las facturas de renta
	StartDate       time.Time
	EndDate         time.Time
	MonthlyRent     decimal.Decimal
	SecurityDeposit decimal.Decimal
	RentDueDay      int    // día del mes en que vence la renta (1-31)
	Status          string // ver constantes LeaseStatus*
	Terms           string
	SignedByTenant  bool
	SignedByOwner   bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsTerminal indica si el contrato está en un estado sin más transiciones.
func (l *LeaseAgreement) IsTerminal() bool {
	return l.Status == LeaseStatusTerminated || l.Status == LeaseStatusExpired
}

// CanTransitionTo valida la máquina de estados del contrato:
// pending → active → {terminated, expired}. Un contrato activo no vuelve a
// pending y los estados terminales no mutan.
func (l *LeaseAgreement) CanTransitionTo(newStatus string) bool {
	if l.IsTerminal() {
		return false
	}
	if l.Status == LeaseStatusActive && newStatus == LeaseStatusPending {
		return false
	}
	switch newStatus {
	case LeaseStatusPending, LeaseStatusActive, LeaseStatusTerminated, LeaseStatusExpired:
		return true
	}
	return false
}

// Overlaps verifica intersección de rangos cerrados de fechas:
// new.start <= existing.end AND new.end >= existing.start.
func (l *LeaseAgreement) Overlaps(start, end time.Time) bool {
	return !start.After(l.EndDate) && !end.Before(l.StartDate)
}

// Estados de la relación inquilino-propiedad.
const (
	TenantPropertyStatusPending  = "pending"
	TenantPropertyStatusActive   = "active"
	TenantPropertyStatusInactive = "inactive"
)

// TenantProperty relación entre un inquilino y una propiedad. El registro de
// inquilino iniciado por el propietario la crea activa de inmediato; por otras
// vías nace pending. Única por par (tenant, property).
type TenantProperty struct {
	ID         string
	TenantID   string
	PropertyID string
	Status     string // ver constantes TenantPropertyStatus*
	StartDate  *time.Time
	EndDate    *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
