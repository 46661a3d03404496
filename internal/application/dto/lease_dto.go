package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLeaseRequest body para POST /api/leases. Las fechas van en formato
// YYYY-MM-DD; rent_due_day se ajusta al último día en meses cortos.
type CreateLeaseRequest struct {
	UnitID          string          `json:"unit_id" validate:"required,uuid"`
	TenantID        string          `json:"tenant_id" validate:"required,uuid"`
	BankAccountID   string          `json:"bank_account_id" validate:"omitempty,uuid"`
	StartDate       string          `json:"start_date" validate:"required"`
	EndDate         string          `json:"end_date" validate:"required"`
	MonthlyRent     decimal.Decimal `json:"monthly_rent" validate:"required"`
	SecurityDeposit decimal.Decimal `json:"security_deposit"`
	RentDueDay      int             `json:"rent_due_day" validate:"required,min=1,max=31"`
	Terms           string          `json:"terms" validate:"omitempty,max=5000"`
}

// UpdateLeaseRequest body para PUT /api/leases/:id (solo contratos no terminales).
type UpdateLeaseRequest struct {
	EndDate         string          `json:"end_date" validate:"omitempty"`
	MonthlyRent     decimal.Decimal `json:"monthly_rent"`
	SecurityDeposit decimal.Decimal `json:"security_deposit"`
	RentDueDay      int             `json:"rent_due_day" validate:"omitempty,min=1,max=31"`
	Terms           string          `json:"terms" validate:"omitempty,max=5000"`
}

// ChangeLeaseStatusRequest body para PATCH /api/leases/:id/status.
type ChangeLeaseStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending active terminated expired"`
}

// LeaseResponse contrato en respuestas.
type LeaseResponse struct {
	ID              string          `json:"id"`
	PropertyID      string          `json:"property_id"`
	UnitID          string          `json:"unit_id"`
	TenantID        string          `json:"tenant_id"`
	BankAccountID   string          `json:"bank_account_id,omitempty"`
	StartDate       time.Time       `json:"start_date"`
	EndDate         time.Time       `json:"end_date"`
	MonthlyRent     decimal.Decimal `json:"monthly_rent"`
	SecurityDeposit decimal.Decimal `json:"security_deposit"`
	RentDueDay      int             `json:"rent_due_day"`
	Status          string          `json:"status"`
	Terms           string          `json:"terms,omitempty"`
	SignedByTenant  bool            `json:"signed_by_tenant"`
	SignedByOwner   bool            `json:"signed_by_owner"`
	NextPaymentDate *time.Time      `json:"next_payment_date,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// TenantPropertyResponse relación inquilino-propiedad en respuestas.
type TenantPropertyResponse struct {
	ID         string     `json:"id"`
	TenantID   string     `json:"tenant_id"`
	PropertyID string     `json:"property_id"`
	Status     string     `json:"status"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
}
