package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePlanRequest body para POST /api/plans (solo superadmin).
type CreatePlanRequest struct {
	Name           string          `json:"name" validate:"required,min=1,max=100"`
	Tier           string          `json:"tier" validate:"required,oneof=basic premium enterprise"`
	Price          decimal.Decimal `json:"price" validate:"required"`
	StripePriceID  string          `json:"stripe_price_id" validate:"omitempty,max=100"`
	DurationMonths int             `json:"duration_months" validate:"required,min=1"`
	MaxProperties  int             `json:"max_properties" validate:"required,min=1"`
	MaxUnits       int             `json:"max_units" validate:"required,min=1"`
	Description    string          `json:"description" validate:"omitempty,max=500"`
}

// UpdatePlanRequest body para PUT /api/plans/:id.
type UpdatePlanRequest struct {
	Name          string          `json:"name" validate:"omitempty,min=1,max=100"`
	Price         decimal.Decimal `json:"price"`
	StripePriceID string          `json:"stripe_price_id" validate:"omitempty,max=100"`
	MaxProperties int             `json:"max_properties" validate:"omitempty,min=1"`
	MaxUnits      int             `json:"max_units" validate:"omitempty,min=1"`
	Description   string          `json:"description" validate:"omitempty,max=500"`
	IsActive      *bool           `json:"is_active"`
}

// PlanResponse plan en respuestas.
type PlanResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Tier           string          `json:"tier"`
	Price          decimal.Decimal `json:"price"`
	StripePriceID  string          `json:"stripe_price_id,omitempty"`
	DurationMonths int             `json:"duration_months"`
	MaxProperties  int             `json:"max_properties"`
	MaxUnits       int             `json:"max_units"`
	Description    string          `json:"description,omitempty"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ActivateSubscriptionRequest body para POST /api/subscriptions/activate.
// El monto cobrado sale del plan, nunca del cliente.
type ActivateSubscriptionRequest struct {
	PlanID          string `json:"plan_id" validate:"required,uuid"`
	PaymentIntentID string `json:"payment_intent_id" validate:"omitempty,max=100"`
	CustomerID      string `json:"customer_id" validate:"omitempty,max=100"`
	SubscriptionID  string `json:"subscription_id" validate:"omitempty,max=100"`
	AutoRenew       bool   `json:"auto_renew"`
}

// SubscriptionResponse suscripción en respuestas.
type SubscriptionResponse struct {
	ID            string          `json:"id"`
	OwnerID       string          `json:"owner_id"`
	PlanID        string          `json:"plan_id"`
	Plan          *PlanResponse   `json:"plan,omitempty"`
	Status        string          `json:"status"`
	StartDate     time.Time       `json:"start_date"`
	EndDate       time.Time       `json:"end_date"`
	PaymentStatus string          `json:"payment_status"`
	PaymentAmount decimal.Decimal `json:"payment_amount"`
	PaymentDate   *time.Time      `json:"payment_date,omitempty"`
	CancelledAt   *time.Time      `json:"cancelled_at,omitempty"`
	AutoRenew     bool            `json:"auto_renew"`
	CreatedAt     time.Time       `json:"created_at"`
}

// QuotaResponse cupos del plan activo y su uso actual.
type QuotaResponse struct {
	MaxProperties  int `json:"max_properties"`
	UsedProperties int `json:"used_properties"`
	MaxUnits       int `json:"max_units"`
}
