package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una suscripción de propietario.
const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusExpired   = "expired"
	SubscriptionStatusCancelled = "cancelled"
)

// OwnerSubscription suscripción contratada por un propietario sobre un plan.
// Invariante: a lo sumo una suscripción con status=active y end_date>now por
// propietario; activar una nueva cancela atómicamente la anterior.
type OwnerSubscription struct {
	ID            string
	OwnerID       string
	PlanID        string
	Status        string // ver constantes SubscriptionStatus*
	StartDate     time.Time
	EndDate       time.Time
	PaymentStatus string // pending, completed, failed, refunded
	PaymentAmount decimal.Decimal
	PaymentDate   *time.Time
	CancelledAt   *time.Time

	// Correlación con el proveedor de pagos
	StripePaymentIntentID string
	StripeCustomerID      string
	StripeSubscriptionID  string

	AutoRenew bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCurrent indica si la suscripción está activa y vigente en el instante dado.
func (s *OwnerSubscription) IsCurrent(now time.Time) bool {
	return s.Status == SubscriptionStatusActive && s.EndDate.After(now)
}

// SubscriptionEndDate calcula el fin de vigencia: inicio + 30 días por mes de
// duración del plan. Se calcula en el constructor del caso de uso, nunca en un
// hook de persistencia.
func SubscriptionEndDate(start time.Time, durationMonths int) time.Time {
	return start.Add(time.Duration(durationMonths) * 30 * 24 * time.Hour)
}
