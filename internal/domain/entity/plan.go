package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Niveles de plan de suscripción.
const (
	PlanTierBasic      = "basic"
	PlanTierPremium    = "premium"
	PlanTierEnterprise = "enterprise"
)

// SubscriptionPlan plan SaaS que contrata un propietario. Define los cupos de
// propiedades y de unidades por propiedad. Un plan referenciado por una
// suscripción activa no se elimina; solo se desactiva.
type SubscriptionPlan struct {
	ID             string
	Name           string
	Tier           string // ver constantes PlanTier*
	Price          decimal.Decimal
	StripePriceID  string
	DurationMonths int // duración del período contratado
	MaxProperties  int
	MaxUnits       int // unidades máximas por propiedad
	Description    string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
