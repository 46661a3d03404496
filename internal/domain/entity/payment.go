package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pago.
const (
	PaymentStatusPending    = "pending"
	PaymentStatusProcessing = "processing"
	PaymentStatusCompleted  = "completed"
	PaymentStatusFailed     = "failed"
	PaymentStatusRefunded   = "refunded"
)

// Conceptos de pago.
const (
	PaymentTypeRent            = "rent"
	PaymentTypeSecurityDeposit = "security_deposit"
	PaymentTypeMaintenance     = "maintenance"
	PaymentTypeLateFee         = "late_fee"
	PaymentTypeSubscription    = "subscription"
)

// Métodos de pago registrados.
const (
	PaymentMethodStripe       = "stripe"
	PaymentMethodCash         = "cash"
	PaymentMethodBankTransfer = "bank_transfer"
)

// Payment transacción monetaria registrada: liquidación de una factura, pago
// manual (cash/transferencia) o cuota de suscripción. TransactionID es único:
// es la clave natural de deduplicación ante entregas repetidas del webhook.
type Payment struct {
	ID          string
	LeaseID     string // vacío para pagos de suscripción
	PaymentType string // ver constantes PaymentType*
	Amount      decimal.Decimal
	DueDate     *time.Time
	PaymentDate *time.Time
	Status      string // ver constantes PaymentStatus*
	Method      string // ver constantes PaymentMethod*
	PaidByID    string // usuario que pagó

	TransactionID         string
	StripePaymentIntentID string
	StripePaymentMethodID string

	CreatedAt time.Time
	UpdatedAt time.Time
}
