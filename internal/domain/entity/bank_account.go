package entity

import "time"

// Tipos y estados de cuentas de cobro por propiedad.
const (
	BankAccountTypeStripe = "Stripe"
	BankAccountTypePaypal = "Paypal"

	BankAccountStatusActive   = "Active"
	BankAccountStatusInactive = "Inactive"

	BankAccountModeSandbox = "Sandbox"
	BankAccountModeLive    = "Live"
)

// BankAccount credencial del proveedor de pagos configurada en una propiedad.
// Los cobros de renta de las facturas de esa propiedad se procesan con esta
// cuenta, no con la credencial de plataforma.
type BankAccount struct {
	ID          string
	PropertyID  string
	Title       string
	AccountType string // ver constantes BankAccountType*
	Status      string // ver constantes BankAccountStatus*
	AccountMode string // ver constantes BankAccountMode*
	ClientID    string
	SecretKey   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsUsable indica si la cuenta puede iniciar cobros (activa y con secret).
func (b *BankAccount) IsUsable() bool {
	return b.Status == BankAccountStatusActive && b.SecretKey != ""
}
