package ports

import "context"

// CheckoutParams parámetros para crear una sesión de pago alojada.
// AmountMinor va en la unidad mínima de la moneda (centavos), obtenida por
// multiplicación entera, nunca por redondeo flotante.
type CheckoutParams struct {
	SecretKey   string // credencial de la cuenta que cobra (BankAccount o plataforma)
	AmountMinor int64
	Currency    string
	Name        string
	Description string
	SuccessURL  string
	CancelURL   string
	Metadata    map[string]string
}

// CheckoutSession sesión de pago creada en el proveedor.
type CheckoutSession struct {
	ID            string
	URL           string
	PaymentIntent string
}

// SessionStatus estado de una sesión consultada en el proveedor.
type SessionStatus struct {
	ID            string
	PaymentStatus string // "paid", "unpaid", "no_payment_required"
	PaymentIntent string
}

// ProviderEvent evento de webhook ya verificado.
type ProviderEvent struct {
	ID   string
	Type string
	// Campos extraídos del objeto del evento
	SessionID     string
	PaymentIntent string
	PaymentMethod string
	Metadata      map[string]string
}

// PaymentProvider define el puerto de salida hacia la pasarela de pagos.
// El núcleo solo conoce este contrato; el adaptador concreto (Stripe) vive en
// infrastructure. El contexto debe llevar timeout: un timeout del proveedor es
// "resultado desconocido" y se propaga como error reintentable, nunca se asume
// éxito.
type PaymentProvider interface {
	// CreateCheckoutSession crea una sesión de pago alojada y devuelve su URL.
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*CheckoutSession, error)
	// RetrieveSession consulta el estado de pago de una sesión existente.
	RetrieveSession(ctx context.Context, secretKey, sessionID string) (*SessionStatus, error)
	// VerifyWebhook valida la firma del payload contra el secret configurado y
	// devuelve el evento decodificado; error si la firma no verifica.
	VerifyWebhook(payload []byte, signature, secret string) (*ProviderEvent, error)
	// CancelSubscription cancela una suscripción recurrente en el proveedor.
	CancelSubscription(ctx context.Context, subscriptionID string) error
}
