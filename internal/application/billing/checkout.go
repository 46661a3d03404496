package billing

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/rentpro/internal/application/dto"
	"github.com/tu-usuario/rentpro/internal/application/ports"
	"github.com/tu-usuario/rentpro/internal/domain"
	"github.com/tu-usuario/rentpro/internal/domain/actor"
	"github.com/tu-usuario/rentpro/internal/domain/entity"
)

// minorUnits convierte un monto decimal a la unidad mínima de la moneda por
// multiplicación entera (12.34 -> 1234), nunca por redondeo flotante.
func minorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).IntPart()
}

// chargeAccount resuelve la cuenta Stripe que cobra la factura: la del
// contrato si está configurada, si no la cuenta activa de la propiedad.
// ErrPaymentAccountMisconfigured si no hay cuenta usable.
func (uc *BillingUseCase) chargeAccount(invoice *entity.Invoice) (*entity.BankAccount, error) {
	if invoice.BankAccountID != "" {
		account, err := uc.accountRepo.GetByID(invoice.BankAccountID)
		if err != nil {
			return nil, err
		}
		if account != nil && account.IsUsable() {
			return account, nil
		}
	}
	account, err := uc.accountRepo.GetActiveByPropertyAndType(invoice.PropertyID, entity.BankAccountTypeStripe)
	if err != nil {
		return nil, err
	}
	if account == nil || !account.IsUsable() {
		return nil, domain.ErrPaymentAccountMisconfigured
	}
	return account, nil
}

// InitiateCheckout crea una sesión de pago alojada para una factura pendiente
// y persiste la correlación (checkout id + URL). ErrProviderError si el
// gateway falla.
func (uc *BillingUseCase) InitiateCheckout(ctx context.Context, act actor.Actor, invoiceID string) (*dto.CheckoutResponse, error) {
	invoice, err := uc.GetInvoice(act, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.IsPaid() {
		return nil, domain.ErrConflict
	}
	if invoice.Status == entity.InvoiceStatusCancelled {
		return nil, domain.ErrConflict
	}
	account, err := uc.chargeAccount(invoice)
	if err != nil {
		return nil, err
	}

	session, err := uc.provider.CreateCheckoutSession(ctx, ports.CheckoutParams{
		SecretKey:   account.SecretKey,
		AmountMinor: minorUnits(invoice.TotalAmount),
		Currency:    uc.cfg.Currency,
		Name:        "Factura " + invoice.InvoiceNumber,
		Description: invoice.Description,
		SuccessURL:  uc.cfg.SuccessURL,
		CancelURL:   uc.cfg.CancelURL,
		Metadata: map[string]string{
			"invoice_id":     invoice.ID,
			"invoice_number": invoice.InvoiceNumber,
			"lease_id":       invoice.LeaseID,
		},
	})
	if err != nil {
		uc.log.Error().Err(err).Str("invoice_id", invoice.ID).Msg("fallo creando checkout en el gateway")
		return nil, domain.ErrProviderError
	}

	invoice.StripeCheckoutID = session.ID
	invoice.StripePaymentIntentID = session.PaymentIntent
	invoice.PaymentURL = session.URL
	invoice.BankAccountID = account.ID
	if err := uc.invoiceRepo.UpdateCheckout(invoice); err != nil {
		return nil, err
	}
	return &dto.CheckoutResponse{
		InvoiceID:   invoice.ID,
		CheckoutID:  session.ID,
		CheckoutURL: session.URL,
	}, nil
}

// VerifyCheckout se invoca cuando el usuario regresa del gateway. La fuente de
// verdad es el proveedor: se consulta la sesión y solo si reporta paid se
// confirma el pago. Idempotente frente al webhook que llegue por su lado.
func (uc *BillingUseCase) VerifyCheckout(ctx context.Context, act actor.Actor, sessionID string) (*dto.VerifyCheckoutResponse, error) {
	invoice, err := uc.invoiceRepo.GetByCheckoutID(sessionID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.authorizeInvoice(act, invoice); err != nil {
		return nil, err
	}
	if invoice.IsPaid() {
		return &dto.VerifyCheckoutResponse{InvoiceID: invoice.ID, Status: invoice.Status, Paid: true}, nil
	}
	account, err := uc.chargeAccount(invoice)
	if err != nil {
		return nil, err
	}
	status, err := uc.provider.RetrieveSession(ctx, account.SecretKey, sessionID)
	if err != nil {
		uc.log.Error().Err(err).Str("session_id", sessionID).Msg("fallo consultando sesión en el gateway")
		return nil, domain.ErrProviderError
	}
	if status.PaymentStatus != "paid" {
		return &dto.VerifyCheckoutResponse{InvoiceID: invoice.ID, Status: invoice.Status, Paid: false}, nil
	}
	if err := uc.ConfirmPayment(ctx, invoice.ID, sessionID, status.PaymentIntent, "", entity.PaymentMethodStripe); err != nil {
		return nil, err
	}
	return &dto.VerifyCheckoutResponse{InvoiceID: invoice.ID, Status: entity.InvoiceStatusPaid, Paid: true}, nil
}

// ProcessWebhook procesa un evento del gateway. La firma se verifica con el
// secret configurado; una firma inválida devuelve ErrUnauthorized (HTTP 400
// en el handler: el gateway no debe reintentar). Tipos desconocidos se
// ignoran sin error. Un fallo de proceso se propaga para que el gateway
// reintente la entrega.
func (uc *BillingUseCase) ProcessWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := uc.provider.VerifyWebhook(payload, signature, uc.cfg.WebhookSecret)
	if err != nil {
		uc.log.Warn().Err(err).Msg("webhook con firma inválida")
		return domain.ErrUnauthorized
	}
	if event.Type != "checkout.session.completed" {
		uc.log.Debug().Str("type", event.Type).Msg("evento de webhook ignorado")
		return nil
	}
	invoice, err := uc.invoiceRepo.GetByCheckoutID(event.SessionID)
	if err != nil {
		return err
	}
	if invoice == nil {
		// Sesión de otro sistema o factura borrada: ack para no reintentar.
		uc.log.Warn().Str("session_id", event.SessionID).Msg("webhook sin factura asociada")
		return nil
	}
	return uc.ConfirmPayment(ctx, invoice.ID, event.SessionID, event.PaymentIntent, event.PaymentMethod, entity.PaymentMethodStripe)
}
