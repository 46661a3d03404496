package stripegw

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
	"github.com/stripe/stripe-go/v78/webhook"
	"github.com/tu-usuario/rentpro/internal/application/ports"
	"github.com/tu-usuario/rentpro/pkg/logger"
)

var _ ports.PaymentProvider = (*Client)(nil)

// Client adaptador de Stripe para el puerto PaymentProvider. Las sesiones de
// checkout se crean con la credencial de la cuenta de cobro de cada propiedad;
// platformKey solo se usa para operaciones de plataforma (cancelar
// suscripciones SaaS).
type Client struct {
	platformKey string
	log         *logger.Logger
}

// New construye el adaptador.
func New(platformKey string, log *logger.Logger) *Client {
	return &Client{platformKey: platformKey, log: log}
}

// api construye un cliente del SDK con la credencial dada.
func api(secretKey string) *client.API {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return sc
}

// CreateCheckoutSession crea una sesión de pago alojada (mode=payment).
func (c *Client) CreateCheckoutSession(ctx context.Context, p ports.CheckoutParams) (*ports.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(p.SuccessURL),
		CancelURL:  stripe.String(p.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(p.Currency),
					UnitAmount: stripe.Int64(p.AmountMinor),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(p.Name),
						Description: stripe.String(p.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}

	sess, err := api(p.SecretKey).CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: crear checkout session: %w", err)
	}
	out := &ports.CheckoutSession{ID: sess.ID, URL: sess.URL}
	if sess.PaymentIntent != nil {
		out.PaymentIntent = sess.PaymentIntent.ID
	}
	c.log.Debug().Str("session_id", sess.ID).Msg("checkout session creada")
	return out, nil
}

// RetrieveSession consulta el estado de pago de una sesión existente.
func (c *Client) RetrieveSession(ctx context.Context, secretKey, sessionID string) (*ports.SessionStatus, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	sess, err := api(secretKey).CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe: consultar checkout session: %w", err)
	}
	out := &ports.SessionStatus{
		ID:            sess.ID,
		PaymentStatus: string(sess.PaymentStatus),
	}
	if sess.PaymentIntent != nil {
		out.PaymentIntent = sess.PaymentIntent.ID
	}
	return out, nil
}

// VerifyWebhook valida la firma del payload y decodifica el evento. Para
// checkout.session.completed extrae sesión, payment intent y metadata.
func (c *Client) VerifyWebhook(payload []byte, signature, secret string) (*ports.ProviderEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, secret)
	if err != nil {
		return nil, fmt.Errorf("stripe: firma de webhook inválida: %w", err)
	}
	out := &ports.ProviderEvent{
		ID:   event.ID,
		Type: string(event.Type),
	}
	if event.Type == "checkout.session.completed" {
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return nil, fmt.Errorf("stripe: decodificar checkout session del evento: %w", err)
		}
		out.SessionID = sess.ID
		out.Metadata = sess.Metadata
		if sess.PaymentIntent != nil {
			out.PaymentIntent = sess.PaymentIntent.ID
		}
	}
	return out, nil
}

// CancelSubscription cancela una suscripción recurrente con la credencial de
// plataforma.
func (c *Client) CancelSubscription(ctx context.Context, subscriptionID string) error {
	params := &stripe.SubscriptionCancelParams{}
	params.Context = ctx
	if _, err := api(c.platformKey).Subscriptions.Cancel(subscriptionID, params); err != nil {
		return fmt.Errorf("stripe: cancelar suscripción: %w", err)
	}
	return nil
}
