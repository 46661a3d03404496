package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/rentpro/internal/application/billing"
	"github.com/tu-usuario/rentpro/internal/application/dto"
	"github.com/tu-usuario/rentpro/internal/domain"
)

// WebhookHandler recibe los eventos del gateway de pagos. Ruta pública: la
// autenticación es la firma del payload.
type WebhookHandler struct {
	uc *billing.BillingUseCase
}

// NewWebhookHandler construye el handler.
func NewWebhookHandler(uc *billing.BillingUseCase) *WebhookHandler {
	return &WebhookHandler{uc: uc}
}

// Handle POST /api/webhooks/stripe
// 400 con firma inválida (el gateway no reintenta), 200 en eventos ignorados
// o ya procesados, 500 en fallo de proceso (el gateway reintenta la entrega).
func (h *WebhookHandler) Handle(c *fiber.Ctx) error {
	signature := c.Get("Stripe-Signature")
	if signature == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_SIGNATURE", Message: "falta el header Stripe-Signature"})
	}
	err := h.uc.ProcessWebhook(c.Context(), c.Body(), signature)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_SIGNATURE", Message: "firma inválida"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo procesar el evento"})
	}
	return c.SendStatus(fiber.StatusOK)
}
