package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/rentpro/internal/application/dto"
	"github.com/tu-usuario/rentpro/internal/application/subscription"
	"github.com/tu-usuario/rentpro/internal/domain/entity"
)

// SubscriptionHandler maneja las suscripciones del propietario autenticado.
type SubscriptionHandler struct {
	uc *subscription.SubscriptionUseCase
}

// NewSubscriptionHandler construye el handler.
func NewSubscriptionHandler(uc *subscription.SubscriptionUseCase) *SubscriptionHandler {
	return &SubscriptionHandler{uc: uc}
}

// Activate POST /api/subscriptions/activate (propietario)
func (h *SubscriptionHandler) Activate(c *fiber.Ctx) error {
	var in dto.ActivateSubscriptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.PlanID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "plan_id es requerido"})
	}
	sub, err := h.uc.Activate(c.Context(), GetActor(c).ProfileID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSubscriptionResponse(sub))
}

// GetActive GET /api/subscriptions/active
func (h *SubscriptionHandler) GetActive(c *fiber.Ctx) error {
	sub, err := h.uc.VerifyActive(GetActor(c).ProfileID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSubscriptionResponse(sub))
}

// Quota GET /api/subscriptions/quota
func (h *SubscriptionHandler) Quota(c *fiber.Ctx) error {
	quota, err := h.uc.Quota(GetActor(c).ProfileID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(quota)
}

// List GET /api/subscriptions
func (h *SubscriptionHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	subs, err := h.uc.ListByOwner(GetActor(c).ProfileID, page)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.SubscriptionResponse, 0, len(subs))
	for _, s := range subs {
		out = append(out, toSubscriptionResponse(s))
	}
	return c.JSON(out)
}

func toSubscriptionResponse(s *entity.OwnerSubscription) *dto.SubscriptionResponse {
	return &dto.SubscriptionResponse{
		ID:            s.ID,
		OwnerID:       s.OwnerID,
		PlanID:        s.PlanID,
		Status:        s.Status,
		StartDate:     s.StartDate,
		EndDate:       s.EndDate,
		PaymentStatus: s.PaymentStatus,
		PaymentAmount: s.PaymentAmount,
		PaymentDate:   s.PaymentDate,
		CancelledAt:   s.CancelledAt,
		AutoRenew:     s.AutoRenew,
		CreatedAt:     s.CreatedAt,
	}
}
