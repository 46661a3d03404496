package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/rentpro/internal/application/dto"
	"github.com/tu-usuario/rentpro/internal/application/subscription"
	"github.com/tu-usuario/rentpro/internal/domain/entity"
)

// PlanHandler maneja la administración de planes (superadmin) y su listado
// público para propietarios.
type PlanHandler struct {
	uc *subscription.PlanUseCase
}

// NewPlanHandler construye el handler.
func NewPlanHandler(uc *subscription.PlanUseCase) *PlanHandler {
	return &PlanHandler{uc: uc}
}

// Create POST /api/plans (superadmin)
func (h *PlanHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePlanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" || in.DurationMonths < 1 || in.MaxProperties < 1 || in.MaxUnits < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name, duration_months, max_properties y max_units son requeridos"})
	}
	plan, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPlanResponse(plan))
}

// List GET /api/plans
func (h *PlanHandler) List(c *fiber.Ctx) error {
	plans, err := h.uc.ListActive()
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, toPlanResponse(p))
	}
	return c.JSON(out)
}

// GetByID GET /api/plans/:id
func (h *PlanHandler) GetByID(c *fiber.Ctx) error {
	plan, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toPlanResponse(plan))
}

// Update PUT /api/plans/:id (superadmin)
func (h *PlanHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePlanRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	plan, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toPlanResponse(plan))
}

// Delete DELETE /api/plans/:id (superadmin). Un plan referenciado devuelve 409.
func (h *PlanHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toPlanResponse(p *entity.SubscriptionPlan) *dto.PlanResponse {
	return &dto.PlanResponse{
		ID:             p.ID,
		Name:           p.Name,
		Tier:           p.Tier,
		Price:          p.Price,
		StripePriceID:  p.StripePriceID,
		DurationMonths: p.DurationMonths,
		MaxProperties:  p.MaxProperties,
		MaxUnits:       p.MaxUnits,
		Description:    p.Description,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
	}
}
