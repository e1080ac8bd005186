package handler

import (
	"loja-admin/internal/service"

	"github.com/gofiber/fiber/v2"
)

type RevenueHandler struct {
	service service.RevenueService
}

func NewRevenueHandler(s service.RevenueService) *RevenueHandler {
	return &RevenueHandler{service: s}
}

// GET /receita?inicio=YYYY-MM-DD&fim=YYYY-MM-DD
func (h *RevenueHandler) Compute(c *fiber.Ctx) error {
	start, end, err := queryRange(c)
	if err != nil {
		return badRequest(c, "inicio and fim must be dates in YYYY-MM-DD format")
	}
	report, err := h.service.Compute(start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// GET /receita/mensal/:ano
func (h *RevenueHandler) Monthly(c *fiber.Ctx) error {
	year, err := paramInt(c, "ano")
	if err != nil {
		return badRequest(c, "Invalid year")
	}
	months, err := h.service.ComputeMonthly(year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(months)
}

// GET /receita/mensal/:ano/:mes
func (h *RevenueHandler) ForMonth(c *fiber.Ctx) error {
	year, err := paramInt(c, "ano")
	if err != nil {
		return badRequest(c, "Invalid year")
	}
	month, err := paramInt(c, "mes")
	if err != nil {
		return badRequest(c, "Invalid month")
	}
	report, err := h.service.ComputeForMonth(year, month)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}
