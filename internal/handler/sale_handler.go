package handler

import (
	"loja-admin/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SaleHandler struct {
	service service.SaleService
}

func NewSaleHandler(s service.SaleService) *SaleHandler {
	return &SaleHandler{service: s}
}

// POST /vendas
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var req service.SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	sale, err := h.service.Create(&req, actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(sale)
}

// GET /vendas/:id
func (h *SaleHandler) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid sale ID")
	}
	sale, err := h.service.GetByID(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sale)
}

// GET /vendas/periodo?inicio=YYYY-MM-DD&fim=YYYY-MM-DD
func (h *SaleHandler) ListByPeriod(c *fiber.Ctx) error {
	start, end, err := queryRange(c)
	if err != nil {
		return badRequest(c, "inicio and fim must be dates in YYYY-MM-DD format")
	}
	sales, err := h.service.ListByPeriod(start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sales)
}

// GET /vendas/mensal/:ano
func (h *SaleHandler) CountByMonth(c *fiber.Ctx) error {
	year, err := paramInt(c, "ano")
	if err != nil {
		return badRequest(c, "Invalid year")
	}
	counts, err := h.service.CountByMonth(year)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(counts)
}
