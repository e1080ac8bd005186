package handler

import (
	"strconv"

	"loja-admin/internal/model"
	"loja-admin/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	service service.CatalogService
}

func NewProductHandler(s service.CatalogService) *ProductHandler {
	return &ProductHandler{service: s}
}

// GET /produtos
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.service.ListActive()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}

// GET /produtos/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}
	product, err := h.service.GetActive(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// POST /produtos
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in service.CreateProductInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	product, err := h.service.Create(&in, actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(product)
}

// Update serves both PUT /produtos/:id and PUT /produtos/:id/up.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}

	var in service.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "Invalid JSON")
	}

	product, err := h.service.Update(id, &in, actor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// DELETE /produtos/:id/deletar
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}
	if err := h.service.Deactivate(id, actor(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(204)
}

// PUT /produtos/:id/reativar
func (h *ProductHandler) Reactivate(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}
	if err := h.service.Reactivate(id, actor(c)); err != nil {
		return respondError(c, err)
	}
	return c.Status(200).Send(nil)
}

// POST /produtos/:id/adicionar-estoque?quantidade=N
func (h *ProductHandler) AddStock(c *fiber.Ctx) error {
	return h.adjustStock(c, h.service.AddStock)
}

// POST /produtos/:id/remover-estoque?quantidade=N
func (h *ProductHandler) RemoveStock(c *fiber.Ctx) error {
	return h.adjustStock(c, h.service.RemoveStock)
}

func (h *ProductHandler) adjustStock(c *fiber.Ctx, op func(id uuid.UUID, quantity int, actor string) error) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}
	quantity, err := strconv.Atoi(c.Query("quantidade"))
	if err != nil {
		return badRequest(c, "quantidade must be an integer")
	}
	if err := op(id, quantity, actor(c)); err != nil {
		return respondError(c, err)
	}
	return c.Status(200).Send(nil)
}

// GET /produtos/:id/movimentacoes
func (h *ProductHandler) Movements(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}
	movements, err := h.service.ListMovements(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(movements)
}

// GET /produtos/pesquisar?nome&precoMin&precoMax&comEstoque
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	filter := model.ProductFilter{Name: c.Query("nome")}

	if v := c.Query("precoMin"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return badRequest(c, "precoMin must be a decimal number")
		}
		filter.MinPrice = &d
	}
	if v := c.Query("precoMax"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return badRequest(c, "precoMax must be a decimal number")
		}
		filter.MaxPrice = &d
	}
	if v := c.Query("comEstoque"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return badRequest(c, "comEstoque must be true or false")
		}
		filter.InStockOnly = b
	}

	products, err := h.service.Search(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}
