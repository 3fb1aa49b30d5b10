package handlers

import (
	"errors"

	applog "github.com/Kennyy02/totomotorworx-shop/internal/log"
	"github.com/Kennyy02/totomotorworx-shop/internal/services"
	"github.com/Kennyy02/totomotorworx-shop/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	Inv *services.InventoryService
}

// GET /inventory (admin)
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	prods, err := h.Inv.List()
	if err != nil {
		applog.Error(c, "admin.inventory.list.fail", err, nil)
		return fail(c, fiber.StatusInternalServerError, "Database query failed for products")
	}
	return c.JSON(prods)
}

type stockReq struct {
	Stock any `json:"stock"`
}

// PUT /inventory/:id (admin)
func (h *InventoryHandler) SetStock(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusBadRequest, "invalid product id")
	}
	var req stockReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	stock, okStock := validate.Stock(req.Stock)
	if !okStock {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid stock value"})
	}

	if err := h.Inv.SetStock(id, stock); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "Product not found"})
		}
		applog.Error(c, "admin.inventory.save.fail", err, map[string]any{"product": id, "stock": stock})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to update stock"})
	}
	applog.Audit(c, "admin.inventory.save", map[string]any{"product": id, "stock": stock})
	return c.JSON(fiber.Map{"success": true, "message": "Stock updated successfully"})
}
