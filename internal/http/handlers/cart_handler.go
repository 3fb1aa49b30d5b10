package handlers

import (
	"errors"
	"strconv"

	applog "github.com/Kennyy02/totomotorworx-shop/internal/log"
	"github.com/Kennyy02/totomotorworx-shop/internal/services"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart *services.CartService
}

type cartReq struct {
	ItemID *int64 `json:"itemId"`
}

// POST /addtocart
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var req cartReq
	if err := c.BodyParser(&req); err != nil || req.ItemID == nil {
		return fail(c, fiber.StatusBadRequest, "Item ID required")
	}
	if err := h.Cart.Add(userID(c), *req.ItemID); err != nil {
		return cartError(c, "cart.add.fail", *req.ItemID, err)
	}
	applog.Cart(c, "cart.add", *req.ItemID, 1)
	return c.JSON(fiber.Map{"success": true, "message": "Item added to cart"})
}

// POST /removefromcart
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	var req cartReq
	if err := c.BodyParser(&req); err != nil || req.ItemID == nil {
		return fail(c, fiber.StatusBadRequest, "Item ID required")
	}
	if err := h.Cart.Remove(userID(c), *req.ItemID); err != nil {
		return cartError(c, "cart.remove.fail", *req.ItemID, err)
	}
	applog.Cart(c, "cart.remove", *req.ItemID, -1)
	return c.JSON(fiber.Map{"success": true, "message": "Item removed from cart"})
}

// POST /getcart
func (h *CartHandler) Get(c *fiber.Ctx) error {
	cart, err := h.Cart.Get(userID(c))
	if err != nil {
		return cartError(c, "cart.get.fail", 0, err)
	}
	// Clients expect string keys, matching the stored blob shape.
	out := make(map[string]int, len(cart))
	for id, qty := range cart {
		out[strconv.FormatInt(id, 10)] = qty
	}
	return c.JSON(out)
}

func cartError(c *fiber.Ctx, action string, item int64, err error) error {
	if errors.Is(err, services.ErrUserNotFound) {
		return fail(c, fiber.StatusNotFound, "User not found")
	}
	applog.Error(c, action, err, map[string]any{"item": item})
	return fail(c, fiber.StatusInternalServerError, "Failed to update cart")
}
