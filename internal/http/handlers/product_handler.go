package handlers

import (
	applog "github.com/Kennyy02/totomotorworx-shop/internal/log"
	"github.com/Kennyy02/totomotorworx-shop/internal/services"
	"github.com/Kennyy02/totomotorworx-shop/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// GET /products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	prods, err := h.Catalog.AllProducts()
	if err != nil {
		applog.Error(c, "products.list.fail", err, nil)
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch products")
	}
	return c.JSON(prods)
}

// GET /products_paginated?page=&limit=
func (h *ProductHandler) Paginated(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	res, err := h.Catalog.ProductsPage(page, limit)
	if err != nil {
		applog.Error(c, "products.page.fail", err, nil)
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch products for page")
	}
	return c.JSON(res)
}

type addProductReq struct {
	Name     string `json:"name"`
	Image    string `json:"image"`
	Category string `json:"category"`
	NewPrice any    `json:"new_price"`
	OldPrice any    `json:"old_price"`
}

// POST /addproduct (admin)
func (h *ProductHandler) Add(c *fiber.Ctx) error {
	var req addProductReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	name, okName := validate.Name(req.Name)
	cat, okCat := validate.Name(req.Category)
	newPrice, okNew := validate.Price(req.NewPrice)
	oldPrice, okOld := validate.Price(req.OldPrice)
	if !okName || !okCat || !okNew || !okOld {
		return fail(c, fiber.StatusBadRequest, "missing or invalid product fields")
	}

	id, err := h.Catalog.AddProduct(name, req.Image, cat, newPrice, oldPrice)
	if err != nil {
		applog.Error(c, "admin.product.add.fail", err, map[string]any{"name": name})
		return fail(c, fiber.StatusInternalServerError, "Failed to insert product")
	}
	applog.Audit(c, "admin.product.add", map[string]any{"product": id, "name": name})
	return c.JSON(fiber.Map{"success": true, "message": "Product added", "id": id})
}

type removeProductReq struct {
	ID *int64 `json:"id"`
}

// POST /removeproduct (admin). Hard delete; carts holding the id keep it and
// analytics reports it as unknown.
func (h *ProductHandler) Remove(c *fiber.Ctx) error {
	var req removeProductReq
	if err := c.BodyParser(&req); err != nil || req.ID == nil {
		return fail(c, fiber.StatusBadRequest, "Product id required")
	}
	if err := h.Catalog.RemoveProduct(*req.ID); err != nil {
		applog.Error(c, "admin.product.remove.fail", err, map[string]any{"product": *req.ID})
		return fail(c, fiber.StatusInternalServerError, "Failed to remove product")
	}
	applog.Audit(c, "admin.product.remove", map[string]any{"product": *req.ID})
	return c.JSON(fiber.Map{"success": true})
}

// GET /newcollections
func (h *ProductHandler) NewCollections(c *fiber.Ctx) error {
	prods, err := h.Catalog.NewCollections()
	if err != nil {
		applog.Error(c, "products.newcollections.fail", err, nil)
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch new collections")
	}
	return c.JSON(prods)
}

// GET /popularinpart
func (h *ProductHandler) PopularInPart(c *fiber.Ctx) error {
	prods, err := h.Catalog.PopularInPart()
	if err != nil {
		applog.Error(c, "products.popular.fail", err, nil)
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch popular products")
	}
	return c.JSON(prods)
}

// GET /services
func (h *ProductHandler) Services(c *fiber.Ctx) error {
	svcs, err := h.Catalog.Services()
	if err != nil {
		applog.Error(c, "services.list.fail", err, nil)
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch services")
	}
	return c.JSON(svcs)
}
