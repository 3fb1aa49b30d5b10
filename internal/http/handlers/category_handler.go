package handlers

import (
	"database/sql"
	"errors"
	"fmt"

	applog "github.com/Kennyy02/totomotorworx-shop/internal/log"
	"github.com/Kennyy02/totomotorworx-shop/internal/services"
	"github.com/Kennyy02/totomotorworx-shop/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

// GET /categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		applog.Error(c, "categories.list.fail", err, nil)
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch categories")
	}
	return c.JSON(cats)
}

type categoryReq struct {
	Name string `json:"name"`
}

// POST /categories (admin)
func (h *CategoryHandler) Add(c *fiber.Ctx) error {
	var req categoryReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "Category name cannot be empty")
	}
	id, err := h.Catalog.AddCategory(name)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateCategory) {
			return fail(c, fiber.StatusBadRequest, "Category already exists")
		}
		applog.Error(c, "admin.category.add.fail", err, map[string]any{"name": name})
		return fail(c, fiber.StatusInternalServerError, "Failed to add category")
	}
	applog.Audit(c, "admin.category.add", map[string]any{"category": id, "name": name})
	return c.JSON(fiber.Map{"success": true, "id": id})
}

// PUT /categories/:id (admin)
func (h *CategoryHandler) Rename(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusBadRequest, "invalid category id")
	}
	var req categoryReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	name, okName := validate.Name(req.Name)
	if !okName {
		return fail(c, fiber.StatusBadRequest, "Category name cannot be empty")
	}
	if err := h.Catalog.RenameCategory(id, name); err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateCategory):
			return fail(c, fiber.StatusBadRequest, "Category already exists")
		case errors.Is(err, sql.ErrNoRows):
			return fail(c, fiber.StatusNotFound, "Category not found")
		}
		applog.Error(c, "admin.category.rename.fail", err, map[string]any{"category": id})
		return fail(c, fiber.StatusInternalServerError, "Failed to update category")
	}
	applog.Audit(c, "admin.category.rename", map[string]any{"category": id, "name": name})
	return c.JSON(fiber.Map{"success": true})
}

// DELETE /categories/:id (admin). Blocked while products reference the name;
// the error names the blocking count so the console can explain.
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusBadRequest, "invalid category id")
	}
	if err := h.Catalog.DeleteCategory(id); err != nil {
		var inUse *services.CategoryInUseError
		switch {
		case errors.As(err, &inUse):
			return fail(c, fiber.StatusBadRequest,
				fmt.Sprintf("Cannot delete: %d product(s) still use this category", inUse.Products))
		case errors.Is(err, sql.ErrNoRows):
			return fail(c, fiber.StatusNotFound, "Category not found")
		}
		applog.Error(c, "admin.category.delete.fail", err, map[string]any{"category": id})
		return fail(c, fiber.StatusInternalServerError, "Failed to delete category")
	}
	applog.Audit(c, "admin.category.delete", map[string]any{"category": id})
	return c.JSON(fiber.Map{"success": true})
}
