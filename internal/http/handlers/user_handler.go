package handlers

import (
	applog "github.com/Kennyy02/totomotorworx-shop/internal/log"
	"github.com/Kennyy02/totomotorworx-shop/internal/repos"
	"github.com/Kennyy02/totomotorworx-shop/internal/validate"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type UserHandler struct {
	Users *repos.UserRepo
}

// GET /users (admin)
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.Users.All()
	if err != nil {
		applog.Error(c, "admin.users.list.fail", err, nil)
		return fail(c, fiber.StatusInternalServerError, "Database query failed")
	}
	return c.JSON(users)
}

// GET /users_paginated?page=&limit= (admin)
func (h *UserHandler) Paginated(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}
	users, total, err := h.Users.Page(limit, (page-1)*limit)
	if err != nil {
		applog.Error(c, "admin.users.page.fail", err, nil)
		return fail(c, fiber.StatusInternalServerError, "Failed to fetch users for page")
	}
	totalPages := (total + limit - 1) / limit
	return c.JSON(fiber.Map{
		"users":      users,
		"page":       page,
		"totalPages": totalPages,
		"totalUsers": total,
	})
}

type updateUserReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PUT /users/:id (admin). Password is rehashed only when provided.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusBadRequest, "invalid user id")
	}
	var req updateUserReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid body")
	}
	name, okName := validate.Name(req.Name)
	email, okEmail := validate.Email(req.Email)
	if !okName || !okEmail {
		return fail(c, fiber.StatusBadRequest, "name and email are required")
	}
	if _, err := h.Users.ByID(id); err != nil {
		return fail(c, fiber.StatusNotFound, "User not found or database error")
	}

	hash := ""
	if req.Password != "" {
		h2, err := bcrypt.GenerateFromPassword([]byte(req.Password), 10)
		if err != nil {
			applog.Error(c, "admin.users.hash.fail", err, map[string]any{"user": id})
			return fail(c, fiber.StatusInternalServerError, "Failed to hash new password")
		}
		hash = string(h2)
	}

	if err := h.Users.Update(id, name, email, hash); err != nil {
		applog.Error(c, "admin.users.update.fail", err, map[string]any{"user": id})
		return fail(c, fiber.StatusInternalServerError, "Failed to update user")
	}
	applog.Audit(c, "admin.users.update", map[string]any{"user": id})
	return c.JSON(fiber.Map{"success": true})
}

// DELETE /users/:id (admin)
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusBadRequest, "invalid user id")
	}
	if err := h.Users.Delete(id); err != nil {
		applog.Error(c, "admin.users.delete.fail", err, map[string]any{"user": id})
		return fail(c, fiber.StatusInternalServerError, "Failed to delete user")
	}
	applog.Audit(c, "admin.users.delete", map[string]any{"user": id})
	return c.JSON(fiber.Map{"success": true})
}
