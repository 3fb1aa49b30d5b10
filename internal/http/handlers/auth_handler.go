package handlers

import (
	"errors"

	applog "github.com/Kennyy02/totomotorworx-shop/internal/log"
	"github.com/Kennyy02/totomotorworx-shop/internal/services"
	"github.com/Kennyy02/totomotorworx-shop/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type signupReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Consent  bool   `json:"consent"`
}

// POST /signup
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req signupReq
	if err := c.BodyParser(&req); err != nil {
		return failErrors(c, fiber.StatusBadRequest, "Missing required fields")
	}
	name, okName := validate.Name(req.Username)
	email, okEmail := validate.Email(req.Email)
	if !okName || !okEmail || req.Password == "" {
		return failErrors(c, fiber.StatusBadRequest, "Missing required fields")
	}
	if !req.Consent {
		return failErrors(c, fiber.StatusBadRequest, "You must agree to the Terms and Privacy Statement to register.")
	}
	if !validate.Password(req.Password) {
		return failErrors(c, fiber.StatusBadRequest, "Password does not meet complexity requirements.")
	}

	tok, err := h.Auth.Signup(name, email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			return failErrors(c, fiber.StatusBadRequest, err.Error())
		}
		applog.Error(c, "auth.signup.fail", err, map[string]any{"email": email})
		return failErrors(c, fiber.StatusInternalServerError, "Internal server error")
	}
	applog.Audit(c, "auth.signup", map[string]any{"email": email})
	return c.JSON(fiber.Map{"success": true, "auth-token": tok})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil || req.Email == "" || req.Password == "" {
		return failErrors(c, fiber.StatusBadRequest, "Email and password are required")
	}

	tok, err := h.Auth.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWrongEmail), errors.Is(err, services.ErrWrongPassword):
			applog.Security(c, "auth.login.fail", map[string]any{"email": req.Email})
			return failErrors(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrDisabled):
			applog.Security(c, "auth.login.disabled", map[string]any{"email": req.Email})
			return failErrors(c, fiber.StatusForbidden, "Account is disabled")
		default:
			applog.Error(c, "auth.login.error", err, nil)
			return failErrors(c, fiber.StatusInternalServerError, "Database error")
		}
	}
	applog.Audit(c, "auth.login.success", map[string]any{"email": req.Email})
	return c.JSON(fiber.Map{"success": true, "auth-token": tok})
}
