package handlers

import (
	applog "github.com/Kennyy02/totomotorworx-shop/internal/log"
	"github.com/Kennyy02/totomotorworx-shop/internal/token"

	"github.com/gofiber/fiber/v2"
)

// FetchUser verifies the auth-token header and stores {userId,isAdmin} in
// request locals. No mutation and no notification happen past a rejection.
func FetchUser(tokens *token.Issuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get("auth-token")
		if raw == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"errors": "Please authenticate using a valid token"})
		}
		claims, err := tokens.Verify(raw)
		if err != nil {
			applog.Security(c, "auth.token.invalid", nil)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"errors": "Invalid or expired token"})
		}
		c.Locals("userId", claims.UserID)
		c.Locals("isAdmin", claims.IsAdmin)
		return c.Next()
	}
}

// RequireAdmin runs after FetchUser and gates the admin console surface.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if isAdmin, ok := c.Locals("isAdmin").(bool); !ok || !isAdmin {
			applog.Security(c, "access.denied.admin", nil)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied: Admins only"})
		}
		return c.Next()
	}
}

func userID(c *fiber.Ctx) int64 {
	id, _ := c.Locals("userId").(int64)
	return id
}
