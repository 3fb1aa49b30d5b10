package handlers

import "github.com/gofiber/fiber/v2"

// The JSON surface has two shapes the clients rely on: success payloads carry
// success:true, failures carry either "error" or "errors" with a message.

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// failErrors is used by the auth routes, whose clients read the plural key.
func failErrors(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "errors": msg})
}
