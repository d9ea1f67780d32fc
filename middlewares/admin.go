package middlewares

import (
	"crypto/subtle"
	"os"

	"toto/helpers"

	"github.com/gofiber/fiber/v2"
)

// AdminAuth guards back-office endpoints with a static bearer token.
func AdminAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := os.Getenv("ADMIN_API_TOKEN")
		if token == "" {
			return helpers.JSONError(c, "ADMIN_API_DISABLED")
		}

		got := c.Get("X-Admin-Token")
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "INVALID_ADMIN_TOKEN",
			})
		}
		return c.Next()
	}
}
