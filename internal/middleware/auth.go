package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Barkatzx/medicare-server/internal/models"
	"github.com/Barkatzx/medicare-server/internal/utils"
)

// Protect requires a valid Bearer token and attaches the identity to the
// request. No database round trip: the claims are trusted for their
// lifetime.
func Protect(tokens *utils.TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get(fiber.HeaderAuthorization)
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "No token provided"})
		}

		claims, err := tokens.Parse(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid or expired token"})
		}

		c.Locals("userID", claims.UserID)
		c.Locals("role", claims.Role)
		return c.Next()
	}
}

// AdminOnly composes after Protect on admin-restricted routes.
func AdminOnly(c *fiber.Ctx) error {
	if role, _ := c.Locals("role").(string); role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Access denied: Admins only"})
	}
	return c.Next()
}
