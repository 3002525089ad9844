package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pawmemo/pawmemo-backend/internal/models"
	"github.com/pawmemo/pawmemo-backend/internal/service"
)

// AuthMiddleware resolves the Bearer session token into a user. The token
// is opaque; everything lives in the sessions table, so revocation is
// immediate.
func AuthMiddleware(sessions *service.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Authorization header is required"))
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		user, err := sessions.Resolve(token)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Internal server error"))
		}
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid or expired session"))
		}

		c.Locals("userID", user.ID)
		c.Locals("user", user)
		c.Locals("sessionToken", token)

		return c.Next()
	}
}
