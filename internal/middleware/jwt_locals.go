package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/agency_be/internal/models"
	"github.com/Windi-Fikriyansyah/agency_be/internal/utils"
)

func attachLocals(c *fiber.Ctx, claims *utils.Claims) error {
	uid, err := uuid.Parse(strings.TrimSpace(claims.UserID))
	if err != nil {
		return fiber.ErrUnauthorized
	}

	c.Locals("accountId", uid)
	c.Locals("role", models.Role(strings.ToLower(strings.TrimSpace(claims.Role))))
	return nil
}

// AccountID returns the caller resolved by RequireAuth.
func AccountID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals("accountId").(uuid.UUID)
	return id, ok
}

// CallerRole returns the role carried by the caller's access token.
func CallerRole(c *fiber.Ctx) models.Role {
	role, _ := c.Locals("role").(models.Role)
	return role
}
