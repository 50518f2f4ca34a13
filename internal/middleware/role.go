package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/agency_be/internal/models"
)

// RequireRoles must run after RequireAuth. The role comes from the token,
// so a role change only applies after the account signs in again.
func RequireRoles(allowed ...models.Role) fiber.Handler {
	allowedSet := roleSet(allowed)
	return func(c *fiber.Ctx) error {
		if err := authorize(c, allowedSet); err != nil {
			return err
		}
		return c.Next()
	}
}

// Gate is RequireAuth followed by RequireRoles in a single handler.
func Gate(tokens AccessTokenParser, allowed ...models.Role) fiber.Handler {
	allowedSet := roleSet(allowed)
	return func(c *fiber.Ctx) error {
		if err := authenticate(c, tokens); err != nil {
			return err
		}
		if err := authorize(c, allowedSet); err != nil {
			return err
		}
		return c.Next()
	}
}

func roleSet(roles []models.Role) map[models.Role]bool {
	set := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		set[r] = true
	}
	return set
}

func authorize(c *fiber.Ctx, allowed map[models.Role]bool) error {
	if _, ok := AccountID(c); !ok {
		return fiber.ErrUnauthorized
	}

	role := CallerRole(c)
	if !allowed[role] {
		return fiber.NewError(fiber.StatusForbidden,
			fmt.Sprintf("Forbidden: %s is not allowed to access this resource", role))
	}
	return nil
}
