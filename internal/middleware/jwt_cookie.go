package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/agency_be/internal/utils"
)

const AccessCookie = "accessToken"

type AccessTokenParser interface {
	ParseAccessToken(raw string) (*utils.Claims, error)
}

// RequireAuth verifies the access-token cookie and exposes its claims to later handlers.
func RequireAuth(tokens AccessTokenParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := authenticate(c, tokens); err != nil {
			return err
		}
		return c.Next()
	}
}

func authenticate(c *fiber.Ctx, tokens AccessTokenParser) error {
	tokenStr := c.Cookies(AccessCookie)
	if tokenStr == "" {
		return fiber.ErrUnauthorized
	}

	claims, err := tokens.ParseAccessToken(tokenStr)
	if err != nil {
		return fiber.ErrUnauthorized
	}
	return attachLocals(c, claims)
}
