package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/agency_be/internal/middleware"
)

// Dashboard answers the per-role landing endpoints; the route gate picks the role.
func Dashboard(title string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, _ := middleware.AccountID(c)
		return c.JSON(fiber.Map{
			"message": title + " Dashboard",
			"user": fiber.Map{
				"id":   id,
				"role": middleware.CallerRole(c),
			},
		})
	}
}
