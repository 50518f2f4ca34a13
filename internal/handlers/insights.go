package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Windi-Fikriyansyah/agency_be/internal/models"
	"github.com/Windi-Fikriyansyah/agency_be/internal/services/analytics"
	"github.com/Windi-Fikriyansyah/agency_be/internal/services/leaderboard"
)

type Leaderboard interface {
	Top(ctx context.Context, n int) ([]leaderboard.Entry, error)
	All(ctx context.Context) ([]leaderboard.Entry, error)
}

type DeveloperAnalytics interface {
	Developers(ctx context.Context, roles []models.Role) ([]analytics.DeveloperStats, error)
}

// InsightHandler exposes the derived task aggregates.
type InsightHandler struct {
	Leaderboard Leaderboard
	Analytics   DeveloperAnalytics
}

func (h *InsightHandler) TopLeaderboard(c *fiber.Ctx) error {
	entries, err := h.Leaderboard.Top(c.UserContext(), leaderboard.PublicSize)
	if err != nil {
		return err
	}
	public := make([]leaderboard.PublicEntry, 0, len(entries))
	for _, e := range entries {
		public = append(public, e.Public())
	}
	return c.JSON(fiber.Map{"message": "Top 10 developers fetched", "data": public})
}

func (h *InsightHandler) FullLeaderboard(c *fiber.Ctx) error {
	entries, err := h.Leaderboard.All(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Full leaderboard fetched", "data": entries})
}

// analyticsRoles reads ?roles=junior,middle. Without it only seniors are analysed.
func analyticsRoles(raw string) ([]models.Role, error) {
	if strings.TrimSpace(raw) == "" {
		return []models.Role{models.RoleSenior}, nil
	}
	var roles []models.Role
	for _, s := range splitCSV(strings.ToLower(raw)) {
		r := models.Role(s)
		if !r.Valid() || r == models.RoleClient {
			return nil, validationFail(map[string][]string{"roles": {"roles must be a list of junior, middle, senior"}})
		}
		roles = append(roles, r)
	}
	if len(roles) == 0 {
		roles = []models.Role{models.RoleSenior}
	}
	return roles, nil
}

func (h *InsightHandler) DeveloperAnalytics(c *fiber.Ctx) error {
	roles, err := analyticsRoles(c.Query("roles"))
	if err != nil {
		return err
	}
	stats, err := h.Analytics.Developers(c.UserContext(), roles)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Analytics fetched successfully", "analytics": stats})
}
