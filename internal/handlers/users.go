package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/agency_be/internal/models"
)

type UserHandler struct {
	DB *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

const userNotFound = "User not found"

type SkillsReq struct {
	Skills []string `json:"skills" validate:"required,min=1,dive,required"`
}

type BadgeReq struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	IconURL     string `json:"iconUrl" validate:"required"`
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id", userNotFound)
	if err != nil {
		return err
	}
	var u models.Account
	if err := first(h.DB, &u, id, userNotFound); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "User fetched successfully", "user": u})
}

// UpdateSkills merges skills into the stored set. Read-modify-write with no
// version check: concurrent updates may lose one side.
func (h *UserHandler) UpdateSkills(c *fiber.Ctx) error {
	id, err := pathID(c, "id", userNotFound)
	if err != nil {
		return err
	}
	var req SkillsReq
	if err := bind(c, &req); err != nil {
		return err
	}

	var u models.Account
	if err := first(h.DB, &u, id, userNotFound); err != nil {
		return err
	}

	skills := make([]string, 0, len(req.Skills))
	for _, s := range req.Skills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	u.MergeSkills(skills)
	if err := h.DB.Model(&u).UpdateColumn("skills", u.Skills).Error; err != nil {
		return fmt.Errorf("store skills: %w", err)
	}

	return c.JSON(fiber.Map{"message": "Skills updated successfully", "user": u})
}

func (h *UserHandler) AddBadge(c *fiber.Ctx) error {
	id, err := pathID(c, "id", userNotFound)
	if err != nil {
		return err
	}
	var req BadgeReq
	if err := bind(c, &req); err != nil {
		return err
	}

	var u models.Account
	if err := first(h.DB, &u, id, userNotFound); err != nil {
		return err
	}
	if u.HasBadge(req.Title) {
		return fiber.NewError(fiber.StatusBadRequest, "Badge already exists")
	}

	u.Badges = append(u.Badges, models.Badge{
		Title:       req.Title,
		Description: req.Description,
		IconURL:     req.IconURL,
		AwardedAt:   time.Now().UTC(),
	})
	if err := h.DB.Model(&u).UpdateColumn("badges", u.Badges).Error; err != nil {
		return fmt.Errorf("store badges: %w", err)
	}

	return c.JSON(fiber.Map{"message": "Badge added successfully", "user": u})
}
