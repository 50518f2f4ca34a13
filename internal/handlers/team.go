package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/agency_be/internal/models"
)

type TeamHandler struct {
	DB *gorm.DB
}

func NewTeamHandler(db *gorm.DB) *TeamHandler {
	return &TeamHandler{DB: db}
}

const teamNotFound = "Team not found"

type CreateTeamReq struct {
	Name          string   `json:"name" validate:"required,min=2"`
	Bio           string   `json:"bio" validate:"required"`
	Rank          int      `json:"rank" validate:"gte=0"`
	Skills        []string `json:"skills" validate:"required,min=1"`
	Image         string   `json:"image" validate:"required"`
	ProjectURL    []string `json:"projectUrl"`
	ProjectImages []string `json:"projectImages"`
}

type UpdateTeamReq struct {
	Name          *string  `json:"name" validate:"omitempty,min=2"`
	Bio           *string  `json:"bio"`
	Rank          *int     `json:"rank" validate:"omitempty,gte=0"`
	Skills        []string `json:"skills"`
	Image         *string  `json:"image"`
	ProjectURL    []string `json:"projectUrl"`
	ProjectImages []string `json:"projectImages"`
}

func (h *TeamHandler) Create(c *fiber.Ctx) error {
	var req CreateTeamReq
	if err := bind(c, &req); err != nil {
		return err
	}
	t := models.Team{
		Name:          strings.TrimSpace(req.Name),
		Bio:           req.Bio,
		Rank:          req.Rank,
		Skills:        req.Skills,
		Image:         req.Image,
		ProjectURL:    req.ProjectURL,
		ProjectImages: req.ProjectImages,
	}
	if err := h.DB.Create(&t).Error; err != nil {
		return fmt.Errorf("create team member: %w", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Team created successfully", "data": t})
}

func (h *TeamHandler) list(c *fiber.Ctx, rank string) error {
	members := []models.Team{}
	q := h.DB.Order("rank ASC").Order("created_at ASC")
	if rank != "" {
		n, err := strconv.Atoi(rank)
		if err != nil {
			return c.JSON(fiber.Map{"message": "Team fetched successfully", "data": members})
		}
		q = q.Where("rank = ?", n)
	}
	if err := q.Find(&members).Error; err != nil {
		return fmt.Errorf("list team: %w", err)
	}
	return c.JSON(fiber.Map{"message": "Team fetched successfully", "data": members})
}

// List sorts by rank and accepts an optional ?rank filter.
func (h *TeamHandler) List(c *fiber.Ctx) error {
	return h.list(c, strings.TrimSpace(c.Query("rank")))
}

// Lookup serves /team/:key. A UUID key names one member; anything else is a rank.
func (h *TeamHandler) Lookup(c *fiber.Ctx) error {
	key := c.Params("key")
	id, err := uuid.Parse(key)
	if err != nil {
		return h.list(c, key)
	}
	var t models.Team
	if err := first(h.DB, &t, id, teamNotFound); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Team fetched successfully", "data": t})
}

func (h *TeamHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id", teamNotFound)
	if err != nil {
		return err
	}
	var req UpdateTeamReq
	if err := bind(c, &req); err != nil {
		return err
	}
	var t models.Team
	if err := first(h.DB, &t, id, teamNotFound); err != nil {
		return err
	}

	if req.Name != nil {
		t.Name = strings.TrimSpace(*req.Name)
	}
	if req.Bio != nil {
		t.Bio = *req.Bio
	}
	if req.Rank != nil {
		t.Rank = *req.Rank
	}
	if req.Skills != nil {
		t.Skills = req.Skills
	}
	if req.Image != nil {
		t.Image = *req.Image
	}
	if req.ProjectURL != nil {
		t.ProjectURL = req.ProjectURL
	}
	if req.ProjectImages != nil {
		t.ProjectImages = req.ProjectImages
	}

	if err := h.DB.Save(&t).Error; err != nil {
		return fmt.Errorf("update team member: %w", err)
	}
	return c.JSON(fiber.Map{"message": "Team updated successfully", "data": t})
}

func (h *TeamHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id", teamNotFound)
	if err != nil {
		return err
	}
	var t models.Team
	if err := first(h.DB, &t, id, teamNotFound); err != nil {
		return err
	}
	if err := deleteByID(h.DB, &models.Team{}, id, teamNotFound); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Team deleted successfully", "data": t})
}
