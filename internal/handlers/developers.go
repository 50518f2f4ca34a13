package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/agency_be/internal/models"
)

type DeveloperHandler struct {
	DB *gorm.DB
}

func NewDeveloperHandler(db *gorm.DB) *DeveloperHandler {
	return &DeveloperHandler{DB: db}
}

const developerNotFound = "Developer not found"

type CreateDeveloperReq struct {
	Name         string      `json:"name" validate:"required,min=2"`
	Rank         models.Role `json:"rank" validate:"required,role,ne=client"`
	Bio          string      `json:"bio" validate:"required"`
	Skills       []string    `json:"skills"`
	ProfileImage string      `json:"profileImage" validate:"required"`
	Tasks        []string    `json:"tasks" validate:"omitempty,dive,uuid"`
}

type UpdateDeveloperReq struct {
	Name         *string      `json:"name" validate:"omitempty,min=2"`
	Rank         *models.Role `json:"rank" validate:"omitempty,role,ne=client"`
	Bio          *string      `json:"bio"`
	Skills       []string     `json:"skills"`
	ProfileImage *string      `json:"profileImage"`
	Tasks        []string     `json:"tasks" validate:"omitempty,dive,uuid"`
}

func taskIDs(raw []string) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		ids = append(ids, uuid.MustParse(s))
	}
	return ids
}

// resolveTasks fills Tasks from TaskIDs with one query. Ids of deleted tasks are skipped.
func (h *DeveloperHandler) resolveTasks(devs []models.Developer) error {
	var ids []uuid.UUID
	for _, d := range devs {
		ids = append(ids, d.TaskIDs...)
	}
	byID := map[uuid.UUID]models.Task{}
	if len(ids) > 0 {
		var tasks []models.Task
		if err := h.DB.Where("id IN ?", ids).Find(&tasks).Error; err != nil {
			return fmt.Errorf("resolve developer tasks: %w", err)
		}
		for _, t := range tasks {
			byID[t.ID] = t
		}
	}

	for i := range devs {
		devs[i].Tasks = make([]models.Task, 0, len(devs[i].TaskIDs))
		for _, id := range devs[i].TaskIDs {
			if t, ok := byID[id]; ok {
				devs[i].Tasks = append(devs[i].Tasks, t)
			}
		}
	}
	return nil
}

func (h *DeveloperHandler) respond(c *fiber.Ctx, status int, msg string, d models.Developer) error {
	devs := []models.Developer{d}
	if err := h.resolveTasks(devs); err != nil {
		return err
	}
	return c.Status(status).JSON(fiber.Map{"message": msg, "data": devs[0]})
}

func (h *DeveloperHandler) Create(c *fiber.Ctx) error {
	var req CreateDeveloperReq
	if err := bind(c, &req); err != nil {
		return err
	}
	d := models.Developer{
		Name:         strings.TrimSpace(req.Name),
		Rank:         req.Rank,
		Bio:          req.Bio,
		Skills:       req.Skills,
		ProfileImage: req.ProfileImage,
		TaskIDs:      taskIDs(req.Tasks),
	}
	if err := h.DB.Create(&d).Error; err != nil {
		return fmt.Errorf("create developer: %w", err)
	}
	return h.respond(c, fiber.StatusCreated, "Developer created successfully", d)
}

func (h *DeveloperHandler) List(c *fiber.Ctx) error {
	devs := []models.Developer{}
	if err := h.DB.Order("created_at DESC").Find(&devs).Error; err != nil {
		return fmt.Errorf("list developers: %w", err)
	}
	if err := h.resolveTasks(devs); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Developers fetched successfully", "data": devs})
}

func (h *DeveloperHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id", developerNotFound)
	if err != nil {
		return err
	}
	var d models.Developer
	if err := first(h.DB, &d, id, developerNotFound); err != nil {
		return err
	}
	return h.respond(c, fiber.StatusOK, "Developer fetched successfully", d)
}

func (h *DeveloperHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id", developerNotFound)
	if err != nil {
		return err
	}
	var req UpdateDeveloperReq
	if err := bind(c, &req); err != nil {
		return err
	}
	var d models.Developer
	if err := first(h.DB, &d, id, developerNotFound); err != nil {
		return err
	}

	if req.Name != nil {
		d.Name = strings.TrimSpace(*req.Name)
	}
	if req.Rank != nil {
		d.Rank = *req.Rank
	}
	if req.Bio != nil {
		d.Bio = *req.Bio
	}
	if req.Skills != nil {
		d.Skills = req.Skills
	}
	if req.ProfileImage != nil {
		d.ProfileImage = *req.ProfileImage
	}
	if req.Tasks != nil {
		d.TaskIDs = taskIDs(req.Tasks)
	}

	if err := h.DB.Save(&d).Error; err != nil {
		return fmt.Errorf("update developer: %w", err)
	}
	return h.respond(c, fiber.StatusOK, "Developer updated successfully", d)
}

func (h *DeveloperHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id", developerNotFound)
	if err != nil {
		return err
	}
	var d models.Developer
	if err := first(h.DB, &d, id, developerNotFound); err != nil {
		return err
	}
	if err := deleteByID(h.DB, &models.Developer{}, id, developerNotFound); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Developer deleted successfully", "data": d})
}
