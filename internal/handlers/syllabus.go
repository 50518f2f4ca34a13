package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/agency_be/internal/models"
)

type SyllabusHandler struct {
	DB *gorm.DB
}

func NewSyllabusHandler(db *gorm.DB) *SyllabusHandler {
	return &SyllabusHandler{DB: db}
}

const syllabusNotFound = "Syllabus not found"

type SyllabusReq struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Week        string `json:"week" validate:"required"`
}

type UpdateSyllabusReq struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Week        *string `json:"week" validate:"omitempty,min=1"`
}

func (h *SyllabusHandler) Create(c *fiber.Ctx) error {
	var req SyllabusReq
	if err := bind(c, &req); err != nil {
		return err
	}
	s := models.Syllabus{Title: req.Title, Description: req.Description, Week: req.Week}
	if err := h.DB.Create(&s).Error; err != nil {
		return fmt.Errorf("create syllabus: %w", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Syllabus created successfully", "data": s})
}

func (h *SyllabusHandler) List(c *fiber.Ctx) error {
	items := []models.Syllabus{}
	if err := h.DB.Order("week ASC").Order("created_at ASC").Find(&items).Error; err != nil {
		return fmt.Errorf("list syllabus: %w", err)
	}
	return c.JSON(fiber.Map{"message": "Syllabus fetched successfully", "data": items})
}

func (h *SyllabusHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id", syllabusNotFound)
	if err != nil {
		return err
	}
	var s models.Syllabus
	if err := first(h.DB, &s, id, syllabusNotFound); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Syllabus fetched successfully", "data": s})
}

func (h *SyllabusHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id", syllabusNotFound)
	if err != nil {
		return err
	}
	var req UpdateSyllabusReq
	if err := bind(c, &req); err != nil {
		return err
	}
	var s models.Syllabus
	if err := first(h.DB, &s, id, syllabusNotFound); err != nil {
		return err
	}

	if req.Title != nil {
		s.Title = *req.Title
	}
	if req.Description != nil {
		s.Description = *req.Description
	}
	if req.Week != nil {
		s.Week = *req.Week
	}
	if err := h.DB.Save(&s).Error; err != nil {
		return fmt.Errorf("update syllabus: %w", err)
	}
	return c.JSON(fiber.Map{"message": "Syllabus updated successfully", "data": s})
}

func (h *SyllabusHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id", syllabusNotFound)
	if err != nil {
		return err
	}
	var s models.Syllabus
	if err := first(h.DB, &s, id, syllabusNotFound); err != nil {
		return err
	}
	if err := deleteByID(h.DB, &models.Syllabus{}, id, syllabusNotFound); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Syllabus deleted successfully", "data": s})
}
