package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/agency_be/internal/models"
)

type CourseHandler struct {
	DB *gorm.DB
}

func NewCourseHandler(db *gorm.DB) *CourseHandler {
	return &CourseHandler{DB: db}
}

const courseNotFound = "Course not found"

type SyllabusEntryReq struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Week        string `json:"week" validate:"required"`
}

type CreateCourseReq struct {
	Title       string             `json:"title" validate:"required,min=3"`
	Description string             `json:"description" validate:"required"`
	Duration    string             `json:"duration" validate:"required"`
	Level       models.Level       `json:"level" validate:"required,level"`
	Price       float64            `json:"price" validate:"gte=0"`
	Tags        []string           `json:"tags"`
	Syllabus    []SyllabusEntryReq `json:"syllabus" validate:"omitempty,dive"`
}

type UpdateCourseReq struct {
	Title       *string            `json:"title" validate:"omitempty,min=3"`
	Description *string            `json:"description"`
	Duration    *string            `json:"duration"`
	Level       *models.Level      `json:"level" validate:"omitempty,level"`
	Price       *float64           `json:"price" validate:"omitempty,gte=0"`
	Tags        []string           `json:"tags"`
	Syllabus    []SyllabusEntryReq `json:"syllabus" validate:"omitempty,dive"`
}

func syllabusEntries(in []SyllabusEntryReq) []models.SyllabusEntry {
	out := make([]models.SyllabusEntry, 0, len(in))
	for _, s := range in {
		out = append(out, models.SyllabusEntry{Title: s.Title, Description: s.Description, Week: s.Week})
	}
	return out
}

// Rollup columns are owned by the rating service and never taken from a body.
var courseRollup = []string{"number_of_reviews", "average_rating"}

func (h *CourseHandler) Create(c *fiber.Ctx) error {
	var req CreateCourseReq
	if err := bind(c, &req); err != nil {
		return err
	}
	course := models.Course{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Duration:    req.Duration,
		Level:       req.Level,
		Price:       req.Price,
		Tags:        req.Tags,
		Syllabus:    syllabusEntries(req.Syllabus),
	}
	if err := h.DB.Create(&course).Error; err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Course created successfully", "data": course})
}

func (h *CourseHandler) List(c *fiber.Ctx) error {
	courses := []models.Course{}
	if err := h.DB.Order("created_at DESC").Find(&courses).Error; err != nil {
		return fmt.Errorf("list courses: %w", err)
	}
	return c.JSON(fiber.Map{"message": "Courses fetched successfully", "data": courses})
}

func (h *CourseHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id", courseNotFound)
	if err != nil {
		return err
	}
	var course models.Course
	if err := first(h.DB, &course, id, courseNotFound); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Course fetched successfully", "data": course})
}

func (h *CourseHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id", courseNotFound)
	if err != nil {
		return err
	}
	var req UpdateCourseReq
	if err := bind(c, &req); err != nil {
		return err
	}
	var course models.Course
	if err := first(h.DB, &course, id, courseNotFound); err != nil {
		return err
	}

	if req.Title != nil {
		course.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Duration != nil {
		course.Duration = *req.Duration
	}
	if req.Level != nil {
		course.Level = *req.Level
	}
	if req.Price != nil {
		course.Price = *req.Price
	}
	if req.Tags != nil {
		course.Tags = req.Tags
	}
	if req.Syllabus != nil {
		course.Syllabus = syllabusEntries(req.Syllabus)
	}

	if err := h.DB.Omit(courseRollup...).Save(&course).Error; err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return c.JSON(fiber.Map{"message": "Course updated successfully", "data": course})
}

// Delete leaves the course's reviews in place.
func (h *CourseHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id", courseNotFound)
	if err != nil {
		return err
	}
	var course models.Course
	if err := first(h.DB, &course, id, courseNotFound); err != nil {
		return err
	}
	if err := deleteByID(h.DB, &models.Course{}, id, courseNotFound); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Course deleted successfully", "data": course})
}
