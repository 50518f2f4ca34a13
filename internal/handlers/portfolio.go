package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/agency_be/internal/models"
)

type PortfolioHandler struct {
	DB *gorm.DB
}

func NewPortfolioHandler(db *gorm.DB) *PortfolioHandler {
	return &PortfolioHandler{DB: db}
}

const portfolioNotFound = "Portfolio not found"

type CreatePortfolioReq struct {
	Title        string   `json:"title" validate:"required,min=3"`
	Description  string   `json:"description" validate:"required"`
	Technologies []string `json:"technologies" validate:"required,min=1"`
	ProjectURL   string   `json:"projectUrl" validate:"required,url"`
	Images       []string `json:"images"`
	Category     string   `json:"category" validate:"required,uuid"`
}

type UpdatePortfolioReq struct {
	Title        *string  `json:"title" validate:"omitempty,min=3"`
	Description  *string  `json:"description"`
	Technologies []string `json:"technologies"`
	ProjectURL   *string  `json:"projectUrl" validate:"omitempty,url"`
	Images       []string `json:"images"`
	Category     *string  `json:"category" validate:"omitempty,uuid"`
}

func (h *PortfolioHandler) category(raw string) (uuid.UUID, error) {
	id := uuid.MustParse(raw)
	var count int64
	if err := h.DB.Model(&models.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return uuid.Nil, fmt.Errorf("check portfolio category: %w", err)
	}
	if count == 0 {
		return uuid.Nil, fiber.NewError(fiber.StatusNotFound, categoryNotFound)
	}
	return id, nil
}

func (h *PortfolioHandler) Create(c *fiber.Ctx) error {
	var req CreatePortfolioReq
	if err := bind(c, &req); err != nil {
		return err
	}
	categoryID, err := h.category(req.Category)
	if err != nil {
		return err
	}

	p := models.Portfolio{
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Technologies: req.Technologies,
		ProjectURL:   req.ProjectURL,
		Images:       req.Images,
		CategoryID:   categoryID,
	}
	if err := h.DB.Create(&p).Error; err != nil {
		return fmt.Errorf("create portfolio: %w", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Portfolio created successfully", "data": p})
}

// List optionally filters by category id.
func (h *PortfolioHandler) List(c *fiber.Ctx) error {
	items := []models.Portfolio{}
	q := h.DB.Order("created_at DESC")
	if raw := c.Query("category"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.JSON(fiber.Map{"message": "Portfolios fetched successfully", "data": items})
		}
		q = q.Where("category_id = ?", id)
	}
	if err := q.Find(&items).Error; err != nil {
		return fmt.Errorf("list portfolios: %w", err)
	}
	return c.JSON(fiber.Map{"message": "Portfolios fetched successfully", "data": items})
}

func (h *PortfolioHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id", portfolioNotFound)
	if err != nil {
		return err
	}
	var p models.Portfolio
	if err := first(h.DB, &p, id, portfolioNotFound); err != nil {
		return err
	}

	var cat models.Category
	if err := h.DB.Limit(1).Find(&cat, "id = ?", p.CategoryID).Error; err != nil {
		return fmt.Errorf("load portfolio category: %w", err)
	}
	if cat.ID != uuid.Nil {
		p.Category = &cat
	}
	return c.JSON(fiber.Map{"message": "succes", "portfolio": p})
}

func (h *PortfolioHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id", portfolioNotFound)
	if err != nil {
		return err
	}
	var req UpdatePortfolioReq
	if err := bind(c, &req); err != nil {
		return err
	}
	var p models.Portfolio
	if err := first(h.DB, &p, id, portfolioNotFound); err != nil {
		return err
	}

	if req.Title != nil {
		p.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Technologies != nil {
		p.Technologies = req.Technologies
	}
	if req.ProjectURL != nil {
		p.ProjectURL = *req.ProjectURL
	}
	if req.Images != nil {
		p.Images = req.Images
	}
	if req.Category != nil {
		if p.CategoryID, err = h.category(*req.Category); err != nil {
			return err
		}
	}

	if err := h.DB.Save(&p).Error; err != nil {
		return fmt.Errorf("update portfolio: %w", err)
	}
	return c.JSON(fiber.Map{"message": "Portfolio updated successfully", "data": p})
}

func (h *PortfolioHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id", portfolioNotFound)
	if err != nil {
		return err
	}
	if err := deleteByID(h.DB, &models.Portfolio{}, id, portfolioNotFound); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Portfolio deleted successfully"})
}
