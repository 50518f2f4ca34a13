package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/agency_be/internal/models"
)

// SiteHandler serves the small marketing collections: testimonials,
// pricing plans and partner logos.
type SiteHandler struct {
	DB *gorm.DB
}

func NewSiteHandler(db *gorm.DB) *SiteHandler {
	return &SiteHandler{DB: db}
}

const (
	testimonialNotFound = "Testimonial not found"
	pricingNotFound     = "Pricing not found"
	logoNotFound        = "Your logo not found"
)

type TestimonialReq struct {
	Name     string `json:"name" validate:"required,min=2"`
	JobTitle string `json:"jobTitle"`
	Quote    string `json:"quote" validate:"required"`
	ImageURL string `json:"imageUrl" validate:"required"`
}

type UpdateTestimonialReq struct {
	Name     *string `json:"name" validate:"omitempty,min=2"`
	JobTitle *string `json:"jobTitle"`
	Quote    *string `json:"quote" validate:"omitempty,min=1"`
	ImageURL *string `json:"imageUrl" validate:"omitempty,min=1"`
}

func (h *SiteHandler) CreateTestimonial(c *fiber.Ctx) error {
	var req TestimonialReq
	if err := bind(c, &req); err != nil {
		return err
	}
	t := models.Testimonial{
		Name:     strings.TrimSpace(req.Name),
		JobTitle: req.JobTitle,
		Quote:    req.Quote,
		ImageURL: req.ImageURL,
	}
	if err := h.DB.Create(&t).Error; err != nil {
		return fmt.Errorf("create testimonial: %w", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Testimonial created successfully", "testimonial": t})
}

func (h *SiteHandler) ListTestimonials(c *fiber.Ctx) error {
	items := []models.Testimonial{}
	if err := h.DB.Order("created_at DESC").Find(&items).Error; err != nil {
		return fmt.Errorf("list testimonials: %w", err)
	}
	return c.JSON(fiber.Map{"testimonials": items})
}

func (h *SiteHandler) GetTestimonial(c *fiber.Ctx) error {
	id, err := pathID(c, "id", testimonialNotFound)
	if err != nil {
		return err
	}
	var t models.Testimonial
	if err := first(h.DB, &t, id, testimonialNotFound); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"testimonial": t})
}

func (h *SiteHandler) UpdateTestimonial(c *fiber.Ctx) error {
	id, err := pathID(c, "id", testimonialNotFound)
	if err != nil {
		return err
	}
	var req UpdateTestimonialReq
	if err := bind(c, &req); err != nil {
		return err
	}
	var t models.Testimonial
	if err := first(h.DB, &t, id, testimonialNotFound); err != nil {
		return err
	}

	if req.Name != nil {
		t.Name = strings.TrimSpace(*req.Name)
	}
	if req.JobTitle != nil {
		t.JobTitle = *req.JobTitle
	}
	if req.Quote != nil {
		t.Quote = *req.Quote
	}
	if req.ImageURL != nil {
		t.ImageURL = *req.ImageURL
	}
	if err := h.DB.Save(&t).Error; err != nil {
		return fmt.Errorf("update testimonial: %w", err)
	}
	return c.JSON(fiber.Map{"message": "Testimonial updated successfully", "testimonial": t})
}

func (h *SiteHandler) DeleteTestimonial(c *fiber.Ctx) error {
	id, err := pathID(c, "id", testimonialNotFound)
	if err != nil {
		return err
	}
	if err := deleteByID(h.DB, &models.Testimonial{}, id, testimonialNotFound); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Testimonial deleted successfully"})
}

type PricingReq struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       float64  `json:"price" validate:"gte=0"`
	Features    []string `json:"features" validate:"required,min=1"`
}

type UpdatePricingReq struct {
	Title       *string  `json:"title" validate:"omitempty,min=1"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Features    []string `json:"features"`
}

func (h *SiteHandler) CreatePricing(c *fiber.Ctx) error {
	var req PricingReq
	if err := bind(c, &req); err != nil {
		return err
	}
	p := models.Pricing{Title: req.Title, Description: req.Description, Price: req.Price, Features: req.Features}
	if err := h.DB.Create(&p).Error; err != nil {
		return fmt.Errorf("create pricing: %w", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Pricing created successfully", "pricing": p})
}

func (h *SiteHandler) ListPricing(c *fiber.Ctx) error {
	items := []models.Pricing{}
	if err := h.DB.Order("price ASC").Find(&items).Error; err != nil {
		return fmt.Errorf("list pricing: %w", err)
	}
	return c.JSON(fiber.Map{"pricing": items})
}

func (h *SiteHandler) GetPricing(c *fiber.Ctx) error {
	id, err := pathID(c, "id", pricingNotFound)
	if err != nil {
		return err
	}
	var p models.Pricing
	if err := first(h.DB, &p, id, pricingNotFound); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"pricing": p})
}

func (h *SiteHandler) UpdatePricing(c *fiber.Ctx) error {
	id, err := pathID(c, "id", pricingNotFound)
	if err != nil {
		return err
	}
	var req UpdatePricingReq
	if err := bind(c, &req); err != nil {
		return err
	}
	var p models.Pricing
	if err := first(h.DB, &p, id, pricingNotFound); err != nil {
		return err
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Features != nil {
		p.Features = req.Features
	}
	if err := h.DB.Save(&p).Error; err != nil {
		return fmt.Errorf("update pricing: %w", err)
	}
	return c.JSON(fiber.Map{"message": "Pricing updated successfully", "pricing": p})
}

func (h *SiteHandler) DeletePricing(c *fiber.Ctx) error {
	id, err := pathID(c, "id", pricingNotFound)
	if err != nil {
		return err
	}
	if err := deleteByID(h.DB, &models.Pricing{}, id, pricingNotFound); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Pricing deleted successfully"})
}

type LogoReq struct {
	Name  string `json:"name" validate:"required"`
	Image string `json:"image" validate:"required"`
}

type UpdateLogoReq struct {
	Name  *string `json:"name" validate:"omitempty,min=1"`
	Image *string `json:"image" validate:"omitempty,min=1"`
}

func (h *SiteHandler) CreateLogo(c *fiber.Ctx) error {
	var req LogoReq
	if err := bind(c, &req); err != nil {
		return err
	}
	l := models.YourLogo{Name: strings.TrimSpace(req.Name), Image: req.Image}
	if err := h.DB.Create(&l).Error; err != nil {
		return fmt.Errorf("create logo: %w", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Your logo created successfully", "data": l})
}

func (h *SiteHandler) ListLogos(c *fiber.Ctx) error {
	items := []models.YourLogo{}
	if err := h.DB.Order("created_at ASC").Find(&items).Error; err != nil {
		return fmt.Errorf("list logos: %w", err)
	}
	return c.JSON(fiber.Map{"message": "Your logo fetched successfully", "data": items})
}

func (h *SiteHandler) GetLogo(c *fiber.Ctx) error {
	id, err := pathID(c, "id", logoNotFound)
	if err != nil {
		return err
	}
	var l models.YourLogo
	if err := first(h.DB, &l, id, logoNotFound); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Your logo fetched successfully", "data": l})
}

func (h *SiteHandler) UpdateLogo(c *fiber.Ctx) error {
	id, err := pathID(c, "id", logoNotFound)
	if err != nil {
		return err
	}
	var req UpdateLogoReq
	if err := bind(c, &req); err != nil {
		return err
	}
	var l models.YourLogo
	if err := first(h.DB, &l, id, logoNotFound); err != nil {
		return err
	}

	if req.Name != nil {
		l.Name = strings.TrimSpace(*req.Name)
	}
	if req.Image != nil {
		l.Image = *req.Image
	}
	if err := h.DB.Save(&l).Error; err != nil {
		return fmt.Errorf("update logo: %w", err)
	}
	return c.JSON(fiber.Map{"message": "Your logo updated successfully", "data": l})
}

func (h *SiteHandler) DeleteLogo(c *fiber.Ctx) error {
	id, err := pathID(c, "id", logoNotFound)
	if err != nil {
		return err
	}
	if err := deleteByID(h.DB, &models.YourLogo{}, id, logoNotFound); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Your logo deleted successfully"})
}
