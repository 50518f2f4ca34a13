package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/agency_be/internal/models"
)

type CategoryHandler struct {
	DB *gorm.DB
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{DB: db}
}

const categoryNotFound = "Category not found"

type CategoryReq struct {
	Name string `json:"name" validate:"required,min=2"`
	Slug string `json:"slug"`
}

type UpdateCategoryReq struct {
	Name *string `json:"name" validate:"omitempty,min=2"`
	Slug *string `json:"slug"`
}

// categorySlug normalises an explicit slug or derives one from the name.
func categorySlug(name, explicit string) string {
	if s := slug.Make(explicit); s != "" {
		return s
	}
	return slug.Make(name)
}

func (h *CategoryHandler) save(cat *models.Category, create bool) error {
	var err error
	if create {
		err = h.DB.Create(cat).Error
	} else {
		err = h.DB.Save(cat).Error
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fiber.NewError(fiber.StatusBadRequest, "Category slug already exists")
	}
	if err != nil {
		return fmt.Errorf("save category: %w", err)
	}
	return nil
}

func emptySlug() error {
	return validationFail(map[string][]string{"slug": {"slug must contain letters or digits"}})
}

func (h *CategoryHandler) slugTaken(s string, except models.Category) (bool, error) {
	var count int64
	err := h.DB.Model(&models.Category{}).Where("slug = ? AND id <> ?", s, except.ID).Count(&count).Error
	return count > 0, err
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req CategoryReq
	if err := bind(c, &req); err != nil {
		return err
	}
	cat := models.Category{Name: strings.TrimSpace(req.Name), Slug: categorySlug(req.Name, req.Slug)}
	if cat.Slug == "" {
		return emptySlug()
	}

	taken, err := h.slugTaken(cat.Slug, cat)
	if err != nil {
		return fmt.Errorf("check category slug: %w", err)
	}
	if taken {
		return fiber.NewError(fiber.StatusBadRequest, "Category slug already exists")
	}
	if err := h.save(&cat, true); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(cat)
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats := []models.Category{}
	if err := h.DB.Order("name ASC").Find(&cats).Error; err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	return c.JSON(cats)
}

// Portfolios lists the portfolio items of the category named by ?category=<slug>.
func (h *CategoryHandler) Portfolios(c *fiber.Ctx) error {
	s := strings.TrimSpace(c.Query("category"))
	if s == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Category slug is required")
	}

	var cat models.Category
	err := h.DB.Where("slug = ?", s).First(&cat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fiber.NewError(fiber.StatusNotFound, categoryNotFound)
	}
	if err != nil {
		return fmt.Errorf("load category by slug: %w", err)
	}

	items := []models.Portfolio{}
	if err := h.DB.Where("category_id = ?", cat.ID).Order("created_at DESC").Find(&items).Error; err != nil {
		return fmt.Errorf("list category portfolios: %w", err)
	}
	return c.JSON(items)
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id", categoryNotFound)
	if err != nil {
		return err
	}
	var req UpdateCategoryReq
	if err := bind(c, &req); err != nil {
		return err
	}
	var cat models.Category
	if err := first(h.DB, &cat, id, categoryNotFound); err != nil {
		return err
	}

	if req.Name != nil {
		cat.Name = strings.TrimSpace(*req.Name)
	}
	if req.Slug != nil {
		cat.Slug = categorySlug(cat.Name, *req.Slug)
	}
	if cat.Slug == "" {
		return emptySlug()
	}
	taken, err := h.slugTaken(cat.Slug, cat)
	if err != nil {
		return fmt.Errorf("check category slug: %w", err)
	}
	if taken {
		return fiber.NewError(fiber.StatusBadRequest, "Category slug already exists")
	}
	if err := h.save(&cat, false); err != nil {
		return err
	}
	return c.JSON(cat)
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id", categoryNotFound)
	if err != nil {
		return err
	}
	if err := deleteByID(h.DB, &models.Category{}, id, categoryNotFound); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Category deleted successfully"})
}
