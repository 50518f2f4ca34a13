package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/agency_be/internal/middleware"
	"github.com/Windi-Fikriyansyah/agency_be/internal/models"
)

type BlogHandler struct {
	DB *gorm.DB
}

func NewBlogHandler(db *gorm.DB) *BlogHandler {
	return &BlogHandler{DB: db}
}

const blogNotFound = "Blog not found"

type CreateBlogReq struct {
	Title      string   `json:"title" validate:"required,min=3"`
	Content    string   `json:"content" validate:"required"`
	Tags       []string `json:"tags"`
	Image      string   `json:"image"`
	Category   string   `json:"category" validate:"required"`
	IsFeatured bool     `json:"isFeatured"`
}

type UpdateBlogReq struct {
	Title      *string  `json:"title" validate:"omitempty,min=3"`
	Content    *string  `json:"content"`
	Tags       []string `json:"tags"`
	Image      *string  `json:"image"`
	Category   *string  `json:"category"`
	IsFeatured *bool    `json:"isFeatured"`
}

// withTags keeps blogs carrying at least one of tags.
func withTags(db *gorm.DB, tags []string) *gorm.DB {
	if db.Dialector.Name() == "postgres" {
		return db.Where("EXISTS (SELECT 1 FROM jsonb_array_elements_text(blogs.tags) AS t(tag) WHERE t.tag IN ?)", tags)
	}
	return db.Where("EXISTS (SELECT 1 FROM json_each(blogs.tags) WHERE json_each.value IN ?)", tags)
}

func splitCSV(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (h *BlogHandler) Create(c *fiber.Ctx) error {
	var req CreateBlogReq
	if err := bind(c, &req); err != nil {
		return err
	}
	author, _ := middleware.AccountID(c)

	b := models.Blog{
		Title:      strings.TrimSpace(req.Title),
		Content:    req.Content,
		Author:     author,
		Tags:       req.Tags,
		Image:      req.Image,
		Category:   strings.TrimSpace(req.Category),
		IsFeatured: req.IsFeatured,
	}
	if err := h.DB.Create(&b).Error; err != nil {
		return fmt.Errorf("create blog: %w", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Blog created successfully", "data": b})
}

// List filters by category and any of the comma separated tags.
func (h *BlogHandler) List(c *fiber.Ctx) error {
	p := pagination(c, 10)

	q := h.DB.Model(&models.Blog{})
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		q = q.Where("category = ?", category)
	}
	if tags := splitCSV(c.Query("tags")); len(tags) > 0 {
		q = withTags(q, tags)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return fmt.Errorf("count blogs: %w", err)
	}
	blogs := []models.Blog{}
	if err := q.Order("created_at DESC").Offset(p.Offset()).Limit(p.Limit).Find(&blogs).Error; err != nil {
		return fmt.Errorf("list blogs: %w", err)
	}

	return c.JSON(paged(fiber.Map{"message": "Blogs fetched successfully", "blogs": blogs}, p, total))
}

// Get counts a view on every read.
func (h *BlogHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id", blogNotFound)
	if err != nil {
		return err
	}
	var b models.Blog
	if err := first(h.DB, &b, id, blogNotFound); err != nil {
		return err
	}

	if err := h.DB.Model(&b).UpdateColumn("views", gorm.Expr("views + ?", 1)).Error; err != nil {
		return fmt.Errorf("count blog view: %w", err)
	}
	b.Views++

	return c.JSON(fiber.Map{"message": "Blog fetched successfully", "data": b})
}

func (h *BlogHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id", blogNotFound)
	if err != nil {
		return err
	}
	var req UpdateBlogReq
	if err := bind(c, &req); err != nil {
		return err
	}
	var b models.Blog
	if err := first(h.DB, &b, id, blogNotFound); err != nil {
		return err
	}

	if req.Title != nil {
		b.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		b.Content = *req.Content
	}
	if req.Tags != nil {
		b.Tags = req.Tags
	}
	if req.Image != nil {
		b.Image = *req.Image
	}
	if req.Category != nil {
		b.Category = strings.TrimSpace(*req.Category)
	}
	if req.IsFeatured != nil {
		b.IsFeatured = *req.IsFeatured
	}

	if err := h.DB.Save(&b).Error; err != nil {
		return fmt.Errorf("update blog: %w", err)
	}
	return c.JSON(fiber.Map{"message": "Blog updated successfully", "data": b})
}

func (h *BlogHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id", blogNotFound)
	if err != nil {
		return err
	}
	if err := deleteByID(h.DB, &models.Blog{}, id, blogNotFound); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Blog deleted successfully"})
}
