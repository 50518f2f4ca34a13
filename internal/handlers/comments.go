package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/agency_be/internal/models"
)

type CommentHandler struct {
	DB *gorm.DB
}

func NewCommentHandler(db *gorm.DB) *CommentHandler {
	return &CommentHandler{DB: db}
}

const commentNotFound = "Comment not found"

type CommentReq struct {
	Blog    string `json:"blog" validate:"required,uuid"`
	Name    string `json:"name" validate:"required,min=2"`
	Content string `json:"content" validate:"required"`
}

// Create stores an unapproved comment on an existing blog.
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	var req CommentReq
	if err := bind(c, &req); err != nil {
		return err
	}
	blogID := uuid.MustParse(req.Blog)

	var blog models.Blog
	if err := first(h.DB.Select("id"), &blog, blogID, blogNotFound); err != nil {
		return err
	}

	cm := models.Comment{
		BlogID:  blogID,
		Name:    strings.TrimSpace(req.Name),
		Content: req.Content,
	}
	if err := h.DB.Create(&cm).Error; err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Comment created successfully", "comment": cm})
}

// List returns all comments for moderation, optionally for one blog.
func (h *CommentHandler) List(c *fiber.Ctx) error {
	q := h.DB.Order("created_at DESC")
	if raw := c.Query("blog"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.JSON(fiber.Map{"message": "Comments fetched successfully", "comments": []models.Comment{}})
		}
		q = q.Where("blog_id = ?", id)
	}

	comments := []models.Comment{}
	if err := q.Find(&comments).Error; err != nil {
		return fmt.Errorf("list comments: %w", err)
	}
	return c.JSON(fiber.Map{"message": "Comments fetched successfully", "comments": comments})
}

func (h *CommentHandler) ListApproved(c *fiber.Ctx) error {
	comments := []models.Comment{}
	id, err := uuid.Parse(c.Params("blogId"))
	if err == nil {
		if err := h.DB.Where("blog_id = ? AND approved = ?", id, true).
			Order("created_at ASC").
			Find(&comments).Error; err != nil {
			return fmt.Errorf("list approved comments: %w", err)
		}
	}
	return c.JSON(fiber.Map{"message": "Approved comments fetched successfully", "comments": comments})
}

func (h *CommentHandler) Approve(c *fiber.Ctx) error {
	id, err := pathID(c, "id", commentNotFound)
	if err != nil {
		return err
	}
	var cm models.Comment
	if err := first(h.DB, &cm, id, commentNotFound); err != nil {
		return err
	}

	cm.Approved = true
	if err := h.DB.Save(&cm).Error; err != nil {
		return fmt.Errorf("approve comment: %w", err)
	}
	return c.JSON(fiber.Map{"message": "Comment approved successfully", "comment": cm})
}

func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id", commentNotFound)
	if err != nil {
		return err
	}
	var cm models.Comment
	if err := first(h.DB, &cm, id, commentNotFound); err != nil {
		return err
	}
	if err := deleteByID(h.DB, &models.Comment{}, id, commentNotFound); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Comment deleted successfully", "deletedComment": cm})
}
