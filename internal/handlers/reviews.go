package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/agency_be/internal/middleware"
	"github.com/Windi-Fikriyansyah/agency_be/internal/models"
	"github.com/Windi-Fikriyansyah/agency_be/internal/services/rating"
)

type RatingRecomputer interface {
	Recompute(ctx context.Context, courseID uuid.UUID) (rating.Summary, error)
}

type ReviewHandler struct {
	DB      *gorm.DB
	Ratings RatingRecomputer
	Log     logrus.FieldLogger
}

func NewReviewHandler(db *gorm.DB, ratings RatingRecomputer, log logrus.FieldLogger) *ReviewHandler {
	return &ReviewHandler{DB: db, Ratings: ratings, Log: log}
}

const (
	reviewNotFound  = "Review not found or you don't have permission to change it"
	alreadyReviewed = "You have already reviewed this course"
)

type CreateReviewReq struct {
	Course  string `json:"course" validate:"required,uuid"`
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"omitempty,max=2000"`
}

type UpdateReviewReq struct {
	Rating  *int    `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Comment *string `json:"comment" validate:"omitempty,max=2000"`
}

// recompute refreshes the course cache after a review write. The two writes
// are not transactional; a failure here leaves a stale cache and is only logged.
func (h *ReviewHandler) recompute(ctx context.Context, courseID uuid.UUID) {
	if _, err := h.Ratings.Recompute(ctx, courseID); err != nil {
		h.Log.WithError(err).WithField("course", courseID).Error("recompute course rating")
	}
}

func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	var req CreateReviewReq
	if err := bind(c, &req); err != nil {
		return err
	}
	userID, ok := middleware.AccountID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	courseID := uuid.MustParse(req.Course)

	var course models.Course
	if err := first(h.DB.Select("id"), &course, courseID, courseNotFound); err != nil {
		return err
	}

	var count int64
	if err := h.DB.Model(&models.Review{}).
		Where("course_id = ? AND user_id = ?", courseID, userID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check existing review: %w", err)
	}
	if count > 0 {
		return fiber.NewError(fiber.StatusBadRequest, alreadyReviewed)
	}

	r := models.Review{CourseID: courseID, UserID: userID, Rating: req.Rating, Comment: req.Comment}
	if err := h.DB.Create(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fiber.NewError(fiber.StatusBadRequest, alreadyReviewed)
		}
		return fmt.Errorf("create review: %w", err)
	}

	h.recompute(c.UserContext(), courseID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Review created successfully", "data": r})
}

// ListByCourse returns the course's reviews with its cached rating summary.
func (h *ReviewHandler) ListByCourse(c *fiber.Ctx) error {
	id, err := pathID(c, "courseId", courseNotFound)
	if err != nil {
		return err
	}
	var course models.Course
	if err := first(h.DB, &course, id, courseNotFound); err != nil {
		return err
	}

	reviews := []models.Review{}
	if err := h.DB.Where("course_id = ?", id).Order("created_at DESC").Find(&reviews).Error; err != nil {
		return fmt.Errorf("list reviews: %w", err)
	}

	return c.JSON(fiber.Map{
		"message": "Reviews fetched successfully",
		"data":    reviews,
		"meta": rating.Summary{
			NumberOfReviews: course.NumberOfReviews,
			AverageRating:   course.AverageRating,
		},
	})
}

// own loads a review written by the caller; other people's reviews read as missing.
func (h *ReviewHandler) own(c *fiber.Ctx) (models.Review, error) {
	var r models.Review
	id, err := pathID(c, "id", reviewNotFound)
	if err != nil {
		return r, err
	}
	userID, ok := middleware.AccountID(c)
	if !ok {
		return r, fiber.ErrUnauthorized
	}

	err = h.DB.Where("id = ? AND user_id = ?", id, userID).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r, fiber.NewError(fiber.StatusNotFound, reviewNotFound)
	}
	if err != nil {
		return r, fmt.Errorf("load review: %w", err)
	}
	return r, nil
}

func (h *ReviewHandler) Update(c *fiber.Ctx) error {
	r, err := h.own(c)
	if err != nil {
		return err
	}
	var req UpdateReviewReq
	if err := bind(c, &req); err != nil {
		return err
	}

	if req.Rating != nil {
		r.Rating = *req.Rating
	}
	if req.Comment != nil {
		r.Comment = *req.Comment
	}
	if err := h.DB.Save(&r).Error; err != nil {
		return fmt.Errorf("update review: %w", err)
	}

	h.recompute(c.UserContext(), r.CourseID)
	return c.JSON(fiber.Map{"message": "Review updated successfully", "data": r})
}

func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	r, err := h.own(c)
	if err != nil {
		return err
	}
	if err := deleteByID(h.DB, &models.Review{}, r.ID, reviewNotFound); err != nil {
		return err
	}

	h.recompute(c.UserContext(), r.CourseID)
	return c.JSON(fiber.Map{"message": "Review deleted successfully"})
}
