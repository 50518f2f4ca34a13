package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Windi-Fikriyansyah/agency_be/internal/middleware"
	"github.com/Windi-Fikriyansyah/agency_be/internal/models"
	"github.com/Windi-Fikriyansyah/agency_be/internal/realtime"
)

type FeedbackReq struct {
	Comment string `json:"comment" validate:"required"`
}

// AddFeedback appends a comment authored by the caller; a body author is ignored.
func (h *TaskHandler) AddFeedback(c *fiber.Ctx) error {
	t, err := h.load(c, "taskId")
	if err != nil {
		return err
	}
	var req FeedbackReq
	if err := bind(c, &req); err != nil {
		return err
	}
	author, ok := middleware.AccountID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	fb := models.Feedback{
		ID:        uuid.New(),
		Author:    author,
		Comment:   strings.TrimSpace(req.Comment),
		CreatedAt: h.Now().UTC(),
	}
	t.Feedback = append(t.Feedback, fb)
	if err := h.DB.Model(&t).UpdateColumn("feedback", t.Feedback).Error; err != nil {
		return fmt.Errorf("append feedback: %w", err)
	}

	v := h.view(t)
	h.Events.Publish(c.UserContext(), t.AssignedTo, realtime.EventFeedbackAdded, fiber.Map{
		"taskId":   t.ID,
		"feedback": fb,
	})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Feedback added successfully", "task": v})
}

func (h *TaskHandler) ListFeedback(c *fiber.Ctx) error {
	t, err := h.load(c, "taskId")
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Feedback fetched successfully", "feedback": t.Feedback})
}

func (h *TaskHandler) DeleteFeedback(c *fiber.Ctx) error {
	t, err := h.load(c, "taskId")
	if err != nil {
		return err
	}
	fbID, err := pathID(c, "feedbackId", "Feedback not found")
	if err != nil {
		return err
	}
	if !t.RemoveFeedback(fbID) {
		return fiber.NewError(fiber.StatusNotFound, "Feedback not found")
	}

	if err := h.DB.Model(&t).UpdateColumn("feedback", t.Feedback).Error; err != nil {
		return fmt.Errorf("remove feedback: %w", err)
	}
	return c.JSON(fiber.Map{"message": "Feedback deleted successfully", "task": h.view(t)})
}
