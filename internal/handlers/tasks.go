package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/agency_be/internal/middleware"
	"github.com/Windi-Fikriyansyah/agency_be/internal/models"
	"github.com/Windi-Fikriyansyah/agency_be/internal/realtime"
)

// TaskEvents receives task notifications for an assignee.
type TaskEvents interface {
	Publish(ctx context.Context, accountID uuid.UUID, eventType string, data any)
}

type TaskHandler struct {
	DB     *gorm.DB
	Events TaskEvents
	Now    func() time.Time
}

func NewTaskHandler(db *gorm.DB, events TaskEvents) *TaskHandler {
	return &TaskHandler{DB: db, Events: events, Now: time.Now}
}

const taskNotFound = "Task not found"

type SubtaskReq struct {
	ID    string `json:"id" validate:"omitempty,uuid"`
	Title string `json:"title" validate:"required"`
	Done  bool   `json:"done"`
}

type CreateTaskReq struct {
	Title       string            `json:"title" validate:"required,min=3"`
	Description string            `json:"description" validate:"required"`
	Status      models.TaskStatus `json:"status" validate:"omitempty,taskstatus"`
	Priority    models.Priority   `json:"priority" validate:"omitempty,priority"`
	DueDate     *time.Time        `json:"dueDate" validate:"required"`
	AssignedTo  string            `json:"assignedTo" validate:"required,uuid"`
	Subtasks    []SubtaskReq      `json:"subtasks" validate:"omitempty,dive"`
}

// UpdateTaskReq is a partial update; absent fields keep their value.
// A present subtasks list replaces the stored one.
type UpdateTaskReq struct {
	Title       *string            `json:"title" validate:"omitempty,min=3"`
	Description *string            `json:"description" validate:"omitempty,min=1"`
	Status      *models.TaskStatus `json:"status" validate:"omitempty,taskstatus"`
	Priority    *models.Priority   `json:"priority" validate:"omitempty,priority"`
	DueDate     *time.Time         `json:"dueDate"`
	AssignedTo  *string            `json:"assignedTo" validate:"omitempty,uuid"`
	Subtasks    []SubtaskReq       `json:"subtasks" validate:"omitempty,dive"`
}

// TaskView is a task as every read path returns it, with the overdue flag
// computed at response time.
type TaskView struct {
	models.Task
	IsOverdue bool `json:"isOverdue"`
}

func (h *TaskHandler) view(t models.Task) TaskView {
	return TaskView{Task: t, IsOverdue: t.IsOverdue(h.Now())}
}

func (h *TaskHandler) views(tasks []models.Task) []TaskView {
	out := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, h.view(t))
	}
	return out
}

func buildSubtasks(in []SubtaskReq) datatypes.JSONSlice[models.Subtask] {
	out := make(datatypes.JSONSlice[models.Subtask], 0, len(in))
	for _, s := range in {
		id, err := uuid.Parse(s.ID)
		if err != nil {
			id = uuid.New()
		}
		out = append(out, models.Subtask{ID: id, Title: strings.TrimSpace(s.Title), Done: s.Done})
	}
	return out
}

// assignee resolves the account a task is assigned to; unknown ids are a 400.
func (h *TaskHandler) assignee(raw string) (uuid.UUID, error) {
	id := uuid.MustParse(raw)
	var count int64
	if err := h.DB.Model(&models.Account{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return uuid.Nil, fmt.Errorf("check assignee: %w", err)
	}
	if count == 0 {
		return uuid.Nil, validationFail(map[string][]string{"assignedTo": {"assignedTo must reference an existing account"}})
	}
	return id, nil
}

func (h *TaskHandler) load(c *fiber.Ctx, param string) (models.Task, error) {
	var t models.Task
	id, err := pathID(c, param, taskNotFound)
	if err != nil {
		return t, err
	}
	err = first(h.DB, &t, id, taskNotFound)
	return t, err
}

func (h *TaskHandler) Create(c *fiber.Ctx) error {
	var req CreateTaskReq
	if err := bind(c, &req); err != nil {
		return err
	}
	assignedTo, err := h.assignee(req.AssignedTo)
	if err != nil {
		return err
	}

	t := models.Task{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate.UTC(),
		AssignedTo:  assignedTo,
		Subtasks:    buildSubtasks(req.Subtasks),
	}
	if t.Status == "" {
		t.Status = models.TaskPending
	}
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}

	if err := h.DB.Create(&t).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	v := h.view(t)
	h.Events.Publish(c.UserContext(), t.AssignedTo, realtime.EventTaskAssigned, v)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Task created successfully", "task": v})
}

// List returns every task, newest first.
func (h *TaskHandler) List(c *fiber.Ctx) error {
	var tasks []models.Task
	if err := h.DB.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}
	return c.JSON(fiber.Map{"message": "Tasks fetched successfully", "tasks": h.views(tasks)})
}

// Mine returns the tasks assigned to the caller.
func (h *TaskHandler) Mine(c *fiber.Ctx) error {
	id, ok := middleware.AccountID(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	var tasks []models.Task
	if err := h.DB.Where("assigned_to = ?", id).Order("created_at DESC").Find(&tasks).Error; err != nil {
		return fmt.Errorf("list own tasks: %w", err)
	}
	return c.JSON(fiber.Map{"message": "Tasks fetched successfully", "tasks": h.views(tasks)})
}

func (h *TaskHandler) Get(c *fiber.Ctx) error {
	t, err := h.load(c, "id")
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Task fetched successfully", "task": h.view(t)})
}

func (h *TaskHandler) Update(c *fiber.Ctx) error {
	t, err := h.load(c, "id")
	if err != nil {
		return err
	}
	var req UpdateTaskReq
	if err := bind(c, &req); err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fiber.NewError(fiber.StatusBadRequest, "Error updating task")
		}
		return err
	}

	previous := t.AssignedTo
	if req.Title != nil {
		t.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Status != nil {
		t.Status = *req.Status
	}
	if req.Priority != nil {
		t.Priority = *req.Priority
	}
	if req.DueDate != nil {
		t.DueDate = req.DueDate.UTC()
	}
	if req.AssignedTo != nil {
		if t.AssignedTo, err = h.assignee(*req.AssignedTo); err != nil {
			return err
		}
	}
	if req.Subtasks != nil {
		t.Subtasks = buildSubtasks(req.Subtasks)
	}

	if err := h.DB.Save(&t).Error; err != nil {
		return fmt.Errorf("update task: %w", err)
	}

	v := h.view(t)
	if t.AssignedTo != previous {
		h.Events.Publish(c.UserContext(), t.AssignedTo, realtime.EventTaskAssigned, v)
	} else {
		h.Events.Publish(c.UserContext(), t.AssignedTo, realtime.EventTaskUpdated, v)
	}
	return c.JSON(fiber.Map{"message": "Task updated successfully", "task": v})
}

// Delete empties the subtask list before removing the task.
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	t, err := h.load(c, "id")
	if err != nil {
		return err
	}

	t.Subtasks = datatypes.JSONSlice[models.Subtask]{}
	if err := h.DB.Model(&t).UpdateColumn("subtasks", t.Subtasks).Error; err != nil {
		return fmt.Errorf("clear subtasks: %w", err)
	}
	if err := deleteByID(h.DB, &models.Task{}, t.ID, taskNotFound); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Task deleted successfully", "deletedTask": h.view(t)})
}

func (h *TaskHandler) ToggleSubtask(c *fiber.Ctx) error {
	t, err := h.load(c, "id")
	if err != nil {
		return err
	}
	subID, err := pathID(c, "subtaskId", "Subtask not found")
	if err != nil {
		return err
	}
	if !t.ToggleSubtask(subID) {
		return fiber.NewError(fiber.StatusNotFound, "Subtask not found")
	}

	if err := h.DB.Save(&t).Error; err != nil {
		return fmt.Errorf("toggle subtask: %w", err)
	}

	v := h.view(t)
	h.Events.Publish(c.UserContext(), t.AssignedTo, realtime.EventTaskUpdated, v)
	return c.JSON(fiber.Map{"message": "Subtask toggled successfully", "task": v})
}
