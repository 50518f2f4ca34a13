package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in progress"
	TaskDone       TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskDone:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Subtask struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Done  bool      `json:"done"`
}

type Feedback struct {
	ID        uuid.UUID `json:"id"`
	Author    uuid.UUID `json:"author"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// Task is an internal work item assigned to a developer account.
// Overdue state is never stored, see IsOverdue.
type Task struct {
	Base
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Priority    Priority   `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	DueDate     time.Time  `gorm:"not null" json:"dueDate"`
	AssignedTo  uuid.UUID  `gorm:"type:uuid;not null;index" json:"assignedTo"`

	Subtasks datatypes.JSONSlice[Subtask]  `json:"subtasks"`
	Feedback datatypes.JSONSlice[Feedback] `json:"feedback"`
}

func (t *Task) BeforeSave(tx *gorm.DB) (err error) {
	if t.Subtasks == nil {
		t.Subtasks = datatypes.JSONSlice[Subtask]{}
	}
	if t.Feedback == nil {
		t.Feedback = datatypes.JSONSlice[Feedback]{}
	}
	return
}

// IsOverdue is true when the due date has passed and the task is not done.
func (t *Task) IsOverdue(now time.Time) bool {
	return now.After(t.DueDate) && t.Status != TaskDone
}

// ToggleSubtask flips the done flag of one subtask and reports whether it exists.
func (t *Task) ToggleSubtask(id uuid.UUID) bool {
	for i := range t.Subtasks {
		if t.Subtasks[i].ID == id {
			t.Subtasks[i].Done = !t.Subtasks[i].Done
			return true
		}
	}
	return false
}

// RemoveFeedback drops one feedback entry and reports whether it existed.
func (t *Task) RemoveFeedback(id uuid.UUID) bool {
	for i, f := range t.Feedback {
		if f.ID == id {
			t.Feedback = append(t.Feedback[:i:i], t.Feedback[i+1:]...)
			return true
		}
	}
	return false
}
