package models

import "github.com/google/uuid"

// Review is unique per (course, user); see idx_review_course_user.
type Review struct {
	Base
	CourseID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_course_user" json:"course"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_review_course_user" json:"user"`

	Rating  int    `gorm:"not null" json:"rating"` // 1-5
	Comment string `gorm:"type:text" json:"comment,omitempty"`
}
