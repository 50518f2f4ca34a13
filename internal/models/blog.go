package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Blog struct {
	Base
	Title      string                      `gorm:"not null" json:"title"`
	Content    string                      `gorm:"type:text;not null" json:"content"`
	Author     uuid.UUID                   `gorm:"type:uuid;not null;index" json:"author"`
	Tags       datatypes.JSONSlice[string] `json:"tags"`
	Image      string                      `gorm:"type:text" json:"image,omitempty"`
	Category   string                      `gorm:"not null;index" json:"category"`
	IsFeatured bool                        `gorm:"default:false" json:"isFeatured"`
	Views      int                         `gorm:"not null;default:0" json:"views"`
}

func (b *Blog) BeforeSave(tx *gorm.DB) (err error) {
	if b.Tags == nil {
		b.Tags = datatypes.JSONSlice[string]{}
	}
	return
}

type Comment struct {
	Base
	BlogID   uuid.UUID `gorm:"type:uuid;not null;index" json:"blog"`
	Name     string    `gorm:"not null" json:"name"`
	Content  string    `gorm:"type:text;not null" json:"content"`
	Approved bool      `gorm:"default:false;index" json:"approved"`
}
