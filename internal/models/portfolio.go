package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Category struct {
	Base
	Name string `gorm:"not null" json:"name"`
	Slug string `gorm:"uniqueIndex;not null" json:"slug"`
}

func (Category) TableName() string {
	return "portfolio_categories"
}

type Portfolio struct {
	Base
	Title        string                      `gorm:"not null" json:"title"`
	Description  string                      `gorm:"type:text;not null" json:"description"`
	Technologies datatypes.JSONSlice[string] `json:"technologies"`
	ProjectURL   string                      `gorm:"type:text;not null" json:"projectUrl"`
	Images       datatypes.JSONSlice[string] `json:"images"`
	CategoryID   uuid.UUID                   `gorm:"type:uuid;not null;index" json:"category"`

	Category *Category `gorm:"-" json:"categoryDetail,omitempty"`
}

func (p *Portfolio) BeforeSave(tx *gorm.DB) (err error) {
	if p.Technologies == nil {
		p.Technologies = datatypes.JSONSlice[string]{}
	}
	if p.Images == nil {
		p.Images = datatypes.JSONSlice[string]{}
	}
	return
}
