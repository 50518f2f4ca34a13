package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

type SyllabusEntry struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Week        string `json:"week"`
}

// Course caches its review aggregate in NumberOfReviews and AverageRating.
// Both are written only by the rating service.
type Course struct {
	Base
	Title       string  `gorm:"not null" json:"title"`
	Description string  `gorm:"type:text;not null" json:"description"`
	Duration    string  `gorm:"not null" json:"duration"`
	Level       Level   `gorm:"type:varchar(20)" json:"level"`
	Price       float64 `gorm:"not null" json:"price"`

	Tags     datatypes.JSONSlice[string]        `json:"tags"`
	Syllabus datatypes.JSONSlice[SyllabusEntry] `json:"syllabus"`

	NumberOfReviews int     `gorm:"not null;default:0" json:"numberOfReviews"`
	AverageRating   float64 `gorm:"not null;default:0" json:"averageRating"`
}

func (c *Course) BeforeSave(tx *gorm.DB) (err error) {
	if c.Tags == nil {
		c.Tags = datatypes.JSONSlice[string]{}
	}
	if c.Syllabus == nil {
		c.Syllabus = datatypes.JSONSlice[SyllabusEntry]{}
	}
	return
}

// Syllabus is a standalone syllabus entry managed from its own endpoints.
type Syllabus struct {
	Base
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	Week        string `gorm:"not null" json:"week"`
}

func (Syllabus) TableName() string {
	return "syllabuses"
}
