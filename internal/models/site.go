package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Team is a public team member card, distinct from accounts.
type Team struct {
	Base
	Name          string                      `gorm:"not null" json:"name"`
	Bio           string                      `gorm:"type:text;not null" json:"bio"`
	Rank          int                         `gorm:"not null;index" json:"rank"`
	Skills        datatypes.JSONSlice[string] `json:"skills"`
	Image         string                      `gorm:"type:text;not null" json:"image"`
	ProjectURL    datatypes.JSONSlice[string] `json:"projectUrl"`
	ProjectImages datatypes.JSONSlice[string] `json:"projectImages"`
}

func (Team) TableName() string {
	return "team_members"
}

func (t *Team) BeforeSave(tx *gorm.DB) (err error) {
	if t.Skills == nil {
		t.Skills = datatypes.JSONSlice[string]{}
	}
	if t.ProjectURL == nil {
		t.ProjectURL = datatypes.JSONSlice[string]{}
	}
	if t.ProjectImages == nil {
		t.ProjectImages = datatypes.JSONSlice[string]{}
	}
	return
}

type Testimonial struct {
	Base
	Name     string `gorm:"not null" json:"name"`
	JobTitle string `json:"jobTitle,omitempty"`
	Quote    string `gorm:"type:text;not null" json:"quote"`
	ImageURL string `gorm:"type:text;not null" json:"imageUrl"`
}

type Pricing struct {
	Base
	Title       string                      `gorm:"not null" json:"title"`
	Description string                      `gorm:"type:text;not null" json:"description"`
	Price       float64                     `gorm:"not null" json:"price"`
	Features    datatypes.JSONSlice[string] `json:"features"`
}

func (Pricing) TableName() string {
	return "pricing_plans"
}

func (p *Pricing) BeforeSave(tx *gorm.DB) (err error) {
	if p.Features == nil {
		p.Features = datatypes.JSONSlice[string]{}
	}
	return
}

// YourLogo is a partner/customer logo shown on the site.
type YourLogo struct {
	Base
	Name  string `gorm:"not null" json:"name"`
	Image string `gorm:"type:text;not null" json:"image"`
}

func (YourLogo) TableName() string {
	return "partner_logos"
}
