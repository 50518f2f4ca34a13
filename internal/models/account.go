// internal/models/account.go
package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Role string

const (
	RoleClient Role = "client"
	RoleJunior Role = "junior"
	RoleMiddle Role = "middle"
	RoleSenior Role = "senior"
)

// DeveloperRoles are the roles that take part in task tracking.
var DeveloperRoles = []Role{RoleJunior, RoleMiddle, RoleSenior}

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleJunior, RoleMiddle, RoleSenior:
		return true
	}
	return false
}

type Badge struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IconURL     string    `json:"iconUrl"`
	AwardedAt   time.Time `json:"awardedAt"`
}

type Account struct {
	Base
	Name  string `gorm:"not null" json:"name"`
	Email string `gorm:"uniqueIndex;not null" json:"email"`

	Password     string  `gorm:"not null" json:"-"`
	Role         Role    `gorm:"type:varchar(20);not null;default:'client';index" json:"role"`
	RefreshToken *string `gorm:"type:text" json:"-"`

	Skills   datatypes.JSONSlice[string] `json:"skills"`
	Badges   datatypes.JSONSlice[Badge]  `json:"badges"`
	ImageURL string                      `gorm:"type:text" json:"imageUrl"`
}

func (Account) TableName() string {
	return "accounts"
}

// HasBadge reports whether a badge with the given title was already awarded.
func (a *Account) HasBadge(title string) bool {
	for _, b := range a.Badges {
		if b.Title == title {
			return true
		}
	}
	return false
}

// MergeSkills appends the skills not yet present, keeping first-seen order.
func (a *Account) MergeSkills(skills []string) {
	seen := make(map[string]bool, len(a.Skills)+len(skills))
	merged := make([]string, 0, len(a.Skills)+len(skills))
	for _, s := range append(append([]string{}, a.Skills...), skills...) {
		if seen[s] {
			continue
		}
		seen[s] = true
		merged = append(merged, s)
	}
	a.Skills = merged
}

// PublicProfile is what identity endpoints expose.
type PublicProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Name  string `json:"name"`
}

func (a *Account) Public() PublicProfile {
	return PublicProfile{
		ID:    a.ID.String(),
		Email: a.Email,
		Role:  a.Role,
		Name:  a.Name,
	}
}

func (a *Account) BeforeSave(tx *gorm.DB) (err error) {
	if a.Skills == nil {
		a.Skills = datatypes.JSONSlice[string]{}
	}
	if a.Badges == nil {
		a.Badges = datatypes.JSONSlice[Badge]{}
	}
	return
}
