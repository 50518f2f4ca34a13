package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Developer is a showcase profile. It references tasks by id only.
type Developer struct {
	Base
	Name         string                         `gorm:"not null" json:"name"`
	Rank         Role                           `gorm:"type:varchar(20);not null" json:"rank"`
	Bio          string                         `gorm:"type:text;not null" json:"bio"`
	Skills       datatypes.JSONSlice[string]    `json:"skills"`
	ProfileImage string                         `gorm:"type:text" json:"profileImage"`
	TaskIDs      datatypes.JSONSlice[uuid.UUID] `json:"taskIds"`

	Tasks []Task `gorm:"-" json:"tasks"`
}

func (d *Developer) BeforeSave(tx *gorm.DB) (err error) {
	if d.Skills == nil {
		d.Skills = datatypes.JSONSlice[string]{}
	}
	if d.TaskIDs == nil {
		d.TaskIDs = datatypes.JSONSlice[uuid.UUID]{}
	}
	return
}
