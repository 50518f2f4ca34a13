package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ClientLead is a prospective client submitted from the website form.
type ClientLead struct {
	Base
	Name     string                      `gorm:"not null" json:"name"`
	Email    string                      `gorm:"uniqueIndex;not null" json:"email"`
	Company  string                      `json:"company,omitempty"`
	Phone    string                      `gorm:"type:varchar(30);not null" json:"phone"`
	Services datatypes.JSONSlice[string] `json:"services"`
	Message  string                      `gorm:"type:text" json:"message,omitempty"`
}

func (ClientLead) TableName() string {
	return "client_leads"
}

func (l *ClientLead) BeforeSave(tx *gorm.DB) (err error) {
	if l.Services == nil {
		l.Services = datatypes.JSONSlice[string]{}
	}
	return
}

type ContactStatus string

const (
	ContactNew       ContactStatus = "new"
	ContactInReview  ContactStatus = "in review"
	ContactResponded ContactStatus = "responded"
	ContactClosed    ContactStatus = "closed"
)

func (s ContactStatus) Valid() bool {
	switch s {
	case ContactNew, ContactInReview, ContactResponded, ContactClosed:
		return true
	}
	return false
}

type Contact struct {
	Base
	Name    string        `gorm:"not null" json:"name"`
	Email   string        `gorm:"not null" json:"email"`
	Subject string        `gorm:"not null" json:"subject"`
	Message string        `gorm:"type:text;not null" json:"message"`
	Status  ContactStatus `gorm:"type:varchar(20);not null;default:'new'" json:"status"`
}
