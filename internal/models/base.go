package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base is embedded by every stored document.
type Base struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}

// All lists every model managed by AutoMigrate.
func All() []any {
	return []any{
		&Account{},
		&Task{},
		&Course{},
		&Syllabus{},
		&Review{},
		&Blog{},
		&Comment{},
		&Category{},
		&Portfolio{},
		&Team{},
		&Testimonial{},
		&Pricing{},
		&YourLogo{},
		&ClientLead{},
		&Contact{},
		&Developer{},
	}
}
