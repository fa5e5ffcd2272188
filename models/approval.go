package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Approval struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	QuoteID    uuid.UUID `gorm:"type:uuid;index;not null"`
	ApproverID uuid.UUID `gorm:"type:uuid;index;not null"`
	Status     string    `gorm:"type:varchar(20);default:'pending';index"`
	Notes      string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (a *Approval) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
