package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is priced as a percentage of its room's equipment sell price, so
// it carries no cost of its own.
type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	RoomID      uuid.UUID `gorm:"type:uuid;index;not null"`
	ServiceName string    `gorm:"not null"`

	PercentageOfEquipment float64 `gorm:"type:decimal(5,2);not null"`

	DepartmentID *uuid.UUID `gorm:"type:uuid;index"`
	Description  string

	CreatedAt time.Time
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
