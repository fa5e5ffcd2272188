package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Labor struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	RoomID   uuid.UUID `gorm:"type:uuid;index;not null"`
	RoleName string    `gorm:"not null"`

	CostRate float64 `gorm:"type:decimal(10,2);not null"` // what you pay per hour
	SellRate float64 `gorm:"type:decimal(10,2);not null"` // what you charge per hour
	Hours    float64 `gorm:"type:decimal(10,2);not null"`

	DepartmentID *uuid.UUID `gorm:"type:uuid;index"`

	CreatedAt time.Time
}

func (l *Labor) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}
