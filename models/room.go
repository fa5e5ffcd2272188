package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Room struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	QuoteID uuid.UUID `gorm:"type:uuid;index;not null"`
	Name    string    `gorm:"not null"`

	// Multiplies every cost/price total this room contributes
	Quantity int `gorm:"not null;default:1"`

	Systems  []System  `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
	Labor    []Labor   `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
	Services []Service `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
}

func (r *Room) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Quantity == 0 {
		r.Quantity = 1
	}
	return
}

// System groups equipment within a room and carries no pricing of its own
type System struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	RoomID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Name        string    `gorm:"not null"`
	Description string

	Equipment []Equipment `gorm:"foreignKey:SystemID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
}

func (s *System) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
