package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Company struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	Name    string    `gorm:"index;not null"`
	Address string
	Phone   string
	Email   string
	Notes   string

	Contacts []Contact `gorm:"foreignKey:CompanyID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
}

func (co *Company) BeforeCreate(tx *gorm.DB) (err error) {
	if co.ID == uuid.Nil {
		co.ID = uuid.New()
	}
	return
}

// Contact is a point of contact at a client company
type Contact struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CompanyID uuid.UUID `gorm:"type:uuid;index;not null"`
	Name      string    `gorm:"not null"`
	Title     string
	Phone     string
	Email     string
	Notes     string

	CreatedAt time.Time
}

func (ct *Contact) BeforeCreate(tx *gorm.DB) (err error) {
	if ct.ID == uuid.Nil {
		ct.ID = uuid.New()
	}
	return
}
