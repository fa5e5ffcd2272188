package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Equipment struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	SystemID    uuid.UUID `gorm:"type:uuid;index;not null"`
	ItemName    string    `gorm:"not null"`
	Model       string
	Description string
	Quantity    int     `gorm:"not null"`
	UnitCost    float64 `gorm:"type:decimal(10,2);not null"`

	// Nil means no override: the quote's default markup applies. A non-nil
	// zero is an explicit 0% pass-through item.
	MarkupOverride *float64 `gorm:"type:decimal(5,2)"`

	Vendor    string
	TaxExempt bool `gorm:"default:false"`

	CreatedAt time.Time
}

func (e *Equipment) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}
