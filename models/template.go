package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Template bundles reusable service/labor line definitions and tax settings.
// Applying one to a quote overwrites the quote's tax settings and hands the
// services/labor arrays back for materialization.
type Template struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key"`
	Name         string     `gorm:"not null"`
	DepartmentID *uuid.UUID `gorm:"type:uuid;index"`

	Services    JSONBArray `gorm:"type:jsonb;not null"`
	Labor       JSONBArray `gorm:"type:jsonb;not null"`
	TaxSettings JSONB      `gorm:"type:jsonb;not null"`

	CreatedByUserID uuid.UUID `gorm:"type:uuid;not null"`

	CreatedAt time.Time
}

func (t *Template) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
