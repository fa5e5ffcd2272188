package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Quote struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	QuoteNumber     string    `gorm:"uniqueIndex;not null"`
	Name            string    `gorm:"not null"`
	ClientName      string    `gorm:"not null"`
	DepartmentID    uuid.UUID `gorm:"type:uuid;index;not null"`
	CompanyID       *uuid.UUID `gorm:"type:uuid;index"`
	ContactID       *uuid.UUID `gorm:"type:uuid;index"`
	ProjectAddress  string
	Description     string
	Status          string `gorm:"type:varchar(20);default:'draft';index"`

	// Version counts up by exactly one on every mutating update; the
	// pre-update row is snapshotted into quote_versions first.
	Version int `gorm:"not null;default:1"`

	EquipmentMarkupDefault float64 `gorm:"type:decimal(5,2);default:20.0"`
	TaxRate                float64 `gorm:"type:decimal(5,2);default:8.0"`
	TaxEnabled             bool    `gorm:"default:true"`

	CreatedByUserID uuid.UUID `gorm:"type:uuid;index;not null"`

	Rooms []Room `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (q *Quote) BeforeCreate(tx *gorm.DB) (err error) {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	if q.Version == 0 {
		q.Version = 1
	}
	return
}

// QuoteVersion is an immutable snapshot of a quote row, written before the
// row is mutated. Never updated or deleted except by quote cascade.
type QuoteVersion struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	QuoteID         uuid.UUID `gorm:"type:uuid;index:idx_quote_version;not null"`
	Version         int       `gorm:"index:idx_quote_version;not null"`
	Data            JSONB     `gorm:"type:jsonb;not null"`
	ChangedByUserID uuid.UUID `gorm:"type:uuid;not null"`

	CreatedAt time.Time
}

func (qv *QuoteVersion) BeforeCreate(tx *gorm.DB) (err error) {
	if qv.ID == uuid.Nil {
		qv.ID = uuid.New()
	}
	return
}
