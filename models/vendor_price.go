package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VendorPrice struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	ItemName    string    `gorm:"index;not null"`
	Model       string
	Cost        float64 `gorm:"type:decimal(10,2);not null"`
	Description string
	Vendor      string `gorm:"index;not null"`

	DepartmentID   *uuid.UUID `gorm:"type:uuid;index"`
	AllDepartments bool       `gorm:"default:false"`

	// Expired rows are purged by the daily scheduler
	ExpirationDate *time.Time

	ImportedAt time.Time `gorm:"autoCreateTime"`
}

func (vp *VendorPrice) BeforeCreate(tx *gorm.DB) (err error) {
	if vp.ID == uuid.Nil {
		vp.ID = uuid.New()
	}
	return
}
