// controllers/equipment.go
package controllers

import (
	"errors"
	"net/http"

	"avquotes-backend/config"
	"avquotes-backend/models"
	"avquotes-backend/services"
	"avquotes-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateEquipmentInput struct {
	SystemID       uuid.UUID `json:"systemId" binding:"required"`
	ItemName       string    `json:"itemName" binding:"required"`
	Model          string    `json:"model"`
	Description    string    `json:"description"`
	Quantity       int       `json:"quantity" binding:"required,min=1"`
	UnitCost       float64   `json:"unitCost" binding:"min=0"`
	MarkupOverride *float64  `json:"markupOverride" binding:"omitempty,min=0"`
	Vendor         string    `json:"vendor"`
	TaxExempt      bool      `json:"taxExempt"`
}

// EquipmentWithPricing is an equipment row plus its derived price fields
type EquipmentWithPricing struct {
	models.Equipment
	UnitPrice     float64 `json:"unit_price"`
	TotalCost     float64 `json:"total_cost"`
	TotalPrice    float64 `json:"total_price"`
	MarginDollars float64 `json:"margin_dollars"`
	MarginPercent float64 `json:"margin_percent"`
}

// CreateEquipment adds an equipment line to a system
func CreateEquipment(c *gin.Context) {
	var input CreateEquipmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var system models.System
	if err := config.DB.First(&system, "id = ?", input.SystemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "System not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	equipment := models.Equipment{
		SystemID:       input.SystemID,
		ItemName:       input.ItemName,
		Model:          input.Model,
		Description:    input.Description,
		Quantity:       input.Quantity,
		UnitCost:       input.UnitCost,
		MarkupOverride: input.MarkupOverride,
		Vendor:         input.Vendor,
		TaxExempt:      input.TaxExempt,
	}

	if err := config.DB.Create(&equipment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create equipment")
		return
	}

	c.JSON(http.StatusCreated, equipment)
}

// GetEquipmentBySystem lists a system's equipment with derived pricing,
// resolving each line's markup against the owning quote's default
func GetEquipmentBySystem(c *gin.Context) {
	systemUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid system ID format")
		return
	}

	// Walk up to the owning quote for its default markup
	var quote models.Quote
	err = config.DB.
		Joins("JOIN rooms ON rooms.quote_id = quotes.id").
		Joins("JOIN systems ON systems.room_id = rooms.id").
		Where("systems.id = ?", systemUUID).
		First(&quote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "System not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var equipment []models.Equipment
	if err := config.DB.Where("system_id = ?", systemUUID).
		Order("created_at").Find(&equipment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve equipment")
		return
	}

	priced := make([]EquipmentWithPricing, 0, len(equipment))
	for _, eq := range equipment {
		markup := services.EffectiveMarkup(eq.MarkupOverride, quote.EquipmentMarkupDefault)
		unitPrice := services.UnitPrice(eq.UnitCost, markup)

		priced = append(priced, EquipmentWithPricing{
			Equipment:     eq,
			UnitPrice:     services.Round2(unitPrice),
			TotalCost:     services.Round2(services.LineCost(eq.UnitCost, eq.Quantity)),
			TotalPrice:    services.Round2(services.LinePrice(unitPrice, eq.Quantity)),
			MarginDollars: services.Round2((unitPrice - eq.UnitCost) * float64(eq.Quantity)),
			MarginPercent: services.Round2(markup),
		})
	}

	c.JSON(http.StatusOK, priced)
}

// UpdateEquipment replaces an equipment line's fields
func UpdateEquipment(c *gin.Context) {
	equipUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid equipment ID format")
		return
	}

	var input CreateEquipmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var equipment models.Equipment
	if err := config.DB.First(&equipment, "id = ?", equipUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Equipment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	equipment.ItemName = input.ItemName
	equipment.Model = input.Model
	equipment.Description = input.Description
	equipment.Quantity = input.Quantity
	equipment.UnitCost = input.UnitCost
	equipment.MarkupOverride = input.MarkupOverride
	equipment.Vendor = input.Vendor
	equipment.TaxExempt = input.TaxExempt

	if err := config.DB.Save(&equipment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update equipment")
		return
	}

	c.JSON(http.StatusOK, equipment)
}

// DeleteEquipment removes an equipment line
func DeleteEquipment(c *gin.Context) {
	equipUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid equipment ID format")
		return
	}

	if err := config.DB.Delete(&models.Equipment{}, "id = ?", equipUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete equipment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Equipment deleted successfully"})
}
