// controllers/quote.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"avquotes-backend/config"
	"avquotes-backend/models"
	"avquotes-backend/services"
	"avquotes-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateQuoteInput struct {
	Name                   string     `json:"name" binding:"required"`
	ClientName             string     `json:"clientName" binding:"required"`
	DepartmentID           uuid.UUID  `json:"departmentId" binding:"required"`
	CompanyID              *uuid.UUID `json:"companyId"`
	ContactID              *uuid.UUID `json:"contactId"`
	ProjectAddress         string     `json:"projectAddress"`
	Description            string     `json:"description"`
	EquipmentMarkupDefault *float64   `json:"equipmentMarkupDefault" binding:"omitempty,min=0"`
	TaxRate                *float64   `json:"taxRate" binding:"omitempty,min=0"`
	TaxEnabled             *bool      `json:"taxEnabled"`
}

type UpdateQuoteInput struct {
	Name                   *string    `json:"name"`
	ClientName             *string    `json:"clientName"`
	DepartmentID           *uuid.UUID `json:"departmentId"`
	CompanyID              *uuid.UUID `json:"companyId"`
	ContactID              *uuid.UUID `json:"contactId"`
	ProjectAddress         *string    `json:"projectAddress"`
	Description            *string    `json:"description"`
	Status                 *string    `json:"status" binding:"omitempty,oneof=draft pending approved rejected revision"`
	EquipmentMarkupDefault *float64   `json:"equipmentMarkupDefault" binding:"omitempty,min=0"`
	TaxRate                *float64   `json:"taxRate" binding:"omitempty,min=0"`
	TaxEnabled             *bool      `json:"taxEnabled"`
}

// CreateQuote starts a new quote at version 1
func CreateQuote(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	var input CreateQuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	quote := models.Quote{
		QuoteNumber:            "Q-" + time.Now().Format("20060102") + "-" + utils.GenerateRandomString(6),
		Name:                   input.Name,
		ClientName:             input.ClientName,
		DepartmentID:           input.DepartmentID,
		CompanyID:              input.CompanyID,
		ContactID:              input.ContactID,
		ProjectAddress:         input.ProjectAddress,
		Description:            input.Description,
		Status:                 "draft",
		Version:                1,
		EquipmentMarkupDefault: 20.0,
		TaxRate:                8.0,
		TaxEnabled:             true,
		CreatedByUserID:        userUUID,
	}
	if input.EquipmentMarkupDefault != nil {
		quote.EquipmentMarkupDefault = *input.EquipmentMarkupDefault
	}
	if input.TaxRate != nil {
		quote.TaxRate = *input.TaxRate
	}
	if input.TaxEnabled != nil {
		quote.TaxEnabled = *input.TaxEnabled
	}

	if err := config.DB.Create(&quote).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create quote")
		return
	}

	c.JSON(http.StatusCreated, quote)
}

// GetQuotes lists quotes, scoped to the caller's department unless admin
func GetQuotes(c *gin.Context) {
	query := config.DB.Order("updated_at DESC")

	role, _ := c.Get("role")
	if role != "admin" {
		departmentID, _ := c.Get("departmentId")
		deptStr, _ := departmentID.(string)
		deptUUID, err := uuid.Parse(deptStr)
		if err != nil {
			// Estimators without a department see nothing rather than everything
			c.JSON(http.StatusOK, []models.Quote{})
			return
		}
		query = query.Where("department_id = ?", deptUUID)
	}

	var quotes []models.Quote
	if err := query.Find(&quotes).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve quotes")
		return
	}

	c.JSON(http.StatusOK, quotes)
}

// GetQuote retrieves one quote with its room hierarchy
func GetQuote(c *gin.Context) {
	quoteUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid quote ID format")
		return
	}

	var quote models.Quote
	if err := config.DB.
		Preload("Rooms.Systems.Equipment").
		Preload("Rooms.Labor").
		Preload("Rooms.Services").
		First(&quote, "id = ?", quoteUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, quote)
}

// UpdateQuote applies partial updates through the snapshot-then-update path,
// so every change lands as a new version with the prior row preserved
func UpdateQuote(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	quoteUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid quote ID format")
		return
	}

	var input UpdateQuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.ClientName != nil {
		updates["client_name"] = *input.ClientName
	}
	if input.DepartmentID != nil {
		updates["department_id"] = *input.DepartmentID
	}
	if input.CompanyID != nil {
		updates["company_id"] = *input.CompanyID
	}
	if input.ContactID != nil {
		updates["contact_id"] = *input.ContactID
	}
	if input.ProjectAddress != nil {
		updates["project_address"] = *input.ProjectAddress
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.EquipmentMarkupDefault != nil {
		updates["equipment_markup_default"] = *input.EquipmentMarkupDefault
	}
	if input.TaxRate != nil {
		updates["tax_rate"] = *input.TaxRate
	}
	if input.TaxEnabled != nil {
		updates["tax_enabled"] = *input.TaxEnabled
	}

	if len(updates) == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "No fields to update")
		return
	}

	versionService := services.NewVersionService(config.DB)
	if err := versionService.SnapshotAndUpdate(quoteUUID, userUUID, updates); err != nil {
		if errors.Is(err, services.ErrQuoteNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update quote")
		}
		return
	}

	var quote models.Quote
	if err := config.DB.First(&quote, "id = ?", quoteUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, quote)
}

// UpdateQuoteStatus moves a quote through the approval workflow states
func UpdateQuoteStatus(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	quoteUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid quote ID format")
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !utils.ValidateQuoteStatus(input.Status) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid status")
		return
	}

	versionService := services.NewVersionService(config.DB)
	err = versionService.SnapshotAndUpdate(quoteUUID, userUUID, map[string]interface{}{
		"status": input.Status,
	})
	if err != nil {
		if errors.Is(err, services.ErrQuoteNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update quote status")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quote status updated successfully", "status": input.Status})
}

// DeleteQuote removes a quote and cascades to rooms, versions and approvals
func DeleteQuote(c *gin.Context) {
	quoteUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid quote ID format")
		return
	}

	if err := config.DB.Delete(&models.Quote{}, "id = ?", quoteUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete quote")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quote deleted successfully"})
}
