// controllers/template.go
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

type CreateTemplateInput struct {
	Name         string            `json:"name" binding:"required"`
	DepartmentID *uuid.UUID        `json:"departmentId"`
	Services     models.JSONBArray `json:"services" binding:"required"`
	Labor        models.JSONBArray `json:"labor" binding:"required"`
	TaxSettings  models.JSONB      `json:"taxSettings" binding:"required"`
}

// CreateTemplate stores a reusable service/labor/tax bundle
func CreateTemplate(c *gin.Context) {
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

	var input CreateTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	template := models.Template{
		Name:            input.Name,
		DepartmentID:    input.DepartmentID,
		Services:        input.Services,
		Labor:           input.Labor,
		TaxSettings:     input.TaxSettings,
		CreatedByUserID: userUUID,
	}

	if err := config.DB.Create(&template).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create template")
		return
	}

	c.JSON(http.StatusCreated, template)
}

// GetTemplates lists templates, scoped to the caller's department unless admin.
// Templates without a department are visible to everyone.
func GetTemplates(c *gin.Context) {
	query := config.DB.Order("created_at DESC")

	role, _ := c.Get("role")
	if role != "admin" {
		departmentID, _ := c.Get("departmentId")
		deptStr, _ := departmentID.(string)
		if deptUUID, err := uuid.Parse(deptStr); err == nil {
			query = query.Where("department_id IS NULL OR department_id = ?", deptUUID)
		} else {
			query = query.Where("department_id IS NULL")
		}
	}

	var templates []models.Template
	if err := query.Find(&templates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve templates")
		return
	}

	c.JSON(http.StatusOK, templates)
}

// GetTemplate retrieves one template
func GetTemplate(c *gin.Context) {
	templateUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	var template models.Template
	if err := config.DB.First(&template, "id = ?", templateUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Template not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, template)
}

// DeleteTemplate removes a template
func DeleteTemplate(c *gin.Context) {
	templateUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	if err := config.DB.Delete(&models.Template{}, "id = ?", templateUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete template")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Template deleted successfully"})
}

// ApplyTemplate copies a template's tax settings onto a quote and returns
// the template's services and labor for the client to materialize
func ApplyTemplate(c *gin.Context) {
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

	templateUUID, err := uuid.Parse(c.Param("templateId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid template ID format")
		return
	}

	templateService := services.NewTemplateService(config.DB)
	applied, err := templateService.Apply(quoteUUID, templateUUID, userUUID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTemplateNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Template not found")
		case errors.Is(err, services.ErrQuoteNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to apply template")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Template applied",
		"services":     applied.Services,
		"labor":        applied.Labor,
		"tax_settings": applied.TaxSettings,
	})
}
