// controllers/contact.go
package controllers

import (
	"errors"
	"net/http"

	"avquotes-backend/config"
	"avquotes-backend/models"
	"avquotes-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateContactInput struct {
	CompanyID uuid.UUID `json:"companyId" binding:"required"`
	Name      string    `json:"name" binding:"required"`
	Title     string    `json:"title"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email" binding:"omitempty,email"`
	Notes     string    `json:"notes"`
}

// CreateContact adds a point of contact to a company
func CreateContact(c *gin.Context) {
	var input CreateContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number")
		return
	}

	var company models.Company
	if err := config.DB.First(&company, "id = ?", input.CompanyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Company not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	contact := models.Contact{
		CompanyID: input.CompanyID,
		Name:      input.Name,
		Title:     input.Title,
		Phone:     input.Phone,
		Email:     input.Email,
		Notes:     input.Notes,
	}

	if err := config.DB.Create(&contact).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create contact")
		return
	}

	c.JSON(http.StatusCreated, contact)
}

// GetContactsByCompany lists the contacts of one company
func GetContactsByCompany(c *gin.Context) {
	companyUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid company ID format")
		return
	}

	var contacts []models.Contact
	if err := config.DB.Where("company_id = ?", companyUUID).
		Order("name").Find(&contacts).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve contacts")
		return
	}
	c.JSON(http.StatusOK, contacts)
}

// UpdateContact replaces a contact's details
func UpdateContact(c *gin.Context) {
	contactUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid contact ID format")
		return
	}

	var input CreateContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var contact models.Contact
	if err := config.DB.First(&contact, "id = ?", contactUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Contact not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	contact.Name = input.Name
	contact.Title = input.Title
	contact.Phone = input.Phone
	contact.Email = input.Email
	contact.Notes = input.Notes

	if err := config.DB.Save(&contact).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update contact")
		return
	}

	c.JSON(http.StatusOK, contact)
}

// DeleteContact removes a contact
func DeleteContact(c *gin.Context) {
	contactUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid contact ID format")
		return
	}

	if err := config.DB.Delete(&models.Contact{}, "id = ?", contactUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete contact")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Contact deleted successfully"})
}
