// controllers/department.go
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

type DepartmentInput struct {
	Name string `json:"name" binding:"required"`
}

// CreateDepartment adds a new department. Admin only.
func CreateDepartment(c *gin.Context) {
	var input DepartmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existing models.Department
	result := config.DB.Where("name = ?", input.Name).First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Department already exists")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	department := models.Department{Name: input.Name}
	if err := config.DB.Create(&department).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create department")
		return
	}

	c.JSON(http.StatusCreated, department)
}

// GetDepartments lists all departments ordered by name
func GetDepartments(c *gin.Context) {
	var departments []models.Department
	if err := config.DB.Order("name").Find(&departments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve departments")
		return
	}
	c.JSON(http.StatusOK, departments)
}

// UpdateDepartment renames a department. Admin only.
func UpdateDepartment(c *gin.Context) {
	deptUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid department ID format")
		return
	}

	var input DepartmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var department models.Department
	if err := config.DB.First(&department, "id = ?", deptUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Department not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	department.Name = input.Name
	if err := config.DB.Save(&department).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update department")
		return
	}

	c.JSON(http.StatusOK, department)
}

// DeleteDepartment removes a department. Admin only.
func DeleteDepartment(c *gin.Context) {
	deptUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid department ID format")
		return
	}

	if err := config.DB.Delete(&models.Department{}, "id = ?", deptUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete department")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Department deleted successfully"})
}
