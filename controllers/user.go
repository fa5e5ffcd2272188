// controllers/user.go
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

type UpdateUserInput struct {
	Phone        *string    `json:"phone"`
	Role         *string    `json:"role" binding:"omitempty,oneof=admin estimator"`
	DepartmentID *uuid.UUID `json:"departmentId"`
	IsActive     *bool      `json:"isActive"`
	Password     *string    `json:"password" binding:"omitempty,min=8"`
}

// GetUsers lists all user accounts. Admin only.
func GetUsers(c *gin.Context) {
	var users []models.User
	if err := config.DB.Preload("Department").Order("username").Find(&users).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}

	response := make([]gin.H, 0, len(users))
	for _, user := range users {
		response = append(response, gin.H{
			"id":         user.ID,
			"username":   user.Username,
			"phone":      user.Phone,
			"role":       user.Role,
			"department": user.Department,
			"isActive":   user.IsActive,
			"lastLogin":  user.LastLogin,
			"createdAt":  user.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, response)
}

// UpdateUser changes a user's role, department, phone or password. Admin only.
func UpdateUser(c *gin.Context) {
	userUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var input UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "User not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.DepartmentID != nil {
		user.DepartmentID = input.DepartmentID
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.Password != nil {
		hashed, err := utils.HashPassword(*input.Password)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to hash password")
			return
		}
		user.Password = hashed
	}

	if err := config.DB.Save(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           user.ID,
		"username":     user.Username,
		"role":         user.Role,
		"departmentId": user.DepartmentID,
		"isActive":     user.IsActive,
	})
}

// DeleteUser deactivates a user account rather than removing the row, so
// quotes they authored keep a valid reference. Admin only.
func DeleteUser(c *gin.Context) {
	userUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	callerID, _ := c.Get("userId")
	if callerID == userUUID.String() {
		utils.RespondWithError(c, http.StatusBadRequest, "Cannot deactivate your own account")
		return
	}

	result := config.DB.Model(&models.User{}).Where("id = ?", userUUID).Update("is_active", false)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to deactivate user")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deactivated successfully"})
}
