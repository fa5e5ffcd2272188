// controllers/system.go
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

type CreateSystemInput struct {
	RoomID      uuid.UUID `json:"roomId" binding:"required"`
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
}

type UpdateSystemInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateSystem adds an equipment grouping to a room
func CreateSystem(c *gin.Context) {
	var input CreateSystemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var room models.Room
	if err := config.DB.First(&room, "id = ?", input.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Room not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	system := models.System{
		RoomID:      input.RoomID,
		Name:        input.Name,
		Description: input.Description,
	}

	if err := config.DB.Create(&system).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create system")
		return
	}

	c.JSON(http.StatusCreated, system)
}

// GetSystemsByRoom lists the systems of one room
func GetSystemsByRoom(c *gin.Context) {
	roomUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid room ID format")
		return
	}

	var systems []models.System
	if err := config.DB.Where("room_id = ?", roomUUID).
		Order("created_at").Find(&systems).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve systems")
		return
	}
	c.JSON(http.StatusOK, systems)
}

// UpdateSystem renames a system
func UpdateSystem(c *gin.Context) {
	systemUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid system ID format")
		return
	}

	var input UpdateSystemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var system models.System
	if err := config.DB.First(&system, "id = ?", systemUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "System not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	system.Name = input.Name
	system.Description = input.Description

	if err := config.DB.Save(&system).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update system")
		return
	}

	c.JSON(http.StatusOK, system)
}

// DeleteSystem removes a system and cascades to its equipment
func DeleteSystem(c *gin.Context) {
	systemUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid system ID format")
		return
	}

	if err := config.DB.Delete(&models.System{}, "id = ?", systemUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete system")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "System deleted successfully"})
}
