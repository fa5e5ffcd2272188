// controllers/room.go
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

type CreateRoomInput struct {
	QuoteID  uuid.UUID `json:"quoteId" binding:"required"`
	Name     string    `json:"name" binding:"required"`
	Quantity int       `json:"quantity" binding:"omitempty,min=1"`
}

type UpdateRoomInput struct {
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

// CreateRoom adds a room to a quote
func CreateRoom(c *gin.Context) {
	var input CreateRoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var quote models.Quote
	if err := config.DB.First(&quote, "id = ?", input.QuoteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Quote not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	quantity := input.Quantity
	if quantity == 0 {
		quantity = 1
	}

	room := models.Room{
		QuoteID:  input.QuoteID,
		Name:     input.Name,
		Quantity: quantity,
	}

	if err := config.DB.Create(&room).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create room")
		return
	}

	c.JSON(http.StatusCreated, room)
}

// GetRoomsByQuote lists the rooms of one quote
func GetRoomsByQuote(c *gin.Context) {
	quoteUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid quote ID format")
		return
	}

	var rooms []models.Room
	if err := config.DB.Where("quote_id = ?", quoteUUID).
		Order("created_at").Find(&rooms).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve rooms")
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// UpdateRoom renames a room or changes its quantity multiplier
func UpdateRoom(c *gin.Context) {
	roomUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid room ID format")
		return
	}

	var input UpdateRoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var room models.Room
	if err := config.DB.First(&room, "id = ?", roomUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Room not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	room.Name = input.Name
	room.Quantity = input.Quantity

	if err := config.DB.Save(&room).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update room")
		return
	}

	c.JSON(http.StatusOK, room)
}

// DeleteRoom removes a room and cascades to systems, labor and services
func DeleteRoom(c *gin.Context) {
	roomUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid room ID format")
		return
	}

	if err := config.DB.Delete(&models.Room{}, "id = ?", roomUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete room")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Room deleted successfully"})
}
