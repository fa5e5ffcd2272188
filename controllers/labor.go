// controllers/labor.go
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

type CreateLaborInput struct {
	RoomID       uuid.UUID  `json:"roomId" binding:"required"`
	RoleName     string     `json:"roleName" binding:"required"`
	CostRate     float64    `json:"costRate" binding:"min=0"`
	SellRate     float64    `json:"sellRate" binding:"min=0"`
	Hours        float64    `json:"hours" binding:"min=0"`
	DepartmentID *uuid.UUID `json:"departmentId"`
}

// LaborWithTotals is a labor row plus its derived totals
type LaborWithTotals struct {
	models.Labor
	TotalCost     float64 `json:"total_cost"`
	TotalPrice    float64 `json:"total_price"`
	MarginDollars float64 `json:"margin_dollars"`
	MarginPercent float64 `json:"margin_percent"`
}

// CreateLabor adds a labor line to a room
func CreateLabor(c *gin.Context) {
	var input CreateLaborInput
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

	labor := models.Labor{
		RoomID:       input.RoomID,
		RoleName:     input.RoleName,
		CostRate:     input.CostRate,
		SellRate:     input.SellRate,
		Hours:        input.Hours,
		DepartmentID: input.DepartmentID,
	}

	if err := config.DB.Create(&labor).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create labor")
		return
	}

	c.JSON(http.StatusCreated, labor)
}

// GetLaborByRoom lists a room's labor lines with derived totals and margins
func GetLaborByRoom(c *gin.Context) {
	roomUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid room ID format")
		return
	}

	var labor []models.Labor
	if err := config.DB.Where("room_id = ?", roomUUID).
		Order("created_at").Find(&labor).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve labor")
		return
	}

	withTotals := make([]LaborWithTotals, 0, len(labor))
	for _, lb := range labor {
		totalCost := lb.CostRate * lb.Hours
		totalPrice := lb.SellRate * lb.Hours
		marginDollars := totalPrice - totalCost

		marginPercent := 0.0
		if totalCost > 0 {
			marginPercent = marginDollars / totalCost * 100
		}

		withTotals = append(withTotals, LaborWithTotals{
			Labor:         lb,
			TotalCost:     services.Round2(totalCost),
			TotalPrice:    services.Round2(totalPrice),
			MarginDollars: services.Round2(marginDollars),
			MarginPercent: services.Round2(marginPercent),
		})
	}

	c.JSON(http.StatusOK, withTotals)
}

// UpdateLabor replaces a labor line's fields
func UpdateLabor(c *gin.Context) {
	laborUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid labor ID format")
		return
	}

	var input CreateLaborInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var labor models.Labor
	if err := config.DB.First(&labor, "id = ?", laborUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Labor not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	labor.RoleName = input.RoleName
	labor.CostRate = input.CostRate
	labor.SellRate = input.SellRate
	labor.Hours = input.Hours
	labor.DepartmentID = input.DepartmentID

	if err := config.DB.Save(&labor).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update labor")
		return
	}

	c.JSON(http.StatusOK, labor)
}

// DeleteLabor removes a labor line
func DeleteLabor(c *gin.Context) {
	laborUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid labor ID format")
		return
	}

	if err := config.DB.Delete(&models.Labor{}, "id = ?", laborUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete labor")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Labor deleted successfully"})
}
