// controllers/approval.go
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

type CreateApprovalInput struct {
	ApproverID string `json:"approver_id" binding:"required"`
	Notes      string `json:"notes"`
}

type UpdateApprovalInput struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// CreateApproval submits a quote for approval and notifies the approver
func CreateApproval(c *gin.Context) {
	quoteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid quote ID format")
		return
	}

	var input CreateApprovalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	approverID, err := uuid.Parse(input.ApproverID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid approver ID format")
		return
	}

	var quote models.Quote
	if err := config.DB.First(&quote, "id = ?", quoteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve quote")
		return
	}

	var approver models.User
	if err := config.DB.First(&approver, "id = ?", approverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Approver not found")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve approver")
		return
	}

	approval := models.Approval{
		QuoteID:    quoteID,
		ApproverID: approverID,
		Status:     "pending",
		Notes:      input.Notes,
	}
	if err := config.DB.Create(&approval).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create approval")
		return
	}

	go services.NewNotifyService(config.DB).NotifyApprovalRequested(approval.ID)

	c.JSON(http.StatusCreated, approval)
}

// GetQuoteApprovals lists approvals for a quote, newest first
func GetQuoteApprovals(c *gin.Context) {
	quoteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid quote ID format")
		return
	}

	var approvals []models.Approval
	if err := config.DB.Where("quote_id = ?", quoteID).Order("created_at DESC").Find(&approvals).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve approvals")
		return
	}

	c.JSON(http.StatusOK, approvals)
}

// UpdateApproval records an approve or reject decision
func UpdateApproval(c *gin.Context) {
	approvalID, err := uuid.Parse(c.Param("approvalId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid approval ID format")
		return
	}

	var input UpdateApprovalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	if input.Status != "approved" && input.Status != "rejected" {
		utils.RespondWithError(c, http.StatusBadRequest, "Status must be approved or rejected")
		return
	}

	var approval models.Approval
	if err := config.DB.First(&approval, "id = ?", approvalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Approval not found")
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve approval")
		return
	}

	approval.Status = input.Status
	if input.Notes != "" {
		approval.Notes = input.Notes
	}
	if err := config.DB.Save(&approval).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update approval")
		return
	}

	c.JSON(http.StatusOK, approval)
}
