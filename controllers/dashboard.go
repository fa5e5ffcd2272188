// controllers/dashboard.go
package controllers

import (
	"net/http"
	"time"

	"avquotes-backend/config"
	"avquotes-backend/models"
	"avquotes-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type statusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type departmentCount struct {
	DepartmentID   uuid.UUID `json:"department_id"`
	DepartmentName string    `json:"department_name"`
	Count          int64     `json:"count"`
}

// GetDashboard summarizes quote activity: counts by status and department
// plus the most recently updated quotes from the last 90 days. Non-admin
// callers see only their own department.
func GetDashboard(c *gin.Context) {
	scoped := func() *gorm.DB { return config.DB.Model(&models.Quote{}) }

	role, _ := c.Get("role")
	var deptFilter *uuid.UUID
	if role != "admin" {
		departmentID, _ := c.Get("departmentId")
		deptStr, _ := departmentID.(string)
		deptUUID, err := uuid.Parse(deptStr)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{
				"total_quotes":  0,
				"by_status":     []statusCount{},
				"by_department": []departmentCount{},
				"recent_quotes": []models.Quote{},
			})
			return
		}
		deptFilter = &deptUUID
	}

	applyScope := func(q *gorm.DB) *gorm.DB {
		if deptFilter != nil {
			return q.Where("quotes.department_id = ?", *deptFilter)
		}
		return q
	}

	var total int64
	if err := applyScope(scoped()).Count(&total).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count quotes")
		return
	}

	var byStatus []statusCount
	if err := applyScope(scoped()).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to aggregate quote statuses")
		return
	}

	var byDepartment []departmentCount
	if err := applyScope(scoped()).
		Select("quotes.department_id, departments.name as department_name, COUNT(*) as count").
		Joins("JOIN departments ON departments.id = quotes.department_id").
		Group("quotes.department_id, departments.name").
		Scan(&byDepartment).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to aggregate quote departments")
		return
	}

	since := utils.BeginningOfDay(time.Now()).AddDate(0, 0, -90)
	var recent []models.Quote
	if err := applyScope(config.DB.Model(&models.Quote{})).
		Where("quotes.updated_at >= ?", since).
		Order("updated_at DESC").
		Limit(10).
		Find(&recent).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve recent quotes")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_quotes":  total,
		"by_status":     byStatus,
		"by_department": byDepartment,
		"recent_quotes": recent,
	})
}
