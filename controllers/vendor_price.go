// controllers/vendor_price.go
package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"avquotes-backend/config"
	"avquotes-backend/models"
	"avquotes-backend/services"
	"avquotes-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InspectVendorPrices opens an uploaded price sheet and reports its headers
// so the client can build a column mapping before importing
func InspectVendorPrices(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "File upload required")
		return
	}
	defer file.Close()

	priceBook := services.NewPriceBookService(config.DB)
	info, err := priceBook.InspectWorkbook(file)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Failed to read workbook: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, info)
}

// ImportVendorPrices imports a price sheet using a client-provided column
// mapping, a vendor name and optional department scoping and expiration
func ImportVendorPrices(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "File upload required")
		return
	}
	defer file.Close()

	var mapping services.ColumnMapping
	if err := json.Unmarshal([]byte(c.PostForm("mapping")), &mapping); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid column mapping")
		return
	}

	vendor := c.PostForm("vendor")
	if vendor == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Vendor name required")
		return
	}

	var departmentID *uuid.UUID
	if raw := c.PostForm("department_id"); raw != "" && raw != "null" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid department ID format")
			return
		}
		departmentID = &id
	}

	allDepartments := c.PostForm("all_departments") == "true"

	var expiration *time.Time
	if raw := c.PostForm("expiration_date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid expiration date, expected YYYY-MM-DD")
			return
		}
		expiration = &t
	}

	priceBook := services.NewPriceBookService(config.DB)
	result, err := priceBook.ImportMapped(file, mapping, vendor, departmentID, allDepartments, expiration)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Import failed: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetVendorPrices lists the most recently imported vendor prices
func GetVendorPrices(c *gin.Context) {
	var prices []models.VendorPrice
	if err := config.DB.Order("imported_at DESC").Limit(100).Find(&prices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve vendor prices")
		return
	}
	c.JSON(http.StatusOK, prices)
}

// SearchVendorPrices finds vendor prices by item name or description
func SearchVendorPrices(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "Query parameter q required")
		return
	}

	priceBook := services.NewPriceBookService(config.DB)
	prices, err := priceBook.Search(query, 50)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to search vendor prices")
		return
	}

	c.JSON(http.StatusOK, prices)
}
