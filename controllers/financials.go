// controllers/financials.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"avquotes-backend/config"
	"avquotes-backend/services"
	"avquotes-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetQuoteFinancials returns the full financial breakdown of a quote
func GetQuoteFinancials(c *gin.Context) {
	quoteUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid quote ID format")
		return
	}

	financialsService := services.NewFinancialsService(config.DB)
	financials, err := financialsService.Compute(quoteUUID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrQuoteNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
		case errors.Is(err, services.ErrInvalidQuoteData):
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute financials")
		}
		return
	}

	c.JSON(http.StatusOK, financials)
}

// GetQuoteBOM returns the deduplicated bill of materials of a quote
func GetQuoteBOM(c *gin.Context) {
	quoteUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid quote ID format")
		return
	}

	bomService := services.NewBOMService(config.DB)
	bom, err := bomService.Compile(quoteUUID)
	if err != nil {
		if errors.Is(err, services.ErrQuoteNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compile BOM")
		}
		return
	}

	c.JSON(http.StatusOK, bom)
}

// ExportQuoteBOM returns the bill of materials as an Excel attachment
func ExportQuoteBOM(c *gin.Context) {
	quoteUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid quote ID format")
		return
	}

	bomService := services.NewBOMService(config.DB)
	bom, err := bomService.Compile(quoteUUID)
	if err != nil {
		if errors.Is(err, services.ErrQuoteNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compile BOM")
		}
		return
	}

	contents, err := bomService.ExportExcel(bom)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to export BOM")
		return
	}

	filename := fmt.Sprintf("BOM_%s.xlsx", bom.QuoteID)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		contents)
}
