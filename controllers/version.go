// controllers/version.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"avquotes-backend/config"
	"avquotes-backend/services"
	"avquotes-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetQuoteVersions lists the stored snapshots of a quote, newest first
func GetQuoteVersions(c *gin.Context) {
	quoteUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid quote ID format")
		return
	}

	versionService := services.NewVersionService(config.DB)
	versions, err := versionService.List(quoteUUID)
	if err != nil {
		if errors.Is(err, services.ErrQuoteNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve versions")
		}
		return
	}

	c.JSON(http.StatusOK, versions)
}

// RestoreQuoteVersion rolls a quote's mutable fields back to a stored
// snapshot, recording the current state as a new version first
func RestoreQuoteVersion(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	userUUID, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	quoteUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid quote ID format")
		return
	}

	version, err := strconv.Atoi(c.Param("version"))
	if err != nil || version < 1 {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid version number")
		return
	}

	versionService := services.NewVersionService(config.DB)
	if err := versionService.Restore(quoteUUID, version, userUUID); err != nil {
		switch {
		case errors.Is(err, services.ErrVersionNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Version not found")
		case errors.Is(err, services.ErrQuoteNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Quote not found")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to restore version")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Quote restored to version %d", version)})
}
