package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotwise/services/scheduling"
)

// AvailabilityHandler serves the bookable-slot query surface.
type AvailabilityHandler struct {
	Service scheduling.Service
	Logger  *zap.Logger
}

// GetSlots returns the free slot grid for a listing on a given date.
// GET /api/listings/:id/slots?date=2025-06-01&duration=60
func (h *AvailabilityHandler) GetSlots(c *gin.Context) {
	listingID := c.Param("id")

	dateStr := c.Query("date")
	if dateStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted as YYYY-MM-DD"})
		return
	}

	duration := 0
	if d := c.Query("duration"); d != "" {
		duration, err = parsePositiveInt(d)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "duration must be a positive integer of minutes"})
			return
		}
	}

	avail, err := h.Service.GetAvailableSlots(c.Request.Context(), listingID, date, duration)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.JSON(http.StatusOK, avail)
}
