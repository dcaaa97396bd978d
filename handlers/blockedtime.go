package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotwise/models"
	"slotwise/services/scheduling"
)

// BlockedTimeHandler serves provider-declared unavailability.
type BlockedTimeHandler struct {
	Service scheduling.Service
	Logger  *zap.Logger
}

// Create records a blocked interval for a provider.
// POST /api/providers/:id/blocked-times
func (h *BlockedTimeHandler) Create(c *gin.Context) {
	var block models.BlockedTime
	if err := c.ShouldBindJSON(&block); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	block.ProviderID = c.Param("id")

	if err := h.Service.CreateBlockedTime(c.Request.Context(), &block); err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.JSON(http.StatusCreated, block)
}

// Delete removes a blocked interval. The block must belong to the provider
// in the path.
// DELETE /api/providers/:id/blocked-times/:blockId
func (h *BlockedTimeHandler) Delete(c *gin.Context) {
	providerID := c.Param("id")
	blockID := c.Param("blockId")

	if err := h.Service.DeleteBlockedTime(c.Request.Context(), providerID, blockID); err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// List returns a provider's blocked intervals overlapping a window,
// yearly-recurring blocks expanded into their concrete occurrences.
// GET /api/providers/:id/blocked-times?from=...&to=...&listing_id=...
func (h *BlockedTimeHandler) List(c *gin.Context) {
	providerID := c.Param("id")

	window, err := windowFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	blocks, err := h.Service.ListBlockedTimes(c.Request.Context(), providerID, c.Query("listing_id"), window)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"blocked_times": blocks})
}
