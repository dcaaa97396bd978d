package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	calendarConnRepo "slotwise/database/repository/calendarconn"
	"slotwise/models"
)

// CalendarConnectionHandler manages a user's external calendar links.
type CalendarConnectionHandler struct {
	Connections calendarConnRepo.Repository
	Logger      *zap.Logger
}

// Create links an external calendar to a user.
// POST /api/users/:id/calendar-connections
func (h *CalendarConnectionHandler) Create(c *gin.Context) {
	var input struct {
		Provider    string `json:"provider"`
		CalendarID  string `json:"calendar_id"`
		IsPrimary   bool   `json:"is_primary"`
		SyncEnabled bool   `json:"sync_enabled"`
		Credentials string `json:"credentials"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	kind := models.CalendarProviderKind(input.Provider)
	switch kind {
	case models.CalendarInternal, models.CalendarGoogle, models.CalendarOutlook,
		models.CalendarICloud, models.CalendarApple, models.CalendarSamsung, models.CalendarAndroid:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown calendar provider"})
		return
	}

	conn := models.CalendarConnection{
		ID:          uuid.New().String(),
		UserID:      c.Param("id"),
		Provider:    kind,
		CalendarID:  input.CalendarID,
		IsPrimary:   input.IsPrimary,
		SyncEnabled: input.SyncEnabled,
		Credentials: input.Credentials,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.Connections.Create(c.Request.Context(), &conn); err != nil {
		h.Logger.Error("failed to create calendar connection",
			zap.String("userID", conn.UserID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, conn)
}

// List returns a user's calendar connections. Credentials never serialize.
// GET /api/users/:id/calendar-connections
func (h *CalendarConnectionHandler) List(c *gin.Context) {
	conns, err := h.Connections.QueryByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Logger.Error("failed to list calendar connections",
			zap.String("userID", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"connections": conns})
}

// Delete unlinks a calendar connection. The connection must belong to the
// user in the path.
// DELETE /api/users/:id/calendar-connections/:connId
func (h *CalendarConnectionHandler) Delete(c *gin.Context) {
	conn, err := h.Connections.GetByID(c.Request.Context(), c.Param("connId"))
	if err != nil {
		if errors.Is(err, calendarConnRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "calendar connection not found"})
			return
		}
		h.Logger.Error("failed to load calendar connection", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if conn.UserID != c.Param("id") {
		c.JSON(http.StatusNotFound, gin.H{"error": "calendar connection not found"})
		return
	}

	if err := h.Connections.Delete(c.Request.Context(), conn.ID); err != nil {
		h.Logger.Error("failed to delete calendar connection", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Status(http.StatusNoContent)
}
