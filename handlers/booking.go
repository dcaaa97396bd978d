package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotwise/models"
	"slotwise/services/scheduling"
)

// BookingHandler serves booking creation and lifecycle endpoints.
type BookingHandler struct {
	Service scheduling.Service
	Logger  *zap.Logger
}

// Create books a single slot.
// POST /api/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var req scheduling.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	booking, err := h.Service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// CreateRecurring books a recurring series, committing the occurrences that
// fit and reporting the ones that conflict.
// POST /api/bookings/recurring
func (h *BookingHandler) CreateRecurring(c *gin.Context) {
	var input struct {
		scheduling.CreateBookingRequest
		Pattern models.RecurringBookingRequest `json:"recurrence"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.Service.CreateRecurringBookings(c.Request.Context(), input.CreateBookingRequest, input.Pattern)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	status := http.StatusCreated
	if len(result.Created) == 0 {
		status = http.StatusConflict
	}
	c.JSON(status, result)
}

// Transition applies a lifecycle action to a booking.
// POST /api/bookings/:id/transition
func (h *BookingHandler) Transition(c *gin.Context) {
	id := c.Param("id")

	var input struct {
		Action        string `json:"action"`
		Actor         string `json:"actor"`
		ProviderNotes string `json:"provider_notes,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	action, ok := scheduling.ValidAction(input.Action)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "action must be one of confirm, cancel, complete, no_show"})
		return
	}

	actor := models.Actor(input.Actor)
	if actor != models.ActorProvider && actor != models.ActorCustomer {
		c.JSON(http.StatusBadRequest, gin.H{"error": "actor must be provider or customer"})
		return
	}

	booking, err := h.Service.TransitionBooking(c.Request.Context(), id, action, actor, input.ProviderNotes)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// List returns a provider's bookings inside a window, optionally filtered
// by status.
// GET /api/providers/:id/bookings?from=...&to=...&status=pending,confirmed
func (h *BookingHandler) List(c *gin.Context) {
	providerID := c.Param("id")

	window, err := windowFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var statuses []models.BookingStatus
	if raw := c.QueryArray("status"); len(raw) > 0 {
		for _, s := range raw {
			statuses = append(statuses, models.BookingStatus(s))
		}
	}

	bookings, err := h.Service.ListBookings(c.Request.Context(), providerID, window, statuses)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// windowFromQuery parses the from/to RFC3339 query bounds.
func windowFromQuery(c *gin.Context) (models.TimeInterval, error) {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		return models.TimeInterval{}, scheduling.NewValidationError("from", "must be an RFC3339 timestamp")
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		return models.TimeInterval{}, scheduling.NewValidationError("to", "must be an RFC3339 timestamp")
	}
	window, err := models.NewInterval(from, to, "")
	if err != nil {
		return models.TimeInterval{}, scheduling.NewValidationError("window", err.Error())
	}
	return window, nil
}
