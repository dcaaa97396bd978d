package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotwise/services/scheduling"
)

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, errors.New("must be positive")
	}
	return n, nil
}

// respondError maps engine errors onto HTTP statuses. Unknown errors are
// logged and surface as a generic 500 so internals never leak to clients.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var (
		validationErr *scheduling.ValidationError
		unavailErr    *scheduling.SlotUnavailableError
		transitionErr *scheduling.TransitionError
		notFoundErr   *scheduling.NotFoundError
	)
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &unavailErr):
		c.JSON(http.StatusConflict, gin.H{"error": unavailErr.Error()})
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusConflict, gin.H{"error": transitionErr.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Error()})
	default:
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
