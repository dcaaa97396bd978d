package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slotwise/utils"
)

// HealthHandler exposes the dependency health snapshot.
type HealthHandler struct {
	Monitor *utils.HealthMonitor
}

// Check reports 200 when every dependency is reachable, 503 otherwise.
// GET /healthz
func (h *HealthHandler) Check(c *gin.Context) {
	status := h.Monitor.Status()

	healthy := status.Mongo
	for _, ok := range status.Redis {
		healthy = healthy && ok
	}

	code := http.StatusOK
	if !healthy {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
