package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mkrogh/bridgeway/pkg/api/types"
	"github.com/mkrogh/bridgeway/pkg/db"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	store db.BridgeStore
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store db.BridgeStore) *HealthHandler {
	return &HealthHandler{store: store}
}

// Health handles GET /health
// @Summary      Health check
// @Description  Returns the health status of the API and the record store
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthResponse  "Service is healthy"
// @Failure      503  {object}  types.HealthResponse  "Service is degraded"
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	status := "healthy"
	httpStatus := http.StatusOK
	count := 0

	bridges, err := h.store.List(c.Request.Context())
	if err != nil {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	} else {
		count = len(bridges)
	}

	c.JSON(httpStatus, types.HealthResponse{
		Status:    status,
		Bridges:   count,
		Timestamp: time.Now(),
	})
}
