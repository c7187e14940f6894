package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cedarcrest/ccis-admin-api/internal/service"
)

type statusStore interface {
	Syncing() bool
}

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
	store   statusStore
}

// NewMetricsHandler constructs a metrics handler.
func NewMetricsHandler(metrics *service.MetricsService, store statusStore) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, store: store}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health responds with a generic OK payload for readiness/liveness usage.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Status reports whether a snapshot save is in flight, mirroring the
// store's save indicator.
func (h *MetricsHandler) Status(c *gin.Context) {
	syncing := false
	if h.store != nil {
		syncing = h.store.Syncing()
	}
	c.JSON(http.StatusOK, gin.H{"syncing": syncing})
}
