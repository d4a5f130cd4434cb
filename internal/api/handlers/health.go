package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Represents the health check response
type HealthResponse struct {
	Status     string    `json:"status"` // healthy or draining
	Timestamp  time.Time `json:"timestamp"`
	Version    string    `json:"version"`
	Uptime     string    `json:"uptime"`
	QueueDepth int       `json:"queue_depth"`
	Inflight   int       `json:"inflight_batches"`
}

// HandleHealth returns the health of the daemon. While draining it answers
// 503 so load balancers stop routing submissions here.
func HandleHealth(svc TaskService, version string, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats := svc.Stats()

		response := HealthResponse{
			Status:     "healthy",
			Timestamp:  time.Now(),
			Version:    version,
			Uptime:     time.Since(startTime).Round(time.Second).String(),
			QueueDepth: stats.QueueDepth,
			Inflight:   stats.InflightBatches,
		}

		code := http.StatusOK
		if stats.Draining {
			response.Status = "draining"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, response)
	}
}

// Endpoint describes one route in the index.
type Endpoint struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// IndexResponse is served at the root path.
type IndexResponse struct {
	Service   string     `json:"service"`
	Version   string     `json:"version"`
	Endpoints []Endpoint `json:"endpoints"`
}

// HandleIndex lists the available endpoints.
func HandleIndex(version string, endpoints []Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, IndexResponse{
			Service:   "batchd",
			Version:   version,
			Endpoints: endpoints,
		})
	}
}
