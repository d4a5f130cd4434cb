package handlers

import (
	"errors"
	"net/http"

	"github.com/concave-dev/batchd/internal/batching"
	"github.com/concave-dev/batchd/internal/logging"
	"github.com/gin-gonic/gin"
)

// HandleFlush seals every pending task into batches immediately. Batches form
// on their own regardless; this only shortens the wait.
func HandleFlush(svc TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := svc.Flush(c.Request.Context())
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, batching.ErrShuttingDown) || errors.Is(err, batching.ErrNotStarted) {
				status = http.StatusServiceUnavailable
			}
			c.JSON(status, ErrorResponse{
				Error:   "Flush failed",
				Reason:  batching.ReasonOf(err),
				Details: err.Error(),
			})
			return
		}

		logging.Info("Flush sealed %d tasks into %d batches", res.Tasks, res.Batches)
		c.JSON(http.StatusOK, res)
	}
}

// HandleStats returns a point-in-time snapshot of the batcher.
func HandleStats(svc TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svc.Stats())
	}
}
