// Package handlers provides HTTP request handlers for the batchd API server.
//
// TASK ENDPOINTS:
//   - POST /api/v1/tasks: Submit a task for batching
//   - GET /api/v1/tasks/:id: Current status or result of a task, with an
//     optional ?wait=<duration> long-poll
//   - POST /api/v1/batches/flush: Seal pending tasks into batches now
//   - GET /api/v1/stats: Queue, dispatch and outcome counters
//
// Admission refusals map to status codes by reason: InvalidPayload is 400,
// QueueFull is 429 and ShuttingDown is 503. Every error body has the same
// {error, reason, details} shape so clients can switch on reason.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/concave-dev/batchd/internal/batching"
	"github.com/concave-dev/batchd/internal/logging"
	"github.com/gin-gonic/gin"
)

// TaskService is the subset of batching.Batcher the handlers need. Defined
// here so handlers can be tested against fakes.
type TaskService interface {
	Submit(p batching.Payload) (*batching.Handle, error)
	Lookup(id string) (*batching.Handle, bool)
	Flush(ctx context.Context) (batching.FlushResult, error)
	Stats() batching.Stats
}

// SubmitTaskRequest is the submission body.
type SubmitTaskRequest struct {
	TaskName string         `json:"task_name"`
	TaskData map[string]any `json:"task_data"`
}

// TaskResponse describes a task's state. Result, Reason and Message are only
// set once the task is terminal.
type TaskResponse struct {
	TaskID     string          `json:"task_id"`
	Status     batching.Status `json:"status"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
	Result     any             `json:"result,omitempty"`
	Reason     batching.Reason `json:"reason,omitempty"`
	Message    string          `json:"message,omitempty"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string          `json:"error"`
	Reason  batching.Reason `json:"reason,omitempty"`
	Details string          `json:"details,omitempty"`
}

// StatusForReason maps a rejection reason to its HTTP status code.
func StatusForReason(reason batching.Reason) int {
	switch reason {
	case batching.ReasonInvalidPayload:
		return http.StatusBadRequest
	case batching.ReasonQueueFull:
		return http.StatusTooManyRequests
	case batching.ReasonShuttingDown:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func newTaskResponse(h *batching.Handle, res batching.Result) TaskResponse {
	return TaskResponse{
		TaskID:     h.ID(),
		Status:     res.Status,
		EnqueuedAt: h.EnqueuedAt(),
		Result:     res.Value,
		Reason:     res.Reason,
		Message:    res.Message,
	}
}

// HandleSubmitTask admits a task and returns 202 with its ID.
func HandleSubmitTask(svc TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SubmitTaskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logging.Warn("Task submission: Invalid request body: %v", err)
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Invalid request body",
				Reason:  batching.ReasonInvalidPayload,
				Details: err.Error(),
			})
			return
		}

		handle, err := svc.Submit(batching.Payload{Name: req.TaskName, Data: req.TaskData})
		if err != nil {
			reason := batching.ReasonOf(err)
			if reason == batching.ReasonQueueFull {
				c.Header("Retry-After", "1")
			}
			c.JSON(StatusForReason(reason), ErrorResponse{
				Error:   "Task rejected",
				Reason:  reason,
				Details: err.Error(),
			})
			return
		}

		logging.Info("Task submitted: %s (%s)", req.TaskName, logging.FormatTaskID(handle.ID()))
		c.JSON(http.StatusAccepted, newTaskResponse(handle, handle.Result()))
	}
}

// HandleGetTask returns a task's status. With ?wait=<duration> it blocks until
// the task is terminal or the wait (capped at maxWait) elapses, then returns
// whatever the current status is.
func HandleGetTask(svc TaskService, maxWait time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		taskID := c.Param("id")
		if taskID == "" {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Missing task ID",
				Details: "Task ID is required in URL path",
			})
			return
		}

		handle, ok := svc.Lookup(taskID)
		if !ok {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error:   "Task not found",
				Details: "Unknown task ID or result no longer retained: " + taskID,
			})
			return
		}

		wait, err := parseWait(c.Query("wait"), maxWait)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Invalid wait parameter",
				Details: err.Error(),
			})
			return
		}

		res := handle.Result()
		if wait > 0 && !res.Terminal() {
			ctx, cancel := context.WithTimeout(c.Request.Context(), wait)
			res, _ = handle.Wait(ctx)
			cancel()
		}

		c.JSON(http.StatusOK, newTaskResponse(handle, res))
	}
}

func parseWait(raw string, maxWait time.Duration) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	wait, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if wait < 0 {
		return 0, errors.New("wait must not be negative")
	}
	if wait > maxWait {
		wait = maxWait
	}
	return wait, nil
}
