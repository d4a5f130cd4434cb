// Package client provides the batchd API client used by batchctl.
//
// BatchdAPIClient wraps a Resty client configured with timeouts, JSON headers
// and connection-error retries. Response types are the daemon's own handler
// and batching types so the CLI decodes exactly what the server encodes.
//
// Non-2xx responses are returned as *APIError carrying the HTTP status and the
// server's rejection reason, so callers can tell QueueFull from ShuttingDown.
package client

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/concave-dev/batchd/cmd/batchctl/config"
	"github.com/concave-dev/batchd/internal/api/handlers"
	"github.com/concave-dev/batchd/internal/batching"
	"github.com/concave-dev/batchd/internal/logging"
	"github.com/concave-dev/batchd/internal/netutil"
	"github.com/go-resty/resty/v2"
)

// APIError is a non-2xx response from the daemon.
type APIError struct {
	StatusCode int
	Reason     batching.Reason
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("API request failed with status %d", e.StatusCode)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Reason != "" {
		msg += " (" + string(e.Reason) + ")"
	}
	if e.Details != "" {
		msg += " - " + e.Details
	}
	return msg
}

// Is matches the batching sentinel for the rejection reason, so
// errors.Is(err, batching.ErrQueueFull) works across the wire.
func (e *APIError) Is(target error) bool {
	switch e.Reason {
	case batching.ReasonQueueFull:
		return target == batching.ErrQueueFull
	case batching.ReasonShuttingDown:
		return target == batching.ErrShuttingDown
	case batching.ReasonInvalidPayload:
		return target == batching.ErrInvalidPayload
	}
	return false
}

// BatchdAPIClient talks to one batchd daemon.
type BatchdAPIClient struct {
	client  *resty.Client
	baseURL string
}

// NewBatchdAPIClient creates a client for the daemon at apiAddr ("host:port").
func NewBatchdAPIClient(apiAddr string, timeout time.Duration) *BatchdAPIClient {
	client := resty.New()

	baseURL := fmt.Sprintf("http://%s/api/v1", apiAddr)

	// Route Resty's internal logging through our structured logging system
	client.SetLogger(logging.RestyLogger{})

	client.
		SetTimeout(timeout).
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", fmt.Sprintf("batchctl/%s", config.Version))

	// Only connection errors are retried. A submission that reached the
	// server must not be sent twice.
	client.
		SetRetryCount(3).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil && netutil.IsConnectionRefusedError(err)
		})

	client.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		logging.Debug("Making API request: %s %s", req.Method, req.URL)
		return nil
	})

	client.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logging.Debug("API response: %d %s (took %v)",
			resp.StatusCode(), resp.Status(), resp.Time())
		return nil
	})

	client.OnError(func(req *resty.Request, err error) {
		logging.Debug("API request failed: %s %s - %v", req.Method, req.URL, err)
	})

	return &BatchdAPIClient{
		client:  client,
		baseURL: baseURL,
	}
}

// connectError wraps a transport failure with a hint when nothing is listening.
func (api *BatchdAPIClient) connectError(err error) error {
	if netutil.IsConnectionRefusedError(err) {
		return fmt.Errorf("failed to connect to API server at %s (is batchd running?): %w", api.baseURL, err)
	}
	return fmt.Errorf("failed to connect to API server at %s: %w", api.baseURL, err)
}

func apiError(resp *resty.Response) error {
	e := &APIError{StatusCode: resp.StatusCode()}
	if body, ok := resp.Error().(*handlers.ErrorResponse); ok && body != nil {
		e.Reason = body.Reason
		e.Message = body.Error
		e.Details = body.Details
	}
	if e.Message == "" {
		e.Message = resp.String()
	}
	return e
}

// SubmitTask submits one task and returns its pending record.
func (api *BatchdAPIClient) SubmitTask(name string, data map[string]any) (*handlers.TaskResponse, error) {
	var response handlers.TaskResponse

	resp, err := api.client.R().
		SetBody(handlers.SubmitTaskRequest{TaskName: name, TaskData: data}).
		SetResult(&response).
		SetError(&handlers.ErrorResponse{}).
		Post("/tasks")
	if err != nil {
		return nil, api.connectError(err)
	}

	if resp.StatusCode() != http.StatusAccepted {
		return nil, apiError(resp)
	}
	return &response, nil
}

// GetTask returns a task's status. A positive wait asks the server to hold
// the request until the task is terminal or wait elapses.
func (api *BatchdAPIClient) GetTask(taskID string, wait time.Duration) (*handlers.TaskResponse, error) {
	var response handlers.TaskResponse

	req := api.client.R().
		SetPathParam("id", taskID).
		SetResult(&response).
		SetError(&handlers.ErrorResponse{})
	if wait > 0 {
		req.SetQueryParam("wait", wait.String())
	}

	resp, err := req.Get("/tasks/{id}")
	if err != nil {
		return nil, api.connectError(err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil, fmt.Errorf("task '%s' not found", taskID)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, apiError(resp)
	}
	return &response, nil
}

// Flush asks the daemon to seal everything pending into batches now.
func (api *BatchdAPIClient) Flush() (*batching.FlushResult, error) {
	var response batching.FlushResult

	resp, err := api.client.R().
		SetResult(&response).
		SetError(&handlers.ErrorResponse{}).
		Post("/batches/flush")
	if err != nil {
		return nil, api.connectError(err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, apiError(resp)
	}
	return &response, nil
}

// GetStats returns the daemon's batching statistics.
func (api *BatchdAPIClient) GetStats() (*batching.Stats, error) {
	var response batching.Stats

	resp, err := api.client.R().
		SetResult(&response).
		Get("/stats")
	if err != nil {
		return nil, api.connectError(err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, apiError(resp)
	}
	return &response, nil
}

// GetHealth returns the daemon's health. A draining daemon answers 503 with
// a normal body, which is returned without error.
func (api *BatchdAPIClient) GetHealth() (*handlers.HealthResponse, error) {
	var response handlers.HealthResponse

	resp, err := api.client.R().
		SetResult(&response).
		SetError(&response).
		Get("/health")
	if err != nil {
		return nil, api.connectError(err)
	}

	switch resp.StatusCode() {
	case http.StatusOK, http.StatusServiceUnavailable:
		return &response, nil
	default:
		return nil, apiError(resp)
	}
}

// RejectionHint returns what the user can do about an admission rejection,
// or "" when err is not one.
func RejectionHint(err error) string {
	switch {
	case errors.Is(err, batching.ErrQueueFull):
		return "queue is full, retry shortly"
	case errors.Is(err, batching.ErrShuttingDown):
		return "daemon is shutting down, submit to another instance or after restart"
	case errors.Is(err, batching.ErrInvalidPayload):
		return "fix the task name or data and resubmit"
	default:
		return ""
	}
}

// CreateAPIClient creates a client from the global CLI flags. extra is added
// to the connection timeout for requests that long-poll.
func CreateAPIClient(extra time.Duration) *BatchdAPIClient {
	return NewBatchdAPIClient(config.Global.APIAddr, time.Duration(config.Global.Timeout)*time.Second+extra)
}
