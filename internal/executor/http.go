package executor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/concave-dev/batchd/internal/batching"
	"github.com/concave-dev/batchd/internal/logging"
	"github.com/concave-dev/batchd/internal/version"
	"github.com/go-resty/resty/v2"
)

// BatchRequest is the body POSTed to the compute backend.
type BatchRequest struct {
	BatchSize int                `json:"batch_size"`
	Tasks     []batching.Payload `json:"tasks"`
}

// BatchResponse is what the compute backend must return: one result per task,
// in request order.
type BatchResponse struct {
	Results []TaskResult `json:"results"`
}

// TaskResult is a single task's outcome from the backend. A non-empty Error
// marks that task as failed.
type TaskResult struct {
	Value any    `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
}

// HTTPExecutor sends each batch to a remote compute backend in one request.
// Any transport error or non-2xx status is a whole-batch fault.
type HTTPExecutor struct {
	client *resty.Client
	url    string
}

// NewHTTPExecutor creates an executor posting batches to url. Retries only
// happen on connection errors and only when retryCount > 0.
func NewHTTPExecutor(url string, timeout time.Duration, retryCount int) *HTTPExecutor {
	client := resty.New()

	// Route Resty's internal logging through our structured logging system
	client.SetLogger(logging.RestyLogger{})

	client.
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", fmt.Sprintf("batchd/%s", version.BatchdVersion))

	if retryCount > 0 {
		client.
			SetRetryCount(retryCount).
			SetRetryWaitTime(500 * time.Millisecond).
			SetRetryMaxWaitTime(5 * time.Second).
			AddRetryCondition(func(r *resty.Response, err error) bool {
				// Only retry on connection errors, not HTTP errors
				return err != nil
			})
	}

	client.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logging.Debug("Executor: backend responded %d (took %v)", resp.StatusCode(), resp.Time())
		return nil
	})

	return &HTTPExecutor{client: client, url: url}
}

// Execute POSTs the batch and maps the backend's per-task results.
func (e *HTTPExecutor) Execute(ctx context.Context, payloads []batching.Payload) ([]batching.Outcome, error) {
	var response BatchResponse

	resp, err := e.client.R().
		SetContext(ctx).
		SetBody(BatchRequest{BatchSize: len(payloads), Tasks: payloads}).
		SetResult(&response).
		Post(e.url)

	if err != nil {
		return nil, fmt.Errorf("failed to reach compute backend at %s: %w", e.url, err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("compute backend returned status %d: %s", resp.StatusCode(), resp.String())
	}

	if len(response.Results) != len(payloads) {
		return nil, fmt.Errorf("compute backend returned %d results for %d tasks",
			len(response.Results), len(payloads))
	}

	outcomes := make([]batching.Outcome, len(payloads))
	for i, r := range response.Results {
		if r.Error != "" {
			outcomes[i] = batching.Outcome{Err: errors.New(r.Error)}
			continue
		}
		outcomes[i] = batching.Outcome{Value: r.Value}
	}
	return outcomes, nil
}
