package executor

import (
	"context"
	"time"

	"github.com/concave-dev/batchd/internal/batching"
	"github.com/concave-dev/batchd/internal/logging"
)

// ProcessedTask is the result value produced by the log executor.
type ProcessedTask struct {
	TaskName    string    `json:"task_name"`
	Fields      int       `json:"fields"`
	ProcessedAt time.Time `json:"processed_at"`
}

// LogExecutor processes batches in-process by logging each task. It never
// fails a batch, which makes it a predictable default for local runs.
type LogExecutor struct {
	now func() time.Time
}

// NewLogExecutor creates a log executor.
func NewLogExecutor() *LogExecutor {
	return &LogExecutor{now: time.Now}
}

// Execute logs every task in order and returns one ProcessedTask per payload.
func (e *LogExecutor) Execute(ctx context.Context, payloads []batching.Payload) ([]batching.Outcome, error) {
	logging.Info("Processing batch of %d tasks", len(payloads))

	outcomes := make([]batching.Outcome, len(payloads))
	for i, p := range payloads {
		logging.Info("Processing task: %s", p.Name)
		outcomes[i] = batching.Outcome{Value: ProcessedTask{
			TaskName:    p.Name,
			Fields:      len(p.Data),
			ProcessedAt: e.now(),
		}}
	}
	return outcomes, nil
}
