package batching

import (
	"errors"
	"fmt"
)

// Reason is the machine-readable code attached to a rejected submission or a
// failed task.
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonInvalidPayload  Reason = "InvalidPayload"  // caller error, fix and resubmit
	ReasonQueueFull       Reason = "QueueFull"       // transient, back off and retry
	ReasonShuttingDown    Reason = "ShuttingDown"    // terminal for new submissions
	ReasonExecutionFailed Reason = "ExecutionFailed" // batch-level or item-level executor fault
)

var (
	ErrInvalidPayload  = errors.New("invalid payload")
	ErrQueueFull       = errors.New("queue full")
	ErrQueueClosed     = errors.New("queue closed")
	ErrShuttingDown    = errors.New("shutting down")
	ErrExecutionFailed = errors.New("execution failed")
)

// QueueFullError represents an error when the queue is at capacity or the
// in-flight batch ceiling has been reached. Used to trigger HTTP 429 responses
// with backpressure.
type QueueFullError struct {
	Current     int // Current queue depth
	Capacity    int // Maximum queue capacity
	InFlight    int // In-flight batches at rejection time
	MaxInFlight int // Configured in-flight ceiling (0 = unlimited)
}

func (e *QueueFullError) Error() string {
	if e.MaxInFlight > 0 && e.InFlight >= e.MaxInFlight {
		return fmt.Sprintf("in-flight batch ceiling reached: %d/%d", e.InFlight, e.MaxInFlight)
	}
	return fmt.Sprintf("queue full: %d/%d", e.Current, e.Capacity)
}

func (e *QueueFullError) Is(target error) bool {
	return target == ErrQueueFull
}

// InvalidPayloadError describes why a payload was refused at admission.
type InvalidPayloadError struct {
	Detail string
}

func (e *InvalidPayloadError) Error() string {
	return fmt.Sprintf("invalid payload: %s", e.Detail)
}

func (e *InvalidPayloadError) Is(target error) bool {
	return target == ErrInvalidPayload
}

// ReasonOf maps an error returned by Submit (or carried in a Result) to its
// reason code. Unknown errors map to ReasonNone.
func ReasonOf(err error) Reason {
	switch {
	case err == nil:
		return ReasonNone
	case errors.Is(err, ErrInvalidPayload):
		return ReasonInvalidPayload
	case errors.Is(err, ErrQueueFull):
		return ReasonQueueFull
	case errors.Is(err, ErrShuttingDown), errors.Is(err, ErrQueueClosed):
		return ReasonShuttingDown
	case errors.Is(err, ErrExecutionFailed):
		return ReasonExecutionFailed
	}
	return ReasonNone
}
