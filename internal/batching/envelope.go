package batching

import (
	"context"
	"sync"
	"time"
)

// Payload is the opaque unit of work submitted by callers. The batching core
// validates its shape and never interprets its content.
type Payload struct {
	Name string         `json:"task_name" validate:"required,notblank"` // Task name, must have non-space content
	Data map[string]any `json:"task_data" validate:"required"`          // Task data, must be a map (may be empty)
}

// Status is the lifecycle state of a submitted task as seen by callers.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Result is the terminal (or pending) outcome of a task.
type Result struct {
	Status  Status `json:"status"`
	Value   any    `json:"result,omitempty"`
	Reason  Reason `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

// Terminal reports whether the result is a final outcome.
func (r Result) Terminal() bool {
	return r.Status == StatusSucceeded || r.Status == StatusFailed
}

func succeeded(value any) Result {
	return Result{Status: StatusSucceeded, Value: value}
}

func failed(reason Reason, message string) Result {
	return Result{Status: StatusFailed, Reason: reason, Message: message}
}

// Envelope carries one submitted task through the queue, the former and the
// dispatcher. ID, Payload and EnqueuedAt are immutable after construction.
//
// The completion cell is single-assignment: resolve writes it at most once and
// closes done, so readers that observe done closed see the final result.
type Envelope struct {
	ID         string
	Payload    Payload
	EnqueuedAt time.Time

	once   sync.Once
	done   chan struct{}
	result Result
}

func newEnvelope(id string, payload Payload, now time.Time) *Envelope {
	return &Envelope{
		ID:         id,
		Payload:    payload,
		EnqueuedAt: now,
		done:       make(chan struct{}),
	}
}

// resolve writes the outcome into the completion cell. Returns false when the
// cell was already written; the second value is discarded.
func (e *Envelope) resolve(r Result) bool {
	written := false
	e.once.Do(func() {
		e.result = r
		close(e.done)
		written = true
	})
	return written
}

// peek returns the result without blocking. Pending until resolved.
func (e *Envelope) peek() Result {
	select {
	case <-e.done:
		return e.result
	default:
		return Result{Status: StatusPending}
	}
}

// Handle is the submitter's read side of an envelope's completion cell.
type Handle struct {
	env *Envelope
}

// ID returns the task identifier assigned at submission.
func (h *Handle) ID() string { return h.env.ID }

// EnqueuedAt returns the admission timestamp.
func (h *Handle) EnqueuedAt() time.Time { return h.env.EnqueuedAt }

// Done is closed once the task has a terminal outcome.
func (h *Handle) Done() <-chan struct{} { return h.env.done }

// Result returns the current result without blocking.
func (h *Handle) Result() Result { return h.env.peek() }

// Wait blocks until the task resolves or ctx is done. On context expiry the
// pending result is returned together with the context error.
func (h *Handle) Wait(ctx context.Context) (Result, error) {
	select {
	case <-h.env.done:
		return h.env.result, nil
	case <-ctx.Done():
		return h.env.peek(), ctx.Err()
	}
}
