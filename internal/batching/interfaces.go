// Package batching implements the task-batching admission layer that sits in
// front of a batch compute backend.
//
// Submissions pass through an admission controller into a bounded FIFO queue.
// A single former goroutine seals batches on a size or time trigger and hands
// them to a dispatcher, which runs each batch against an Executor concurrently
// and writes one outcome into every task's completion cell.
package batching

import "context"

// Executor runs a sealed batch against the compute backend. This interface
// keeps the batching core independent of any concrete backend (local logging
// executor, remote HTTP backend, test doubles).
//
// Execute must return exactly one Outcome per payload, in the same order. A
// non-nil error is treated as a whole-batch fault and every item in the batch
// resolves to ExecutionFailed. Execute is called at most once per batch; the
// batching layer never retries.
type Executor interface {
	Execute(ctx context.Context, payloads []Payload) ([]Outcome, error)
}

// ExecutorFunc adapts an ordinary function to the Executor interface.
type ExecutorFunc func(ctx context.Context, payloads []Payload) ([]Outcome, error)

// Execute calls f(ctx, payloads).
func (f ExecutorFunc) Execute(ctx context.Context, payloads []Payload) ([]Outcome, error) {
	return f(ctx, payloads)
}

// Outcome is the per-item result returned by an Executor. A nil Err marks the
// item as succeeded with Value as its result.
type Outcome struct {
	Value any
	Err   error
}
