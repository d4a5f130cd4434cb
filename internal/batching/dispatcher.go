package batching

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/concave-dev/batchd/internal/logging"
)

// dispatcher runs sealed batches against the executor. Each batch gets its own
// goroutine so a slow backend never holds up formation of the next batch.
// The in-flight count feeds admission backpressure and stats.
type dispatcher struct {
	executor Executor
	registry *registry
	counters *counters

	inflight atomic.Int64
	wg       sync.WaitGroup
}

func newDispatcher(executor Executor, reg *registry, c *counters) *dispatcher {
	return &dispatcher{
		executor: executor,
		registry: reg,
		counters: c,
	}
}

// dispatch hands a batch to a new goroutine and returns immediately. Only the
// former calls dispatch, so wg.Add never races with wait.
func (d *dispatcher) dispatch(b *Batch) {
	d.inflight.Add(1)
	d.wg.Add(1)
	go d.run(b)
}

// inFlight returns the number of batches currently executing.
func (d *dispatcher) inFlight() int {
	return int(d.inflight.Load())
}

// wait blocks until every dispatched batch has resolved.
func (d *dispatcher) wait() {
	d.wg.Wait()
}

func (d *dispatcher) run(b *Batch) {
	defer d.wg.Done()
	defer d.inflight.Add(-1)

	start := time.Now()
	outcomes, err := d.execute(b)
	if err == nil && len(outcomes) != len(b.Items) {
		err = fmt.Errorf("executor returned %d outcomes for %d tasks", len(outcomes), len(b.Items))
	}

	if err != nil {
		logging.Error("Dispatcher: %s failed after %s (%d tasks): %v",
			logging.FormatBatchID(b.ID), time.Since(start).Round(time.Millisecond), len(b.Items), err)
		for _, e := range b.Items {
			d.resolve(e, failed(ReasonExecutionFailed, err.Error()))
		}
		return
	}

	failures := 0
	for i, e := range b.Items {
		if o := outcomes[i]; o.Err != nil {
			failures++
			d.resolve(e, failed(ReasonExecutionFailed, o.Err.Error()))
		} else {
			d.resolve(e, succeeded(o.Value))
		}
	}

	if failures > 0 {
		logging.Warn("Dispatcher: %s completed with %d/%d task failures",
			logging.FormatBatchID(b.ID), failures, len(b.Items))
		return
	}
	logging.Debug("Dispatcher: %s completed %d tasks in %s",
		logging.FormatBatchID(b.ID), len(b.Items), time.Since(start).Round(time.Millisecond))
}

// execute calls the executor once, converting a panic into a whole-batch
// error. The context is never cancelled by shutdown.
func (d *dispatcher) execute(b *Batch) (outcomes []Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			logging.Debug("Dispatcher: executor panic stack:\n%s", debug.Stack())
			outcomes, err = nil, fmt.Errorf("executor panic: %v", r)
		}
	}()
	return d.executor.Execute(context.Background(), b.Payloads())
}

func (d *dispatcher) resolve(e *Envelope, r Result) {
	if !e.resolve(r) {
		logging.Warn("Dispatcher: task %s already resolved, dropping second outcome",
			logging.FormatTaskID(e.ID))
		return
	}
	if r.Status == StatusSucceeded {
		d.counters.succeeded.Add(1)
	} else {
		d.counters.failed.Add(1)
	}
	d.registry.complete(e)
}
