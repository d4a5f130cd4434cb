package batching

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/concave-dev/batchd/internal/logging"
	"github.com/concave-dev/batchd/internal/utils"
)

// ErrNotStarted is returned by Flush before Start has been called.
var ErrNotStarted = errors.New("batcher not started")

// Batcher wires admission, queue, former and dispatcher together and owns
// their lifecycle. Every Batcher has its own queue, counters and registry;
// nothing is shared between instances.
//
// LIFECYCLE:
//   - New validates config and builds components; tasks may be submitted
//     immediately and wait in the queue until Start
//   - Start launches the former goroutine
//   - DrainAndStop rejects new work, flushes every queued task and waits for
//     all in-flight batches to resolve
type Batcher struct {
	config     Config
	queue      *Queue
	registry   *registry
	counters   *counters
	admission  *admission
	dispatcher *dispatcher
	former     *former

	started   atomic.Bool
	startOnce sync.Once
	stopOnce  sync.Once
	stopCh    chan struct{}
	drained   chan struct{}
}

// New creates a Batcher for the given executor. The config is copied.
func New(config *Config, executor Executor) (*Batcher, error) {
	if executor == nil {
		return nil, fmt.Errorf("executor cannot be nil")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.MaxBatchSize > config.QueueCapacity {
		logging.Warn("Batcher: max_batch_size %d exceeds queue_capacity %d, size trigger can never fire",
			config.MaxBatchSize, config.QueueCapacity)
	}

	reg, err := newRegistry(config.ResultRetention)
	if err != nil {
		return nil, err
	}

	b := &Batcher{
		config:   *config,
		queue:    NewQueue(config.QueueCapacity),
		registry: reg,
		counters: &counters{},
		stopCh:   make(chan struct{}),
		drained:  make(chan struct{}),
	}
	b.dispatcher = newDispatcher(executor, b.registry, b.counters)
	b.former = newFormer(b.queue, b.dispatcher, b.counters, &b.config, b.stopCh)
	b.admission = &admission{
		queue:       b.queue,
		registry:    b.registry,
		dispatcher:  b.dispatcher,
		counters:    b.counters,
		maxInflight: config.MaxInflightBatches,
		newID:       utils.GenerateID,
		now:         time.Now,
	}
	return b, nil
}

// Start begins batch formation. Safe to call more than once.
func (b *Batcher) Start() {
	b.startOnce.Do(func() {
		b.started.Store(true)
		go b.former.run()
		logging.Info("Batcher: Started (queue_capacity=%d, max_batch_size=%d, max_wait=%s, max_inflight_batches=%d)",
			b.config.QueueCapacity, b.config.MaxBatchSize, b.config.MaxWait, b.config.MaxInflightBatches)
	})
}

// Submit admits a task. It never blocks; refusals are returned as errors that
// match ErrInvalidPayload, ErrQueueFull or ErrShuttingDown via errors.Is.
func (b *Batcher) Submit(p Payload) (*Handle, error) {
	return b.admission.submit(p)
}

// Status returns the current result for a task ID. The second value is false
// for IDs that were never issued or whose result has aged out of retention.
func (b *Batcher) Status(id string) (Result, bool) {
	e, ok := b.registry.lookup(id)
	if !ok {
		return Result{}, false
	}
	return e.peek(), true
}

// Lookup returns a handle for a known task ID so callers can wait on it.
func (b *Batcher) Lookup(id string) (*Handle, bool) {
	e, ok := b.registry.lookup(id)
	if !ok {
		return nil, false
	}
	return &Handle{env: e}, true
}

// Flush seals everything pending right now into batches without waiting for
// the size or time trigger. Batches keep forming on their own regardless.
func (b *Batcher) Flush(ctx context.Context) (FlushResult, error) {
	if !b.started.Load() {
		return FlushResult{}, ErrNotStarted
	}
	if b.admission.closing.Load() {
		return FlushResult{}, ErrShuttingDown
	}

	reply := make(chan FlushResult, 1)
	select {
	case b.former.flushCh <- reply:
	case <-b.former.done:
		return FlushResult{}, ErrShuttingDown
	case <-ctx.Done():
		return FlushResult{}, ctx.Err()
	}

	select {
	case res := <-reply:
		return res, nil
	case <-ctx.Done():
		return FlushResult{}, ctx.Err()
	}
}

// Stats returns a snapshot of queue, dispatch and outcome counters.
func (b *Batcher) Stats() Stats {
	s := Stats{
		QueueDepth:         b.queue.Depth(),
		QueueCapacity:      b.queue.Capacity(),
		InflightBatches:    b.dispatcher.inFlight(),
		MaxInflightBatches: b.config.MaxInflightBatches,
		MaxBatchSize:       b.config.MaxBatchSize,
		MaxWaitMs:          b.config.MaxWait.Milliseconds(),
		Draining:           b.admission.closing.Load(),
	}
	b.counters.fill(&s)
	s.TasksPending, s.RetainedResults = b.registry.sizes()
	return s
}

// DrainAndStop stops admission, flushes the queue and waits for every
// in-flight batch to resolve. When it returns nil every accepted task has a
// terminal result. If ctx expires first the drain keeps running in the
// background and ctx.Err() is returned; calling again resumes the wait.
func (b *Batcher) DrainAndStop(ctx context.Context) error {
	b.stopOnce.Do(func() {
		logging.Info("Batcher: Draining (%d queued, %d batches in flight)",
			b.queue.Depth(), b.dispatcher.inFlight())

		b.admission.close()

		// A batcher that was never started still has to flush its queue
		b.Start()
		close(b.stopCh)

		go func() {
			<-b.former.done
			b.dispatcher.wait()
			close(b.drained)
		}()
	})

	select {
	case <-b.drained:
		logging.Info("Batcher: Stopped, all accepted tasks resolved")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("drain interrupted: %w", ctx.Err())
	}
}
