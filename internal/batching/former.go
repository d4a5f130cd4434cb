package batching

import (
	"time"

	"github.com/concave-dev/batchd/internal/logging"
)

// Trigger records why a batch was sealed.
type Trigger string

const (
	TriggerSize     Trigger = "size"     // max_batch_size tasks were pending
	TriggerTime     Trigger = "time"     // max_wait elapsed since the first task
	TriggerFlush    Trigger = "flush"    // explicit Flush request
	TriggerShutdown Trigger = "shutdown" // drain on DrainAndStop
)

// Batch is an immutable group of envelopes handed to the dispatcher.
// Items are in arrival order and 1 <= len(Items) <= max_batch_size.
type Batch struct {
	ID       uint64
	Items    []*Envelope
	FormedAt time.Time
	Trigger  Trigger
}

// Payloads returns the batch payloads in item order.
func (b *Batch) Payloads() []Payload {
	out := make([]Payload, len(b.Items))
	for i, e := range b.Items {
		out[i] = e.Payload
	}
	return out
}

// FlushResult reports what an explicit flush sealed.
type FlushResult struct {
	Batches int `json:"batches"`
	Tasks   int `json:"tasks"`
}

// former is the single goroutine that turns queued envelopes into batches.
//
// Accumulating tasks stay in the queue until the batch is sealed, so queue
// depth counts every task not yet dispatched and admission backpressure sees
// them. Sealing pops the oldest max_batch_size tasks; anything left over starts
// the next accumulation window immediately.
type former struct {
	queue        *Queue
	dispatcher   *dispatcher
	counters     *counters
	maxBatchSize int
	maxWait      time.Duration

	nextID uint64

	flushCh chan chan FlushResult
	stopCh  <-chan struct{}
	done    chan struct{}
}

func newFormer(q *Queue, d *dispatcher, c *counters, cfg *Config, stopCh <-chan struct{}) *former {
	return &former{
		queue:        q,
		dispatcher:   d,
		counters:     c,
		maxBatchSize: cfg.MaxBatchSize,
		maxWait:      cfg.MaxWait,
		flushCh:      make(chan chan FlushResult),
		stopCh:       stopCh,
		done:         make(chan struct{}),
	}
}

func (f *former) run() {
	defer close(f.done)

	// IDLE when timer is nil, ACCUMULATING otherwise
	var timer *time.Timer
	var timerC <-chan time.Time
	reset := func() {
		if timer != nil {
			timer.Stop()
		}
		timer, timerC = nil, nil
	}
	defer reset()

	for {
		depth := f.queue.Depth()

		// Size is checked before time on every cycle
		if depth >= f.maxBatchSize {
			f.seal(TriggerSize)
			reset()
			continue
		}
		if depth > 0 && timer == nil {
			timer = time.NewTimer(f.maxWait)
			timerC = timer.C
		}

		select {
		case <-f.queue.Ready():
			// re-evaluate depth

		case <-timerC:
			timer, timerC = nil, nil
			f.seal(TriggerTime)

		case reply := <-f.flushCh:
			reset()
			// Only what was pending when the flush arrived
			var res FlushResult
			for remaining := f.queue.Depth(); remaining > 0; {
				n := f.seal(TriggerFlush)
				if n == 0 {
					break
				}
				remaining -= n
				res.Tasks += n
				res.Batches++
			}
			reply <- res

		case <-f.stopCh:
			reset()
			f.drain()
			return
		}
	}
}

// drain seals everything left in the closed queue.
func (f *former) drain() {
	batches, tasks := 0, 0
	for {
		n := f.seal(TriggerShutdown)
		if n == 0 {
			break
		}
		tasks += n
		batches++
	}
	if batches > 0 {
		logging.Info("Former: Flushed %d tasks in %d final batches", tasks, batches)
	}
}

// seal pops up to max_batch_size tasks and dispatches them as one batch.
// Returns the number of tasks sealed.
func (f *former) seal(trigger Trigger) int {
	items := f.queue.PopUpTo(f.maxBatchSize)
	if len(items) == 0 {
		return 0
	}

	f.nextID++
	b := &Batch{
		ID:       f.nextID,
		Items:    items,
		FormedAt: time.Now(),
		Trigger:  trigger,
	}
	f.counters.batchFormed(trigger)

	logging.Debug("Former: Sealed %s with %d tasks (trigger: %s)",
		logging.FormatBatchID(b.ID), len(items), trigger)
	f.dispatcher.dispatch(b)
	return len(items)
}
