package batching

import "sync/atomic"

// counters are the lock-free lifetime counters shared by admission, the
// former and the dispatcher.
type counters struct {
	accepted  atomic.Uint64
	succeeded atomic.Uint64
	failed    atomic.Uint64

	batchesSize     atomic.Uint64
	batchesTime     atomic.Uint64
	batchesFlush    atomic.Uint64
	batchesShutdown atomic.Uint64

	rejectedInvalid  atomic.Uint64
	rejectedFull     atomic.Uint64
	rejectedShutdown atomic.Uint64
}

func (c *counters) batchFormed(t Trigger) {
	switch t {
	case TriggerSize:
		c.batchesSize.Add(1)
	case TriggerTime:
		c.batchesTime.Add(1)
	case TriggerFlush:
		c.batchesFlush.Add(1)
	case TriggerShutdown:
		c.batchesShutdown.Add(1)
	}
}

func (c *counters) rejected(r Reason) {
	switch r {
	case ReasonInvalidPayload:
		c.rejectedInvalid.Add(1)
	case ReasonQueueFull:
		c.rejectedFull.Add(1)
	case ReasonShuttingDown:
		c.rejectedShutdown.Add(1)
	}
}

// Stats is a point-in-time snapshot of the batcher. Individual fields are
// read atomically but the snapshot as a whole is not.
type Stats struct {
	QueueDepth         int   `json:"queue_depth"`
	QueueCapacity      int   `json:"queue_capacity"`
	InflightBatches    int   `json:"inflight_batches"`
	MaxInflightBatches int   `json:"max_inflight_batches"`
	MaxBatchSize       int   `json:"max_batch_size"`
	MaxWaitMs          int64 `json:"max_wait_ms"`
	Draining           bool  `json:"draining"`

	BatchesFormed    uint64             `json:"batches_formed"`
	BatchesByTrigger map[Trigger]uint64 `json:"batches_by_trigger"`

	TasksAccepted  uint64            `json:"tasks_accepted"`
	TasksSucceeded uint64            `json:"tasks_succeeded"`
	TasksFailed    uint64            `json:"tasks_failed"`
	TasksPending   int               `json:"tasks_pending"`
	Rejections     map[Reason]uint64 `json:"rejections"`

	RetainedResults int `json:"retained_results"`
}

func (c *counters) fill(s *Stats) {
	s.BatchesByTrigger = map[Trigger]uint64{
		TriggerSize:     c.batchesSize.Load(),
		TriggerTime:     c.batchesTime.Load(),
		TriggerFlush:    c.batchesFlush.Load(),
		TriggerShutdown: c.batchesShutdown.Load(),
	}
	for _, n := range s.BatchesByTrigger {
		s.BatchesFormed += n
	}

	s.TasksAccepted = c.accepted.Load()
	s.TasksSucceeded = c.succeeded.Load()
	s.TasksFailed = c.failed.Load()
	s.Rejections = map[Reason]uint64{
		ReasonInvalidPayload: c.rejectedInvalid.Load(),
		ReasonQueueFull:      c.rejectedFull.Load(),
		ReasonShuttingDown:   c.rejectedShutdown.Load(),
	}
}
