package batching

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/concave-dev/batchd/internal/logging"
	"github.com/concave-dev/batchd/internal/validate"
)

// admission validates submissions and pushes accepted envelopes into the
// queue. It never blocks: every refusal is returned synchronously and the
// task never enters the queue.
type admission struct {
	queue       *Queue
	registry    *registry
	dispatcher  *dispatcher
	counters    *counters
	maxInflight int

	closing atomic.Bool

	newID func() (string, error)
	now   func() time.Time
}

// close makes every later submit fail with ErrShuttingDown. The queue is
// closed under its own mutex so a racing push either lands before the close
// or fails.
func (a *admission) close() {
	a.closing.Store(true)
	a.queue.Close()
}

func (a *admission) submit(p Payload) (*Handle, error) {
	if a.closing.Load() {
		return nil, a.reject(ErrShuttingDown)
	}

	if err := validate.Struct(p); err != nil {
		return nil, a.reject(&InvalidPayloadError{Detail: err.Error()})
	}

	if a.maxInflight > 0 {
		if inflight := a.dispatcher.inFlight(); inflight >= a.maxInflight {
			return nil, a.reject(&QueueFullError{
				Current:     a.queue.Depth(),
				Capacity:    a.queue.Capacity(),
				InFlight:    inflight,
				MaxInFlight: a.maxInflight,
			})
		}
	}

	id, err := a.newID()
	if err != nil {
		return nil, fmt.Errorf("failed to assign task id: %w", err)
	}

	env := newEnvelope(id, p, a.now())
	a.registry.add(env)

	if err := a.queue.Push(env); err != nil {
		a.registry.remove(env.ID)
		if errors.Is(err, ErrQueueClosed) {
			err = ErrShuttingDown
		}
		// The envelope was built, so its cell gets the rejection too
		env.resolve(failed(ReasonOf(err), err.Error()))
		return nil, a.reject(err)
	}

	a.counters.accepted.Add(1)
	logging.Debug("Admission: Accepted task %s (%s)", logging.FormatTaskID(env.ID), p.Name)
	return &Handle{env: env}, nil
}

func (a *admission) reject(err error) error {
	a.counters.rejected(ReasonOf(err))
	logging.Debug("Admission: Rejected submission: %v", err)
	return err
}
