package batching

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

// registry maps task IDs to envelopes for status lookups. Pending envelopes
// are held until resolved; finished ones move to a size-bounded LRU so memory
// stays flat under sustained load. The oldest finished results are forgotten
// first and then look like unknown IDs.
type registry struct {
	mu       sync.Mutex
	pending  map[string]*Envelope
	finished *lru.Cache
}

func newRegistry(retention int) (*registry, error) {
	cache, err := lru.New(retention)
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}
	return &registry{
		pending:  make(map[string]*Envelope),
		finished: cache,
	}, nil
}

func (r *registry) add(e *Envelope) {
	r.mu.Lock()
	r.pending[e.ID] = e
	r.mu.Unlock()
}

// remove forgets an envelope that never made it into the queue.
func (r *registry) remove(id string) {
	r.mu.Lock()
	delete(r.pending, id)
	r.mu.Unlock()
}

// complete moves a resolved envelope into the finished cache.
func (r *registry) complete(e *Envelope) {
	r.mu.Lock()
	delete(r.pending, e.ID)
	r.finished.Add(e.ID, e)
	r.mu.Unlock()
}

func (r *registry) lookup(id string) (*Envelope, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.pending[id]; ok {
		return e, true
	}
	if v, ok := r.finished.Get(id); ok {
		return v.(*Envelope), true
	}
	return nil, false
}

// sizes returns the pending and retained counts.
func (r *registry) sizes() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending), r.finished.Len()
}
