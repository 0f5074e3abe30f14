// Package lifecycle implements the Entity state machine and the
// back-reference it uses to notify its observer without owning it.
//
// Start notifies synchronously on the caller's goroutine. Stop defers the
// notification to the Entity's queue and resolves the observer again when the
// task runs; an observer that is gone by then is skipped.
//
// Both transitions are idempotent: Start on a running Entity and Stop on a
// stopped one change nothing and send no notification.
package lifecycle

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"lifeline/internal/dispatch"
)

const (
	kindStarted = "started"
	kindStopped = "stopped"
)

// Submitter is the deferred execution facility an Entity schedules stop
// notifications on. *dispatch.Queue satisfies it.
type Submitter interface {
	Submit(task func()) error
}

// Option customizes an Entity at construction.
type Option func(*Entity)

// WithLogger sets the logger used for notification diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Entity) { e.log = l }
}

// Stats is a read-only projection of an Entity.
type Stats struct {
	ID        string
	State     State
	Starts    int64
	Stops     int64
	Delivered int64
	Dropped   int64
}

// Entity is an on/off object that reports transitions to its observer.
type Entity struct {
	id    string
	queue Submitter
	log   zerolog.Logger

	mu       sync.Mutex
	state    State
	observer Ref
	starts   int64
	stops    int64

	delivered atomic.Int64
	dropped   atomic.Int64
}

var entitySeq atomic.Uint64

// NewEntity creates a stopped Entity. An empty id is replaced by a generated
// one; a nil queue selects dispatch.Main().
func NewEntity(id string, q Submitter, opts ...Option) *Entity {
	if id == "" {
		id = "entity-" + strconv.FormatUint(entitySeq.Add(1), 10)
	}
	if q == nil {
		q = dispatch.Main()
	}
	e := &Entity{
		id:    id,
		queue: q,
		state: StateStopped,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.With().Str("component", "entity").Str("entity", id).Logger()
	return e
}

// ID returns the entity identifier passed to observer callbacks.
func (e *Entity) ID() string { return e.id }

// SetObserver registers the back-reference; nil detaches the observer.
func (e *Entity) SetObserver(ref Ref) {
	e.mu.Lock()
	e.observer = ref
	e.mu.Unlock()
}

// State returns the current state.
func (e *Entity) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Running reports whether the Entity is in StateRunning.
func (e *Entity) Running() bool { return e.State() == StateRunning }

// Start moves the Entity to running and calls OnStarted before returning.
func (e *Entity) Start() {
	e.mu.Lock()
	if e.state == StateRunning {
		e.mu.Unlock()
		return
	}
	e.state = StateRunning
	e.starts++
	e.mu.Unlock()
	transitionsTotal.WithLabelValues(string(StateRunning)).Inc()
	e.log.Debug().Msg("started")

	if obs, ok := e.resolve(kindStarted); ok {
		obs.OnStarted(e.id)
	}
}

// Stop moves the Entity to stopped and schedules OnStopped on its queue.
// The returned channel is closed once that notification has been delivered
// or dropped. Stopping a stopped Entity returns an already closed channel.
func (e *Entity) Stop() <-chan struct{} {
	done := make(chan struct{})
	e.mu.Lock()
	if e.state == StateStopped {
		e.mu.Unlock()
		close(done)
		return done
	}
	e.state = StateStopped
	e.stops++
	e.mu.Unlock()
	transitionsTotal.WithLabelValues(string(StateStopped)).Inc()
	e.log.Debug().Msg("stopped")

	err := e.queue.Submit(func() {
		defer close(done)
		if obs, ok := e.resolve(kindStopped); ok {
			obs.OnStopped(e.id)
		}
	})
	if err != nil {
		e.drop(kindStopped)
		e.log.Debug().Err(err).Msg("stop notification not scheduled")
		close(done)
	}
	return done
}

// resolve looks up the observer and records the outcome of the notification.
func (e *Entity) resolve(kind string) (Observer, bool) {
	e.mu.Lock()
	ref := e.observer
	e.mu.Unlock()
	if ref == nil {
		e.drop(kind)
		return nil, false
	}
	obs, ok := ref.Resolve()
	if !ok {
		e.drop(kind)
		e.log.Debug().Str("kind", kind).Msg("observer gone, notification dropped")
		return nil, false
	}
	e.delivered.Add(1)
	notificationsTotal.WithLabelValues(kind, "delivered").Inc()
	return obs, true
}

func (e *Entity) drop(kind string) {
	e.dropped.Add(1)
	notificationsTotal.WithLabelValues(kind, "dropped").Inc()
}

// Stats returns a snapshot of the Entity counters.
func (e *Entity) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Stats{
		ID:        e.id,
		State:     e.state,
		Starts:    e.starts,
		Stops:     e.stops,
		Delivered: e.delivered.Load(),
		Dropped:   e.dropped.Load(),
	}
}
