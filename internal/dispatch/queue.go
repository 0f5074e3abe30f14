// Package dispatch provides the deferred execution facility used for
// lifecycle notifications: a named queue that runs submitted closures later,
// one at a time, in submission order.
package dispatch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Defaults applied when corresponding Config fields are unset.
const (
	defaultName     = "default"
	defaultCapacity = 256
	defaultMaxWait  = 1 * time.Second
)

// Config encapsulates all tunables for Queue construction.
type Config struct {
	Name     string
	Capacity int
	// MaxWait bounds how long Submit blocks on a full buffer.
	MaxWait time.Duration
	// Logger is optional; nil disables logging.
	Logger *zerolog.Logger
}

// Stats is a read-only projection of the queue counters.
type Stats struct {
	Name     string
	Pending  int
	Executed int64
	Panicked int64
	Rejected int64
	Closed   bool
}

// Queue runs submitted tasks on a single worker goroutine in FIFO order.
type Queue struct {
	name    string
	maxWait time.Duration
	log     zerolog.Logger

	// mu guards closed and sends on tasks so Close never races a send.
	mu     sync.RWMutex
	closed bool
	tasks  chan func()
	done   chan struct{}

	executed atomic.Int64
	panicked atomic.Int64
	rejected atomic.Int64
}

// New constructs a Queue from cfg and starts its worker.
func New(cfg Config) *Queue {
	if cfg.Name == "" {
		cfg.Name = defaultName
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = defaultCapacity
	}
	if cfg.MaxWait <= 0 {
		cfg.MaxWait = defaultMaxWait
	}
	base := zerolog.Nop()
	if cfg.Logger != nil {
		base = *cfg.Logger
	}
	q := &Queue{
		name:    cfg.Name,
		maxWait: cfg.MaxWait,
		log:     base.With().Str("component", "dispatch").Str("queue", cfg.Name).Logger(),
		tasks:   make(chan func(), cfg.Capacity),
		done:    make(chan struct{}),
	}
	go q.run()
	return q
}

// Name returns the queue name used in logs and metrics.
func (q *Queue) Name() string { return q.name }

// Submit enqueues task. It blocks for at most the configured MaxWait when the
// buffer is full.
func (q *Queue) Submit(task func()) error {
	ctx, cancel := context.WithTimeout(context.Background(), q.maxWait)
	defer cancel()
	err := q.SubmitContext(ctx, task)
	if errors.Is(err, context.DeadlineExceeded) {
		return busyError{queue: q.name}
	}
	return err
}

// SubmitContext enqueues task, waiting for buffer space until ctx is done.
func (q *Queue) SubmitContext(ctx context.Context, task func()) error {
	if task == nil {
		return errors.New("dispatch: nil task")
	}
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		q.reject()
		return ErrClosed
	}
	select {
	case q.tasks <- task:
		queuePending.WithLabelValues(q.name).Inc()
		return nil
	default:
	}
	select {
	case q.tasks <- task:
		queuePending.WithLabelValues(q.name).Inc()
		return nil
	case <-ctx.Done():
		q.reject()
		q.log.Warn().Err(ctx.Err()).Int("pending", len(q.tasks)).Msg("submit rejected")
		return ctx.Err()
	}
}

func (q *Queue) reject() {
	q.rejected.Add(1)
	queueTasksTotal.WithLabelValues(q.name, "rejected").Inc()
}

// Flush blocks until every task submitted before the call has run.
func (q *Queue) Flush(ctx context.Context) error {
	barrier := make(chan struct{})
	if err := q.SubmitContext(ctx, func() { close(barrier) }); err != nil {
		return err
	}
	select {
	case <-barrier:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting tasks, lets the worker run what is already queued and
// waits for it to exit or for ctx to end. Calling Close again only waits.
func (q *Queue) Close(ctx context.Context) error {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.tasks)
	}
	q.mu.Unlock()
	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed once the worker has exited after Close.
func (q *Queue) Done() <-chan struct{} { return q.done }

// Stats returns a snapshot of the queue counters.
func (q *Queue) Stats() Stats {
	q.mu.RLock()
	closed := q.closed
	q.mu.RUnlock()
	return Stats{
		Name:     q.name,
		Pending:  len(q.tasks),
		Executed: q.executed.Load(),
		Panicked: q.panicked.Load(),
		Rejected: q.rejected.Load(),
		Closed:   closed,
	}
}

func (q *Queue) run() {
	defer close(q.done)
	for task := range q.tasks {
		queuePending.WithLabelValues(q.name).Dec()
		q.exec(task)
	}
	q.log.Debug().Int64("executed", q.executed.Load()).Msg("worker exited")
}

// exec runs a single task, recovering from panics so one faulty callback
// cannot stall later notifications.
func (q *Queue) exec(task func()) {
	defer func() {
		if r := recover(); r != nil {
			q.panicked.Add(1)
			queueTasksTotal.WithLabelValues(q.name, "panicked").Inc()
			q.log.Error().Interface("panic", r).Msg("task panicked")
		}
	}()
	task()
	q.executed.Add(1)
	queueTasksTotal.WithLabelValues(q.name, "executed").Inc()
}
