package owner

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"lifeline/internal/dispatch"
	"lifeline/internal/lifecycle"
)

// Close tears the Owner down. It runs once; later calls return the first
// result.
//   - Stops the Entity, if one was created, and waits up to DrainTimeout for
//     its stop notification to be delivered.
//   - Marks the Owner dead so any notification still pending is dropped.
//   - Closes the private queue, if the Owner created one.
//
// Close must not be called from a task running on the Owner's own queue:
// the wait for the stop notification would then only end at DrainTimeout.
func (o *Owner) Close() error {
	o.closeOnce.Do(func() { o.closeErr = o.teardown() })
	return o.closeErr
}

func (o *Owner) teardown() error {
	o.lifeMu.Lock()
	o.closing.Store(true)
	o.lifeMu.Unlock()
	startTs := time.Now()

	o.mu.Lock()
	e := o.entity
	q := o.queue
	owns := o.ownsQueue
	if e != nil {
		// Explicit teardown replaces the GC backstop.
		o.cleanup.Stop()
	}
	o.mu.Unlock()

	entityID := ""
	if e != nil {
		entityID = e.ID()
	}
	o.publish(EventTeardownStart, entityID, nil)
	o.log.Info().Str("event", EventTeardownStart).Bool("entity", e != nil).Msg("teardown")

	if e != nil {
		done := e.Stop()
		timer := time.NewTimer(o.drainTimeout)
		select {
		case <-done:
			timer.Stop()
		case <-timer.C:
			o.publish(EventTeardownTimeout, entityID, map[string]any{"timeout_ms": o.drainTimeout.Milliseconds()})
			o.log.Warn().Str("event", EventTeardownTimeout).Dur("timeout", o.drainTimeout).Msg("stop notification still pending")
		}
	}
	o.dead.Store(true)

	var err error
	if owns && q != nil {
		ctx, cancel := context.WithTimeout(context.Background(), o.drainTimeout)
		if cerr := q.Close(ctx); cerr != nil {
			err = fmt.Errorf("close queue %s: %w", q.Name(), cerr)
		}
		cancel()
	}

	o.publish(EventTeardownDone, entityID, map[string]any{"dur_ms": time.Since(startTs).Milliseconds()})
	o.log.Info().Str("event", EventTeardownDone).Dur("dur", time.Since(startTs)).Msg("teardown")
	return err
}

// orphan is what the GC backstop needs to stop an Entity whose Owner became
// unreachable without Close. It never references the Owner.
type orphan struct {
	ownerID string
	entity  *lifecycle.Entity
	queue   *dispatch.Queue
	log     zerolog.Logger
}

// releaseOrphan runs on the runtime cleanup goroutine once the Owner has been
// collected. The stop notification finds the back-reference dead and is
// dropped.
func releaseOrphan(r orphan) {
	r.log.Warn().Str("entity", r.entity.ID()).Msg("owner released without Close, stopping entity")
	done := r.entity.Stop()
	if r.queue == nil {
		return
	}
	// Do not block the cleanup goroutine on the queue worker.
	go func() {
		<-done
		ctx, cancel := context.WithTimeout(context.Background(), defaultDrainTimeout)
		defer cancel()
		if err := r.queue.Close(ctx); err != nil {
			r.log.Warn().Err(err).Str("queue", r.queue.Name()).Msg("close orphaned queue")
		}
	}()
}
