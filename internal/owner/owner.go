package owner

import (
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"lifeline/internal/dispatch"
	"lifeline/internal/lifecycle"
)

// Owner exclusively owns one Entity and observes it through a weak
// back-reference.
type Owner struct {
	id           string
	entityID     string
	lazy         bool
	drainTimeout time.Duration
	hooks        Hooks
	baseLog      zerolog.Logger
	log          zerolog.Logger

	mu          sync.RWMutex
	entity      *lifecycle.Entity
	queue       *dispatch.Queue
	queueConfig dispatch.Config
	ownsQueue   bool
	cleanup     runtime.Cleanup
	publisher   EventPublisher

	// lifeMu orders Prepare against teardown: a Prepare either finishes
	// starting the Entity before teardown stops it, or sees closing.
	lifeMu    sync.RWMutex
	closing   atomic.Bool
	dead      atomic.Bool
	closeOnce sync.Once
	closeErr  error

	startedSeen atomic.Int64
	stoppedSeen atomic.Int64
}

var ownerSeq atomic.Uint64

func nextOwnerID() string {
	return "owner-" + strconv.FormatUint(ownerSeq.Add(1), 10)
}

// New creates an Owner with package defaults and an eagerly created Entity.
func New(id string) *Owner {
	return NewWithConfig(OwnerConfig{ID: id})
}

// ID returns the owner identifier.
func (o *Owner) ID() string { return o.id }

// SetEventPublisher installs p; nil resets to the no-op publisher.
func (o *Owner) SetEventPublisher(p EventPublisher) {
	if p == nil {
		p = noopPublisher{}
	}
	o.mu.Lock()
	o.publisher = p
	o.mu.Unlock()
}

func (o *Owner) publish(name, entityID string, fields map[string]any) {
	o.mu.RLock()
	p := o.publisher
	o.mu.RUnlock()
	if fields == nil {
		fields = map[string]any{}
	}
	p.Publish(Event{Name: name, OwnerID: o.id, EntityID: entityID, Fields: fields})
}

// Entity returns the owned Entity, creating it on first use when the Owner
// is lazy. Once teardown has begun a lazy Owner no longer creates one and
// returns nil.
func (o *Owner) Entity() *lifecycle.Entity {
	o.mu.RLock()
	e := o.entity
	o.mu.RUnlock()
	if e != nil {
		return e
	}
	if o.closing.Load() {
		return nil
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.entity != nil {
		return o.entity
	}
	if o.closing.Load() {
		return nil
	}
	if o.queue == nil {
		qc := o.queueConfig
		if qc.Logger == nil {
			l := o.baseLog
			qc.Logger = &l
		}
		o.queue = dispatch.New(qc)
		o.ownsQueue = true
	}
	e = lifecycle.NewEntity(o.entityID, o.queue, lifecycle.WithLogger(o.baseLog))
	e.SetObserver(lifecycle.Weak(o))
	o.entity = e
	o.cleanup = runtime.AddCleanup(o, releaseOrphan, orphan{
		ownerID: o.id,
		entity:  e,
		queue:   o.privateQueue(),
		log:     o.log,
	})
	o.log.Debug().Str("entity", e.ID()).Bool("lazy", o.lazy).Msg("entity created")
	return e
}

func (o *Owner) privateQueue() *dispatch.Queue {
	if o.ownsQueue {
		return o.queue
	}
	return nil
}

// Prepare starts the owned Entity. It is ignored once teardown has begun.
// A Started hook must not call Close on the same Owner.
func (o *Owner) Prepare() {
	o.lifeMu.RLock()
	defer o.lifeMu.RUnlock()
	if o.closing.Load() {
		o.log.Debug().Msg("prepare after teardown ignored")
		return
	}
	e := o.Entity()
	if e == nil {
		o.log.Debug().Msg("prepare after teardown ignored")
		return
	}
	o.publish(EventPrepare, e.ID(), nil)
	e.Start()
}

// Alive reports whether the Owner still acts on notifications. It turns
// false when Close completes.
func (o *Owner) Alive() bool { return !o.dead.Load() }

// OnStarted implements lifecycle.Observer.
func (o *Owner) OnStarted(entityID string) {
	if !o.Alive() {
		return
	}
	o.startedSeen.Add(1)
	o.log.Info().Str("entity", entityID).Str("event", EventEntityStarted).Msg("entity started")
	o.publish(EventEntityStarted, entityID, nil)
	if o.hooks.Started != nil {
		o.hooks.Started(entityID)
	}
}

// OnStopped implements lifecycle.Observer.
func (o *Owner) OnStopped(entityID string) {
	if !o.Alive() {
		return
	}
	o.stoppedSeen.Add(1)
	o.log.Info().Str("entity", entityID).Str("event", EventEntityStopped).Msg("entity stopped")
	o.publish(EventEntityStopped, entityID, nil)
	if o.hooks.Stopped != nil {
		o.hooks.Stopped(entityID)
	}
}
