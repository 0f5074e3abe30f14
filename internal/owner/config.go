package owner

import (
	"time"

	"github.com/rs/zerolog"

	"lifeline/internal/dispatch"
)

// Defaults applied when corresponding OwnerConfig fields are unset.
const (
	defaultDrainTimeout = 2 * time.Second
	defaultEntityID     = "entity"
)

// Hooks are side effects run when the Owner acts on a notification.
// They must not capture the Owner.
type Hooks struct {
	Started func(entityID string)
	Stopped func(entityID string)
}

// OwnerConfig encapsulates all tunables for Owner construction.
type OwnerConfig struct {
	ID       string
	EntityID string
	// Queue carries stop notifications. When nil the Owner creates a private
	// queue from QueueConfig and closes it on teardown.
	Queue       *dispatch.Queue
	QueueConfig dispatch.Config
	// LazyEntity defers creating the Entity until it is first needed.
	LazyEntity bool
	// DrainTimeout bounds how long Close waits for the stop notification.
	DrainTimeout time.Duration
	Hooks        Hooks
	Publisher    EventPublisher
	// Logger is optional; nil disables logging.
	Logger *zerolog.Logger
}

// NewWithConfig constructs an Owner from OwnerConfig.
func NewWithConfig(cfg OwnerConfig) *Owner {
	o := &Owner{
		id:          cfg.ID,
		entityID:    cfg.EntityID,
		queue:       cfg.Queue,
		queueConfig: cfg.QueueConfig,
		lazy:        cfg.LazyEntity,
		hooks:       cfg.Hooks,
		publisher:   cfg.Publisher,
	}
	// Apply defaults if unset
	if o.id == "" {
		o.id = nextOwnerID()
	}
	if o.entityID == "" {
		o.entityID = o.id + "-" + defaultEntityID
	}
	if cfg.DrainTimeout <= 0 {
		o.drainTimeout = defaultDrainTimeout
	} else {
		o.drainTimeout = cfg.DrainTimeout
	}
	if o.publisher == nil {
		o.publisher = noopPublisher{}
	}
	if o.queueConfig.Name == "" {
		o.queueConfig.Name = o.id
	}
	o.baseLog = zerolog.Nop()
	if cfg.Logger != nil {
		o.baseLog = *cfg.Logger
	}
	o.log = o.baseLog.With().Str("component", "owner").Str("owner", o.id).Logger()
	if !o.lazy {
		o.Entity()
	}
	return o
}
