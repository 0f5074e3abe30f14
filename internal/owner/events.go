package owner

// Event names published by an Owner.
const (
	EventPrepare         = "prepare"
	EventEntityStarted   = "entity_started"
	EventEntityStopped   = "entity_stopped"
	EventTeardownStart   = "teardown_start"
	EventTeardownTimeout = "teardown_timeout"
	EventTeardownDone    = "teardown_done"
)

// Event represents an owner lifecycle event.
// Minimal and stable: name + owner and entity IDs and optional fields.
type Event struct {
	Name     string
	OwnerID  string
	EntityID string
	Fields   map[string]any
}

// EventPublisher receives events from an Owner. Implementations should be
// lightweight and non-blocking; Publish must not panic and must not hold a
// reference to the Owner.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}
