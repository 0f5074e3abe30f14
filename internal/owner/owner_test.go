package owner

import (
	"strings"
	"sync/atomic"
	"testing"

	"lifeline/internal/lifecycle"
)

func TestNewWithConfigDefaults(t *testing.T) {
	o := NewWithConfig(OwnerConfig{})
	defer o.Close()
	if !strings.HasPrefix(o.ID(), "owner-") {
		t.Fatalf("expected generated owner id, got %q", o.ID())
	}
	if o.drainTimeout != defaultDrainTimeout {
		t.Fatalf("expected default drainTimeout=%v got %v", defaultDrainTimeout, o.drainTimeout)
	}
	e := o.Entity()
	if e == nil || e.ID() != o.ID()+"-"+defaultEntityID {
		t.Fatalf("expected eager entity with default id, got %+v", e)
	}
	if !o.ownsQueue || o.queue.Name() != o.ID() {
		t.Fatalf("expected a private queue named after the owner")
	}
}

func TestPrepare_StartsEntityAndNotifiesOnce(t *testing.T) {
	pub := NewMemoryPublisher()
	var hooked []string
	o := NewWithConfig(OwnerConfig{
		ID:        "garage",
		EntityID:  "car",
		Publisher: pub,
		Hooks:     Hooks{Started: func(id string) { hooked = append(hooked, id) }},
	})
	defer o.Close()

	o.Prepare()
	if got := o.Entity().State(); got != lifecycle.StateRunning {
		t.Fatalf("expected running, got %s", got)
	}
	st := o.Status()
	if st.StartedSeen != 1 {
		t.Fatalf("expected OnStarted exactly once, got %d", st.StartedSeen)
	}
	if !equalStrings(pub.Names(), []string{EventPrepare, EventEntityStarted}) {
		t.Fatalf("unexpected events: %v", pub.Names())
	}
	if len(hooked) != 1 || hooked[0] != "car" {
		t.Fatalf("expected started hook for car, got %v", hooked)
	}
	// Start is idempotent: a second Prepare does not notify again.
	o.Prepare()
	if o.Status().StartedSeen != 1 {
		t.Fatalf("expected idempotent start")
	}
}

func TestEntityStopTwice_SingleTransition(t *testing.T) {
	pub := NewMemoryPublisher()
	o := NewWithConfig(OwnerConfig{ID: "garage", Publisher: pub})
	defer o.Close()
	o.Prepare()

	e := o.Entity()
	d1 := e.Stop()
	d2 := e.Stop()
	<-d1
	<-d2
	if e.State() != lifecycle.StateStopped {
		t.Fatalf("expected stopped, got %s", e.State())
	}
	if st := e.Stats(); st.Stops != 1 {
		t.Fatalf("expected one transition, got %d", st.Stops)
	}
	if n := countEvents(pub, EventEntityStopped); n != 1 {
		t.Fatalf("expected a single entity_stopped event, got %d", n)
	}
	if o.Status().StoppedSeen != 1 {
		t.Fatalf("expected OnStopped once, got %d", o.Status().StoppedSeen)
	}
}

func TestSharedObserver_OrderPerEntity(t *testing.T) {
	q := sharedQueue(t, "owner-order")
	pub := NewMemoryPublisher()
	o := NewWithConfig(OwnerConfig{ID: "garage", EntityID: "a", Queue: q, Publisher: pub})
	defer o.Close()
	a := o.Entity()
	b := lifecycle.NewEntity("b", q)
	b.SetObserver(lifecycle.Weak(o))

	a.Start()
	a.Stop()
	b.Start()
	b.Stop()
	a.Start()
	<-a.Stop()

	var got []string
	for _, e := range pub.Events() {
		if e.Name == EventEntityStopped {
			got = append(got, e.EntityID)
		}
	}
	if !equalStrings(got, []string{"a", "b", "a"}) {
		t.Fatalf("expected stop notifications in submission order, got %v", got)
	}
}

func TestSetEventPublisherNilResetsNoop(t *testing.T) {
	pub := NewMemoryPublisher()
	o := NewWithConfig(OwnerConfig{ID: "garage", Publisher: pub})
	defer o.Close()
	o.SetEventPublisher(nil)
	o.Prepare()
	if n := len(pub.Events()); n != 0 {
		t.Fatalf("expected detached publisher to receive nothing, got %v", pub.Names())
	}
	if o.Status().StartedSeen != 1 {
		t.Fatalf("expected Prepare to still start the entity")
	}
}

func TestLazyEntity_CreatedOnFirstUse(t *testing.T) {
	o := NewWithConfig(OwnerConfig{ID: "lazy", LazyEntity: true})
	defer o.Close()
	if st := o.Status(); st.Entity != nil || st.Queue != nil {
		t.Fatalf("expected no entity or queue before first use, got %+v", st)
	}
	o.Prepare()
	st := o.Status()
	if st.Entity == nil || st.Entity.State != string(lifecycle.StateRunning) {
		t.Fatalf("expected running entity after Prepare, got %+v", st.Entity)
	}
	if !st.Lazy {
		t.Fatalf("expected lazy flag in status")
	}
}

func TestCallbacksIgnoredWhenDead(t *testing.T) {
	var stopped atomic.Int64
	o := NewWithConfig(OwnerConfig{Hooks: Hooks{Stopped: func(string) { stopped.Add(1) }}})
	if err := o.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	o.OnStarted("x")
	o.OnStopped("x")
	if stopped.Load() != 0 {
		t.Fatalf("hook ran on a dead owner")
	}
	if st := o.Status(); st.StartedSeen != 0 || st.StoppedSeen != 0 || st.Alive {
		t.Fatalf("unexpected status after close: %+v", st)
	}
}
