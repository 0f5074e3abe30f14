package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"lifeline/internal/owner"
	"lifeline/pkg/types"
)

// newOwner builds an Owner from env with hooks that report to env.out.
func newOwner(e env, pub owner.EventPublisher) *owner.Owner {
	oc := e.cfg.OwnerConfig()
	oc.Logger = &e.log
	oc.Publisher = pub
	out := e.out
	oc.Hooks = owner.Hooks{
		Started: func(id string) { fmt.Fprintf(out, "hook: %s started, lights on\n", id) },
		Stopped: func(id string) { fmt.Fprintf(out, "hook: %s stopped, door closed and lights off\n", id) },
	}
	return owner.NewWithConfig(oc)
}

// runDemo installs an owner in the default slot, prepares it, releases the
// slot and reports the entity afterwards through a handle that does not keep
// the owner alive.
func runDemo(e env) error {
	pub := owner.NewMemoryPublisher()
	o := newOwner(e, pub)
	if err := owner.Default.Install(o); err != nil {
		return err
	}
	o.Prepare()
	ent := o.Entity()
	printStatus(e.out, o.Status())

	if err := owner.Default.Release(); err != nil {
		return fmt.Errorf("release: %w", err)
	}
	st := ent.Stats()
	fmt.Fprintf(e.out, "after release: entity=%s state=%s stops=%d delivered=%d dropped=%d\n",
		st.ID, st.State, st.Stops, st.Delivered, st.Dropped)
	for _, ev := range pub.Events() {
		fmt.Fprintf(e.out, "event=%s owner=%s entity=%s\n", ev.Name, ev.OwnerID, ev.EntityID)
	}
	return nil
}

// runStopTwice stops a running entity twice in immediate succession.
func runStopTwice(e env) error {
	pub := owner.NewMemoryPublisher()
	o := newOwner(e, pub)
	defer o.Close()
	o.Prepare()
	ent := o.Entity()
	first, second := ent.Stop(), ent.Stop()
	timeout := time.Duration(e.cfg.DrainTimeoutMS) * time.Millisecond
	for _, done := range []<-chan struct{}{first, second} {
		select {
		case <-done:
		case <-time.After(timeout):
			return fmt.Errorf("stop notification not delivered within %v", timeout)
		}
	}
	st := ent.Stats()
	fmt.Fprintf(e.out, "entity=%s state=%s stops=%d stop_notifications=%d\n",
		st.ID, st.State, st.Stops, o.Status().StoppedSeen)
	return nil
}

// runStatus prints the status of a freshly built owner and tears it down.
func runStatus(e env, prepare, asJSON bool) error {
	o := newOwner(e, nil)
	defer o.Close()
	if prepare {
		o.Prepare()
	}
	st := o.Status()
	if asJSON {
		b, err := json.MarshalIndent(st, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(e.out, string(b))
		return nil
	}
	printStatus(e.out, st)
	return nil
}

func printStatus(w io.Writer, st types.OwnerStatus) {
	fmt.Fprintf(w, "owner=%s alive=%t lazy=%t started_seen=%d stopped_seen=%d\n",
		st.ID, st.Alive, st.Lazy, st.StartedSeen, st.StoppedSeen)
	if st.Entity != nil {
		fmt.Fprintf(w, "  entity=%s state=%s starts=%d stops=%d delivered=%d dropped=%d\n",
			st.Entity.ID, st.Entity.State, st.Entity.Starts, st.Entity.Stops, st.Entity.Delivered, st.Entity.Dropped)
	}
	if st.Queue != nil {
		fmt.Fprintf(w, "  queue=%s pending=%d executed=%d rejected=%d closed=%t\n",
			st.Queue.Name, st.Queue.Pending, st.Queue.Executed, st.Queue.Rejected, st.Queue.Closed)
	}
}
