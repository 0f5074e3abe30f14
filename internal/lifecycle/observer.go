package lifecycle

import "weak"

// Observer receives lifecycle notifications from an Entity.
// Implementations must not call back into the Entity that notified them.
type Observer interface {
	OnStarted(entityID string)
	OnStopped(entityID string)
}

// Liveness is implemented by observers that can be torn down explicitly
// while still reachable. A Ref treats a target reporting false as gone.
type Liveness interface {
	Alive() bool
}

// Ref is a back-reference to an Observer. Holding a Ref never keeps the
// observer alive; Resolve reports false once it is gone.
type Ref interface {
	Resolve() (Observer, bool)
}

// weakRef resolves through a weak pointer so the GC may reclaim the target.
type weakRef[T any] struct {
	p weak.Pointer[T]
}

// Weak returns a Ref to p that does not keep p reachable.
func Weak[T any, PT interface {
	*T
	Observer
}](p PT) Ref {
	return weakRef[T]{p: weak.Make((*T)(p))}
}

func (r weakRef[T]) Resolve() (Observer, bool) {
	t := r.p.Value()
	if t == nil {
		return nil, false
	}
	o := any(t).(Observer)
	if l, ok := o.(Liveness); ok && !l.Alive() {
		return nil, false
	}
	return o, true
}
