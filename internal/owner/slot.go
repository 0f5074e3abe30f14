package owner

import "sync"

// Slot holds at most one Owner for the lifetime of a process. Teardown is
// triggered explicitly by Release rather than left to the garbage collector.
type Slot struct {
	mu  sync.Mutex
	cur *Owner
}

// Default is the process-wide slot used by the CLI.
var Default = &Slot{}

// Install places o in the slot. It fails if the slot is occupied.
func (s *Slot) Install(o *Owner) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur != nil {
		return slotOccupiedError{id: s.cur.ID()}
	}
	s.cur = o
	return nil
}

// Current returns the installed Owner, if any.
func (s *Slot) Current() (*Owner, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur, s.cur != nil
}

// Release drops the slot's reference and closes the Owner it held.
// Releasing an empty slot is a no-op.
func (s *Slot) Release() error {
	s.mu.Lock()
	o := s.cur
	s.cur = nil
	s.mu.Unlock()
	if o == nil {
		return nil
	}
	return o.Close()
}
