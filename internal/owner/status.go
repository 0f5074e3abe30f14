package owner

import (
	"lifeline/pkg/types"
)

// Status builds a read-only view of the Owner, its Entity and its queue.
// A lazy Owner reports no entity until one has been created.
func (o *Owner) Status() types.OwnerStatus {
	o.mu.RLock()
	e := o.entity
	q := o.queue
	o.mu.RUnlock()
	resp := types.OwnerStatus{
		ID:          o.id,
		Alive:       o.Alive(),
		Lazy:        o.lazy,
		StartedSeen: o.startedSeen.Load(),
		StoppedSeen: o.stoppedSeen.Load(),
	}
	if e != nil {
		st := e.Stats()
		resp.Entity = &types.EntityStatus{
			ID:        st.ID,
			State:     string(st.State),
			Starts:    st.Starts,
			Stops:     st.Stops,
			Delivered: st.Delivered,
			Dropped:   st.Dropped,
		}
	}
	if q != nil {
		qs := q.Stats()
		resp.Queue = &types.QueueStatus{
			Name:     qs.Name,
			Pending:  qs.Pending,
			Executed: qs.Executed,
			Panicked: qs.Panicked,
			Rejected: qs.Rejected,
			Closed:   qs.Closed,
		}
	}
	return resp
}
