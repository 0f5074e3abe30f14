package types

// EntityStatus summarizes an owned entity.
type EntityStatus struct {
	// Identifier passed to observer callbacks.
	// example: car
	ID string `json:"id" example:"car"`
	// Current state: stopped or running.
	// example: running
	State string `json:"state" example:"running"`
	// Number of Stopped->Running transitions.
	Starts int64 `json:"starts"`
	// Number of Running->Stopped transitions.
	Stops int64 `json:"stops"`
	// Notifications that reached a live observer.
	Delivered int64 `json:"delivered"`
	// Notifications skipped because the observer was gone.
	Dropped int64 `json:"dropped"`
}

// QueueStatus summarizes the queue that carries stop notifications.
type QueueStatus struct {
	Name     string `json:"name"`
	Pending  int    `json:"pending"`
	Executed int64  `json:"executed"`
	Panicked int64  `json:"panicked"`
	Rejected int64  `json:"rejected"`
	Closed   bool   `json:"closed"`
}

// OwnerStatus is the read-only view of an owner and what it owns.
type OwnerStatus struct {
	// example: garage
	ID    string `json:"id" example:"garage"`
	Alive bool   `json:"alive"`
	Lazy  bool   `json:"lazy,omitempty"`
	// Nil until a lazily configured owner creates its entity.
	Entity *EntityStatus `json:"entity,omitempty"`
	Queue  *QueueStatus  `json:"queue,omitempty"`
	// Notifications the owner acted on.
	StartedSeen int64 `json:"started_seen"`
	StoppedSeen int64 `json:"stopped_seen"`
}
