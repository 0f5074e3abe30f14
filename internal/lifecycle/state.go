package lifecycle

// State is the running state of an Entity.
type State string

const (
	StateStopped State = "stopped"
	StateRunning State = "running"
)

func (s State) String() string { return string(s) }
