package dispatch

import "sync"

var (
	mainOnce  sync.Once
	mainQueue *Queue
)

// Main returns the process-wide queue used when a component is not given one.
// It is created on first use and never closed.
func Main() *Queue {
	mainOnce.Do(func() {
		mainQueue = New(Config{Name: "main"})
	})
	return mainQueue
}
