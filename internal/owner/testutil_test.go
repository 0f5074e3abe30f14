package owner

import (
	"context"
	"runtime"
	"sync"
	"testing"
	"time"

	"lifeline/internal/dispatch"
)

// testCtx returns a context with a short timeout, canceled on test cleanup.
func testCtx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return c
}

// sharedQueue returns a queue owned by the test rather than by an Owner.
func sharedQueue(t *testing.T, name string) *dispatch.Queue {
	t.Helper()
	q := dispatch.New(dispatch.Config{Name: name})
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = q.Close(ctx)
	})
	return q
}

// blockQueue occupies the queue worker until the returned func is called.
func blockQueue(t *testing.T, q *dispatch.Queue) func() {
	t.Helper()
	release := make(chan struct{})
	started := make(chan struct{})
	if err := q.Submit(func() { close(started); <-release }); err != nil {
		t.Fatalf("submit blocker: %v", err)
	}
	<-started
	var once sync.Once
	f := func() { once.Do(func() { close(release) }) }
	t.Cleanup(f)
	return f
}

// waitFor polls cond, running the GC between attempts.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		runtime.GC()
		time.Sleep(5 * time.Millisecond)
	}
}

func countEvents(pub *MemoryPublisher, name string) int {
	n := 0
	for _, e := range pub.Events() {
		if e.Name == name {
			n++
		}
	}
	return n
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
