// Package owner provides the Owner: the exclusive owner of one Entity that is
// also that Entity's observer. It is structured into small files by concern:
//
//   - owner.go: Owner type, constructors, Prepare, observer callbacks.
//   - config.go: OwnerConfig and package defaults; NewWithConfig applies defaults.
//   - teardown.go: Close and the GC backstop installed with runtime.AddCleanup.
//   - events.go, eventpub_memory.go: lifecycle events and an in-memory publisher.
//   - status.go: Status reporting.
//   - slot.go: Slot, a process-scoped holder with explicit install/release.
//   - errors.go: error types and helpers (IsSlotOccupied).
//
// The Entity only ever sees the Owner through lifecycle.Weak, so a pending
// stop notification never keeps an Owner alive. After Close the Owner reports
// itself dead and late notifications are dropped.
package owner
