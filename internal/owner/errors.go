package owner

// slotOccupiedError signals Install on a Slot that already holds an Owner.
type slotOccupiedError struct{ id string }

func (e slotOccupiedError) Error() string { return "slot occupied by owner: " + e.id }

// IsSlotOccupied reports whether err indicates an occupied Slot.
func IsSlotOccupied(err error) bool {
	_, ok := err.(slotOccupiedError)
	return ok
}
