package dispatch

import "errors"

// ErrClosed is returned when submitting to a queue after Close.
var ErrClosed = errors.New("dispatch: queue closed")

// IsClosed reports whether err indicates a closed queue.
func IsClosed(err error) bool { return errors.Is(err, ErrClosed) }

// busyError signals that the buffer stayed full for the whole MaxWait.
type busyError struct{ queue string }

func (e busyError) Error() string { return "dispatch: queue busy: " + e.queue }

// IsBusy reports whether err indicates backpressure on a full queue.
func IsBusy(err error) bool {
	var be busyError
	return errors.As(err, &be)
}
