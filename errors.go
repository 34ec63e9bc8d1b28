package micromap

import (
	"errors"
	"fmt"
)

// ErrCapacityExceeded is matched (via errors.Is) by every capacity violation,
// whether it is raised as a panic by Store/Swap/Add or returned by
// TryStore/TryAdd and the decoders.
var ErrCapacityExceeded = errors.New("micromap: capacity exceeded")

// CapacityError reports an attempt to add a new distinct key to a map
// whose occupied count already equals its capacity.
type CapacityError struct {
	Capacity int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("micromap: there are only %d pairs available in the map and all of them are already occupied",
		e.Capacity)
}

// Is reports whether target is ErrCapacityExceeded.
func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacityExceeded
}

const (
	errNegativeCapacity = "micromap: negative capacity"
	errMissingKey       = "micromap: no entry found for key"
	errModifiedInRange  = "micromap: map modified during iteration"
	errStaleCursor      = "micromap: stale cursor, map modified since Entry"
)
