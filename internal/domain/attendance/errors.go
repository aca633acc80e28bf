package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	ErrUnknownPost          = errors.New("post not recognized")
	ErrWrongPost            = errors.New("action must happen at the post of the active shift")
	ErrUnauthorizedEmployee = errors.New("employee is not assigned to this post")
	ErrMissingEvidence      = errors.New("a ronda requires at least one photo")
	ErrNoActiveShift        = errors.New("no active shift to act on")
	ErrShiftAlreadyActive   = errors.New("an active shift is already open")
	ErrGPSUnavailable       = errors.New("could not acquire a GPS reading")
)

// OutOfRangeError reports a geofence violation. It carries the measured
// distance so the operator can see how far off they are.
type OutOfRangeError struct {
	DistanceMeters float64
	RadiusMeters   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("outside the allowed radius: %.0fm from post (limit %dm)", e.DistanceMeters, e.RadiusMeters)
}
