package roster

import "errors"

// Roster domain errors
var (
	ErrPlannedShiftNotFound = errors.New("planned shift not found")
)
