package attendance

import "context"

// AttendanceService validates attempted actions against the geofence and
// the roster, and derives per-slot coverage for any (post, date) pair.
type AttendanceService interface {
	// Attempt validates a single action end to end and, on success,
	// appends exactly one record to the ledger. Failures append nothing.
	Attempt(ctx context.Context, req AttemptRequest) (AttendanceRecord, error)

	// Validate runs every Attempt check except the evidence requirement
	// and does not append. The patrol workflow uses it to confirm
	// geofence and authorization before opening evidence capture.
	Validate(ctx context.Context, req AttemptRequest) error

	// Classify joins the roster with the ledger and returns one status
	// per planned slot at (post, date), in roster order. Multiple
	// substitutes for the same absent slot each surface as their own
	// entry.
	Classify(ctx context.Context, postID, date string) ([]SlotStatus, error)

	// RegisterSubstitution appends an admin-entered substitution
	// check-in with the post's coordinates and server time.
	RegisterSubstitution(ctx context.Context, req ManualSubstitutionRequest) (AttendanceRecord, error)

	// ActiveShift returns the employee's open check-in, or nil.
	ActiveShift(ctx context.Context, employeeID string) (*AttendanceRecord, error)

	// History returns the employee's records, newest first.
	History(ctx context.Context, employeeID string, limit int) ([]AttendanceRecord, error)
}
