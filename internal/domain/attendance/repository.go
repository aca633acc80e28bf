package attendance

import "context"

// AttendanceRepository is the append-only attendance ledger. Records are
// inserted unconditionally and never mutated or removed. Queries resolve
// "latest" and "later" by timestamp comparison, not insertion order,
// because timestamps may be backfilled (manual substitutions use server
// time, not device time).
type AttendanceRepository interface {
	// Append inserts a record and returns it. The single side effect of a
	// successful validated action.
	Append(ctx context.Context, rec AttendanceRecord) (AttendanceRecord, error)

	// FindForPostOnDate returns every record at a post whose timestamp
	// falls on the given calendar date. The date boundary is computed in
	// the application timezone configured at startup.
	FindForPostOnDate(ctx context.Context, postID, date string) ([]AttendanceRecord, error)

	// FindActiveShift returns the latest CHECK_IN by the employee for
	// which no later CHECK_OUT at the same post exists, or nil.
	FindActiveShift(ctx context.Context, employeeID string) (*AttendanceRecord, error)

	// ListByEmployee returns the employee's records, newest first.
	ListByEmployee(ctx context.Context, employeeID string, limit int) ([]AttendanceRecord, error)
}
