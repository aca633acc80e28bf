package roster

import "context"

// RosterService defines business logic for planned-shift administration.
type RosterService interface {
	Create(ctx context.Context, req CreatePlannedShiftRequest) (PlannedShiftResponse, error)

	Delete(ctx context.Context, id string) error

	ListByPostAndDate(ctx context.Context, postID, date string) ([]PlannedShiftResponse, error)

	// ListByEmployee returns an employee's planned shifts from fromDate
	// onward. Guards use it to see their own upcoming schedule.
	ListByEmployee(ctx context.Context, employeeID, fromDate string) ([]PlannedShiftResponse, error)
}
