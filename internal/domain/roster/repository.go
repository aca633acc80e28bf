package roster

import (
	"context"

	"github.com/guardsystem/guardpost-backend-go/internal/domain/post"
)

// RosterRepository defines data access methods for planned shifts.
// List results are returned in creation order so that downstream
// classification is deterministic.
type RosterRepository interface {
	Create(ctx context.Context, shift PlannedShift) (PlannedShift, error)

	Delete(ctx context.Context, id string) error

	// ListByPostAndDate returns every planned shift at a post on a date,
	// in creation order.
	ListByPostAndDate(ctx context.Context, postID, date string) ([]PlannedShift, error)

	// ListPlannedFor returns planned shifts for one (post, date, window)
	// slot, in creation order. The first entry is the slot's planned
	// employee for substitution attribution.
	ListPlannedFor(ctx context.Context, postID, date string, window post.ShiftWindowID) ([]PlannedShift, error)

	ListByEmployee(ctx context.Context, employeeID string, fromDate string) ([]PlannedShift, error)

	// DeleteByPost removes all roster entries for a post. Used when a
	// post is deleted.
	DeleteByPost(ctx context.Context, postID string) error
}
