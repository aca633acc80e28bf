package roster

import (
	"time"

	"github.com/guardsystem/guardpost-backend-go/internal/domain/post"
)

// PlannedShift binds an employee to a post's shift window on a calendar
// date. The roster assumes at most one planned employee per
// (post, date, window); when that is violated, substitution attribution
// uses the earliest-created entry.
type PlannedShift struct {
	ID         string
	PostID     string
	EmployeeID string
	Date       string // YYYY-MM-DD in the application timezone
	Window     post.ShiftWindowID
	CreatedAt  time.Time
}
