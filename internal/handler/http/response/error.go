package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/guardsystem/guardpost-backend-go/internal/domain/attendance"
	"github.com/guardsystem/guardpost-backend-go/internal/domain/auth"
	"github.com/guardsystem/guardpost-backend-go/internal/domain/employee"
	"github.com/guardsystem/guardpost-backend-go/internal/domain/post"
	"github.com/guardsystem/guardpost-backend-go/internal/domain/roster"
	"github.com/guardsystem/guardpost-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Geofence violations carry the measured distance as a detail so the
	// client can show how far off the device is.
	var outOfRange *attendance.OutOfRangeError
	if errors.As(err, &outOfRange) {
		BadRequest(w, "Outside the allowed radius for this post", map[string]string{
			"distance_meters": fmt.Sprintf("%.0f", outOfRange.DistanceMeters),
			"radius_meters":   fmt.Sprintf("%d", outOfRange.RadiusMeters),
		})
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid credentials")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee has been deactivated")
	case errors.Is(err, employee.ErrNameExists):
		Conflict(w, "An employee with this name already exists")

	// Post domain errors
	case errors.Is(err, post.ErrPostNotFound):
		NotFound(w, "Post not found")
	case errors.Is(err, post.ErrCodeExists):
		Conflict(w, "A post with this code already exists")
	case errors.Is(err, post.ErrTooManyWindows):
		BadRequest(w, "A post supports at most three shift windows", nil)
	case errors.Is(err, post.ErrNoWindows):
		BadRequest(w, "A post requires at least one shift window", nil)

	// Roster domain errors
	case errors.Is(err, roster.ErrPlannedShiftNotFound):
		NotFound(w, "Planned shift not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrUnknownPost):
		NotFound(w, "Post not recognized")
	case errors.Is(err, attendance.ErrWrongPost):
		Conflict(w, "Action must happen at the post of the active shift")
	case errors.Is(err, attendance.ErrUnauthorizedEmployee):
		Forbidden(w, "Employee is not assigned to this post")
	case errors.Is(err, attendance.ErrMissingEvidence):
		BadRequest(w, "A ronda requires at least one photo", nil)
	case errors.Is(err, attendance.ErrNoActiveShift):
		Conflict(w, "No active shift to act on")
	case errors.Is(err, attendance.ErrShiftAlreadyActive):
		Conflict(w, "An active shift is already open")
	case errors.Is(err, attendance.ErrGPSUnavailable):
		BadRequest(w, "Could not acquire a GPS reading", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
