package attendance

import (
	"time"

	"github.com/guardsystem/guardpost-backend-go/internal/domain/post"
	"github.com/guardsystem/guardpost-backend-go/internal/pkg/validator"
)

// AttemptRequest is a single attempted physical action at a post.
type AttemptRequest struct {
	EmployeeID string     `json:"-"`
	Action     ActionType `json:"action"`
	PostID     string     `json:"post_id"`
	Location   Location   `json:"location"`
	Photos     []string   `json:"photos,omitempty"`
}

func (r AttemptRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if !validator.IsInSlice(string(r.Action), ActionTypeValues) {
		errs = append(errs, validator.ValidationError{Field: "action", Message: "action must be CHECK_IN, RONDA or CHECK_OUT"})
	}
	if validator.IsEmpty(r.PostID) {
		errs = append(errs, validator.ValidationError{Field: "post_id", Message: "post_id is required"})
	}
	if !validator.IsValidLatitude(r.Location.Latitude) {
		errs = append(errs, validator.ValidationError{Field: "location.latitude", Message: "latitude must be between -90 and 90"})
	}
	if !validator.IsValidLongitude(r.Location.Longitude) {
		errs = append(errs, validator.ValidationError{Field: "location.longitude", Message: "longitude must be between -180 and 180"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ManualSubstitutionRequest registers a substitute for an absent slot
// from the admin side. The resulting record carries the post's own
// coordinates and server time.
type ManualSubstitutionRequest struct {
	PostID                string `json:"post_id"`
	Date                  string `json:"date"`
	Window                string `json:"window"`
	SubstituteEmployeeID  string `json:"substitute_employee_id"`
	SubstitutedEmployeeID string `json:"substituted_employee_id"`
}

func (r ManualSubstitutionRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.PostID) {
		errs = append(errs, validator.ValidationError{Field: "post_id", Message: "post_id is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD form"})
	}
	if !validator.IsInSlice(r.Window, post.ShiftWindowValues) {
		errs = append(errs, validator.ValidationError{Field: "window", Message: "window must be MORNING, AFTERNOON or NIGHT"})
	}
	if validator.IsEmpty(r.SubstituteEmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "substitute_employee_id", Message: "substitute_employee_id is required"})
	}
	if validator.IsEmpty(r.SubstitutedEmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "substituted_employee_id", Message: "substituted_employee_id is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID                    string   `json:"id"`
	Timestamp             string   `json:"timestamp"`
	EmployeeID            string   `json:"employee_id"`
	PostID                string   `json:"post_id"`
	Latitude              float64  `json:"latitude"`
	Longitude             float64  `json:"longitude"`
	Altitude              *float64 `json:"altitude,omitempty"`
	Type                  string   `json:"type"`
	Status                string   `json:"status"`
	SubstitutedEmployeeID *string  `json:"substituted_employee_id,omitempty"`
	PhotoCount            int      `json:"photo_count"`
}

func ToRecordResponse(rec AttendanceRecord) RecordResponse {
	return RecordResponse{
		ID:                    rec.ID,
		Timestamp:             rec.Timestamp.UTC().Format(time.RFC3339),
		EmployeeID:            rec.EmployeeID,
		PostID:                rec.PostID,
		Latitude:              rec.Latitude,
		Longitude:             rec.Longitude,
		Altitude:              rec.Altitude,
		Type:                  string(rec.Type),
		Status:                string(rec.Status),
		SubstitutedEmployeeID: rec.SubstitutedEmployeeID,
		PhotoCount:            len(rec.Photos),
	}
}

type SlotStatusResponse struct {
	Status           string  `json:"status"`
	Window           string  `json:"window"`
	EmployeeID       string  `json:"employee_id"`
	EmployeeName     string  `json:"employee_name"`
	SubstitutedName  string  `json:"substituted_name,omitempty"`
	CheckIn          *string `json:"check_in,omitempty"`
	CheckOut         *string `json:"check_out,omitempty"`
}

func ToSlotStatusResponse(s SlotStatus) SlotStatusResponse {
	fmtTime := func(t *time.Time) *string {
		if t == nil {
			return nil
		}
		v := t.UTC().Format(time.RFC3339)
		return &v
	}
	return SlotStatusResponse{
		Status:          string(s.Kind),
		Window:          string(s.Window),
		EmployeeID:      s.EmployeeID,
		EmployeeName:    s.EmployeeName,
		SubstitutedName: s.SubstitutedName,
		CheckIn:         fmtTime(s.CheckIn),
		CheckOut:        fmtTime(s.CheckOut),
	}
}
