package roster

import (
	"github.com/guardsystem/guardpost-backend-go/internal/domain/post"
	"github.com/guardsystem/guardpost-backend-go/internal/pkg/validator"
)

type CreatePlannedShiftRequest struct {
	PostID     string `json:"post_id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Window     string `json:"window"`
}

func (r CreatePlannedShiftRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.PostID) {
		errs = append(errs, validator.ValidationError{Field: "post_id", Message: "post_id is required"})
	}
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD form"})
	}
	if !validator.IsInSlice(r.Window, post.ShiftWindowValues) {
		errs = append(errs, validator.ValidationError{Field: "window", Message: "window must be MORNING, AFTERNOON or NIGHT"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PlannedShiftResponse struct {
	ID         string `json:"id"`
	PostID     string `json:"post_id"`
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Window     string `json:"window"`
}

func ToResponse(s PlannedShift) PlannedShiftResponse {
	return PlannedShiftResponse{
		ID:         s.ID,
		PostID:     s.PostID,
		EmployeeID: s.EmployeeID,
		Date:       s.Date,
		Window:     string(s.Window),
	}
}
