package post

import (
	"github.com/guardsystem/guardpost-backend-go/internal/pkg/validator"
)

type ShiftWindowRequest struct {
	ID     string `json:"id"`
	Active bool   `json:"active"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

type CreatePostRequest struct {
	Name               string               `json:"name"`
	Latitude           float64              `json:"latitude"`
	Longitude          float64              `json:"longitude"`
	Altitude           float64              `json:"altitude"`
	RadiusMeters       int                  `json:"radius_meters"`
	MinIntervalMinutes int                  `json:"min_interval_minutes"`
	AllowedEmployeeIDs []string             `json:"allowed_employee_ids"`
	Windows            []ShiftWindowRequest `json:"windows"`
}

func (r CreatePostRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude must be between -90 and 90"})
	}
	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "longitude must be between -180 and 180"})
	}
	if r.RadiusMeters <= 0 {
		errs = append(errs, validator.ValidationError{Field: "radius_meters", Message: "radius must be a positive number of meters"})
	}
	if r.MinIntervalMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "min_interval_minutes", Message: "patrol interval cannot be negative"})
	}
	if len(r.Windows) == 0 {
		errs = append(errs, validator.ValidationError{Field: "windows", Message: "at least one shift window is required"})
	}
	if len(r.Windows) > 3 {
		errs = append(errs, validator.ValidationError{Field: "windows", Message: "at most three shift windows are supported"})
	}
	for _, w := range r.Windows {
		if !validator.IsInSlice(w.ID, ShiftWindowValues) {
			errs = append(errs, validator.ValidationError{Field: "windows", Message: "window id must be MORNING, AFTERNOON or NIGHT"})
			continue
		}
		if !validator.IsValidClockTime(w.Start) || !validator.IsValidClockTime(w.End) {
			errs = append(errs, validator.ValidationError{Field: "windows", Message: "window times must be in HH:MM form"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePostRequest struct {
	ID string `json:"-"`
	CreatePostRequest
}

func (r UpdatePostRequest) Validate() error {
	if validator.IsEmpty(r.ID) {
		return validator.ValidationErrors{{Field: "id", Message: "id is required"}}
	}
	return r.CreatePostRequest.Validate()
}

type ShiftWindowResponse struct {
	ID     string `json:"id"`
	Active bool   `json:"active"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

type PostResponse struct {
	ID                 string                `json:"id"`
	Name               string                `json:"name"`
	Code               string                `json:"code"`
	Latitude           float64               `json:"latitude"`
	Longitude          float64               `json:"longitude"`
	Altitude           float64               `json:"altitude"`
	RadiusMeters       int                   `json:"radius_meters"`
	MinIntervalMinutes int                   `json:"min_interval_minutes"`
	QRURL              string                `json:"qr_url"`
	AllowedEmployeeIDs []string              `json:"allowed_employee_ids"`
	Windows            []ShiftWindowResponse `json:"windows"`
}

func ToResponse(p Post) PostResponse {
	windows := make([]ShiftWindowResponse, 0, len(p.Windows))
	for _, w := range p.Windows {
		windows = append(windows, ShiftWindowResponse{
			ID:     string(w.ID),
			Active: w.Active,
			Start:  w.Start,
			End:    w.End,
		})
	}
	return PostResponse{
		ID:                 p.ID,
		Name:               p.Name,
		Code:               p.Code,
		Latitude:           p.Latitude,
		Longitude:          p.Longitude,
		Altitude:           p.Altitude,
		RadiusMeters:       p.RadiusMeters,
		MinIntervalMinutes: p.MinIntervalMinutes,
		QRURL:              p.QRURL,
		AllowedEmployeeIDs: p.AllowedEmployeeIDs,
		Windows:            windows,
	}
}
