package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/jwtauth/v5"

	"github.com/guardsystem/guardpost-backend-go/internal/domain/attendance"
	"github.com/guardsystem/guardpost-backend-go/internal/domain/auth"
	"github.com/guardsystem/guardpost-backend-go/internal/handler/http/response"
	"github.com/guardsystem/guardpost-backend-go/internal/pkg/validator"
)

type AttendanceHandler interface {
	Attempt(w http.ResponseWriter, r *http.Request)
	Validate(w http.ResponseWriter, r *http.Request)
	ActiveShift(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Coverage(w http.ResponseWriter, r *http.Request)
	RegisterSubstitution(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// employeeIDFromToken reads the caller's identity from the access token.
// An action always belongs to the logged-in guard, never to a body field.
func employeeIDFromToken(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", auth.ErrInvalidToken
	}
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", auth.ErrInvalidToken
	}
	return employeeID, nil
}

// Attempt implements AttendanceHandler - validate and record one action
func (h *attendanceHandlerImpl) Attempt(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromToken(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.AttemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	rec, err := h.attendanceService.Attempt(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Action recorded", attendance.ToRecordResponse(rec))
}

// Validate implements AttendanceHandler - dry-run the checks without
// recording anything, used before evidence capture on a patrol
func (h *attendanceHandlerImpl) Validate(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromToken(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.AttemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = employeeID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.attendanceService.Validate(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Action allowed", nil)
}

// ActiveShift implements AttendanceHandler
func (h *attendanceHandlerImpl) ActiveShift(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromToken(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	rec, err := h.attendanceService.ActiveShift(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if rec == nil {
		response.Success(w, nil)
		return
	}

	resp := attendance.ToRecordResponse(*rec)
	response.Success(w, resp)
}

// History implements AttendanceHandler
func (h *attendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromToken(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsedLimit, err := strconv.Atoi(l); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	records, err := h.attendanceService.History(r.Context(), employeeID, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		results = append(results, attendance.ToRecordResponse(rec))
	}
	response.Success(w, results)
}

// Coverage implements AttendanceHandler - per-slot status for one post
// and day, admin view
func (h *attendanceHandlerImpl) Coverage(w http.ResponseWriter, r *http.Request) {
	postID := r.URL.Query().Get("post_id")
	date := r.URL.Query().Get("date")
	if postID == "" {
		response.BadRequest(w, "post_id is required", nil)
		return
	}
	if _, ok := validator.IsValidDate(date); !ok {
		response.BadRequest(w, "date must be in YYYY-MM-DD form", nil)
		return
	}

	statuses, err := h.attendanceService.Classify(r.Context(), postID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	results := make([]attendance.SlotStatusResponse, 0, len(statuses))
	for _, s := range statuses {
		results = append(results, attendance.ToSlotStatusResponse(s))
	}
	response.Success(w, results)
}

// RegisterSubstitution implements AttendanceHandler
func (h *attendanceHandlerImpl) RegisterSubstitution(w http.ResponseWriter, r *http.Request) {
	var req attendance.ManualSubstitutionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	rec, err := h.attendanceService.RegisterSubstitution(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Substitution registered", attendance.ToRecordResponse(rec))
}
