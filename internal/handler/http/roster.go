package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/guardsystem/guardpost-backend-go/internal/domain/roster"
	"github.com/guardsystem/guardpost-backend-go/internal/handler/http/response"
	"github.com/guardsystem/guardpost-backend-go/internal/pkg/validator"
)

type RosterHandler interface {
	CreatePlannedShift(w http.ResponseWriter, r *http.Request)
	DeletePlannedShift(w http.ResponseWriter, r *http.Request)
	ListPlannedShifts(w http.ResponseWriter, r *http.Request)
	MyPlannedShifts(w http.ResponseWriter, r *http.Request)
}

type rosterHandlerImpl struct {
	rosterService roster.RosterService
}

func NewRosterHandler(rosterService roster.RosterService) RosterHandler {
	return &rosterHandlerImpl{rosterService: rosterService}
}

// CreatePlannedShift implements RosterHandler
func (h *rosterHandlerImpl) CreatePlannedShift(w http.ResponseWriter, r *http.Request) {
	var req roster.CreatePlannedShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.rosterService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Planned shift created", result)
}

// DeletePlannedShift implements RosterHandler
func (h *rosterHandlerImpl) DeletePlannedShift(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Planned shift ID is required", nil)
		return
	}

	if err := h.rosterService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Planned shift deleted", nil)
}

// ListPlannedShifts implements RosterHandler - roster for one post and day
func (h *rosterHandlerImpl) ListPlannedShifts(w http.ResponseWriter, r *http.Request) {
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

	results, err := h.rosterService.ListByPostAndDate(r.Context(), postID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// MyPlannedShifts implements RosterHandler - the logged-in guard's own
// upcoming schedule
func (h *rosterHandlerImpl) MyPlannedShifts(w http.ResponseWriter, r *http.Request) {
	employeeID, err := employeeIDFromToken(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	from := r.URL.Query().Get("from")
	if from != "" {
		if _, ok := validator.IsValidDate(from); !ok {
			response.BadRequest(w, "from must be in YYYY-MM-DD form", nil)
			return
		}
	}

	results, err := h.rosterService.ListByEmployee(r.Context(), employeeID, from)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}
