package roster

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/guardsystem/guardpost-backend-go/internal/domain/employee"
	"github.com/guardsystem/guardpost-backend-go/internal/domain/post"
	"github.com/guardsystem/guardpost-backend-go/internal/domain/roster"
)

type RosterServiceImpl struct {
	roster.RosterRepository
	post.PostRepository
	employee.EmployeeRepository
}

func NewRosterService(plans roster.RosterRepository, posts post.PostRepository, employees employee.EmployeeRepository) *RosterServiceImpl {
	return &RosterServiceImpl{
		RosterRepository:   plans,
		PostRepository:     posts,
		EmployeeRepository: employees,
	}
}

// Create implements roster.RosterService.
func (s *RosterServiceImpl) Create(ctx context.Context, req roster.CreatePlannedShiftRequest) (roster.PlannedShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return roster.PlannedShiftResponse{}, err
	}
	if _, err := s.PostRepository.GetByID(ctx, req.PostID); err != nil {
		return roster.PlannedShiftResponse{}, err
	}
	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return roster.PlannedShiftResponse{}, err
	}

	created, err := s.RosterRepository.Create(ctx, roster.PlannedShift{
		ID:         uuid.NewString(),
		PostID:     req.PostID,
		EmployeeID: req.EmployeeID,
		Date:       req.Date,
		Window:     post.ShiftWindowID(req.Window),
	})
	if err != nil {
		return roster.PlannedShiftResponse{}, fmt.Errorf("failed to create planned shift: %w", err)
	}
	return roster.ToResponse(created), nil
}

// Delete implements roster.RosterService.
func (s *RosterServiceImpl) Delete(ctx context.Context, id string) error {
	return s.RosterRepository.Delete(ctx, id)
}

// ListByEmployee implements roster.RosterService.
func (s *RosterServiceImpl) ListByEmployee(ctx context.Context, employeeID, fromDate string) ([]roster.PlannedShiftResponse, error) {
	shifts, err := s.RosterRepository.ListByEmployee(ctx, employeeID, fromDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list planned shifts: %w", err)
	}
	out := make([]roster.PlannedShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		out = append(out, roster.ToResponse(sh))
	}
	return out, nil
}

// ListByPostAndDate implements roster.RosterService.
func (s *RosterServiceImpl) ListByPostAndDate(ctx context.Context, postID, date string) ([]roster.PlannedShiftResponse, error) {
	shifts, err := s.RosterRepository.ListByPostAndDate(ctx, postID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list planned shifts: %w", err)
	}
	out := make([]roster.PlannedShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		out = append(out, roster.ToResponse(sh))
	}
	return out, nil
}
