package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/guardsystem/guardpost-backend-go/internal/domain/attendance"
	"github.com/guardsystem/guardpost-backend-go/internal/domain/employee"
	"github.com/guardsystem/guardpost-backend-go/internal/domain/post"
	"github.com/guardsystem/guardpost-backend-go/internal/domain/roster"
	"github.com/guardsystem/guardpost-backend-go/internal/pkg/shiftclock"
	"github.com/guardsystem/guardpost-backend-go/internal/pkg/utils"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	post.PostRepository
	roster.RosterRepository
	employee.EmployeeRepository

	// Loc is the single application timezone used for calendar-date and
	// shift-window arithmetic. Timestamps themselves are stored in UTC.
	Loc *time.Location

	// Clock is replaceable in tests. Defaults to time.Now.
	Clock func() time.Time
}

func NewAttendanceService(
	ledger attendance.AttendanceRepository,
	posts post.PostRepository,
	plans roster.RosterRepository,
	employees employee.EmployeeRepository,
	loc *time.Location,
) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		AttendanceRepository: ledger,
		PostRepository:       posts,
		RosterRepository:     plans,
		EmployeeRepository:   employees,
		Loc:                  loc,
		Clock:                time.Now,
	}
}

// Attempt implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Attempt(ctx context.Context, req attendance.AttemptRequest) (attendance.AttendanceRecord, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceRecord{}, err
	}

	target, err := s.check(ctx, req)
	if err != nil {
		return attendance.AttendanceRecord{}, err
	}

	if req.Action == attendance.ActionRonda && len(req.Photos) == 0 {
		return attendance.AttendanceRecord{}, attendance.ErrMissingEvidence
	}

	now := s.Clock()
	rec := attendance.AttendanceRecord{
		ID:         uuid.NewString(),
		Timestamp:  now.UTC(),
		EmployeeID: req.EmployeeID,
		PostID:     target.ID,
		Latitude:   req.Location.Latitude,
		Longitude:  req.Location.Longitude,
		Altitude:   req.Location.Altitude,
		Type:       req.Action,
		Status:     attendance.StatusValid,
		Photos:     req.Photos,
	}

	if req.Action == attendance.ActionCheckIn {
		status, substituted, err := s.classifyCheckIn(ctx, target, req.EmployeeID, now.In(s.Loc))
		if err != nil {
			return attendance.AttendanceRecord{}, err
		}
		rec.Status = status
		rec.SubstitutedEmployeeID = substituted
	}

	created, err := s.AttendanceRepository.Append(ctx, rec)
	if err != nil {
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to append attendance record: %w", err)
	}
	return created, nil
}

// Validate implements attendance.AttendanceService. It runs the Attempt
// checks up to and including the geofence, without the evidence
// requirement and without appending anything.
func (s *AttendanceServiceImpl) Validate(ctx context.Context, req attendance.AttemptRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	_, err := s.check(ctx, req)
	return err
}

// check resolves the target post and enforces authorization, active-shift
// binding and the geofence. It is the shared all-or-nothing gate; no
// ledger write happens here.
func (s *AttendanceServiceImpl) check(ctx context.Context, req attendance.AttemptRequest) (post.Post, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return post.Post{}, err
	}
	if !emp.Active {
		return post.Post{}, employee.ErrEmployeeInactive
	}

	target, err := s.PostRepository.GetByID(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			return post.Post{}, attendance.ErrUnknownPost
		}
		return post.Post{}, err
	}

	if !target.Allows(emp.ID) {
		return post.Post{}, attendance.ErrUnauthorizedEmployee
	}

	active, err := s.AttendanceRepository.FindActiveShift(ctx, emp.ID)
	if err != nil {
		return post.Post{}, fmt.Errorf("failed to look up active shift: %w", err)
	}
	switch req.Action {
	case attendance.ActionCheckIn:
		if active != nil {
			return post.Post{}, attendance.ErrShiftAlreadyActive
		}
	case attendance.ActionRonda, attendance.ActionCheckOut:
		if active == nil {
			return post.Post{}, attendance.ErrNoActiveShift
		}
		if active.PostID != target.ID {
			return post.Post{}, attendance.ErrWrongPost
		}
	}

	distance := utils.CalculateHaversineDistance(
		req.Location.Latitude, req.Location.Longitude,
		target.Latitude, target.Longitude,
	)
	if distance > float64(target.RadiusMeters) {
		return post.Post{}, &attendance.OutOfRangeError{
			DistanceMeters: distance,
			RadiusMeters:   target.RadiusMeters,
		}
	}

	return target, nil
}

// classifyCheckIn decides the record status for a check-in. The slot is
// resolved from the post's shift windows at the local check-in time; an
// instant outside every active window yields MISMATCH and no substitution
// lookup.
func (s *AttendanceServiceImpl) classifyCheckIn(ctx context.Context, target post.Post, employeeID string, nowLocal time.Time) (attendance.RecordStatus, *string, error) {
	window, ok := shiftclock.Resolve(nowLocal, target)
	if !ok {
		return attendance.StatusMismatch, nil, nil
	}

	date := nowLocal.Format("2006-01-02")
	planned, err := s.RosterRepository.ListPlannedFor(ctx, target.ID, date, window)
	if err != nil {
		return "", nil, fmt.Errorf("failed to look up planned shifts: %w", err)
	}

	for _, p := range planned {
		if p.EmployeeID == employeeID {
			return attendance.StatusValid, nil, nil
		}
	}

	// Not on the roster for this slot. Attribute the substitution to the
	// earliest-created planned entry, if one exists; otherwise this is an
	// unplanned extra check-in.
	if len(planned) > 0 {
		substituted := planned[0].EmployeeID
		return attendance.StatusSubstitution, &substituted, nil
	}
	return attendance.StatusSubstitution, nil, nil
}

// Classify implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Classify(ctx context.Context, postID, date string) ([]attendance.SlotStatus, error) {
	planned, err := s.RosterRepository.ListByPostAndDate(ctx, postID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list planned shifts: %w", err)
	}
	records, err := s.AttendanceRepository.FindForPostOnDate(ctx, postID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}

	slots := make([]attendance.SlotStatus, 0, len(planned))
	for _, p := range planned {
		checkIn := findFirst(records, func(r attendance.AttendanceRecord) bool {
			return r.EmployeeID == p.EmployeeID && r.Type == attendance.ActionCheckIn
		})

		if checkIn != nil {
			checkOut := findFirst(records, func(r attendance.AttendanceRecord) bool {
				return r.EmployeeID == p.EmployeeID && r.Type == attendance.ActionCheckOut
			})
			slot := attendance.SlotStatus{
				Kind:         attendance.SlotAtivo,
				Window:       p.Window,
				EmployeeID:   p.EmployeeID,
				EmployeeName: s.employeeName(ctx, p.EmployeeID),
				CheckIn:      timePtr(checkIn.Timestamp),
			}
			if checkOut != nil {
				slot.CheckOut = timePtr(checkOut.Timestamp)
			}
			slots = append(slots, slot)
			continue
		}

		// No check-in by the planned employee: surface every substitute
		// covering this slot, or a FALTA if there is none.
		subs := findAll(records, func(r attendance.AttendanceRecord) bool {
			return r.Type == attendance.ActionCheckIn &&
				r.Status == attendance.StatusSubstitution &&
				r.SubstitutedEmployeeID != nil &&
				*r.SubstitutedEmployeeID == p.EmployeeID
		})
		if len(subs) > 0 {
			for _, sub := range subs {
				slots = append(slots, attendance.SlotStatus{
					Kind:                  attendance.SlotSubstituicao,
					Window:                p.Window,
					EmployeeID:            sub.EmployeeID,
					EmployeeName:          s.employeeName(ctx, sub.EmployeeID),
					SubstitutedEmployeeID: p.EmployeeID,
					SubstitutedName:       s.employeeName(ctx, p.EmployeeID),
					CheckIn:               timePtr(sub.Timestamp),
				})
			}
			continue
		}

		slots = append(slots, attendance.SlotStatus{
			Kind:         attendance.SlotFalta,
			Window:       p.Window,
			EmployeeID:   p.EmployeeID,
			EmployeeName: s.employeeName(ctx, p.EmployeeID),
		})
	}

	return slots, nil
}

// RegisterSubstitution implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RegisterSubstitution(ctx context.Context, req attendance.ManualSubstitutionRequest) (attendance.AttendanceRecord, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceRecord{}, err
	}

	target, err := s.PostRepository.GetByID(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			return attendance.AttendanceRecord{}, attendance.ErrUnknownPost
		}
		return attendance.AttendanceRecord{}, err
	}
	if _, err := s.EmployeeRepository.GetByID(ctx, req.SubstituteEmployeeID); err != nil {
		return attendance.AttendanceRecord{}, err
	}

	// Server time, not device time: the spec's canonical backfilled
	// timestamp case.
	substituted := req.SubstitutedEmployeeID
	rec := attendance.AttendanceRecord{
		ID:                    uuid.NewString(),
		Timestamp:             s.Clock().UTC(),
		EmployeeID:            req.SubstituteEmployeeID,
		PostID:                target.ID,
		Latitude:              target.Latitude,
		Longitude:             target.Longitude,
		Type:                  attendance.ActionCheckIn,
		Status:                attendance.StatusSubstitution,
		SubstitutedEmployeeID: &substituted,
		Photos:                []string{},
	}

	created, err := s.AttendanceRepository.Append(ctx, rec)
	if err != nil {
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to append substitution record: %w", err)
	}
	return created, nil
}

// ActiveShift implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ActiveShift(ctx context.Context, employeeID string) (*attendance.AttendanceRecord, error) {
	return s.AttendanceRepository.FindActiveShift(ctx, employeeID)
}

// History implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) History(ctx context.Context, employeeID string, limit int) ([]attendance.AttendanceRecord, error) {
	return s.AttendanceRepository.ListByEmployee(ctx, employeeID, limit)
}

// employeeName resolves a display name, falling back to the placeholder
// label for dangling references.
func (s *AttendanceServiceImpl) employeeName(ctx context.Context, id string) string {
	emp, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.PlaceholderName
	}
	return emp.Name
}

// findFirst returns the earliest matching record by timestamp, or nil.
func findFirst(records []attendance.AttendanceRecord, match func(attendance.AttendanceRecord) bool) *attendance.AttendanceRecord {
	var found *attendance.AttendanceRecord
	for i := range records {
		if !match(records[i]) {
			continue
		}
		if found == nil || records[i].Timestamp.Before(found.Timestamp) {
			found = &records[i]
		}
	}
	return found
}

// findAll returns matching records ordered by timestamp.
func findAll(records []attendance.AttendanceRecord, match func(attendance.AttendanceRecord) bool) []attendance.AttendanceRecord {
	var out []attendance.AttendanceRecord
	for _, r := range records {
		if match(r) {
			out = append(out, r)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Timestamp.Before(out[j-1].Timestamp); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func timePtr(t time.Time) *time.Time {
	return &t
}
