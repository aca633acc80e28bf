// Package memory implements the domain repositories over a plain
// serializable snapshot. It lets the validation and reconciliation
// engine run without a database: the embedder loads a State, hands it to
// a Store, and persists Snapshot() however it likes.
package memory

import (
	"sync"
	"time"

	"github.com/guardsystem/guardpost-backend-go/internal/domain/attendance"
	"github.com/guardsystem/guardpost-backend-go/internal/domain/employee"
	"github.com/guardsystem/guardpost-backend-go/internal/domain/post"
	"github.com/guardsystem/guardpost-backend-go/internal/domain/roster"
)

// State is the full engine state as one serializable value.
type State struct {
	Employees         []employee.Employee           `json:"employees"`
	Posts             []post.Post                   `json:"posts"`
	PlannedShifts     []roster.PlannedShift         `json:"planned_shifts"`
	AttendanceRecords []attendance.AttendanceRecord `json:"attendance_records"`
}

// Store guards a State behind one mutex. The attendance slice is treated
// as append-only; nothing here ever rewrites or removes a record.
type Store struct {
	mu    sync.RWMutex
	state State
	loc   *time.Location
}

func NewStore(loc *time.Location) *Store {
	return NewStoreFromState(State{}, loc)
}

func NewStoreFromState(state State, loc *time.Location) *Store {
	if loc == nil {
		loc = time.UTC
	}
	return &Store{state: state, loc: loc}
}

// Snapshot returns a deep copy of the current state, safe to serialize
// while the store keeps serving requests.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := State{
		Employees:         make([]employee.Employee, len(s.state.Employees)),
		Posts:             make([]post.Post, len(s.state.Posts)),
		PlannedShifts:     make([]roster.PlannedShift, len(s.state.PlannedShifts)),
		AttendanceRecords: make([]attendance.AttendanceRecord, len(s.state.AttendanceRecords)),
	}
	copy(out.Employees, s.state.Employees)
	copy(out.PlannedShifts, s.state.PlannedShifts)
	for i, p := range s.state.Posts {
		cp := p
		cp.AllowedEmployeeIDs = append([]string(nil), p.AllowedEmployeeIDs...)
		cp.Windows = append([]post.ShiftWindow(nil), p.Windows...)
		out.Posts[i] = cp
	}
	for i, r := range s.state.AttendanceRecords {
		cr := r
		cr.Photos = append([]string(nil), r.Photos...)
		out.AttendanceRecords[i] = cr
	}
	return out
}
