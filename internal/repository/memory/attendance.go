package memory

import (
	"context"
	"sort"

	"github.com/guardsystem/guardpost-backend-go/internal/domain/attendance"
)

type attendanceRepository struct {
	store *Store
}

func NewAttendanceRepository(store *Store) attendance.AttendanceRepository {
	return &attendanceRepository{store: store}
}

// Append implements attendance.AttendanceRepository. Records are added
// in insertion order; every query below orders by timestamp instead,
// because timestamps may be backfilled.
func (r *attendanceRepository) Append(ctx context.Context, rec attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.state.AttendanceRecords = append(r.store.state.AttendanceRecords, rec)
	return rec, nil
}

// FindForPostOnDate implements attendance.AttendanceRepository. The date
// boundary is the calendar day in the store's configured timezone.
func (r *attendanceRepository) FindForPostOnDate(ctx context.Context, postID, date string) ([]attendance.AttendanceRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []attendance.AttendanceRecord
	for _, rec := range r.store.state.AttendanceRecords {
		if rec.PostID != postID {
			continue
		}
		if rec.Timestamp.In(r.store.loc).Format("2006-01-02") == date {
			out = append(out, rec)
		}
	}
	return out, nil
}

// FindActiveShift implements attendance.AttendanceRepository.
func (r *attendanceRepository) FindActiveShift(ctx context.Context, employeeID string) (*attendance.AttendanceRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var latest *attendance.AttendanceRecord
	for i := range r.store.state.AttendanceRecords {
		rec := r.store.state.AttendanceRecords[i]
		if rec.EmployeeID != employeeID || rec.Type != attendance.ActionCheckIn {
			continue
		}
		if r.hasLaterCheckOut(rec) {
			continue
		}
		if latest == nil || rec.Timestamp.After(latest.Timestamp) {
			cp := rec
			latest = &cp
		}
	}
	return latest, nil
}

// hasLaterCheckOut reports whether a later CHECK_OUT by the same
// employee at the same post closes the given check-in. Caller holds the
// store lock.
func (r *attendanceRepository) hasLaterCheckOut(checkIn attendance.AttendanceRecord) bool {
	for _, rec := range r.store.state.AttendanceRecords {
		if rec.EmployeeID == checkIn.EmployeeID &&
			rec.PostID == checkIn.PostID &&
			rec.Type == attendance.ActionCheckOut &&
			rec.Timestamp.After(checkIn.Timestamp) {
			return true
		}
	}
	return false
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]attendance.AttendanceRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []attendance.AttendanceRecord
	for _, rec := range r.store.state.AttendanceRecords {
		if rec.EmployeeID == employeeID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
