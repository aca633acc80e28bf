package memory

import (
	"context"
	"time"

	"github.com/guardsystem/guardpost-backend-go/internal/domain/post"
	"github.com/guardsystem/guardpost-backend-go/internal/domain/roster"
)

type rosterRepository struct {
	store *Store
}

func NewRosterRepository(store *Store) roster.RosterRepository {
	return &rosterRepository{store: store}
}

// Create implements roster.RosterRepository.
func (r *rosterRepository) Create(ctx context.Context, shift roster.PlannedShift) (roster.PlannedShift, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	shift.CreatedAt = time.Now().UTC()
	r.store.state.PlannedShifts = append(r.store.state.PlannedShifts, shift)
	return shift, nil
}

// Delete implements roster.RosterRepository.
func (r *rosterRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, s := range r.store.state.PlannedShifts {
		if s.ID == id {
			r.store.state.PlannedShifts = append(r.store.state.PlannedShifts[:i], r.store.state.PlannedShifts[i+1:]...)
			return nil
		}
	}
	return roster.ErrPlannedShiftNotFound
}

// ListByPostAndDate implements roster.RosterRepository. Insertion order
// is creation order here, so no re-sort is needed.
func (r *rosterRepository) ListByPostAndDate(ctx context.Context, postID, date string) ([]roster.PlannedShift, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []roster.PlannedShift
	for _, s := range r.store.state.PlannedShifts {
		if s.PostID == postID && s.Date == date {
			out = append(out, s)
		}
	}
	return out, nil
}

// ListPlannedFor implements roster.RosterRepository.
func (r *rosterRepository) ListPlannedFor(ctx context.Context, postID, date string, window post.ShiftWindowID) ([]roster.PlannedShift, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []roster.PlannedShift
	for _, s := range r.store.state.PlannedShifts {
		if s.PostID == postID && s.Date == date && s.Window == window {
			out = append(out, s)
		}
	}
	return out, nil
}

// ListByEmployee implements roster.RosterRepository.
func (r *rosterRepository) ListByEmployee(ctx context.Context, employeeID string, fromDate string) ([]roster.PlannedShift, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []roster.PlannedShift
	for _, s := range r.store.state.PlannedShifts {
		if s.EmployeeID == employeeID && s.Date >= fromDate {
			out = append(out, s)
		}
	}
	return out, nil
}

// DeleteByPost implements roster.RosterRepository.
func (r *rosterRepository) DeleteByPost(ctx context.Context, postID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	kept := r.store.state.PlannedShifts[:0]
	for _, s := range r.store.state.PlannedShifts {
		if s.PostID != postID {
			kept = append(kept, s)
		}
	}
	r.store.state.PlannedShifts = kept
	return nil
}
