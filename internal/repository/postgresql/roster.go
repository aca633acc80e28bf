package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/guardsystem/guardpost-backend-go/internal/domain/post"
	"github.com/guardsystem/guardpost-backend-go/internal/domain/roster"
	"github.com/guardsystem/guardpost-backend-go/internal/pkg/database"
)

type rosterRepository struct {
	db *database.DB
}

func NewRosterRepository(db *database.DB) roster.RosterRepository {
	return &rosterRepository{db: db}
}

// Create implements roster.RosterRepository.
func (r *rosterRepository) Create(ctx context.Context, shift roster.PlannedShift) (roster.PlannedShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO planned_shifts (id, post_id, employee_id, date, shift_window, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		shift.ID, shift.PostID, shift.EmployeeID, shift.Date, string(shift.Window),
	).Scan(&shift.CreatedAt)
	if err != nil {
		return roster.PlannedShift{}, fmt.Errorf("failed to create planned shift: %w", err)
	}
	return shift, nil
}

// Delete implements roster.RosterRepository.
func (r *rosterRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM planned_shifts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete planned shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return roster.ErrPlannedShiftNotFound
	}
	return nil
}

// ListByPostAndDate implements roster.RosterRepository.
func (r *rosterRepository) ListByPostAndDate(ctx context.Context, postID, date string) ([]roster.PlannedShift, error) {
	return r.list(ctx, `
		SELECT id, post_id, employee_id, to_char(date, 'YYYY-MM-DD'), shift_window, created_at
		FROM planned_shifts
		WHERE post_id = $1 AND date = $2
		ORDER BY created_at, id
	`, postID, date)
}

// ListPlannedFor implements roster.RosterRepository. Ordered by creation
// so the first row is the slot's attributable planned employee.
func (r *rosterRepository) ListPlannedFor(ctx context.Context, postID, date string, window post.ShiftWindowID) ([]roster.PlannedShift, error) {
	return r.list(ctx, `
		SELECT id, post_id, employee_id, to_char(date, 'YYYY-MM-DD'), shift_window, created_at
		FROM planned_shifts
		WHERE post_id = $1 AND date = $2 AND shift_window = $3
		ORDER BY created_at, id
	`, postID, date, string(window))
}

// ListByEmployee implements roster.RosterRepository.
func (r *rosterRepository) ListByEmployee(ctx context.Context, employeeID string, fromDate string) ([]roster.PlannedShift, error) {
	return r.list(ctx, `
		SELECT id, post_id, employee_id, to_char(date, 'YYYY-MM-DD'), shift_window, created_at
		FROM planned_shifts
		WHERE employee_id = $1 AND date >= $2
		ORDER BY date, created_at
	`, employeeID, fromDate)
}

// DeleteByPost implements roster.RosterRepository.
func (r *rosterRepository) DeleteByPost(ctx context.Context, postID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM planned_shifts WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("failed to delete planned shifts for post: %w", err)
	}
	return nil
}

func (r *rosterRepository) list(ctx context.Context, query string, args ...interface{}) ([]roster.PlannedShift, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list planned shifts: %w", err)
	}
	defer rows.Close()

	var out []roster.PlannedShift
	for rows.Next() {
		s, err := scanPlannedShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan planned shift: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanPlannedShift(row pgx.Row) (roster.PlannedShift, error) {
	var s roster.PlannedShift
	var window string
	var createdAt time.Time
	err := row.Scan(&s.ID, &s.PostID, &s.EmployeeID, &s.Date, &window, &createdAt)
	if err != nil {
		return roster.PlannedShift{}, err
	}
	s.Window = post.ShiftWindowID(window)
	s.CreatedAt = createdAt
	return s, nil
}
