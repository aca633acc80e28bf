package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/guardsystem/guardpost-backend-go/internal/domain/attendance"
	"github.com/guardsystem/guardpost-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
	// timezone is the IANA name used to project timestamps onto calendar
	// dates. It must match the application timezone so day boundaries
	// stay consistent across queries.
	timezone string
}

func NewAttendanceRepository(db *database.DB, timezone string) attendance.AttendanceRepository {
	return &attendanceRepository{db: db, timezone: timezone}
}

// Append implements attendance.AttendanceRepository. There is no update
// or delete path for attendance_records anywhere in this package; the
// table is the system of record.
func (r *attendanceRepository) Append(ctx context.Context, rec attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			id, recorded_at, employee_id, post_id, latitude, longitude, altitude,
			action_type, status, substituted_employee_id, photos
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := q.Exec(ctx, query,
		rec.ID, rec.Timestamp, rec.EmployeeID, rec.PostID,
		rec.Latitude, rec.Longitude, rec.Altitude,
		string(rec.Type), string(rec.Status), rec.SubstitutedEmployeeID, rec.Photos,
	)
	if err != nil {
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to append attendance record: %w", err)
	}
	return rec, nil
}

// FindForPostOnDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) FindForPostOnDate(ctx context.Context, postID, date string) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, recorded_at, employee_id, post_id, latitude, longitude, altitude,
			   action_type, status, substituted_employee_id, photos
		FROM attendance_records
		WHERE post_id = $1
		  AND (recorded_at AT TIME ZONE $2)::date = $3
		ORDER BY recorded_at
	`

	rows, err := q.Query(ctx, query, postID, r.timezone, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// FindActiveShift implements attendance.AttendanceRepository. Both
// "latest" and "later" compare the recorded instant, never insertion
// order, so backfilled timestamps behave.
func (r *attendanceRepository) FindActiveShift(ctx context.Context, employeeID string) (*attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ci.id, ci.recorded_at, ci.employee_id, ci.post_id, ci.latitude, ci.longitude,
			   ci.altitude, ci.action_type, ci.status, ci.substituted_employee_id, ci.photos
		FROM attendance_records ci
		WHERE ci.employee_id = $1
		  AND ci.action_type = 'CHECK_IN'
		  AND NOT EXISTS (
			SELECT 1 FROM attendance_records co
			WHERE co.employee_id = ci.employee_id
			  AND co.post_id = ci.post_id
			  AND co.action_type = 'CHECK_OUT'
			  AND co.recorded_at > ci.recorded_at
		  )
		ORDER BY ci.recorded_at DESC
		LIMIT 1
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find active shift: %w", err)
	}
	return &rec, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, recorded_at, employee_id, post_id, latitude, longitude, altitude,
			   action_type, status, substituted_employee_id, photos
		FROM attendance_records
		WHERE employee_id = $1
		ORDER BY recorded_at DESC
	`
	args := []interface{}{employeeID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func scanRecord(row pgx.Row) (attendance.AttendanceRecord, error) {
	var rec attendance.AttendanceRecord
	var actionType, status string
	err := row.Scan(
		&rec.ID, &rec.Timestamp, &rec.EmployeeID, &rec.PostID,
		&rec.Latitude, &rec.Longitude, &rec.Altitude,
		&actionType, &status, &rec.SubstitutedEmployeeID, &rec.Photos,
	)
	if err != nil {
		return attendance.AttendanceRecord{}, err
	}
	rec.Type = attendance.ActionType(actionType)
	rec.Status = attendance.RecordStatus(status)
	return rec, nil
}

func scanRecords(rows pgx.Rows) ([]attendance.AttendanceRecord, error) {
	var out []attendance.AttendanceRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
