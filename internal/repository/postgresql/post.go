package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/guardsystem/guardpost-backend-go/internal/domain/post"
	"github.com/guardsystem/guardpost-backend-go/internal/pkg/database"
)

type postRepository struct {
	db *database.DB
}

func NewPostRepository(db *database.DB) post.PostRepository {
	return &postRepository{db: db}
}

// Create implements post.PostRepository. The post row and its shift
// windows are written in one transaction.
func (r *postRepository) Create(ctx context.Context, p post.Post) (post.Post, error) {
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO posts (
				id, name, code, latitude, longitude, altitude, radius_meters,
				min_interval_minutes, qr_url, allowed_employee_ids, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
			RETURNING created_at, updated_at
		`
		err := tx.QueryRow(ctx, query,
			p.ID, p.Name, p.Code, p.Latitude, p.Longitude, p.Altitude,
			p.RadiusMeters, p.MinIntervalMinutes, p.QRURL, p.AllowedEmployeeIDs,
		).Scan(&p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return err
		}
		return insertWindows(ctx, tx, p.ID, p.Windows)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return post.Post{}, post.ErrCodeExists
		}
		return post.Post{}, fmt.Errorf("failed to create post: %w", err)
	}
	return p, nil
}

// GetByID implements post.PostRepository.
func (r *postRepository) GetByID(ctx context.Context, id string) (post.Post, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

// GetByCode implements post.PostRepository.
func (r *postRepository) GetByCode(ctx context.Context, code string) (post.Post, error) {
	return r.getOne(ctx, `WHERE code = $1`, code)
}

func (r *postRepository) getOne(ctx context.Context, where string, arg interface{}) (post.Post, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, code, latitude, longitude, altitude, radius_meters,
			   min_interval_minutes, qr_url, allowed_employee_ids, created_at, updated_at
		FROM posts ` + where

	var p post.Post
	err := q.QueryRow(ctx, query, arg).Scan(
		&p.ID, &p.Name, &p.Code, &p.Latitude, &p.Longitude, &p.Altitude,
		&p.RadiusMeters, &p.MinIntervalMinutes, &p.QRURL, &p.AllowedEmployeeIDs,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return post.Post{}, post.ErrPostNotFound
		}
		return post.Post{}, fmt.Errorf("failed to get post: %w", err)
	}

	p.Windows, err = r.loadWindows(ctx, p.ID)
	if err != nil {
		return post.Post{}, err
	}
	return p, nil
}

// List implements post.PostRepository.
func (r *postRepository) List(ctx context.Context) ([]post.Post, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, code, latitude, longitude, altitude, radius_meters,
			   min_interval_minutes, qr_url, allowed_employee_ids, created_at, updated_at
		FROM posts
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var out []post.Post
	for rows.Next() {
		var p post.Post
		err := rows.Scan(
			&p.ID, &p.Name, &p.Code, &p.Latitude, &p.Longitude, &p.Altitude,
			&p.RadiusMeters, &p.MinIntervalMinutes, &p.QRURL, &p.AllowedEmployeeIDs,
			&p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		out[i].Windows, err = r.loadWindows(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Update implements post.PostRepository. Windows are replaced wholesale.
func (r *postRepository) Update(ctx context.Context, p post.Post) error {
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			UPDATE posts
			SET name = $2, latitude = $3, longitude = $4, altitude = $5,
				radius_meters = $6, min_interval_minutes = $7,
				allowed_employee_ids = $8, updated_at = $9
			WHERE id = $1
		`
		tag, err := tx.Exec(ctx, query,
			p.ID, p.Name, p.Latitude, p.Longitude, p.Altitude,
			p.RadiusMeters, p.MinIntervalMinutes, p.AllowedEmployeeIDs, time.Now().UTC(),
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return post.ErrPostNotFound
		}
		if _, err := tx.Exec(ctx, `DELETE FROM post_shift_windows WHERE post_id = $1`, p.ID); err != nil {
			return err
		}
		return insertWindows(ctx, tx, p.ID, p.Windows)
	})
	if err != nil && !errors.Is(err, post.ErrPostNotFound) {
		return fmt.Errorf("failed to update post: %w", err)
	}
	return err
}

// Delete implements post.PostRepository.
func (r *postRepository) Delete(ctx context.Context, id string) error {
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM post_shift_windows WHERE post_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return post.ErrPostNotFound
		}
		return nil
	})
	if err != nil && !errors.Is(err, post.ErrPostNotFound) {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return err
}

func (r *postRepository) loadWindows(ctx context.Context, postID string) ([]post.ShiftWindow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT window_id, active, start_time, end_time
		FROM post_shift_windows
		WHERE post_id = $1
		ORDER BY position
	`

	rows, err := q.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to load shift windows: %w", err)
	}
	defer rows.Close()

	var windows []post.ShiftWindow
	for rows.Next() {
		var w post.ShiftWindow
		var id string
		if err := rows.Scan(&id, &w.Active, &w.Start, &w.End); err != nil {
			return nil, fmt.Errorf("failed to scan shift window: %w", err)
		}
		w.ID = post.ShiftWindowID(id)
		windows = append(windows, w)
	}
	return windows, rows.Err()
}

func insertWindows(ctx context.Context, tx pgx.Tx, postID string, windows []post.ShiftWindow) error {
	for i, w := range windows {
		_, err := tx.Exec(ctx, `
			INSERT INTO post_shift_windows (post_id, window_id, active, start_time, end_time, position)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, postID, string(w.ID), w.Active, w.Start, w.End, i)
		if err != nil {
			return err
		}
	}
	return nil
}
