package repository

import (
	"context"
	"errors"
	"fmt"

	"nclex_keys/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// LiveClassRepository defines operations for live class links.
// Mutations are scoped to the owning instructor.
type LiveClassRepository interface {
	Create(ctx context.Context, link *model.LiveClassLink) error
	Update(ctx context.Context, link *model.LiveClassLink) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.LiveClassLink, error)
	Delete(ctx context.Context, id, instructorID uuid.UUID) error
	ToggleActive(ctx context.Context, id, instructorID uuid.UUID) (*model.LiveClassLink, error)
	ListByInstructor(ctx context.Context, instructorID uuid.UUID) ([]model.LiveClassLink, error)
	ListActive(ctx context.Context) ([]model.LiveClassLink, error)
}

type liveClassRepository struct {
	db DB
}

// NewLiveClassRepository creates a new LiveClassRepository
func NewLiveClassRepository(db DB) LiveClassRepository {
	return &liveClassRepository{db: db}
}

const liveClassColumns = `id, instructor_id, title, description, link_url, meeting_platform, scheduled_time, duration, is_active, created_at, updated_at`

func scanLiveClass(row pgx.Row, l *model.LiveClassLink) error {
	return row.Scan(&l.ID, &l.InstructorID, &l.Title, &l.Description, &l.LinkURL, &l.MeetingPlatform,
		&l.ScheduledTime, &l.Duration, &l.IsActive, &l.CreatedAt, &l.UpdatedAt)
}

// Create inserts a new live class link
func (r *liveClassRepository) Create(ctx context.Context, l *model.LiveClassLink) error {
	sql := `INSERT INTO live_class_links (instructor_id, title, description, link_url, meeting_platform, scheduled_time, duration, is_active)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql, l.InstructorID, l.Title, l.Description, l.LinkURL, l.MeetingPlatform,
		l.ScheduledTime, l.Duration, l.IsActive).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create live class link: %w", err)
	}
	return nil
}

// Update overwrites the editable columns of a link owned by l.InstructorID
func (r *liveClassRepository) Update(ctx context.Context, l *model.LiveClassLink) error {
	sql := `UPDATE live_class_links
            SET title = $1, description = $2, link_url = $3, meeting_platform = $4, scheduled_time = $5, duration = $6, is_active = $7
            WHERE id = $8 AND instructor_id = $9 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql, l.Title, l.Description, l.LinkURL, l.MeetingPlatform, l.ScheduledTime, l.Duration,
		l.IsActive, l.ID, l.InstructorID).Scan(&l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update live class link: %w", err)
	}
	return nil
}

// FindByID retrieves a link by its ID
func (r *liveClassRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.LiveClassLink, error) {
	l := &model.LiveClassLink{}
	sql := `SELECT ` + liveClassColumns + ` FROM live_class_links WHERE id = $1`
	if err := scanLiveClass(r.db.QueryRow(ctx, sql, id), l); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find live class link by ID: %w", err)
	}
	return l, nil
}

// Delete removes a link owned by instructorID
func (r *liveClassRepository) Delete(ctx context.Context, id, instructorID uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM live_class_links WHERE id = $1 AND instructor_id = $2`, id, instructorID)
	if err != nil {
		return fmt.Errorf("failed to delete live class link: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleActive flips is_active on a link owned by instructorID
func (r *liveClassRepository) ToggleActive(ctx context.Context, id, instructorID uuid.UUID) (*model.LiveClassLink, error) {
	sql := `UPDATE live_class_links SET is_active = NOT is_active
            WHERE id = $1 AND instructor_id = $2 RETURNING ` + liveClassColumns
	l := &model.LiveClassLink{}
	if err := scanLiveClass(r.db.QueryRow(ctx, sql, id, instructorID), l); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to toggle live class link: %w", err)
	}
	return l, nil
}

// ListByInstructor returns an instructor's links, newest first
func (r *liveClassRepository) ListByInstructor(ctx context.Context, instructorID uuid.UUID) ([]model.LiveClassLink, error) {
	sql := `SELECT ` + liveClassColumns + ` FROM live_class_links
            WHERE instructor_id = $1
            ORDER BY created_at DESC`
	return r.list(ctx, sql, instructorID)
}

// ListActive returns active links by schedule, unscheduled ones last
func (r *liveClassRepository) ListActive(ctx context.Context) ([]model.LiveClassLink, error) {
	sql := `SELECT ` + liveClassColumns + ` FROM live_class_links
            WHERE is_active = TRUE
            ORDER BY scheduled_time ASC NULLS LAST, created_at DESC`
	return r.list(ctx, sql)
}

func (r *liveClassRepository) list(ctx context.Context, sql string, args ...any) ([]model.LiveClassLink, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query live class links: %w", err)
	}
	defer rows.Close()

	links := []model.LiveClassLink{}
	for rows.Next() {
		var l model.LiveClassLink
		if err := scanLiveClass(rows, &l); err != nil {
			return nil, fmt.Errorf("failed to scan live class link row: %w", err)
		}
		links = append(links, l)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating live class link rows: %w", err)
	}
	return links, nil
}
