package repository

import (
	"context"
	"errors"
	"fmt"

	"nclex_keys/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CourseRepository defines operations for course data
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	Update(ctx context.Context, course *model.Course) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Course, error)
	ListByPrograms(ctx context.Context, programIDs []uuid.UUID) ([]model.Course, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]model.Course, error)
	SetMediaURL(ctx context.Context, id uuid.UUID, kind model.MediaKind, url string) (*model.Course, error)
}

type courseRepository struct {
	db DB
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db DB) CourseRepository {
	return &courseRepository{db: db}
}

const courseColumns = `id, program_id, created_by, title, description, video_url, materials_url, order_index, created_at, updated_at`

func scanCourse(row pgx.Row, c *model.Course) error {
	return row.Scan(&c.ID, &c.ProgramID, &c.CreatedBy, &c.Title, &c.Description, &c.VideoURL, &c.MaterialsURL,
		&c.OrderIndex, &c.CreatedAt, &c.UpdatedAt)
}

// Create inserts a new course
func (r *courseRepository) Create(ctx context.Context, c *model.Course) error {
	sql := `INSERT INTO courses (program_id, created_by, title, description, video_url, materials_url, order_index)
            VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql, c.ProgramID, c.CreatedBy, c.Title, c.Description, c.VideoURL, c.MaterialsURL, c.OrderIndex).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}
	return nil
}

// Update overwrites the editable columns of a course
func (r *courseRepository) Update(ctx context.Context, c *model.Course) error {
	sql := `UPDATE courses
            SET program_id = $1, title = $2, description = $3, video_url = $4, materials_url = $5, order_index = $6
            WHERE id = $7 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql, c.ProgramID, c.Title, c.Description, c.VideoURL, c.MaterialsURL, c.OrderIndex, c.ID).
		Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update course: %w", err)
	}
	return nil
}

// Delete removes a course; its progress rows cascade
func (r *courseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// FindByID retrieves a course by its ID
func (r *courseRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	c := &model.Course{}
	sql := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	if err := scanCourse(r.db.QueryRow(ctx, sql, id), c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find course by ID: %w", err)
	}
	return c, nil
}

// ListByPrograms returns the courses of the given programs in display order
func (r *courseRepository) ListByPrograms(ctx context.Context, programIDs []uuid.UUID) ([]model.Course, error) {
	if len(programIDs) == 0 {
		return []model.Course{}, nil
	}
	ids := make([]string, len(programIDs))
	for i, id := range programIDs {
		ids[i] = id.String()
	}
	sql := `SELECT ` + courseColumns + ` FROM courses
            WHERE program_id = ANY($1::uuid[])
            ORDER BY order_index ASC, created_at ASC`
	return r.list(ctx, sql, ids)
}

// ListByCreator returns the courses authored by a user in display order
func (r *courseRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]model.Course, error) {
	sql := `SELECT ` + courseColumns + ` FROM courses
            WHERE created_by = $1
            ORDER BY order_index ASC, created_at ASC`
	return r.list(ctx, sql, creatorID)
}

func (r *courseRepository) list(ctx context.Context, sql string, args ...any) ([]model.Course, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	courses := []model.Course{}
	for rows.Next() {
		var c model.Course
		if err := scanCourse(rows, &c); err != nil {
			return nil, fmt.Errorf("failed to scan course row: %w", err)
		}
		courses = append(courses, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}
	return courses, nil
}

// SetMediaURL stores an uploaded file's URL in the video or materials column
func (r *courseRepository) SetMediaURL(ctx context.Context, id uuid.UUID, kind model.MediaKind, url string) (*model.Course, error) {
	var column string
	switch kind {
	case model.MediaVideo:
		column = "video_url"
	case model.MediaMaterials:
		column = "materials_url"
	default:
		return nil, fmt.Errorf("unknown media kind %q", kind)
	}

	sql := `UPDATE courses SET ` + column + ` = $1 WHERE id = $2 RETURNING ` + courseColumns
	c := &model.Course{}
	if err := scanCourse(r.db.QueryRow(ctx, sql, url, id), c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to set course %s: %w", column, err)
	}
	return c, nil
}
