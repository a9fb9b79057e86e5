package repository

import (
	"context"
	"fmt"

	"nclex_keys/internal/model"

	"github.com/google/uuid"
)

// ProgressRepository defines operations for per-course completion flags
type ProgressRepository interface {
	Toggle(ctx context.Context, userID, courseID uuid.UUID) (*model.UserProgress, error)
	CompletedCourseIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type progressRepository struct {
	db DB
}

// NewProgressRepository creates a new ProgressRepository
func NewProgressRepository(db DB) ProgressRepository {
	return &progressRepository{db: db}
}

// Toggle flips the completion flag in a single statement. A missing row is created as completed.
func (r *progressRepository) Toggle(ctx context.Context, userID, courseID uuid.UUID) (*model.UserProgress, error) {
	sql := `INSERT INTO user_progress (user_id, course_id, completed, last_accessed)
            VALUES ($1, $2, TRUE, NOW())
            ON CONFLICT (user_id, course_id) DO UPDATE
            SET completed = NOT user_progress.completed, last_accessed = NOW()
            RETURNING id, user_id, course_id, completed, last_accessed`
	p := &model.UserProgress{}
	err := r.db.QueryRow(ctx, sql, userID, courseID).Scan(&p.ID, &p.UserID, &p.CourseID, &p.Completed, &p.LastAccessed)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle progress: %w", err)
	}
	return p, nil
}

// CompletedCourseIDs returns the courses the user marked as completed
func (r *progressRepository) CompletedCourseIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT course_id FROM user_progress WHERE user_id = $1 AND completed = TRUE`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query progress: %w", err)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan progress row: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating progress rows: %w", err)
	}
	return ids, nil
}
