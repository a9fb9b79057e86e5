package model

import (
	"time"

	"github.com/google/uuid"
)

// UserProgress is the per-user, per-course completion flag
type UserProgress struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	CourseID     uuid.UUID `json:"course_id"`
	Completed    bool      `json:"completed"`
	LastAccessed time.Time `json:"last_accessed"`
}
