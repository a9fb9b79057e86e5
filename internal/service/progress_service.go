package service

import (
	"context"
	"fmt"

	"nclex_keys/internal/model"
	"nclex_keys/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProgressService tracks per-course completion
type ProgressService interface {
	Toggle(ctx context.Context, userID, courseID uuid.UUID) (*model.UserProgress, error)
}

type progressService struct {
	progressRepo   repository.ProgressRepository
	courseRepo     repository.CourseRepository
	enrollmentRepo repository.EnrollmentRepository
	logger         *zap.Logger
}

// NewProgressService creates a new ProgressService
func NewProgressService(
	progressRepo repository.ProgressRepository,
	courseRepo repository.CourseRepository,
	enrollmentRepo repository.EnrollmentRepository,
	logger *zap.Logger,
) ProgressService {
	return &progressService{
		progressRepo:   progressRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		logger:         logger,
	}
}

// Toggle flips the completion flag of a course the user has unlocked
func (s *progressService) Toggle(ctx context.Context, userID, courseID uuid.UUID) (*model.UserProgress, error) {
	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to find course: %w", err)
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}

	unlocked, err := s.enrollmentRepo.UnlockedProgramIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check access: %w", err)
	}
	if !containsID(unlocked, course.ProgramID) {
		return nil, ErrContentLocked
	}

	progress, err := s.progressRepo.Toggle(ctx, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle progress: %w", err)
	}
	s.logger.Debug("Progress toggled",
		zap.String("user_id", userID.String()),
		zap.String("course_id", courseID.String()),
		zap.Bool("completed", progress.Completed),
	)
	return progress, nil
}
