package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nclex_keys/internal/model"
	"nclex_keys/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrLiveClassNotFound = errors.New("live class link not found")

// LiveClassService manages instructor meeting links
type LiveClassService interface {
	Create(ctx context.Context, instructorID uuid.UUID, req model.CreateLiveClassRequest) (*model.LiveClassLink, error)
	Update(ctx context.Context, id, instructorID uuid.UUID, req model.UpdateLiveClassRequest) (*model.LiveClassLink, error)
	Delete(ctx context.Context, id, instructorID uuid.UUID) error
	Toggle(ctx context.Context, id, instructorID uuid.UUID) (*model.LiveClassLink, error)
	ListMine(ctx context.Context, instructorID uuid.UUID) ([]model.LiveClassLink, error)
	ListActive(ctx context.Context, userID uuid.UUID, role string) ([]model.LiveClassLink, error)
}

type liveClassService struct {
	repo           repository.LiveClassRepository
	enrollmentRepo repository.EnrollmentRepository
	logger         *zap.Logger
}

// NewLiveClassService creates a new LiveClassService
func NewLiveClassService(repo repository.LiveClassRepository, enrollmentRepo repository.EnrollmentRepository, logger *zap.Logger) LiveClassService {
	return &liveClassService{repo: repo, enrollmentRepo: enrollmentRepo, logger: logger}
}

func (s *liveClassService) Create(ctx context.Context, instructorID uuid.UUID, req model.CreateLiveClassRequest) (*model.LiveClassLink, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	link := &model.LiveClassLink{
		InstructorID:    instructorID,
		Title:           title,
		Description:     blankToNil(req.Description),
		LinkURL:         strings.TrimSpace(req.LinkURL),
		MeetingPlatform: model.DefaultMeetingPlatform,
		ScheduledTime:   req.ScheduledTime,
		Duration:        blankToNil(req.Duration),
		IsActive:        true,
	}
	if p := blankToNil(req.MeetingPlatform); p != nil {
		link.MeetingPlatform = *p
	}
	if req.IsActive != nil {
		link.IsActive = *req.IsActive
	}

	if err := s.repo.Create(ctx, link); err != nil {
		return nil, fmt.Errorf("failed to create live class link: %w", err)
	}
	s.logger.Info("Live class link created", zap.String("link_id", link.ID.String()), zap.String("instructor_id", instructorID.String()))
	return link, nil
}

func (s *liveClassService) Update(ctx context.Context, id, instructorID uuid.UUID, req model.UpdateLiveClassRequest) (*model.LiveClassLink, error) {
	link, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find live class link: %w", err)
	}
	if link == nil {
		return nil, ErrLiveClassNotFound
	}
	if link.InstructorID != instructorID {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		link.Title = title
	}
	if req.Description != nil {
		link.Description = blankToNil(req.Description)
	}
	if req.LinkURL != nil {
		link.LinkURL = strings.TrimSpace(*req.LinkURL)
	}
	if req.MeetingPlatform != nil {
		link.MeetingPlatform = model.DefaultMeetingPlatform
		if p := blankToNil(req.MeetingPlatform); p != nil {
			link.MeetingPlatform = *p
		}
	}
	if req.ScheduledTime != nil {
		link.ScheduledTime = req.ScheduledTime
	}
	if req.Duration != nil {
		link.Duration = blankToNil(req.Duration)
	}
	if req.IsActive != nil {
		link.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, link); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLiveClassNotFound
		}
		return nil, fmt.Errorf("failed to update live class link: %w", err)
	}
	return link, nil
}

func (s *liveClassService) Delete(ctx context.Context, id, instructorID uuid.UUID) error {
	if err := s.repo.Delete(ctx, id, instructorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLiveClassNotFound
		}
		return fmt.Errorf("failed to delete live class link: %w", err)
	}
	return nil
}

func (s *liveClassService) Toggle(ctx context.Context, id, instructorID uuid.UUID) (*model.LiveClassLink, error) {
	link, err := s.repo.ToggleActive(ctx, id, instructorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLiveClassNotFound
		}
		return nil, fmt.Errorf("failed to toggle live class link: %w", err)
	}
	return link, nil
}

func (s *liveClassService) ListMine(ctx context.Context, instructorID uuid.UUID) ([]model.LiveClassLink, error) {
	links, err := s.repo.ListByInstructor(ctx, instructorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list live class links: %w", err)
	}
	return links, nil
}

// ListActive returns upcoming classes; students need an unlocked enrollment
func (s *liveClassService) ListActive(ctx context.Context, userID uuid.UUID, role string) ([]model.LiveClassLink, error) {
	if role == model.RoleStudent {
		unlocked, err := s.enrollmentRepo.UnlockedProgramIDs(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to check access: %w", err)
		}
		if len(unlocked) == 0 {
			return nil, ErrContentLocked
		}
	}
	links, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list live class links: %w", err)
	}
	return links, nil
}
