package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nclex_keys/internal/model"
	"nclex_keys/internal/notify"
	"nclex_keys/internal/repository"
	"nclex_keys/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrInvalidTransition  = errors.New("enrollment cannot move to the requested state")
	ErrInvalidState       = errors.New("unknown enrollment state")
)

// EnrollmentService drives the enrollment lifecycle and manual payment verification
type EnrollmentService interface {
	Current(ctx context.Context, userID uuid.UUID) (*model.Enrollment, error)
	PaymentInstructions(ctx context.Context, userID uuid.UUID) (*model.PaymentInstructions, error)
	RedirectFor(ctx context.Context, userID uuid.UUID, role string) (string, error)
	List(ctx context.Context, state *model.EnrollmentState) ([]model.Enrollment, error)
	Transition(ctx context.Context, id uuid.UUID, next model.EnrollmentState, actorID uuid.UUID) (*model.Enrollment, error)
	PendingOlderThan(ctx context.Context, age time.Duration) ([]model.PendingEnrollmentSummary, error)
}

type enrollmentService struct {
	enrollmentRepo repository.EnrollmentRepository
	userRepo       repository.UserRepository
	mailer         notify.Mailer
	whatsAppNumber string
	communityURL   string
	logger         *zap.Logger
	now            func() time.Time
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(
	enrollmentRepo repository.EnrollmentRepository,
	userRepo repository.UserRepository,
	mailer notify.Mailer,
	whatsAppNumber, communityURL string,
	logger *zap.Logger,
) EnrollmentService {
	return &enrollmentService{
		enrollmentRepo: enrollmentRepo,
		userRepo:       userRepo,
		mailer:         mailer,
		whatsAppNumber: whatsAppNumber,
		communityURL:   communityURL,
		logger:         logger,
		now:            time.Now,
	}
}

// Current returns the user's latest enrollment
func (s *enrollmentService) Current(ctx context.Context, userID uuid.UUID) (*model.Enrollment, error) {
	enrollment, err := s.enrollmentRepo.FindLatestByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find current enrollment: %w", err)
	}
	if enrollment == nil {
		return nil, ErrEnrollmentNotFound
	}
	return enrollment, nil
}

// PaymentInstructions builds the WhatsApp hand-off shown on the verify-payment page
func (s *enrollmentService) PaymentInstructions(ctx context.Context, userID uuid.UUID) (*model.PaymentInstructions, error) {
	enrollment, err := s.enrollmentRepo.FindLatestByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find current enrollment: %w", err)
	}

	instructions := &model.PaymentInstructions{Enrollment: enrollment}
	if enrollment != nil && enrollment.Program != nil {
		instructions.ProgramName = enrollment.Program.Name
		instructions.Price = enrollment.Program.Price
	}
	instructions.Message = utils.PaymentMessage(instructions.ProgramName)
	instructions.WhatsAppURL = utils.WhatsAppLink(s.whatsAppNumber, instructions.Message)

	if enrollment != nil && enrollment.State.PaymentVerified() {
		instructions.Verified = true
		instructions.RedirectTo = model.PathDashboard
	}
	return instructions, nil
}

// RedirectFor computes where the user should land after signing in
func (s *enrollmentService) RedirectFor(ctx context.Context, userID uuid.UUID, role string) (string, error) {
	if role != model.RoleStudent {
		return redirectFor(role, nil), nil
	}
	latest, err := s.enrollmentRepo.FindLatestByUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to find current enrollment: %w", err)
	}
	return redirectFor(role, latest), nil
}

// List returns enrollments, optionally in a single state
func (s *enrollmentService) List(ctx context.Context, state *model.EnrollmentState) ([]model.Enrollment, error) {
	if state != nil && !state.Valid() {
		return nil, ErrInvalidState
	}
	enrollments, err := s.enrollmentRepo.ListByState(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	return enrollments, nil
}

// Transition applies a staff action to an enrollment.
// The move happens only if the enrollment is still in a state that allows it.
func (s *enrollmentService) Transition(ctx context.Context, id uuid.UUID, next model.EnrollmentState, actorID uuid.UUID) (*model.Enrollment, error) {
	if !next.Valid() {
		return nil, ErrInvalidState
	}
	sources := model.SourcesFor(next)
	if len(sources) == 0 {
		return nil, ErrInvalidTransition
	}

	enrollment, err := s.enrollmentRepo.Transition(ctx, id, next, sources, &actorID)
	if err != nil {
		if !errors.Is(err, repository.ErrNoTransition) {
			return nil, fmt.Errorf("failed to transition enrollment: %w", err)
		}
		existing, findErr := s.enrollmentRepo.FindByID(ctx, id)
		if findErr != nil {
			return nil, fmt.Errorf("failed to find enrollment: %w", findErr)
		}
		if existing == nil {
			return nil, ErrEnrollmentNotFound
		}
		return nil, ErrInvalidTransition
	}

	s.logger.Info("Enrollment state changed",
		zap.String("enrollment_id", id.String()),
		zap.String("state", string(enrollment.State)),
		zap.String("actor_id", actorID.String()),
	)

	if next == model.EnrollmentVerified {
		s.notifyVerified(ctx, enrollment)
	}
	return enrollment, nil
}

func (s *enrollmentService) notifyVerified(ctx context.Context, enrollment *model.Enrollment) {
	user, err := s.userRepo.FindByID(ctx, enrollment.UserID)
	if err != nil || user == nil {
		s.logger.Warn("Cannot notify student of verification", zap.String("user_id", enrollment.UserID.String()), zap.Error(err))
		return
	}
	var programName string
	if full, err := s.enrollmentRepo.FindByID(ctx, enrollment.ID); err == nil && full != nil && full.Program != nil {
		programName = full.Program.Name
		enrollment.Program = full.Program
	}
	s.mailer.SendMessages(notify.PaymentVerifiedMessage(user, programName, s.communityURL))
}

// PendingOlderThan lists enrollments that have waited for verification longer than age
func (s *enrollmentService) PendingOlderThan(ctx context.Context, age time.Duration) ([]model.PendingEnrollmentSummary, error) {
	pending, err := s.enrollmentRepo.ListPendingOlderThan(ctx, s.now().Add(-age))
	if err != nil {
		return nil, fmt.Errorf("failed to list pending enrollments: %w", err)
	}
	return pending, nil
}
