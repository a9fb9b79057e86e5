package service

import (
	"context"
	"errors"
	"fmt"

	"nclex_keys/internal/model"
	"nclex_keys/internal/repository"
	"nclex_keys/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxTokenBatchAttempts = 3

// TokenService issues the single-use codes handed to paying students
type TokenService interface {
	Issue(ctx context.Context, req model.IssueTokensRequest, actorID uuid.UUID) ([]model.EnrollmentToken, error)
	List(ctx context.Context, used *bool) ([]model.EnrollmentToken, error)
}

type tokenService struct {
	tokenRepo   repository.TokenRepository
	programRepo repository.ProgramRepository
	generate    func() (string, error)
	logger      *zap.Logger
}

// NewTokenService creates a new TokenService
func NewTokenService(tokenRepo repository.TokenRepository, programRepo repository.ProgramRepository, logger *zap.Logger) TokenService {
	return &tokenService{
		tokenRepo:   tokenRepo,
		programRepo: programRepo,
		generate:    utils.GenerateEnrollmentToken,
		logger:      logger,
	}
}

// Issue generates req.Count fresh tokens for an active program
func (s *tokenService) Issue(ctx context.Context, req model.IssueTokensRequest, actorID uuid.UUID) ([]model.EnrollmentToken, error) {
	programID, err := uuid.Parse(req.ProgramID)
	if err != nil {
		return nil, ErrProgramUnavailable
	}
	program, err := s.programRepo.FindByID(ctx, programID)
	if err != nil {
		return nil, fmt.Errorf("failed to find program: %w", err)
	}
	if program == nil || !program.IsActive {
		return nil, ErrProgramUnavailable
	}

	// A collision rejects the whole batch, so regenerate and retry
	for attempt := 1; attempt <= maxTokenBatchAttempts; attempt++ {
		codes := make([]string, 0, req.Count)
		for i := 0; i < req.Count; i++ {
			code, err := s.generate()
			if err != nil {
				return nil, err
			}
			codes = append(codes, code)
		}

		tokens, err := s.tokenRepo.CreateBatch(ctx, programID, &actorID, codes)
		if err == nil {
			s.logger.Info("Enrollment tokens issued",
				zap.String("program_id", programID.String()),
				zap.Int("count", len(tokens)),
				zap.String("actor_id", actorID.String()),
			)
			return tokens, nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("failed to store tokens: %w", err)
		}
		s.logger.Warn("Enrollment token collision, regenerating batch", zap.Int("attempt", attempt))
	}
	return nil, fmt.Errorf("failed to generate unique tokens after %d attempts", maxTokenBatchAttempts)
}

func (s *tokenService) List(ctx context.Context, used *bool) ([]model.EnrollmentToken, error) {
	tokens, err := s.tokenRepo.List(ctx, used)
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}
	return tokens, nil
}
