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

var (
	ErrProgramNotFound    = errors.New("program not found")
	ErrProgramUnavailable = errors.New("program does not exist or is not active")
)

// ProgramService manages the purchasable programs
type ProgramService interface {
	ListActive(ctx context.Context) ([]model.Program, error)
	ListAll(ctx context.Context) ([]model.Program, error)
	Create(ctx context.Context, req model.CreateProgramRequest) (*model.Program, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateProgramRequest) (*model.Program, error)
}

type programService struct {
	repo   repository.ProgramRepository
	logger *zap.Logger
}

// NewProgramService creates a new ProgramService
func NewProgramService(repo repository.ProgramRepository, logger *zap.Logger) ProgramService {
	return &programService{repo: repo, logger: logger}
}

func (s *programService) ListActive(ctx context.Context) ([]model.Program, error) {
	programs, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active programs: %w", err)
	}
	return programs, nil
}

func (s *programService) ListAll(ctx context.Context) ([]model.Program, error) {
	programs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}
	return programs, nil
}

func (s *programService) Create(ctx context.Context, req model.CreateProgramRequest) (*model.Program, error) {
	program := &model.Program{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
		Features:    req.Features,
		IsActive:    true,
	}
	if req.IsActive != nil {
		program.IsActive = *req.IsActive
	}
	if err := s.repo.Create(ctx, program); err != nil {
		return nil, fmt.Errorf("failed to create program: %w", err)
	}
	s.logger.Info("Program created", zap.String("program_id", program.ID.String()), zap.String("name", program.Name))
	return program, nil
}

func (s *programService) Update(ctx context.Context, id uuid.UUID, req model.UpdateProgramRequest) (*model.Program, error) {
	program, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find program for update: %w", err)
	}
	if program == nil {
		return nil, ErrProgramNotFound
	}

	if req.Name != nil {
		program.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		program.Description = *req.Description
	}
	if req.Price != nil {
		program.Price = *req.Price
	}
	if req.Duration != nil {
		program.Duration = *req.Duration
	}
	if req.Features != nil {
		program.Features = req.Features
	}
	if req.IsActive != nil {
		program.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, program); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, fmt.Errorf("failed to update program: %w", err)
	}
	return program, nil
}
