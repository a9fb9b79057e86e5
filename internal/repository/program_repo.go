package repository

import (
	"context"
	"errors"
	"fmt"

	"nclex_keys/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProgramRepository defines operations for program data
type ProgramRepository interface {
	Create(ctx context.Context, program *model.Program) error
	Update(ctx context.Context, program *model.Program) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Program, error)
	ListActive(ctx context.Context) ([]model.Program, error)
	ListAll(ctx context.Context) ([]model.Program, error)
	CountActive(ctx context.Context) (int, error)
}

type programRepository struct {
	db DB
}

// NewProgramRepository creates a new ProgramRepository
func NewProgramRepository(db DB) ProgramRepository {
	return &programRepository{db: db}
}

const programColumns = `id, name, description, price, duration, features, is_active, created_at`

func scanProgram(row pgx.Row, p *model.Program) error {
	return row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Duration, &p.Features, &p.IsActive, &p.CreatedAt)
}

// Create inserts a new program
func (r *programRepository) Create(ctx context.Context, p *model.Program) error {
	if p.Features == nil {
		p.Features = []string{}
	}
	sql := `INSERT INTO programs (name, description, price, duration, features, is_active)
            VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	err := r.db.QueryRow(ctx, sql, p.Name, p.Description, p.Price, p.Duration, p.Features, p.IsActive).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create program: %w", err)
	}
	return nil
}

// Update overwrites every editable column of the program
func (r *programRepository) Update(ctx context.Context, p *model.Program) error {
	if p.Features == nil {
		p.Features = []string{}
	}
	sql := `UPDATE programs
            SET name = $1, description = $2, price = $3, duration = $4, features = $5, is_active = $6
            WHERE id = $7 RETURNING created_at`
	err := r.db.QueryRow(ctx, sql, p.Name, p.Description, p.Price, p.Duration, p.Features, p.IsActive, p.ID).
		Scan(&p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update program: %w", err)
	}
	return nil
}

// FindByID retrieves a program by its ID
func (r *programRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Program, error) {
	p := &model.Program{}
	sql := `SELECT ` + programColumns + ` FROM programs WHERE id = $1`
	if err := scanProgram(r.db.QueryRow(ctx, sql, id), p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find program by ID: %w", err)
	}
	return p, nil
}

// ListActive returns the programs open for enrollment, cheapest first
func (r *programRepository) ListActive(ctx context.Context) ([]model.Program, error) {
	return r.list(ctx, `SELECT `+programColumns+` FROM programs WHERE is_active = TRUE ORDER BY price ASC, name ASC`)
}

// ListAll returns every program, including retired ones
func (r *programRepository) ListAll(ctx context.Context) ([]model.Program, error) {
	return r.list(ctx, `SELECT `+programColumns+` FROM programs ORDER BY created_at DESC`)
}

func (r *programRepository) list(ctx context.Context, sql string, args ...any) ([]model.Program, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query programs: %w", err)
	}
	defer rows.Close()

	programs := []model.Program{}
	for rows.Next() {
		var p model.Program
		if err := scanProgram(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan program row: %w", err)
		}
		programs = append(programs, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating program rows: %w", err)
	}
	return programs, nil
}

// CountActive returns how many programs are active
func (r *programRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	sql := `SELECT COUNT(*) FROM programs WHERE is_active = TRUE`
	if err := r.db.QueryRow(ctx, sql).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active programs: %w", err)
	}
	return count, nil
}
