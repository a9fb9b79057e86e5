package repository

import (
	"context"
	"errors"
	"fmt"

	"nclex_keys/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TokenRepository defines operations for enrollment tokens
type TokenRepository interface {
	CreateBatch(ctx context.Context, programID uuid.UUID, createdBy *uuid.UUID, tokens []string) ([]model.EnrollmentToken, error)
	FindByToken(ctx context.Context, token string) (*model.EnrollmentToken, error)
	List(ctx context.Context, used *bool) ([]model.EnrollmentToken, error)
}

type tokenRepository struct {
	db DB
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db DB) TokenRepository {
	return &tokenRepository{db: db}
}

const tokenColumns = `id, token, program_id, is_used, used_by, used_at, created_by, created_at`

func scanToken(row pgx.Row, t *model.EnrollmentToken) error {
	return row.Scan(&t.ID, &t.Token, &t.ProgramID, &t.IsUsed, &t.UsedBy, &t.UsedAt, &t.CreatedBy, &t.CreatedAt)
}

// CreateBatch inserts all tokens for the program in a single statement
func (r *tokenRepository) CreateBatch(ctx context.Context, programID uuid.UUID, createdBy *uuid.UUID, tokens []string) ([]model.EnrollmentToken, error) {
	sql := `INSERT INTO enrollment_tokens (token, program_id, created_by)
            SELECT unnest($1::text[]), $2, $3
            RETURNING ` + tokenColumns
	rows, err := r.db.Query(ctx, sql, tokens, programID, createdBy)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create enrollment tokens: %w", err)
	}
	defer rows.Close()

	created := make([]model.EnrollmentToken, 0, len(tokens))
	for rows.Next() {
		var t model.EnrollmentToken
		if err := scanToken(rows, &t); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment token row: %w", err)
		}
		created = append(created, t)
	}
	if err = rows.Err(); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("error iterating enrollment token rows: %w", err)
	}
	return created, nil
}

// FindByToken looks up a token by its code
func (r *tokenRepository) FindByToken(ctx context.Context, token string) (*model.EnrollmentToken, error) {
	t := &model.EnrollmentToken{}
	sql := `SELECT ` + tokenColumns + ` FROM enrollment_tokens WHERE token = $1`
	if err := scanToken(r.db.QueryRow(ctx, sql, token), t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find enrollment token: %w", err)
	}
	return t, nil
}

// List returns tokens, newest first, optionally filtered by whether they were used
func (r *tokenRepository) List(ctx context.Context, used *bool) ([]model.EnrollmentToken, error) {
	sql := `SELECT ` + tokenColumns + ` FROM enrollment_tokens`
	var args []any
	if used != nil {
		sql += ` WHERE is_used = $1`
		args = append(args, *used)
	}
	sql += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollment tokens: %w", err)
	}
	defer rows.Close()

	tokens := []model.EnrollmentToken{}
	for rows.Next() {
		var t model.EnrollmentToken
		if err := scanToken(rows, &t); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment token row: %w", err)
		}
		tokens = append(tokens, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating enrollment token rows: %w", err)
	}
	return tokens, nil
}
