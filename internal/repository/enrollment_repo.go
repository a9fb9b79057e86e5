package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nclex_keys/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// EnrollmentRepository defines operations for enrollments and token redemption
type EnrollmentRepository interface {
	RegisterWithToken(ctx context.Context, user *model.User, token string) (*model.Enrollment, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Enrollment, error)
	FindLatestByUser(ctx context.Context, userID uuid.UUID) (*model.Enrollment, error)
	ListByState(ctx context.Context, state *model.EnrollmentState) ([]model.Enrollment, error)
	Transition(ctx context.Context, id uuid.UUID, next model.EnrollmentState, from []model.EnrollmentState, actorID *uuid.UUID) (*model.Enrollment, error)
	UnlockedProgramIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	CountStudents(ctx context.Context) (int, error)
	ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]model.PendingEnrollmentSummary, error)
}

type enrollmentRepository struct {
	db DB
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

const enrollmentColumns = `e.id, e.user_id, e.program_id, e.state, e.enrolled_at, e.verified_at, e.verified_by, e.updated_at`

const enrollmentWithProgramColumns = enrollmentColumns +
	`, p.id, p.name, p.description, p.price, p.duration, p.features, p.is_active, p.created_at`

func scanEnrollment(row pgx.Row, e *model.Enrollment) error {
	return row.Scan(&e.ID, &e.UserID, &e.ProgramID, &e.State, &e.EnrolledAt, &e.VerifiedAt, &e.VerifiedBy, &e.UpdatedAt)
}

func scanEnrollmentWithProgram(row pgx.Row, e *model.Enrollment) error {
	p := &model.Program{}
	err := row.Scan(
		&e.ID, &e.UserID, &e.ProgramID, &e.State, &e.EnrolledAt, &e.VerifiedAt, &e.VerifiedBy, &e.UpdatedAt,
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Duration, &p.Features, &p.IsActive, &p.CreatedAt,
	)
	if err != nil {
		return err
	}
	e.Program = p
	return nil
}

// RegisterWithToken creates the student, consumes the token and opens a pending enrollment
// in one transaction. Nothing is persisted unless every step succeeds.
func (r *enrollmentRepository) RegisterWithToken(ctx context.Context, user *model.User, token string) (*model.Enrollment, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := insertUser(ctx, tx, user); err != nil {
		return nil, err
	}

	// A concurrent redemption leaves is_used = true, so only one caller gets the row back
	var programID uuid.UUID
	consumeSQL := `UPDATE enrollment_tokens
                   SET is_used = TRUE, used_by = $1, used_at = NOW()
                   WHERE token = $2 AND is_used = FALSE
                   RETURNING program_id`
	if err := tx.QueryRow(ctx, consumeSQL, user.ID, token).Scan(&programID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTokenUnavailable
		}
		return nil, fmt.Errorf("failed to consume enrollment token: %w", err)
	}

	var active bool
	if err := tx.QueryRow(ctx, `SELECT is_active FROM programs WHERE id = $1`, programID).Scan(&active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProgramInactive
		}
		return nil, fmt.Errorf("failed to check program: %w", err)
	}
	if !active {
		return nil, ErrProgramInactive
	}

	enrollment := &model.Enrollment{UserID: user.ID, ProgramID: programID}
	insertSQL := `INSERT INTO enrollments (user_id, program_id, state)
                  VALUES ($1, $2, $3)
                  RETURNING id, state, enrolled_at, updated_at`
	err = tx.QueryRow(ctx, insertSQL, user.ID, programID, string(model.EnrollmentPending)).
		Scan(&enrollment.ID, &enrollment.State, &enrollment.EnrolledAt, &enrollment.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return enrollment, nil
}

// FindByID retrieves an enrollment with its program
func (r *enrollmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Enrollment, error) {
	e := &model.Enrollment{}
	sql := `SELECT ` + enrollmentWithProgramColumns + `
            FROM enrollments e JOIN programs p ON p.id = e.program_id
            WHERE e.id = $1`
	if err := scanEnrollmentWithProgram(r.db.QueryRow(ctx, sql, id), e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find enrollment by ID: %w", err)
	}
	return e, nil
}

// FindLatestByUser returns the user's most recent enrollment with its program
func (r *enrollmentRepository) FindLatestByUser(ctx context.Context, userID uuid.UUID) (*model.Enrollment, error) {
	e := &model.Enrollment{}
	sql := `SELECT ` + enrollmentWithProgramColumns + `
            FROM enrollments e JOIN programs p ON p.id = e.program_id
            WHERE e.user_id = $1
            ORDER BY e.enrolled_at DESC
            LIMIT 1`
	if err := scanEnrollmentWithProgram(r.db.QueryRow(ctx, sql, userID), e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find latest enrollment: %w", err)
	}
	return e, nil
}

// ListByState lists enrollments oldest first, optionally restricted to one state
func (r *enrollmentRepository) ListByState(ctx context.Context, state *model.EnrollmentState) ([]model.Enrollment, error) {
	sql := `SELECT ` + enrollmentWithProgramColumns + `
            FROM enrollments e JOIN programs p ON p.id = e.program_id`
	var args []any
	if state != nil {
		sql += ` WHERE e.state = $1`
		args = append(args, string(*state))
	}
	sql += ` ORDER BY e.enrolled_at ASC`

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := []model.Enrollment{}
	for rows.Next() {
		var e model.Enrollment
		if err := scanEnrollmentWithProgram(rows, &e); err != nil {
			return nil, fmt.Errorf("failed to scan enrollment row: %w", err)
		}
		enrollments = append(enrollments, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating enrollment rows: %w", err)
	}
	return enrollments, nil
}

// Transition moves the enrollment to next only if it is currently in one of the from states.
// ErrNoTransition is returned when the row is missing or in another state.
func (r *enrollmentRepository) Transition(ctx context.Context, id uuid.UUID, next model.EnrollmentState, from []model.EnrollmentState, actorID *uuid.UUID) (*model.Enrollment, error) {
	allowed := make([]string, len(from))
	for i, s := range from {
		allowed[i] = string(s)
	}

	sql := `UPDATE enrollments e
            SET state = $1::text,
                verified_at = CASE WHEN $1::text = 'verified' THEN NOW() ELSE e.verified_at END,
                verified_by = CASE WHEN $1::text = 'verified' THEN $2 ELSE e.verified_by END
            WHERE e.id = $3 AND e.state = ANY($4::text[])
            RETURNING ` + enrollmentColumns

	e := &model.Enrollment{}
	if err := scanEnrollment(r.db.QueryRow(ctx, sql, string(next), actorID, id, allowed), e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoTransition
		}
		return nil, fmt.Errorf("failed to transition enrollment: %w", err)
	}
	return e, nil
}

// UnlockedProgramIDs returns the programs whose content the user may access
func (r *enrollmentRepository) UnlockedProgramIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	sql := `SELECT DISTINCT program_id FROM enrollments
            WHERE user_id = $1 AND state IN ('verified', 'completed')`
	rows, err := r.db.Query(ctx, sql, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query unlocked programs: %w", err)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan program ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating program IDs: %w", err)
	}
	return ids, nil
}

// CountStudents counts distinct users holding a verified or completed enrollment
func (r *enrollmentRepository) CountStudents(ctx context.Context) (int, error) {
	var count int
	sql := `SELECT COUNT(DISTINCT user_id) FROM enrollments WHERE state IN ('verified', 'completed')`
	if err := r.db.QueryRow(ctx, sql).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count students: %w", err)
	}
	return count, nil
}

// ListPendingOlderThan lists pending enrollments created before cutoff, oldest first
func (r *enrollmentRepository) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]model.PendingEnrollmentSummary, error) {
	sql := `SELECT e.id, u.full_name, u.email, u.phone_number, p.name, e.enrolled_at
            FROM enrollments e
            JOIN users u ON u.id = e.user_id
            JOIN programs p ON p.id = e.program_id
            WHERE e.state = 'pending' AND e.enrolled_at < $1
            ORDER BY e.enrolled_at ASC`
	rows, err := r.db.Query(ctx, sql, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending enrollments: %w", err)
	}
	defer rows.Close()

	summaries := []model.PendingEnrollmentSummary{}
	for rows.Next() {
		var s model.PendingEnrollmentSummary
		if err := rows.Scan(&s.EnrollmentID, &s.FullName, &s.Email, &s.PhoneNumber, &s.ProgramName, &s.EnrolledAt); err != nil {
			return nil, fmt.Errorf("failed to scan pending enrollment row: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pending enrollment rows: %w", err)
	}
	return summaries, nil
}
