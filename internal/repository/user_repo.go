package repository

import (
	"context"
	"errors"
	"fmt"

	"nclex_keys/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserRepository defines operations for user data
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpsertAdmin(ctx context.Context, user *model.User) error
}

type userRepository struct {
	db DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, full_name, role, phone_number, password_hash, created_at, updated_at`

func scanUser(row pgx.Row, u *model.User) error {
	return row.Scan(&u.ID, &u.Email, &u.FullName, &u.Role, &u.PhoneNumber, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
}

// insertUser is shared with the registration transaction
func insertUser(ctx context.Context, q Querier, user *model.User) error {
	sql := `INSERT INTO users (email, full_name, role, phone_number, password_hash)
            VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at`
	err := q.QueryRow(ctx, sql, user.Email, user.FullName, user.Role, user.PhoneNumber, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return insertUser(ctx, r.db, user)
}

// FindByEmail retrieves a user by their email address
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	if err := scanUser(r.db.QueryRow(ctx, sql, email), user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found, the service layer decides what it means
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

// FindByID retrieves a user by their ID
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user := &model.User{}
	sql := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if err := scanUser(r.db.QueryRow(ctx, sql, id), user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return user, nil
}

// UpsertAdmin creates the account or promotes an existing one with the same email to admin
func (r *userRepository) UpsertAdmin(ctx context.Context, user *model.User) error {
	sql := `INSERT INTO users (email, full_name, role, phone_number, password_hash)
            VALUES ($1, $2, 'admin', $3, $4)
            ON CONFLICT (email) DO UPDATE
            SET role = 'admin', full_name = EXCLUDED.full_name, password_hash = EXCLUDED.password_hash
            RETURNING id, role, created_at, updated_at`
	err := r.db.QueryRow(ctx, sql, user.Email, user.FullName, user.PhoneNumber, user.PasswordHash).
		Scan(&user.ID, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert admin user: %w", err)
	}
	return nil
}
