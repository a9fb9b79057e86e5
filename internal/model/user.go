package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

// Navigation targets handed back to the client after auth calls
const (
	PathLogin               = "/login"
	PathDashboard           = "/dashboard"
	PathInstructorDashboard = "/dashboard/instructor"
	PathVerifyPayment       = "/verify-payment"
)

// User represents an account on the platform
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	PhoneNumber  *string   `json:"phone_number,omitempty"`
	PasswordHash string    `json:"-"` // Do not expose password hash in JSON responses
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsStaff reports whether the user authors content (instructors and admins)
func (u *User) IsStaff() bool {
	return u.Role == RoleInstructor || u.Role == RoleAdmin
}

// RegisterRequest is the student sign-up form. Password rules are checked by the auth service.
type RegisterRequest struct {
	FullName        string `json:"full_name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	PhoneNumber     string `json:"phone_number" binding:"required"`
	EnrollmentToken string `json:"enrollment_token" binding:"required,enrollment_token"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateInstructorRequest is used by admins to open instructor accounts
type CreateInstructorRequest struct {
	FullName    string  `json:"full_name" binding:"required"`
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,min=6"`
	PhoneNumber *string `json:"phone_number"`
}

// AuthResult is returned after a successful login
type AuthResult struct {
	User       *User  `json:"user"`
	Token      string `json:"token"`
	RedirectTo string `json:"redirect_to"`
}
