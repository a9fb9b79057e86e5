package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EnrollmentState is the single source of truth for an enrollment's lifecycle.
// Payment verification is a state, not a separate flag.
type EnrollmentState string

const (
	EnrollmentPending   EnrollmentState = "pending"   // Registered, waiting for staff to confirm payment
	EnrollmentVerified  EnrollmentState = "verified"  // Payment confirmed, content unlocked
	EnrollmentCompleted EnrollmentState = "completed" // Program finished
	EnrollmentCancelled EnrollmentState = "cancelled"
)

var enrollmentTransitions = map[EnrollmentState][]EnrollmentState{
	EnrollmentPending:  {EnrollmentVerified, EnrollmentCancelled},
	EnrollmentVerified: {EnrollmentCompleted, EnrollmentCancelled},
}

// Valid reports whether s is one of the known states
func (s EnrollmentState) Valid() bool {
	switch s {
	case EnrollmentPending, EnrollmentVerified, EnrollmentCompleted, EnrollmentCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether moving from s to next is allowed
func (s EnrollmentState) CanTransitionTo(next EnrollmentState) bool {
	for _, allowed := range enrollmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Status is the public status label: verified enrollments are reported as "active".
func (s EnrollmentState) Status() string {
	if s == EnrollmentVerified {
		return "active"
	}
	return string(s)
}

// PaymentVerified is true once staff confirmed the payment
func (s EnrollmentState) PaymentVerified() bool {
	return s == EnrollmentVerified || s == EnrollmentCompleted
}

// Unlocked reports whether course content is available to the student
func (s EnrollmentState) Unlocked() bool {
	return s.PaymentVerified()
}

var enrollmentStates = []EnrollmentState{
	EnrollmentPending, EnrollmentVerified, EnrollmentCompleted, EnrollmentCancelled,
}

// SourcesFor returns every state from which next can be reached, in declaration order
func SourcesFor(next EnrollmentState) []EnrollmentState {
	var sources []EnrollmentState
	for _, from := range enrollmentStates {
		if from.CanTransitionTo(next) {
			sources = append(sources, from)
		}
	}
	return sources
}

// Enrollment links a user to a program
type Enrollment struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"user_id"`
	ProgramID  uuid.UUID       `json:"program_id"`
	State      EnrollmentState `json:"state"`
	EnrolledAt time.Time       `json:"enrolled_at"`
	VerifiedAt *time.Time      `json:"verified_at,omitempty"`
	VerifiedBy *uuid.UUID      `json:"verified_by,omitempty"`
	UpdatedAt  time.Time       `json:"updated_at"`

	Program *Program `json:"program,omitempty"` // Not a column, filled by joins
}

// MarshalJSON adds the derived status and payment_verified fields
func (e Enrollment) MarshalJSON() ([]byte, error) {
	type alias Enrollment
	return json.Marshal(struct {
		alias
		Status          string `json:"status"`
		PaymentVerified bool   `json:"payment_verified"`
	}{
		alias:           alias(e),
		Status:          e.State.Status(),
		PaymentVerified: e.State.PaymentVerified(),
	})
}

// PendingEnrollmentSummary is one line of the staff verification digest
type PendingEnrollmentSummary struct {
	EnrollmentID uuid.UUID `json:"enrollment_id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PhoneNumber  *string   `json:"phone_number,omitempty"`
	ProgramName  string    `json:"program_name"`
	EnrolledAt   time.Time `json:"enrolled_at"`
}

// RegistrationResult is returned after a successful token redemption
type RegistrationResult struct {
	User       *User       `json:"user"`
	Enrollment *Enrollment `json:"enrollment"`
	Token      string      `json:"token"`
	RedirectTo string      `json:"redirect_to"`
}
