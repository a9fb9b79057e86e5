package model

import (
	"time"

	"github.com/google/uuid"
)

// EnrollmentToken is a single-use code that lets a paying student register for a program
type EnrollmentToken struct {
	ID        uuid.UUID  `json:"id"`
	Token     string     `json:"token"`
	ProgramID uuid.UUID  `json:"program_id"`
	IsUsed    bool       `json:"is_used"`
	UsedBy    *uuid.UUID `json:"used_by,omitempty"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	CreatedBy *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Redeemable reports whether the token can still be consumed
func (t *EnrollmentToken) Redeemable() bool {
	return t != nil && !t.IsUsed
}

type IssueTokensRequest struct {
	ProgramID string `json:"program_id" binding:"required,uuid"`
	Count     int    `json:"count" binding:"required,min=1,max=100"`
}
