package model

import (
	"time"

	"github.com/google/uuid"
)

const DefaultMeetingPlatform = "zoom"

// LiveClassLink is a meeting link posted by an instructor
type LiveClassLink struct {
	ID              uuid.UUID  `json:"id"`
	InstructorID    uuid.UUID  `json:"instructor_id"`
	Title           string     `json:"title"`
	Description     *string    `json:"description,omitempty"`
	LinkURL         string     `json:"link_url"`
	MeetingPlatform string     `json:"meeting_platform"`
	ScheduledTime   *time.Time `json:"scheduled_time,omitempty"`
	Duration        *string    `json:"duration,omitempty"`
	IsActive        bool       `json:"is_active"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type CreateLiveClassRequest struct {
	Title           string     `json:"title" binding:"required"`
	Description     *string    `json:"description"`
	LinkURL         string     `json:"link_url" binding:"required,url"`
	MeetingPlatform *string    `json:"meeting_platform"`
	ScheduledTime   *time.Time `json:"scheduled_time"`
	Duration        *string    `json:"duration"`
	IsActive        *bool      `json:"is_active"`
}

type UpdateLiveClassRequest struct {
	Title           *string    `json:"title,omitempty" binding:"omitempty,min=1"`
	Description     *string    `json:"description,omitempty"`
	LinkURL         *string    `json:"link_url,omitempty" binding:"omitempty,url"`
	MeetingPlatform *string    `json:"meeting_platform,omitempty"`
	ScheduledTime   *time.Time `json:"scheduled_time,omitempty"`
	Duration        *string    `json:"duration,omitempty"`
	IsActive        *bool      `json:"is_active,omitempty"`
}
