package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MaterialVideo = "Video"
	MaterialPDF   = "PDF"
	MaterialFile  = "File"
)

// Course belongs to a program and carries optional video and material links
type Course struct {
	ID           uuid.UUID  `json:"id"`
	ProgramID    uuid.UUID  `json:"program_id"`
	CreatedBy    *uuid.UUID `json:"created_by,omitempty"`
	Title        string     `json:"title"`
	Description  *string    `json:"description,omitempty"`
	VideoURL     *string    `json:"video_url,omitempty"`
	MaterialsURL *string    `json:"materials_url,omitempty"`
	OrderIndex   int        `json:"order_index"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// MaterialLabel derives a display label from a material link.
// An empty link has no label.
func MaterialLabel(url string) string {
	if url == "" {
		return ""
	}
	if strings.Contains(url, "youtube.com") || strings.Contains(url, "vimeo.com") {
		return MaterialVideo
	}
	if strings.Contains(url, ".pdf") {
		return MaterialPDF
	}
	return MaterialFile
}

// CourseView is a course as shown on dashboards
type CourseView struct {
	Course
	MaterialType string `json:"material_type,omitempty"`
	Completed    bool   `json:"completed"`
}

// NewCourseView labels a course for display
func NewCourseView(c Course, completed bool) CourseView {
	var materials string
	if c.MaterialsURL != nil {
		materials = *c.MaterialsURL
	}
	return CourseView{Course: c, MaterialType: MaterialLabel(materials), Completed: completed}
}

type CreateCourseRequest struct {
	ProgramID    string  `json:"program_id" binding:"required,uuid"`
	Title        string  `json:"title" binding:"required"`
	Description  *string `json:"description"`
	VideoURL     *string `json:"video_url" binding:"omitempty,url"`
	MaterialsURL *string `json:"materials_url" binding:"omitempty,url"`
	OrderIndex   int     `json:"order_index" binding:"gte=0"`
}

type UpdateCourseRequest struct {
	ProgramID    *string `json:"program_id,omitempty" binding:"omitempty,uuid"`
	Title        *string `json:"title,omitempty" binding:"omitempty,min=1"`
	Description  *string `json:"description,omitempty"`
	VideoURL     *string `json:"video_url,omitempty" binding:"omitempty,url"`
	MaterialsURL *string `json:"materials_url,omitempty" binding:"omitempty,url"`
	OrderIndex   *int    `json:"order_index,omitempty" binding:"omitempty,gte=0"`
}

// MediaKind selects which course link an upload replaces
type MediaKind string

const (
	MediaVideo     MediaKind = "video"
	MediaMaterials MediaKind = "materials"
)
