package model

import "math"

// DashboardStats summarises a student's progress
type DashboardStats struct {
	TotalCourses       int `json:"total_courses"`
	CompletedCourses   int `json:"completed_courses"`
	ProgressPercentage int `json:"progress_percentage"`
}

// CompletionPercentage returns round(completed/total*100), or 0 when there is nothing to complete
func CompletionPercentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

type StudentDashboard struct {
	User           *User           `json:"user"`
	Enrollment     *Enrollment     `json:"enrollment,omitempty"`
	PaymentPending bool            `json:"payment_pending"`
	Locked         bool            `json:"locked"`
	Stats          DashboardStats  `json:"stats"`
	Courses        []CourseView    `json:"courses"`
	LiveClasses    []LiveClassLink `json:"live_classes"`
	CommunityURL   string          `json:"community_url,omitempty"`
}

type InstructorDashboard struct {
	TotalCourses  int             `json:"total_courses"`
	TotalPrograms int             `json:"total_programs"`
	TotalStudents int             `json:"total_students"`
	Courses       []CourseView    `json:"courses"`
	LiveClasses   []LiveClassLink `json:"live_classes"`
}

// PaymentInstructions drives the verify-payment page
type PaymentInstructions struct {
	Enrollment  *Enrollment `json:"enrollment,omitempty"`
	ProgramName string      `json:"program_name,omitempty"`
	Price       int64       `json:"price"`
	Message     string      `json:"message"`
	WhatsAppURL string      `json:"whatsapp_url"`
	Verified    bool        `json:"verified"`
	RedirectTo  string      `json:"redirect_to,omitempty"`
}
