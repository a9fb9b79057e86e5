package service

import "nclex_keys/internal/model"

// redirectFor picks the landing page for a signed-in user.
// Staff go to the instructor dashboard, students with a pending payment to the verification page.
func redirectFor(role string, latest *model.Enrollment) string {
	if role == model.RoleInstructor || role == model.RoleAdmin {
		return model.PathInstructorDashboard
	}
	if latest != nil && latest.State == model.EnrollmentPending {
		return model.PathVerifyPayment
	}
	return model.PathDashboard
}
