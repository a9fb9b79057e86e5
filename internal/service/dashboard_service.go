package service

import (
	"context"
	"fmt"

	"nclex_keys/internal/model"
	"nclex_keys/internal/repository"

	"github.com/google/uuid"
)

// DashboardService assembles the student and instructor dashboards. Nothing is cached.
type DashboardService interface {
	Student(ctx context.Context, userID uuid.UUID) (*model.StudentDashboard, error)
	Instructor(ctx context.Context, userID uuid.UUID) (*model.InstructorDashboard, error)
}

type dashboardService struct {
	userRepo       repository.UserRepository
	enrollmentRepo repository.EnrollmentRepository
	courseRepo     repository.CourseRepository
	progressRepo   repository.ProgressRepository
	programRepo    repository.ProgramRepository
	liveClassRepo  repository.LiveClassRepository
	communityURL   string
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	userRepo repository.UserRepository,
	enrollmentRepo repository.EnrollmentRepository,
	courseRepo repository.CourseRepository,
	progressRepo repository.ProgressRepository,
	programRepo repository.ProgramRepository,
	liveClassRepo repository.LiveClassRepository,
	communityURL string,
) DashboardService {
	return &dashboardService{
		userRepo:       userRepo,
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
		progressRepo:   progressRepo,
		programRepo:    programRepo,
		liveClassRepo:  liveClassRepo,
		communityURL:   communityURL,
	}
}

func (s *dashboardService) Student(ctx context.Context, userID uuid.UUID) (*model.StudentDashboard, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	latest, err := s.enrollmentRepo.FindLatestByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find current enrollment: %w", err)
	}
	unlocked, err := s.enrollmentRepo.UnlockedProgramIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check access: %w", err)
	}

	dashboard := &model.StudentDashboard{
		User:           user,
		Enrollment:     latest,
		PaymentPending: latest != nil && latest.State == model.EnrollmentPending,
		Locked:         len(unlocked) == 0,
		Courses:        []model.CourseView{},
		LiveClasses:    []model.LiveClassLink{},
	}
	if dashboard.Locked {
		return dashboard, nil
	}

	courses, err := s.courseRepo.ListByPrograms(ctx, unlocked)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	completedIDs, err := s.progressRepo.CompletedCourseIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}
	completed := make(map[uuid.UUID]bool, len(completedIDs))
	for _, id := range completedIDs {
		completed[id] = true
	}

	dashboard.Courses = courseViews(courses, completed)
	done := 0
	for _, c := range dashboard.Courses {
		if c.Completed {
			done++
		}
	}
	dashboard.Stats = model.DashboardStats{
		TotalCourses:       len(courses),
		CompletedCourses:   done,
		ProgressPercentage: model.CompletionPercentage(done, len(courses)),
	}

	dashboard.LiveClasses, err = s.liveClassRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list live classes: %w", err)
	}
	dashboard.CommunityURL = s.communityURL
	return dashboard, nil
}

func (s *dashboardService) Instructor(ctx context.Context, userID uuid.UUID) (*model.InstructorDashboard, error) {
	courses, err := s.courseRepo.ListByCreator(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	programs, err := s.programRepo.CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count programs: %w", err)
	}
	students, err := s.enrollmentRepo.CountStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}
	links, err := s.liveClassRepo.ListByInstructor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list live classes: %w", err)
	}

	return &model.InstructorDashboard{
		TotalCourses:  len(courses),
		TotalPrograms: programs,
		TotalStudents: students,
		Courses:       courseViews(courses, nil),
		LiveClasses:   links,
	}, nil
}
