package handler

import (
	"context"
	"mime/multipart"
	"time"

	"nclex_keys/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.RegistrationResult, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(*model.RegistrationResult)
	return r, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*model.AuthResult, error) {
	args := m.Called(ctx, email, password)
	r, _ := args.Get(0).(*model.AuthResult)
	return r, args.Error(1)
}

func (m *mockAuthService) Me(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockAuthService) EnsureAdmin(ctx context.Context, email, password, fullName string) (*model.User, error) {
	args := m.Called(ctx, email, password, fullName)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockAuthService) CreateInstructor(ctx context.Context, req model.CreateInstructorRequest) (*model.User, error) {
	args := m.Called(ctx, req)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

type mockEnrollmentService struct{ mock.Mock }

func (m *mockEnrollmentService) Current(ctx context.Context, userID uuid.UUID) (*model.Enrollment, error) {
	args := m.Called(ctx, userID)
	e, _ := args.Get(0).(*model.Enrollment)
	return e, args.Error(1)
}

func (m *mockEnrollmentService) PaymentInstructions(ctx context.Context, userID uuid.UUID) (*model.PaymentInstructions, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*model.PaymentInstructions)
	return p, args.Error(1)
}

func (m *mockEnrollmentService) RedirectFor(ctx context.Context, userID uuid.UUID, role string) (string, error) {
	args := m.Called(ctx, userID, role)
	return args.String(0), args.Error(1)
}

func (m *mockEnrollmentService) List(ctx context.Context, state *model.EnrollmentState) ([]model.Enrollment, error) {
	args := m.Called(ctx, state)
	e, _ := args.Get(0).([]model.Enrollment)
	return e, args.Error(1)
}

func (m *mockEnrollmentService) Transition(ctx context.Context, id uuid.UUID, next model.EnrollmentState, actorID uuid.UUID) (*model.Enrollment, error) {
	args := m.Called(ctx, id, next, actorID)
	e, _ := args.Get(0).(*model.Enrollment)
	return e, args.Error(1)
}

func (m *mockEnrollmentService) PendingOlderThan(ctx context.Context, age time.Duration) ([]model.PendingEnrollmentSummary, error) {
	args := m.Called(ctx, age)
	p, _ := args.Get(0).([]model.PendingEnrollmentSummary)
	return p, args.Error(1)
}

type mockProgramService struct{ mock.Mock }

func (m *mockProgramService) ListActive(ctx context.Context) ([]model.Program, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).([]model.Program)
	return p, args.Error(1)
}

func (m *mockProgramService) ListAll(ctx context.Context) ([]model.Program, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).([]model.Program)
	return p, args.Error(1)
}

func (m *mockProgramService) Create(ctx context.Context, req model.CreateProgramRequest) (*model.Program, error) {
	args := m.Called(ctx, req)
	p, _ := args.Get(0).(*model.Program)
	return p, args.Error(1)
}

func (m *mockProgramService) Update(ctx context.Context, id uuid.UUID, req model.UpdateProgramRequest) (*model.Program, error) {
	args := m.Called(ctx, id, req)
	p, _ := args.Get(0).(*model.Program)
	return p, args.Error(1)
}

type mockTokenService struct{ mock.Mock }

func (m *mockTokenService) Issue(ctx context.Context, req model.IssueTokensRequest, actorID uuid.UUID) ([]model.EnrollmentToken, error) {
	args := m.Called(ctx, req, actorID)
	t, _ := args.Get(0).([]model.EnrollmentToken)
	return t, args.Error(1)
}

func (m *mockTokenService) List(ctx context.Context, used *bool) ([]model.EnrollmentToken, error) {
	args := m.Called(ctx, used)
	t, _ := args.Get(0).([]model.EnrollmentToken)
	return t, args.Error(1)
}

type mockCourseService struct{ mock.Mock }

func (m *mockCourseService) Create(ctx context.Context, actorID uuid.UUID, req model.CreateCourseRequest) (*model.Course, error) {
	args := m.Called(ctx, actorID, req)
	c, _ := args.Get(0).(*model.Course)
	return c, args.Error(1)
}

func (m *mockCourseService) Update(ctx context.Context, id, actorID uuid.UUID, role string, req model.UpdateCourseRequest) (*model.Course, error) {
	args := m.Called(ctx, id, actorID, role, req)
	c, _ := args.Get(0).(*model.Course)
	return c, args.Error(1)
}

func (m *mockCourseService) Delete(ctx context.Context, id, actorID uuid.UUID, role string) error {
	return m.Called(ctx, id, actorID, role).Error(0)
}

func (m *mockCourseService) Get(ctx context.Context, id, userID uuid.UUID, role string) (*model.CourseView, error) {
	args := m.Called(ctx, id, userID, role)
	c, _ := args.Get(0).(*model.CourseView)
	return c, args.Error(1)
}

func (m *mockCourseService) ListMine(ctx context.Context, actorID uuid.UUID) ([]model.CourseView, error) {
	args := m.Called(ctx, actorID)
	c, _ := args.Get(0).([]model.CourseView)
	return c, args.Error(1)
}

func (m *mockCourseService) UploadMedia(ctx context.Context, id, actorID uuid.UUID, role string, kind model.MediaKind, file *multipart.FileHeader) (*model.Course, error) {
	args := m.Called(ctx, id, actorID, role, kind, file)
	c, _ := args.Get(0).(*model.Course)
	return c, args.Error(1)
}

type mockDashboardService struct{ mock.Mock }

func (m *mockDashboardService) Student(ctx context.Context, userID uuid.UUID) (*model.StudentDashboard, error) {
	args := m.Called(ctx, userID)
	d, _ := args.Get(0).(*model.StudentDashboard)
	return d, args.Error(1)
}

func (m *mockDashboardService) Instructor(ctx context.Context, userID uuid.UUID) (*model.InstructorDashboard, error) {
	args := m.Called(ctx, userID)
	d, _ := args.Get(0).(*model.InstructorDashboard)
	return d, args.Error(1)
}

type mockProgressService struct{ mock.Mock }

func (m *mockProgressService) Toggle(ctx context.Context, userID, courseID uuid.UUID) (*model.UserProgress, error) {
	args := m.Called(ctx, userID, courseID)
	p, _ := args.Get(0).(*model.UserProgress)
	return p, args.Error(1)
}

type mockLiveClassService struct{ mock.Mock }

func (m *mockLiveClassService) Create(ctx context.Context, instructorID uuid.UUID, req model.CreateLiveClassRequest) (*model.LiveClassLink, error) {
	args := m.Called(ctx, instructorID, req)
	l, _ := args.Get(0).(*model.LiveClassLink)
	return l, args.Error(1)
}

func (m *mockLiveClassService) Update(ctx context.Context, id, instructorID uuid.UUID, req model.UpdateLiveClassRequest) (*model.LiveClassLink, error) {
	args := m.Called(ctx, id, instructorID, req)
	l, _ := args.Get(0).(*model.LiveClassLink)
	return l, args.Error(1)
}

func (m *mockLiveClassService) Delete(ctx context.Context, id, instructorID uuid.UUID) error {
	return m.Called(ctx, id, instructorID).Error(0)
}

func (m *mockLiveClassService) Toggle(ctx context.Context, id, instructorID uuid.UUID) (*model.LiveClassLink, error) {
	args := m.Called(ctx, id, instructorID)
	l, _ := args.Get(0).(*model.LiveClassLink)
	return l, args.Error(1)
}

func (m *mockLiveClassService) ListMine(ctx context.Context, instructorID uuid.UUID) ([]model.LiveClassLink, error) {
	args := m.Called(ctx, instructorID)
	l, _ := args.Get(0).([]model.LiveClassLink)
	return l, args.Error(1)
}

func (m *mockLiveClassService) ListActive(ctx context.Context, userID uuid.UUID, role string) ([]model.LiveClassLink, error) {
	args := m.Called(ctx, userID, role)
	l, _ := args.Get(0).([]model.LiveClassLink)
	return l, args.Error(1)
}
