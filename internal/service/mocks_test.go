package service

import (
	"context"
	"sync"
	"time"

	"nclex_keys/internal/model"
	"nclex_keys/internal/notify"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) UpsertAdmin(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

type mockTokenRepo struct{ mock.Mock }

func (m *mockTokenRepo) CreateBatch(ctx context.Context, programID uuid.UUID, createdBy *uuid.UUID, tokens []string) ([]model.EnrollmentToken, error) {
	args := m.Called(ctx, programID, createdBy, tokens)
	t, _ := args.Get(0).([]model.EnrollmentToken)
	return t, args.Error(1)
}

func (m *mockTokenRepo) FindByToken(ctx context.Context, token string) (*model.EnrollmentToken, error) {
	args := m.Called(ctx, token)
	t, _ := args.Get(0).(*model.EnrollmentToken)
	return t, args.Error(1)
}

func (m *mockTokenRepo) List(ctx context.Context, used *bool) ([]model.EnrollmentToken, error) {
	args := m.Called(ctx, used)
	t, _ := args.Get(0).([]model.EnrollmentToken)
	return t, args.Error(1)
}

type mockProgramRepo struct{ mock.Mock }

func (m *mockProgramRepo) Create(ctx context.Context, program *model.Program) error {
	return m.Called(ctx, program).Error(0)
}

func (m *mockProgramRepo) Update(ctx context.Context, program *model.Program) error {
	return m.Called(ctx, program).Error(0)
}

func (m *mockProgramRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Program, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Program)
	return p, args.Error(1)
}

func (m *mockProgramRepo) ListActive(ctx context.Context) ([]model.Program, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).([]model.Program)
	return p, args.Error(1)
}

func (m *mockProgramRepo) ListAll(ctx context.Context) ([]model.Program, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).([]model.Program)
	return p, args.Error(1)
}

func (m *mockProgramRepo) CountActive(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type mockEnrollmentRepo struct{ mock.Mock }

func (m *mockEnrollmentRepo) RegisterWithToken(ctx context.Context, user *model.User, token string) (*model.Enrollment, error) {
	args := m.Called(ctx, user, token)
	e, _ := args.Get(0).(*model.Enrollment)
	return e, args.Error(1)
}

func (m *mockEnrollmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Enrollment, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(*model.Enrollment)
	return e, args.Error(1)
}

func (m *mockEnrollmentRepo) FindLatestByUser(ctx context.Context, userID uuid.UUID) (*model.Enrollment, error) {
	args := m.Called(ctx, userID)
	e, _ := args.Get(0).(*model.Enrollment)
	return e, args.Error(1)
}

func (m *mockEnrollmentRepo) ListByState(ctx context.Context, state *model.EnrollmentState) ([]model.Enrollment, error) {
	args := m.Called(ctx, state)
	e, _ := args.Get(0).([]model.Enrollment)
	return e, args.Error(1)
}

func (m *mockEnrollmentRepo) Transition(ctx context.Context, id uuid.UUID, next model.EnrollmentState, from []model.EnrollmentState, actorID *uuid.UUID) (*model.Enrollment, error) {
	args := m.Called(ctx, id, next, from, actorID)
	e, _ := args.Get(0).(*model.Enrollment)
	return e, args.Error(1)
}

func (m *mockEnrollmentRepo) UnlockedProgramIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID)
	ids, _ := args.Get(0).([]uuid.UUID)
	return ids, args.Error(1)
}

func (m *mockEnrollmentRepo) CountStudents(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockEnrollmentRepo) ListPendingOlderThan(ctx context.Context, cutoff time.Time) ([]model.PendingEnrollmentSummary, error) {
	args := m.Called(ctx, cutoff)
	p, _ := args.Get(0).([]model.PendingEnrollmentSummary)
	return p, args.Error(1)
}

type mockCourseRepo struct{ mock.Mock }

func (m *mockCourseRepo) Create(ctx context.Context, course *model.Course) error {
	return m.Called(ctx, course).Error(0)
}

func (m *mockCourseRepo) Update(ctx context.Context, course *model.Course) error {
	return m.Called(ctx, course).Error(0)
}

func (m *mockCourseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCourseRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*model.Course)
	return c, args.Error(1)
}

func (m *mockCourseRepo) ListByPrograms(ctx context.Context, programIDs []uuid.UUID) ([]model.Course, error) {
	args := m.Called(ctx, programIDs)
	c, _ := args.Get(0).([]model.Course)
	return c, args.Error(1)
}

func (m *mockCourseRepo) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]model.Course, error) {
	args := m.Called(ctx, creatorID)
	c, _ := args.Get(0).([]model.Course)
	return c, args.Error(1)
}

func (m *mockCourseRepo) SetMediaURL(ctx context.Context, id uuid.UUID, kind model.MediaKind, url string) (*model.Course, error) {
	args := m.Called(ctx, id, kind, url)
	c, _ := args.Get(0).(*model.Course)
	return c, args.Error(1)
}

type mockProgressRepo struct{ mock.Mock }

func (m *mockProgressRepo) Toggle(ctx context.Context, userID, courseID uuid.UUID) (*model.UserProgress, error) {
	args := m.Called(ctx, userID, courseID)
	p, _ := args.Get(0).(*model.UserProgress)
	return p, args.Error(1)
}

func (m *mockProgressRepo) CompletedCourseIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID)
	ids, _ := args.Get(0).([]uuid.UUID)
	return ids, args.Error(1)
}

type mockLiveClassRepo struct{ mock.Mock }

func (m *mockLiveClassRepo) Create(ctx context.Context, link *model.LiveClassLink) error {
	return m.Called(ctx, link).Error(0)
}

func (m *mockLiveClassRepo) Update(ctx context.Context, link *model.LiveClassLink) error {
	return m.Called(ctx, link).Error(0)
}

func (m *mockLiveClassRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.LiveClassLink, error) {
	args := m.Called(ctx, id)
	l, _ := args.Get(0).(*model.LiveClassLink)
	return l, args.Error(1)
}

func (m *mockLiveClassRepo) Delete(ctx context.Context, id, instructorID uuid.UUID) error {
	return m.Called(ctx, id, instructorID).Error(0)
}

func (m *mockLiveClassRepo) ToggleActive(ctx context.Context, id, instructorID uuid.UUID) (*model.LiveClassLink, error) {
	args := m.Called(ctx, id, instructorID)
	l, _ := args.Get(0).(*model.LiveClassLink)
	return l, args.Error(1)
}

func (m *mockLiveClassRepo) ListByInstructor(ctx context.Context, instructorID uuid.UUID) ([]model.LiveClassLink, error) {
	args := m.Called(ctx, instructorID)
	l, _ := args.Get(0).([]model.LiveClassLink)
	return l, args.Error(1)
}

func (m *mockLiveClassRepo) ListActive(ctx context.Context) ([]model.LiveClassLink, error) {
	args := m.Called(ctx)
	l, _ := args.Get(0).([]model.LiveClassLink)
	return l, args.Error(1)
}

// recordingMailer captures messages synchronously
type recordingMailer struct {
	mu   sync.Mutex
	sent []*notify.Message
}

func (m *recordingMailer) SendMessages(messages ...*notify.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, messages...)
}

func (m *recordingMailer) subjects() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	subjects := make([]string, 0, len(m.sent))
	for _, msg := range m.sent {
		subjects = append(subjects, msg.Subject)
	}
	return subjects
}
