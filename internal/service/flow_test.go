package service

import (
	"context"
	"testing"
	"time"

	"nclex_keys/internal/model"
	"nclex_keys/internal/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// A student registers with a token, waits on payment, gets verified and finds the content unlocked.
func TestRegistrationToUnlockedDashboard(t *testing.T) {
	ctx := context.Background()
	users, tokens, programs := &mockUserRepo{}, &mockTokenRepo{}, &mockProgramRepo{}
	enrollments, courses, progress, liveClasses := &mockEnrollmentRepo{}, &mockCourseRepo{}, &mockProgressRepo{}, &mockLiveClassRepo{}
	mailer := &recordingMailer{}
	jwtUtil := utils.NewJWTUtil("flow-secret", 1)

	auth := NewAuthService(users, tokens, programs, enrollments, jwtUtil, mailer, "15551234567", zap.NewNop())
	enrollmentSvc := NewEnrollmentService(enrollments, users, mailer, "15551234567", "https://chat.whatsapp.com/nclex", zap.NewNop())
	dashboards := NewDashboardService(users, enrollments, courses, progress, programs, liveClasses, "https://chat.whatsapp.com/nclex")

	programID, enrollmentID, staffID, courseID := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	program := &model.Program{ID: programID, Name: "NCLEX-RN", IsActive: true}
	var student *model.User

	tokens.On("FindByToken", ctx, "NK-FLOW").Return(&model.EnrollmentToken{Token: "NK-FLOW", ProgramID: programID}, nil)
	programs.On("FindByID", ctx, programID).Return(program, nil)
	enrollments.On("RegisterWithToken", ctx, mock.Anything, "NK-FLOW").
		Run(func(args mock.Arguments) {
			student = args.Get(1).(*model.User)
			student.ID = uuid.New()
		}).
		Return(&model.Enrollment{ID: enrollmentID, ProgramID: programID, State: model.EnrollmentPending, EnrolledAt: time.Now()}, nil)

	registered, err := auth.Register(ctx, model.RegisterRequest{
		FullName:        "Flow Student",
		Email:           "flow@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		PhoneNumber:     "+15550002",
		EnrollmentToken: "NK-FLOW",
	})
	require.NoError(t, err)
	assert.Equal(t, model.PathVerifyPayment, registered.RedirectTo)
	userID := student.ID

	pending := &model.Enrollment{ID: enrollmentID, UserID: userID, ProgramID: programID, State: model.EnrollmentPending, Program: program}
	users.On("FindByID", ctx, userID).Return(student, nil)
	enrollments.On("FindLatestByUser", ctx, userID).Return(pending, nil).Once()
	enrollments.On("UnlockedProgramIDs", ctx, userID).Return([]uuid.UUID{}, nil).Once()

	locked, err := dashboards.Student(ctx, userID)
	require.NoError(t, err)
	assert.True(t, locked.PaymentPending)
	assert.True(t, locked.Locked)

	verified := &model.Enrollment{ID: enrollmentID, UserID: userID, ProgramID: programID, State: model.EnrollmentVerified, Program: program}
	enrollments.On("Transition", ctx, enrollmentID, model.EnrollmentVerified, []model.EnrollmentState{model.EnrollmentPending}, &staffID).Return(verified, nil)
	enrollments.On("FindByID", ctx, enrollmentID).Return(verified, nil)

	_, err = enrollmentSvc.Transition(ctx, enrollmentID, model.EnrollmentVerified, staffID)
	require.NoError(t, err)

	enrollments.On("FindLatestByUser", ctx, userID).Return(verified, nil)
	enrollments.On("UnlockedProgramIDs", ctx, userID).Return([]uuid.UUID{programID}, nil)
	courses.On("ListByPrograms", ctx, []uuid.UUID{programID}).Return([]model.Course{{ID: courseID, ProgramID: programID}}, nil)
	progress.On("CompletedCourseIDs", ctx, userID).Return([]uuid.UUID{}, nil)
	liveClasses.On("ListActive", ctx).Return([]model.LiveClassLink{}, nil)

	unlocked, err := dashboards.Student(ctx, userID)
	require.NoError(t, err)
	assert.False(t, unlocked.PaymentPending)
	assert.False(t, unlocked.Locked)
	assert.Len(t, unlocked.Courses, 1)

	path, err := enrollmentSvc.RedirectFor(ctx, userID, model.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, model.PathDashboard, path)

	assert.Equal(t, []string{"Welcome to NCLEX Keys", "Your payment has been verified"}, mailer.subjects())
}
