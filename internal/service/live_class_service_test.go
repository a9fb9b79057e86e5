package service

import (
	"context"
	"testing"

	"nclex_keys/internal/model"
	"nclex_keys/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLiveClassService_Create_Defaults(t *testing.T) {
	repo := &mockLiveClassRepo{}
	svc := NewLiveClassService(repo, &mockEnrollmentRepo{}, zap.NewNop())
	instructorID := uuid.New()
	empty := ""

	repo.On("Create", mock.Anything, mock.MatchedBy(func(l *model.LiveClassLink) bool {
		return l.MeetingPlatform == model.DefaultMeetingPlatform && l.IsActive && l.InstructorID == instructorID
	})).Return(nil)

	link, err := svc.Create(context.Background(), instructorID, model.CreateLiveClassRequest{
		Title:           "Pharmacology drill",
		LinkURL:         "https://zoom.us/j/123",
		MeetingPlatform: &empty,
	})
	require.NoError(t, err)
	assert.Equal(t, "zoom", link.MeetingPlatform)
	assert.True(t, link.IsActive)
	repo.AssertExpectations(t)
}

func TestLiveClassService_Update_NotOwner(t *testing.T) {
	repo := &mockLiveClassRepo{}
	svc := NewLiveClassService(repo, &mockEnrollmentRepo{}, zap.NewNop())
	id, ownerID := uuid.New(), uuid.New()
	title := "Hijacked"

	repo.On("FindByID", mock.Anything, id).Return(&model.LiveClassLink{ID: id, InstructorID: ownerID}, nil)

	_, err := svc.Update(context.Background(), id, uuid.New(), model.UpdateLiveClassRequest{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestLiveClassService_Update(t *testing.T) {
	repo := &mockLiveClassRepo{}
	svc := NewLiveClassService(repo, &mockEnrollmentRepo{}, zap.NewNop())
	id, ownerID := uuid.New(), uuid.New()
	platform := "Google Meet"
	inactive := false

	repo.On("FindByID", mock.Anything, id).Return(&model.LiveClassLink{ID: id, InstructorID: ownerID, Title: "Old", MeetingPlatform: "zoom", IsActive: true}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	link, err := svc.Update(context.Background(), id, ownerID, model.UpdateLiveClassRequest{MeetingPlatform: &platform, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "Old", link.Title)
	assert.Equal(t, "Google Meet", link.MeetingPlatform)
	assert.False(t, link.IsActive)
}

func TestLiveClassService_DeleteAndToggle_NotFound(t *testing.T) {
	repo := &mockLiveClassRepo{}
	svc := NewLiveClassService(repo, &mockEnrollmentRepo{}, zap.NewNop())
	id, instructorID := uuid.New(), uuid.New()

	repo.On("Delete", mock.Anything, id, instructorID).Return(repository.ErrNotFound)
	repo.On("ToggleActive", mock.Anything, id, instructorID).Return(nil, repository.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), id, instructorID), ErrLiveClassNotFound)
	_, err := svc.Toggle(context.Background(), id, instructorID)
	assert.ErrorIs(t, err, ErrLiveClassNotFound)
}

func TestLiveClassService_ListActive(t *testing.T) {
	repo, enrollments := &mockLiveClassRepo{}, &mockEnrollmentRepo{}
	svc := NewLiveClassService(repo, enrollments, zap.NewNop())
	lockedStudent, unlockedStudent := uuid.New(), uuid.New()

	enrollments.On("UnlockedProgramIDs", mock.Anything, lockedStudent).Return([]uuid.UUID{}, nil)
	enrollments.On("UnlockedProgramIDs", mock.Anything, unlockedStudent).Return([]uuid.UUID{uuid.New()}, nil)
	repo.On("ListActive", mock.Anything).Return([]model.LiveClassLink{{Title: "Live"}}, nil)

	_, err := svc.ListActive(context.Background(), lockedStudent, model.RoleStudent)
	assert.ErrorIs(t, err, ErrContentLocked)

	links, err := svc.ListActive(context.Background(), unlockedStudent, model.RoleStudent)
	require.NoError(t, err)
	assert.Len(t, links, 1)

	links, err = svc.ListActive(context.Background(), uuid.New(), model.RoleInstructor)
	require.NoError(t, err)
	assert.Len(t, links, 1)
}
