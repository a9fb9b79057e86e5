package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nclex_keys/internal/model"
	"nclex_keys/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type courseFixture struct {
	courses     *mockCourseRepo
	programs    *mockProgramRepo
	enrollments *mockEnrollmentRepo
	uploadsDir  string
	svc         CourseService
}

func newCourseFixture(t *testing.T) *courseFixture {
	f := &courseFixture{
		courses:     &mockCourseRepo{},
		programs:    &mockProgramRepo{},
		enrollments: &mockEnrollmentRepo{},
		uploadsDir:  t.TempDir(),
	}
	f.svc = NewCourseService(f.courses, f.programs, f.enrollments, f.uploadsDir, 1024, zap.NewNop())
	return f
}

func multipartFile(t *testing.T, fileName string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestCourseService_Create(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()
	programID, actorID := uuid.New(), uuid.New()
	blank := "   "
	video := "https://youtube.com/watch?v=abc"

	f.programs.On("FindByID", ctx, programID).Return(&model.Program{ID: programID, IsActive: true}, nil)
	f.courses.On("Create", ctx, mock.MatchedBy(func(c *model.Course) bool {
		return c.Title == "Cardiac Care" && c.Description == nil && *c.VideoURL == video && *c.CreatedBy == actorID
	})).Return(nil)

	course, err := f.svc.Create(ctx, actorID, model.CreateCourseRequest{
		ProgramID:   programID.String(),
		Title:       " Cardiac Care ",
		Description: &blank,
		VideoURL:    &video,
	})
	require.NoError(t, err)
	assert.Equal(t, programID, course.ProgramID)
	f.courses.AssertExpectations(t)
}

func TestCourseService_Create_InactiveProgram(t *testing.T) {
	f := newCourseFixture(t)
	programID := uuid.New()
	f.programs.On("FindByID", mock.Anything, programID).Return(&model.Program{ID: programID, IsActive: false}, nil)

	_, err := f.svc.Create(context.Background(), uuid.New(), model.CreateCourseRequest{ProgramID: programID.String(), Title: "Renal"})
	assert.ErrorIs(t, err, ErrProgramUnavailable)

	_, err = f.svc.Create(context.Background(), uuid.New(), model.CreateCourseRequest{ProgramID: programID.String(), Title: "  "})
	assert.ErrorIs(t, err, ErrTitleRequired)

	f.courses.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCourseService_Update_Ownership(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()
	ownerID, otherID, courseID := uuid.New(), uuid.New(), uuid.New()
	title := "Updated"

	f.courses.On("FindByID", ctx, courseID).Return(&model.Course{ID: courseID, CreatedBy: &ownerID, Title: "Old"}, nil)

	_, err := f.svc.Update(ctx, courseID, otherID, model.RoleInstructor, model.UpdateCourseRequest{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)

	f.courses.On("Update", ctx, mock.MatchedBy(func(c *model.Course) bool { return c.Title == "Updated" })).Return(nil)
	course, err := f.svc.Update(ctx, courseID, otherID, model.RoleAdmin, model.UpdateCourseRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Updated", course.Title)
}

func TestCourseService_Delete(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()
	ownerID, courseID := uuid.New(), uuid.New()

	f.courses.On("FindByID", ctx, courseID).Return(&model.Course{ID: courseID, CreatedBy: &ownerID}, nil)
	f.courses.On("Delete", ctx, courseID).Return(nil)
	require.NoError(t, f.svc.Delete(ctx, courseID, ownerID, model.RoleInstructor))

	missing := uuid.New()
	f.courses.On("FindByID", ctx, missing).Return(nil, nil)
	assert.ErrorIs(t, f.svc.Delete(ctx, missing, ownerID, model.RoleInstructor), ErrCourseNotFound)
}

func TestCourseService_Get_StudentAccess(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()
	studentID, courseID, programID := uuid.New(), uuid.New(), uuid.New()
	pdf := "https://cdn.example.com/notes.pdf"

	f.courses.On("FindByID", ctx, courseID).Return(&model.Course{ID: courseID, ProgramID: programID, MaterialsURL: &pdf}, nil)
	f.enrollments.On("UnlockedProgramIDs", ctx, studentID).Return([]uuid.UUID{programID}, nil).Once()

	view, err := f.svc.Get(ctx, courseID, studentID, model.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, model.MaterialPDF, view.MaterialType)

	f.enrollments.On("UnlockedProgramIDs", ctx, studentID).Return([]uuid.UUID{}, nil).Once()
	_, err = f.svc.Get(ctx, courseID, studentID, model.RoleStudent)
	assert.ErrorIs(t, err, ErrContentLocked)
}

func TestCourseService_UploadMedia(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()
	ownerID, courseID := uuid.New(), uuid.New()

	f.courses.On("FindByID", ctx, courseID).Return(&model.Course{ID: courseID, CreatedBy: &ownerID}, nil)
	var savedURL string
	f.courses.On("SetMediaURL", ctx, courseID, model.MediaMaterials, mock.MatchedBy(func(url string) bool {
		return strings.HasPrefix(url, "/uploads/courses/"+courseID.String()+"/") && strings.HasSuffix(url, ".pdf")
	})).Run(func(args mock.Arguments) { savedURL = args.String(3) }).Return(&model.Course{ID: courseID}, nil)

	course, err := f.svc.UploadMedia(ctx, courseID, ownerID, model.RoleInstructor, model.MediaMaterials, multipartFile(t, "Week1.PDF", []byte("%PDF-1.4")))
	require.NoError(t, err)
	assert.Equal(t, courseID, course.ID)
	require.NotEmpty(t, savedURL)

	stored := strings.TrimPrefix(savedURL, "/uploads/")
	content, err := os.ReadFile(filepath.Join(f.uploadsDir, filepath.FromSlash(stored)))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(content))
}

func TestCourseService_UploadMedia_Rejected(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()
	ownerID, courseID := uuid.New(), uuid.New()
	f.courses.On("FindByID", ctx, courseID).Return(&model.Course{ID: courseID, CreatedBy: &ownerID}, nil)

	_, err := f.svc.UploadMedia(ctx, courseID, ownerID, model.RoleInstructor, model.MediaVideo, multipartFile(t, "notes.pdf", []byte("x")))
	assert.ErrorIs(t, err, ErrInvalidFileFormat)

	_, err = f.svc.UploadMedia(ctx, courseID, ownerID, model.RoleInstructor, model.MediaVideo, multipartFile(t, "big.mp4", bytes.Repeat([]byte("v"), 2048)))
	assert.ErrorIs(t, err, ErrFileSizeExceeded)

	_, err = f.svc.UploadMedia(ctx, courseID, ownerID, model.RoleInstructor, model.MediaKind("audio"), multipartFile(t, "a.mp3", []byte("x")))
	assert.ErrorIs(t, err, ErrInvalidFileFormat)

	f.courses.AssertNotCalled(t, "SetMediaURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	entries, err := os.ReadDir(f.uploadsDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCourseService_UploadMedia_CourseDeleted(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()
	ownerID, courseID := uuid.New(), uuid.New()
	f.courses.On("FindByID", ctx, courseID).Return(&model.Course{ID: courseID, CreatedBy: &ownerID}, nil)
	f.courses.On("SetMediaURL", ctx, courseID, model.MediaVideo, mock.Anything).Return(nil, repository.ErrNotFound)

	_, err := f.svc.UploadMedia(ctx, courseID, ownerID, model.RoleInstructor, model.MediaVideo, multipartFile(t, "intro.mp4", []byte("v")))
	assert.ErrorIs(t, err, ErrCourseNotFound)
}
