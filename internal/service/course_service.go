package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"nclex_keys/internal/model"
	"nclex_keys/internal/repository"
	"nclex_keys/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrCourseNotFound    = errors.New("course not found")
	ErrForbidden         = errors.New("forbidden: user does not have permission for this action")
	ErrContentLocked     = errors.New("course content is locked until payment is verified")
	ErrInvalidFileFormat = errors.New("invalid file format for this upload")
	ErrFileSizeExceeded  = errors.New("file size exceeds limit")
	ErrTitleRequired     = errors.New("title is required")
)

var allowedMediaExts = map[model.MediaKind]map[string]bool{
	model.MediaVideo:     {".mp4": true, ".webm": true, ".mov": true, ".m4v": true},
	model.MediaMaterials: {".pdf": true, ".ppt": true, ".pptx": true, ".doc": true, ".docx": true, ".zip": true},
}

// CourseService manages course content
type CourseService interface {
	Create(ctx context.Context, actorID uuid.UUID, req model.CreateCourseRequest) (*model.Course, error)
	Update(ctx context.Context, id, actorID uuid.UUID, role string, req model.UpdateCourseRequest) (*model.Course, error)
	Delete(ctx context.Context, id, actorID uuid.UUID, role string) error
	Get(ctx context.Context, id, userID uuid.UUID, role string) (*model.CourseView, error)
	ListMine(ctx context.Context, actorID uuid.UUID) ([]model.CourseView, error)
	UploadMedia(ctx context.Context, id, actorID uuid.UUID, role string, kind model.MediaKind, file *multipart.FileHeader) (*model.Course, error)
}

type courseService struct {
	courseRepo     repository.CourseRepository
	programRepo    repository.ProgramRepository
	enrollmentRepo repository.EnrollmentRepository
	uploadsDir     string
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(
	courseRepo repository.CourseRepository,
	programRepo repository.ProgramRepository,
	enrollmentRepo repository.EnrollmentRepository,
	uploadsDir string,
	maxUploadBytes int64,
	logger *zap.Logger,
) CourseService {
	return &courseService{
		courseRepo:     courseRepo,
		programRepo:    programRepo,
		enrollmentRepo: enrollmentRepo,
		uploadsDir:     uploadsDir,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// activeProgram resolves a program ID that new or edited courses may point at
func (s *courseService) activeProgram(ctx context.Context, rawID string) (uuid.UUID, error) {
	programID, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, ErrProgramUnavailable
	}
	program, err := s.programRepo.FindByID(ctx, programID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to find program: %w", err)
	}
	if program == nil || !program.IsActive {
		return uuid.Nil, ErrProgramUnavailable
	}
	return programID, nil
}

// ownedCourse loads a course the actor may modify. Admins may modify any course.
func (s *courseService) ownedCourse(ctx context.Context, id, actorID uuid.UUID, role string) (*model.Course, error) {
	course, err := s.courseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find course: %w", err)
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}
	if role != model.RoleAdmin && (course.CreatedBy == nil || *course.CreatedBy != actorID) {
		return nil, ErrForbidden
	}
	return course, nil
}

func blankToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}

func (s *courseService) Create(ctx context.Context, actorID uuid.UUID, req model.CreateCourseRequest) (*model.Course, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	programID, err := s.activeProgram(ctx, req.ProgramID)
	if err != nil {
		return nil, err
	}

	course := &model.Course{
		ProgramID:    programID,
		CreatedBy:    &actorID,
		Title:        title,
		Description:  blankToNil(req.Description),
		VideoURL:     blankToNil(req.VideoURL),
		MaterialsURL: blankToNil(req.MaterialsURL),
		OrderIndex:   req.OrderIndex,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}
	s.logger.Info("Course created", zap.String("course_id", course.ID.String()), zap.String("actor_id", actorID.String()))
	return course, nil
}

func (s *courseService) Update(ctx context.Context, id, actorID uuid.UUID, role string, req model.UpdateCourseRequest) (*model.Course, error) {
	course, err := s.ownedCourse(ctx, id, actorID, role)
	if err != nil {
		return nil, err
	}

	if req.ProgramID != nil {
		programID, err := s.activeProgram(ctx, *req.ProgramID)
		if err != nil {
			return nil, err
		}
		course.ProgramID = programID
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		course.Title = title
	}
	if req.Description != nil {
		course.Description = blankToNil(req.Description)
	}
	if req.VideoURL != nil {
		course.VideoURL = blankToNil(req.VideoURL)
	}
	if req.MaterialsURL != nil {
		course.MaterialsURL = blankToNil(req.MaterialsURL)
	}
	if req.OrderIndex != nil {
		course.OrderIndex = *req.OrderIndex
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to update course: %w", err)
	}
	return course, nil
}

func (s *courseService) Delete(ctx context.Context, id, actorID uuid.UUID, role string) error {
	if _, err := s.ownedCourse(ctx, id, actorID, role); err != nil {
		return err
	}
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("failed to delete course: %w", err)
	}
	s.logger.Info("Course deleted", zap.String("course_id", id.String()), zap.String("actor_id", actorID.String()))
	return nil
}

// Get returns a course to staff, or to a student whose enrollment in its program is unlocked
func (s *courseService) Get(ctx context.Context, id, userID uuid.UUID, role string) (*model.CourseView, error) {
	course, err := s.courseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find course: %w", err)
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}
	if role == model.RoleStudent {
		unlocked, err := s.enrollmentRepo.UnlockedProgramIDs(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to check access: %w", err)
		}
		if !containsID(unlocked, course.ProgramID) {
			return nil, ErrContentLocked
		}
	}
	view := model.NewCourseView(*course, false)
	return &view, nil
}

func (s *courseService) ListMine(ctx context.Context, actorID uuid.UUID) ([]model.CourseView, error) {
	courses, err := s.courseRepo.ListByCreator(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courseViews(courses, nil), nil
}

// UploadMedia stores a video or materials file and points the course at it
func (s *courseService) UploadMedia(ctx context.Context, id, actorID uuid.UUID, role string, kind model.MediaKind, file *multipart.FileHeader) (*model.Course, error) {
	allowed, ok := allowedMediaExts[kind]
	if !ok {
		return nil, ErrInvalidFileFormat
	}
	if _, err := s.ownedCourse(ctx, id, actorID, role); err != nil {
		return nil, err
	}

	if file.Size > s.maxUploadBytes {
		return nil, ErrFileSizeExceeded
	}
	if !allowed[utils.FileExtension(file.Filename)] {
		return nil, ErrInvalidFileFormat
	}

	relDir := filepath.Join("courses", id.String())
	storedName, err := utils.SaveUploadedFile(file, filepath.Join(s.uploadsDir, relDir))
	if err != nil {
		return nil, err
	}
	url := utils.PublicFileURL(filepath.Join(relDir, storedName))

	course, err := s.courseRepo.SetMediaURL(ctx, id, kind, url)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to save %s URL: %w", kind, err)
	}
	s.logger.Info("Course media uploaded",
		zap.String("course_id", id.String()),
		zap.String("kind", string(kind)),
		zap.String("url", url),
		zap.Int64("size", file.Size),
	)
	return course, nil
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func courseViews(courses []model.Course, completed map[uuid.UUID]bool) []model.CourseView {
	views := make([]model.CourseView, 0, len(courses))
	for _, c := range courses {
		views = append(views, model.NewCourseView(c, completed[c.ID]))
	}
	return views
}
