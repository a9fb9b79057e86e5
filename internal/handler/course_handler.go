package handler

import (
	"net/http"

	"nclex_keys/internal/model"
	"nclex_keys/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CourseHandler handles course content requests
type CourseHandler struct {
	service service.CourseService
	logger  *zap.Logger
}

// NewCourseHandler creates a new CourseHandler
func NewCourseHandler(s service.CourseService, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{service: s, logger: logger}
}

func (h *CourseHandler) Create(c *gin.Context) {
	actorID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	var req model.CreateCourseRequest
	if !bindJSON(c, &req) {
		return
	}

	course, err := h.service.Create(c.Request.Context(), actorID, req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to create course")
		return
	}
	c.JSON(http.StatusCreated, course)
}

func (h *CourseHandler) Update(c *gin.Context) {
	actorID, role, ok := authIdentity(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "course")
	if !ok {
		return
	}
	var req model.UpdateCourseRequest
	if !bindJSON(c, &req) {
		return
	}

	course, err := h.service.Update(c.Request.Context(), id, actorID, role, req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update course")
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) Delete(c *gin.Context) {
	actorID, role, ok := authIdentity(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "course")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, actorID, role); err != nil {
		respondError(c, h.logger, err, "Failed to delete course")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Course deleted successfully"})
}

func (h *CourseHandler) Get(c *gin.Context) {
	userID, role, ok := authIdentity(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id", "course")
	if !ok {
		return
	}

	course, err := h.service.Get(c.Request.Context(), id, userID, role)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve course")
		return
	}
	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) ListMine(c *gin.Context) {
	actorID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	courses, err := h.service.ListMine(c.Request.Context(), actorID)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve courses")
		return
	}
	c.JSON(http.StatusOK, courses)
}

// --- Media Uploads ---

func (h *CourseHandler) upload(kind model.MediaKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID, role, ok := authIdentity(c)
		if !ok {
			return
		}
		id, ok := paramID(c, "id", "course")
		if !ok {
			return
		}

		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File is required: " + err.Error()})
			return
		}

		course, err := h.service.UploadMedia(c.Request.Context(), id, actorID, role, kind, file)
		if err != nil {
			respondError(c, h.logger, err, "Failed to upload file")
			return
		}
		c.JSON(http.StatusOK, course)
	}
}

// RegisterCourseRoutes registers course routes. Reads are open to any signed-in user, the
// service decides whether a student has unlocked the course.
func (h *CourseHandler) RegisterCourseRoutes(rg *gin.RouterGroup, authMW, staffMW gin.HandlerFunc) {
	courseRoutes := rg.Group("/courses")
	courseRoutes.Use(authMW)
	{
		courseRoutes.GET("/:id", h.Get)
		courseRoutes.GET("/mine", staffMW, h.ListMine)
		courseRoutes.POST("", staffMW, h.Create)
		courseRoutes.PUT("/:id", staffMW, h.Update)
		courseRoutes.DELETE("/:id", staffMW, h.Delete)
		courseRoutes.POST("/:id/video", staffMW, h.upload(model.MediaVideo))
		courseRoutes.POST("/:id/materials", staffMW, h.upload(model.MediaMaterials))
	}
}
