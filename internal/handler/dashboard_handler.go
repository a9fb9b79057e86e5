package handler

import (
	"net/http"

	"nclex_keys/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DashboardHandler serves both dashboards and progress tracking
type DashboardHandler struct {
	dashboards service.DashboardService
	progress   service.ProgressService
	logger     *zap.Logger
}

func NewDashboardHandler(dashboards service.DashboardService, progress service.ProgressService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards, progress: progress, logger: logger}
}

func (h *DashboardHandler) Student(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	dashboard, err := h.dashboards.Student(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "Failed to load dashboard")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (h *DashboardHandler) Instructor(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	dashboard, err := h.dashboards.Instructor(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "Failed to load dashboard")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (h *DashboardHandler) ToggleProgress(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	courseID, ok := paramID(c, "course_id", "course")
	if !ok {
		return
	}

	progress, err := h.progress.Toggle(c.Request.Context(), userID, courseID)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update progress")
		return
	}
	c.JSON(http.StatusOK, progress)
}

// RegisterDashboardRoutes registers dashboard and progress routes
func (h *DashboardHandler) RegisterDashboardRoutes(rg *gin.RouterGroup, authMW, studentMW, staffMW gin.HandlerFunc) {
	rg.GET("/dashboard/student", authMW, studentMW, h.Student)
	rg.GET("/dashboard/instructor", authMW, staffMW, h.Instructor)
	rg.PUT("/progress/:course_id/toggle", authMW, studentMW, h.ToggleProgress)
}
