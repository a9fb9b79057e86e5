package handler

import (
	"net/http"

	"nclex_keys/internal/model"
	"nclex_keys/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// EnrollmentHandler serves enrollment status, payment hand-off and staff verification
type EnrollmentHandler struct {
	service service.EnrollmentService
	logger  *zap.Logger
}

func NewEnrollmentHandler(s service.EnrollmentService, logger *zap.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{service: s, logger: logger}
}

func (h *EnrollmentHandler) Current(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	enrollment, err := h.service.Current(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "Failed to load enrollment")
		return
	}
	c.JSON(http.StatusOK, enrollment)
}

func (h *EnrollmentHandler) PaymentInstructions(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	instructions, err := h.service.PaymentInstructions(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "Failed to load payment instructions")
		return
	}
	c.JSON(http.StatusOK, instructions)
}

// Navigation tells the client where the signed-in user belongs
func (h *EnrollmentHandler) Navigation(c *gin.Context) {
	userID, role, ok := authIdentity(c)
	if !ok {
		return
	}

	path, err := h.service.RedirectFor(c.Request.Context(), userID, role)
	if err != nil {
		respondError(c, h.logger, err, "Failed to resolve navigation")
		return
	}
	c.JSON(http.StatusOK, gin.H{"redirect_to": path})
}

// --- Admin Routes ---

func (h *EnrollmentHandler) List(c *gin.Context) {
	var state *model.EnrollmentState
	if s := c.Query("state"); s != "" {
		st := model.EnrollmentState(s)
		state = &st
	}

	enrollments, err := h.service.List(c.Request.Context(), state)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve enrollments")
		return
	}
	c.JSON(http.StatusOK, enrollments)
}

func (h *EnrollmentHandler) transition(next model.EnrollmentState) gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID, err := getAuthUserID(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		id, ok := paramID(c, "id", "enrollment")
		if !ok {
			return
		}

		enrollment, err := h.service.Transition(c.Request.Context(), id, next, actorID)
		if err != nil {
			respondError(c, h.logger, err, "Failed to update enrollment")
			return
		}
		c.JSON(http.StatusOK, enrollment)
	}
}

// RegisterEnrollmentRoutes registers enrollment routes
func (h *EnrollmentHandler) RegisterEnrollmentRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	userRoutes := rg.Group("")
	userRoutes.Use(authMW)
	{
		userRoutes.GET("/enrollments/current", h.Current)
		userRoutes.GET("/payment/instructions", h.PaymentInstructions)
		userRoutes.GET("/navigation", h.Navigation)
	}

	adminRoutes := rg.Group("/admin/enrollments")
	adminRoutes.Use(authMW)
	adminRoutes.Use(adminMW)
	{
		adminRoutes.GET("", h.List)
		adminRoutes.POST("/:id/verify", h.transition(model.EnrollmentVerified))
		adminRoutes.POST("/:id/complete", h.transition(model.EnrollmentCompleted))
		adminRoutes.POST("/:id/cancel", h.transition(model.EnrollmentCancelled))
	}
}
