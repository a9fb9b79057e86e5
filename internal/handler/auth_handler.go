package handler

import (
	"net/http"

	"nclex_keys/internal/model"
	"nclex_keys/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	service service.AuthService
	logger  *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{service: s, logger: logger}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Registration successful, please send your payment screenshot to verify your enrollment",
		"user":        result.User,
		"enrollment":  result.Enrollment,
		"token":       result.Token,
		"redirect_to": result.RedirectTo,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err, "Failed to login")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Login successful",
		"user":        result.User,
		"token":       result.Token,
		"redirect_to": result.RedirectTo,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	user, err := h.service.Me(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "Failed to load profile")
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateInstructor opens an instructor account (admin only)
func (h *AuthHandler) CreateInstructor(c *gin.Context) {
	var req model.CreateInstructorRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.service.CreateInstructor(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to create instructor")
		return
	}
	c.JSON(http.StatusCreated, user)
}

// RegisterAuthRoutes registers auth routes
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.GET("/me", authMW, h.Me)
	}

	rg.POST("/admin/instructors", authMW, adminMW, h.CreateInstructor)
}
