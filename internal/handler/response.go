package handler

import (
	"errors"
	"net/http"

	"nclex_keys/internal/middleware"
	"nclex_keys/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errorStatuses = []struct {
	err    error
	status int
}{
	{service.ErrTokenInvalid, http.StatusBadRequest},
	{service.ErrPasswordTooShort, http.StatusBadRequest},
	{service.ErrPasswordMismatch, http.StatusBadRequest},
	{service.ErrProgramUnavailable, http.StatusBadRequest},
	{service.ErrInvalidFileFormat, http.StatusBadRequest},
	{service.ErrFileSizeExceeded, http.StatusBadRequest},
	{service.ErrTitleRequired, http.StatusBadRequest},
	{service.ErrInvalidState, http.StatusBadRequest},
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrForbidden, http.StatusForbidden},
	{service.ErrContentLocked, http.StatusForbidden},
	{service.ErrUserNotFound, http.StatusNotFound},
	{service.ErrEnrollmentNotFound, http.StatusNotFound},
	{service.ErrProgramNotFound, http.StatusNotFound},
	{service.ErrCourseNotFound, http.StatusNotFound},
	{service.ErrLiveClassNotFound, http.StatusNotFound},
	{service.ErrEmailTaken, http.StatusConflict},
	{service.ErrInvalidTransition, http.StatusConflict},
}

// respondError maps service errors to status codes. Anything unknown is logged and hidden behind fallback.
func respondError(c *gin.Context, logger *zap.Logger, err error, fallback string) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			c.JSON(e.status, gin.H{"error": err.Error()})
			return
		}
	}
	logger.Error(fallback, zap.Error(err), zap.String("path", c.FullPath()))
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
}

// bindJSON binds the request body and writes a 400 on failure
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if fields, ok := fieldErrors(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "fields": fields})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return false
	}
	return true
}

// Helper to get authenticated user ID from context
func getAuthUserID(c *gin.Context) (uuid.UUID, error) {
	userIDVal, exists := c.Get(middleware.AuthUserKey)
	if !exists {
		return uuid.Nil, errors.New("user ID not found in context")
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("invalid user ID type in context")
	}
	return userID, nil
}

// Helper to get authenticated user role from context
func getAuthUserRole(c *gin.Context) (string, error) {
	roleVal, exists := c.Get(middleware.AuthRoleKey)
	if !exists {
		return "", errors.New("user role not found in context")
	}
	role, ok := roleVal.(string)
	if !ok {
		return "", errors.New("invalid user role type in context")
	}
	return role, nil
}

// authIdentity reads both the user ID and role, writing a 401 if either is missing
func authIdentity(c *gin.Context) (uuid.UUID, string, bool) {
	userID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return uuid.Nil, "", false
	}
	role, err := getAuthUserRole(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User role not found"})
		return uuid.Nil, "", false
	}
	return userID, role, true
}

// paramID parses a UUID path parameter, writing a 400 if it is malformed
func paramID(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + label + " ID"})
		return uuid.Nil, false
	}
	return id, true
}
