package handler

import (
	"net/http"

	"nclex_keys/internal/model"
	"nclex_keys/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LiveClassHandler manages meeting links
type LiveClassHandler struct {
	service service.LiveClassService
	logger  *zap.Logger
}

func NewLiveClassHandler(s service.LiveClassService, logger *zap.Logger) *LiveClassHandler {
	return &LiveClassHandler{service: s, logger: logger}
}

func (h *LiveClassHandler) Create(c *gin.Context) {
	instructorID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	var req model.CreateLiveClassRequest
	if !bindJSON(c, &req) {
		return
	}

	link, err := h.service.Create(c.Request.Context(), instructorID, req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to create live class link")
		return
	}
	c.JSON(http.StatusCreated, link)
}

func (h *LiveClassHandler) Update(c *gin.Context) {
	instructorID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	id, ok := paramID(c, "id", "live class")
	if !ok {
		return
	}
	var req model.UpdateLiveClassRequest
	if !bindJSON(c, &req) {
		return
	}

	link, err := h.service.Update(c.Request.Context(), id, instructorID, req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update live class link")
		return
	}
	c.JSON(http.StatusOK, link)
}

func (h *LiveClassHandler) Delete(c *gin.Context) {
	instructorID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	id, ok := paramID(c, "id", "live class")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, instructorID); err != nil {
		respondError(c, h.logger, err, "Failed to delete live class link")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Live class link deleted successfully"})
}

func (h *LiveClassHandler) Toggle(c *gin.Context) {
	instructorID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	id, ok := paramID(c, "id", "live class")
	if !ok {
		return
	}

	link, err := h.service.Toggle(c.Request.Context(), id, instructorID)
	if err != nil {
		respondError(c, h.logger, err, "Failed to toggle live class link")
		return
	}
	c.JSON(http.StatusOK, link)
}

func (h *LiveClassHandler) ListMine(c *gin.Context) {
	instructorID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	links, err := h.service.ListMine(c.Request.Context(), instructorID)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve live class links")
		return
	}
	c.JSON(http.StatusOK, links)
}

func (h *LiveClassHandler) ListActive(c *gin.Context) {
	userID, role, ok := authIdentity(c)
	if !ok {
		return
	}

	links, err := h.service.ListActive(c.Request.Context(), userID, role)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve live classes")
		return
	}
	c.JSON(http.StatusOK, links)
}

// RegisterLiveClassRoutes registers live class routes
func (h *LiveClassHandler) RegisterLiveClassRoutes(rg *gin.RouterGroup, authMW, staffMW gin.HandlerFunc) {
	routes := rg.Group("/live-classes")
	routes.Use(authMW)
	{
		routes.GET("", h.ListActive)
		routes.GET("/mine", staffMW, h.ListMine)
		routes.POST("", staffMW, h.Create)
		routes.PUT("/:id", staffMW, h.Update)
		routes.PATCH("/:id/toggle", staffMW, h.Toggle)
		routes.DELETE("/:id", staffMW, h.Delete)
	}
}
