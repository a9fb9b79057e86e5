package handler

import (
	"net/http"
	"strconv"

	"nclex_keys/internal/model"
	"nclex_keys/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProgramHandler serves the program catalog and the staff-side token issuing
type ProgramHandler struct {
	programs service.ProgramService
	tokens   service.TokenService
	logger   *zap.Logger
}

func NewProgramHandler(programs service.ProgramService, tokens service.TokenService, logger *zap.Logger) *ProgramHandler {
	return &ProgramHandler{programs: programs, tokens: tokens, logger: logger}
}

// ListActive is public: the marketing site shows these
func (h *ProgramHandler) ListActive(c *gin.Context) {
	programs, err := h.programs.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve programs")
		return
	}
	c.JSON(http.StatusOK, programs)
}

// --- Admin Routes ---

func (h *ProgramHandler) ListAll(c *gin.Context) {
	programs, err := h.programs.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve programs")
		return
	}
	c.JSON(http.StatusOK, programs)
}

func (h *ProgramHandler) Create(c *gin.Context) {
	var req model.CreateProgramRequest
	if !bindJSON(c, &req) {
		return
	}

	program, err := h.programs.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to create program")
		return
	}
	c.JSON(http.StatusCreated, program)
}

func (h *ProgramHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id", "program")
	if !ok {
		return
	}
	var req model.UpdateProgramRequest
	if !bindJSON(c, &req) {
		return
	}

	program, err := h.programs.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update program")
		return
	}
	c.JSON(http.StatusOK, program)
}

func (h *ProgramHandler) IssueTokens(c *gin.Context) {
	actorID, err := getAuthUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	var req model.IssueTokensRequest
	if !bindJSON(c, &req) {
		return
	}

	tokens, err := h.tokens.Issue(c.Request.Context(), req, actorID)
	if err != nil {
		respondError(c, h.logger, err, "Failed to issue enrollment tokens")
		return
	}
	c.JSON(http.StatusCreated, tokens)
}

func (h *ProgramHandler) ListTokens(c *gin.Context) {
	var used *bool
	if usedParam := c.Query("used"); usedParam != "" {
		parsed, err := strconv.ParseBool(usedParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid value for 'used', use true or false"})
			return
		}
		used = &parsed
	}

	tokens, err := h.tokens.List(c.Request.Context(), used)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve enrollment tokens")
		return
	}
	c.JSON(http.StatusOK, tokens)
}

// RegisterProgramRoutes registers program and token routes
func (h *ProgramHandler) RegisterProgramRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	rg.GET("/programs", h.ListActive)

	adminRoutes := rg.Group("/admin")
	adminRoutes.Use(authMW)
	adminRoutes.Use(adminMW)
	{
		adminRoutes.GET("/programs", h.ListAll)
		adminRoutes.POST("/programs", h.Create)
		adminRoutes.PUT("/programs/:id", h.Update)
		adminRoutes.POST("/tokens", h.IssueTokens)
		adminRoutes.GET("/tokens", h.ListTokens)
	}
}
