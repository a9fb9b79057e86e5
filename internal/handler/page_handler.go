package handler

import (
	"net/http"

	"nclex_keys/internal/model"
	"nclex_keys/internal/service"
	"nclex_keys/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const contactMessage = "Hi, I would like to know more about NCLEX Keys."

// PageHandler renders the public marketing pages
type PageHandler struct {
	programs     service.ProgramService
	whatsAppURL  string
	communityURL string
	logger       *zap.Logger
}

func NewPageHandler(programs service.ProgramService, whatsAppNumber, communityURL string, logger *zap.Logger) *PageHandler {
	return &PageHandler{
		programs:     programs,
		whatsAppURL:  utils.WhatsAppLink(whatsAppNumber, contactMessage),
		communityURL: communityURL,
		logger:       logger,
	}
}

func (h *PageHandler) page(title string) gin.H {
	return gin.H{"Title": title, "WhatsAppURL": h.whatsAppURL, "CommunityURL": h.communityURL}
}

func (h *PageHandler) Home(c *gin.Context) {
	data := h.page("Home")
	programs, err := h.programs.ListActive(c.Request.Context())
	if err != nil {
		// the page still renders, only the catalog is missing
		h.logger.Error("Failed to load programs for home page", zap.Error(err))
		programs = []model.Program{}
	}
	data["Programs"] = programs
	c.HTML(http.StatusOK, "home.html", data)
}

func (h *PageHandler) static(name, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, name, h.page(title))
	}
}

// RegisterPageRoutes registers the marketing pages. The engine must have the web templates loaded.
func (h *PageHandler) RegisterPageRoutes(r gin.IRoutes) {
	r.GET("/", h.Home)
	r.GET("/about", h.static("about.html", "About"))
	r.GET("/services", h.static("services.html", "Services"))
	r.GET("/contact", h.static("contact.html", "Contact"))
}
