package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/fusbox/chatarbor-alternative/internal/domain/settings"
	"github.com/fusbox/chatarbor-alternative/internal/interfaces/httpserver/requests"
	"github.com/fusbox/chatarbor-alternative/internal/interfaces/httpserver/responses"
)

// AdminHandler exposes service configuration endpoints.
type AdminHandler struct {
	service *settings.Service
	log     zerolog.Logger
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(service *settings.Service, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log.With().Str("handler", "admin").Logger(),
	}
}

// GetSystemPrompt handles GET /v1/admin/system-prompt. The response always
// holds the effective instruction, falling back to the built-in default.
func (h *AdminHandler) GetSystemPrompt(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"prompt": h.service.SystemPrompt(c.Request.Context())})
}

// SetSystemPrompt handles PUT /v1/admin/system-prompt.
func (h *AdminHandler) SetSystemPrompt(c *gin.Context) {
	var req requests.SystemPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.UpdateSystemPrompt(c.Request.Context(), req.Prompt); err != nil {
		responses.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"prompt": req.Prompt})
}
