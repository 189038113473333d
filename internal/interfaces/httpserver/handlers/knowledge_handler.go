package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/fusbox/chatarbor-alternative/internal/domain/knowledge"
	"github.com/fusbox/chatarbor-alternative/internal/interfaces/httpserver/requests"
	"github.com/fusbox/chatarbor-alternative/internal/interfaces/httpserver/responses"
)

// KnowledgeHandler exposes HTTP entrypoints for the knowledge base.
type KnowledgeHandler struct {
	service *knowledge.Service
	log     zerolog.Logger
}

// NewKnowledgeHandler constructs the handler.
func NewKnowledgeHandler(service *knowledge.Service, log zerolog.Logger) *KnowledgeHandler {
	return &KnowledgeHandler{
		service: service,
		log:     log.With().Str("handler", "knowledge").Logger(),
	}
}

// List handles GET /v1/knowledge.
func (h *KnowledgeHandler) List(c *gin.Context) {
	docs, err := h.service.List(c.Request.Context())
	if err != nil {
		responses.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

// Get handles GET /v1/knowledge/:document_id.
func (h *KnowledgeHandler) Get(c *gin.Context) {
	doc, err := h.service.Get(c.Request.Context(), c.Param("document_id"))
	if err != nil {
		responses.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// Create handles POST /v1/knowledge.
func (h *KnowledgeHandler) Create(c *gin.Context) {
	var req requests.DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, err := h.service.Create(c.Request.Context(), req.Title, req.Content)
	if err != nil {
		responses.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// Update handles PUT /v1/knowledge/:document_id.
func (h *KnowledgeHandler) Update(c *gin.Context) {
	var req requests.DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, err := h.service.Update(c.Request.Context(), c.Param("document_id"), req.Title, req.Content)
	if err != nil {
		responses.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// Delete handles DELETE /v1/knowledge/:document_id.
func (h *KnowledgeHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("document_id")); err != nil {
		responses.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
