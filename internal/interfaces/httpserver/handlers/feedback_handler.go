package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/fusbox/chatarbor-alternative/internal/domain/feedback"
	"github.com/fusbox/chatarbor-alternative/internal/interfaces/httpserver/requests"
	"github.com/fusbox/chatarbor-alternative/internal/interfaces/httpserver/responses"
)

// FeedbackHandler exposes quality review endpoints.
type FeedbackHandler struct {
	service *feedback.Service
	log     zerolog.Logger
}

// NewFeedbackHandler constructs the handler.
func NewFeedbackHandler(service *feedback.Service, log zerolog.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		service: service,
		log:     log.With().Str("handler", "feedback").Logger(),
	}
}

// Submit handles POST /v1/feedback.
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req requests.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.service.Submit(c.Request.Context(), feedback.SubmitParams{
		UserPrompt:  req.UserPrompt,
		BotResponse: req.BotResponse,
		Scores:      req.Ratings,
		Notes:       req.Notes,
	})
	if err != nil {
		responses.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

// List handles GET /v1/feedback.
func (h *FeedbackHandler) List(c *gin.Context) {
	reports, err := h.service.List(c.Request.Context())
	if err != nil {
		responses.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// Rubric handles GET /v1/feedback/rubric.
func (h *FeedbackHandler) Rubric(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"dimensions": feedback.Rubric,
		"min_score":  feedback.MinScore,
		"max_score":  feedback.MaxScore,
	})
}
