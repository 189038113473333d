package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fusbox/chatarbor-alternative/internal/domain/chat"
	"github.com/fusbox/chatarbor-alternative/internal/domain/conversation"
	"github.com/fusbox/chatarbor-alternative/internal/interfaces/httpserver/requests"
	"github.com/fusbox/chatarbor-alternative/internal/interfaces/httpserver/responses"
)

// ChatService is the slice of the chat domain the HTTP layer depends on.
type ChatService interface {
	RunTurn(ctx context.Context, params chat.TurnParams) (*chat.TurnResult, error)
	GetSession(ctx context.Context, id string) (*conversation.State, error)
	ListSessions(ctx context.Context) ([]*conversation.State, error)
	ClearMessages(ctx context.Context, id string) (*conversation.State, error)
	UpdateModel(ctx context.Context, id, model string) (*conversation.State, error)
}

// ChatHandler exposes HTTP entrypoints for conversational turns and sessions.
type ChatHandler struct {
	service ChatService
	log     zerolog.Logger
}

// NewChatHandler constructs the handler.
func NewChatHandler(service ChatService, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		log:     log.With().Str("handler", "chat").Logger(),
	}
}

// Chat handles POST /v1/chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req requests.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	params := chat.TurnParams{
		SessionID: req.SessionID,
		Message:   req.Message,
		Model:     req.Model,
	}

	if req.Stream {
		h.streamChat(c, params)
		return
	}

	result, err := h.service.RunTurn(c.Request.Context(), params)
	if err != nil {
		responses.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": req.SessionID,
		"message":    result.Message,
		"context":    result.Context,
	})
}

// streamChat delivers the assistant answer as chunked plain text. The
// retrieval context block arrives as the final write, after the answer.
func (h *ChatHandler) streamChat(c *gin.Context, params chat.TurnParams) {
	writer := c.Writer
	flusher, ok := writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming not supported"})
		return
	}

	started := false
	params.Sink = func(text string) error {
		if !started {
			c.Header("Content-Type", "text/plain; charset=utf-8")
			c.Header("Cache-Control", "no-cache")
			c.Header("X-Session-ID", params.SessionID)
			writer.WriteHeader(http.StatusOK)
			started = true
		}
		if _, err := writer.Write([]byte(text)); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	}

	_, err := h.service.RunTurn(c.Request.Context(), params)
	if err != nil && !started {
		// Rejected before the first chunk; a plain JSON error is still
		// deliverable.
		responses.Error(c, err)
		return
	}
	if err != nil && !errors.Is(err, chat.ErrTurnFailed) {
		h.log.Error().Err(err).Str("session_id", params.SessionID).Msg("stream ended with error")
	}
}

// GetSession handles GET /v1/sessions/:session_id.
func (h *ChatHandler) GetSession(c *gin.Context) {
	state, err := h.service.GetSession(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		responses.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// ListSessions handles GET /v1/sessions.
func (h *ChatHandler) ListSessions(c *gin.Context) {
	states, err := h.service.ListSessions(c.Request.Context())
	if err != nil {
		responses.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": states})
}

// ClearMessages handles POST /v1/sessions/:session_id/clear.
func (h *ChatHandler) ClearMessages(c *gin.Context) {
	state, err := h.service.ClearMessages(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		responses.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// UpdateModel handles PATCH /v1/sessions/:session_id/model.
func (h *ChatHandler) UpdateModel(c *gin.Context) {
	var req requests.UpdateModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := h.service.UpdateModel(c.Request.Context(), c.Param("session_id"), req.Model)
	if err != nil {
		responses.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}
