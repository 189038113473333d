package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fusbox/chatarbor-alternative/internal/domain/chat"
	"github.com/fusbox/chatarbor-alternative/internal/domain/conversation"
	"github.com/fusbox/chatarbor-alternative/internal/domain/feedback"
	"github.com/fusbox/chatarbor-alternative/internal/domain/knowledge"
	"github.com/fusbox/chatarbor-alternative/internal/domain/settings"
)

// Error writes a JSON error body with a status derived from the domain
// sentinel wrapped in err.
func Error(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, chat.ErrEmptyMessage),
		errors.Is(err, knowledge.ErrInvalidDocument),
		errors.Is(err, feedback.ErrInvalidReport),
		errors.Is(err, settings.ErrEmptyPrompt):
		return http.StatusBadRequest
	case errors.Is(err, conversation.ErrNotFound),
		errors.Is(err, knowledge.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, chat.ErrSessionBusy):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
