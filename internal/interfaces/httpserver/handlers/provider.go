package handlers

import (
	"github.com/rs/zerolog"

	"github.com/fusbox/chatarbor-alternative/internal/domain/feedback"
	"github.com/fusbox/chatarbor-alternative/internal/domain/knowledge"
	"github.com/fusbox/chatarbor-alternative/internal/domain/settings"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Chat      *ChatHandler
	Knowledge *KnowledgeHandler
	Admin     *AdminHandler
	Feedback  *FeedbackHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(
	chatService ChatService,
	knowledgeService *knowledge.Service,
	settingsService *settings.Service,
	feedbackService *feedback.Service,
	log zerolog.Logger,
) *Provider {
	return &Provider{
		Chat:      NewChatHandler(chatService, log),
		Knowledge: NewKnowledgeHandler(knowledgeService, log),
		Admin:     NewAdminHandler(settingsService, log),
		Feedback:  NewFeedbackHandler(feedbackService, log),
	}
}
