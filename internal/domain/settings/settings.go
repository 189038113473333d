// Package settings stores the editable system instruction exposed on the
// admin surface.
package settings

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fusbox/chatarbor-alternative/internal/domain/prompt"
)

// ErrEmptyPrompt rejects attempts to store a blank system instruction.
var ErrEmptyPrompt = errors.New("system prompt must not be empty")

// Repository persists service settings.
type Repository interface {
	// GetSystemPrompt returns the stored instruction, or an empty string
	// when none has been saved yet.
	GetSystemPrompt(ctx context.Context) (string, error)
	SetSystemPrompt(ctx context.Context, value string) error
}

// Service resolves the effective system instruction for the chat pipeline.
type Service struct {
	repo Repository
	log  zerolog.Logger
}

// NewService constructs the settings service.
func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("component", "settings").Logger(),
	}
}

// SystemPrompt returns the stored instruction, falling back to the built-in
// default when nothing is stored or the store fails. Prompt resolution must
// never block a turn.
func (s *Service) SystemPrompt(ctx context.Context) string {
	value, err := s.repo.GetSystemPrompt(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("loading system prompt failed, using default")
		return prompt.DefaultSystemInstruction
	}
	if strings.TrimSpace(value) == "" {
		return prompt.DefaultSystemInstruction
	}
	return value
}

// UpdateSystemPrompt validates and stores a new instruction.
func (s *Service) UpdateSystemPrompt(ctx context.Context, value string) error {
	if strings.TrimSpace(value) == "" {
		return ErrEmptyPrompt
	}
	if err := s.repo.SetSystemPrompt(ctx, value); err != nil {
		return err
	}
	s.log.Info().Msg("system prompt updated")
	return nil
}
