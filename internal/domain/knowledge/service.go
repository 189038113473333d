package knowledge

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	// ErrNotFound is returned when the requested document does not exist.
	ErrNotFound = errors.New("knowledge document not found")
	// ErrInvalidDocument is returned when title or content is missing.
	ErrInvalidDocument = errors.New("title and content are required")
)

// Service owns document lifecycle for the admin surface.
type Service struct {
	repo Repository
	log  zerolog.Logger
}

// NewService constructs the knowledge service.
func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("component", "knowledge").Logger(),
	}
}

// List returns every stored document, most recently updated first.
func (s *Service) List(ctx context.Context) ([]Document, error) {
	return s.repo.List(ctx)
}

// Get loads one document by id.
func (s *Service) Get(ctx context.Context, id string) (*Document, error) {
	return s.repo.Get(ctx, id)
}

// Create validates and stores a new document.
func (s *Service) Create(ctx context.Context, title, content string) (*Document, error) {
	title = strings.TrimSpace(title)
	if title == "" || strings.TrimSpace(content) == "" {
		return nil, ErrInvalidDocument
	}

	now := time.Now().UTC()
	doc := &Document{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.log.Info().Str("document_id", doc.ID).Str("title", doc.Title).Msg("knowledge document created")
	return doc, nil
}

// Update replaces title and/or content of an existing document and bumps
// its updated timestamp.
func (s *Service) Update(ctx context.Context, id, title, content string) (*Document, error) {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(title) != "" {
		doc.Title = strings.TrimSpace(title)
	}
	if strings.TrimSpace(content) != "" {
		doc.Content = content
	}
	doc.UpdatedAt = time.Now().UTC()
	if doc.UpdatedAt.Before(doc.CreatedAt) {
		doc.UpdatedAt = doc.CreatedAt
	}

	if err := s.repo.Update(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Delete removes a document by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("document_id", id).Msg("knowledge document deleted")
	return nil
}
