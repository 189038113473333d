package knowledge

import (
	"context"
	"time"
)

// Document is one curated knowledge-base entry. The chat pipeline treats
// documents as read-only input; only the admin surface mutates them.
type Document struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Repository persists knowledge documents.
type Repository interface {
	// List returns all documents sorted by most recently updated first.
	List(ctx context.Context) ([]Document, error)
	Get(ctx context.Context, id string) (*Document, error)
	Create(ctx context.Context, doc *Document) error
	Update(ctx context.Context, doc *Document) error
	Delete(ctx context.Context, id string) error
}
