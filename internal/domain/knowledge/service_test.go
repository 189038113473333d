package knowledge_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/fusbox/chatarbor-alternative/internal/domain/knowledge"
)

// memoryRepo is an in-memory knowledge.Repository.
type memoryRepo struct {
	docs map[string]knowledge.Document
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{docs: make(map[string]knowledge.Document)}
}

func (m *memoryRepo) List(ctx context.Context) ([]knowledge.Document, error) {
	out := make([]knowledge.Document, 0, len(m.docs))
	for _, doc := range m.docs {
		out = append(out, doc)
	}
	return out, nil
}

func (m *memoryRepo) Get(ctx context.Context, id string) (*knowledge.Document, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, knowledge.ErrNotFound
	}
	return &doc, nil
}

func (m *memoryRepo) Create(ctx context.Context, doc *knowledge.Document) error {
	m.docs[doc.ID] = *doc
	return nil
}

func (m *memoryRepo) Update(ctx context.Context, doc *knowledge.Document) error {
	if _, ok := m.docs[doc.ID]; !ok {
		return knowledge.ErrNotFound
	}
	m.docs[doc.ID] = *doc
	return nil
}

func (m *memoryRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.docs[id]; !ok {
		return knowledge.ErrNotFound
	}
	delete(m.docs, id)
	return nil
}

func TestCreateValidatesInput(t *testing.T) {
	svc := knowledge.NewService(newMemoryRepo(), zerolog.Nop())

	tests := []struct {
		name    string
		title   string
		content string
		wantErr bool
	}{
		{"valid", "Interview Prep", "Research the company first.", false},
		{"blank title", "   ", "content", true},
		{"blank content", "title", "   ", true},
		{"both blank", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := svc.Create(context.Background(), tt.title, tt.content)
			if tt.wantErr {
				if !errors.Is(err, knowledge.ErrInvalidDocument) {
					t.Fatalf("err = %v, want ErrInvalidDocument", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if doc.ID == "" {
				t.Error("created document has no id")
			}
			if doc.UpdatedAt.Before(doc.CreatedAt) {
				t.Error("UpdatedAt precedes CreatedAt")
			}
		})
	}
}

func TestUpdateBumpsTimestampAndKeepsFields(t *testing.T) {
	repo := newMemoryRepo()
	svc := knowledge.NewService(repo, zerolog.Nop())

	doc, err := svc.Create(context.Background(), "Networking", "Attend meetups.")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(context.Background(), doc.ID, "", "Attend meetups and conferences.")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Title != "Networking" {
		t.Errorf("blank title should keep the old value, got %q", updated.Title)
	}
	if updated.Content != "Attend meetups and conferences." {
		t.Errorf("Content = %q", updated.Content)
	}
	if updated.UpdatedAt.Before(updated.CreatedAt) {
		t.Error("UpdatedAt precedes CreatedAt after update")
	}
}

func TestUpdateMissingDocument(t *testing.T) {
	svc := knowledge.NewService(newMemoryRepo(), zerolog.Nop())

	_, err := svc.Update(context.Background(), "nope", "title", "content")
	if !errors.Is(err, knowledge.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	repo := newMemoryRepo()
	svc := knowledge.NewService(repo, zerolog.Nop())

	doc, err := svc.Create(context.Background(), "Resume", "Keep it to one page.")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(context.Background(), doc.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(context.Background(), doc.ID); !errors.Is(err, knowledge.ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}
}
