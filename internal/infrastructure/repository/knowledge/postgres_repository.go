package knowledge

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/fusbox/chatarbor-alternative/internal/domain/knowledge"
	"github.com/fusbox/chatarbor-alternative/internal/infrastructure/database/entities"
)

// PostgresRepository provides persistence for knowledge documents.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns all documents sorted by most recently updated first.
func (r *PostgresRepository) List(ctx context.Context) ([]domain.Document, error) {
	var rows []entities.KnowledgeDocument
	if err := r.db.WithContext(ctx).Order("updated_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	docs := make([]domain.Document, 0, len(rows))
	for i := range rows {
		docs = append(docs, mapEntityToDocument(&rows[i]))
	}
	return docs, nil
}

// Get loads a document by public id.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*domain.Document, error) {
	var entity entities.KnowledgeDocument
	err := r.db.WithContext(ctx).Where("public_id = ?", id).First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load document %s: %w", id, err)
	}
	doc := mapEntityToDocument(&entity)
	return &doc, nil
}

// Create inserts a new document record.
func (r *PostgresRepository) Create(ctx context.Context, doc *domain.Document) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	entity := entities.KnowledgeDocument{
		PublicID:  doc.ID,
		Title:     doc.Title,
		Content:   doc.Content,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&entity).Error; err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	return nil
}

// Update persists changes to an existing document.
func (r *PostgresRepository) Update(ctx context.Context, doc *domain.Document) error {
	result := r.db.WithContext(ctx).
		Model(&entities.KnowledgeDocument{}).
		Where("public_id = ?", doc.ID).
		Updates(map[string]interface{}{
			"title":      doc.Title,
			"content":    doc.Content,
			"updated_at": doc.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("update document %s: %w", doc.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a document by public id.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("public_id = ?", id).Delete(&entities.KnowledgeDocument{})
	if result.Error != nil {
		return fmt.Errorf("delete document %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func mapEntityToDocument(entity *entities.KnowledgeDocument) domain.Document {
	return domain.Document{
		ID:        entity.PublicID,
		Title:     entity.Title,
		Content:   entity.Content,
		CreatedAt: entity.CreatedAt,
		UpdatedAt: entity.UpdatedAt,
	}
}
