package settings

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fusbox/chatarbor-alternative/internal/infrastructure/database/entities"
)

const systemPromptKey = "system_prompt"

// PostgresRepository provides persistence for service settings.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetSystemPrompt returns the stored instruction, or an empty string when
// none has been saved yet.
func (r *PostgresRepository) GetSystemPrompt(ctx context.Context) (string, error) {
	var entity entities.Setting
	err := r.db.WithContext(ctx).Where("key = ?", systemPromptKey).First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load system prompt: %w", err)
	}
	return entity.Value, nil
}

// SetSystemPrompt upserts the instruction setting.
func (r *PostgresRepository) SetSystemPrompt(ctx context.Context, value string) error {
	entity := entities.Setting{Key: systemPromptKey, Value: value}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entity).Error
	if err != nil {
		return fmt.Errorf("store system prompt: %w", err)
	}
	return nil
}
