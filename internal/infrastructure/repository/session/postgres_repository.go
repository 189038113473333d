package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/fusbox/chatarbor-alternative/internal/domain/conversation"
	"github.com/fusbox/chatarbor-alternative/internal/infrastructure/database/entities"
)

// PostgresRepository provides persistence for chat sessions.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Get loads a session transcript by public id.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*conversation.State, error) {
	var entity entities.ChatSession
	err := r.db.WithContext(ctx).Where("public_id = ?", id).First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, conversation.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	return mapEntityToState(&entity)
}

// Save upserts the full session record keyed by public id.
func (r *PostgresRepository) Save(ctx context.Context, state *conversation.State) error {
	entity, err := mapStateToEntity(state)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", state.ID, err)
	}

	var existing entities.ChatSession
	err = r.db.WithContext(ctx).Where("public_id = ?", state.ID).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
			return fmt.Errorf("create session %s: %w", state.ID, err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("lookup session %s: %w", state.ID, err)
	}

	entity.ID = existing.ID
	entity.CreatedAt = existing.CreatedAt
	if err := r.db.WithContext(ctx).Save(entity).Error; err != nil {
		return fmt.Errorf("update session %s: %w", state.ID, err)
	}
	return nil
}

// List returns all sessions, most recently active first.
func (r *PostgresRepository) List(ctx context.Context) ([]*conversation.State, error) {
	var rows []entities.ChatSession
	if err := r.db.WithContext(ctx).Order("updated_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	states := make([]*conversation.State, 0, len(rows))
	for i := range rows {
		state, err := mapEntityToState(&rows[i])
		if err != nil {
			return nil, err
		}
		states = append(states, state)
	}
	return states, nil
}

func mapStateToEntity(state *conversation.State) (*entities.ChatSession, error) {
	messages := state.Messages
	if messages == nil {
		messages = []conversation.Message{}
	}
	raw, err := json.Marshal(messages)
	if err != nil {
		return nil, err
	}
	return &entities.ChatSession{
		PublicID:     state.ID,
		Model:        state.Model,
		Messages:     datatypes.JSON(raw),
		IsProcessing: state.IsProcessing,
		CreatedAt:    state.CreatedAt,
		UpdatedAt:    state.UpdatedAt,
	}, nil
}

func mapEntityToState(entity *entities.ChatSession) (*conversation.State, error) {
	messages := []conversation.Message{}
	if len(entity.Messages) > 0 {
		if err := json.Unmarshal(entity.Messages, &messages); err != nil {
			return nil, fmt.Errorf("decode session %s messages: %w", entity.PublicID, err)
		}
	}
	return &conversation.State{
		ID:           entity.PublicID,
		Messages:     messages,
		IsProcessing: entity.IsProcessing,
		Model:        entity.Model,
		CreatedAt:    entity.CreatedAt,
		UpdatedAt:    entity.UpdatedAt,
	}, nil
}
