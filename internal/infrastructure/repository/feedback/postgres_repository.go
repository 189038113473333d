package feedback

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	domain "github.com/fusbox/chatarbor-alternative/internal/domain/feedback"
	"github.com/fusbox/chatarbor-alternative/internal/infrastructure/database/entities"
)

// PostgresRepository provides persistence for feedback reports.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new feedback report.
func (r *PostgresRepository) Create(ctx context.Context, report *domain.Report) error {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	scores, err := json.Marshal(report.Scores)
	if err != nil {
		return fmt.Errorf("encode feedback scores: %w", err)
	}
	entity := entities.FeedbackReport{
		PublicID:      report.ID,
		UserPrompt:    report.UserPrompt,
		BotResponse:   report.BotResponse,
		Scores:        datatypes.JSON(scores),
		Notes:         report.Notes,
		WeightedScore: report.WeightedScore,
		CreatedAt:     report.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&entity).Error; err != nil {
		return fmt.Errorf("create feedback report: %w", err)
	}
	return nil
}

// List returns all reports, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]domain.Report, error) {
	var rows []entities.FeedbackReport
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list feedback reports: %w", err)
	}

	reports := make([]domain.Report, 0, len(rows))
	for i := range rows {
		report := domain.Report{
			ID:            rows[i].PublicID,
			UserPrompt:    rows[i].UserPrompt,
			BotResponse:   rows[i].BotResponse,
			Notes:         rows[i].Notes,
			WeightedScore: rows[i].WeightedScore,
			CreatedAt:     rows[i].CreatedAt,
		}
		if len(rows[i].Scores) > 0 {
			if err := json.Unmarshal(rows[i].Scores, &report.Scores); err != nil {
				return nil, fmt.Errorf("decode feedback %s scores: %w", rows[i].PublicID, err)
			}
		}
		reports = append(reports, report)
	}
	return reports, nil
}
