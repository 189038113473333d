package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrInvalidReport is returned when a submission fails validation.
var ErrInvalidReport = errors.New("invalid feedback report")

// Report records one rated user-prompt/assistant-response pair.
type Report struct {
	ID            string         `json:"id"`
	UserPrompt    string         `json:"user_prompt"`
	BotResponse   string         `json:"bot_response"`
	Scores        map[string]int `json:"ratings"`
	Notes         string         `json:"notes,omitempty"`
	WeightedScore float64        `json:"weighted_score"`
	CreatedAt     time.Time      `json:"created_at"`
}

// Repository persists feedback reports.
type Repository interface {
	Create(ctx context.Context, report *Report) error
	List(ctx context.Context) ([]Report, error)
}

// Service validates and stores rubric feedback.
type Service struct {
	repo Repository
	log  zerolog.Logger
}

// NewService constructs the feedback service.
func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("component", "feedback").Logger(),
	}
}

// SubmitParams carries a feedback submission.
type SubmitParams struct {
	UserPrompt  string
	BotResponse string
	Scores      map[string]int
	Notes       string
}

// Submit validates the submission against the rubric and stores the report.
func (s *Service) Submit(ctx context.Context, params SubmitParams) (*Report, error) {
	if strings.TrimSpace(params.UserPrompt) == "" || strings.TrimSpace(params.BotResponse) == "" {
		return nil, fmt.Errorf("%w: prompt and response are required", ErrInvalidReport)
	}
	if len(params.Scores) == 0 {
		return nil, fmt.Errorf("%w: at least one dimension must be scored", ErrInvalidReport)
	}

	known := make(map[string]struct{}, len(Rubric))
	for _, dim := range Rubric {
		known[dim.Name] = struct{}{}
	}
	for name, score := range params.Scores {
		if _, ok := known[name]; !ok {
			return nil, fmt.Errorf("%w: unknown dimension %q", ErrInvalidReport, name)
		}
		if score < MinScore || score > MaxScore {
			return nil, fmt.Errorf("%w: score for %q out of range", ErrInvalidReport, name)
		}
	}

	report := &Report{
		ID:            uuid.NewString(),
		UserPrompt:    params.UserPrompt,
		BotResponse:   params.BotResponse,
		Scores:        params.Scores,
		Notes:         params.Notes,
		WeightedScore: WeightedScore(params.Scores),
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, report); err != nil {
		return nil, err
	}

	s.log.Info().Str("report_id", report.ID).Float64("weighted_score", report.WeightedScore).Msg("feedback submitted")
	return report, nil
}

// List returns all stored reports, newest first.
func (s *Service) List(ctx context.Context) ([]Report, error) {
	return s.repo.List(ctx)
}
