package feedback_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"

	"github.com/fusbox/chatarbor-alternative/internal/domain/feedback"
)

func TestRubric_WeightsSumToHundred(t *testing.T) {
	sum := 0
	for _, dim := range feedback.Rubric {
		sum += dim.Weight
	}
	if sum != 100 {
		t.Fatalf("rubric weights sum to %d, want 100", sum)
	}
}

func TestWeightedScore(t *testing.T) {
	tests := []struct {
		name   string
		scores map[string]int
		want   float64
	}{
		{
			name:   "no scores",
			scores: nil,
			want:   0,
		},
		{
			name: "all fives",
			scores: func() map[string]int {
				m := map[string]int{}
				for _, dim := range feedback.Rubric {
					m[dim.Name] = 5
				}
				return m
			}(),
			want: 5,
		},
		{
			name: "partial rubric averages over scored weights",
			scores: map[string]int{
				"Correctness / Accuracy": 4, // weight 20
				"Completeness":           2, // weight 15
			},
			want: float64(4*20+2*15) / 35,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := feedback.WeightedScore(tt.scores)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("WeightedScore() = %f, want %f", got, tt.want)
			}
		})
	}
}

type memoryReports struct {
	reports []feedback.Report
}

func (m *memoryReports) Create(ctx context.Context, report *feedback.Report) error {
	m.reports = append(m.reports, *report)
	return nil
}

func (m *memoryReports) List(ctx context.Context) ([]feedback.Report, error) {
	return m.reports, nil
}

func TestSubmit_Validation(t *testing.T) {
	svc := feedback.NewService(&memoryReports{}, zerolog.Nop())
	ctx := context.Background()

	tests := []struct {
		name   string
		params feedback.SubmitParams
	}{
		{"missing prompt", feedback.SubmitParams{BotResponse: "r", Scores: map[string]int{"Completeness": 3}}},
		{"missing response", feedback.SubmitParams{UserPrompt: "p", Scores: map[string]int{"Completeness": 3}}},
		{"no scores", feedback.SubmitParams{UserPrompt: "p", BotResponse: "r"}},
		{"unknown dimension", feedback.SubmitParams{UserPrompt: "p", BotResponse: "r", Scores: map[string]int{"Vibes": 3}}},
		{"score too high", feedback.SubmitParams{UserPrompt: "p", BotResponse: "r", Scores: map[string]int{"Completeness": 6}}},
		{"score too low", feedback.SubmitParams{UserPrompt: "p", BotResponse: "r", Scores: map[string]int{"Completeness": 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Submit(ctx, tt.params); !errors.Is(err, feedback.ErrInvalidReport) {
				t.Errorf("Submit() error = %v, want ErrInvalidReport", err)
			}
		})
	}
}

func TestSubmit_StoresWeightedScore(t *testing.T) {
	repo := &memoryReports{}
	svc := feedback.NewService(repo, zerolog.Nop())

	report, err := svc.Submit(context.Background(), feedback.SubmitParams{
		UserPrompt:  "How do I find a job?",
		BotResponse: "Use the portal.",
		Scores:      map[string]int{"Correctness / Accuracy": 5},
		Notes:       "good",
	})
	if err != nil {
		t.Fatalf("Submit() error: %v", err)
	}
	if report.WeightedScore != 5 {
		t.Errorf("WeightedScore = %f, want 5", report.WeightedScore)
	}
	if len(repo.reports) != 1 {
		t.Errorf("repository holds %d reports, want 1", len(repo.reports))
	}
}
