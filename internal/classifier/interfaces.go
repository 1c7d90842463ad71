package classifier

import (
	"context"

	"go-mood-analyzer/pkg/models"
)

// Scorer produces a polarity score in [-1.0, 1.0] for a text.
type Scorer interface {
	Score(ctx context.Context, text string) (float64, error)
}

// ScorerFunc adapts a function to the Scorer interface.
type ScorerFunc func(ctx context.Context, text string) (float64, error)

// Score calls f(ctx, text).
func (f ScorerFunc) Score(ctx context.Context, text string) (float64, error) {
	return f(ctx, text)
}

// Classifier turns request text into an analysis result.
type Classifier interface {
	Analyze(ctx context.Context, text *string) (*models.AnalysisResult, error)
}
