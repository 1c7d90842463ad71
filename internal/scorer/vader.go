package scorer

import (
	"context"
	"fmt"

	"go-mood-analyzer/internal/classifier"

	"github.com/jonreiter/govader"
)

// Kind names a scorer implementation.
type Kind string

const (
	// VADER scores with the VADER lexicon and rules.
	VADER Kind = "vader"
)

// VADERScorer returns the VADER compound score, which is already
// normalized to [-1, 1].
type VADERScorer struct {
	analyzer      *govader.SentimentIntensityAnalyzer
	stripMarkdown bool
}

// Option configures a VADERScorer.
type Option func(*VADERScorer)

// WithMarkdownStripping renders markdown to plain text and drops URLs
// before scoring.
func WithMarkdownStripping(enabled bool) Option {
	return func(s *VADERScorer) {
		s.stripMarkdown = enabled
	}
}

// NewVADERScorer creates a VADER scorer. The analyzer is read-only after
// construction and safe for concurrent use.
func NewVADERScorer(opts ...Option) *VADERScorer {
	s := &VADERScorer{
		analyzer: govader.NewSentimentIntensityAnalyzer(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score implements classifier.Scorer.
func (s *VADERScorer) Score(ctx context.Context, text string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s.stripMarkdown {
		text = MarkdownToText(text)
	}
	return s.analyzer.PolarityScores(text).Compound, nil
}

// New selects a scorer by kind.
func New(kind Kind, opts ...Option) (classifier.Scorer, error) {
	switch kind {
	case VADER, "":
		return NewVADERScorer(opts...), nil
	default:
		return nil, fmt.Errorf("unsupported scorer: %s", kind)
	}
}
