package classifier

import (
	"context"
	"errors"
	"fmt"
	"math"

	apperrors "go-mood-analyzer/internal/errors"
	"go-mood-analyzer/internal/logger"
	"go-mood-analyzer/pkg/models"
	"go-mood-analyzer/pkg/validation"

	"github.com/sirupsen/logrus"
)

// ErrScoreOutOfRange is returned when a scorer yields NaN or a value
// outside [-1, 1].
var ErrScoreOutOfRange = errors.New("polarity score out of range")

// MoodClassifier validates text, scores it and maps the score to a mood.
type MoodClassifier struct {
	scorer    Scorer
	validator *validation.TextValidator
	options   Options
}

// NewMoodClassifier creates a classifier with the given scorer and options.
func NewMoodClassifier(scorer Scorer, options Options) (*MoodClassifier, error) {
	if scorer == nil {
		return nil, errors.New("classifier: scorer is required")
	}
	if err := options.Thresholds.Validate(); err != nil {
		return nil, fmt.Errorf("classifier: %w", err)
	}
	return &MoodClassifier{
		scorer:    scorer,
		validator: validation.NewTextValidator(),
		options:   options,
	}, nil
}

// Thresholds returns the thresholds in use.
func (c *MoodClassifier) Thresholds() Thresholds {
	return c.options.Thresholds
}

// Analyze returns the mood of text. A nil text is a missing input error.
// Blank text is Neutral with a zero score and never reaches the scorer.
// Any scorer failure, including a panic, is an internal error.
func (c *MoodClassifier) Analyze(ctx context.Context, text *string) (*models.AnalysisResult, error) {
	value, blank, err := c.validator.Validate(text)
	if err != nil {
		return nil, err
	}
	if blank {
		logger.Debug("Received empty text, returning neutral mood")
		return models.NeutralResult(value), nil
	}

	score, err := c.score(ctx, value)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	mood := Classify(score, c.options.Thresholds)
	logger.WithFields(logrus.Fields{
		"text_length":     len(value),
		"sentiment_score": score,
		"mood":            mood,
	}).Debug("Determined mood")

	return &models.AnalysisResult{
		Text:           value,
		SentimentScore: score,
		Mood:           mood,
	}, nil
}

func (c *MoodClassifier) score(ctx context.Context, text string) (score float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("scorer panicked: %v", r)
		}
	}()

	score, err = c.scorer.Score(ctx, text)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(score) || score < -1 || score > 1 {
		return 0, fmt.Errorf("%w: %v", ErrScoreOutOfRange, score)
	}
	return score, nil
}
