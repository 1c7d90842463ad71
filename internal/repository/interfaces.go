package repository

import (
	"context"

	"go-mood-analyzer/pkg/models"
)

// ResultRepository stores analysis results keyed by their input text.
type ResultRepository interface {
	// Get returns the cached result for text or ErrResultNotFound
	Get(ctx context.Context, text string) (*models.AnalysisResult, error)

	// Save stores a result under its text
	Save(ctx context.Context, result *models.AnalysisResult) error

	// Ping checks that the backend is reachable
	Ping(ctx context.Context) error

	// Close releases backend resources
	Close() error
}

// NoopResultRepository never stores anything. Used when caching is off.
type NoopResultRepository struct{}

// NewNoopResultRepository creates a repository that always misses
func NewNoopResultRepository() ResultRepository {
	return NoopResultRepository{}
}

func (NoopResultRepository) Get(ctx context.Context, text string) (*models.AnalysisResult, error) {
	return nil, ErrResultNotFound
}

func (NoopResultRepository) Save(ctx context.Context, result *models.AnalysisResult) error {
	return nil
}

func (NoopResultRepository) Ping(ctx context.Context) error {
	return nil
}

func (NoopResultRepository) Close() error {
	return nil
}
