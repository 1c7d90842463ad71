package service

import (
	"context"
	"errors"
	"time"

	"go-mood-analyzer/internal/classifier"
	apperrors "go-mood-analyzer/internal/errors"
	"go-mood-analyzer/internal/logger"
	"go-mood-analyzer/internal/observer"
	"go-mood-analyzer/internal/repository"
	"go-mood-analyzer/pkg/models"
	"go-mood-analyzer/pkg/validation"
)

// MoodAnalysisService defines the interface for mood analysis
type MoodAnalysisService interface {
	Analyze(ctx context.Context, request models.AnalysisRequest) (*models.AnalysisResult, error)
}

// moodAnalysisService implements MoodAnalysisService
type moodAnalysisService struct {
	classifier classifier.Classifier
	results    repository.ResultRepository
	events     observer.Subject
}

// NewMoodAnalysisService creates a new mood analysis service
func NewMoodAnalysisService(
	moodClassifier classifier.Classifier,
	resultRepository repository.ResultRepository,
	events observer.Subject,
) MoodAnalysisService {
	return &moodAnalysisService{
		classifier: moodClassifier,
		results:    resultRepository,
		events:     events,
	}
}

// Analyze validates the request, serves a cached result when there is one
// and otherwise classifies the text. Blank text never touches the cache.
func (s *moodAnalysisService) Analyze(ctx context.Context, request models.AnalysisRequest) (*models.AnalysisResult, error) {
	startTime := time.Now()

	textLength := 0
	if request.Text != nil {
		textLength = len(*request.Text)
	}
	s.events.NotifyObservers(ctx, observer.AnalysisEvent{
		EventType:  observer.AnalysisStarted,
		TextLength: textLength,
	})

	cacheable := request.Text != nil && !validation.IsBlank(*request.Text)
	if cacheable {
		if cached := s.lookup(ctx, *request.Text); cached != nil {
			s.events.NotifyObservers(ctx, observer.AnalysisEvent{
				EventType:      observer.CacheHit,
				TextLength:     textLength,
				SentimentScore: cached.SentimentScore,
				Mood:           string(cached.Mood),
				ProcessingTime: time.Since(startTime),
				Success:        true,
			})
			return cached, nil
		}
	}

	result, err := s.classifier.Analyze(ctx, request.Text)
	if err != nil {
		s.events.NotifyObservers(ctx, observer.AnalysisEvent{
			EventType:      observer.AnalysisFailed,
			TextLength:     textLength,
			ProcessingTime: time.Since(startTime),
			ErrorType:      errorType(err),
			ErrorMessage:   err.Error(),
		})
		return nil, err
	}

	if cacheable {
		if err := s.results.Save(ctx, result); err != nil {
			logger.WithError(err).Warn("Failed to cache analysis result")
		}
	}

	s.events.NotifyObservers(ctx, observer.AnalysisEvent{
		EventType:      observer.AnalysisCompleted,
		TextLength:     textLength,
		SentimentScore: result.SentimentScore,
		Mood:           string(result.Mood),
		ProcessingTime: time.Since(startTime),
		Success:        true,
	})
	return result, nil
}

func (s *moodAnalysisService) lookup(ctx context.Context, text string) *models.AnalysisResult {
	cached, err := s.results.Get(ctx, text)
	if err != nil {
		if !errors.Is(err, repository.ErrResultNotFound) {
			logger.WithError(err).Warn("Failed to read cached analysis result")
		}
		return nil
	}
	return cached
}

func errorType(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return string(appErr.Type)
	}
	return string(apperrors.ErrorTypeInternal)
}
