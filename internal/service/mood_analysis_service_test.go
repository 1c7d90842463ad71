package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go-mood-analyzer/internal/classifier"
	apperrors "go-mood-analyzer/internal/errors"
	"go-mood-analyzer/internal/observer"
	"go-mood-analyzer/internal/repository"
	"go-mood-analyzer/pkg/models"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubScorer struct {
	mu     sync.Mutex
	scores map[string]float64
	err    error
	calls  int
}

func (s *stubScorer) Score(ctx context.Context, text string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	return s.scores[text], nil
}

type eventRecorder struct {
	events []observer.AnalysisEvent
}

func (r *eventRecorder) OnEvent(ctx context.Context, event observer.AnalysisEvent) {
	r.events = append(r.events, event)
}

func (r *eventRecorder) GetObserverName() string { return "recorder" }

func (r *eventRecorder) types() []observer.EventType {
	out := make([]observer.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.EventType)
	}
	return out
}

func newService(t *testing.T, scorer classifier.Scorer, results repository.ResultRepository) (MoodAnalysisService, *eventRecorder) {
	t.Helper()
	c, err := classifier.NewMoodClassifier(scorer, classifier.DefaultOptions())
	require.NoError(t, err)

	logger, _ := test.NewNullLogger()
	publisher := observer.NewEventPublisher(logger)
	recorder := &eventRecorder{}
	publisher.Subscribe(recorder)

	return NewMoodAnalysisService(c, results, publisher), recorder
}

func newRedisRepository(t *testing.T) *repository.RedisResultRepository {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return repository.NewRedisResultRepositoryFromClient(backend.NewClient(&backend.Options{Addr: mr.Addr()}))
}

func TestAnalyze_Scenarios(t *testing.T) {
	scorer := &stubScorer{scores: map[string]float64{
		"I love this!": 0.6696,
		"I hate this.": -0.5719,
	}}
	svc, _ := newService(t, scorer, repository.NewNoopResultRepository())
	ctx := context.Background()

	good, err := svc.Analyze(ctx, models.NewAnalysisRequest("I love this!"))
	require.NoError(t, err)
	assert.Equal(t, models.MoodGood, good.Mood)
	assert.Equal(t, "I love this!", good.Text)

	bad, err := svc.Analyze(ctx, models.NewAnalysisRequest("I hate this."))
	require.NoError(t, err)
	assert.Equal(t, models.MoodBad, bad.Mood)

	blank, err := svc.Analyze(ctx, models.NewAnalysisRequest("   "))
	require.NoError(t, err)
	assert.Equal(t, &models.AnalysisResult{Text: "   ", SentimentScore: 0, Mood: models.MoodNeutral}, blank)

	_, err = svc.Analyze(ctx, models.AnalysisRequest{})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeMissingInput))

	assert.Equal(t, 2, scorer.calls)
}

func TestAnalyze_Events(t *testing.T) {
	scorer := &stubScorer{scores: map[string]float64{"fine": 0.05}}
	svc, recorder := newService(t, scorer, repository.NewNoopResultRepository())

	_, err := svc.Analyze(context.Background(), models.NewAnalysisRequest("fine"))
	require.NoError(t, err)
	assert.Equal(t, []observer.EventType{observer.AnalysisStarted, observer.AnalysisCompleted}, recorder.types())

	completed := recorder.events[1]
	assert.Equal(t, "Neutral", completed.Mood)
	assert.Equal(t, 4, completed.TextLength)
	assert.True(t, completed.Success)
}

func TestAnalyze_FailureEvent(t *testing.T) {
	scorer := &stubScorer{err: errors.New("lexicon missing")}
	svc, recorder := newService(t, scorer, repository.NewNoopResultRepository())

	result, err := svc.Analyze(context.Background(), models.NewAnalysisRequest("hello"))
	assert.Nil(t, result)
	require.Error(t, err)
	assert.Equal(t, "An unexpected error occurred: lexicon missing", apperrors.PublicMessage(err))

	require.Len(t, recorder.events, 2)
	failed := recorder.events[1]
	assert.Equal(t, observer.AnalysisFailed, failed.EventType)
	assert.Equal(t, "internal", failed.ErrorType)
	assert.False(t, failed.Success)
}

func TestAnalyze_CachesResults(t *testing.T) {
	scorer := &stubScorer{scores: map[string]float64{"I love this!": 0.6696}}
	svc, recorder := newService(t, scorer, newRedisRepository(t))
	ctx := context.Background()

	first, err := svc.Analyze(ctx, models.NewAnalysisRequest("I love this!"))
	require.NoError(t, err)
	second, err := svc.Analyze(ctx, models.NewAnalysisRequest("I love this!"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, scorer.calls, "second request should be served from the cache")
	assert.Equal(t, []observer.EventType{
		observer.AnalysisStarted, observer.AnalysisCompleted,
		observer.AnalysisStarted, observer.CacheHit,
	}, recorder.types())
}

func TestAnalyze_BlankTextBypassesCache(t *testing.T) {
	scorer := &stubScorer{}
	repo := newRedisRepository(t)
	svc, _ := newService(t, scorer, repo)
	ctx := context.Background()

	_, err := svc.Analyze(ctx, models.NewAnalysisRequest(" "))
	require.NoError(t, err)

	_, err = repo.Get(ctx, " ")
	assert.ErrorIs(t, err, repository.ErrResultNotFound)
	assert.Equal(t, 0, scorer.calls)
}

func TestAnalyze_CacheUnavailable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	repo := repository.NewRedisResultRepositoryFromClient(backend.NewClient(&backend.Options{Addr: mr.Addr()}))
	mr.Close()

	scorer := &stubScorer{scores: map[string]float64{"I hate this.": -0.5719}}
	svc, _ := newService(t, scorer, repo)

	result, err := svc.Analyze(context.Background(), models.NewAnalysisRequest("I hate this."))
	require.NoError(t, err, "cache failures must not fail the request")
	assert.Equal(t, models.MoodBad, result.Mood)
}
