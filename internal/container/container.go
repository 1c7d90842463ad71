package container

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go-mood-analyzer/internal/classifier"
	"go-mood-analyzer/internal/config"
	"go-mood-analyzer/internal/logger"
	"go-mood-analyzer/internal/observer"
	"go-mood-analyzer/internal/repository"
	"go-mood-analyzer/internal/scorer"
	"go-mood-analyzer/internal/service"
	"go-mood-analyzer/internal/transport"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Container holds all application dependencies
type Container struct {
	config              *config.Config
	classifier          *classifier.MoodClassifier
	resultRepository    repository.ResultRepository
	events              *observer.EventPublisher
	moodAnalysisService service.MoodAnalysisService
	handler             http.Handler
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	moodClassifier, err := NewClassifier(cfg)
	if err != nil {
		return nil, err
	}

	resultRepository := repository.NewNoopResultRepository()
	if cfg.CacheEnabled() {
		redisRepository := repository.NewRedisResultRepository(
			cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			repository.WithTTL(cfg.CacheTTL),
			repository.WithPrefix(cfg.CacheKeyPrefix()),
		)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := redisRepository.Ping(ctx); err != nil {
			// Requests still work without the cache.
			logger.WithError(err).WithField("redis_addr", cfg.RedisAddr).Warn("Result cache unreachable at startup")
		}
		resultRepository = redisRepository
	}

	events := observer.NewEventPublisher(logger.Logger)
	events.Subscribe(observer.NewLoggingObserver(logger.Logger))

	var metricsHandler http.Handler
	if cfg.MetricsEnabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metricsObserver, err := observer.NewMetricsObserver(registry)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
		events.Subscribe(metricsObserver)
		metricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	}

	moodAnalysisService := service.NewMoodAnalysisService(moodClassifier, resultRepository, events)
	handler := transport.NewHandler(moodAnalysisService, resultRepository, metricsHandler, cfg)

	return &Container{
		config:              cfg,
		classifier:          moodClassifier,
		resultRepository:    resultRepository,
		events:              events,
		moodAnalysisService: moodAnalysisService,
		handler:             handler,
	}, nil
}

// NewClassifier builds the scorer and classifier described by cfg.
func NewClassifier(cfg *config.Config) (*classifier.MoodClassifier, error) {
	moodScorer, err := scorer.New(scorer.Kind(cfg.Scorer), scorer.WithMarkdownStripping(cfg.StripMarkdown))
	if err != nil {
		return nil, err
	}
	options := classifier.DefaultOptions().WithThresholds(cfg.PositiveThreshold, cfg.NegativeThreshold)
	return classifier.NewMoodClassifier(moodScorer, options)
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Service returns the mood analysis service
func (c *Container) Service() service.MoodAnalysisService {
	return c.moodAnalysisService
}

// Close releases external resources
func (c *Container) Close() error {
	return c.resultRepository.Close()
}
