package observer

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsObserver records analysis events as Prometheus metrics.
type MetricsObserver struct {
	analyses  *prometheus.CounterVec
	failures  *prometheus.CounterVec
	cacheHits prometheus.Counter
	duration  prometheus.Histogram
}

// NewMetricsObserver creates the collectors and registers them with reg.
func NewMetricsObserver(reg prometheus.Registerer) (*MetricsObserver, error) {
	o := &MetricsObserver{
		analyses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mood_analyses_total",
				Help: "Total number of completed mood analyses by mood",
			},
			[]string{"mood"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mood_analysis_failures_total",
				Help: "Total number of failed mood analyses by error type",
			},
			[]string{"error_type"},
		),
		cacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "mood_analysis_cache_hits_total",
				Help: "Total number of mood analyses served from the cache",
			},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "mood_analysis_duration_seconds",
				Help:    "Duration of mood analyses",
				Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
			},
		),
	}

	for _, c := range []prometheus.Collector{o.analyses, o.failures, o.cacheHits, o.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// OnEvent handles analysis events by collecting metrics
func (o *MetricsObserver) OnEvent(ctx context.Context, event AnalysisEvent) {
	switch event.EventType {
	case AnalysisCompleted:
		o.analyses.WithLabelValues(event.Mood).Inc()
		o.duration.Observe(event.ProcessingTime.Seconds())
	case CacheHit:
		o.cacheHits.Inc()
		o.analyses.WithLabelValues(event.Mood).Inc()
	case AnalysisFailed:
		o.failures.WithLabelValues(event.ErrorType).Inc()
	}
}

// GetObserverName returns the observer name
func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}
