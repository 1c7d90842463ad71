package observer

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

type recordingObserver struct {
	name   string
	events []AnalysisEvent
}

func (o *recordingObserver) OnEvent(ctx context.Context, event AnalysisEvent) {
	o.events = append(o.events, event)
}

func (o *recordingObserver) GetObserverName() string { return o.name }

type panickingObserver struct{}

func (panickingObserver) OnEvent(ctx context.Context, event AnalysisEvent) { panic("boom") }
func (panickingObserver) GetObserverName() string                         { return "panicking" }

func TestEventPublisher_NotifyAndUnsubscribe(t *testing.T) {
	logger, _ := test.NewNullLogger()
	publisher := NewEventPublisher(logger)

	first := &recordingObserver{name: "first"}
	second := &recordingObserver{name: "second"}
	publisher.Subscribe(first)
	publisher.Subscribe(second)

	publisher.NotifyObservers(context.Background(), AnalysisEvent{EventType: AnalysisStarted})

	if len(first.events) != 1 || len(second.events) != 1 {
		t.Fatalf("Expected both observers to receive 1 event, got %d and %d", len(first.events), len(second.events))
	}
	if first.events[0].Timestamp.IsZero() {
		t.Error("Expected publisher to stamp the event")
	}

	publisher.Unsubscribe(first)
	publisher.NotifyObservers(context.Background(), AnalysisEvent{EventType: AnalysisCompleted})

	if len(first.events) != 1 {
		t.Errorf("Expected unsubscribed observer to stay at 1 event, got %d", len(first.events))
	}
	if len(second.events) != 2 {
		t.Errorf("Expected remaining observer to receive 2 events, got %d", len(second.events))
	}
}

func TestEventPublisher_RecoversObserverPanic(t *testing.T) {
	logger, hook := test.NewNullLogger()
	publisher := NewEventPublisher(logger)

	after := &recordingObserver{name: "after"}
	publisher.Subscribe(panickingObserver{})
	publisher.Subscribe(after)

	publisher.NotifyObservers(context.Background(), AnalysisEvent{EventType: AnalysisStarted})

	if len(after.events) != 1 {
		t.Errorf("Expected observer after the panicking one to still be notified")
	}
	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.ErrorLevel {
		t.Fatalf("Expected panic to be logged at error level, got %+v", entry)
	}
	if entry.Data["observer"] != "panicking" {
		t.Errorf("Expected observer field, got %v", entry.Data["observer"])
	}
}

func TestLoggingObserver(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	obs := NewLoggingObserver(logger)

	obs.OnEvent(context.Background(), AnalysisEvent{
		EventType:      AnalysisCompleted,
		TextLength:     12,
		SentimentScore: 0.67,
		Mood:           "Good",
		Success:        true,
	})

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("Expected a log entry")
	}
	if entry.Message != "Mood analysis completed" || entry.Level != logrus.InfoLevel {
		t.Errorf("Unexpected entry: %s at %s", entry.Message, entry.Level)
	}
	if entry.Data["mood"] != "Good" {
		t.Errorf("Expected mood field, got %v", entry.Data["mood"])
	}

	obs.OnEvent(context.Background(), AnalysisEvent{
		EventType:    AnalysisFailed,
		ErrorType:    "internal",
		ErrorMessage: "scorer panicked",
	})

	entry = hook.LastEntry()
	if entry.Level != logrus.ErrorLevel {
		t.Errorf("Expected failure to be logged at error level, got %s", entry.Level)
	}
	if entry.Data["error_type"] != "internal" {
		t.Errorf("Expected error_type field, got %v", entry.Data["error_type"])
	}
}

func TestMetricsObserver(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := NewMetricsObserver(reg)
	if err != nil {
		t.Fatalf("NewMetricsObserver() error = %v", err)
	}
	ctx := context.Background()

	obs.OnEvent(ctx, AnalysisEvent{EventType: AnalysisStarted})
	obs.OnEvent(ctx, AnalysisEvent{EventType: AnalysisCompleted, Mood: "Good", ProcessingTime: time.Millisecond})
	obs.OnEvent(ctx, AnalysisEvent{EventType: AnalysisCompleted, Mood: "Good", ProcessingTime: time.Millisecond})
	obs.OnEvent(ctx, AnalysisEvent{EventType: AnalysisCompleted, Mood: "Bad", ProcessingTime: time.Millisecond})
	obs.OnEvent(ctx, AnalysisEvent{EventType: CacheHit, Mood: "Neutral"})
	obs.OnEvent(ctx, AnalysisEvent{EventType: AnalysisFailed, ErrorType: "internal"})

	if got := testutil.ToFloat64(obs.analyses.WithLabelValues("Good")); got != 2 {
		t.Errorf("Expected 2 Good analyses, got %v", got)
	}
	if got := testutil.ToFloat64(obs.analyses.WithLabelValues("Bad")); got != 1 {
		t.Errorf("Expected 1 Bad analysis, got %v", got)
	}
	if got := testutil.ToFloat64(obs.analyses.WithLabelValues("Neutral")); got != 1 {
		t.Errorf("Expected 1 Neutral analysis from the cache, got %v", got)
	}
	if got := testutil.ToFloat64(obs.cacheHits); got != 1 {
		t.Errorf("Expected 1 cache hit, got %v", got)
	}
	if got := testutil.ToFloat64(obs.failures.WithLabelValues("internal")); got != 1 {
		t.Errorf("Expected 1 internal failure, got %v", got)
	}
	if got := testutil.CollectAndCount(obs.duration); got != 1 {
		t.Errorf("Expected one duration histogram, got %d", got)
	}

	// A second observer on the same registry must fail to register.
	if _, err := NewMetricsObserver(reg); err == nil {
		t.Error("Expected duplicate registration to fail")
	}
}
