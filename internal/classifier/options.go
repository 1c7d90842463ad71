package classifier

import "fmt"

// Thresholds bound the Neutral band. Scores strictly above Positive are
// Good, strictly below Negative are Bad.
type Thresholds struct {
	Positive float64
	Negative float64
}

// Validate checks -1 <= Negative <= Positive <= 1.
func (t Thresholds) Validate() error {
	if t.Negative < -1 || t.Positive > 1 || t.Negative > t.Positive {
		return fmt.Errorf("invalid thresholds: negative=%g positive=%g", t.Negative, t.Positive)
	}
	return nil
}

// Options configures a MoodClassifier.
type Options struct {
	Thresholds Thresholds
}

// DefaultOptions returns default classifier options
func DefaultOptions() Options {
	return Options{
		Thresholds: Thresholds{
			Positive: 0.1,
			Negative: -0.1,
		},
	}
}

// WithThresholds returns options with custom mood thresholds
func (opts Options) WithThresholds(positive, negative float64) Options {
	opts.Thresholds = Thresholds{Positive: positive, Negative: negative}
	return opts
}
