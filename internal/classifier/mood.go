package classifier

import "go-mood-analyzer/pkg/models"

// Classify maps a polarity score to a mood. Scores on a threshold are
// Neutral.
func Classify(score float64, t Thresholds) models.Mood {
	switch {
	case score > t.Positive:
		return models.MoodGood
	case score < t.Negative:
		return models.MoodBad
	default:
		return models.MoodNeutral
	}
}
