package models

// Mood is the three-way label derived from a polarity score.
type Mood string

const (
	MoodGood    Mood = "Good"
	MoodNeutral Mood = "Neutral"
	MoodBad     Mood = "Bad"
)

// Valid reports whether m is one of the known moods.
func (m Mood) Valid() bool {
	switch m {
	case MoodGood, MoodNeutral, MoodBad:
		return true
	}
	return false
}

// AnalysisResult is the outcome of classifying one text.
// Text is echoed back exactly as received.
type AnalysisResult struct {
	Text           string  `json:"text"`
	SentimentScore float64 `json:"sentiment_score"`
	Mood           Mood    `json:"mood"`
}

// NeutralResult is returned for empty or whitespace-only text.
func NeutralResult(text string) *AnalysisResult {
	return &AnalysisResult{
		Text:           text,
		SentimentScore: 0.0,
		Mood:           MoodNeutral,
	}
}
