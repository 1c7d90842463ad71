package models

// AnalysisRequest represents a request for mood analysis.
// Text is a pointer so an absent field can be told apart from "".
type AnalysisRequest struct {
	Text *string `json:"text"`
}

// NewAnalysisRequest builds a request carrying text.
func NewAnalysisRequest(text string) AnalysisRequest {
	return AnalysisRequest{Text: &text}
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Time    string `json:"time"`
	Cache   string `json:"cache,omitempty"`
}
