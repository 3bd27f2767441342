package voice

import "errors"

var (
	// ErrInvalidInput means the caller supplied no URL.
	ErrInvalidInput = errors.New("url is required")
	// ErrNotConfigured means no model-service credential was injected.
	ErrNotConfigured = errors.New("model api key not configured")
	// ErrAnalysisUnavailable means no attempt produced an extractable JSON object.
	ErrAnalysisUnavailable = errors.New("could not generate analysis")
)
