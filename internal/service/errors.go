package service

import "errors"

// Ingestion failure taxonomy. Underlying causes are wrapped onto these
// sentinels; callers match with errors.Is.
var (
	// ErrInvalidInput rejects empty or whitespace-only descriptions before
	// any outbound call is made.
	ErrInvalidInput = errors.New("description must not be empty")

	// ErrExtractionFailed covers transport, auth and timeout failures of
	// the AI provider call.
	ErrExtractionFailed = errors.New("expense extraction failed")

	// ErrStorageUnavailable covers transport, auth and timeout failures of
	// the store call.
	ErrStorageUnavailable = errors.New("expense store unavailable")
)
