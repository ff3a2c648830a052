package models

import "errors"

// Domain specific errors for trip planning.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrGenerationFailed    = errors.New("trip plan generation failed")
	ErrMalformedPlan       = errors.New("trip plan response is not valid JSON")
	ErrSuggestionNotFound  = errors.New("suggestion not found")
	ErrMissingAPIKey       = errors.New("generative service API key is not set")
	ErrUnsupportedProvider = errors.New("unsupported generative service provider")
)
