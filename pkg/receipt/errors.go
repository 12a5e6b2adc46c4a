package receipt

import "errors"

var (
	ErrMissingBaseURL     = errors.New("receipt validation base URL is required")
	ErrMissingAPIKey      = errors.New("receipt validation API key is required")
	ErrInvalidEnvironment = errors.New("invalid receipt validation environment")
	ErrInvalidPlatform    = errors.New("invalid receipt platform")

	ErrRequestFailed    = errors.New("receipt validation request failed")
	ErrUnexpectedStatus = errors.New("receipt validation backend returned unexpected status")
	ErrMalformedReply   = errors.New("receipt validation backend returned a malformed reply")
)
