package boe

import "errors"

var (
	// ErrUpstreamStatus indicates the gazette answered with a non-2xx status.
	ErrUpstreamStatus = errors.New("upstream returned an error status")
	// ErrBodyTooLarge indicates the response body exceeded the configured limit.
	ErrBodyTooLarge = errors.New("upstream response exceeds maximum body size")
)
