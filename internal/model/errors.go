package model

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedUpstreamPayload = errors.New("malformed upstream payload")
	ErrUpstreamTimeout          = errors.New("upstream timeout")
	ErrUpstreamUnavailable      = errors.New("upstream unavailable")
	ErrEmptyCorpus              = errors.New("empty corpus")
	ErrModelUnavailable         = errors.New("summarization model unavailable")
	ErrPersistenceFailure       = errors.New("report persistence failure")
	ErrInvalidRequest           = errors.New("invalid request")
)

// UpstreamError records which provider failed and, when the provider answered at all,
// the HTTP status it answered with.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
