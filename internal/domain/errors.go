package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrEmptyPrompt         = errors.New("prompt is required")
)

// ConfigurationError marks a fatal pre-flight problem such as a missing
// credential or an unknown asset type key. It is never retried.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration: " + e.Reason
}

// ProviderErrorKind classifies provider failures so the orchestrator can
// decide which ones are worth another attempt.
type ProviderErrorKind string

const (
	ProviderErrEmptyResponse ProviderErrorKind = "empty_response"
	ProviderErrTransport     ProviderErrorKind = "transport"
	ProviderErrRateLimited   ProviderErrorKind = "rate_limited"
	ProviderErrUpstream      ProviderErrorKind = "upstream"
	ProviderErrBadRequest    ProviderErrorKind = "bad_request"
)

// ProviderError is a normalized failure from a generation backend.
type ProviderError struct {
	Provider string
	Kind     ProviderErrorKind
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Kind)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Retryable reports whether another attempt against the provider could
// plausibly succeed. Transport failures, rate limiting, upstream 5xx
// responses, and empty results qualify; each image attempt carries a fresh
// seed, so an empty result is worth another roll. Malformed requests do not.
func (e *ProviderError) Retryable() bool {
	switch e.Kind {
	case ProviderErrTransport, ProviderErrRateLimited, ProviderErrUpstream, ProviderErrEmptyResponse:
		return true
	}
	return false
}

// GenerationError is the terminal failure after exhausting all attempts.
type GenerationError struct {
	AssetType AssetType
	Attempts  int
	Last      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("failed to generate %s after %d attempts: %v", e.AssetType, e.Attempts, e.Last)
}

func (e *GenerationError) Unwrap() error {
	return e.Last
}

// PersistenceError wraps blob upload or record append failures. By the time
// it is returned no credits have been debited.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ErrVerificationUnavailable signals that the OCR backend could not be
// reached. Callers treat the artifact as unverified, not invalid.
var ErrVerificationUnavailable = errors.New("verification unavailable")
