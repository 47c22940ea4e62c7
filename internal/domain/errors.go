package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidQuery signals a raw query the engine refuses to interpret.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrSearchFailed signals a relational store failure during search.
	// Callers see it as a generic failure; the underlying cause is only logged.
	ErrSearchFailed = errors.New("search failed")
	// ErrInvalidScholarship signals a record that cannot be stored.
	ErrInvalidScholarship = errors.New("invalid scholarship")

	// ErrExtractionUnavailable signals an unreachable or timed out extraction service.
	ErrExtractionUnavailable = errors.New("extraction unavailable")
	// ErrExtractionMalformed signals an extraction response that does not coerce into filters.
	ErrExtractionMalformed = errors.New("extraction malformed")

	// ErrInvalidVector signals an empty or all-zero vector.
	ErrInvalidVector = errors.New("invalid vector")
	// ErrVectorDimMismatch signals a vector dimension mismatch.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
	// ErrEmbeddingQuotaExceeded signals an exhausted embedding quota on the provider side.
	ErrEmbeddingQuotaExceeded = errors.New("embedding quota exceeded")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)

// MalformedFieldError wraps ErrExtractionMalformed with the offending field.
type MalformedFieldError struct {
	Field  string
	Reason string
}

func (e *MalformedFieldError) Error() string {
	return fmt.Sprintf("%s: field %q: %s", ErrExtractionMalformed.Error(), e.Field, e.Reason)
}

func (e *MalformedFieldError) Unwrap() error { return ErrExtractionMalformed }

// NewMalformedField creates a malformed extraction error for a single field.
func NewMalformedField(field, reason string) error {
	return &MalformedFieldError{Field: field, Reason: reason}
}
