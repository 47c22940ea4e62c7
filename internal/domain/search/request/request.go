package request

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Query limits.
const (
	// DefaultMaxQueryLength bounds the raw query in bytes.
	DefaultMaxQueryLength = 1024
	// PageSize is the fixed number of records a search returns at most.
	PageSize = 100
	// DefaultTopK is the number of semantic candidates requested.
	DefaultTopK = 10
)

// Request is a validated raw search query.
type Request struct {
	query string
}

// New trims and validates a raw query. An empty query is valid and selects
// the default listing of active scholarships.
func New(raw string, maxLen int) (Request, error) {
	if maxLen <= 0 {
		maxLen = DefaultMaxQueryLength
	}
	if !utf8.ValidString(raw) {
		return Request{}, fmt.Errorf("query must be valid UTF-8")
	}
	q := strings.TrimSpace(raw)
	if len(q) > maxLen {
		return Request{}, fmt.Errorf("query too long (max %d bytes)", maxLen)
	}
	return Request{query: q}, nil
}

// Query returns the trimmed query text.
func (r Request) Query() string { return r.query }

// IsEmpty reports whether the request lists without filtering.
func (r Request) IsEmpty() bool { return r.query == "" }
