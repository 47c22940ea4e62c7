package domain

import "context"

type usageKey struct{}

// Usage collects token consumption for a single request.
// The handler puts a mutable pointer into the context before calling the service;
// the embedding and extraction layers write to it; the handler reads it for response headers.
//
// Resolver and retriever run concurrently but touch different fields.
type Usage struct {
	EmbeddingTokens  int
	ExtractionTokens int
	Embedded         bool // true if embedding was called, even on a cache hit with 0 tokens
}

// NewContextWithUsage returns a context with an attached usage collector.
func NewContextWithUsage(ctx context.Context) (context.Context, *Usage) {
	u := &Usage{}
	return context.WithValue(ctx, usageKey{}, u), u
}

// UsageFromContext extracts the usage collector from context. Returns nil if not set.
func UsageFromContext(ctx context.Context) *Usage {
	u, _ := ctx.Value(usageKey{}).(*Usage)
	return u
}

// AddEmbeddingTokens records tokens spent on embeddings.
func (u *Usage) AddEmbeddingTokens(n int) {
	if u != nil {
		u.EmbeddingTokens += n
		u.Embedded = true
	}
}

// AddExtractionTokens records tokens spent on structured extraction.
func (u *Usage) AddExtractionTokens(n int) {
	if u != nil {
		u.ExtractionTokens += n
	}
}
