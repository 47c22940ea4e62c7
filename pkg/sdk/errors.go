package scholarsearch

import (
	"github.com/kailas-cloud/scholarsearch/internal/app"
	"github.com/kailas-cloud/scholarsearch/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound               = domain.ErrNotFound
	ErrInvalidQuery           = domain.ErrInvalidQuery
	ErrSearchFailed           = domain.ErrSearchFailed
	ErrInvalidScholarship     = domain.ErrInvalidScholarship
	ErrVectorDimMismatch      = domain.ErrVectorDimMismatch
	ErrRateLimited            = domain.ErrRateLimited
	ErrEmbeddingQuotaExceeded = domain.ErrEmbeddingQuotaExceeded
	ErrEmbeddingProviderError = domain.ErrEmbeddingProviderError
	ErrIndexingDisabled       = app.ErrIndexingDisabled
)
