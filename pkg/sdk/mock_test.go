package scholarsearch

import (
	"context"

	"github.com/kailas-cloud/scholarsearch/internal/domain/scholarship"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/resolution"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/scholarsearch/internal/usecase/health"
	"github.com/kailas-cloud/scholarsearch/internal/usecase/indexing"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, raw string) (result.Result, error)
	listFn   func(ctx context.Context) (result.Result, error)
	getFn    func(ctx context.Context, id int64) (scholarship.Scholarship, error)
}

func (m *mockSearchUC) Search(ctx context.Context, raw string) (result.Result, error) {
	return m.searchFn(ctx, raw)
}

func (m *mockSearchUC) List(ctx context.Context) (result.Result, error) {
	return m.listFn(ctx)
}

func (m *mockSearchUC) Get(ctx context.Context, id int64) (scholarship.Scholarship, error) {
	return m.getFn(ctx, id)
}

// --- extractionUseCase mock ---

type mockExtractionUC struct {
	fn func(ctx context.Context, text string) resolution.Resolution
}

func (m *mockExtractionUC) Resolve(ctx context.Context, text string) resolution.Resolution {
	return m.fn(ctx, text)
}

// --- writeStore mock ---

type mockStore struct {
	upsertFn func(ctx context.Context, records []scholarship.Scholarship) ([]int64, error)
}

func (m *mockStore) Upsert(ctx context.Context, records []scholarship.Scholarship) ([]int64, error) {
	return m.upsertFn(ctx, records)
}

// --- indexer mock ---

type mockIndexer struct {
	fn func(ctx context.Context) (indexing.Report, error)
}

func (m *mockIndexer) Reindex(ctx context.Context) (indexing.Report, error) {
	return m.fn(ctx)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }

// --- embedders ---

type mockEmbedder struct {
	fn func(ctx context.Context, text string) (EmbeddingResult, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (EmbeddingResult, error) {
	return m.fn(ctx, text)
}

type mockBatchEmbedder struct {
	mockEmbedder
	batchFn func(ctx context.Context, texts []string) (BatchEmbeddingResult, error)
}

func (m *mockBatchEmbedder) BatchEmbed(ctx context.Context, texts []string) (BatchEmbeddingResult, error) {
	return m.batchFn(ctx, texts)
}
