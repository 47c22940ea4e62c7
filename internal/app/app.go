// Package app is the composition root shared by the server and the CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/scholarsearch/internal/config"
	dbRedis "github.com/kailas-cloud/scholarsearch/internal/db/redis"
	"github.com/kailas-cloud/scholarsearch/internal/domain"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/heuristic"
	"github.com/kailas-cloud/scholarsearch/internal/metrics"
	"github.com/kailas-cloud/scholarsearch/internal/repository/embcache"
	"github.com/kailas-cloud/scholarsearch/internal/repository/vector"
	"github.com/kailas-cloud/scholarsearch/internal/storage"
	chiTransport "github.com/kailas-cloud/scholarsearch/internal/transport/chi"
	"github.com/kailas-cloud/scholarsearch/internal/transport/llm"
	"github.com/kailas-cloud/scholarsearch/internal/transport/openai"
	embeddinguc "github.com/kailas-cloud/scholarsearch/internal/usecase/embedding"
	"github.com/kailas-cloud/scholarsearch/internal/usecase/extraction"
	healthuc "github.com/kailas-cloud/scholarsearch/internal/usecase/health"
	"github.com/kailas-cloud/scholarsearch/internal/usecase/indexing"
	"github.com/kailas-cloud/scholarsearch/internal/usecase/retrieval"
	searchuc "github.com/kailas-cloud/scholarsearch/internal/usecase/search"
)

// ErrIndexingDisabled is returned by Reindex when no vector index is configured.
var ErrIndexingDisabled = errors.New("vector index is disabled")

// Option customizes Build.
type Option func(*buildOptions)

type buildOptions struct {
	embedder domain.Embedder
}

// WithEmbedder replaces the configured OpenAI-compatible provider.
// The cache and instruction decorators still wrap it.
func WithEmbedder(e domain.Embedder) Option {
	return func(o *buildOptions) { o.embedder = e }
}

// App holds the wired services.
type App struct {
	cfg    config.Config
	opts   buildOptions
	logger *zap.Logger

	Store      *storage.Store
	Extraction *extraction.Service
	Retrieval  *retrieval.Service
	Search     *searchuc.Service
	Health     *healthuc.Service

	redis   *dbRedis.Store
	indexer *indexing.Service
}

// Build opens the stores and wires every service from cfg.
// The vector index and the structured extractor are optional; search degrades without them.
func Build(ctx context.Context, cfg config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterSearchMetrics()

	a := &App{cfg: cfg, logger: logger}
	for _, o := range opts {
		o(&a.opts)
	}

	openCtx, cancel := context.WithTimeout(ctx, cfg.Database.Readiness())
	defer cancel()
	store, err := storage.Open(openCtx, storage.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetimeDuration(),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	a.Store = store
	if cfg.Database.AutoMigrate {
		if err := store.Migrate(ctx); err != nil {
			a.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	logger.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

	// Pass nil interfaces (not typed nil pointers) for disabled components.
	var (
		retrievalEmbed retrieval.Embedder
		retrievalIndex retrieval.Index
		vectorPinger   healthuc.VectorPinger
		embedChecker   healthuc.EmbeddingChecker
		structured     extraction.StructuredExtractor
	)

	if cfg.Vector.Enabled {
		if err := a.buildVector(ctx, &retrievalEmbed, &retrievalIndex, &embedChecker); err != nil {
			a.Close()
			return nil, err
		}
		vectorPinger = a.redis
	}

	if cfg.Extraction.Enabled {
		ex, err := llm.NewExtractor(&llm.Config{
			BaseURL: cfg.Extraction.BaseURL,
			APIKey:  cfg.Extraction.APIKey,
			Model:   cfg.Extraction.Model,
			Logger:  logger,
		})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("create extractor: %w", err)
		}
		structured = ex
		logger.Info("Structured extraction enabled", zap.String("model", cfg.Extraction.Model))
	}

	a.Extraction = extraction.New(structured, heuristic.New(), cfg.Extraction.Timeout())
	a.Retrieval = retrieval.New(retrievalEmbed, retrievalIndex, retrieval.Options{
		TopK:         cfg.Search.TopK,
		EmbedTimeout: cfg.Search.EmbedTimeout(),
		QueryTimeout: cfg.Search.QueryTimeout(),
	})
	a.Search = searchuc.New(store, a.Extraction, a.Retrieval, searchuc.Options{
		PageSize:          cfg.Search.PageSize,
		MaxQueryLength:    cfg.Search.MaxQueryLength,
		CandidateFallback: cfg.Search.CandidateFallback,
	})
	a.Health = healthuc.New(store, vectorPinger, embedChecker)

	return a, nil
}

func (a *App) buildVector(
	ctx context.Context,
	retrievalEmbed *retrieval.Embedder,
	retrievalIndex *retrieval.Index,
	embedChecker *healthuc.EmbeddingChecker,
) error {
	cfg := a.cfg
	rs, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Vector.Addrs,
		Password: cfg.Vector.Password,
	})
	if err != nil {
		return fmt.Errorf("create redis store: %w", err)
	}
	a.redis = rs
	if err := rs.WaitForReady(ctx, cfg.Vector.Readiness()); err != nil {
		return fmt.Errorf("redis not ready: %w", err)
	}
	a.logger.Info("Connected to vector store", zap.Strings("addrs", cfg.Vector.Addrs))

	var provider domain.Embedder = a.opts.embedder
	if provider == nil {
		provider = openai.NewEmbedder(&openai.Config{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			Provider:   cfg.Embedding.Provider,
			Logger:     a.logger,
		})
	}

	docEmbedder := a.buildEmbedder(provider, cfg.Embedding.DocumentInstruction)
	queryEmbedder := a.buildEmbedder(provider, cfg.Embedding.QueryInstruction)

	repo := vector.New(rs, vector.Config{
		IndexName:      cfg.Vector.IndexName,
		KeyPrefix:      cfg.Vector.KeyPrefix,
		Dimensions:     cfg.Embedding.Dimensions,
		HNSWM:          cfg.Vector.HNSWM,
		EFConstruction: cfg.Vector.HNSWEFConstruct,
	})

	a.indexer = indexing.New(a.Store, repo, docEmbedder, indexing.Options{
		BatchSize: cfg.Indexing.BatchSize,
		Workers:   cfg.Indexing.Workers,
	})

	*retrievalEmbed = queryEmbedder
	*retrievalIndex = repo
	if hc, ok := provider.(domain.HealthChecker); ok {
		*embedChecker = hc
	} else {
		*embedChecker = embedProbe{provider}
	}

	a.logger.Info("Embedders created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)
	return nil
}

// buildEmbedder assembles provider -> cache -> instrumentation -> instruction.
func (a *App) buildEmbedder(provider domain.Embedder, instruction string) domain.Embedder {
	cfg := a.cfg.Embedding

	cached := embcache.New(provider, a.redis, cfg.Model, cfg.CacheTTL(), metrics.EmbeddingCacheTotal, a.logger)
	var embedder domain.Embedder = embeddinguc.NewInstrumentedEmbedder(
		cached, cfg.Provider, cfg.Model, cfg.MaxBatchSize, a.logger,
	)
	if instruction != "" {
		return domain.NewInstructionEmbedder(embedder, instruction)
	}
	return embedder
}

// embedProbe checks a provider without a dedicated health endpoint by embedding a short text.
type embedProbe struct {
	embedder domain.Embedder
}

func (p embedProbe) HealthCheck(ctx context.Context) error {
	if _, err := p.embedder.Embed(ctx, "health"); err != nil {
		return fmt.Errorf("embedding probe: %w", err)
	}
	return nil
}

// Reindex rebuilds vectors for every active scholarship.
func (a *App) Reindex(ctx context.Context) (indexing.Report, error) {
	if a.indexer == nil {
		return indexing.Report{}, ErrIndexingDisabled
	}
	report, err := a.indexer.Reindex(ctx)
	if err != nil {
		return report, fmt.Errorf("reindex: %w", err)
	}
	return report, nil
}

// Rebuild drops the vector index and reindexes every active scholarship.
func (a *App) Rebuild(ctx context.Context) (indexing.Report, error) {
	if a.indexer == nil {
		return indexing.Report{}, ErrIndexingDisabled
	}
	report, err := a.indexer.Rebuild(ctx)
	if err != nil {
		return report, fmt.Errorf("rebuild: %w", err)
	}
	return report, nil
}

// Handler returns the HTTP API with its middleware chain.
func (a *App) Handler() http.Handler {
	server := chiTransport.NewServer(a.Search, a.Health, promhttp.Handler(), a.logger)
	return chiTransport.NewRouter(server, chiTransport.RouterOptions{
		APIKeys: a.cfg.Auth.APIKeys,
		Logger:  a.logger,
	})
}

// Close releases the stores.
func (a *App) Close() {
	if a.redis != nil {
		a.redis.Close()
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.logger.Warn("close database", zap.Error(err))
		}
	}
}
