package scholarsearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/scholarsearch/internal/app"
	"github.com/kailas-cloud/scholarsearch/internal/config"
	"github.com/kailas-cloud/scholarsearch/internal/domain/scholarship"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/resolution"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/scholarsearch/internal/usecase/health"
	"github.com/kailas-cloud/scholarsearch/internal/usecase/indexing"
)

// Внутренние интерфейсы для подмены в тестах.
type searchUseCase interface {
	Search(ctx context.Context, raw string) (result.Result, error)
	List(ctx context.Context) (result.Result, error)
	Get(ctx context.Context, id int64) (scholarship.Scholarship, error)
}

type extractionUseCase interface {
	Resolve(ctx context.Context, text string) resolution.Resolution
}

type writeStore interface {
	Upsert(ctx context.Context, records []scholarship.Scholarship) ([]int64, error)
}

type indexer interface {
	Reindex(ctx context.Context) (indexing.Report, error)
}

// Client is the scholarsearch SDK entry point.
type Client struct {
	search  searchUseCase
	extract extractionUseCase
	store   writeStore
	indexer indexer
	health  healthUseCase
	closeFn func()
	obs     *observer
}

// New opens the store and wires the search engine.
// The provided context bounds connecting and migrating.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cc := &clientConfig{autoMigrate: true}
	for _, o := range opts {
		o.apply(cc)
	}
	if cc.driver == "" || cc.dsn == "" {
		return nil, errors.New("scholarsearch: database required (use WithSQLite or WithPostgres)")
	}

	obs, err := newObserver(cc.logger, cc.metricsReg)
	if err != nil {
		return nil, err
	}

	var buildOpts []app.Option
	if cc.embedder != nil {
		buildOpts = append(buildOpts, app.WithEmbedder(&embedderAdapter{inner: cc.embedder}))
	}

	a, err := app.Build(ctx, buildConfig(cc), zap.NewNop(), buildOpts...)
	if err != nil {
		return nil, fmt.Errorf("scholarsearch: %w", err)
	}

	return &Client{
		search:  a.Search,
		extract: a.Extraction,
		store:   a.Store,
		indexer: a,
		health:  a.Health,
		closeFn: a.Close,
		obs:     obs,
	}, nil
}

// buildConfig maps client options onto the service configuration.
func buildConfig(cc *clientConfig) config.Config {
	var cfg config.Config
	cfg.Database.Driver = cc.driver
	cfg.Database.DSN = cc.dsn
	cfg.Database.AutoMigrate = cc.autoMigrate

	if len(cc.redisAddrs) > 0 && cc.embedder != nil {
		cfg.Vector.Enabled = true
		cfg.Vector.Addrs = cc.redisAddrs
		cfg.Vector.Password = cc.redisPassword
		cfg.Vector.HNSWM = cc.hnswM
		cfg.Vector.HNSWEFConstruct = cc.hnswEFConstruct
		cfg.Embedding.Provider = "sdk"
		cfg.Embedding.Model = "sdk"
		cfg.Embedding.Dimensions = cc.vectorDimensions
	}

	if cc.extractionModel != "" {
		cfg.Extraction.Enabled = true
		cfg.Extraction.BaseURL = cc.extractionURL
		cfg.Extraction.APIKey = cc.extractionKey
		cfg.Extraction.Model = cc.extractionModel
	}

	cfg.Search.PageSize = cc.pageSize
	cfg.Search.TopK = cc.topK

	cfg.ApplyDefaults()
	return cfg
}

// Close releases all resources.
func (c *Client) Close() {
	if c.closeFn != nil {
		c.closeFn()
	}
}

// Search interprets a free-text query and returns matching active scholarships.
// An empty query lists every active scholarship.
func (c *Client) Search(ctx context.Context, query string) (_ Results, err error) {
	start := time.Now()
	var res result.Result
	defer func() { c.obs.observe("search", start, err, resultAttrs(&res)...) }()

	res, err = c.search.Search(ctx, query)
	if err != nil {
		return Results{}, fmt.Errorf("search: %w", err)
	}
	return resultsFromDomain(&res), nil
}

// List returns every active scholarship in deadline order.
func (c *Client) List(ctx context.Context) (_ Results, err error) {
	start := time.Now()
	defer func() { c.obs.observe("list", start, err) }()

	res, err := c.search.List(ctx)
	if err != nil {
		return Results{}, fmt.Errorf("list: %w", err)
	}
	return resultsFromDomain(&res), nil
}

// Get returns a scholarship by id, active or not.
func (c *Client) Get(ctx context.Context, id int64) (_ Scholarship, err error) {
	start := time.Now()
	defer func() { c.obs.observe("get", start, err) }()

	sc, err := c.search.Get(ctx, id)
	if err != nil {
		return Scholarship{}, fmt.Errorf("get: %w", err)
	}
	return scholarshipFromDomain(&sc), nil
}

// Interpret shows how a query would be read, without searching.
func (c *Client) Interpret(ctx context.Context, query string) Interpretation {
	start := time.Now()
	res := c.extract.Resolve(ctx, query)
	c.obs.observe("interpret", start, nil, "source", string(res.Source), "reason", string(res.Reason))
	return interpretationFromDomain(&res)
}

// Upsert inserts or replaces scholarships. Records with a zero ID get a new one.
// It returns the stored IDs in input order.
func (c *Client) Upsert(ctx context.Context, records []Scholarship) (_ []int64, err error) {
	start := time.Now()
	defer func() { c.obs.observe("upsert", start, err, "count", len(records)) }()

	dom := make([]scholarship.Scholarship, len(records))
	for i := range records {
		dom[i] = records[i].toDomain()
	}
	ids, err := c.store.Upsert(ctx, dom)
	if err != nil {
		return nil, fmt.Errorf("upsert: %w", err)
	}
	return ids, nil
}

// Reindex embeds every active scholarship into the vector index.
// It returns ErrIndexingDisabled unless WithRedis and WithEmbedder were given.
func (c *Client) Reindex(ctx context.Context) (_ IndexReport, err error) {
	start := time.Now()
	defer func() { c.obs.observe("reindex", start, err) }()

	r, err := c.indexer.Reindex(ctx)
	if err != nil {
		return IndexReport{}, err //nolint:wrapcheck // app already prefixes "reindex"
	}
	return IndexReport{Total: r.Total, Indexed: r.Indexed, Failed: r.Failed}, nil
}

func resultAttrs(res *result.Result) []any {
	rs := res.Resolution()
	if rs == nil {
		return []any{"count", res.Len()}
	}
	return []any{"count", res.Len(), "source", string(rs.Source), "reason", string(rs.Reason)}
}

// healthUseCase is the internal interface for health checks.
type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
