package scholarsearch

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver      string // "sqlite3" or "pgx"
	dsn         string
	autoMigrate bool

	redisAddrs    []string
	redisPassword string

	embedder         Embedder
	vectorDimensions int
	hnswM            int
	hnswEFConstruct  int

	extractionURL   string
	extractionKey   string
	extractionModel string

	pageSize int
	topK     int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithSQLite stores scholarships in a SQLite file. ":memory:" is accepted for tests.
func WithSQLite(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "sqlite3"
		c.dsn = path
	})
}

// WithPostgres stores scholarships in PostgreSQL.
func WithPostgres(dsn string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "pgx"
		c.dsn = dsn
	})
}

// WithoutMigration skips schema creation on connect.
func WithoutMigration() Option {
	return optionFunc(func(c *clientConfig) {
		c.autoMigrate = false
	})
}

// WithRedis enables the semantic candidate index on a Redis 8+ instance.
// It has no effect without WithEmbedder.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.redisAddrs = []string{addr}
		c.redisPassword = password
	})
}

// WithEmbedder sets the text embedding provider used for the vector index.
func WithEmbedder(e Embedder) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedder = e
	})
}

// WithVectorDimensions sets the embedding dimension. Defaults to 1024.
func WithVectorDimensions(dim int) Option {
	return optionFunc(func(c *clientConfig) {
		c.vectorDimensions = dim
	})
}

// WithHNSW configures HNSW index parameters (M and EF construction).
// Defaults: M=16, EFConstruct=200.
func WithHNSW(m, efConstruct int) Option {
	return optionFunc(func(c *clientConfig) {
		c.hnswM = m
		c.hnswEFConstruct = efConstruct
	})
}

// WithExtraction enables structured query extraction through an
// OpenAI-compatible chat endpoint. Without it queries are read heuristically.
func WithExtraction(baseURL, apiKey, model string) Option {
	return optionFunc(func(c *clientConfig) {
		c.extractionURL = baseURL
		c.extractionKey = apiKey
		c.extractionModel = model
	})
}

// WithPageSize caps the number of scholarships one search returns. Default: 100.
func WithPageSize(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.pageSize = n
	})
}

// WithTopK sets how many semantic candidates retrieval asks for. Default: 10.
func WithTopK(k int) Option {
	return optionFunc(func(c *clientConfig) {
		c.topK = k
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
