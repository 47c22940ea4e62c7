package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/scholarsearch/internal/domain"
)

// Config holds the scholarsearch configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	Vector     VectorConfig     `yaml:"vector"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Extraction ExtractionConfig `yaml:"extraction"`
	Search     SearchConfig     `yaml:"search"`
	Indexing   IndexingConfig   `yaml:"indexing"`
	Auth       AuthConfig       `yaml:"auth"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds relational store settings.
type DatabaseConfig struct {
	Driver           string `yaml:"driver"` // sqlite3, pgx (default: sqlite3)
	DSN              string `yaml:"dsn"`
	MaxOpenConns     int    `yaml:"max_open_conns"`
	MaxIdleConns     int    `yaml:"max_idle_conns"`
	ConnMaxLifetime  int    `yaml:"conn_max_lifetime_sec"`
	ReadinessTimeout int    `yaml:"readiness_timeout_sec"`
	AutoMigrate      bool   `yaml:"auto_migrate"`
}

// VectorConfig holds the Redis vector index settings.
type VectorConfig struct {
	Enabled          bool     `yaml:"enabled"`
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	IndexName        string   `yaml:"index_name"`
	KeyPrefix        string   `yaml:"key_prefix"`
	HNSWM            int      `yaml:"hnsw_m"`
	HNSWEFConstruct  int      `yaml:"hnsw_ef_construction"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	Provider            string `yaml:"provider"`
	APIKey              string `yaml:"api_key"`
	BaseURL             string `yaml:"base_url"`
	Model               string `yaml:"model"`
	Dimensions          int    `yaml:"dimensions"`
	DocumentInstruction string `yaml:"document_instruction"`
	QueryInstruction    string `yaml:"query_instruction"`
	CacheTTLSec         int    `yaml:"cache_ttl_sec"` // 0 = no expiry
	MaxBatchSize        int    `yaml:"max_batch_size"`
}

// ExtractionConfig holds the structured extraction service settings.
type ExtractionConfig struct {
	Enabled   bool   `yaml:"enabled"`
	BaseURL   string `yaml:"base_url"`
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// SearchConfig holds query handling settings.
type SearchConfig struct {
	PageSize          int  `yaml:"page_size"`
	TopK              int  `yaml:"top_k"`
	EmbedTimeoutMs    int  `yaml:"embed_timeout_ms"`
	QueryTimeoutMs    int  `yaml:"query_timeout_ms"`
	MaxQueryLength    int  `yaml:"max_query_length"`
	CandidateFallback bool `yaml:"candidate_fallback"`
}

// IndexingConfig holds reindex settings.
type IndexingConfig struct {
	BatchSize int `yaml:"batch_size"`
	Workers   int `yaml:"workers"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	return Parse(data)
}

// Parse expands env variables, decodes YAML, applies defaults and validates.
func Parse(data []byte) (Config, error) {
	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}

	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite3"
	}
	if c.Database.DSN == "" && c.Database.Driver == "sqlite3" {
		c.Database.DSN = "data/scholarsearch.db"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}

	if c.Vector.IndexName == "" {
		c.Vector.IndexName = "scholarsearch:idx"
	}
	if c.Vector.KeyPrefix == "" {
		c.Vector.KeyPrefix = "scholarsearch:vec:"
	}
	vec := domain.DefaultVectorConfig()
	if c.Vector.HNSWM <= 0 {
		c.Vector.HNSWM = vec.HNSWM
	}
	if c.Vector.HNSWEFConstruct <= 0 {
		c.Vector.HNSWEFConstruct = vec.HNSWEFConstruction
	}
	if c.Vector.ReadinessTimeout <= 0 {
		c.Vector.ReadinessTimeout = 10
	}

	if c.Embedding.Provider == "" {
		c.Embedding.Provider = "openai"
	}
	if c.Embedding.Dimensions <= 0 {
		c.Embedding.Dimensions = vec.Dimensions
	}

	if c.Extraction.TimeoutMs <= 0 {
		c.Extraction.TimeoutMs = 3000
	}

	if c.Search.PageSize <= 0 {
		c.Search.PageSize = 100
	}
	if c.Search.TopK <= 0 {
		c.Search.TopK = 10
	}
	if c.Search.EmbedTimeoutMs <= 0 {
		c.Search.EmbedTimeoutMs = 2000
	}
	if c.Search.QueryTimeoutMs <= 0 {
		c.Search.QueryTimeoutMs = 1000
	}
	if c.Search.MaxQueryLength <= 0 {
		c.Search.MaxQueryLength = 1024
	}

	if c.Indexing.BatchSize <= 0 {
		c.Indexing.BatchSize = 32
	}
	if c.Indexing.Workers <= 0 {
		c.Indexing.Workers = 4
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case "sqlite3", "pgx":
		// ok
	default:
		return fmt.Errorf("database.driver must be \"sqlite3\" or \"pgx\", got %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Vector.Enabled {
		if len(c.Vector.Addrs) == 0 {
			return fmt.Errorf("vector.addrs is required when vector.enabled is true")
		}
		if c.Embedding.Model == "" {
			return fmt.Errorf("embedding.model is required when vector.enabled is true")
		}
	}
	if c.Extraction.Enabled && c.Extraction.Model == "" {
		return fmt.Errorf("extraction.model is required when extraction.enabled is true")
	}
	if c.Search.PageSize > 1000 {
		return fmt.Errorf("search.page_size must be at most 1000, got %d", c.Search.PageSize)
	}
	if c.Search.TopK > 100 {
		return fmt.Errorf("search.top_k must be at most 100, got %d", c.Search.TopK)
	}
	return nil
}

// Readiness returns how long startup waits for the database.
func (d DatabaseConfig) Readiness() time.Duration {
	return time.Duration(d.ReadinessTimeout) * time.Second
}

// ConnMaxLifetimeDuration returns the pooled connection lifetime; zero keeps connections forever.
func (d DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

// Readiness returns how long startup waits for Redis.
func (v VectorConfig) Readiness() time.Duration {
	return time.Duration(v.ReadinessTimeout) * time.Second
}

// CacheTTL returns the embedding cache TTL.
func (e EmbeddingConfig) CacheTTL() time.Duration {
	return time.Duration(e.CacheTTLSec) * time.Second
}

// Timeout returns the extraction deadline.
func (e ExtractionConfig) Timeout() time.Duration {
	return time.Duration(e.TimeoutMs) * time.Millisecond
}

// EmbedTimeout returns the retrieval embedding deadline.
func (s SearchConfig) EmbedTimeout() time.Duration {
	return time.Duration(s.EmbedTimeoutMs) * time.Millisecond
}

// QueryTimeout returns the vector query deadline.
func (s SearchConfig) QueryTimeout() time.Duration {
	return time.Duration(s.QueryTimeoutMs) * time.Millisecond
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
