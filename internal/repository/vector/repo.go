// Package vector stores scholarship embeddings in a RediSearch HNSW index
// and answers nearest-neighbor queries over them.
package vector

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/scholarsearch/internal/db"
	"github.com/kailas-cloud/scholarsearch/internal/domain"
	"github.com/kailas-cloud/scholarsearch/internal/domain/scholarship"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/candidate"
)

const (
	vectorField = "vector"
	fieldName   = "name"
	fieldCat    = "category"
	fieldType   = "type"
	fieldAmount = "amount"
)

// store is the consumer interface for vector operations (ISP).
type store interface {
	IndexExists(ctx context.Context, name string) (bool, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	Del(ctx context.Context, keys ...string) error
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Config describes the index layout.
type Config struct {
	IndexName      string
	KeyPrefix      string
	Dimensions     int
	HNSWM          int
	EFConstruction int
}

// Repo implements the vector index used by retrieval and indexing.
type Repo struct {
	store store
	cfg   Config
}

// New creates a vector repository.
func New(s store, cfg Config) *Repo {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = domain.KeyPrefix + "vec:"
	}
	if cfg.IndexName == "" {
		cfg.IndexName = domain.KeyPrefix + "idx"
	}
	return &Repo{store: s, cfg: cfg}
}

// EnsureIndex creates the HNSW index when it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, r.cfg.IndexName)
	if err != nil {
		return fmt.Errorf("check index %s: %w", r.cfg.IndexName, err)
	}
	if exists {
		return nil
	}

	def, err := r.definition()
	if err != nil {
		return err
	}
	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index %s: %w", r.cfg.IndexName, err)
	}
	return nil
}

// DropIndex removes the index. Hashes stay in place and are picked up again on re-creation.
// A missing index is not an error.
func (r *Repo) DropIndex(ctx context.Context) error {
	if err := r.store.DropIndex(ctx, r.cfg.IndexName); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
		return fmt.Errorf("drop index %s: %w", r.cfg.IndexName, err)
	}
	return nil
}

func (r *Repo) definition() (*db.IndexDefinition, error) {
	def, err := db.NewIndex(r.cfg.IndexName).
		Prefix(r.cfg.KeyPrefix).
		Text(fieldName).
		TagSeparated(fieldCat, ",").
		Tag(fieldType).
		Numeric(fieldAmount).
		VectorHNSW(vectorField, r.cfg.Dimensions, db.DistanceCosine, r.cfg.HNSWM, r.cfg.EFConstruction).
		Build()
	if err != nil {
		return nil, fmt.Errorf("index definition: %w", err)
	}
	return def, nil
}

// Upsert writes embeddings in one round-trip. Invalid vectors reject the whole batch.
func (r *Repo) Upsert(ctx context.Context, items []scholarship.Embedded) error {
	if len(items) == 0 {
		return nil
	}

	hashes := make([]db.HashSetItem, 0, len(items))
	for _, it := range items {
		if err := r.checkVector(it.Vector); err != nil {
			return fmt.Errorf("scholarship %d: %w", it.ID, err)
		}
		fields := make(map[string]string, len(it.Metadata)+1)
		for k, v := range it.Metadata {
			fields[k] = v
		}
		fields[vectorField] = vectorToBytes(it.Vector)
		hashes = append(hashes, db.HashSetItem{Key: r.key(it.ID), Fields: fields})
	}

	if err := r.store.HSetMulti(ctx, hashes); err != nil {
		return fmt.Errorf("upsert %d vectors: %w", len(items), err)
	}
	return nil
}

// Delete removes embeddings by scholarship id.
func (r *Repo) Delete(ctx context.Context, ids ...int64) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.key(id)
	}
	if err := r.store.Del(ctx, keys...); err != nil {
		return fmt.Errorf("delete %d vectors: %w", len(ids), err)
	}
	return nil
}

// Query returns the topK nearest scholarships to vec. Entries whose key
// does not carry a numeric id are skipped.
func (r *Repo) Query(ctx context.Context, vec []float32, topK int) ([]candidate.Hit, error) {
	if err := r.checkVector(vec); err != nil {
		return nil, err
	}

	sr, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		IndexName:    r.cfg.IndexName,
		VectorField:  vectorField,
		Vector:       vec,
		K:            topK,
		ReturnFields: []string{fieldName},
	})
	if err != nil {
		return nil, fmt.Errorf("knn %s: %w", r.cfg.IndexName, err)
	}

	return r.parseHits(sr), nil
}

func (r *Repo) parseHits(sr *db.SearchResult) []candidate.Hit {
	if sr == nil || len(sr.Entries) == 0 {
		return nil
	}
	hits := make([]candidate.Hit, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		raw, ok := strings.CutPrefix(entry.Key, r.cfg.KeyPrefix)
		if !ok {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		hits = append(hits, candidate.Hit{ID: id, Score: entry.Score})
	}
	return hits
}

func (r *Repo) checkVector(vec []float32) error {
	if err := domain.ValidateVector(vec); err != nil {
		return err
	}
	if r.cfg.Dimensions > 0 && len(vec) != r.cfg.Dimensions {
		return fmt.Errorf("%w: expected %d, got %d", domain.ErrVectorDimMismatch, r.cfg.Dimensions, len(vec))
	}
	return nil
}

func (r *Repo) key(id int64) string {
	return r.cfg.KeyPrefix + strconv.FormatInt(id, 10)
}
