// Package health aggregates dependency checks into a single service status.
package health

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/scholarsearch/internal/logger"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates an optional component is failing; search still works
	// without semantic candidates.
	Degraded Status = "degraded"
	// Unhealthy indicates the relational store is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component names.
const (
	ComponentDatabase  = "database"
	ComponentVector    = "vector"
	ComponentEmbedding = "embedding"
)

// DefaultCheckTimeout bounds each individual check.
const DefaultCheckTimeout = 2 * time.Second

// Report aggregates health check results.
type Report struct {
	Status Status                 `json:"status"`
	Checks map[string]CheckResult `json:"checks"`
}

// Service coordinates health checks.
type Service struct {
	db        DBPinger
	vector    VectorPinger
	embedding EmbeddingChecker
	timeout   time.Duration
}

// New creates a Service. vector and embedding can be nil when semantic retrieval is disabled.
func New(db DBPinger, vector VectorPinger, embedding EmbeddingChecker) *Service {
	return &Service{db: db, vector: vector, embedding: embedding, timeout: DefaultCheckTimeout}
}

// Check runs all configured checks concurrently.
func (s *Service) Check(ctx context.Context) Report {
	checks := map[string]func(context.Context) error{
		ComponentDatabase: s.db.Ping,
	}
	if s.vector != nil {
		checks[ComponentVector] = s.vector.Ping
	}
	if s.embedding != nil {
		checks[ComponentEmbedding] = s.embedding.HealthCheck
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]CheckResult, len(checks))
	)
	for name, check := range checks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cctx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			res := CheckOK
			if err := check(cctx); err != nil {
				res = CheckError
				logger.FromContext(ctx).Warn("health check failed",
					zap.String("component", name), zap.Error(err))
			}
			mu.Lock()
			results[name] = res
			mu.Unlock()
		}()
	}
	wg.Wait()

	status := Healthy
	for _, v := range results {
		if v == CheckError {
			status = Degraded
			break
		}
	}
	if results[ComponentDatabase] == CheckError {
		status = Unhealthy
	}

	return Report{Status: status, Checks: results}
}
