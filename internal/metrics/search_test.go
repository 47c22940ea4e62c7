package metrics

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterSearchMetrics_Idempotent(t *testing.T) {
	RegisterSearchMetrics()
	RegisterSearchMetrics()

	ExtractionOutcomesTotal.WithLabelValues("heuristic", "timeout").Inc()
	if v := testutil.ToFloat64(ExtractionOutcomesTotal.WithLabelValues("heuristic", "timeout")); v < 1 {
		t.Errorf("expected outcome counter >= 1, got %f", v)
	}
}

func TestRegisterEmbeddingMetrics_Idempotent(t *testing.T) {
	RegisterEmbeddingMetrics()
	RegisterEmbeddingMetrics()

	EmbeddingCacheTotal.WithLabelValues("hit").Inc()
	if v := testutil.ToFloat64(EmbeddingCacheTotal.WithLabelValues("hit")); v < 1 {
		t.Errorf("expected cache counter >= 1, got %f", v)
	}
}

func TestRegisterMetrics_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			RegisterEmbeddingMetrics()
			RegisterSearchMetrics()
		}()
	}
	wg.Wait()

	EmbeddingTokensTotal.WithLabelValues("test", "m", "prompt").Add(2)
	if v := testutil.ToFloat64(EmbeddingTokensTotal.WithLabelValues("test", "m", "prompt")); v < 2 {
		t.Errorf("expected token counter >= 2, got %f", v)
	}
}
