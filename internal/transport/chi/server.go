// Package chi exposes the search engine over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/scholarsearch/internal/domain"
	"github.com/kailas-cloud/scholarsearch/internal/domain/scholarship"
	"github.com/kailas-cloud/scholarsearch/internal/domain/search/result"
	"github.com/kailas-cloud/scholarsearch/internal/logger"
	healthuc "github.com/kailas-cloud/scholarsearch/internal/usecase/health"
)

const maxBodyBytes = 64 << 10

// Searcher answers scholarship queries.
type Searcher interface {
	Search(ctx context.Context, raw string) (result.Result, error)
	List(ctx context.Context) (result.Result, error)
	Get(ctx context.Context, id int64) (scholarship.Scholarship, error)
}

// HealthChecker reports dependency health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server implements ServerInterface.
type Server struct {
	search        Searcher
	health        HealthChecker
	metrics       http.Handler
	logger        *zap.Logger
	errorHandlers []errorHandler
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server. metrics may be nil to serve the default registry.
func NewServer(search Searcher, health HealthChecker, metrics http.Handler, logger *zap.Logger) *Server {
	if metrics == nil {
		metrics = promhttp.Handler()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		search:  search,
		health:  health,
		metrics: metrics,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, ErrorResponseCodeInvalidQuery),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorResponseCodeNotFound),
		// the store cause never reaches the client
		fixedHandler(domain.ErrSearchFailed, http.StatusInternalServerError,
			ErrorResponseCodeSearchFailed, domain.ErrSearchFailed.Error()),
		fixedHandler(context.DeadlineExceeded, http.StatusGatewayTimeout,
			ErrorResponseCodeRequestCancelled, "request timed out"),
		fixedHandler(context.Canceled, http.StatusServiceUnavailable,
			ErrorResponseCodeRequestCancelled, "request cancelled"),
	}
	return s
}

// ListScholarships handles GET /v1/scholarships.
func (s *Server) ListScholarships(w http.ResponseWriter, r *http.Request) {
	res, err := s.search.List(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resultToAPI(&res))
}

// SearchScholarships handles GET /v1/scholarships/search?q=.
func (s *Server) SearchScholarships(w http.ResponseWriter, r *http.Request, params SearchScholarshipsParams) {
	var q string
	if params.Q != nil {
		q = *params.Q
	}
	s.runSearch(w, r, q)
}

// SearchScholarshipsPost handles POST /v1/scholarships/search.
func (s *Server) SearchScholarshipsPost(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	s.runSearch(w, r, req.Query)
}

func (s *Server) runSearch(w http.ResponseWriter, r *http.Request, q string) {
	ctx, usage := domain.NewContextWithUsage(r.Context())

	res, err := s.search.Search(ctx, q)
	setUsageHeaders(w, usage)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resultToAPI(&res))
}

// GetScholarship handles GET /v1/scholarships/{id}.
func (s *Server) GetScholarship(w http.ResponseWriter, r *http.Request, id int64) {
	sc, err := s.search.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scholarshipToAPI(&sc))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	s.metrics.ServeHTTP(w, r)
}

func setUsageHeaders(w http.ResponseWriter, usage *domain.Usage) {
	if usage == nil {
		return
	}
	if usage.Embedded {
		w.Header().Set("X-Embedding-Tokens", strconv.Itoa(usage.EmbeddingTokens))
	}
	if usage.ExtractionTokens > 0 {
		w.Header().Set("X-Extraction-Tokens", strconv.Itoa(usage.ExtractionTokens))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// sentinelHandler answers with the sentinel's own message, never the wrapped chain.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return fixedHandler(sentinel, status, code, sentinel.Error())
}

func fixedHandler(target error, status int, code ErrorResponseCode, msg string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, target) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}

func resultToAPI(res *result.Result) ScholarshipListResponse {
	items := make([]Scholarship, res.Len())
	for i := range res.Items() {
		items[i] = scholarshipToAPI(&res.Items()[i])
	}
	resp := ScholarshipListResponse{Items: items, Count: len(items)}
	if rs := res.Resolution(); rs != nil {
		resp.Interpretation = &Interpretation{
			Source:     string(rs.Source),
			Reason:     string(rs.Reason),
			Filters:    rs.Filters,
			Candidates: res.Candidates(),
		}
	}
	return resp
}

func scholarshipToAPI(sc *scholarship.Scholarship) Scholarship {
	out := Scholarship{
		ID:          sc.ID,
		Name:        sc.Name,
		Description: sc.Description,
		Amount:      sc.Amount,
		Location:    sc.Location,
		Type:        sc.Type,
		Religious:   sc.Religious,
		Gender:      sc.Gender,
		MinAge:      sc.MinAge,
		MaxAge:      sc.MaxAge,
		Category:    sc.Category,
		Institution: sc.Institution,
		Income:      sc.Income,
		Disability:  sc.Disability,
		ExService:   sc.ExService,
	}
	if sc.Deadline != nil {
		d := sc.Deadline.Format("2006-01-02")
		out.Deadline = &d
	}
	return out
}
