package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/scholarsearch/internal/domain/search/filters"
)

// ErrorResponseCode is a machine-readable error code.
type ErrorResponseCode string

// Error codes.
const (
	ErrorResponseCodeBadRequest       ErrorResponseCode = "bad_request"
	ErrorResponseCodeUnauthorized     ErrorResponseCode = "unauthorized"
	ErrorResponseCodeInvalidQuery     ErrorResponseCode = "invalid_query"
	ErrorResponseCodeNotFound         ErrorResponseCode = "scholarship_not_found"
	ErrorResponseCodeSearchFailed     ErrorResponseCode = "search_failed"
	ErrorResponseCodeRequestCancelled ErrorResponseCode = "request_cancelled"
	ErrorResponseCodeInternalError    ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// Scholarship is the wire form of a scholarship.
type Scholarship struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Amount      int64   `json:"amount"`
	Location    string  `json:"location"`
	Type        string  `json:"type"`
	Religious   string  `json:"religious"`
	Gender      string  `json:"gender"`
	MinAge      int     `json:"min_age"`
	MaxAge      int     `json:"max_age"`
	Category    string  `json:"category"`
	Institution *string `json:"institution_name,omitempty"`
	Deadline    *string `json:"deadline,omitempty"` // YYYY-MM-DD
	Income      *int64  `json:"income,omitempty"`
	Disability  *bool   `json:"disability,omitempty"`
	ExService   *bool   `json:"ex_service,omitempty"`
}

// Interpretation reports how a query was understood.
type Interpretation struct {
	Source     string          `json:"source"`
	Reason     string          `json:"reason"`
	Filters    filters.Filters `json:"filters"`
	Candidates int             `json:"candidates"`
}

// ScholarshipListResponse is returned by listing and search.
type ScholarshipListResponse struct {
	Items          []Scholarship   `json:"items"`
	Count          int             `json:"count"`
	Interpretation *Interpretation `json:"interpretation,omitempty"`
}

// SearchRequest is the POST search body.
type SearchRequest struct {
	Query string `json:"query"`
}

// SearchScholarshipsParams are the GET search query parameters.
type SearchScholarshipsParams struct {
	Q *string `form:"q,omitempty" json:"q,omitempty"`
}

// HealthResponse is the health endpoint body.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// ServerInterface lists the HTTP operations.
type ServerInterface interface {
	// (GET /v1/scholarships)
	ListScholarships(w http.ResponseWriter, r *http.Request)
	// (GET /v1/scholarships/search)
	SearchScholarships(w http.ResponseWriter, r *http.Request, params SearchScholarshipsParams)
	// (POST /v1/scholarships/search)
	SearchScholarshipsPost(w http.ResponseWriter, r *http.Request)
	// (GET /v1/scholarships/{id})
	GetScholarship(w http.ResponseWriter, r *http.Request, id int64)
	// (GET /health)
	HealthCheck(w http.ResponseWriter, r *http.Request)
	// (GET /metrics)
	Metrics(w http.ResponseWriter, r *http.Request)
}

// MiddlewareFunc wraps a single operation handler.
type MiddlewareFunc func(http.Handler) http.Handler

// ServerInterfaceWrapper binds request parameters and dispatches to the handler.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

// ListScholarships operation middleware.
func (siw *ServerInterfaceWrapper) ListScholarships(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ListScholarships(w, r)
	})
}

// SearchScholarships operation middleware.
func (siw *ServerInterfaceWrapper) SearchScholarships(w http.ResponseWriter, r *http.Request) {
	var params SearchScholarshipsParams

	err := runtime.BindQueryParameter("form", true, false, "q", r.URL.Query(), &params.Q)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "q", Err: err})
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.SearchScholarships(w, r, params)
	})
}

// SearchScholarshipsPost operation middleware.
func (siw *ServerInterfaceWrapper) SearchScholarshipsPost(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.SearchScholarshipsPost(w, r)
	})
}

// GetScholarship operation middleware.
func (siw *ServerInterfaceWrapper) GetScholarship(w http.ResponseWriter, r *http.Request) {
	var id int64

	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "id", Err: err})
		return
	}

	siw.serve(w, r, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetScholarship(w, r, id)
	})
}

// HealthCheck operation middleware.
func (siw *ServerInterfaceWrapper) HealthCheck(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.HealthCheck)
}

// Metrics operation middleware.
func (siw *ServerInterfaceWrapper) Metrics(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, siw.Handler.Metrics)
}

func (siw *ServerInterfaceWrapper) serve(w http.ResponseWriter, r *http.Request, fn http.HandlerFunc) {
	var handler http.Handler = fn
	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}
	handler.ServeHTTP(w, r)
}

// InvalidParamFormatError reports a parameter that failed to bind.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error { return e.Err }

// ChiServerOptions configures HandlerWithOptions.
type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// Handler creates an http.Handler with routing matching the API.
func Handler(si ServerInterface) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{})
}

// HandlerWithOptions registers every operation on the (optional) base router.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, _ *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandlerFunc:   options.ErrorHandlerFunc,
	}

	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/v1/scholarships", wrapper.ListScholarships)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/v1/scholarships/search", wrapper.SearchScholarships)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/v1/scholarships/search", wrapper.SearchScholarshipsPost)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/v1/scholarships/{id}", wrapper.GetScholarship)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/health", wrapper.HealthCheck)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/metrics", wrapper.Metrics)
	})

	return r
}
