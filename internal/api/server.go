// Package api implements the specview HTTP service.
//
// The service exposes the display pipeline over HTTP for deployments
// where reduction pipelines and viewers run on different machines. One
// endpoint accepts a dataset and returns the prepared result: the
// canonical axis order, applied scale factors, viewer metadata, and
// optionally the reordered and scaled values themselves.
//
// Every request gets a UUID request ID, returned in the X-Request-ID
// header and attached to all log lines for the request.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/specview/specview/pkg/errors"
	"github.com/specview/specview/pkg/ndarray"
	"github.com/specview/specview/pkg/observability"
	"github.com/specview/specview/pkg/pipeline"
)

// Server serves the display pipeline over HTTP.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	router chi.Router
}

// NewServer creates a server around the given runner.
// If logger is nil, the default logger is used.
func NewServer(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		logger: logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/display", s.handleDisplay)

	s.router = r
	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// displayRequest is the request body for POST /v1/display. The dataset
// is inlined; axis labels and values use the same shapes as the JSON
// dataset format.
type displayRequest struct {
	Title      string    `json:"title,omitempty"`
	Axes       []string  `json:"axes"`
	StateNames []string  `json:"state_names,omitempty"`
	Shape      []int     `json:"shape"`
	Values     []float64 `json:"values"`

	DisableAutoScale bool `json:"disable_auto_scale,omitempty"`
	Refresh          bool `json:"refresh,omitempty"`

	// IncludeData requests the prepared values in the response.
	IncludeData bool `json:"include_data,omitempty"`
}

// displayResponse is the response body for POST /v1/display.
type displayResponse struct {
	RequestID   string    `json:"request_id"`
	Handle      any       `json:"handle"`
	Metadata    any       `json:"metadata"`
	Permuted    bool      `json:"permuted"`
	ScaleHit    bool      `json:"scale_hit"`
	MetadataHit bool      `json:"metadata_hit"`
	Shape       []int     `json:"shape"`
	Values      []float64 `json:"values,omitempty"`
}

// errorResponse is the body for all error results.
type errorResponse struct {
	RequestID string `json:"request_id"`
	Error     struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDisplay(w http.ResponseWriter, r *http.Request) {
	reqID := requestIDFrom(r)

	var req displayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, reqID, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	data, err := ndarray.FromSlice(req.Values, req.Shape...)
	if err != nil {
		s.writeError(w, reqID, err)
		return
	}

	result, err := s.runner.Display(r.Context(), data, pipeline.Options{
		AxisLabels:       req.Axes,
		StateNames:       req.StateNames,
		Title:            req.Title,
		DisableAutoScale: req.DisableAutoScale,
		Refresh:          req.Refresh,
		Logger:           s.logger.With("request_id", reqID),
	})
	if err != nil {
		s.writeError(w, reqID, err)
		return
	}

	resp := displayResponse{
		RequestID:   reqID,
		Handle:      result.Handle,
		Metadata:    result.Metadata,
		Permuted:    result.Stats.Permuted,
		ScaleHit:    result.CacheInfo.ScaleHit,
		MetadataHit: result.CacheInfo.MetadataHit,
		Shape:       result.Data.Shape(),
	}
	if req.IncludeData {
		resp.Values = result.Data.Data()
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeError maps pipeline error codes to HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, reqID string, err error) {
	status := http.StatusInternalServerError
	code := errors.GetCode(err)
	switch {
	case code == errors.ErrCodeViewerNotImplemented:
		status = http.StatusNotImplemented
	case errors.IsValidation(err),
		code == errors.ErrCodeInvalidInput,
		code == errors.ErrCodeInvalidShape,
		code == errors.ErrCodeInvalidDataset,
		code == errors.ErrCodeInvalidPath:
		status = http.StatusBadRequest
	}

	var resp errorResponse
	resp.RequestID = reqID
	resp.Error.Code = string(code)
	resp.Error.Message = err.Error()
	if resp.Error.Code == "" {
		resp.Error.Code = string(errors.ErrCodeInternal)
	}

	s.logger.Warn("request failed", "request_id", reqID, "code", resp.Error.Code, "err", err)
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

const requestIDKey ctxKey = 0

func contextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func requestIDFrom(r *http.Request) string {
	if id, ok := r.Context().Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// requestID assigns a UUID to each request, honoring an incoming
// X-Request-ID from a trusted proxy.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := contextWithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// logRequests logs one line per request with timing.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		observability.API().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		observability.API().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), elapsed)
		s.logger.Info("request",
			"request_id", requestIDFrom(r),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", elapsed.Round(time.Millisecond))
	})
}
