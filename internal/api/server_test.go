package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/specview/specview/pkg/pipeline"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, nil, nil, logger)
	return NewServer(runner, logger)
}

func postDisplay(t *testing.T, s *Server, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/display", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestDisplay(t *testing.T) {
	s := newTestServer(t)

	values := make([]float64, 4*2*3)
	for i := range values {
		values[i] = 3.2e7
	}
	rec := postDisplay(t, s, map[string]any{
		"title":        "Scan 12",
		"axes":         []string{"states", "spatial", "spectral"},
		"state_names":  []string{"I", "Q", "U", "V"},
		"shape":        []int{4, 2, 3},
		"values":       values,
		"include_data": true,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	var resp struct {
		RequestID string    `json:"request_id"`
		Permuted  bool      `json:"permuted"`
		Shape     []int     `json:"shape"`
		Values    []float64 `json:"values"`
		Handle    struct {
			Viewer string `json:"viewer"`
		} `json:"handle"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.RequestID == "" {
		t.Error("missing request_id")
	}
	if !resp.Permuted {
		t.Error("expected permutation for states,spatial,spectral input")
	}
	if len(resp.Shape) != 3 || resp.Shape[1] != 3 || resp.Shape[2] != 2 {
		t.Errorf("shape = %v, want [4 3 2]", resp.Shape)
	}
	if resp.Handle.Viewer != "spectator" {
		t.Errorf("viewer = %q", resp.Handle.Viewer)
	}
	if len(resp.Values) != len(values) {
		t.Errorf("values length = %d, want %d", len(resp.Values), len(values))
	}
	// All elements were 3.2e7, so everything scaled into the band.
	if v := resp.Values[0]; v < 0.1 || v > 10 {
		t.Errorf("scaled value = %v, want inside [0.1, 10]", v)
	}
}

func TestDisplayValidationError(t *testing.T) {
	s := newTestServer(t)

	rec := postDisplay(t, s, map[string]any{
		"axes":   []string{"states", "states", "spatial"},
		"shape":  []int{2, 2, 2},
		"values": make([]float64, 8),
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error.Code != "DUPLICATE_AXIS_ROLE" {
		t.Errorf("code = %q", resp.Error.Code)
	}
}

func TestDisplayNonCanonical3DNotImplemented(t *testing.T) {
	s := newTestServer(t)

	// Rank 3 without a states axis reorders to spectral,time,spatial;
	// the spectator surface cannot show it yet.
	rec := postDisplay(t, s, map[string]any{
		"axes":   []string{"time", "spectral", "spatial"},
		"shape":  []int{2, 2, 2},
		"values": make([]float64, 8),
	})

	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
}

func TestDisplayMalformedBody(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/display", bytes.NewReader([]byte("{")))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRequestIDPropagation(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "test-id-1")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "test-id-1" {
		t.Errorf("X-Request-ID = %q, want test-id-1", got)
	}
}
