package dataset

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specview/specview/pkg/errors"
	"github.com/specview/specview/pkg/ndarray"
)

func TestReadJSON(t *testing.T) {
	input := `{
	  "title": "Test scan",
	  "axes": ["states", "spectral"],
	  "state_names": ["I", "V"],
	  "shape": [2, 3],
	  "values": [1, 2, 3, 4, 5, 6]
	}`

	ds, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if ds.Title != "Test scan" {
		t.Errorf("Title = %q", ds.Title)
	}
	if len(ds.Axes) != 2 || ds.Axes[0] != "states" {
		t.Errorf("Axes = %v", ds.Axes)
	}
	if got := ds.Array.At(1, 2); got != 6 {
		t.Errorf("At(1,2) = %v, want 6", got)
	}
}

func TestReadJSONRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed", `{"axes": [`},
		{"no axes", `{"shape": [2], "values": [1, 2]}`},
		{"no shape", `{"axes": ["spectral"], "values": [1, 2]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if !errors.Is(err, errors.ErrCodeInvalidDataset) {
				t.Errorf("error = %v, want INVALID_DATASET", err)
			}
		})
	}
}

func TestReadJSONValueCountMismatch(t *testing.T) {
	input := `{"axes": ["spectral"], "shape": [3], "values": [1, 2]}`
	_, err := ReadJSON(strings.NewReader(input))
	if !errors.Is(err, errors.ErrCodeInvalidShape) {
		t.Errorf("error = %v, want INVALID_SHAPE", err)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	arr, err := ndarray.FromSlice([]float64{1.5, -2.25, 3e7, 0}, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	ds := &Dataset{
		Title:      "Round trip",
		Axes:       []string{"spectral", "spatial"},
		StateNames: nil,
		Array:      arr,
	}

	var buf bytes.Buffer
	if err := WriteJSON(ds, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if !back.Array.Equal(ds.Array) {
		t.Error("array changed across round trip")
	}
	if back.Title != ds.Title || back.Axes[1] != "spatial" {
		t.Errorf("metadata changed: %+v", back)
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()

	values := []float64{3.2e7, 1e6, 1e-6, 2e-6, 0, -1}
	raw := make([]byte, len(values)*8)
	for i, v := range values {
		binary.LittleEndian.PutUint64(raw[i*8:], math.Float64bits(v))
	}
	if err := os.WriteFile(filepath.Join(dir, "scan.f64"), raw, 0644); err != nil {
		t.Fatal(err)
	}

	manifest := `title = "GRIS scan"
axes = ["states", "spectral"]
state_names = ["I", "V"]
shape = [2, 3]
data = "scan.f64"
`
	path := filepath.Join(dir, "scan.toml")
	if err := os.WriteFile(path, []byte(manifest), 0644); err != nil {
		t.Fatal(err)
	}

	ds, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Title != "GRIS scan" {
		t.Errorf("Title = %q", ds.Title)
	}
	if got := ds.Array.At(0, 0); got != 3.2e7 {
		t.Errorf("At(0,0) = %v", got)
	}
	if got := ds.Array.At(1, 2); got != -1 {
		t.Errorf("At(1,2) = %v", got)
	}
}

func TestLoadManifestSizeMismatch(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "short.f64"), make([]byte, 8), 0644); err != nil {
		t.Fatal(err)
	}
	manifest := `axes = ["spectral"]
shape = [3]
data = "short.f64"
`
	path := filepath.Join(dir, "short.toml")
	if err := os.WriteFile(path, []byte(manifest), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, errors.ErrCodeInvalidDataset) {
		t.Errorf("error = %v, want INVALID_DATASET", err)
	}
}

func TestLoadRejectsPaths(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"empty", ""},
		{"traversal", "../secrets.json"},
		{"unsupported format", "scan.csv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.path); err == nil {
				t.Error("expected error")
			}
		})
	}
}
