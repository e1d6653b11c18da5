package dataset

import (
	"encoding/binary"
	"encoding/json"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/specview/specview/pkg/errors"
	"github.com/specview/specview/pkg/ndarray"
)

// document is the JSON wire form of a dataset.
type document struct {
	Title      string    `json:"title,omitempty"`
	Axes       []string  `json:"axes"`
	StateNames []string  `json:"state_names,omitempty"`
	Shape      []int     `json:"shape"`
	Values     []float64 `json:"values"`
}

// manifest is the TOML form referencing an external raw data file.
type manifest struct {
	Title      string   `toml:"title"`
	Axes       []string `toml:"axes"`
	StateNames []string `toml:"state_names"`
	Shape      []int    `toml:"shape"`
	Data       string   `toml:"data"`
}

// Load reads a dataset from path. The format is chosen by extension:
// .json for self-contained documents, .toml for manifests pointing at a
// raw value file. The path is validated before anything is opened.
func Load(path string) (*Dataset, error) {
	if err := errors.ValidateDatasetPath(path); err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ImportJSON(path)
	case ".toml":
		return importManifest(path)
	}
	return nil, errors.New(errors.ErrCodeInvalidDataset,
		"unsupported dataset format %q (supported: .json, .toml)", filepath.Ext(path))
}

// ReadJSON decodes a JSON dataset from r.
//
// ReadJSON returns an error if:
//   - The JSON is malformed
//   - "axes" or "shape" is missing
//   - The value count does not match the shape
//
// The returned dataset is independent of r. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Dataset, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode dataset")
	}
	if len(doc.Axes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDataset, "dataset has no axes")
	}
	if len(doc.Shape) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDataset, "dataset has no shape")
	}

	arr, err := ndarray.FromSlice(doc.Values, doc.Shape...)
	if err != nil {
		return nil, err
	}
	return &Dataset{
		Title:      doc.Title,
		Axes:       doc.Axes,
		StateNames: doc.StateNames,
		Array:      arr,
	}, nil
}

// ImportJSON reads a JSON dataset file at path.
func ImportJSON(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}

// importManifest reads a TOML manifest and the raw value file it names.
func importManifest(path string) (*Dataset, error) {
	var m manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode manifest %s", path)
	}
	if len(m.Axes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDataset, "manifest %s has no axes", path)
	}
	if len(m.Shape) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDataset, "manifest %s has no shape", path)
	}
	if err := errors.ValidateDatasetPath(m.Data); err != nil {
		return nil, err
	}

	dataPath := m.Data
	if !filepath.IsAbs(dataPath) {
		dataPath = filepath.Join(filepath.Dir(path), dataPath)
	}
	values, err := readRaw(dataPath, m.Shape)
	if err != nil {
		return nil, err
	}

	arr, err := ndarray.FromSlice(values, m.Shape...)
	if err != nil {
		return nil, err
	}
	return &Dataset{
		Title:      m.Title,
		Axes:       m.Axes,
		StateNames: m.StateNames,
		Array:      arr,
	}, nil
}

// readRaw reads little-endian float64 values and checks the count
// against the shape.
func readRaw(path string, shape []int) ([]float64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "read %s", path)
	}

	want := 1
	for _, n := range shape {
		want *= n
	}
	if len(raw) != want*8 {
		return nil, errors.New(errors.ErrCodeInvalidDataset,
			"%s holds %d bytes, shape %v needs %d", path, len(raw), shape, want*8)
	}

	values := make([]float64, want)
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
	}
	return values, nil
}
