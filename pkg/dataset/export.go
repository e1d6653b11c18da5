package dataset

import (
	"encoding/json"
	"io"
	"os"

	"github.com/specview/specview/pkg/errors"
	"github.com/specview/specview/pkg/viewer"
)

// WriteJSON encodes a dataset as JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip
// processing.
func WriteJSON(ds *Dataset, w io.Writer) error {
	doc := document{
		Title:      ds.Title,
		Axes:       ds.Axes,
		StateNames: ds.StateNames,
		Shape:      ds.Array.Shape(),
		Values:     ds.Array.Data(),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode dataset")
	}
	return nil
}

// ExportJSON writes a dataset to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(ds *Dataset, path string) error {
	if err := errors.ValidateDatasetPath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	return WriteJSON(ds, f)
}

// WriteMetadata encodes assembled viewer metadata as JSON and writes it
// to w, for consumption by downstream plotting tools.
func WriteMetadata(meta viewer.Metadata, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode metadata")
	}
	return nil
}

// ExportMetadata writes viewer metadata to a JSON file at path.
func ExportMetadata(meta viewer.Metadata, path string) error {
	if err := errors.ValidateDatasetPath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	defer f.Close()
	return WriteMetadata(meta, f)
}
