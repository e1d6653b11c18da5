// Package dataset provides loading and export of labeled numeric volumes.
//
// # Overview
//
// This package reads datasets from disk in two formats and writes
// display results back out. The formats are designed for:
//
//   - Moving instrument data between reduction pipelines and the viewer
//   - Small self-contained test datasets (JSON)
//   - Large scan cubes stored as raw binary next to a small manifest (TOML)
//   - Round-trip preservation: export a dataset and re-import it identically
//
// # JSON Format
//
// A self-contained dataset is one JSON object:
//
//	{
//	  "title": "GRIS scan 12",
//	  "axes": ["states", "spectral", "spatial"],
//	  "state_names": ["I", "Q", "U", "V"],
//	  "shape": [4, 100, 200],
//	  "values": [0.0, 1.5, ...]
//	}
//
// "values" holds the elements flat in row-major order; its length must
// equal the product of "shape". "state_names" and "title" are optional.
//
// # TOML Manifest Format
//
// Large cubes keep their values in a separate raw file of little-endian
// float64 values in row-major order, referenced by a manifest:
//
//	title = "GRIS scan 12"
//	axes = ["states", "spectral", "spatial"]
//	state_names = ["I", "Q", "U", "V"]
//	shape = [4, 100, 200]
//	data = "scan12.f64"
//
// The data path is resolved relative to the manifest's directory unless
// absolute. The file size must be exactly 8 bytes per element.
//
// # Import
//
// Use [Load] to read either format (chosen by file extension), or
// [ReadJSON] to decode from any io.Reader:
//
//	ds, err := dataset.Load("scan12.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Paths are validated before anything is opened; traversal sequences
// and control characters are rejected.
//
// # Export
//
// Use [ExportJSON] to write a dataset to a file, or [WriteJSON] to write
// to any io.Writer. [WriteMetadata] exports assembled viewer metadata
// for downstream plotting tools.
package dataset
