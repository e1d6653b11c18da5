// Package pkg provides the core libraries for specview display preparation.
//
// # Overview
//
// Specview takes labeled N-dimensional instrument data (polarimetric
// states, spectral, spatial, and time dimensions) and prepares it for
// display. The pkg directory is organized into these areas:
//
//  1. [ndarray] - N-dimensional array with transposition and slicing
//  2. [axis] - Axis role validation and canonical ordering
//  3. [scale] - Decade display scaling
//  4. [viewer] - Viewer selection, metadata, and construction
//  5. [pipeline] - Orchestration (validate → reorder → scale → build)
//  6. [dataset] - Dataset loading and export
//  7. [cache], [errors], [observability], [buildinfo] - Infrastructure
//
// # Architecture
//
// The typical data flow through specview:
//
//	Dataset (JSON document or TOML manifest + raw values)
//	         ↓
//	    [axis] package (validate roles, compute canonical order)
//	         ↓
//	    [ndarray] package (permute into canonical order)
//	         ↓
//	    [scale] package (snap magnitudes to legible decades)
//	         ↓
//	    [viewer] package (select surface, assemble metadata)
//
// The [pipeline] package drives the sequence and caches scale analysis
// keyed by dataset content hashes.
//
// # Quick Start
//
//	ds, err := dataset.Load("scan12.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	runner := pipeline.NewRunner(nil, nil, nil, nil)
//	result, err := runner.Display(ctx, ds.Array, pipeline.Options{
//	    AxisLabels: ds.Axes,
//	    StateNames: ds.StateNames,
//	    Title:      ds.Title,
//	})
package pkg
