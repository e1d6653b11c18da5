// Package pipeline provides the core display-preparation pipeline.
//
// This package implements the complete validate → reorder → scale →
// build sequence that can be used by CLI and API components. By
// centralizing this logic, we ensure consistent behavior across all
// entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Validate: Parse axis labels into roles and enforce the
//     dimensionality constraints
//  2. Reorder: Permute the array into the canonical axis order
//  3. Scale: Snap display magnitudes to legible powers of ten
//  4. Build: Select a viewer kind and hand the prepared array to the
//     viewer builder
//
// # Usage
//
// Create a Runner and display a dataset:
//
//	runner := pipeline.NewRunner(cache, nil, nil, logger)
//	opts := pipeline.Options{
//	    AxisLabels: []string{"states", "spatial", "spectral"},
//	    StateNames: []string{"I", "Q", "U", "V"},
//	}
//	result, err := runner.Display(ctx, data, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Handle.Kind)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/specview/specview/pkg/axis"
	"github.com/specview/specview/pkg/cache"
	"github.com/specview/specview/pkg/errors"
	"github.com/specview/specview/pkg/ndarray"
	"github.com/specview/specview/pkg/scale"
	"github.com/specview/specview/pkg/viewer"
)

// DefaultTitle is used when the caller supplies no window title.
const DefaultTitle = "Data Viewer"

// Options contains all configuration for one display run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// AxisLabels assigns a role to each array dimension, in order.
	AxisLabels []string `json:"axes"`

	// StateNames labels the slices along a states axis. Empty means
	// numeric defaults ("1", "2", ...). Must match the states dimension
	// length when set.
	StateNames []string `json:"state_names,omitempty"`

	// Title is the display title.
	Title string `json:"title,omitempty"`

	// DisableAutoScale turns off decade display scaling.
	DisableAutoScale bool `json:"disable_auto_scale,omitempty"`

	// Refresh bypasses the scale-analysis and metadata caches.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.AxisLabels) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "axes are required")
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if err := errors.ValidateTitle(o.Title); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ShouldAutoScale reports whether decade scaling should be applied.
func (o *Options) ShouldAutoScale() bool {
	return !o.DisableAutoScale
}

// ScaleKeyOpts returns cache key options for scale analysis. The axes
// are the final (canonical) labels, since scaling runs on the reordered
// array.
func (o *Options) ScaleKeyOpts(finalAxes []string) cache.ScaleKeyOpts {
	return cache.ScaleKeyOpts{
		Axes:      finalAxes,
		AutoScale: o.ShouldAutoScale(),
	}
}

// MetadataKeyOpts returns cache key options for viewer metadata.
func (o *Options) MetadataKeyOpts(finalAxes []string) cache.MetadataKeyOpts {
	return cache.MetadataKeyOpts{
		Axes:       finalAxes,
		Title:      o.Title,
		StateNames: o.StateNames,
		AutoScale:  o.ShouldAutoScale(),
	}
}

// Result contains the outputs of a display run.
type Result struct {
	// Data is the reordered, scaled array handed to the viewer.
	Data *ndarray.Array

	// Axes is the canonical axis order of Data.
	Axes axis.Spec

	// Scale describes every factor applied during scaling.
	Scale scale.Result

	// Metadata is the assembled viewer metadata.
	Metadata viewer.Metadata

	// Handle is the constructed (or pending) viewer handle.
	Handle *viewer.Handle

	// Stats contains timing and permutation information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ValidateTime time.Duration
	ReorderTime  time.Duration
	ScaleTime    time.Duration
	BuildTime    time.Duration

	// Permuted records whether the array needed rearranging.
	Permuted bool
}

// CacheInfo tracks cache hits for cacheable pipeline stages.
type CacheInfo struct {
	ScaleHit    bool // Whether scale analysis came from cache
	MetadataHit bool // Whether viewer metadata came from cache
}
