// Package viewer maps prepared datasets to display surfaces.
//
// Selection is purely structural: the rank of the permuted array picks
// the viewer kind. Construction is delegated to a [Builder], the
// boundary to the windowing layer. The only fully wired surface is the
// spectator viewer for canonically ordered 3-D data
// (states, spectral, spatial); every other configuration is accepted
// structurally and reported as pending.
package viewer

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/specview/specview/pkg/axis"
	"github.com/specview/specview/pkg/errors"
	"github.com/specview/specview/pkg/ndarray"
	"github.com/specview/specview/pkg/scale"
)

// Kind identifies a downstream viewer implementation.
type Kind string

// The viewer kinds, one per supported rank.
const (
	Plot1D    Kind = "plot_1d"
	Plot2D    Kind = "plot_2d"
	Spectator Kind = "spectator"
	Plot4D    Kind = "plot_4d"
	Plot5D    Kind = "plot_5d"
)

var kindsByRank = map[int]Kind{
	1: Plot1D,
	2: Plot2D,
	3: Spectator,
	4: Plot4D,
	5: Plot5D,
}

// Select returns the viewer kind for an array shape. The choice depends
// only on the rank.
func Select(shape []int) (Kind, error) {
	if kind, ok := kindsByRank[len(shape)]; ok {
		return kind, nil
	}
	return "", errors.New(errors.ErrCodeUnsupportedRank,
		"no viewer available for %dD data", len(shape))
}

// StatesInfo names the slices along a states axis.
type StatesInfo struct {
	Names     []string `json:"names"`
	Count     int      `json:"count"`
	AxisIndex int      `json:"axis_index"`
}

// Metadata describes a reordered, scaled array for viewer construction
// and for export to downstream plotting tools.
type Metadata struct {
	Title string   `json:"title"`
	Kind  Kind     `json:"viewer"`
	Shape []int    `json:"data_shape"`
	Axes  []string `json:"axes"`

	// States is nil when the data has no states axis.
	States *StatesInfo `json:"states_info,omitempty"`

	// Role positions in the final axis order; -1 when absent.
	StatesAxis   int   `json:"states_axis"`
	SpectralAxis int   `json:"spectral_axis"`
	SpatialAxes  []int `json:"spatial_axes,omitempty"`
	TimeAxis     int   `json:"time_axis"`

	Scale scale.Info `json:"scale_info"`
}

// NewMetadata assembles metadata for a prepared array.
func NewMetadata(data *ndarray.Array, axes axis.Spec, states *StatesInfo, title string, kind Kind, sc scale.Result) Metadata {
	meta := Metadata{
		Title:        title,
		Kind:         kind,
		Shape:        data.Shape(),
		Axes:         axes.Strings(),
		States:       states,
		StatesAxis:   -1,
		SpectralAxis: -1,
		TimeAxis:     -1,
		Scale:        sc.Info(),
	}
	for i, t := range axes {
		switch t {
		case axis.States:
			meta.StatesAxis = i
		case axis.Spectral:
			meta.SpectralAxis = i
		case axis.Spatial:
			meta.SpatialAxes = append(meta.SpatialAxes, i)
		case axis.Time:
			meta.TimeAxis = i
		}
	}
	return meta
}

// hasSpatialAt reports whether position i holds a spatial axis.
func (m Metadata) hasSpatialAt(i int) bool {
	for _, p := range m.SpatialAxes {
		if p == i {
			return true
		}
	}
	return false
}

// Handle is the opaque result of viewer construction handed back to
// the caller. Pending handles mark configurations that validated but
// are not wired to a concrete display surface yet.
type Handle struct {
	Kind    Kind   `json:"viewer"`
	Title   string `json:"title"`
	Pending bool   `json:"pending,omitempty"`
	Message string `json:"message,omitempty"`
}

// Builder constructs a concrete viewer from a prepared array. It is the
// boundary to the windowing/plotting layer; implementations outside
// this module own the actual widgets.
type Builder interface {
	Build(ctx context.Context, data *ndarray.Array, meta Metadata) (*Handle, error)
}

// StubBuilder implements Builder without a windowing layer. The
// spectator path enforces the canonical 3-D arrangement; everything
// else yields a pending handle describing what would be displayed.
type StubBuilder struct {
	Logger *log.Logger
}

// Build validates the configuration and returns a handle.
func (b *StubBuilder) Build(ctx context.Context, data *ndarray.Array, meta Metadata) (*Handle, error) {
	if meta.Kind == Spectator {
		// The spectator viewer requires states@0, spectral@1, spatial@2.
		if meta.StatesAxis != 0 || meta.SpectralAxis != 1 || !meta.hasSpatialAt(2) {
			return nil, errors.New(errors.ErrCodeViewerNotImplemented,
				"3D viewer for axis configuration %v not yet implemented", meta.Axes)
		}
		if b.Logger != nil {
			b.Logger.Debug("spectator viewer ready",
				"title", meta.Title, "shape", fmt.Sprint(meta.Shape))
		}
		return &Handle{Kind: Spectator, Title: meta.Title}, nil
	}

	if b.Logger != nil {
		b.Logger.Info("viewer not yet implemented",
			"viewer", string(meta.Kind), "shape", fmt.Sprint(meta.Shape), "axes", fmt.Sprint(meta.Axes))
	}
	return &Handle{
		Kind:    meta.Kind,
		Title:   meta.Title,
		Pending: true,
		Message: fmt.Sprintf("viewer for %dD data with axes %v is ready for implementation", len(meta.Shape), meta.Axes),
	}, nil
}

var _ Builder = (*StubBuilder)(nil)
