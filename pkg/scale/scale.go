// Package scale computes decade display scaling for numeric arrays.
//
// Instrument data spans wildly different magnitudes: a Stokes-I channel
// can sit near 1e7 counts while Stokes V hovers around 1e-6. Histograms
// and image displays become unreadable at either extreme. This package
// snaps each channel to an exact power of ten so the displayed maxima
// land in a human-legible band, and reports the applied factors so the
// UI can annotate axes with ×10ⁿ labels.
//
// Scaling is a pure transform: Scale returns the (possibly new) array
// together with a Result value describing every applied factor. Nothing
// is retained in package state; callers that want "the current scaling"
// keep the last Result themselves.
package scale

import (
	"fmt"
	"math"
	"strings"

	"github.com/specview/specview/pkg/axis"
	"github.com/specview/specview/pkg/ndarray"
)

// The legible display band and the value scaling aims for. A max inside
// [legibleMin, legibleMax] needs no scaling; anything else is brought
// toward targetValue by an exact power of ten.
const (
	legibleMin  = 0.1
	legibleMax  = 10.0
	targetValue = 5.0
)

// Scope identifies which portion of an array a scale entry applies to:
// the whole array, or one slice along the states axis.
type Scope struct {
	perState bool
	state    int
}

// Global returns the scope covering the whole array.
func Global() Scope { return Scope{} }

// PerState returns the scope covering one state slice.
func PerState(index int) Scope { return Scope{perState: true, state: index} }

// IsPerState reports whether the scope covers a single state.
func (s Scope) IsPerState() bool { return s.perState }

// State returns the state index; only meaningful when IsPerState.
func (s Scope) State() int { return s.state }

// String renders the scope for logs and error messages.
func (s Scope) String() string {
	if s.perState {
		return fmt.Sprintf("state %d", s.state)
	}
	return "global"
}

// Entry is one computed scaling: an exact power of ten and its label.
// Invariant: Factor == 10^Exponent, and Label is empty iff Exponent is 0.
type Entry struct {
	Factor   float64 `json:"factor"`
	Exponent int     `json:"exponent"`
	Label    string  `json:"label"`
}

// Identity is the no-op scaling.
var Identity = Entry{Factor: 1.0}

// Result describes every factor applied by one Scale call.
type Result struct {
	// Entries maps each scope to its computed scaling. Empty when
	// scaling was disabled for the call.
	Entries map[Scope]Entry

	// HasStates records whether the axes included a states axis.
	HasStates bool

	// StatesAxis is the position of the states axis, or -1.
	StatesAxis int
}

// IsScaled reports whether any entry applied a factor other than 1.
func (r Result) IsScaled() bool {
	for _, e := range r.Entries {
		if e.Factor != 1.0 {
			return true
		}
	}
	return false
}

// Entry returns the scaling recorded for the given scope.
func (r Result) Entry(s Scope) (Entry, bool) {
	e, ok := r.Entries[s]
	return e, ok
}

// Info is the serializable form of a Result, used in viewer metadata,
// JSON exports, and API responses.
type Info struct {
	// Global is the whole-array scaling; nil when per-state scaling
	// was used or scaling was disabled.
	Global *Entry `json:"global,omitempty"`

	// States holds one entry per state index when a states axis was
	// present.
	States []Entry `json:"states,omitempty"`

	IsScaled   bool `json:"is_scaled"`
	HasStates  bool `json:"has_states_axis"`
	StatesAxis int  `json:"states_axis_index"`
}

// Info converts the result into its serializable form.
func (r Result) Info() Info {
	info := Info{
		IsScaled:   r.IsScaled(),
		HasStates:  r.HasStates,
		StatesAxis: r.StatesAxis,
	}
	if r.HasStates {
		info.States = make([]Entry, len(r.Entries))
		for scope, entry := range r.Entries {
			if scope.IsPerState() && scope.State() < len(info.States) {
				info.States[scope.State()] = entry
			}
		}
		return info
	}
	if entry, ok := r.Entries[Global()]; ok {
		g := entry
		info.Global = &g
	}
	return info
}

// Result reconstructs the in-memory result from its serialized form.
// Round-tripping through Info loses nothing the pipeline needs.
func (i Info) Result() Result {
	r := Result{Entries: map[Scope]Entry{}, HasStates: i.HasStates, StatesAxis: i.StatesAxis}
	if i.HasStates {
		for idx, e := range i.States {
			r.Entries[PerState(idx)] = e
		}
		return r
	}
	if i.Global != nil {
		r.Entries[Global()] = *i.Global
	}
	return r
}

// AnalyzeRange determines the decade scaling for a set of values.
//
// NaN and infinite values are ignored. Empty input, all-non-finite
// input, an all-zero maximum, and a maximum already inside the legible
// band all yield the identity; these are not errors. Otherwise the
// factor is the power of ten that brings the maximum closest to
// targetValue, so one application is idempotent: reanalyzing already
// scaled values lands inside the band.
func AnalyzeRange(values []float64) Entry {
	dataMax := 0.0
	finite := false
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		finite = true
		if abs := math.Abs(v); abs > dataMax {
			dataMax = abs
		}
	}
	if !finite || dataMax == 0 {
		return Identity
	}
	if dataMax >= legibleMin && dataMax <= legibleMax {
		return Identity
	}

	exponent := int(math.Round(math.Log10(targetValue / dataMax)))
	if exponent == 0 {
		return Identity
	}
	return Entry{
		Factor:   math.Pow(10, float64(exponent)),
		Exponent: exponent,
		Label:    "×10" + FormatExponent(exponent),
	}
}

// superscripts maps exponent characters to their superscript forms.
var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
	'-': '⁻',
}

// FormatExponent renders an exponent with superscript digits, e.g.
// -12 becomes ⁻¹². Zero renders as the empty string.
func FormatExponent(exp int) string {
	if exp == 0 {
		return ""
	}
	var b strings.Builder
	for _, r := range fmt.Sprintf("%d", exp) {
		if sup, ok := superscripts[r]; ok {
			r = sup
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Scale applies decade scaling to data and returns the scaled array and
// the per-scope factors.
//
// Without a states axis the whole array gets one global factor. With a
// states axis each state slice is analyzed and scaled independently, so
// one channel's dynamic range never affects another's legibility.
//
// When no factor differs from 1 (or autoScale is false) the input array
// is returned unchanged without copying; otherwise a scaled copy is
// returned and the input stays untouched.
func Scale(data *ndarray.Array, axes axis.Spec, autoScale bool) (*ndarray.Array, Result, error) {
	result := Result{Entries: map[Scope]Entry{}, StatesAxis: -1}
	if !autoScale {
		return data, result, nil
	}

	statesAxis := axes.Index(axis.States)
	if statesAxis < 0 {
		entry := AnalyzeRange(data.Data())
		result.Entries[Global()] = entry
		if entry.Factor == 1.0 {
			return data, result, nil
		}
		scaled := data.Clone()
		scaled.Scale(entry.Factor)
		return scaled, result, nil
	}

	result.HasStates = true
	result.StatesAxis = statesAxis

	nStates := data.Dim(statesAxis)
	entries := make([]Entry, nStates)
	anyScaled := false
	for i := 0; i < nStates; i++ {
		slice, err := data.SliceAlong(statesAxis, i)
		if err != nil {
			return nil, Result{}, err
		}
		entries[i] = AnalyzeRange(slice.Data())
		result.Entries[PerState(i)] = entries[i]
		if entries[i].Factor != 1.0 {
			anyScaled = true
		}
	}
	if !anyScaled {
		return data, result, nil
	}

	scaled := data.Clone()
	for i, e := range entries {
		if e.Factor != 1.0 {
			scaled.ScaleSlice(statesAxis, i, e.Factor)
		}
	}
	return scaled, result, nil
}
