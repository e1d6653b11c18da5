package axis

import (
	"github.com/specview/specview/pkg/errors"
)

// Dimensionality limits. These bound what any viewer can display, not
// what the array math could support.
const (
	// MaxDims is the maximum supported rank.
	MaxDims = 5

	// MaxStates is the maximum number of named states.
	MaxStates = 8

	// MaxSpatialAxes is the maximum number of spatial dimensions.
	MaxSpatialAxes = 2
)

// Validator converts caller-supplied axis labels into a validated Spec
// and enforces the combinatorial constraints on role arity and rank.
// The zero value is not usable; construct with NewValidator.
type Validator struct {
	MaxDims        int
	MaxStates      int
	MaxSpatialAxes int
}

// NewValidator returns a validator with the standard limits.
func NewValidator() *Validator {
	return &Validator{
		MaxDims:        MaxDims,
		MaxStates:      MaxStates,
		MaxSpatialAxes: MaxSpatialAxes,
	}
}

// Validate parses labels into a Spec and checks the role constraints:
// at most one states, spectral, and time axis, at most MaxSpatialAxes
// spatial axes, and a rank-1 spec must be spatial, spectral, or time.
// Validate is a pure function of its input.
func (v *Validator) Validate(labels []string) (Spec, error) {
	if err := v.ValidateCount(labels); err != nil {
		return nil, err
	}
	spec, err := v.ParseLabels(labels)
	if err != nil {
		return nil, err
	}
	if err := v.ValidateRoles(spec); err != nil {
		return nil, err
	}
	return spec, nil
}

// ValidateCount enforces the dimension cap on a label list.
func (v *Validator) ValidateCount(labels []string) error {
	if len(labels) > v.MaxDims {
		return errors.New(errors.ErrCodeInvalidAxisCount,
			"maximum %d dimensions supported, got %d", v.MaxDims, len(labels))
	}
	return nil
}

// ParseLabels converts labels into a Spec without checking the role
// constraints. Callers that need to inspect roles before the
// combination rules apply (state-name resolution) parse first and run
// ValidateRoles afterwards.
func (v *Validator) ParseLabels(labels []string) (Spec, error) {
	spec := make(Spec, 0, len(labels))
	for _, label := range labels {
		t, err := ParseType(label)
		if err != nil {
			return nil, err
		}
		spec = append(spec, t)
	}
	return spec, nil
}

// ValidateRoles enforces the role-cardinality and rank-1 rules on a
// parsed spec.
func (v *Validator) ValidateRoles(spec Spec) error {
	return v.validateCombination(spec)
}

// validateCombination enforces the role-cardinality and rank-1 rules.
func (v *Validator) validateCombination(spec Spec) error {
	if n := spec.Count(States); n > 1 {
		return errors.New(errors.ErrCodeDuplicateAxisRole,
			"only one %s axis is allowed, got %d", States, n)
	}
	if n := spec.Count(Spatial); n > v.MaxSpatialAxes {
		return errors.New(errors.ErrCodeDuplicateAxisRole,
			"maximum %d %s axes allowed, got %d", v.MaxSpatialAxes, Spatial, n)
	}
	if n := spec.Count(Spectral); n > 1 {
		return errors.New(errors.ErrCodeDuplicateAxisRole,
			"only one %s axis is allowed, got %d", Spectral, n)
	}
	if n := spec.Count(Time); n > 1 {
		return errors.New(errors.ErrCodeDuplicateAxisRole,
			"only one %s axis is allowed, got %d", Time, n)
	}

	if len(spec) == 1 {
		switch spec[0] {
		case Spatial, Spectral, Time:
		default:
			return errors.New(errors.ErrCodeInvalidSingleAxis,
				"1D data must be %s, %s, or %s", Spatial, Spectral, Time)
		}
	}
	return nil
}

// ValidateData runs the full validation sequence for an array shape and
// its axis labels: the dimension cap, then the label/shape count match,
// then label parsing and role constraints. The ordering means a caller
// with several problems at once gets the most structural one first.
func (v *Validator) ValidateData(shape []int, labels []string) (Spec, error) {
	if err := v.ValidateCount(labels); err != nil {
		return nil, err
	}
	if err := v.ValidateShape(shape, labels); err != nil {
		return nil, err
	}
	return v.Validate(labels)
}

// ValidateShape checks that the number of labels matches the array
// rank. Callers run this before Validate so a dimension-count mismatch
// is diagnosed ahead of any role problem.
func (v *Validator) ValidateShape(shape []int, labels []string) error {
	if len(labels) != len(shape) {
		return errors.New(errors.ErrCodeAxisCountMismatch,
			"number of axes (%d) must match data dimensions (%d); axes: %v, shape: %v",
			len(labels), len(shape), labels, shape)
	}
	return nil
}
