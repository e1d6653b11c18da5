// Package axis defines the semantic roles of array dimensions and the
// rules for validating and canonically ordering them.
//
// Every dimension of a dataset carries one of four roles: states (e.g.
// the Stokes parameters of a polarimetric measurement), spectral
// (wavelength/frequency), spatial (up to two, e.g. slit position and
// scan step), and time. Callers label dimensions with strings; this
// package converts the labels into a validated [Spec], computes the
// canonical target order all downstream viewers expect, and permutes
// arrays into it.
package axis

import (
	"strings"

	"github.com/specview/specview/pkg/errors"
	"github.com/specview/specview/pkg/ndarray"
)

// Type is the semantic role of one array dimension.
type Type int

// The closed set of axis roles.
const (
	States Type = iota
	Spectral
	Spatial
	Time
)

// typeNames maps roles to their canonical lowercase labels.
var typeNames = map[Type]string{
	States:   "states",
	Spectral: "spectral",
	Spatial:  "spatial",
	Time:     "time",
}

// String returns the canonical lowercase label for the role.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// TypeNames returns the accepted labels in declaration order.
// Used in error messages and CLI help text.
func TypeNames() []string {
	return []string{States.String(), Spectral.String(), Spatial.String(), Time.String()}
}

// ParseType converts a label into a role, case-insensitively.
func ParseType(label string) (Type, error) {
	switch strings.ToLower(label) {
	case "states":
		return States, nil
	case "spectral":
		return Spectral, nil
	case "spatial":
		return Spatial, nil
	case "time":
		return Time, nil
	}
	return 0, errors.New(errors.ErrCodeUnknownAxisLabel,
		"unsupported axis type %q (supported: %s)", label, strings.Join(TypeNames(), ", "))
}

// Spec is an ordered assignment of one role per array dimension.
type Spec []Type

// Strings returns the labels of the spec in order.
func (s Spec) Strings() []string {
	out := make([]string, len(s))
	for i, t := range s {
		out[i] = t.String()
	}
	return out
}

// String renders the spec as a comma-separated label list.
func (s Spec) String() string {
	return strings.Join(s.Strings(), ",")
}

// Count returns how many dimensions carry the given role.
func (s Spec) Count(t Type) int {
	n := 0
	for _, x := range s {
		if x == t {
			n++
		}
	}
	return n
}

// Contains reports whether any dimension carries the given role.
func (s Spec) Contains(t Type) bool { return s.Count(t) > 0 }

// Index returns the position of the first dimension with the given role,
// or -1 if the role is absent.
func (s Spec) Index(t Type) int {
	for i, x := range s {
		if x == t {
			return i
		}
	}
	return -1
}

// Equal reports element-wise equality with other.
func (s Spec) Equal(other Spec) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the spec.
func (s Spec) Clone() Spec { return append(Spec(nil), s...) }

// Permute rearranges data from the input axis order into the target
// axis order and returns the result. When the orders already match, the
// input array is returned unchanged without copying.
//
// The position mapping consumes input positions left to right: for each
// target role, the first not-yet-used input position with that role is
// taken. This matters when a role (spatial) occurs twice: repeated
// roles keep their original relative order. A target role with no
// remaining match yields TARGET_AXIS_NOT_FOUND; this cannot happen when
// target was produced by [TargetOrder] on the same input.
func Permute(data *ndarray.Array, input, target Spec) (*ndarray.Array, error) {
	if data.Rank() != len(input) {
		return nil, errors.New(errors.ErrCodeAxisCountMismatch,
			"data has %d dimensions but %d axes specified", data.Rank(), len(input))
	}
	if input.Equal(target) {
		return data, nil
	}

	used := make([]bool, len(input))
	perm := make([]int, 0, len(target))
	for _, want := range target {
		found := -1
		for i, have := range input {
			if !used[i] && have == want {
				found = i
				break
			}
		}
		if found < 0 {
			return nil, errors.New(errors.ErrCodeTargetAxisMissing,
				"target axis %s not found in input axes %s", want, input)
		}
		used[found] = true
		perm = append(perm, found)
	}

	return data.Transpose(perm)
}
