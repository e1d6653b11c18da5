package axis

import (
	"github.com/specview/specview/pkg/errors"
)

// Canonical ordering encodes a fixed role priority:
// states > spectral > spatial > time.
//
// Every rank's target order is derived from one declarative table
// consulted by a single algorithm, rather than a hand-written branch
// per rank. Ranks 1 and 2 preserve the caller's order except that
// spatial axes move to the end; ranks 3 and 4 scan a priority list;
// rank 5 is fully determined by the role-cardinality limits.
type ordering struct {
	// fixed, when non-nil, is the exact canonical order for the rank.
	fixed Spec

	// statesFirst pulls a states axis ahead of the priority scan.
	statesFirst bool

	// scan is the role priority consulted for the remaining axes.
	scan []Type

	// extraSpatialAtEnd appends a repeated spatial axis after the scan
	// (one entry per present role during the scan) instead of keeping
	// both spatial entries adjacent. This reproduces the count-based
	// placement the viewers expect; it does not track which original
	// position a repeated spatial axis came from.
	extraSpatialAtEnd bool
}

var rankOrderings = map[int]ordering{
	3: {scan: []Type{States, Spectral, Spatial, Time}, extraSpatialAtEnd: true},
	4: {statesFirst: true, scan: []Type{Spectral, Spatial, Time}},
	5: {fixed: Spec{States, Spectral, Spatial, Spatial, Time}},
}

// TargetOrder computes the canonical axis order for a validated input
// spec. The result has the same role multiset as the input.
func TargetOrder(input Spec) (Spec, error) {
	rank := len(input)

	if rank >= 1 && rank <= 2 {
		return trailingSpatial(input), nil
	}

	rule, ok := rankOrderings[rank]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupportedRank,
			"unsupported number of dimensions: %d", rank)
	}
	if rule.fixed != nil {
		return rule.fixed.Clone(), nil
	}

	counts := map[Type]int{}
	for _, t := range input {
		counts[t]++
	}

	out := make(Spec, 0, rank)
	if rule.statesFirst && counts[States] > 0 {
		out = append(out, States)
		counts[States]--
	}
	for _, t := range rule.scan {
		n := counts[t]
		if n == 0 {
			continue
		}
		if rule.extraSpatialAtEnd {
			out = append(out, t)
			counts[t]--
		} else {
			for i := 0; i < n; i++ {
				out = append(out, t)
			}
			counts[t] = 0
		}
	}
	// A second spatial axis is the only role that can remain.
	for i := 0; i < counts[Spatial]; i++ {
		out = append(out, Spatial)
	}

	return out, nil
}

// trailingSpatial preserves the input order but moves every spatial
// axis to the end, keeping the relative order among spatial axes.
func trailingSpatial(input Spec) Spec {
	out := make(Spec, 0, len(input))
	tail := make(Spec, 0, len(input))
	for _, t := range input {
		if t == Spatial {
			tail = append(tail, t)
		} else {
			out = append(out, t)
		}
	}
	return append(out, tail...)
}
