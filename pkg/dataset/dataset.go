package dataset

import (
	"github.com/specview/specview/pkg/ndarray"
)

// Dataset is a labeled numeric volume: the array plus the axis roles
// and naming the display pipeline needs.
type Dataset struct {
	// Title is the display title; may be empty.
	Title string

	// Axes assigns a role label to each array dimension, in order.
	Axes []string

	// StateNames labels the slices along a states axis; may be empty.
	StateNames []string

	// Array holds the values.
	Array *ndarray.Array
}
