// Package ndarray provides a rectangular N-dimensional numeric array.
//
// Arrays store float64 values in a flat backing slice in row-major order
// with precomputed strides, the usual representation for scientific
// volumes in Go. The package supports the operations the display
// pipeline needs: generalized transposition, extraction of hyperslabs
// along one axis, and in-place scalar multiplication of the whole array
// or of a single slice.
//
// Arrays returned by Transpose and SliceAlong own their data; mutating
// them does not affect the source array.
package ndarray

import (
	"github.com/specview/specview/pkg/errors"
)

// MaxRank is the highest dimensionality an Array may have.
const MaxRank = 5

// Array is a rectangular N-dimensional array of float64 values.
type Array struct {
	data    []float64
	shape   []int
	strides []int
}

// New creates a zero-filled array with the given shape.
// Every extent must be positive and the rank must be 1..MaxRank.
func New(shape ...int) (*Array, error) {
	size, err := checkShape(shape)
	if err != nil {
		return nil, err
	}
	return &Array{
		data:    make([]float64, size),
		shape:   append([]int(nil), shape...),
		strides: rowMajorStrides(shape),
	}, nil
}

// FromSlice wraps data in an array with the given shape.
// The length of data must equal the product of the shape extents.
// The array takes ownership of data; the caller must not mutate it.
func FromSlice(data []float64, shape ...int) (*Array, error) {
	size, err := checkShape(shape)
	if err != nil {
		return nil, err
	}
	if len(data) != size {
		return nil, errors.New(errors.ErrCodeInvalidShape,
			"data length %d does not match shape %v (want %d)", len(data), shape, size)
	}
	return &Array{
		data:    data,
		shape:   append([]int(nil), shape...),
		strides: rowMajorStrides(shape),
	}, nil
}

// checkShape validates a shape and returns the total element count.
func checkShape(shape []int) (int, error) {
	if len(shape) == 0 || len(shape) > MaxRank {
		return 0, errors.New(errors.ErrCodeUnsupportedRank,
			"rank %d outside supported range 1..%d", len(shape), MaxRank)
	}
	size := 1
	for _, n := range shape {
		if n <= 0 {
			return 0, errors.New(errors.ErrCodeInvalidShape,
				"shape %v contains non-positive extent", shape)
		}
		size *= n
	}
	return size, nil
}

// rowMajorStrides computes element strides for a row-major layout.
func rowMajorStrides(shape []int) []int {
	strides := make([]int, len(shape))
	stride := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= shape[i]
	}
	return strides
}

// Rank returns the number of dimensions.
func (a *Array) Rank() int { return len(a.shape) }

// Size returns the total number of elements.
func (a *Array) Size() int { return len(a.data) }

// Shape returns a copy of the array's shape.
func (a *Array) Shape() []int { return append([]int(nil), a.shape...) }

// Dim returns the extent of the given axis.
func (a *Array) Dim(axis int) int { return a.shape[axis] }

// Data returns the flat backing slice in row-major order.
func (a *Array) Data() []float64 { return a.data }

// At returns the element at the given multi-index.
func (a *Array) At(idx ...int) float64 {
	return a.data[a.offset(idx)]
}

// Set stores v at the given multi-index.
func (a *Array) Set(v float64, idx ...int) {
	a.data[a.offset(idx)] = v
}

func (a *Array) offset(idx []int) int {
	off := 0
	for i, x := range idx {
		off += x * a.strides[i]
	}
	return off
}

// Clone returns a deep copy of the array.
func (a *Array) Clone() *Array {
	return &Array{
		data:    append([]float64(nil), a.data...),
		shape:   append([]int(nil), a.shape...),
		strides: append([]int(nil), a.strides...),
	}
}

// Transpose returns a new array with axes permuted so that output axis i
// is input axis perm[i]. perm must be a permutation of 0..rank-1.
// The result is a contiguous copy; the source is left untouched.
func (a *Array) Transpose(perm []int) (*Array, error) {
	if len(perm) != len(a.shape) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"permutation length %d does not match rank %d", len(perm), len(a.shape))
	}
	seen := make([]bool, len(perm))
	for _, p := range perm {
		if p < 0 || p >= len(perm) || seen[p] {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"invalid axis permutation %v", perm)
		}
		seen[p] = true
	}

	outShape := make([]int, len(a.shape))
	for i, p := range perm {
		outShape[i] = a.shape[p]
	}

	out := &Array{
		data:    make([]float64, len(a.data)),
		shape:   outShape,
		strides: rowMajorStrides(outShape),
	}

	// Walk the output in row-major order; map each output multi-index
	// back to the source offset through the permuted strides.
	srcStrides := make([]int, len(perm))
	for i, p := range perm {
		srcStrides[i] = a.strides[p]
	}
	idx := make([]int, len(outShape))
	for flat := range out.data {
		src := 0
		for i, x := range idx {
			src += x * srcStrides[i]
		}
		out.data[flat] = a.data[src]
		increment(idx, outShape)
	}
	return out, nil
}

// SliceAlong returns a copy of the hyperslab at the given index of the
// given axis. The result has rank one lower than the source; a rank-1
// source yields a single-element rank-1 array.
func (a *Array) SliceAlong(axis, index int) (*Array, error) {
	if axis < 0 || axis >= len(a.shape) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"axis %d out of range for rank %d", axis, len(a.shape))
	}
	if index < 0 || index >= a.shape[axis] {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"index %d out of range for axis %d (extent %d)", index, axis, a.shape[axis])
	}

	outShape := make([]int, 0, len(a.shape)-1)
	for i, n := range a.shape {
		if i != axis {
			outShape = append(outShape, n)
		}
	}
	if len(outShape) == 0 {
		outShape = []int{1}
		return &Array{
			data:    []float64{a.data[index*a.strides[axis]]},
			shape:   outShape,
			strides: []int{1},
		}, nil
	}

	out := &Array{
		data:    make([]float64, product(outShape)),
		shape:   outShape,
		strides: rowMajorStrides(outShape),
	}
	base := index * a.strides[axis]
	srcStrides := make([]int, 0, len(a.shape)-1)
	for i, s := range a.strides {
		if i != axis {
			srcStrides = append(srcStrides, s)
		}
	}
	idx := make([]int, len(outShape))
	for flat := range out.data {
		src := base
		for i, x := range idx {
			src += x * srcStrides[i]
		}
		out.data[flat] = a.data[src]
		increment(idx, outShape)
	}
	return out, nil
}

// Scale multiplies every element by f in place.
func (a *Array) Scale(f float64) {
	for i := range a.data {
		a.data[i] *= f
	}
}

// ScaleSlice multiplies every element of the hyperslab at the given
// index of the given axis by f in place. Other slices are untouched.
func (a *Array) ScaleSlice(axis, index int, f float64) {
	base := index * a.strides[axis]
	outShape := make([]int, 0, len(a.shape)-1)
	srcStrides := make([]int, 0, len(a.shape)-1)
	for i := range a.shape {
		if i != axis {
			outShape = append(outShape, a.shape[i])
			srcStrides = append(srcStrides, a.strides[i])
		}
	}
	if len(outShape) == 0 {
		a.data[base] *= f
		return
	}
	idx := make([]int, len(outShape))
	n := product(outShape)
	for flat := 0; flat < n; flat++ {
		src := base
		for i, x := range idx {
			src += x * srcStrides[i]
		}
		a.data[src] *= f
		increment(idx, outShape)
	}
}

// Equal reports whether b has the same shape and identical element values.
func (a *Array) Equal(b *Array) bool {
	if b == nil || len(a.shape) != len(b.shape) {
		return false
	}
	for i := range a.shape {
		if a.shape[i] != b.shape[i] {
			return false
		}
	}
	for i := range a.data {
		if a.data[i] != b.data[i] {
			return false
		}
	}
	return true
}

// increment advances a multi-index through shape in row-major order.
func increment(idx, shape []int) {
	for i := len(idx) - 1; i >= 0; i-- {
		idx[i]++
		if idx[i] < shape[i] {
			return
		}
		idx[i] = 0
	}
}

func product(shape []int) int {
	n := 1
	for _, x := range shape {
		n *= x
	}
	return n
}
