package scale

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specview/specview/pkg/axis"
	"github.com/specview/specview/pkg/ndarray"
)

func TestAnalyzeRangeIdentityCases(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
	}{
		{"empty", nil},
		{"all NaN", []float64{math.NaN(), math.NaN()}},
		{"all infinite", []float64{math.Inf(1), math.Inf(-1)}},
		{"all zero", []float64{0, 0, 0}},
		{"in band low", []float64{0.1, 0.05}},
		{"in band high", []float64{-10.0, 3.0}},
		{"in band typical", []float64{1.5, -2.5, 4.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := AnalyzeRange(tt.values)
			assert.Equal(t, Identity, entry)
		})
	}
}

func TestAnalyzeRangeDecadeSnap(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		exponent int
		label    string
	}{
		{"3.2e7 counts", []float64{3.2e7}, -7, "×10⁻⁷"},
		{"large 1e6", []float64{1e6}, -5, "×10⁻⁵"},
		{"small 1e-6", []float64{1e-6}, 7, "×10⁷"},
		{"tiny 2e-13", []float64{2e-13}, 13, "×10¹³"},
		{"negative dominated", []float64{-4.0e4, 2.0}, -4, "×10⁻⁴"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := AnalyzeRange(tt.values)
			require.Equal(t, tt.exponent, entry.Exponent)
			assert.Equal(t, math.Pow(10, float64(tt.exponent)), entry.Factor)
			assert.Equal(t, tt.label, entry.Label)
		})
	}
}

func TestAnalyzeRangeIgnoresNonFinite(t *testing.T) {
	entry := AnalyzeRange([]float64{math.NaN(), 3.2e7, math.Inf(1)})
	require.Equal(t, -7, entry.Exponent)
}

// Once scaled, the maximum sits near targetValue inside the legible
// band, so a second analysis is the identity.
func TestAnalyzeRangeIdempotent(t *testing.T) {
	values := []float64{3.2e7, 1.1e7, -2.9e7}
	entry := AnalyzeRange(values)
	require.NotEqual(t, 1.0, entry.Factor)

	scaled := make([]float64, len(values))
	for i, v := range values {
		scaled[i] = v * entry.Factor
	}
	assert.Equal(t, Identity, AnalyzeRange(scaled))
	assert.InDelta(t, 3.2, math.Abs(scaled[0]), 1e-9)
}

func TestFormatExponent(t *testing.T) {
	assert.Equal(t, "", FormatExponent(0))
	assert.Equal(t, "³", FormatExponent(3))
	assert.Equal(t, "⁻¹²", FormatExponent(-12))
}

func TestScaleGlobal(t *testing.T) {
	vals := []float64{3.2e7, 3.2e7, 3.2e7, 3.2e7}
	data, err := ndarray.FromSlice(vals, 4, 1)
	require.NoError(t, err)

	scaled, result, err := Scale(data, axis.Spec{axis.Spectral, axis.Spatial}, true)
	require.NoError(t, err)

	entry, ok := result.Entry(Global())
	require.True(t, ok)
	assert.Equal(t, -7, entry.Exponent)
	assert.Equal(t, 1e-7, entry.Factor)
	assert.True(t, result.IsScaled())
	assert.False(t, result.HasStates)
	assert.Equal(t, -1, result.StatesAxis)

	assert.InDelta(t, 3.2, scaled.At(0, 0), 1e-9)
	// Input array untouched.
	assert.Equal(t, 3.2e7, data.At(0, 0))
}

func TestScaleGlobalInBandReturnsInput(t *testing.T) {
	data, err := ndarray.FromSlice([]float64{1, 2, 3, 4}, 2, 2)
	require.NoError(t, err)

	scaled, result, err := Scale(data, axis.Spec{axis.Spectral, axis.Spatial}, true)
	require.NoError(t, err)
	assert.Same(t, data, scaled)
	assert.False(t, result.IsScaled())
}

func TestScalePerStateIndependence(t *testing.T) {
	// State 0 around 1e6, state 1 around 1e-6: each gets its own
	// factor and neither influences the other.
	data, err := ndarray.FromSlice([]float64{
		1e6, 2e6, -1e6,
		1e-6, 2e-6, -1e-6,
	}, 2, 3)
	require.NoError(t, err)

	scaled, result, err := Scale(data, axis.Spec{axis.States, axis.Spectral}, true)
	require.NoError(t, err)
	require.True(t, result.HasStates)
	require.Equal(t, 0, result.StatesAxis)

	e0, ok := result.Entry(PerState(0))
	require.True(t, ok)
	e1, ok := result.Entry(PerState(1))
	require.True(t, ok)

	assert.Equal(t, -6, e0.Exponent)
	assert.Equal(t, 6, e1.Exponent)

	assert.InDelta(t, 1.0, scaled.At(0, 0), 1e-9)
	assert.InDelta(t, 2.0, scaled.At(1, 1), 1e-9)
}

func TestScalePerStateMixedBand(t *testing.T) {
	// State 0 needs scaling, state 1 already legible and stays exact.
	data, err := ndarray.FromSlice([]float64{
		5e8, 5e8,
		1.25, 2.5,
	}, 2, 2)
	require.NoError(t, err)

	scaled, result, err := Scale(data, axis.Spec{axis.States, axis.Spatial}, true)
	require.NoError(t, err)

	e1, _ := result.Entry(PerState(1))
	assert.Equal(t, Identity, e1)
	assert.Equal(t, 1.25, scaled.At(1, 0))
	assert.Equal(t, 2.5, scaled.At(1, 1))
	assert.True(t, result.IsScaled())
}

func TestScaleDisabled(t *testing.T) {
	data, err := ndarray.FromSlice([]float64{1e9, 2e9}, 2)
	require.NoError(t, err)

	scaled, result, err := Scale(data, axis.Spec{axis.Spectral}, false)
	require.NoError(t, err)
	assert.Same(t, data, scaled)
	assert.Empty(t, result.Entries)
	assert.False(t, result.IsScaled())
}

func TestScopeString(t *testing.T) {
	assert.Equal(t, "global", Global().String())
	assert.Equal(t, "state 2", PerState(2).String())
	assert.True(t, PerState(2).IsPerState())
	assert.Equal(t, 2, PerState(2).State())
	assert.False(t, Global().IsPerState())
}
