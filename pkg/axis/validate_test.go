package axis

import (
	"testing"

	"github.com/specview/specview/pkg/errors"
)

func TestValidate(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name   string
		labels []string
		want   Spec
	}{
		{"canonical 3d", []string{"states", "spectral", "spatial"}, Spec{States, Spectral, Spatial}},
		{"case insensitive", []string{"STATES", "Spectral", "spatial"}, Spec{States, Spectral, Spatial}},
		{"two spatial", []string{"spectral", "spatial", "spatial"}, Spec{Spectral, Spatial, Spatial}},
		{"full 5d", []string{"states", "spectral", "spatial", "spatial", "time"}, Spec{States, Spectral, Spatial, Spatial, Time}},
		{"single spectral", []string{"spectral"}, Spec{Spectral}},
		{"single time", []string{"time"}, Spec{Time}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Validate(tt.labels)
			if err != nil {
				t.Fatalf("Validate(%v): %v", tt.labels, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Validate(%v) = %v, want %v", tt.labels, got, tt.want)
			}
		})
	}
}

func TestValidateRejects(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name   string
		labels []string
		code   errors.Code
	}{
		{"too many dims", []string{"states", "spectral", "spatial", "spatial", "time", "time"}, errors.ErrCodeInvalidAxisCount},
		{"unknown label", []string{"states", "wavelength"}, errors.ErrCodeUnknownAxisLabel},
		{"duplicate states", []string{"states", "states", "spatial"}, errors.ErrCodeDuplicateAxisRole},
		{"duplicate spectral", []string{"spectral", "spectral"}, errors.ErrCodeDuplicateAxisRole},
		{"duplicate time", []string{"time", "spatial", "time"}, errors.ErrCodeDuplicateAxisRole},
		{"three spatial", []string{"states", "spectral", "spatial", "spatial", "spatial"}, errors.ErrCodeDuplicateAxisRole},
		{"single states", []string{"states"}, errors.ErrCodeInvalidSingleAxis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Validate(tt.labels)
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate(%v) error = %v, want code %s", tt.labels, err, tt.code)
			}
		})
	}
}

func TestValidateShape(t *testing.T) {
	v := NewValidator()

	if err := v.ValidateShape([]int{4, 100, 200}, []string{"states", "spectral", "spatial"}); err != nil {
		t.Errorf("matching shape rejected: %v", err)
	}

	err := v.ValidateShape([]int{4, 100}, []string{"states", "spectral", "spatial"})
	if !errors.Is(err, errors.ErrCodeAxisCountMismatch) {
		t.Errorf("error = %v, want AXIS_COUNT_MISMATCH", err)
	}
}

// A caller with both a wrong label and a wrong count must get the
// count mismatch, which is the more specific diagnosis.
func TestValidateShapeCheckedBeforeRoles(t *testing.T) {
	v := NewValidator()
	labels := []string{"states", "bogus"}

	if err := v.ValidateShape([]int{4, 100, 200}, labels); !errors.Is(err, errors.ErrCodeAxisCountMismatch) {
		t.Fatalf("ValidateShape error = %v, want AXIS_COUNT_MISMATCH", err)
	}
}

// ParseLabels accepts role combinations that ValidateRoles rejects, so
// callers can inspect roles (state-name resolution) before the
// combination rules fire.
func TestParseLabelsDefersRoleChecks(t *testing.T) {
	v := NewValidator()

	spec, err := v.ParseLabels([]string{"states", "states", "spatial"})
	if err != nil {
		t.Fatalf("ParseLabels: %v", err)
	}
	if !spec.Equal(Spec{States, States, Spatial}) {
		t.Errorf("spec = %v", spec)
	}
	if err := v.ValidateRoles(spec); !errors.Is(err, errors.ErrCodeDuplicateAxisRole) {
		t.Errorf("ValidateRoles error = %v, want DUPLICATE_AXIS_ROLE", err)
	}
}

func TestValidateCount(t *testing.T) {
	v := NewValidator()

	if err := v.ValidateCount([]string{"states", "spectral", "spatial", "spatial", "time"}); err != nil {
		t.Errorf("five labels rejected: %v", err)
	}
	err := v.ValidateCount([]string{"states", "spectral", "spatial", "spatial", "time", "time"})
	if !errors.Is(err, errors.ErrCodeInvalidAxisCount) {
		t.Errorf("error = %v, want INVALID_AXIS_COUNT", err)
	}
}

func TestValidateData(t *testing.T) {
	v := NewValidator()

	spec, err := v.ValidateData([]int{4, 100, 200}, []string{"states", "spectral", "spatial"})
	if err != nil {
		t.Fatalf("ValidateData: %v", err)
	}
	if !spec.Equal(Spec{States, Spectral, Spatial}) {
		t.Errorf("spec = %v", spec)
	}

	tests := []struct {
		name   string
		shape  []int
		labels []string
		code   errors.Code
	}{
		// The cap fires before the shape is even consulted.
		{"over cap", []int{4, 100, 200}, []string{"states", "spectral", "spatial", "spatial", "time", "time"}, errors.ErrCodeInvalidAxisCount},
		{"count mismatch before roles", []int{100, 200}, []string{"states", "states", "spatial"}, errors.ErrCodeAxisCountMismatch},
		{"roles last", []int{4, 100, 200}, []string{"states", "states", "spatial"}, errors.ErrCodeDuplicateAxisRole},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.ValidateData(tt.shape, tt.labels)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}
