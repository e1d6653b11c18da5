package axis

import (
	"testing"

	"github.com/specview/specview/pkg/errors"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		label string
		want  Type
	}{
		{"states", States},
		{"STATES", States},
		{"Spectral", Spectral},
		{"spatial", Spatial},
		{"TIME", Time},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := ParseType(tt.label)
			if err != nil {
				t.Fatalf("ParseType(%q): %v", tt.label, err)
			}
			if got != tt.want {
				t.Errorf("ParseType(%q) = %v, want %v", tt.label, got, tt.want)
			}
		})
	}
}

func TestParseTypeUnknown(t *testing.T) {
	_, err := ParseType("wavelength")
	if !errors.Is(err, errors.ErrCodeUnknownAxisLabel) {
		t.Errorf("error = %v, want UNKNOWN_AXIS_LABEL", err)
	}
}

func TestSpecHelpers(t *testing.T) {
	s := Spec{States, Spatial, Spectral, Spatial}

	if s.Count(Spatial) != 2 {
		t.Errorf("Count(Spatial) = %d, want 2", s.Count(Spatial))
	}
	if !s.Contains(States) || s.Contains(Time) {
		t.Error("Contains misreported roles")
	}
	if s.Index(Spatial) != 1 {
		t.Errorf("Index(Spatial) = %d, want 1", s.Index(Spatial))
	}
	if s.Index(Time) != -1 {
		t.Errorf("Index(Time) = %d, want -1", s.Index(Time))
	}
	if s.String() != "states,spatial,spectral,spatial" {
		t.Errorf("String() = %q", s.String())
	}
	if !s.Equal(s.Clone()) {
		t.Error("clone should equal source")
	}
	if s.Equal(Spec{States, Spatial}) {
		t.Error("different lengths should not be equal")
	}
}
