package session

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		score int
		max   int
		want  float64
	}{
		{"mid range", 750, 1000, 0.75},
		{"full score", 100, 100, 1.0},
		{"zero score", 0, 100, 0.0},
		{"count based", 3, 5, 0.6},
		{"zero max does not divide by zero", 0, 0, 0.0},
		{"negative max treated as one", 5, -3, 1.0},
		{"score above max clamps", 140, 100, 1.0},
		{"negative score clamps to zero", -10, 100, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.score, tt.max)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Normalize(%d, %d) = %v, want %v", tt.score, tt.max, got, tt.want)
			}
			if got < 0 || got > 1 {
				t.Errorf("Normalize(%d, %d) = %v, outside [0,1]", tt.score, tt.max, got)
			}
		})
	}
}

func TestGradeScale(t *testing.T) {
	scale := DefaultGradeScale()

	tests := []struct {
		normalized float64
		want       string
	}{
		{1.0, "S"},
		{0.95, "S"},
		{0.949, "A"},
		{0.85, "A"},
		{0.75, "B"},
		{0.583, "C"},
		{0.5, "C"},
		{0.499, "D"},
		{0.0, "D"},
	}

	for _, tt := range tests {
		if got := scale.Grade(tt.normalized); got != tt.want {
			t.Errorf("Grade(%v) = %q, want %q", tt.normalized, got, tt.want)
		}
	}
}

func TestGradeScaleUnsortedConfig(t *testing.T) {
	// Bands in config order, not threshold order: evaluation must still be
	// highest-to-lowest.
	scale := GradeScale{
		{Min: 0.0, Label: "fail"},
		{Min: 0.9, Label: "gold"},
		{Min: 0.5, Label: "pass"},
	}

	if got := scale.Grade(0.95); got != "gold" {
		t.Errorf("Grade(0.95) = %q, want gold", got)
	}
	if got := scale.Grade(0.6); got != "pass" {
		t.Errorf("Grade(0.6) = %q, want pass", got)
	}
	if got := scale.Grade(0.1); got != "fail" {
		t.Errorf("Grade(0.1) = %q, want fail", got)
	}
}

func TestGradeScaleEmptyFallsBackToDefault(t *testing.T) {
	var scale GradeScale
	if got := scale.Grade(1.0); got != "S" {
		t.Errorf("empty scale Grade(1.0) = %q, want S", got)
	}
	if got := scale.Grade(0.0); got != "D" {
		t.Errorf("empty scale Grade(0.0) = %q, want D", got)
	}
}
