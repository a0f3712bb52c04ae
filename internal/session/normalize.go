package session

import "sort"

// Normalize rescales a raw score against its declared maximum into [0,1].
// It is total: a zero or negative maximum is treated as 1, a negative score
// as 0, and a score above the maximum clamps to 1. A module reporting
// garbage yields a legal value instead of an error; one buggy game must
// never take the session down.
func Normalize(score, maxScore int) float64 {
	if maxScore < 1 {
		maxScore = 1
	}
	if score < 0 {
		score = 0
	}
	if score > maxScore {
		score = maxScore
	}
	return float64(score) / float64(maxScore)
}

// GradeBand maps a minimum normalized score to a grade label.
type GradeBand struct {
	Min   float64 `yaml:"min"`
	Label string  `yaml:"label"`
}

// GradeScale is an ordered list of bands, evaluated highest threshold
// first; the first band whose minimum is met wins. The thresholds are
// configuration, not algorithm: only totality and determinism are promised.
type GradeScale []GradeBand

// Grade maps a normalized value to a discrete grade label.
// The scale is evaluated highest-to-lowest regardless of the order bands
// were configured in; the lowest band acts as the floor.
func (s GradeScale) Grade(normalized float64) string {
	if len(s) == 0 {
		s = DefaultGradeScale()
	}

	bands := make(GradeScale, len(s))
	copy(bands, s)
	sort.SliceStable(bands, func(i, j int) bool {
		return bands[i].Min > bands[j].Min
	})

	for _, b := range bands {
		if normalized >= b.Min {
			return b.Label
		}
	}
	return bands[len(bands)-1].Label
}

// DefaultGradeScale returns the stock S/A/B/C/D thresholds.
func DefaultGradeScale() GradeScale {
	return GradeScale{
		{Min: 0.95, Label: "S"},
		{Min: 0.85, Label: "A"},
		{Min: 0.70, Label: "B"},
		{Min: 0.50, Label: "C"},
		{Min: 0.00, Label: "D"},
	}
}
