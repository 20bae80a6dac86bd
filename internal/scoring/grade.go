package scoring

import "fmt"

// GradeBand maps a minimum ceiling percentage to a letter.
type GradeBand struct {
	Threshold int    `json:"threshold"`
	Letter    string `json:"letter"`
}

// GradeScale is an ordered threshold table, highest threshold first. The last
// band must have threshold 0 so every percentage classifies.
type GradeScale []GradeBand

// DefaultScale returns the usual 90/80/70/60 letter bands.
func DefaultScale() GradeScale {
	return GradeScale{
		{Threshold: 90, Letter: "A"},
		{Threshold: 80, Letter: "B"},
		{Threshold: 70, Letter: "C"},
		{Threshold: 60, Letter: "D"},
		{Threshold: 0, Letter: "F"},
	}
}

// Validate checks ordering and totality of the scale.
func (s GradeScale) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("grade scale is empty")
	}
	for i := 1; i < len(s); i++ {
		if s[i].Threshold >= s[i-1].Threshold {
			return fmt.Errorf("grade scale not strictly descending at %q", s[i].Letter)
		}
	}
	if s[len(s)-1].Threshold != 0 {
		return fmt.Errorf("grade scale must end with a 0 threshold")
	}
	return nil
}

// Letter classifies a ceiling percentage: the first band whose threshold is
// at or below the value wins. Scanning descending means ties go to the
// higher letter.
func (s GradeScale) Letter(pct int) string {
	for _, b := range s {
		if pct >= b.Threshold {
			return b.Letter
		}
	}
	return s[len(s)-1].Letter
}

// Rank orders letters for sorting and grouping: the bottom band ranks 0 and
// each better letter ranks one higher. Unknown letters rank -1.
func (s GradeScale) Rank(letter string) int {
	for i, b := range s {
		if b.Letter == letter {
			return len(s) - 1 - i
		}
	}
	return -1
}

// Letters returns the scale's letters best-first.
func (s GradeScale) Letters() []string {
	out := make([]string, len(s))
	for i, b := range s {
		out[i] = b.Letter
	}
	return out
}
