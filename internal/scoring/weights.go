package scoring

import (
	"fmt"
	"math"
)

// WeightSet defines how category scores combine into the final score. All
// weights together must sum to 1.0.
type WeightSet struct {
	Exams    []float64 `json:"exams"` // one weight per exam, in exam order
	Homework float64   `json:"homework"`
	Quiz     float64   `json:"quiz"`
}

// DefaultWeights returns the standard offering weights: three exams at
// 5/10/15%, homework 40%, quizzes 30%.
func DefaultWeights() WeightSet {
	return WeightSet{
		Exams:    []float64{0.05, 0.10, 0.15},
		Homework: 0.40,
		Quiz:     0.30,
	}
}

// Sum returns the total of all weights.
func (w WeightSet) Sum() float64 {
	s := w.Homework + w.Quiz
	for _, e := range w.Exams {
		s += e
	}
	return s
}

// Validate checks that weights are non-negative and sum to 1.0.
func (w WeightSet) Validate() error {
	if math.Abs(w.Sum()-1.0) > 1e-9 {
		return fmt.Errorf("weights sum to %.6f, must sum to 1.0", w.Sum())
	}
	if w.Homework < 0 || w.Quiz < 0 {
		return fmt.Errorf("negative weight")
	}
	for _, e := range w.Exams {
		if e < 0 {
			return fmt.Errorf("negative exam weight")
		}
	}
	return nil
}
