package scoring

import (
	"fmt"
	"math"
)

// FinalScore combines per-category scores with their weights. Category scores
// are not clamped: a score above 1.0 (extra credit) propagates uncapped.
func FinalScore(w WeightSet, exams []float64, homework, quiz float64) (float64, error) {
	if len(exams) != len(w.Exams) {
		return 0, fmt.Errorf("have %d exam scores, weights declare %d", len(exams), len(w.Exams))
	}
	final := w.Homework*homework + w.Quiz*quiz
	for i, s := range exams {
		final += w.Exams[i] * s
	}
	return final, nil
}

// CeilingPercent scales a 0..1 final score to a whole percentage, rounded up.
// Classification always uses the ceiling so borderline students get the
// benefit of the fraction.
func CeilingPercent(final float64) int {
	return int(math.Ceil(final * 100))
}
