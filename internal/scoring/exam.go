package scoring

// ExamScores normalizes raw exam points to 0..1 using each exam's own
// maximum. Unlike homework and quizzes there is no cross-exam policy; every
// exam stays a separate category with its own weight.
func ExamScores(earned, possible []float64) []float64 {
	out := make([]float64, len(earned))
	for i := range earned {
		out[i] = earned[i] / possible[i]
	}
	return out
}
