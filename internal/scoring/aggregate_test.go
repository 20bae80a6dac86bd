package scoring

import (
	"math"
	"testing"
)

func TestDefaultWeightsSumToOne(t *testing.T) {
	if err := DefaultWeights().Validate(); err != nil {
		t.Fatalf("default weights invalid: %v", err)
	}
	if math.Abs(DefaultWeights().Sum()-1.0) > 1e-9 {
		t.Fatalf("default weights sum to %v", DefaultWeights().Sum())
	}
}

func TestWeightsValidate(t *testing.T) {
	w := WeightSet{Exams: []float64{0.5}, Homework: 0.3, Quiz: 0.3}
	if err := w.Validate(); err == nil {
		t.Fatal("weights summing to 1.1 should not validate")
	}
	neg := WeightSet{Exams: []float64{-0.5}, Homework: 1.0, Quiz: 0.5}
	if err := neg.Validate(); err == nil {
		t.Fatal("negative weight should not validate")
	}
}

func TestFinalScoreWeightedSumLaw(t *testing.T) {
	// Powers of two keep every term exact.
	w := WeightSet{Exams: []float64{0.25}, Homework: 0.5, Quiz: 0.25}
	got, err := FinalScore(w, []float64{0.75}, 0.625, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 0.25*0.75 + 0.5*0.625 + 0.25*0.5 // 0.625
	if got != want {
		t.Errorf("final = %v, want %v", got, want)
	}
}

func TestFinalScoreLengthMismatch(t *testing.T) {
	w := WeightSet{Exams: []float64{0.25, 0.25}, Homework: 0.25, Quiz: 0.25}
	if _, err := FinalScore(w, []float64{1}, 1, 1); err == nil {
		t.Fatal("want error when exam score count differs from weights")
	}
}

func TestCeilingPercent(t *testing.T) {
	cases := []struct {
		final float64
		want  int
	}{
		{0, 0},
		{0.625, 63},
		{0.885, 89},
		{0.75, 75},
		{1, 100},
		{1.105, 111}, // extra credit propagates uncapped
	}
	for _, tc := range cases {
		if got := CeilingPercent(tc.final); got != tc.want {
			t.Errorf("CeilingPercent(%v) = %d, want %d", tc.final, got, tc.want)
		}
	}
}
