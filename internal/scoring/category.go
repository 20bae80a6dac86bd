package scoring

import "errors"

// ErrNoItems is returned when a category is scored with zero declared items.
// The average-of-ratios policy is undefined for an empty category, so this is
// surfaced instead of letting a NaN flow into the final score.
var ErrNoItems = errors.New("scoring: category has no items")

// CategoryResult holds both policy values and the selected score for one
// student in one multi-item category (homework or quizzes).
type CategoryResult struct {
	TotalPoints     float64 `json:"total_points"`
	AverageOfRatios float64 `json:"average_of_ratios"`
	Score           float64 `json:"score"`
}

// ScoreCategory computes a category score from parallel earned/possible
// slices, one entry per item. Two policies compete:
//
//   - total points: sum(earned) / sum(possible)
//   - average of ratios: mean(earned_i / possible_i)
//
// Each student gets the more favorable of the two. Missing submissions must
// already be represented as zero earned points; a zero entry in possible is a
// source misconfiguration caught at ingestion, not here.
func ScoreCategory(earned, possible []float64) (CategoryResult, error) {
	if len(earned) == 0 || len(possible) == 0 {
		return CategoryResult{}, ErrNoItems
	}
	if len(earned) != len(possible) {
		return CategoryResult{}, errors.New("scoring: earned/possible length mismatch")
	}

	var sumEarned, sumPossible, ratioSum float64
	for i := range earned {
		sumEarned += earned[i]
		sumPossible += possible[i]
		ratioSum += earned[i] / possible[i]
	}

	r := CategoryResult{
		TotalPoints:     sumEarned / sumPossible,
		AverageOfRatios: ratioSum / float64(len(earned)),
	}
	r.Score = r.TotalPoints
	if r.AverageOfRatios > r.Score {
		r.Score = r.AverageOfRatios
	}
	return r, nil
}
