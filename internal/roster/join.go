package roster

import (
	"sort"
	"strings"
)

// MergeQuizzes folds per-quiz sources into one mapping from email to quiz
// name to earned points. Merging by key makes the result independent of the
// order quiz files were discovered in.
func MergeQuizzes(srcs []QuizSource) map[string]map[string]float64 {
	merged := map[string]map[string]float64{}
	for _, src := range srcs {
		for email, pts := range src.Grades {
			email = strings.ToLower(email)
			if merged[email] == nil {
				merged[email] = map[string]float64{}
			}
			merged[email][src.Quiz] = pts
		}
	}
	return merged
}

// Reconcile inner-joins the roster with the assessment source on NetID, then
// attaches quiz grades by email. Both keys are case-folded before comparison.
// Students missing from either the roster or the assessment source are
// dropped silently; that is a filter, not an error. A student with no quiz
// rows at all still appears, with an empty quiz map (all quizzes read as
// zero). Output is sorted by NetID so identical inputs always produce
// identical output.
func Reconcile(rosters []RosterRecord, assessments []AssessmentRecord, quizzes map[string]map[string]float64) []Student {
	byNetID := make(map[string]AssessmentRecord, len(assessments))
	for _, a := range assessments {
		byNetID[strings.ToLower(a.NetID)] = a
	}

	students := make([]Student, 0, len(rosters))
	for _, r := range rosters {
		netID := strings.ToLower(r.NetID)
		a, ok := byNetID[netID]
		if !ok {
			continue
		}
		email := strings.ToLower(r.Email)
		quiz := quizzes[email]
		if quiz == nil {
			quiz = map[string]float64{}
		}
		students = append(students, Student{
			NetID:     netID,
			Email:     email,
			Section:   r.Section,
			LastName:  a.LastName,
			FirstName: a.FirstName,
			Earned:    a.Earned,
			Max:       a.Max,
			Quiz:      quiz,
		})
	}

	sort.Slice(students, func(i, j int) bool { return students[i].NetID < students[j].NetID })
	return students
}
