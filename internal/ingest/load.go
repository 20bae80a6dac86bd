package ingest

import (
	"path/filepath"

	"github.com/gradeflow/gradeflow/internal/course"
	"github.com/gradeflow/gradeflow/internal/roster"
)

const (
	RosterFile     = "roster.csv"
	AssessmentFile = "hw_exam_grades.csv"
)

// Sources is everything one run needs, loaded and keyed but not yet joined.
type Sources struct {
	Roster      []roster.RosterRecord
	Assessments []roster.AssessmentRecord
	Quizzes     map[string]map[string]float64
}

// Load reads all three sources from a data directory. Any read or parse
// failure aborts the whole load; there is no partial-success mode for a run.
func Load(dir string, cfg course.Config) (Sources, error) {
	rosters, err := ReadRosterFile(filepath.Join(dir, RosterFile))
	if err != nil {
		return Sources{}, err
	}

	items := append(append([]string{}, cfg.Homework...), cfg.Exams...)
	assessments, err := ReadAssessmentsFile(filepath.Join(dir, AssessmentFile), items)
	if err != nil {
		return Sources{}, err
	}

	quizzes, err := DiscoverQuizzes(dir)
	if err != nil {
		return Sources{}, err
	}

	return Sources{
		Roster:      rosters,
		Assessments: assessments,
		Quizzes:     roster.MergeQuizzes(quizzes),
	}, nil
}
