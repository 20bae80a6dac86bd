// Package pipeline runs the gradebook computation end to end: reconcile the
// three sources into per-student records, score each category, combine with
// the offering weights and classify into letter grades. Every stage consumes
// immutable inputs and produces a fresh slice; nothing is mutated in place.
package pipeline

import (
	"fmt"

	"github.com/gradeflow/gradeflow/internal/course"
	"github.com/gradeflow/gradeflow/internal/roster"
	"github.com/gradeflow/gradeflow/internal/scoring"
)

// FinalRecord is the fully graded student: the unified record plus all
// derived scores. It is the only record downstream consumers see.
type FinalRecord struct {
	NetID     string `json:"net_id"`
	Email     string `json:"email"`
	Section   string `json:"section"`
	LastName  string `json:"last_name"`
	FirstName string `json:"first_name"`

	ExamScores     []float64              `json:"exam_scores"`
	Homework       scoring.CategoryResult `json:"homework"`
	Quiz           scoring.CategoryResult `json:"quiz"`
	FinalScore     float64                `json:"final_score"`
	CeilingPercent int                    `json:"ceiling_percent"`
	Grade          string                 `json:"grade"`
}

type Pipeline struct {
	course course.Config
}

// New validates the offering config up front so a bad weight table or grade
// scale fails before any data is touched.
func New(cfg course.Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Pipeline{course: cfg}, nil
}

// Run computes final records for every student present in both the roster
// and the assessment source. The result is sorted by NetID; rerunning on
// identical inputs yields an identical slice.
func (p *Pipeline) Run(rosters []roster.RosterRecord, assessments []roster.AssessmentRecord, quizzes map[string]map[string]float64) ([]FinalRecord, error) {
	students := roster.Reconcile(rosters, assessments, quizzes)

	out := make([]FinalRecord, 0, len(students))
	for _, st := range students {
		rec, err := p.grade(st)
		if err != nil {
			return nil, fmt.Errorf("grade %s: %w", st.NetID, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (p *Pipeline) grade(st roster.Student) (FinalRecord, error) {
	examEarned := make([]float64, len(p.course.Exams))
	examMax := make([]float64, len(p.course.Exams))
	for i, name := range p.course.Exams {
		examEarned[i] = st.Earned[name]
		examMax[i] = st.Max[name]
	}

	hwEarned := make([]float64, len(p.course.Homework))
	hwMax := make([]float64, len(p.course.Homework))
	for i, name := range p.course.Homework {
		hwEarned[i] = st.Earned[name]
		hwMax[i] = st.Max[name]
	}
	hw, err := scoring.ScoreCategory(hwEarned, hwMax)
	if err != nil {
		return FinalRecord{}, fmt.Errorf("homework: %w", err)
	}

	quizNames := p.course.Quizzes()
	quizEarned := make([]float64, len(quizNames))
	quizMax := make([]float64, len(quizNames))
	for i, name := range quizNames {
		quizEarned[i] = st.Quiz[name]
		quizMax[i] = p.course.QuizMax[name]
	}
	quiz, err := scoring.ScoreCategory(quizEarned, quizMax)
	if err != nil {
		return FinalRecord{}, fmt.Errorf("quiz: %w", err)
	}

	exams := scoring.ExamScores(examEarned, examMax)
	final, err := scoring.FinalScore(p.course.Weights, exams, hw.Score, quiz.Score)
	if err != nil {
		return FinalRecord{}, err
	}
	pct := scoring.CeilingPercent(final)

	return FinalRecord{
		NetID:          st.NetID,
		Email:          st.Email,
		Section:        st.Section,
		LastName:       st.LastName,
		FirstName:      st.FirstName,
		ExamScores:     exams,
		Homework:       hw,
		Quiz:           quiz,
		FinalScore:     final,
		CeilingPercent: pct,
		Grade:          p.course.Scale.Letter(pct),
	}, nil
}
