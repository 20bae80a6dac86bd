package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gradeflow/gradeflow/internal/roster"
)

// quizGlob matches one grades file per quiz, e.g. quiz_3_grades.csv.
const quizGlob = "quiz_*_grades.csv"

// QuizName derives the display name from a quiz file name:
// quiz_3_grades.csv -> "Quiz 3".
func QuizName(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	parts := strings.SplitN(stem, "_", 3)
	if len(parts) < 2 {
		return titleWord(stem)
	}
	return titleWord(parts[0]) + " " + titleWord(parts[1])
}

func titleWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ReadQuiz parses a single quiz file: one row per student, columns Email and
// Grade. The quiz's maximum is not in the file; it comes from course config.
func ReadQuiz(r io.Reader, name string) (roster.QuizSource, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	hdr, err := cr.Read()
	if err != nil {
		return roster.QuizSource{}, fmt.Errorf("%s: %w", name, err)
	}
	idx := header(hdr)
	if err := requireColumns(idx, "Email", "Grade"); err != nil {
		return roster.QuizSource{}, fmt.Errorf("%s: %w", name, err)
	}

	src := roster.QuizSource{Quiz: name, Grades: map[string]float64{}}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return roster.QuizSource{}, fmt.Errorf("%s: %w", name, err)
		}
		grade, err := points(idx, rec, "Grade")
		if err != nil {
			return roster.QuizSource{}, fmt.Errorf("%s: %w", name, err)
		}
		src.Grades[strings.ToLower(field(idx, rec, "Email"))] = grade
	}
	return src, nil
}

// DiscoverQuizzes finds and reads every quiz file in a directory. Order of
// discovery does not matter; the merge downstream is keyed.
func DiscoverQuizzes(dir string) ([]roster.QuizSource, error) {
	paths, err := filepath.Glob(filepath.Join(dir, quizGlob))
	if err != nil {
		return nil, err
	}
	var srcs []roster.QuizSource
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return nil, fmt.Errorf("quiz: %w", err)
		}
		src, err := ReadQuiz(f, QuizName(p))
		f.Close()
		if err != nil {
			return nil, err
		}
		srcs = append(srcs, src)
	}
	return srcs, nil
}
