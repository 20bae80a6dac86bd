// Package report writes per-section grade reports. It is the sink side of
// the pipeline: it receives already-ordered section groups and renders them
// as CSV, one file per section.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gradeflow/gradeflow/internal/course"
	"github.com/gradeflow/gradeflow/internal/pipeline"
)

// FileName is the destination name for one section's report.
func FileName(section string) string {
	return fmt.Sprintf("Section %s Grades.csv", section)
}

// WriteSection renders one section group as CSV. Students arrive in display
// order from the grouper and are written as-is.
func WriteSection(w io.Writer, cfg course.Config, g pipeline.SectionGroup) error {
	cw := csv.NewWriter(w)

	hdr := []string{"NetID", "Email Address", "Last Name", "First Name", "Section"}
	for _, e := range cfg.Exams {
		hdr = append(hdr, e+" Score")
	}
	hdr = append(hdr, "Homework Score", "Quiz Score", "Final Score", "Ceiling Percentage", "Final Grade")
	if err := cw.Write(hdr); err != nil {
		return err
	}

	for _, r := range g.Students {
		row := []string{r.NetID, r.Email, r.LastName, r.FirstName, r.Section}
		for _, s := range r.ExamScores {
			row = append(row, formatScore(s))
		}
		row = append(row,
			formatScore(r.Homework.Score),
			formatScore(r.Quiz.Score),
			formatScore(r.FinalScore),
			strconv.Itoa(r.CeilingPercent),
			r.Grade,
		)
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteAll writes every section's report into a directory, named by section.
func WriteAll(dir string, cfg course.Config, groups []pipeline.SectionGroup) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, g := range groups {
		path := filepath.Join(dir, FileName(g.Section))
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := WriteSection(f, cfg, g); err != nil {
			f.Close()
			return fmt.Errorf("section %s: %w", g.Section, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
