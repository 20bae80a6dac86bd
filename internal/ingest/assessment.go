package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gradeflow/gradeflow/internal/roster"
)

// maxColumn is the naming convention pairing an item with its maximum in the
// homework/exam source, e.g. "Homework 3 - Max Points".
func maxColumn(item string) string { return item + " - Max Points" }

// ReadAssessments parses the homework/exam source. Items are the declared
// item names for the offering (homework plus exams); each must appear with
// its paired max-points column. This file is also where student names live,
// so First Name and Last Name are required here, not on the roster.
// Submission-time columns in the source are simply never looked at.
func ReadAssessments(r io.Reader, items []string) ([]roster.AssessmentRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	hdr, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("assessments: %w", err)
	}
	idx := header(hdr)
	if err := requireColumns(idx, "SID", "Email Address", "First Name", "Last Name"); err != nil {
		return nil, fmt.Errorf("assessments: %w", err)
	}
	for _, item := range items {
		if err := requireColumns(idx, item, maxColumn(item)); err != nil {
			return nil, fmt.Errorf("assessments: %w", err)
		}
	}

	var out []roster.AssessmentRecord
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("assessments: %w", err)
		}
		a := roster.AssessmentRecord{
			NetID:     strings.ToLower(field(idx, rec, "SID")),
			Email:     strings.ToLower(field(idx, rec, "Email Address")),
			LastName:  field(idx, rec, "Last Name"),
			FirstName: field(idx, rec, "First Name"),
			Earned:    make(map[string]float64, len(items)),
			Max:       make(map[string]float64, len(items)),
		}
		for _, item := range items {
			earned, err := points(idx, rec, item)
			if err != nil {
				return nil, fmt.Errorf("assessments %s: %w", a.NetID, err)
			}
			max, err := points(idx, rec, maxColumn(item))
			if err != nil {
				return nil, fmt.Errorf("assessments %s: %w", a.NetID, err)
			}
			if max <= 0 {
				// A zero or empty maximum would divide away the whole
				// category; that is a corrupt source, not a missing
				// submission.
				return nil, fmt.Errorf("assessments %s: column %q: max points must be positive, got %v",
					a.NetID, maxColumn(item), max)
			}
			a.Earned[item] = earned
			a.Max[item] = max
		}
		out = append(out, a)
	}
	return out, nil
}

// ReadAssessmentsFile is ReadAssessments against a file path.
func ReadAssessmentsFile(path string, items []string) ([]roster.AssessmentRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("assessments: %w", err)
	}
	defer f.Close()
	return ReadAssessments(f, items)
}
