// Package ingest reads the three tabular sources the gradebook joins: the
// roster, the homework/exam grades and one file per quiz. Anything
// structurally wrong (missing file, missing column, non-numeric points) is a
// fatal error surfaced before aggregation starts; an empty earned cell for a
// matched student is not an error and reads as zero. Max-points cells are
// different: a zero or empty maximum is a corrupt source and fails the load.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gradeflow/gradeflow/internal/roster"
)

// header returns a lowercased column-name index for a CSV header row.
func header(rec []string) map[string]int {
	idx := make(map[string]int, len(rec))
	for i, h := range rec {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func requireColumns(idx map[string]int, names ...string) error {
	for _, n := range names {
		if _, ok := idx[strings.ToLower(n)]; !ok {
			return fmt.Errorf("missing column %q", n)
		}
	}
	return nil
}

func field(idx map[string]int, rec []string, name string) string {
	i, ok := idx[strings.ToLower(name)]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// points parses a numeric cell. Empty means no submission and reads as zero;
// anything else non-numeric is a malformed source.
func points(idx map[string]int, rec []string, name string) (float64, error) {
	s := field(idx, rec, name)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("column %q: bad number %q", name, s)
	}
	return v, nil
}

// ReadRoster parses the class roster: join keys and section only. Student
// names come from the homework/exam source, so name columns here are ignored
// if present. NetID and email are lowercased here so every later comparison
// is already case-folded.
func ReadRoster(r io.Reader) ([]roster.RosterRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	hdr, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("roster: %w", err)
	}
	idx := header(hdr)
	if err := requireColumns(idx, "NetID", "Email Address", "Section"); err != nil {
		return nil, fmt.Errorf("roster: %w", err)
	}

	var out []roster.RosterRecord
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("roster: %w", err)
		}
		out = append(out, roster.RosterRecord{
			NetID:   strings.ToLower(field(idx, rec, "NetID")),
			Email:   strings.ToLower(field(idx, rec, "Email Address")),
			Section: field(idx, rec, "Section"),
		})
	}
	return out, nil
}

// ReadRosterFile is ReadRoster against a file path.
func ReadRosterFile(path string) ([]roster.RosterRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("roster: %w", err)
	}
	defer f.Close()
	return ReadRoster(f)
}
