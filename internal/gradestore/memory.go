package gradestore

import (
	"context"
	"sort"
	"sync"

	"github.com/gradeflow/gradeflow/internal/pipeline"
)

type memoryStore struct {
	mu     sync.RWMutex
	runs   []Run
	grades map[string][]pipeline.FinalRecord // run id -> records
}

// NewInMemoryStore is the store used in tests and for ephemeral runs.
func NewInMemoryStore() Store {
	return &memoryStore{grades: map[string][]pipeline.FinalRecord{}}
}

func (m *memoryStore) SaveRun(_ context.Context, run Run, recs []pipeline.FinalRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	run.Students = len(recs)
	m.runs = append(m.runs, run)
	m.grades[run.ID] = append([]pipeline.FinalRecord(nil), recs...)
	return nil
}

func (m *memoryStore) LatestRun(_ context.Context) (Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.runs) == 0 {
		return Run{}, ErrNotFound
	}
	return m.runs[len(m.runs)-1], nil
}

func (m *memoryStore) ListSections(_ context.Context, runID string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := map[string]bool{}
	var out []string
	for _, r := range m.grades[runID] {
		if !seen[r.Section] {
			seen[r.Section] = true
			out = append(out, r.Section)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *memoryStore) SectionGrades(_ context.Context, runID, section string) ([]pipeline.FinalRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []pipeline.FinalRecord
	for _, r := range m.grades[runID] {
		if r.Section == section {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out, nil
}

func (m *memoryStore) RunGrades(_ context.Context, runID string) ([]pipeline.FinalRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := append([]pipeline.FinalRecord(nil), m.grades[runID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].NetID < out[j].NetID })
	return out, nil
}

func (m *memoryStore) StudentGrade(_ context.Context, runID, netID string) (pipeline.FinalRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.grades[runID] {
		if r.NetID == netID {
			return r, nil
		}
	}
	return pipeline.FinalRecord{}, ErrNotFound
}
