package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/gradeflow/gradeflow/internal/auth"
	"github.com/gradeflow/gradeflow/internal/course"
	"github.com/gradeflow/gradeflow/internal/gradestore"
	"github.com/gradeflow/gradeflow/internal/pipeline"
	"github.com/gradeflow/gradeflow/internal/scoring"
	"github.com/gradeflow/gradeflow/internal/storage"
)

func testCourseConfig() course.Config {
	return course.Config{
		Name:     "test",
		Homework: []string{"Homework 1"},
		Exams:    []string{"Exam 1"},
		QuizMax:  map[string]float64{"Quiz 1": 8},
		Weights:  scoring.WeightSet{Exams: []float64{0.25}, Homework: 0.5, Quiz: 0.25},
		Scale:    scoring.DefaultScale(),
	}
}

func seededStore(t *testing.T) gradestore.Store {
	t.Helper()
	st := gradestore.NewInMemoryStore()
	recs := []pipeline.FinalRecord{
		{NetID: "ada1", Section: "1", LastName: "Lovelace", FirstName: "Ada",
			ExamScores: []float64{0.75}, FinalScore: 0.9, CeilingPercent: 90, Grade: "A"},
		{NetID: "bob2", Section: "2", LastName: "Babbage", FirstName: "Bob",
			ExamScores: []float64{0.5}, FinalScore: 0.7, CeilingPercent: 70, Grade: "C"},
	}
	if err := st.SaveRun(context.Background(), gradestore.Run{ID: "run-1", Course: "test"}, recs); err != nil {
		t.Fatal(err)
	}
	return st
}

func TestCreateRunDistinctIDs(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("roster.csv", "NetID,Email Address,Section\nada1,ada@univ.edu,1\n")
	write("hw_exam_grades.csv", "SID,Email Address,First Name,Last Name,Homework 1,Homework 1 - Max Points,Exam 1,Exam 1 - Max Points\nada1,ada@univ.edu,Ada,Lovelace,8,16,75,100\n")

	bs, err := storage.NewFSStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	st := gradestore.NewInMemoryStore()
	h := CreateRunHandler(testCourseConfig(), bs, st)

	post := func() gradestore.Run {
		rr := httptest.NewRecorder()
		h(rr, httptest.NewRequest("POST", "/runs", nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
		}
		var run gradestore.Run
		if err := json.Unmarshal(rr.Body.Bytes(), &run); err != nil {
			t.Fatalf("bad json: %v", err)
		}
		return run
	}

	// Back-to-back runs must never share an ID; the run ID is the primary key.
	first, second := post(), post()
	if first.ID == "" || first.ID == second.ID {
		t.Errorf("run IDs must be unique: %q, %q", first.ID, second.ID)
	}
	if first.Students != 1 {
		t.Errorf("run students = %d, want 1", first.Students)
	}
}

func TestListSections(t *testing.T) {
	rr := httptest.NewRecorder()
	ListSectionsHandler(seededStore(t))(rr, httptest.NewRequest("GET", "/sections", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var resp struct {
		Run      gradestore.Run `json:"run"`
		Sections []string       `json:"sections"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if resp.Run.ID != "run-1" || len(resp.Sections) != 2 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestListSectionsNoRuns(t *testing.T) {
	rr := httptest.NewRecorder()
	ListSectionsHandler(gradestore.NewInMemoryStore())(rr, httptest.NewRequest("GET", "/sections", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rr.Code)
	}
}

func TestSectionGrades(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/sections/{section}/grades", SectionGradesHandler(testCourseConfig(), seededStore(t)))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/sections/1/grades", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var recs []pipeline.FinalRecord
	if err := json.Unmarshal(rr.Body.Bytes(), &recs); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(recs) != 1 || recs[0].NetID != "ada1" {
		t.Errorf("recs = %+v", recs)
	}

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/sections/9/grades", nil))
	if rr.Code != http.StatusNotFound {
		t.Errorf("unknown section: status %d, want 404", rr.Code)
	}
}

func TestSectionGradesCSV(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/sections/{section}/grades", SectionGradesHandler(testCourseConfig(), seededStore(t)))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/sections/1/grades?format=csv", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("content type %q", ct)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "NetID") || !strings.Contains(body, "ada1") {
		t.Errorf("unexpected csv:\n%s", body)
	}
}

func TestStudentGrade(t *testing.T) {
	h := StudentGradeHandler(seededStore(t))

	req := httptest.NewRequest("GET", "/grades/me", nil)
	req = req.WithContext(auth.WithSubject(req.Context(), "bob2"))
	rr := httptest.NewRecorder()
	h(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var rec pipeline.FinalRecord
	if err := json.Unmarshal(rr.Body.Bytes(), &rec); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if rec.NetID != "bob2" || rec.Grade != "C" {
		t.Errorf("rec = %+v", rec)
	}

	req = httptest.NewRequest("GET", "/grades/me", nil)
	req = req.WithContext(auth.WithSubject(req.Context(), "ghost"))
	rr = httptest.NewRecorder()
	h(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Errorf("unknown student: status %d, want 404", rr.Code)
	}
}

func TestSummary(t *testing.T) {
	rr := httptest.NewRecorder()
	SummaryHandler(testCourseConfig(), seededStore(t))(rr, httptest.NewRequest("GET", "/summary", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var resp struct {
		Count       int `json:"count"`
		GradeCounts []struct {
			Letter string `json:"letter"`
			Count  int    `json:"count"`
		} `json:"grade_counts"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if resp.Count != 2 || len(resp.GradeCounts) != 5 {
		t.Errorf("resp = %+v", resp)
	}
	if resp.GradeCounts[0].Letter != "A" || resp.GradeCounts[0].Count != 1 {
		t.Errorf("grade counts = %+v", resp.GradeCounts)
	}
}
