// Package http exposes the gradebook over a REST-ish API: upload source
// CSVs, trigger a computation run, then query sections, grades and the
// class distribution.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/gradeflow/gradeflow/internal/auth"
	"github.com/gradeflow/gradeflow/internal/course"
	"github.com/gradeflow/gradeflow/internal/gradestore"
	"github.com/gradeflow/gradeflow/internal/ingest"
	"github.com/gradeflow/gradeflow/internal/pipeline"
	"github.com/gradeflow/gradeflow/internal/report"
	"github.com/gradeflow/gradeflow/internal/storage"
	"github.com/gradeflow/gradeflow/internal/summary"
)

// UploadSourceHandler accepts one source CSV via multipart form. kind is
// roster, assessment or quiz; quiz uploads keep their file name since the
// name carries the quiz identity (quiz_3_grades.csv -> "Quiz 3").
func UploadSourceHandler(bs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer f.Close()

		var key string
		switch kind := r.FormValue("kind"); kind {
		case "roster":
			key = ingest.RosterFile
		case "assessment":
			key = ingest.AssessmentFile
		case "quiz":
			key = filepath.Base(hdr.Filename)
			if ok, _ := filepath.Match("quiz_*_grades.csv", key); !ok {
				http.Error(w, "quiz file must be named quiz_<n>_grades.csv", http.StatusBadRequest)
				return
			}
		default:
			http.Error(w, "kind must be roster, assessment or quiz", http.StatusBadRequest)
			return
		}

		if _, err := bs.Put(key, f); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]string{"key": key})
	}
}

// ListSourcesHandler reports which source files have been uploaded so far.
func ListSourcesHandler(bs storage.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := map[string]any{}
		for _, key := range []string{ingest.RosterFile, ingest.AssessmentFile} {
			keys, err := bs.List(key)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			out[key] = len(keys) == 1
		}
		quizzes, err := bs.List("quiz_*_grades.csv")
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		out["quizzes"] = quizzes
		writeJSON(w, out)
	}
}

// CreateRunHandler loads the uploaded sources, runs the pipeline and
// persists the result as a new run.
func CreateRunHandler(cfg course.Config, bs *storage.FSStore, store gradestore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		srcs, err := ingest.Load(bs.Base(), cfg)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		p, err := pipeline.New(cfg)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		recs, err := p.Run(srcs.Roster, srcs.Assessments, srcs.Quizzes)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		run := gradestore.Run{
			ID:        uuid.NewString(),
			Course:    cfg.Name,
			CreatedAt: time.Now().Unix(),
		}
		if err := store.SaveRun(r.Context(), run, recs); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		run.Students = len(recs)
		writeJSON(w, run)
	}
}

// ListSectionsHandler returns the sections of the latest run.
func ListSectionsHandler(store gradestore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, ok := latestRun(w, r, store)
		if !ok {
			return
		}
		sections, err := store.ListSections(r.Context(), run.ID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]any{"run": run, "sections": sections})
	}
}

// SectionGradesHandler returns one section's grades from the latest run,
// as JSON or (with ?format=csv) in the section-report format.
func SectionGradesHandler(cfg course.Config, store gradestore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, ok := latestRun(w, r, store)
		if !ok {
			return
		}
		section := chi.URLParam(r, "section")
		recs, err := store.SectionGrades(r.Context(), run.ID, section)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if len(recs) == 0 {
			http.Error(w, "section not found", http.StatusNotFound)
			return
		}

		if r.URL.Query().Get("format") == "csv" {
			w.Header().Set("Content-Type", "text/csv")
			w.Header().Set("Content-Disposition",
				fmt.Sprintf("attachment; filename=%q", report.FileName(section)))
			g := pipeline.SectionGroup{Section: section, Students: recs}
			if err := report.WriteSection(w, cfg, g); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}
		writeJSON(w, recs)
	}
}

// StudentGradeHandler returns the caller's own grade, looked up by the token
// subject (the NetID).
func StudentGradeHandler(store gradestore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, ok := latestRun(w, r, store)
		if !ok {
			return
		}
		netID := auth.SubjectFromContext(r.Context())
		rec, err := store.StudentGrade(r.Context(), run.ID, netID)
		if errors.Is(err, gradestore.ErrNotFound) {
			http.Error(w, "no grade for "+netID, http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, rec)
	}
}

// SummaryHandler returns the score distribution of the latest run.
func SummaryHandler(cfg course.Config, store gradestore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, ok := latestRun(w, r, store)
		if !ok {
			return
		}
		recs, err := store.RunGrades(r.Context(), run.ID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, summary.Summarize(recs, cfg.Scale))
	}
}

func latestRun(w http.ResponseWriter, r *http.Request, store gradestore.Store) (gradestore.Run, bool) {
	run, err := store.LatestRun(r.Context())
	if errors.Is(err, gradestore.ErrNotFound) {
		http.Error(w, "no runs yet", http.StatusNotFound)
		return gradestore.Run{}, false
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return gradestore.Run{}, false
	}
	return run, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
