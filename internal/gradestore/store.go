// Package gradestore persists computed gradebook runs so the service can
// answer section and per-student queries without recomputing. A run is an
// immutable snapshot: the run row plus one final_grades row per student.
package gradestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/gradeflow/gradeflow/internal/pipeline"
)

var ErrNotFound = errors.New("gradestore: not found")

// Run identifies one persisted computation.
type Run struct {
	ID        string `json:"id"`
	Course    string `json:"course"`
	Students  int    `json:"students"`
	CreatedAt int64  `json:"created_at"`
}

type Store interface {
	SaveRun(ctx context.Context, run Run, recs []pipeline.FinalRecord) error
	LatestRun(ctx context.Context) (Run, error)
	ListSections(ctx context.Context, runID string) ([]string, error)
	SectionGrades(ctx context.Context, runID, section string) ([]pipeline.FinalRecord, error)
	RunGrades(ctx context.Context, runID string) ([]pipeline.FinalRecord, error)
	StudentGrade(ctx context.Context, runID, netID string) (pipeline.FinalRecord, error)
}

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) SaveRun(ctx context.Context, run Run, recs []pipeline.FinalRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if run.CreatedAt == 0 {
		run.CreatedAt = time.Now().Unix()
	}
	run.Students = len(recs)
	_, err = tx.ExecContext(ctx, `INSERT INTO runs (id,course,students,created_at) VALUES ($1,$2,$3,$4)`,
		run.ID, run.Course, run.Students, run.CreatedAt)
	if err != nil {
		return err
	}

	for _, r := range recs {
		ej, merr := json.Marshal(r.ExamScores)
		if merr != nil {
			err = merr
			return err
		}
		_, err = tx.ExecContext(ctx, `INSERT INTO final_grades
			(run_id,net_id,email,section,last_name,first_name,exam_scores_json,homework_score,quiz_score,final_score,ceiling_percent,grade)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
			run.ID, r.NetID, r.Email, r.Section, r.LastName, r.FirstName,
			string(ej), r.Homework.Score, r.Quiz.Score, r.FinalScore, r.CeilingPercent, r.Grade)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLStore) LatestRun(ctx context.Context) (Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,course,students,created_at FROM runs ORDER BY created_at DESC, id DESC LIMIT 1`)
	var r Run
	if err := row.Scan(&r.ID, &r.Course, &r.Students, &r.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, ErrNotFound
		}
		return Run{}, err
	}
	return r, nil
}

func (s *SQLStore) ListSections(ctx context.Context, runID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT section FROM final_grades WHERE run_id=$1 ORDER BY section`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var sec string
		if err := rows.Scan(&sec); err != nil {
			return nil, err
		}
		out = append(out, sec)
	}
	return out, rows.Err()
}

func (s *SQLStore) SectionGrades(ctx context.Context, runID, section string) ([]pipeline.FinalRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT net_id,email,section,last_name,first_name,
		exam_scores_json,homework_score,quiz_score,final_score,ceiling_percent,grade
		FROM final_grades WHERE run_id=$1 AND section=$2 ORDER BY last_name, first_name`,
		runID, section)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []pipeline.FinalRecord
	for rows.Next() {
		r, err := scanGrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLStore) RunGrades(ctx context.Context, runID string) ([]pipeline.FinalRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT net_id,email,section,last_name,first_name,
		exam_scores_json,homework_score,quiz_score,final_score,ceiling_percent,grade
		FROM final_grades WHERE run_id=$1 ORDER BY net_id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []pipeline.FinalRecord
	for rows.Next() {
		r, err := scanGrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLStore) StudentGrade(ctx context.Context, runID, netID string) (pipeline.FinalRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT net_id,email,section,last_name,first_name,
		exam_scores_json,homework_score,quiz_score,final_score,ceiling_percent,grade
		FROM final_grades WHERE run_id=$1 AND net_id=$2`, runID, netID)
	if err != nil {
		return pipeline.FinalRecord{}, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return pipeline.FinalRecord{}, err
		}
		return pipeline.FinalRecord{}, ErrNotFound
	}
	return scanGrade(rows)
}

func scanGrade(rows *sql.Rows) (pipeline.FinalRecord, error) {
	var r pipeline.FinalRecord
	var ej string
	if err := rows.Scan(&r.NetID, &r.Email, &r.Section, &r.LastName, &r.FirstName,
		&ej, &r.Homework.Score, &r.Quiz.Score, &r.FinalScore, &r.CeilingPercent, &r.Grade); err != nil {
		return pipeline.FinalRecord{}, err
	}
	if err := json.Unmarshal([]byte(ej), &r.ExamScores); err != nil {
		return pipeline.FinalRecord{}, err
	}
	return r, nil
}
