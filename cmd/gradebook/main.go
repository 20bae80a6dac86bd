// Command gradebook computes final course grades in one batch pass: it reads
// the roster, homework/exam and quiz CSVs from a data directory, writes one
// grades CSV per section and prints the class distribution.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/gradeflow/gradeflow/internal/course"
	"github.com/gradeflow/gradeflow/internal/gradestore"
	"github.com/gradeflow/gradeflow/internal/ingest"
	"github.com/gradeflow/gradeflow/internal/pipeline"
	"github.com/gradeflow/gradeflow/internal/report"
	"github.com/gradeflow/gradeflow/internal/summary"

	"github.com/google/uuid"
)

func main() {
	var (
		dataDir    = flag.String("data", "./data", "directory with roster.csv, hw_exam_grades.csv and quiz_*_grades.csv")
		outDir     = flag.String("out", "", "directory for section reports (default: the data directory)")
		coursePath = flag.String("course", "", "course offering JSON (default: built-in offering)")
		persist    = flag.Bool("persist", false, "save the run to the database")
		dbDriver   = flag.String("db-driver", "sqlite", "database driver (sqlite or postgres), with -persist")
		dbDSN      = flag.String("db-dsn", "", "database DSN, with -persist")
	)
	flag.Parse()
	if *outDir == "" {
		*outDir = *dataDir
	}

	offering, err := course.Load(*coursePath)
	if err != nil {
		log.Fatalf("course config: %v", err)
	}

	srcs, err := ingest.Load(*dataDir, offering)
	if err != nil {
		log.Fatalf("load sources: %v", err)
	}

	p, err := pipeline.New(offering)
	if err != nil {
		log.Fatalf("pipeline: %v", err)
	}
	recs, err := p.Run(srcs.Roster, srcs.Assessments, srcs.Quizzes)
	if err != nil {
		log.Fatalf("compute grades: %v", err)
	}

	groups := pipeline.GroupBySection(recs)
	if err := report.WriteAll(*outDir, offering, groups); err != nil {
		log.Fatalf("write reports: %v", err)
	}

	dist := summary.Summarize(recs, offering.Scale)
	if err := dist.WriteText(os.Stdout); err != nil {
		log.Fatalf("summary: %v", err)
	}

	if *persist {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		dbh, err := gradestore.Open(ctx, gradestore.Driver(*dbDriver), *dbDSN)
		if err != nil {
			log.Fatalf("db open failed: %v", err)
		}
		store := gradestore.NewSQLStore(dbh, *dbDriver)
		run := gradestore.Run{
			ID:        uuid.NewString(),
			Course:    offering.Name,
			CreatedAt: time.Now().Unix(),
		}
		if err := store.SaveRun(ctx, run, recs); err != nil {
			log.Fatalf("save run: %v", err)
		}
		log.Printf("run %s saved (%d students)", run.ID, len(recs))
	}
}
