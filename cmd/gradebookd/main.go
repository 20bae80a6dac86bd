package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/gradeflow/gradeflow/internal/api/http"
	"github.com/gradeflow/gradeflow/internal/auth"
	"github.com/gradeflow/gradeflow/internal/config"
	"github.com/gradeflow/gradeflow/internal/course"
	"github.com/gradeflow/gradeflow/internal/gradestore"
	"github.com/gradeflow/gradeflow/internal/rbac"
	"github.com/gradeflow/gradeflow/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	offering, err := course.Load(cfg.CoursePath)
	if err != nil {
		log.Fatalf("course config: %v", err)
	}

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := gradestore.Open(ctx, gradestore.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := gradestore.NewSQLStore(dbh, cfg.DBDriver)

	// --- Source uploads land in the data dir the loader reads from ---
	bs, err := storage.NewFSStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	// --- Auth ---
	authSvc := auth.NewAuthService(cfg.AuthSecret)
	creds := map[string]auth.Credential{
		cfg.TeacherUser: {PassHash: cfg.TeacherPassHash, Role: "teacher"},
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, creds))

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.With(rbac.Require("sources:upload")).
			Post("/sources", api.UploadSourceHandler(bs))
		pr.With(rbac.Require("sources:upload")).
			Get("/sources", api.ListSourcesHandler(bs))
		pr.With(rbac.Require("runs:create")).
			Post("/runs", api.CreateRunHandler(offering, bs, store))

		pr.With(rbac.Require("grades:view-all")).
			Get("/sections", api.ListSectionsHandler(store))
		pr.With(rbac.Require("grades:view-all")).
			Get("/sections/{section}/grades", api.SectionGradesHandler(offering, store))

		pr.With(rbac.RequireAny("grades:view-own", "grades:view-all")).
			Get("/grades/me", api.StudentGradeHandler(store))

		pr.With(rbac.Require("summary:view")).
			Get("/summary", api.SummaryHandler(offering, store))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (course=%s, db=%s)", cfg.HTTPAddr, offering.Name, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
