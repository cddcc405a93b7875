package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	api "github.com/learnhub/learnhub-lms/internal/api/http"
	"github.com/learnhub/learnhub-lms/internal/auth"
	"github.com/learnhub/learnhub-lms/internal/catalog"
	"github.com/learnhub/learnhub-lms/internal/config"
	"github.com/learnhub/learnhub-lms/internal/db"
	"github.com/learnhub/learnhub-lms/internal/enroll"
	"github.com/learnhub/learnhub-lms/internal/exam"
	"github.com/learnhub/learnhub-lms/internal/rbac"
	syncx "github.com/learnhub/learnhub-lms/internal/sync"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	events := syncx.NewEventRepo(dbh)
	catalogStore := catalog.NewSQLStore(dbh)
	ledger := enroll.NewLedger(enroll.NewSQLStore(dbh), enroll.WithEvents(events))
	examSvc := exam.NewService(catalogStore, ledger, exam.NewSQLStore(dbh), exam.WithEvents(events))

	authSvc := auth.NewAuthService(cfg.AuthSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/register", auth.RegisterHandler(authSvc, dbh))
	r.Post("/auth/login", auth.LoginHandler(authSvc, dbh))

	// Public catalog: identity optional, used only to derive is_enrolled.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.OptionalJWT(authSvc))
		pr.Get("/courses", api.ListCoursesHandler(catalogStore, ledger, cfg.CourseListLimit))
		pr.Get("/courses/{courseID}", api.GetCourseHandler(catalogStore, ledger))
		// Anonymous enroll degrades to a no-op instead of an error.
		pr.Post("/courses/{courseID}/enroll", api.EnrollHandler(ledger))
	})

	// Protected API (JWT → subject/role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		// Instructor authoring
		pr.With(rbac.Require("course:create")).
			Post("/courses", api.CreateCourseHandler(catalogStore))
		pr.With(rbac.Require("lesson:create")).
			Post("/courses/{courseID}/lessons", api.CreateLessonHandler(catalogStore))
		pr.With(rbac.Require("exam:author")).
			Post("/courses/{courseID}/questions", api.CreateQuestionHandler(catalogStore))

		// Learner flow
		pr.With(rbac.Require("exam:view")).
			Get("/courses/{courseID}/exam", api.GetExamHandler(catalogStore))
		pr.With(rbac.Require("course:rate")).
			Post("/courses/{courseID}/rating", api.RateCourseHandler(ledger))
		pr.With(rbac.Require("exam:submit")).
			Post("/courses/{courseID}/submissions", api.SubmitExamHandler(examSvc))
		pr.With(rbac.Require("exam:result")).
			Get("/courses/{courseID}/submissions/{submissionID}/result", api.ExamResultHandler(examSvc))
	})

	log.Printf("learnhub listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatalf("server: %v", err)
	}
}
