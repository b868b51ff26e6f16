package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crucial707/linkstash/internal/config"
	"github.com/crucial707/linkstash/internal/handlers"
	"github.com/crucial707/linkstash/internal/middleware"
	"github.com/crucial707/linkstash/internal/repo"
	"github.com/crucial707/linkstash/internal/token"
)

// newRouter wires the whole dependency graph: repos over the shared *sql.DB,
// the token issuer, then handlers onto chi routes. This is the composition
// root; nothing below the handlers touches HTTP and nothing above the repos
// touches SQL.
func newRouter(database *sql.DB, cfg config.Config) chi.Router {
	userRepo := repo.NewUserRepo(database)
	bookmarkRepo := repo.NewBookmarkRepo(database)

	issuer := token.New([]byte(cfg.JWTSecret), time.Duration(cfg.JWTExpireMinutes)*time.Minute)

	authHandler := &handlers.AuthHandler{Users: userRepo, Tokens: issuer}
	userHandler := &handlers.UserHandler{Users: userRepo}
	bookmarkHandler := &handlers.BookmarkHandler{Bookmarks: bookmarkRepo}

	requireAuth := middleware.JWT(issuer, userRepo)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/auth", func(r chi.Router) {
		r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
		r.Post("/signup", authHandler.Signup)
		r.Post("/signin", authHandler.Signin)
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(requireAuth)
		r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
		r.Get("/me", userHandler.GetMe)
		r.Put("/me", userHandler.UpdateMe)
	})

	r.Route("/bookmarks", func(r chi.Router) {
		// Open reads (kept from the original surface).
		r.Get("/", bookmarkHandler.List)
		r.Get("/{id}", bookmarkHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
			r.Get("/me", bookmarkHandler.ListMine)
			r.Post("/", bookmarkHandler.Create)
			r.Put("/{id}", bookmarkHandler.Update)
			r.Delete("/{id}", bookmarkHandler.Delete)
		})
	})

	return r
}
