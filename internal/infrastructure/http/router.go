package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/niloofarsh/taskhub/internal/infrastructure/http/handlers"
	"github.com/niloofarsh/taskhub/internal/infrastructure/http/middleware"
	"github.com/niloofarsh/taskhub/internal/infrastructure/http/render"
)

// APIPrefix is the common prefix for every resource route.
const APIPrefix = "/api/v1"

type RouterConfig struct {
	AuthHandler     *handlers.AuthHandler
	ProjectsHandler *handlers.ProjectsHandler
	TasksHandler    *handlers.TasksHandler
	UsersHandler    *handlers.UsersHandler
	HealthHandler   *handlers.HealthHandler
	RequireAuth     func(http.Handler) http.Handler // authentication gate
	ProjectAccess   func(http.Handler) http.Handler // owner-or-admin gate
	Log             zerolog.Logger
	Secure          func(http.Handler) http.Handler
	CORS            func(http.Handler) http.Handler
	IPRateLimit     func(http.Handler) http.Handler
	UserRateLimit   func(http.Handler) http.Handler
	Metrics         bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(middleware.Recoverer(cfg.Log))
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}

	// Unmatched routes and methods still answer with the envelope.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Error(w, r, http.StatusNotFound, "resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		render.Error(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route(APIPrefix, func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", cfg.AuthHandler.Register)
			r.Post("/login", cfg.AuthHandler.Login)
			r.Group(func(r chi.Router) {
				r.Use(cfg.RequireAuth)
				r.Get("/profile", cfg.AuthHandler.Profile)
			})
		})

		r.Route("/projects", func(r chi.Router) {
			r.Use(cfg.RequireAuth)
			if cfg.UserRateLimit != nil {
				r.Use(cfg.UserRateLimit)
			}
			r.Get("/", cfg.ProjectsHandler.List)
			r.Post("/", cfg.ProjectsHandler.Create)
			r.Route("/{projectID}", func(r chi.Router) {
				r.Use(cfg.ProjectAccess)
				r.Get("/", cfg.ProjectsHandler.Get)
				r.Put("/", cfg.ProjectsHandler.Update)
				r.Delete("/", cfg.ProjectsHandler.Delete)
				r.Get("/tasks", cfg.TasksHandler.ListByProject)
				r.Post("/tasks", cfg.TasksHandler.Create)
			})
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Use(cfg.RequireAuth)
			if cfg.UserRateLimit != nil {
				r.Use(cfg.UserRateLimit)
			}
			r.Get("/{id}", cfg.TasksHandler.Get)
			r.Put("/{id}", cfg.TasksHandler.Update)
			r.Delete("/{id}", cfg.TasksHandler.Delete)
		})

		if cfg.UsersHandler != nil {
			r.Route("/users", func(r chi.Router) {
				r.Use(cfg.RequireAuth)
				r.Delete("/{id}", cfg.UsersHandler.Deactivate)
			})
		}
	})

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
