// internal/httpserver/server.go
//
// HTTP server wiring for the blog-app API.
// Responsibilities:
//   - Router + middleware (request IDs, panic recovery, timeouts, JSON, CORS).
//   - Public endpoints: "/", "/health", GET /api/v1/articles, /api/v1/register, /api/v1/login.
//   - Gated endpoints (require auth): /api/v1/get-profile, article mutations.
//   - JSON 404 for unmatched routes.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled.
//   - Require-auth middleware enforces presence and validity of a bearer JWT.

package httpserver

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/sonalijain20/blog-app/internal/article"
	"github.com/sonalijain20/blog-app/internal/token"
	"github.com/sonalijain20/blog-app/internal/user"
)

// Server bundles the router, stores, and token issuer.
type Server struct {
	r        *chi.Mux
	users    *user.Store
	articles *article.Store
	tokens   token.Issuer
}

// New constructs a Server, installs middleware, and registers routes.
func New(db *sql.DB, tokens token.Issuer) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		users:    user.NewStore(db),
		articles: article.NewStore(db),
		tokens:   tokens,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(render.SetContentType(render.ContentTypeJSON))
	s.r.Use(corsFromEnv) // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"blog-app","endpoints":["/health","/api/v1/register","/api/v1/login","/api/v1/articles"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// --- API v1 ---
	s.r.Route("/api/v1", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.Get("/articles", s.handleListArticles)

		r.With(s.requireAuth()).Get("/get-profile", s.handleProfile)
		r.With(s.requireAuth()).Post("/article", s.handleCreateArticle)
		r.With(s.requireAuth()).Put("/article/{articleId}", s.handleUpdateArticle)
		r.With(s.requireAuth()).Delete("/article/{articleId}", s.handleDeleteArticle)
	})

	// JSON 404 for unmatched routes
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = render.Render(w, r, errRouteNotFound())
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests and docgen).
func (s *Server) Router() chi.Router { return s.r }

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
