// internal/httpserver/middleware.go
//
// Bearer-token auth middleware. Verified identities are attached to
// the request context; handlers read them back with currentUser.

package httpserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"github.com/sonalijain20/blog-app/internal/token"
)

// ctxUserKey is the context key type for storing the acting identity.
type ctxUserKey struct{}

// requireAuth enforces a valid bearer JWT and injects the identity
// into the request context.
//
// Missing Authorization header → 403; bad or expired token → 401.
func (s *Server) requireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				_ = render.Render(w, r, errTokenMissing())
				return
			}
			tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			id, err := s.tokens.Verify(tokenStr)
			if err != nil {
				_ = render.Render(w, r, errUnauthorized())
				return
			}
			ctx := context.WithValue(r.Context(), ctxUserKey{}, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// currentUser returns the identity placed on the context by requireAuth.
func currentUser(r *http.Request) *token.Identity {
	id, _ := r.Context().Value(ctxUserKey{}).(*token.Identity)
	return id
}
