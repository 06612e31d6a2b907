// Package middleware provides HTTP middleware for identity and role checks.
package middleware

import (
	"context"
	"net/http"

	"github.com/roomtrack/roomtrack/internal/domain/user"
	"github.com/roomtrack/roomtrack/internal/port/database"
)

type actorCtxKey struct{}

// publicPaths are exempt from identity resolution.
var publicPaths = map[string]bool{
	"/health":               true,
	"/api/v1/auth/register": true,
	"/api/v1/auth/login":    true,
}

// Identity resolves the acting user from the X-User-ID header and puts it
// on the request context. Requests without a resolvable user on a
// protected path get a 401.
func Identity(store database.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			id := r.Header.Get("X-User-ID")
			if id == "" {
				http.Error(w, `{"error":"authorization required"}`, http.StatusUnauthorized)
				return
			}

			u, err := store.GetUser(r.Context(), id)
			if err != nil {
				http.Error(w, `{"error":"unknown user"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), actorCtxKey{}, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the acting user, or nil when unauthenticated.
func UserFromContext(ctx context.Context) *user.User {
	u, _ := ctx.Value(actorCtxKey{}).(*user.User)
	return u
}
