package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/crucial707/linkstash/internal/models"
	"github.com/crucial707/linkstash/internal/repo"
	"github.com/crucial707/linkstash/internal/token"
)

type key string

const userKey key = "user"

// JWT guards protected routes. It extracts the bearer token, verifies it, then
// resolves the subject to a fresh user record from the store — token claims are
// trusted for identity only, not for profile data. Any failure is a 401 before
// the handler runs.
func JWT(verifier *token.Issuer, users *repo.UserRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenStr == authHeader || tokenStr == "" {
				http.Error(w, "invalid authorization header", http.StatusUnauthorized)
				return
			}

			userID, _, err := verifier.Verify(tokenStr)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUser returns the authenticated user attached by the JWT middleware.
func GetUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok
}

// GetUserID returns the id of the authenticated user.
func GetUserID(ctx context.Context) (int, bool) {
	user, ok := GetUser(ctx)
	if !ok {
		return 0, false
	}
	return user.ID, true
}
