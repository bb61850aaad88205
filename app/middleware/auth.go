package middleware

import (
	"net/http"
	"strings"

	"github.com/leetrboo/leetrboo-api/app/shared"
	"github.com/leetrboo/leetrboo-api/pkg/jwt"
)

// Session validates the bearer token and threads an explicit Session into the
// request context. Handlers and services read the session value, never
// process-wide state.
func Session(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			session := &shared.Session{
				UserID: claims.Subject,
				Role:   claims.Role,
			}
			next.ServeHTTP(w, r.WithContext(shared.WithSession(r.Context(), session)))
		})
	}
}
