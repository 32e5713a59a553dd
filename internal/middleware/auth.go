package middleware

import (
	"net/http"

	"github.com/steiza/a2docstore/internal/ctxkeys"
	"github.com/steiza/a2docstore/internal/service"
)

// Auth verifies the marker cookie and flags the request context as
// authorized. The check runs on every request; an invalid cookie is cleared.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(service.MarkerCookieName)
			if err != nil {
				// No cookie, continue without auth
				next.ServeHTTP(w, r)
				return
			}

			err = authService.VerifyMarker(cookie.Value)
			if err != nil {
				authService.ClearMarkerCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			ctx := ctxkeys.WithAuthorized(r.Context(), true)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests whose context was not flagged as authorized.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !ctxkeys.Authorized(r.Context()) {
			http.Error(w, "Not authorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	}
}
