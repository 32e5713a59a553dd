package middleware

import (
	"net/http"

	"github.com/steiza/a2docstore/internal/config"
	"github.com/steiza/a2docstore/internal/ctxkeys"
)

// Config adds the app config to every request context so handlers and
// templates can reach the region label and analytics id.
func Config(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := ctxkeys.WithConfig(r.Context(), cfg)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
