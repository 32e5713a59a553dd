package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/steiza/a2docstore/internal/ctxkeys"
)

// RequestID assigns each request a unique id for log correlation, honoring
// an X-Request-ID header from an upstream proxy when present.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		w.Header().Set("X-Request-ID", requestID)

		ctx := ctxkeys.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
