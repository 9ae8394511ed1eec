package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"mediquip/internal/httputil"
)

const requestIDHeader = "X-Request-ID"

// RequestID assigns every request a correlation id, honoring one sent
// by the caller.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}

			w.Header().Set(requestIDHeader, id)
			ctx := httputil.WithRequestID(r.Context(), id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
