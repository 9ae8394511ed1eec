package middleware

import (
	"net/http"
	"strings"

	"mediquip/internal/auth"
	"mediquip/internal/httputil"
)

// Auth verifies the bearer token and stores the authenticated user on
// the request context. Requests without a valid token never reach the
// resource handlers.
func Auth(verifier auth.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			user, err := verifier.Verify(token)
			if err != nil {
				httputil.RespondDomainError(w, err)
				return
			}

			ctx := httputil.WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
