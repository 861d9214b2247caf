package middleware

import (
	"net/http"
	"strings"

	"scamshield/internal/infrastructure/backend"
)

// BearerToken forwards the caller's bearer token to the backend client.
// The gateway never validates tokens itself; the backend does.
func BearerToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := bearer(r); token != "" {
			r = r.WithContext(backend.WithToken(r.Context(), token))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireToken rejects requests without a bearer token
func RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Skip auth for OPTIONS requests (CORS preflight)
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		if bearer(r) == "" {
			WriteError(w, http.StatusUnauthorized, ErrorTypeUnauthorized, "missing or invalid authorization header")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearer(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
