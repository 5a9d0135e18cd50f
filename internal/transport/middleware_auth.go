package transport

import (
	"net/http"
	"strings"

	"talkmap/internal/auth"
)

// WithAuthProtection gates the API on the caller of each request:
// 1. Preflight and /swagger/ pass untouched
// 2. The Bearer ID token is resolved to a principal and attached to the context
// 3. /session/ is reachable without one
// 4. No principal -> 401 Unauthorized
// 5. Event mutations require the admin role -> otherwise 403 Forbidden
func WithAuthProtection(next http.Handler, authz auth.Authorizer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions || strings.HasPrefix(r.URL.Path, "/swagger/") {
			next.ServeHTTP(w, r)
			return
		}

		principal, err := authz.Authorize(r.Context(), bearerToken(r))
		if err == nil {
			r = r.WithContext(auth.WithPrincipal(r.Context(), principal))
		}

		if isSessionPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			respondError(w, err)
			return
		}

		if isEventMutation(r) && !principal.IsAdmin() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":"Forbidden: admin role required"}` + "\n"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}

func isSessionPath(path string) bool {
	return path == "/session" || strings.HasPrefix(path, "/session/")
}

func isEventMutation(r *http.Request) bool {
	if !strings.HasPrefix(r.URL.Path, "/events") {
		return false
	}
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		return false
	}
	return true
}
