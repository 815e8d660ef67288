package httpapi

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// requireAdminKey guards admin routes with a bearer key checked against the
// configured bcrypt hash. With no hash configured the routes are hidden
// entirely.
func (s *Server) requireAdminKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.adminKeyHash == "" {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "not found")
			return
		}
		key := extractBearer(r)
		if key == "" {
			respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing admin key")
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(s.adminKeyHash), []byte(key)) != nil {
			respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid admin key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func extractBearer(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	}
	return ""
}
