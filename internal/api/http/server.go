package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	appStats "github.com/coupon-quest/coupon-quest/internal/application/stats"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	statsSvc     *appStats.Service
	adminKeyHash string
}

// NewServer creates the API server. adminKeyHash is a bcrypt hash guarding
// the admin routes; when empty those routes respond 404.
func NewServer(statsSvc *appStats.Service, adminKeyHash string) *Server {
	return &Server{
		statsSvc:     statsSvc,
		adminKeyHash: adminKeyHash,
	}
}

// Router builds the HTTP router.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/api", func(r chi.Router) {
		r.Get("/stats", s.getStats)

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.requireAdminKey)
			r.Get("/pool", s.getPool)
			r.Post("/coupons", s.addCoupons)
		})
	})

	return r
}

// Helpers
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, map[string]interface{}{
		"error":   code,
		"message": message,
	})
}

func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
