package httpapi

import (
	"net/http"
	"strings"
	"time"
)

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	total, err := s.statsSvc.LifetimeGiven(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Database error")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":                 "success",
		"lifetime_coupons_given": total,
		"timestamp":              time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) getPool(w http.ResponseWriter, r *http.Request) {
	status, err := s.statsSvc.PoolStatus(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Database error")
		return
	}
	respondJSON(w, http.StatusOK, status)
}

type addCouponsRequest struct {
	Codes []string `json:"codes"`
}

func (s *Server) addCoupons(w http.ResponseWriter, r *http.Request) {
	var req addCouponsRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}

	codes := make([]string, 0, len(req.Codes))
	for _, c := range req.Codes {
		c = strings.TrimSpace(c)
		if c != "" {
			codes = append(codes, c)
		}
	}
	if len(codes) == 0 {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "codes is required")
		return
	}

	inserted, err := s.statsSvc.AddCodes(r.Context(), codes)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Database error")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"submitted": len(codes),
		"inserted":  inserted,
	})
}
