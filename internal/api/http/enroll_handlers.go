package http

import (
	"encoding/json"

	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/learnhub/learnhub-lms/internal/enroll"
	"github.com/learnhub/learnhub-lms/internal/rbac"
)

// POST /courses/{courseID}/enroll — idempotent. Anonymous callers get a 204
// no-op so the browsing flow never blocks on a login wall.
func EnrollHandler(ledger *enroll.Ledger) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		learnerID := rbac.SubjectFromContext(r.Context())
		if learnerID == "" {
			w.WriteHeader(nethttp.StatusNoContent)
			return
		}
		if err := ledger.Enroll(r.Context(), learnerID, chi.URLParam(r, "courseID")); err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(nethttp.StatusNoContent)
	}
}

// POST /courses/{courseID}/rating  { "rating": 4.5 }
func RateCourseHandler(ledger *enroll.Ledger) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var req struct {
			Rating float64 `json:"rating"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			nethttp.Error(w, "bad json", nethttp.StatusBadRequest)
			return
		}
		learnerID := rbac.SubjectFromContext(r.Context())
		if err := ledger.Rate(r.Context(), learnerID, chi.URLParam(r, "courseID"), req.Rating); err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(nethttp.StatusNoContent)
	}
}
