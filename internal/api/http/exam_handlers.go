package http

import (
	"encoding/json"

	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/learnhub/learnhub-lms/internal/exam"
	"github.com/learnhub/learnhub-lms/internal/rbac"
)

// POST /courses/{courseID}/submissions  { "choice_ids": ["..."] }
func SubmitExamHandler(svc *exam.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var req struct {
			ChoiceIDs []string `json:"choice_ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			nethttp.Error(w, "bad json", nethttp.StatusBadRequest)
			return
		}
		learnerID := rbac.SubjectFromContext(r.Context())
		id, err := svc.RecordSubmission(r.Context(), learnerID, chi.URLParam(r, "courseID"), req.ChoiceIDs)
		if err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(nethttp.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"submission_id": id})
	}
}

// GET /courses/{courseID}/submissions/{submissionID}/result — graded fresh
// from the current answer key on every call.
func ExamResultHandler(svc *exam.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		res, err := svc.Grade(r.Context(), chi.URLParam(r, "courseID"), chi.URLParam(r, "submissionID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(res)
	}
}
