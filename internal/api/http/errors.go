package http

import (
	"errors"
	nethttp "net/http"

	"github.com/learnhub/learnhub-lms/internal/catalog"
	"github.com/learnhub/learnhub-lms/internal/enroll"
	"github.com/learnhub/learnhub-lms/internal/exam"
)

// writeErr maps the domain error taxonomy onto HTTP status codes in one
// place so handlers stay terse.
func writeErr(w nethttp.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, enroll.ErrCourseNotFound),
		errors.Is(err, exam.ErrSubmissionNotFound):
		nethttp.Error(w, err.Error(), nethttp.StatusNotFound)
	case errors.Is(err, enroll.ErrNotEnrolled):
		nethttp.Error(w, err.Error(), nethttp.StatusForbidden)
	case errors.Is(err, enroll.ErrUnauthenticated):
		nethttp.Error(w, err.Error(), nethttp.StatusUnauthorized)
	case errors.Is(err, enroll.ErrConflict):
		nethttp.Error(w, err.Error(), nethttp.StatusConflict)
	case errors.Is(err, enroll.ErrInvalidRating),
		errors.Is(err, exam.ErrChoiceNotInCourse):
		nethttp.Error(w, err.Error(), nethttp.StatusUnprocessableEntity)
	default:
		nethttp.Error(w, "internal error", nethttp.StatusInternalServerError)
	}
}
