package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	suberrors "cafescout/contexts/moderation/submission-service/domain/errors"
	subhttp "cafescout/contexts/moderation/submission-service/transport/http"
)

// maxPhotoBody caps the request body read for photo uploads; the use case
// enforces its own limit on top.
const maxPhotoBody = 6 << 20

// handleCreateSubmission godoc
// @Summary Submit a cafe for review
// @Tags submissions
// @Accept json
// @Produce json
// @Param X-User-Id header string true "Submitter identity"
// @Param request body subhttp.CreateSubmissionRequest true "Cafe listing"
// @Success 201 {object} subhttp.CreateSubmissionResponse
// @Router /api/submissions [post]
func (s *Server) handleCreateSubmission(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		writeSubmissionError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req subhttp.CreateSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSubmissionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.submissions.Handler.CreateSubmissionHandler(r.Context(), userID, req)
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetSubmission(w http.ResponseWriter, r *http.Request) {
	resp, err := s.submissions.Handler.GetSubmissionHandler(r.Context(), r.PathValue("submission_id"))
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	submitterID := query.Get("submitter_id")
	if submitterID == "" {
		submitterID = r.Header.Get("X-User-Id")
	}

	resp, err := s.submissions.Handler.ListSubmissionsHandler(r.Context(), submitterID, query.Get("status"))
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleApproveSubmission(w http.ResponseWriter, r *http.Request) {
	s.handleReviewSubmission(w, r, s.submissions.Handler.ApproveSubmissionHandler)
}

func (s *Server) handleRejectSubmission(w http.ResponseWriter, r *http.Request) {
	s.handleReviewSubmission(w, r, s.submissions.Handler.RejectSubmissionHandler)
}

func (s *Server) handleFlagSubmission(w http.ResponseWriter, r *http.Request) {
	s.handleReviewSubmission(w, r, s.submissions.Handler.FlagSubmissionHandler)
}

func (s *Server) handleReviewSubmission(
	w http.ResponseWriter,
	r *http.Request,
	review func(ctx context.Context, actorID string, submissionID string, req subhttp.ReviewSubmissionRequest) error,
) {
	actorID := r.Header.Get("X-Admin-Id")
	if actorID == "" {
		writeSubmissionError(w, http.StatusUnauthorized, "missing_admin", "X-Admin-Id header is required")
		return
	}

	var req subhttp.ReviewSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSubmissionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	if err := review(r.Context(), actorID, r.PathValue("submission_id"), req); err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAttachPhoto(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		writeSubmissionError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxPhotoBody))
	if err != nil {
		writeSubmissionError(w, http.StatusBadRequest, "invalid_body", "could not read photo body")
		return
	}

	resp, err := s.submissions.Handler.AttachPhotoHandler(
		r.Context(),
		userID,
		r.PathValue("submission_id"),
		r.Header.Get("Content-Type"),
		data,
	)
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeSubmissionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, suberrors.ErrSubmissionNotFound):
		writeSubmissionError(w, http.StatusNotFound, "submission_not_found", err.Error())
	case errors.Is(err, suberrors.ErrDuplicateSubmission):
		writeSubmissionError(w, http.StatusConflict, "duplicate_submission", err.Error())
	case errors.Is(err, suberrors.ErrInvalidStatusTransition):
		writeSubmissionError(w, http.StatusConflict, "invalid_status_transition", err.Error())
	case errors.Is(err, suberrors.ErrUnauthorizedActor):
		writeSubmissionError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, suberrors.ErrInvalidSubmissionInput),
		errors.Is(err, suberrors.ErrInvalidStatusFilter):
		writeSubmissionError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, suberrors.ErrUnsupportedPhotoType):
		writeSubmissionError(w, http.StatusUnsupportedMediaType, "unsupported_photo_type", err.Error())
	case errors.Is(err, suberrors.ErrPhotoTooLarge):
		writeSubmissionError(w, http.StatusRequestEntityTooLarge, "photo_too_large", err.Error())
	default:
		writeSubmissionError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeSubmissionError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, subhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
