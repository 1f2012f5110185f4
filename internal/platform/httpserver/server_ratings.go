package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	ratingerrors "cafescout/contexts/discovery/rating-service/domain/errors"
	ratinghttp "cafescout/contexts/discovery/rating-service/transport/http"
)

// handleRateCafe godoc
// @Summary Rate a cafe
// @Tags ratings
// @Accept json
// @Produce json
// @Param cafe_id path string true "Cafe ID"
// @Param X-User-Id header string true "Caller identity"
// @Param request body ratinghttp.RateCafeRequest true "Score and optional comment"
// @Success 200 {object} ratinghttp.RateCafeResponse
// @Router /api/cafes/{cafe_id}/rating [put]
func (s *Server) handleRateCafe(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		writeRatingError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req ratinghttp.RateCafeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRatingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.ratings.Handler.RateCafeHandler(r.Context(), r.PathValue("cafe_id"), userID, req)
	if err != nil {
		writeRatingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRemoveRating(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-Id")
	if userID == "" {
		writeRatingError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	if err := s.ratings.Handler.RemoveRatingHandler(r.Context(), r.PathValue("cafe_id"), userID); err != nil {
		writeRatingDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListRatings(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ratings.Handler.ListRatingsHandler(r.Context(), r.PathValue("cafe_id"))
	if err != nil {
		writeRatingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRatingSummary(w http.ResponseWriter, r *http.Request) {
	resp, err := s.ratings.Handler.RatingSummaryHandler(r.Context(), r.PathValue("cafe_id"))
	if err != nil {
		writeRatingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeRatingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ratingerrors.ErrRatingNotFound):
		writeRatingError(w, http.StatusNotFound, "rating_not_found", err.Error())
	case errors.Is(err, ratingerrors.ErrCafeNotRateable):
		writeRatingError(w, http.StatusNotFound, "cafe_not_rateable", err.Error())
	case errors.Is(err, ratingerrors.ErrInvalidRatingInput):
		writeRatingError(w, http.StatusBadRequest, "invalid_rating", err.Error())
	case errors.Is(err, ratingerrors.ErrUnauthorizedActor):
		writeRatingError(w, http.StatusForbidden, "forbidden", err.Error())
	default:
		writeRatingError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeRatingError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, ratinghttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
