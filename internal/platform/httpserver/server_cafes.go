package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	cafequeries "cafescout/contexts/discovery/cafe-service/application/queries"
	cafeerrors "cafescout/contexts/discovery/cafe-service/domain/errors"
	cafehttp "cafescout/contexts/discovery/cafe-service/transport/http"
)

// handleListCafes godoc
// @Summary List published cafes
// @Tags cafes
// @Produce json
// @Param city query string false "Filter by city"
// @Param amenity query string false "Filter by amenity"
// @Param status query string false "Filter by status"
// @Success 200 {object} cafehttp.ListCafesResponse
// @Router /api/cafes [get]
func (s *Server) handleListCafes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := s.cafes.Handler.ListCafesHandler(
		r.Context(),
		query.Get("city"),
		query.Get("amenity"),
		query.Get("status"),
	)
	if err != nil {
		writeCafeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleSearchCafes godoc
// @Summary Search cafes within a map viewport
// @Tags cafes
// @Produce json
// @Param min_lat query number true "South bound"
// @Param max_lat query number true "North bound"
// @Param min_lng query number true "West bound"
// @Param max_lng query number true "East bound"
// @Param min_rating query number false "Minimum average rating"
// @Param amenity query string false "Required amenity"
// @Param limit query int false "Result cap"
// @Success 200 {object} cafehttp.SearchCafesResponse
// @Router /api/cafes/search [get]
func (s *Server) handleSearchCafes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	search := cafequeries.SearchCafesQuery{
		Amenity: query.Get("amenity"),
	}

	bounds := map[string]*float64{
		"min_lat": &search.MinLatitude,
		"max_lat": &search.MaxLatitude,
		"min_lng": &search.MinLongitude,
		"max_lng": &search.MaxLongitude,
	}
	for name, target := range bounds {
		value, err := strconv.ParseFloat(query.Get(name), 64)
		if err != nil {
			writeCafeError(w, http.StatusBadRequest, "invalid_bounds", name+" must be a number")
			return
		}
		*target = value
	}
	if raw := query.Get("min_rating"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeCafeError(w, http.StatusBadRequest, "invalid_min_rating", "min_rating must be a number")
			return
		}
		search.MinRating = value
	}
	if raw := query.Get("limit"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			writeCafeError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		search.Limit = value
	}

	resp, err := s.cafes.Handler.SearchCafesHandler(r.Context(), search)
	if err != nil {
		writeCafeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCafe(w http.ResponseWriter, r *http.Request) {
	resp, err := s.cafes.Handler.GetCafeHandler(r.Context(), r.PathValue("cafe_id"))
	if err != nil {
		writeCafeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateCafe(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	var req cafehttp.CreateCafeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCafeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.cafes.Handler.CreateCafeHandler(r.Context(), req)
	if err != nil {
		writeCafeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateCafe(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	var req cafehttp.UpdateCafeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCafeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.cafes.Handler.UpdateCafeHandler(r.Context(), r.PathValue("cafe_id"), req)
	if err != nil {
		writeCafeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHideCafe(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	var req cafehttp.HideCafeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCafeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.cafes.Handler.HideCafeHandler(r.Context(), r.PathValue("cafe_id"), req); err != nil {
		writeCafeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// requireAdmin gates catalog writes on the admin header. Identity is
// resolved upstream; this layer only checks presence.
func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get("X-Admin-Id") == "" {
		writeCafeError(w, http.StatusUnauthorized, "missing_admin", "X-Admin-Id header is required")
		return false
	}
	return true
}

func writeCafeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cafeerrors.ErrCafeNotFound):
		writeCafeError(w, http.StatusNotFound, "cafe_not_found", err.Error())
	case errors.Is(err, cafeerrors.ErrDuplicateCafe):
		writeCafeError(w, http.StatusConflict, "duplicate_cafe", err.Error())
	case errors.Is(err, cafeerrors.ErrInvalidCafeInput),
		errors.Is(err, cafeerrors.ErrInvalidSearchBounds),
		errors.Is(err, cafeerrors.ErrInvalidStatusFilter):
		writeCafeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeCafeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeCafeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, cafehttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
