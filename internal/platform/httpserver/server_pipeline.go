package httpserver

import (
	"errors"
	"net/http"
	"strings"

	pipeerrors "cafescout/contexts/moderation/approval-pipeline/domain/errors"
	pipehttp "cafescout/contexts/moderation/approval-pipeline/transport/http"
)

// handleProcessSubmissions godoc
// @Summary Run the automated submission approval pipeline once
// @Description Scheduler-facing endpoint. Requires the shared cron secret as a bearer token.
// @Tags pipeline
// @Produce json
// @Param Authorization header string true "Bearer <cron secret>"
// @Success 200 {object} pipehttp.RunReport
// @Failure 401 {object} pipehttp.ErrorResponse
// @Failure 409 {object} pipehttp.ErrorResponse
// @Failure 500 {object} pipehttp.RunReport
// @Router /api/cron/process-submissions [post]
func (s *Server) handleProcessSubmissions(w http.ResponseWriter, r *http.Request) {
	report, err := s.pipeline.Handler.ProcessSubmissionsHandler(r.Context(), bearerToken(r))
	if err != nil {
		writePipelineError(w, err)
		return
	}

	status := http.StatusOK
	if !report.Success {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, report)
}

func writePipelineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pipeerrors.ErrCronNotConfigured):
		writeJSON(w, http.StatusInternalServerError, pipehttp.ErrorResponse{Error: "Cron not configured"})
	case errors.Is(err, pipeerrors.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, pipehttp.ErrorResponse{Error: "Unauthorized"})
	case errors.Is(err, pipeerrors.ErrRunInProgress):
		writeJSON(w, http.StatusConflict, pipehttp.ErrorResponse{Error: "Run already in progress"})
	default:
		writeJSON(w, http.StatusInternalServerError, pipehttp.ErrorResponse{Error: "internal server error"})
	}
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}
